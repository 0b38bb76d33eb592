package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
	"github.com/aquaticavenue/paynow-hub/internal/domain/repository"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/generateqr"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/issue"
)

type Handler struct {
	generateQRUC *generateqr.UseCase
	issueUC      *issue.UseCase
	logger       *slog.Logger
}

func NewHandler(generateQRUC *generateqr.UseCase, issueUC *issue.UseCase, logger *slog.Logger) *Handler {
	return &Handler{
		generateQRUC: generateQRUC,
		issueUC:      issueUC,
		logger:       logger,
	}
}

type IssueRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	Reference string           `json:"reference"`
}

type PayloadRequest struct {
	Payload string `json:"payload"`
}

func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	amountStr := r.URL.Query().Get("amount")
	if amountStr == "" {
		render.Render(w, r, errResponse(http.StatusBadRequest, "amount query param required"))
		return
	}

	amount, err := paynow.ParseAmount(amountStr)
	if err != nil {
		render.Render(w, r, errResponse(http.StatusBadRequest, "invalid amount"))
		return
	}

	resp, err := h.generateQRUC.Execute(generateqr.Request{
		Amount:    amount,
		Reference: r.URL.Query().Get("reference"),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-PayNow-Reference", resp.Reference)
	_, _ = w.Write(resp.PNG)
}

func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	idempotencyKey := r.Header.Get("X-Idempotency-Key")
	if idempotencyKey == "" {
		render.Render(w, r, errResponse(http.StatusBadRequest, "X-Idempotency-Key header required"))
		return
	}

	var req IssueRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errResponse(http.StatusBadRequest, "invalid json"))
		return
	}
	if req.Amount == nil {
		render.Render(w, r, errResponse(http.StatusBadRequest, "amount required"))
		return
	}

	resp, err := h.issueUC.Execute(r.Context(), issue.Request{
		IdempotencyKey: idempotencyKey,
		Amount:         *req.Amount,
		Reference:      req.Reference,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	qr, err := h.generateQRUC.DataURL(resp.Payload)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.Render(w, r, newPaymentRequestResponse(resp, qr))
}

func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	resp, err := h.issueUC.Lookup(r.Context(), reference)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Render(w, r, newPaymentRequestResponse(resp, ""))
}

func (h *Handler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	var req PayloadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errResponse(http.StatusBadRequest, "invalid json"))
		return
	}

	decoded, err := paynow.Decode(req.Payload)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Render(w, r, newDecodeResponse(decoded))
}

func (h *Handler) HandleCustomQR(w http.ResponseWriter, r *http.Request) {
	var req PayloadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errResponse(http.StatusBadRequest, "invalid json"))
		return
	}

	png, err := h.generateQRUC.Custom(req.Payload)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case paynow.IsEncodingError(err),
		errors.Is(err, paynow.ErrMalformedPayload),
		errors.Is(err, paynow.ErrChecksumMismatch):
		render.Render(w, r, errResponse(http.StatusUnprocessableEntity, err.Error()))
	case errors.Is(err, issue.ErrIdempotencyKeyRequired):
		render.Render(w, r, errResponse(http.StatusBadRequest, err.Error()))
	case errors.Is(err, issue.ErrDuplicateReference):
		render.Render(w, r, errResponse(http.StatusConflict, err.Error()))
	case errors.Is(err, repository.ErrNotFound):
		render.Render(w, r, errResponse(http.StatusNotFound, "payment request not found"))
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		render.Render(w, r, errResponse(http.StatusInternalServerError, "internal error"))
	}
}

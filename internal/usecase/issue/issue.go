package issue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aquaticavenue/paynow-hub/internal/domain/entity"
	"github.com/aquaticavenue/paynow-hub/internal/domain/repository"
)

var (
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrDuplicateReference     = errors.New("reference already issued")
)

type Encoder interface {
	Encode(amount decimal.Decimal, reference string) (string, error)
}

type ReferenceSource interface {
	Generate() (string, error)
}

type Request struct {
	IdempotencyKey string
	Amount         decimal.Decimal
	Reference      string
}

type Response struct {
	RequestID string
	Reference string
	Amount    string
	Payload   string
	CreatedAt time.Time
}

type responseCache struct {
	RequestID string    `json:"request_id"`
	Reference string    `json:"reference"`
	Amount    string    `json:"amount"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

type UseCase struct {
	uow        repository.UnitOfWork
	encoder    Encoder
	references ReferenceSource
}

func NewUseCase(uow repository.UnitOfWork, encoder Encoder, references ReferenceSource) *UseCase {
	return &UseCase{
		uow:        uow,
		encoder:    encoder,
		references: references,
	}
}

// Execute issues and records a payment request. Repeating a key returns the
// response recorded the first time.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.IdempotencyKey == "" {
		return nil, ErrIdempotencyKeyRequired
	}

	cached, err := uc.uow.Idempotency().Find(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return uc.parseCache(cached.ResponseBody())
	}

	tx, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Idempotency().Lock(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	cached, err = tx.Idempotency().Find(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return uc.parseCache(cached.ResponseBody())
	}

	reference, err := uc.reference(ctx, tx, req.Reference)
	if err != nil {
		return nil, err
	}

	payload, err := uc.encoder.Encode(req.Amount, reference)
	if err != nil {
		return nil, err
	}

	pr := entity.NewPaymentRequest(reference, req.Amount.Round(2), payload)
	if err := tx.PaymentRequests().Create(ctx, pr); err != nil {
		return nil, duplicateAware(err)
	}

	return uc.saveAndReturn(ctx, tx, req.IdempotencyKey, pr)
}

// Lookup returns a previously issued payment request.
func (uc *UseCase) Lookup(ctx context.Context, reference string) (*Response, error) {
	pr, err := uc.uow.PaymentRequests().FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return toResponse(pr), nil
}

func (uc *UseCase) reference(ctx context.Context, tx repository.UnitOfWork, supplied string) (string, error) {
	if supplied == "" {
		return uc.references.Generate()
	}

	_, err := tx.PaymentRequests().FindByReference(ctx, supplied)
	switch {
	case err == nil:
		return "", ErrDuplicateReference
	case errors.Is(err, repository.ErrNotFound):
		return supplied, nil
	default:
		return "", err
	}
}

func (uc *UseCase) saveAndReturn(
	ctx context.Context,
	tx repository.UnitOfWork,
	key string,
	pr *entity.PaymentRequest,
) (*Response, error) {
	resp := toResponse(pr)
	body, err := json.Marshal(responseCache(*resp))
	if err != nil {
		return nil, err
	}

	record := entity.NewIdempotencyRecord(key, http.StatusCreated, body)
	if err := tx.Idempotency().Save(ctx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, duplicateAware(err)
	}

	return resp, nil
}

// duplicateAware reports a storage-level reference collision as
// ErrDuplicateReference. It covers concurrent issues under different keys,
// which the idempotency lock does not serialise.
func duplicateAware(err error) error {
	if errors.Is(err, repository.ErrDuplicateReference) {
		return ErrDuplicateReference
	}
	return err
}

func (uc *UseCase) parseCache(body []byte) (*Response, error) {
	var cache responseCache
	if err := json.Unmarshal(body, &cache); err != nil {
		return nil, err
	}
	resp := Response(cache)
	return &resp, nil
}

func toResponse(pr *entity.PaymentRequest) *Response {
	return &Response{
		RequestID: pr.ID().String(),
		Reference: pr.Reference(),
		Amount:    pr.Amount().StringFixed(2),
		Payload:   pr.Payload(),
		CreatedAt: pr.CreatedAt(),
	}
}

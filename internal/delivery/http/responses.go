package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/issue"
)

type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Error          string `json:"error"`
}

func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errResponse(code int, msg string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: code, Error: msg}
}

type PaymentRequestResponse struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	Amount    string    `json:"amount"`
	Payload   string    `json:"payload"`
	QRCode    string    `json:"qr_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *PaymentRequestResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func newPaymentRequestResponse(resp *issue.Response, qrCode string) *PaymentRequestResponse {
	return &PaymentRequestResponse{
		ID:        resp.RequestID,
		Reference: resp.Reference,
		Amount:    resp.Amount,
		Payload:   resp.Payload,
		QRCode:    qrCode,
		CreatedAt: resp.CreatedAt,
	}
}

type DecodeResponse struct {
	PayloadFormat    string `json:"payload_format"`
	InitiationMethod string `json:"initiation_method"`
	GUID             string `json:"guid"`
	ProxyType        string `json:"proxy_type"`
	ProxyValue       string `json:"proxy_value"`
	Reference        string `json:"reference"`
	CategoryCode     string `json:"category_code"`
	CurrencyCode     string `json:"currency_code"`
	Amount           string `json:"amount"`
	CountryCode      string `json:"country_code"`
	MerchantName     string `json:"merchant_name"`
	MerchantCity     string `json:"merchant_city"`
	BillNumber       string `json:"bill_number,omitempty"`
	Checksum         string `json:"checksum"`
}

func (d *DecodeResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func newDecodeResponse(d *paynow.Decoded) *DecodeResponse {
	return &DecodeResponse{
		PayloadFormat:    d.PayloadFormat,
		InitiationMethod: d.InitiationMethod,
		GUID:             d.GUID,
		ProxyType:        d.ProxyType,
		ProxyValue:       d.ProxyValue,
		Reference:        d.Reference,
		CategoryCode:     d.CategoryCode,
		CurrencyCode:     d.CurrencyCode,
		Amount:           d.Amount,
		CountryCode:      d.CountryCode,
		MerchantName:     d.MerchantName,
		MerchantCity:     d.MerchantCity,
		BillNumber:       d.BillNumber,
		Checksum:         d.Checksum,
	}
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRequest is an issued PayNow payload awaiting a bank transfer.
type PaymentRequest struct {
	id        uuid.UUID
	reference string
	amount    decimal.Decimal
	payload   string
	createdAt time.Time
}

func NewPaymentRequest(reference string, amount decimal.Decimal, payload string) *PaymentRequest {
	return &PaymentRequest{
		id:        uuid.New(),
		reference: reference,
		amount:    amount,
		payload:   payload,
		createdAt: time.Now().UTC(),
	}
}

func ReconstructPaymentRequest(
	id uuid.UUID,
	reference string,
	amount decimal.Decimal,
	payload string,
	createdAt time.Time,
) *PaymentRequest {
	return &PaymentRequest{
		id:        id,
		reference: reference,
		amount:    amount,
		payload:   payload,
		createdAt: createdAt,
	}
}

func (p *PaymentRequest) ID() uuid.UUID {
	return p.id
}

func (p *PaymentRequest) Reference() string {
	return p.reference
}

func (p *PaymentRequest) Amount() decimal.Decimal {
	return p.amount
}

func (p *PaymentRequest) Payload() string {
	return p.payload
}

func (p *PaymentRequest) CreatedAt() time.Time {
	return p.createdAt
}

package generateqr

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
	"github.com/aquaticavenue/paynow-hub/internal/domain/qrcode"
)

type Encoder interface {
	Encode(amount decimal.Decimal, reference string) (string, error)
}

type ReferenceSource interface {
	Generate() (string, error)
}

type Request struct {
	Amount    decimal.Decimal
	Reference string
}

type Response struct {
	Reference string
	Payload   string
	PNG       []byte
}

type UseCase struct {
	encoder    Encoder
	references ReferenceSource
	generator  qrcode.Generator
}

func NewUseCase(encoder Encoder, references ReferenceSource, generator qrcode.Generator) *UseCase {
	return &UseCase{
		encoder:    encoder,
		references: references,
		generator:  generator,
	}
}

// Execute encodes a payment payload and renders it. A reference is generated
// when none is supplied.
func (uc *UseCase) Execute(req Request) (*Response, error) {
	reference := req.Reference
	if reference == "" {
		ref, err := uc.references.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate reference: %w", err)
		}
		reference = ref
	}

	payload, err := uc.encoder.Encode(req.Amount, reference)
	if err != nil {
		return nil, err
	}

	png, err := uc.generator.Generate(payload)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}

	return &Response{
		Reference: reference,
		Payload:   payload,
		PNG:       png,
	}, nil
}

// Custom renders a caller supplied payload after checking its framing and
// checksum.
func (uc *UseCase) Custom(payload string) ([]byte, error) {
	if _, err := paynow.Decode(payload); err != nil {
		return nil, err
	}
	png, err := uc.generator.Generate(payload)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}

// DataURL renders payload as an inline PNG data URL.
func (uc *UseCase) DataURL(payload string) (string, error) {
	return uc.generator.DataURL(payload)
}

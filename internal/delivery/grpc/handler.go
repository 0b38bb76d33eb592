package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
)

type ReferenceSource interface {
	Generate() (string, error)
}

type Handler struct {
	encoder    *paynow.Encoder
	references ReferenceSource
}

func NewHandler(encoder *paynow.Encoder, references ReferenceSource) *Handler {
	return &Handler{encoder: encoder, references: references}
}

func (h *Handler) EncodePayload(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	amount, err := amountField(req.GetFields()["amount"])
	if err != nil {
		return nil, err
	}

	reference := req.GetFields()["reference"].GetStringValue()
	if reference == "" {
		reference, err = h.references.Generate()
		if err != nil {
			return nil, status.Errorf(codes.Internal, "generate reference: %v", err)
		}
	}

	payload, err := h.encoder.Encode(amount, reference)
	if err != nil {
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{
		"payload":   payload,
		"reference": reference,
		"amount":    amount.StringFixed(2),
	})
}

func (h *Handler) DecodePayload(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	payload := req.GetFields()["payload"].GetStringValue()
	if payload == "" {
		return nil, status.Error(codes.InvalidArgument, "payload is required")
	}

	d, err := paynow.Decode(payload)
	if err != nil {
		return nil, toStatus(err)
	}

	fields := map[string]any{
		"payload_format":    d.PayloadFormat,
		"initiation_method": d.InitiationMethod,
		"guid":              d.GUID,
		"proxy_type":        d.ProxyType,
		"proxy_value":       d.ProxyValue,
		"reference":         d.Reference,
		"category_code":     d.CategoryCode,
		"currency_code":     d.CurrencyCode,
		"amount":            d.Amount,
		"country_code":      d.CountryCode,
		"merchant_name":     d.MerchantName,
		"merchant_city":     d.MerchantCity,
		"checksum":          d.Checksum,
	}
	if d.BillNumber != "" {
		fields["bill_number"] = d.BillNumber
	}
	return structpb.NewStruct(fields)
}

func amountField(v *structpb.Value) (decimal.Decimal, error) {
	switch v.GetKind().(type) {
	case *structpb.Value_StringValue:
		amount, err := paynow.ParseAmount(v.GetStringValue())
		if err != nil {
			return decimal.Zero, toStatus(err)
		}
		return amount, nil
	case *structpb.Value_NumberValue:
		amount, err := paynow.AmountFromFloat(v.GetNumberValue())
		if err != nil {
			return decimal.Zero, toStatus(err)
		}
		return amount, nil
	default:
		return decimal.Zero, status.Error(codes.InvalidArgument, "amount is required")
	}
}

func toStatus(err error) error {
	switch {
	case paynow.IsEncodingError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, paynow.ErrMalformedPayload), errors.Is(err, paynow.ErrChecksumMismatch):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Errorf(codes.Internal, "paynow: %v", err)
	}
}

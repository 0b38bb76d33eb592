package paynow

import (
	"github.com/shopspring/decimal"
)

// Encoder builds PayNow payloads for one merchant. It is immutable and safe
// for concurrent use.
type Encoder struct {
	merchant Merchant
}

func NewEncoder(merchant Merchant) (*Encoder, error) {
	merchant = merchant.withDefaults()
	if err := merchant.Validate(); err != nil {
		return nil, err
	}
	return &Encoder{merchant: merchant}, nil
}

func (e *Encoder) Merchant() Merchant {
	return e.merchant
}

// MerchantAccountInfo renders the complete tag 26 field for reference.
func (e *Encoder) MerchantAccountInfo(reference string) (string, error) {
	if reference == "" {
		return "", encodingErr(SubTagReference, "reference is empty")
	}
	inner, err := FormatFields(
		Field{Tag: SubTagGloballyUniqueID, Value: PayNowGUID},
		Field{Tag: SubTagProxyType, Value: ProxyTypeUEN},
		Field{Tag: SubTagProxyValue, Value: e.merchant.ProxyID},
		Field{Tag: SubTagReference, Value: reference},
	)
	if err != nil {
		return "", err
	}
	return FormatField(TagMerchantAccountInfo, inner)
}

func (e *Encoder) additionalData() (string, error) {
	inner, err := FormatField(SubTagBillNumber, e.merchant.BillNumber)
	if err != nil {
		return "", err
	}
	return FormatField(TagAdditionalData, inner)
}

// BuildPayload renders every field except the trailing checksum.
func (e *Encoder) BuildPayload(amount decimal.Decimal, reference string) (string, error) {
	account, err := e.MerchantAccountInfo(reference)
	if err != nil {
		return "", err
	}
	formattedAmount, err := FormatAmount(amount)
	if err != nil {
		return "", err
	}
	additional, err := e.additionalData()
	if err != nil {
		return "", err
	}

	head, err := FormatFields(
		Field{Tag: TagPayloadFormatIndicator, Value: PayloadFormat},
		Field{Tag: TagPointOfInitiation, Value: InitiationMethod},
	)
	if err != nil {
		return "", err
	}
	tail, err := FormatFields(
		Field{Tag: TagMerchantCategoryCode, Value: e.merchant.CategoryCode},
		Field{Tag: TagTransactionCurrency, Value: e.merchant.CurrencyCode},
		Field{Tag: TagTransactionAmount, Value: formattedAmount},
		Field{Tag: TagCountryCode, Value: e.merchant.CountryCode},
		Field{Tag: TagMerchantName, Value: e.merchant.Name},
		Field{Tag: TagMerchantCity, Value: e.merchant.City},
	)
	if err != nil {
		return "", err
	}
	return head + account + tail + additional, nil
}

// Encode returns the complete payload including the CRC field.
func (e *Encoder) Encode(amount decimal.Decimal, reference string) (string, error) {
	payload, err := e.BuildPayload(amount, reference)
	if err != nil {
		return "", err
	}
	return AppendChecksum(payload), nil
}

// AppendChecksum terminates payload with the CRC field.
func AppendChecksum(payload string) string {
	payload += crcPrefix
	return payload + Checksum(payload)
}

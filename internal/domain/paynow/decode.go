package paynow

import "strings"

// Decoded is the result of walking a complete payload.
type Decoded struct {
	Fields []Field

	PayloadFormat    string
	InitiationMethod string
	GUID             string
	ProxyType        string
	ProxyValue       string
	Reference        string
	CategoryCode     string
	CurrencyCode     string
	Amount           string
	CountryCode      string
	MerchantName     string
	MerchantCity     string
	BillNumber       string
	Checksum         string
}

// Decode verifies the trailing checksum of payload and extracts its fields.
func Decode(payload string) (*Decoded, error) {
	const crcFieldLen = len(crcPrefix) + 4
	if len(payload) < crcFieldLen {
		return nil, ErrMalformedPayload
	}
	body := payload[:len(payload)-crcFieldLen]
	trailer := payload[len(payload)-crcFieldLen:]
	if !strings.HasPrefix(trailer, crcPrefix) {
		return nil, ErrMalformedPayload
	}
	sum := trailer[len(crcPrefix):]
	if Checksum(body+crcPrefix) != strings.ToUpper(sum) {
		return nil, ErrChecksumMismatch
	}

	fields, err := ParseFields(body)
	if err != nil {
		return nil, err
	}

	d := &Decoded{Fields: fields, Checksum: sum}
	for _, f := range fields {
		switch f.Tag {
		case TagPayloadFormatIndicator:
			d.PayloadFormat = f.Value
		case TagPointOfInitiation:
			d.InitiationMethod = f.Value
		case TagMerchantAccountInfo:
			if err := d.readAccountInfo(f.Value); err != nil {
				return nil, err
			}
		case TagMerchantCategoryCode:
			d.CategoryCode = f.Value
		case TagTransactionCurrency:
			d.CurrencyCode = f.Value
		case TagTransactionAmount:
			d.Amount = f.Value
		case TagCountryCode:
			d.CountryCode = f.Value
		case TagMerchantName:
			d.MerchantName = f.Value
		case TagMerchantCity:
			d.MerchantCity = f.Value
		case TagAdditionalData:
			sub, err := ParseFields(f.Value)
			if err != nil {
				return nil, err
			}
			for _, s := range sub {
				if s.Tag == SubTagBillNumber {
					d.BillNumber = s.Value
				}
			}
		}
	}
	return d, nil
}

func (d *Decoded) readAccountInfo(value string) error {
	sub, err := ParseFields(value)
	if err != nil {
		return err
	}
	for _, s := range sub {
		switch s.Tag {
		case SubTagGloballyUniqueID:
			d.GUID = s.Value
		case SubTagProxyType:
			d.ProxyType = s.Value
		case SubTagProxyValue:
			d.ProxyValue = s.Value
		case SubTagReference:
			d.Reference = s.Value
		}
	}
	return nil
}

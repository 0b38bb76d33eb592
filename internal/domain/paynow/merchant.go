package paynow

import "errors"

const (
	PayNowGUID        = "SG.PAYNOW"
	ProxyTypeUEN      = "2"
	PayloadFormat     = "01"
	InitiationMethod  = "12"
	DefaultCategory   = "0000"
	CurrencySGD       = "702"
	CountrySingapore  = "SG"
	DefaultCity       = "Singapore"
	DefaultBillNumber = "***"
)

// EMV QR (Merchant-Presented Mode) caps tag 59 at 25 and tag 60 at 15
// characters, tighter than the generic 99 character TLV limit.
const (
	maxMerchantNameLen = 25
	maxMerchantCityLen = 15
)

var (
	ErrMissingProxyID      = errors.New("merchant proxy id (UEN) is required")
	ErrMissingMerchantName = errors.New("merchant name is required")
	ErrMerchantNameTooLong = errors.New("merchant name exceeds 25 characters")
	ErrMerchantCityTooLong = errors.New("merchant city exceeds 15 characters")
)

// Merchant holds the static fields printed into every payload.
type Merchant struct {
	ProxyID      string
	Name         string
	City         string
	CountryCode  string
	CurrencyCode string
	CategoryCode string
	BillNumber   string
}

// NewMerchant returns a Singapore merchant with the scheme defaults filled in.
func NewMerchant(uen, name string) Merchant {
	return Merchant{
		ProxyID: uen,
		Name:    name,
	}.withDefaults()
}

func (m Merchant) withDefaults() Merchant {
	if m.City == "" {
		m.City = DefaultCity
	}
	if m.CountryCode == "" {
		m.CountryCode = CountrySingapore
	}
	if m.CurrencyCode == "" {
		m.CurrencyCode = CurrencySGD
	}
	if m.CategoryCode == "" {
		m.CategoryCode = DefaultCategory
	}
	if m.BillNumber == "" {
		m.BillNumber = DefaultBillNumber
	}
	return m
}

func (m Merchant) Validate() error {
	if m.ProxyID == "" {
		return ErrMissingProxyID
	}
	if m.Name == "" {
		return ErrMissingMerchantName
	}
	if len(m.Name) > maxMerchantNameLen {
		return ErrMerchantNameTooLong
	}
	if len(m.City) > maxMerchantCityLen {
		return ErrMerchantCityTooLong
	}
	return nil
}

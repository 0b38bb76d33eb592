package paynow

import "strconv"

// MaxValueLength is the largest value a two-digit length prefix can describe.
const MaxValueLength = 99

const (
	TagPayloadFormatIndicator = "00"
	TagPointOfInitiation      = "01"
	TagMerchantAccountInfo    = "26"
	TagMerchantCategoryCode   = "52"
	TagTransactionCurrency    = "53"
	TagTransactionAmount      = "54"
	TagCountryCode            = "58"
	TagMerchantName           = "59"
	TagMerchantCity           = "60"
	TagAdditionalData         = "62"
	TagCRC                    = "63"
)

// Sub-fields of the merchant account information block.
const (
	SubTagGloballyUniqueID = "00"
	SubTagProxyType        = "01"
	SubTagProxyValue       = "02"
	SubTagReference        = "03"
)

// Sub-fields of the additional data block.
const SubTagBillNumber = "05"

// Field is a single tag/value pair; the length is implied by Value.
type Field struct {
	Tag   string
	Value string
}

// FormatField renders tag, the zero-padded value length and value.
func FormatField(tag, value string) (string, error) {
	if !isTag(tag) {
		return "", encodingErr(tag, "tag must be two decimal digits")
	}
	if len(value) > MaxValueLength {
		return "", encodingErr(tag, "value length %d exceeds %d", len(value), MaxValueLength)
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return "", encodingErr(tag, "value contains non-printable or non-ASCII byte at %d", i)
		}
	}

	buf := make([]byte, 0, 4+len(value))
	buf = append(buf, tag...)
	if len(value) < 10 {
		buf = append(buf, '0')
	}
	buf = strconv.AppendInt(buf, int64(len(value)), 10)
	buf = append(buf, value...)
	return string(buf), nil
}

// FormatFields renders fields in order and concatenates them.
func FormatFields(fields ...Field) (string, error) {
	var out []byte
	for _, f := range fields {
		s, err := FormatField(f.Tag, f.Value)
		if err != nil {
			return "", err
		}
		out = append(out, s...)
	}
	return string(out), nil
}

// ParseFields walks consecutive tag/length/value triples.
func ParseFields(s string) ([]Field, error) {
	var fields []Field
	for pos := 0; pos < len(s); {
		if len(s)-pos < 4 {
			return nil, ErrMalformedPayload
		}
		tag := s[pos : pos+2]
		if !isTag(tag) || !isTag(s[pos+2:pos+4]) {
			return nil, ErrMalformedPayload
		}
		n := int(s[pos+2]-'0')*10 + int(s[pos+3]-'0')
		pos += 4
		if len(s)-pos < n {
			return nil, ErrMalformedPayload
		}
		fields = append(fields, Field{Tag: tag, Value: s[pos : pos+n]})
		pos += n
	}
	return fields, nil
}

func isTag(s string) bool {
	return len(s) == 2 && isDigit(s[0]) && isDigit(s[1])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

package paynow

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// EncodingError reports a value that cannot be represented in the payload.
type EncodingError struct {
	Tag    string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("paynow: tag %s: %s", e.Tag, e.Reason)
}

func encodingErr(tag, format string, args ...any) error {
	return &EncodingError{Tag: tag, Reason: fmt.Sprintf(format, args...)}
}

// IsEncodingError reports whether err wraps an *EncodingError.
func IsEncodingError(err error) bool {
	var encErr *EncodingError
	return errors.As(err, &encErr)
}

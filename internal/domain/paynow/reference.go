package paynow

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const referencePrefix = "AA"

// ReferenceGenerator produces order references of the form
// AA<unix millis><4 uppercase hex digits>.
type ReferenceGenerator struct {
	now  func() time.Time
	rand io.Reader
}

func NewReferenceGenerator() *ReferenceGenerator {
	return &ReferenceGenerator{now: time.Now, rand: rand.Reader}
}

// NewReferenceGeneratorWith is used by tests to pin the clock and entropy.
func NewReferenceGeneratorWith(now func() time.Time, r io.Reader) *ReferenceGenerator {
	return &ReferenceGenerator{now: now, rand: r}
}

func (g *ReferenceGenerator) Generate() (string, error) {
	var b [2]byte
	if _, err := io.ReadFull(g.rand, b[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	ms := strconv.FormatInt(g.now().UnixMilli(), 10)
	return referencePrefix + ms + strings.ToUpper(hex.EncodeToString(b[:])), nil
}

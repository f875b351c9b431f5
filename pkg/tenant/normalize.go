package tenant

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalizer canonicalizes a raw candidate into a directory lookup key.
// Implementations must be deterministic and idempotent.
type Normalizer interface {
	Normalize(raw string) string
}

// NormalizerFunc is an adapter to allow the use of ordinary functions as Normalizers.
type NormalizerFunc func(raw string) string

// Normalize calls the function.
func (f NormalizerFunc) Normalize(raw string) string {
	return f(raw)
}

// DefaultNormalizer returns a Normalizer backed by Normalize.
func DefaultNormalizer() Normalizer {
	return NormalizerFunc(Normalize)
}

// Normalize trims surrounding white space and applies Unicode full case folding,
// so "  Acme-Corp " and "ACME-CORP" both become "acme-corp".
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Fold().String(s)
}

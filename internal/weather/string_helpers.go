package weather

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StringTransformer defines the contract for a function that can transform a string.
type StringTransformer interface {
	TransformString(t transform.Transformer, s string) (string, int, error)
}

type defaultTransformer struct{}

func (dt defaultTransformer) TransformString(t transform.Transformer, s string) (string, int, error) {
	return transform.String(t, s)
}

// transformer is swapped out in tests to simulate transformation failures.
var transformer StringTransformer = defaultTransformer{}

// normalizeCityQuery trims surrounding whitespace and composes the name to NFC, so
// an "a" followed by U+0303 COMBINING TILDE reaches the geocoder as a single "ã".
// Diacritics are kept; the geocoder matches on them.
func normalizeCityQuery(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("input string is not valid UTF-8")
	}
	result, _, err := transformer.TransformString(norm.NFC, s)
	if err != nil {
		return "", err
	}
	return result, nil
}

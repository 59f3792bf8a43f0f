package grammar

import (
	"net/url"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for programmatic checking via errors.Is().
var (
	ErrInvalidIRI               = errors.New("invalid IRI")
	ErrInvalidLanguageTag       = errors.New("invalid language tag")
	ErrInvalidDatatype          = errors.New("invalid datatype")
	ErrInvalidLiteral           = errors.New("invalid literal")
	ErrInvalidInverseExpression = errors.New("invalid inverse expression")
)

// ValidateIRI checks that s is an absolute IRI: a scheme followed by ':' and a body
// free of characters that IRIREF excludes, with well-formed percent escapes.
func ValidateIRI(s string) error {
	if s == "" {
		return errors.Wrap(ErrInvalidIRI, "empty string")
	}

	colon := schemeEnd(s)
	if colon < 0 {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidIRI, "%q has no scheme", s),
			"term map IRIs must be absolute, e.g. http://example.org/thing")
	}

	for i, r := range s {
		if isDisallowedIRIChar(r) {
			return errors.Wrapf(ErrInvalidIRI, "%q contains disallowed character %q at offset %d", s, r, i)
		}
		if r == '%' && !validPercent(s, i) {
			return errors.Wrapf(ErrInvalidIRI, "%q has malformed percent escape at offset %d", s, i)
		}
	}

	if _, err := url.Parse(s); err != nil {
		return errors.Wrapf(ErrInvalidIRI, "%q: %v", s, err)
	}
	return nil
}

// IsValidIRI reports whether s is an absolute IRI.
func IsValidIRI(s string) bool {
	return ValidateIRI(s) == nil
}

// schemeEnd returns the index of the ':' ending a valid scheme, or -1.
func schemeEnd(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case c == ':' && i > 0:
			return i
		default:
			return -1
		}
	}
	return -1
}

func isDisallowedIRIChar(r rune) bool {
	if r <= 0x20 || (r >= 0x7F && r <= 0x9F) {
		return true
	}
	switch r {
	case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
		return true
	}
	return false
}

func validPercent(s string, i int) bool {
	return i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

package template

import (
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// IRISafe percent-encodes every character that is not an iunreserved character,
// so that a bound value can be placed inside an IRI template without changing
// its structure.
func IRISafe(value string) string {
	var sb strings.Builder
	sb.Grow(len(value))
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		if isIUnreserved(r) && r != utf8.RuneError {
			sb.WriteString(value[i : i+size])
		} else {
			for j := i; j < i+size; j++ {
				b := value[j]
				sb.WriteByte('%')
				sb.WriteByte(upperHex[b>>4])
				sb.WriteByte(upperHex[b&0x0F])
			}
		}
		i += size
	}
	return sb.String()
}

func isIUnreserved(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '.', r == '_', r == '~':
		return true
	}
	return isUCSChar(r)
}

// isUCSChar matches the ucschar production of RFC 3987.
func isUCSChar(r rune) bool {
	switch {
	case r >= 0xA0 && r <= 0xD7FF, r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFEF:
		return true
	case r >= 0x10000 && r <= 0xEFFFD:
		return r&0xFFFF <= 0xFFFD
	}
	return false
}

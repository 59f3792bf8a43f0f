package grammar_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/semmap/grammar"
	"github.com/c360studio/semmap/vocabulary/rml"
)

func TestValidateIRI(t *testing.T) {
	tests := []struct {
		name  string
		iri   string
		valid bool
	}{
		{"http", "http://example.org/person/1", true},
		{"urn", "urn:isbn:0451450523", true},
		{"fragment", "http://www.w3.org/ns/r2rml#IRI", true},
		{"unicode", "http://example.org/café", true},
		{"percent escape", "http://example.org/a%20b", true},
		{"mailto", "mailto:ada@example.org", true},
		{"empty", "", false},
		{"relative", "person/1", false},
		{"no scheme", ":foo", false},
		{"digit scheme", "1http://example.org", false},
		{"space", "http://example.org/a b", false},
		{"brace", "http://example.org/{id}", false},
		{"angle", "http://example.org/<x>", false},
		{"backslash", `http://example.org\x`, false},
		{"bad percent", "http://example.org/%zz", false},
		{"truncated percent", "http://example.org/%2", false},
		{"bad ipv6 host", "http://[::1/x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := grammar.ValidateIRI(tt.iri)
			if tt.valid {
				assert.NoError(t, err)
				assert.True(t, grammar.IsValidIRI(tt.iri))
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, grammar.ErrInvalidIRI))
			assert.False(t, grammar.IsValidIRI(tt.iri))
		})
	}
}

func TestValidateLanguageTag(t *testing.T) {
	valid := []string{"en", "en-US", "zh-Hant-TW", "x-klingon", "i-navajo", "de-CH-1996", "abcdefgh"}
	invalid := []string{"", "en_US", "-en", "en-", "en--US", "abcdefghi", "en-US-toolongsubtag", "12", "en US"}

	for _, tag := range valid {
		assert.NoError(t, grammar.ValidateLanguageTag(tag), tag)
		assert.True(t, grammar.IsValidLanguageTag(tag), tag)
	}
	for _, tag := range invalid {
		err := grammar.ValidateLanguageTag(tag)
		assert.True(t, errors.Is(err, grammar.ErrInvalidLanguageTag), tag)
		assert.False(t, grammar.IsValidLanguageTag(tag), tag)
	}
}

func TestValidateDatatype(t *testing.T) {
	assert.NoError(t, grammar.ValidateDatatype(rml.XSDInteger, false))
	assert.NoError(t, grammar.ValidateDatatype(rml.XSDInteger, true))
	assert.NoError(t, grammar.ValidateDatatype("http://example.org/dt#celsius", false))

	err := grammar.ValidateDatatype("http://example.org/dt#celsius", true)
	assert.True(t, errors.Is(err, grammar.ErrInvalidDatatype))

	err = grammar.ValidateDatatype("integer", false)
	assert.True(t, errors.Is(err, grammar.ErrInvalidDatatype))
}

func TestValidateLiteral(t *testing.T) {
	assert.NoError(t, grammar.ValidateLiteral(""))
	assert.NoError(t, grammar.ValidateLiteral("Ada Lovelace"))
	assert.True(t, grammar.IsValidLiteral("42"))

	assert.True(t, errors.Is(grammar.ValidateLiteral("bad\xffutf8"), grammar.ErrInvalidLiteral))
	assert.True(t, errors.Is(grammar.ValidateLiteral("nul\x00byte"), grammar.ErrInvalidLiteral))
}

func TestValidateInverseExpression(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		valid bool
	}{
		{"single reference", "{id}", true},
		{"sql style", `{"DEPTNO"} = SUBSTRING({DEPTID}, 5)`, true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"no reference", "constant text", false},
		{"unbalanced", "{id", false},
		{"empty placeholder", "x = {}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := grammar.ValidateInverseExpression(tt.expr)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, grammar.ErrInvalidInverseExpression))
		})
	}
}

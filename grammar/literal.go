package grammar

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/c360studio/semmap/template"
	"github.com/c360studio/semmap/vocabulary/rml"
)

// languageTagPattern is the RFC-3066 Language-Tag production:
// a 1-8 letter primary subtag followed by 1-8 alphanumeric subtags.
var languageTagPattern = regexp.MustCompile(`^[A-Za-z]{1,8}(-[A-Za-z0-9]{1,8})*$`)

// ValidateLanguageTag checks tag against the RFC-3066 grammar.
func ValidateLanguageTag(tag string) error {
	if !languageTagPattern.MatchString(tag) {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidLanguageTag, "%q", tag),
			"language tags look like en, en-US or zh-Hant-TW")
	}
	return nil
}

// IsValidLanguageTag reports whether tag is an RFC-3066 language tag.
func IsValidLanguageTag(tag string) bool {
	return languageTagPattern.MatchString(tag)
}

// ValidateDatatype checks a datatype IRI. With strict set, only the XSD and RDF
// datatypes known to the rml vocabulary are accepted.
func ValidateDatatype(iri string, strict bool) error {
	if err := ValidateIRI(iri); err != nil {
		return errors.WithSecondaryError(errors.Wrapf(ErrInvalidDatatype, "%q is not an absolute IRI", iri), err)
	}
	if strict && !rml.IsKnownDatatype(iri) {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidDatatype, "%q is not an XSD or RDF datatype", iri),
			"disable validation.strict_datatypes to allow custom datatypes")
	}
	return nil
}

// ValidateLiteral checks that a lexical form can appear in an RDF literal.
func ValidateLiteral(lexical string) error {
	if !utf8.ValidString(lexical) {
		return errors.Wrap(ErrInvalidLiteral, "lexical form is not valid UTF-8")
	}
	if strings.ContainsRune(lexical, 0) {
		return errors.Wrap(ErrInvalidLiteral, "lexical form contains NUL")
	}
	return nil
}

// IsValidLiteral reports whether lexical is a valid literal lexical form.
func IsValidLiteral(lexical string) bool {
	return ValidateLiteral(lexical) == nil
}

// ValidateInverseExpression checks an inverse expression. It follows the string
// template grammar and must reference at least one source field.
func ValidateInverseExpression(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.Wrap(ErrInvalidInverseExpression, "empty expression")
	}
	tmpl, err := template.Parse(expr)
	if err != nil {
		return errors.WithSecondaryError(errors.Wrapf(ErrInvalidInverseExpression, "%q", expr), err)
	}
	if len(tmpl.Names()) == 0 {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidInverseExpression, "%q references no field", expr),
			"reference source fields with {name} placeholders")
	}
	return nil
}

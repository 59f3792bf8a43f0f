package termmap

import (
	"errors"
	"fmt"

	crdb "github.com/cockroachdb/errors"

	"github.com/c360studio/semmap/vocabulary/rml"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrStructural indicates an illegal combination of otherwise valid fields.
	ErrStructural = errors.New("structural error")

	// ErrSyntax indicates a field whose grammar is malformed.
	ErrSyntax = errors.New("syntax error")

	// ErrData indicates a well-formed field whose value fails a semantic check.
	ErrData = errors.New("data error")
)

// Kind is the class of a validation failure.
type Kind int

const (
	KindStructural Kind = iota + 1
	KindSyntax
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindSyntax:
		return "syntax"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindStructural:
		return ErrStructural
	case KindSyntax:
		return ErrSyntax
	case KindData:
		return ErrData
	default:
		return nil
	}
}

// Error is returned by Builder.Build. It identifies the failure class, the role
// being built, the offending field (an rml vocabulary predicate) and the value
// that was received.
type Error struct {
	Kind  Kind
	Role  Role
	Field string
	Value string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s error: %s map: %s", e.Kind, e.Role, e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel of the error's Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error { return e.Err }

// FieldIRI returns the rr:/rml: IRI of the offending field.
func (e *Error) FieldIRI() string {
	return rml.FieldIRI(e.Field)
}

// Hint returns user-facing hints attached to the underlying cause, if any.
func (e *Error) Hint() string {
	if e.Err == nil {
		return ""
	}
	return crdb.FlattenHints(e.Err)
}

func structuralf(role Role, field, value, format string, args ...any) *Error {
	return &Error{Kind: KindStructural, Role: role, Field: field, Value: value, Msg: fmt.Sprintf(format, args...)}
}

func syntaxErr(role Role, field, value string, cause error) *Error {
	return &Error{Kind: KindSyntax, Role: role, Field: field, Value: value, Err: cause}
}

func dataErr(role Role, field, value string, cause error) *Error {
	return &Error{Kind: KindData, Role: role, Field: field, Value: value, Err: cause}
}

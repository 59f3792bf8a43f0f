package termmap

import (
	"sync/atomic"

	"github.com/c360studio/semmap/grammar"
	"github.com/c360studio/semmap/selector"
	"github.com/c360studio/semmap/template"
	"github.com/c360studio/semmap/vocabulary/rml"
)

// Fields are the raw values of one term map as read from a mapping document.
// An empty string means the field is absent.
type Fields struct {
	Constant          *Value
	DataType          string
	LanguageTag       string
	Template          string
	TermType          string // explicit term type IRI
	InverseExpression string
	Reference         string // raw field name, canonicalized by the SelectorFactory
}

// TermMap is a validated term map. It is read-only once built, apart from the
// one-time implicit datatype assignment, and safe to share between goroutines.
type TermMap struct {
	role       Role
	constant   *Value
	dataType   string
	termType   TermType
	language   string
	tmpl       *template.Template
	inverse    string
	reference  selector.Selector
	hasRef     bool
	selectors  []selector.Selector
	implicitDT atomic.Pointer[string]
}

// Role returns the position this map fills.
func (tm *TermMap) Role() Role { return tm.role }

// MapType classifies the map by the field that generates its value.
func (tm *TermMap) MapType() MapType {
	switch {
	case tm.constant != nil:
		return ConstantValued
	case tm.hasRef:
		return ReferenceValued
	case tm.tmpl != nil:
		return TemplateValued
	case tm.termType == TermBlankNode:
		return NoValueForBlankNode
	default:
		return MapTypeNone
	}
}

// TermType returns the resolved term type.
func (tm *TermMap) TermType() TermType { return tm.termType }

// ConstantValue returns the constant term, if any.
func (tm *TermMap) ConstantValue() (Value, bool) {
	if tm.constant == nil {
		return Value{}, false
	}
	return *tm.constant, true
}

// Reference returns the referenced selector of a reference-valued map.
func (tm *TermMap) Reference() (selector.Selector, bool) {
	return tm.reference, tm.hasRef
}

// StringTemplate returns the template as written, or "".
func (tm *TermMap) StringTemplate() string {
	if tm.tmpl == nil {
		return ""
	}
	return tm.tmpl.String()
}

// Template returns the parsed template, or nil.
func (tm *TermMap) Template() *template.Template { return tm.tmpl }

// DataType returns the explicit datatype IRI, or "".
func (tm *TermMap) DataType() string { return tm.dataType }

// LanguageTag returns the language tag, or "".
func (tm *TermMap) LanguageTag() string { return tm.language }

// InverseExpression returns the inverse expression, or "".
func (tm *TermMap) InverseExpression() string { return tm.inverse }

// IsTypeable reports whether the map produces literals without a language tag.
func (tm *TermMap) IsTypeable() bool {
	return tm.termType == TermLiteral && tm.language == ""
}

// ReferencedSelectors returns the source fields the map reads, in template order.
// Repeated template placeholders appear once per occurrence.
func (tm *TermMap) ReferencedSelectors() []selector.Selector {
	switch tm.MapType() {
	case ReferenceValued:
		return []selector.Selector{tm.reference}
	case TemplateValued:
		out := make([]selector.Selector, len(tm.selectors))
		copy(out, tm.selectors)
		return out
	default:
		return []selector.Selector{}
	}
}

// Expand generates the value of a template-valued map, binding each placeholder
// through the selector ReferencedSelectors reports for it. ok is false for other
// map types and when any placeholder has no value.
func (tm *TermMap) Expand(lookup func(selector.Selector) (string, bool), escape func(string) string) (string, bool) {
	if tm.MapType() != TemplateValued {
		return "", false
	}
	return tm.tmpl.ExpandAt(func(pos int, _ string) (string, bool) {
		return lookup(tm.selectors[pos])
	}, escape)
}

// ImplicitDataType returns the datatype inferred from the source, or "".
func (tm *TermMap) ImplicitDataType() string {
	if p := tm.implicitDT.Load(); p != nil {
		return *p
	}
	return ""
}

// SetImplicitDataType records the datatype inferred for a typeable map. It may be
// called once; later calls fail.
func (tm *TermMap) SetImplicitDataType(iri string) error {
	if !tm.IsTypeable() {
		return structuralf(tm.role, rml.TermMapDatatype, iri, "implicit datatype on a map that is not typeable")
	}
	if err := grammar.ValidateDatatype(iri, false); err != nil {
		return dataErr(tm.role, rml.TermMapDatatype, iri, err)
	}
	if !tm.implicitDT.CompareAndSwap(nil, &iri) {
		return structuralf(tm.role, rml.TermMapDatatype, iri, "implicit datatype already set to %q", tm.ImplicitDataType())
	}
	return nil
}

// IsOverridden reports whether an implicit datatype was inferred and the explicit
// datatype differs from it.
func (tm *TermMap) IsOverridden() bool {
	implicit := tm.ImplicitDataType()
	return implicit != "" && implicit != tm.dataType
}

// ImplicitCategory returns the lexical transformation category of the implicit
// datatype, or rml.CategoryNone.
func (tm *TermMap) ImplicitCategory() rml.DatatypeCategory {
	return rml.CategoryOf(tm.ImplicitDataType())
}

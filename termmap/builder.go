package termmap

import (
	"fmt"

	"github.com/c360studio/semmap/grammar"
	"github.com/c360studio/semmap/selector"
	"github.com/c360studio/semmap/template"
	"github.com/c360studio/semmap/vocabulary/rml"
)

// SelectorFactory turns raw field names into canonical selectors. FromPlaceholder
// receives template placeholder names, which the template parser has already
// unescaped.
type SelectorFactory interface {
	FromName(name string) selector.Selector
	FromPlaceholder(name string) selector.Selector
}

// Observer receives the outcome of every Build call. Implementations are scoped
// to one specification load.
type Observer interface {
	Built(tm *TermMap)
	Rejected(role Role, err *Error)
}

type nopObserver struct{}

func (nopObserver) Built(*TermMap)         {}
func (nopObserver) Rejected(Role, *Error) {}

// Builder validates raw fields and produces term maps.
type Builder struct {
	selectors       SelectorFactory
	observer        Observer
	strictDatatypes bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithObserver reports build outcomes to o.
func WithObserver(o Observer) Option {
	return func(b *Builder) {
		if o != nil {
			b.observer = o
		}
	}
}

// WithStrictDatatypes restricts explicit datatypes to XSD and RDF datatypes.
func WithStrictDatatypes(strict bool) Option {
	return func(b *Builder) {
		b.strictDatatypes = strict
	}
}

// NewBuilder creates a Builder. A nil factory resolves names as plain columns of
// the default source.
func NewBuilder(selectors SelectorFactory, opts ...Option) *Builder {
	if selectors == nil {
		selectors = selector.NewContextFactory("", selector.FormulationColumn)
	}
	b := &Builder{
		selectors: selectors,
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates f for role and returns the term map, or an *Error for the first
// violation found.
func (b *Builder) Build(role Role, f Fields) (*TermMap, error) {
	tm, err := b.build(role, f)
	if err != nil {
		b.observer.Rejected(role, err)
		return nil, err
	}
	b.observer.Built(tm)
	return tm, nil
}

func (b *Builder) build(role Role, f Fields) (*TermMap, *Error) {
	rules, ok := roles[role]
	if !ok {
		return nil, structuralf(role, rml.TermMapTermType, "", "unknown role")
	}

	if f.InverseExpression != "" {
		if f.Constant != nil {
			return nil, structuralf(role, rml.TermMapInverse, f.InverseExpression,
				"an inverse expression cannot be associated with a constant-valued term map")
		}
		if err := grammar.ValidateInverseExpression(f.InverseExpression); err != nil {
			return nil, syntaxErr(role, rml.TermMapInverse, f.InverseExpression, err)
		}
	}

	var tmpl *template.Template
	if f.Template != "" {
		parsed, err := template.Parse(f.Template)
		if err != nil {
			return nil, syntaxErr(role, rml.TermMapTemplate, f.Template, err)
		}
		tmpl = parsed
	}

	if f.LanguageTag != "" {
		if err := grammar.ValidateLanguageTag(f.LanguageTag); err != nil {
			return nil, dataErr(role, rml.TermMapLanguage, f.LanguageTag, err)
		}
	}

	termType, terr := resolveTermType(role, f)
	if terr != nil {
		return nil, terr
	}
	if !rules.allows(termType) {
		return nil, structuralf(role, rml.TermMapTermType, termType.IRI(),
			"a %s map cannot produce %s terms", role, termType)
	}

	if err := checkValueSource(role, f, termType); err != nil {
		return nil, err
	}

	tm := &TermMap{
		role:     role,
		termType: termType,
		language: f.LanguageTag,
		tmpl:     tmpl,
		inverse:  f.InverseExpression,
	}

	if f.DataType != "" {
		if !tm.IsTypeable() {
			return nil, structuralf(role, rml.TermMapDatatype, f.DataType,
				"a term map that is not typeable must not have a datatype")
		}
		if err := grammar.ValidateDatatype(f.DataType, b.strictDatatypes); err != nil {
			return nil, dataErr(role, rml.TermMapDatatype, f.DataType, err)
		}
		tm.dataType = f.DataType
	}

	if f.Constant != nil {
		if err := rules.checkConstant(*f.Constant); err != nil {
			return nil, dataErr(role, rml.TermMapConstant, f.Constant.Lexical, err)
		}
		c := *f.Constant
		tm.constant = &c
	}

	if f.Reference != "" {
		tm.reference = b.selectors.FromName(f.Reference)
		tm.hasRef = true
	}
	if tmpl != nil {
		names := tmpl.Names()
		tm.selectors = make([]selector.Selector, 0, len(names))
		for _, name := range names {
			tm.selectors = append(tm.selectors, b.selectors.FromPlaceholder(name))
		}
	}

	return tm, nil
}

// resolveTermType validates an explicit term type or derives the role default.
func resolveTermType(role Role, f Fields) (TermType, *Error) {
	if f.TermType == "" {
		return DefaultTermType(role, f), nil
	}
	if err := grammar.ValidateIRI(f.TermType); err != nil {
		return TermUnknown, dataErr(role, rml.TermMapTermType, f.TermType, err)
	}
	tt, ok := TermTypeFromIRI(f.TermType)
	if !ok {
		return TermUnknown, &Error{
			Kind:  KindSyntax,
			Role:  role,
			Field: rml.TermMapTermType,
			Value: f.TermType,
			Msg:   fmt.Sprintf("term type must be one of %s, %s or %s", rml.TermTypeIRI, rml.TermTypeBlankNode, rml.TermTypeLiteral),
		}
	}
	return tt, nil
}

// DefaultTermType is the term type of a map whose fields carry no explicit one.
// Object maps produce literals when they hold a reference, a datatype, a language
// tag or a literal constant; every other map produces IRIs.
func DefaultTermType(role Role, f Fields) TermType {
	if role == RoleObject &&
		(f.Reference != "" || f.DataType != "" || f.LanguageTag != "" ||
			(f.Constant != nil && f.Constant.IsLiteral())) {
		return TermLiteral
	}
	return TermIRI
}

// checkValueSource enforces that at most one of constant, reference and template
// is set, and that a map with none of them is an auto-generated blank node.
func checkValueSource(role Role, f Fields, termType TermType) *Error {
	var set []string
	if f.Constant != nil {
		set = append(set, rml.TermMapConstant)
	}
	if f.Reference != "" {
		set = append(set, rml.TermMapReference)
	}
	if f.Template != "" {
		set = append(set, rml.TermMapTemplate)
	}

	switch {
	case len(set) > 1:
		return structuralf(role, set[1], "", "%s and %s are mutually exclusive", set[0], set[1])
	case len(set) == 0 && termType != TermBlankNode:
		return structuralf(role, rml.TermMapTermType, termType.IRI(),
			"a constant, a reference or a template must be specified unless the term type is rr:BlankNode")
	}
	return nil
}

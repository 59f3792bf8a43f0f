package termmap

import (
	"fmt"
	"strings"

	"github.com/c360studio/semmap/vocabulary/rml"
)

// TermType is the kind of RDF term a map produces.
type TermType int

const (
	TermUnknown TermType = iota
	TermIRI
	TermBlankNode
	TermLiteral
)

// String returns the local name used in the R2RML vocabulary.
func (t TermType) String() string {
	switch t {
	case TermIRI:
		return "IRI"
	case TermBlankNode:
		return "BlankNode"
	case TermLiteral:
		return "Literal"
	default:
		return "unknown"
	}
}

// IRI returns the rr: term type IRI, or "" for TermUnknown.
func (t TermType) IRI() string {
	switch t {
	case TermIRI:
		return rml.TermTypeIRI
	case TermBlankNode:
		return rml.TermTypeBlankNode
	case TermLiteral:
		return rml.TermTypeLiteral
	default:
		return ""
	}
}

// TermTypeFromIRI maps an rr: term type IRI onto a TermType.
func TermTypeFromIRI(iri string) (TermType, bool) {
	switch iri {
	case rml.TermTypeIRI:
		return TermIRI, true
	case rml.TermTypeBlankNode:
		return TermBlankNode, true
	case rml.TermTypeLiteral:
		return TermLiteral, true
	default:
		return TermUnknown, false
	}
}

// MapType classifies a term map by the field that generates its value.
type MapType int

const (
	MapTypeNone MapType = iota
	ConstantValued
	ReferenceValued
	TemplateValued
	NoValueForBlankNode
)

func (m MapType) String() string {
	switch m {
	case ConstantValued:
		return "constant-valued"
	case ReferenceValued:
		return "reference-valued"
	case TemplateValued:
		return "template-valued"
	case NoValueForBlankNode:
		return "blank-node"
	default:
		return "unclassified"
	}
}

// Role is the position a term map fills in a generated quad.
type Role int

const (
	RoleSubject Role = iota + 1
	RolePredicate
	RoleObject
	RoleGraph
)

func (r Role) String() string {
	switch r {
	case RoleSubject:
		return "subject"
	case RolePredicate:
		return "predicate"
	case RoleObject:
		return "object"
	case RoleGraph:
		return "graph"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// GroupPredicate returns the rml rule-group predicate that links a map of this
// role to its rule group, or "" for an unknown role.
func (r Role) GroupPredicate() string {
	switch r {
	case RoleSubject:
		return rml.RuleGroupSubject
	case RolePredicate:
		return rml.RuleGroupPredicate
	case RoleObject:
		return rml.RuleGroupObject
	case RoleGraph:
		return rml.RuleGroupGraph
	default:
		return ""
	}
}

// ParseRole accepts "subject", "predicate", "object" or "graph", case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subject":
		return RoleSubject, nil
	case "predicate":
		return RolePredicate, nil
	case "object":
		return RoleObject, nil
	case "graph":
		return RoleGraph, nil
	default:
		return 0, fmt.Errorf("unknown term map role %q", s)
	}
}

// ValueKind tells IRIs and literals apart in constant values.
type ValueKind int

const (
	ValueIRI ValueKind = iota + 1
	ValueLiteral
)

// Value is a constant RDF term: an IRI, or a literal with an optional language
// tag or datatype.
type Value struct {
	Kind     ValueKind
	Lexical  string
	Language string
	Datatype string
}

// NewIRI returns an IRI value.
func NewIRI(iri string) Value {
	return Value{Kind: ValueIRI, Lexical: iri}
}

// NewLiteral returns a plain literal value.
func NewLiteral(lexical string) Value {
	return Value{Kind: ValueLiteral, Lexical: lexical}
}

// NewLangLiteral returns a language-tagged literal value.
func NewLangLiteral(lexical, language string) Value {
	return Value{Kind: ValueLiteral, Lexical: lexical, Language: language}
}

// NewTypedLiteral returns a datatyped literal value.
func NewTypedLiteral(lexical, datatype string) Value {
	return Value{Kind: ValueLiteral, Lexical: lexical, Datatype: datatype}
}

// IsIRI reports whether v is an IRI.
func (v Value) IsIRI() bool { return v.Kind == ValueIRI }

// IsLiteral reports whether v is a literal.
func (v Value) IsLiteral() bool { return v.Kind == ValueLiteral }

// String renders v in N-Triples style.
func (v Value) String() string {
	if v.Kind == ValueIRI {
		return "<" + v.Lexical + ">"
	}
	quoted := fmt.Sprintf("%q", v.Lexical)
	switch {
	case v.Language != "":
		return quoted + "@" + v.Language
	case v.Datatype != "":
		return quoted + "^^<" + v.Datatype + ">"
	default:
		return quoted
	}
}

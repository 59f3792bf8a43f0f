package rml

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
)

func TestPredicatesRegistered(t *testing.T) {
	predicates := map[string]string{
		TermMapConstant:    R2RMLNamespace + "constant",
		TermMapReference:   RMLNamespace + "reference",
		TermMapTemplate:    R2RMLNamespace + "template",
		TermMapTermType:    R2RMLNamespace + "termType",
		TermMapDatatype:    R2RMLNamespace + "datatype",
		TermMapLanguage:    R2RMLNamespace + "language",
		TermMapInverse:     R2RMLNamespace + "inverseExpression",
		RuleGroupSubject:   R2RMLNamespace + "subjectMap",
		RuleGroupPredicate: R2RMLNamespace + "predicateMap",
		RuleGroupObject:    R2RMLNamespace + "objectMap",
		RuleGroupGraph:     R2RMLNamespace + "graphMap",
	}

	for pred, iri := range predicates {
		t.Run(pred, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(pred)
			if meta == nil {
				t.Fatalf("predicate %s not registered", pred)
			}
			if meta.Description == "" {
				t.Errorf("predicate %s missing description", pred)
			}
			if meta.StandardIRI != iri {
				t.Errorf("predicate %s: expected IRI %s, got %s", pred, iri, meta.StandardIRI)
			}
		})
	}
}

func TestFieldIRI(t *testing.T) {
	if got := FieldIRI(TermMapTemplate); got != R2RMLNamespace+"template" {
		t.Errorf("expected rr:template, got %s", got)
	}
	if got := FieldIRI("rml.unknown.field"); got != "rml.unknown.field" {
		t.Errorf("expected fallback to predicate name, got %s", got)
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		iri  string
		want DatatypeCategory
	}{
		{XSDInteger, CategoryNumeric},
		{XSDDateTime, CategoryTemporal},
		{XSDBoolean, CategoryBoolean},
		{XSDHexBinary, CategoryBinary},
		{RDFXMLLiteral, CategoryMarkup},
		{XSDString, CategoryString},
		{"http://example.org/custom#type", CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			if got := CategoryOf(tt.iri); got != tt.want {
				t.Errorf("CategoryOf(%s) = %q, want %q", tt.iri, got, tt.want)
			}
		})
	}

	if !IsKnownDatatype(XSDDecimal) {
		t.Error("xsd:decimal should be known")
	}
	if IsKnownDatatype("http://example.org/custom#type") {
		t.Error("custom datatype should not be known")
	}
}

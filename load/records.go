package load

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semmap/termmap"
	"github.com/c360studio/semmap/vocabulary/rml"
)

// Document is one record file.
type Document struct {
	Source      string        `yaml:"source"`
	Formulation string        `yaml:"formulation"`
	Groups      []GroupRecord `yaml:"groups"`
}

// GroupRecord is a rule group and the term maps it owns.
type GroupRecord struct {
	Name string      `yaml:"name"`
	Maps []MapRecord `yaml:"maps"`
}

// MapRecord holds the raw fields of one term map.
type MapRecord struct {
	Role     string          `yaml:"role"`
	Constant *ConstantRecord `yaml:"constant,omitempty"`
	Datatype string          `yaml:"datatype,omitempty"`
	Language string          `yaml:"language,omitempty"`
	Template string          `yaml:"template,omitempty"`
	TermType string          `yaml:"term_type,omitempty"`
	Inverse  string          `yaml:"inverse,omitempty"`
	Ref      string          `yaml:"reference,omitempty"`

	// Line is the position of the record in its file.
	Line int `yaml:"-"`
}

// ConstantRecord is a constant term: exactly one of IRI and Literal.
type ConstantRecord struct {
	IRI      string  `yaml:"iri,omitempty"`
	Literal  *string `yaml:"literal,omitempty"`
	Language string  `yaml:"language,omitempty"`
	Datatype string  `yaml:"datatype,omitempty"`
}

// UnmarshalYAML records the line of the mapping node.
func (m *MapRecord) UnmarshalYAML(node *yaml.Node) error {
	type plain MapRecord
	if err := node.Decode((*plain)(m)); err != nil {
		return err
	}
	m.Line = node.Line
	return nil
}

// Decode reads a record file.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return &doc, nil
}

// Fields converts the record into builder input. A malformed constant is
// reported as a structural *termmap.Error on the constant field.
func (m MapRecord) Fields() (termmap.Fields, error) {
	f := termmap.Fields{
		DataType:          m.Datatype,
		LanguageTag:       m.Language,
		Template:          m.Template,
		TermType:          expandTermType(m.TermType),
		InverseExpression: m.Inverse,
		Reference:         m.Ref,
	}
	if m.Constant != nil {
		v, err := m.Constant.Value()
		if err != nil {
			return termmap.Fields{}, &termmap.Error{
				Kind:  termmap.KindStructural,
				Field: rml.TermMapConstant,
				Msg:   err.Error(),
			}
		}
		f.Constant = &v
	}
	return f, nil
}

// Value converts the record into a constant term.
func (c ConstantRecord) Value() (termmap.Value, error) {
	switch {
	case c.IRI != "" && c.Literal != nil:
		return termmap.Value{}, fmt.Errorf("constant sets both iri and literal")
	case c.IRI != "":
		if c.Language != "" || c.Datatype != "" {
			return termmap.Value{}, fmt.Errorf("constant iri %q cannot carry a language or datatype", c.IRI)
		}
		return termmap.NewIRI(c.IRI), nil
	case c.Literal != nil:
		return termmap.Value{
			Kind:     termmap.ValueLiteral,
			Lexical:  *c.Literal,
			Language: c.Language,
			Datatype: c.Datatype,
		}, nil
	default:
		return termmap.Value{}, fmt.Errorf("constant needs an iri or a literal")
	}
}

// expandTermType accepts the rr: local names IRI, BlankNode and Literal as
// shorthand for the full term type IRIs.
func expandTermType(s string) string {
	switch strings.TrimSpace(s) {
	case "IRI":
		return rml.TermTypeIRI
	case "BlankNode":
		return rml.TermTypeBlankNode
	case "Literal":
		return rml.TermTypeLiteral
	default:
		return s
	}
}

package termmap

import (
	"fmt"

	"github.com/c360studio/semmap/grammar"
)

// roleRules are the two per-role predicates the core consults: which term types a
// role may produce and which constant values it may hold.
type roleRules struct {
	termTypes     []TermType
	checkConstant func(v Value) error
}

var roles = map[Role]roleRules{
	RoleSubject: {
		termTypes:     []TermType{TermIRI, TermBlankNode},
		checkConstant: constantIRI,
	},
	RolePredicate: {
		termTypes:     []TermType{TermIRI},
		checkConstant: constantIRI,
	},
	RoleObject: {
		termTypes:     []TermType{TermIRI, TermBlankNode, TermLiteral},
		checkConstant: constantIRIOrLiteral,
	},
	RoleGraph: {
		termTypes:     []TermType{TermIRI},
		checkConstant: constantIRI,
	},
}

func (r roleRules) allows(tt TermType) bool {
	for _, allowed := range r.termTypes {
		if allowed == tt {
			return true
		}
	}
	return false
}

// AllowedTermTypes returns the term types a role may produce.
func AllowedTermTypes(role Role) []TermType {
	rules, ok := roles[role]
	if !ok {
		return nil
	}
	out := make([]TermType, len(rules.termTypes))
	copy(out, rules.termTypes)
	return out
}

func constantIRI(v Value) error {
	if v.Kind != ValueIRI {
		return fmt.Errorf("constant must be an IRI, got literal %s", v)
	}
	return grammar.ValidateIRI(v.Lexical)
}

func constantIRIOrLiteral(v Value) error {
	switch v.Kind {
	case ValueIRI:
		return grammar.ValidateIRI(v.Lexical)
	case ValueLiteral:
		if err := grammar.ValidateLiteral(v.Lexical); err != nil {
			return err
		}
		if v.Language != "" && v.Datatype != "" {
			return fmt.Errorf("literal %s has both a language tag and a datatype", v)
		}
		if v.Language != "" {
			return grammar.ValidateLanguageTag(v.Language)
		}
		if v.Datatype != "" {
			return grammar.ValidateDatatype(v.Datatype, false)
		}
		return nil
	default:
		return fmt.Errorf("constant has no kind")
	}
}

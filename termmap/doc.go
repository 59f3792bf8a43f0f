// Package termmap models R2RML/RML term maps: rules that produce one RDF term
// (IRI, blank node or literal) from a record of a structured source.
//
// A Builder validates the raw fields of a rule for a given Role and returns an
// immutable *TermMap, or a typed *Error naming the first violation. No partially
// built term map is ever returned.
//
//	b := termmap.NewBuilder(selector.NewContextFactory("people.csv", selector.FormulationCSV))
//	tm, err := b.Build(termmap.RoleSubject, termmap.Fields{
//	    Template: "http://example.org/person/{id}",
//	})
//	if errors.Is(err, termmap.ErrSyntax) {
//	    // malformed template
//	}
//	for _, sel := range tm.ReferencedSelectors() {
//	    // bind sel against source records
//	}
//
// Rule groups and their term maps live in an Arena addressed by GroupID and MapID.
// Object maps are linked into their parent group's ordered, duplicate-free set.
//
// # Validation order
//
//  1. inverse expression on a constant-valued map (structural)
//  2. inverse expression grammar (syntax)
//  3. template grammar (syntax)
//  4. language tag (data)
//  5. term type resolution: explicit IRI (data/syntax) or role default
//  6. role term-type rule, then exactly one of constant/reference/template unless
//     the map is an auto-generated blank node (structural)
//  7. datatype on a non-typeable map (structural), datatype IRI (data)
//  8. role constant-value shape (data)
package termmap

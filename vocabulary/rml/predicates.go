package rml

import "github.com/c360studio/semstreams/vocabulary"

// Term map field predicates. Validation errors name the offending field with these.
const (
	// TermMapConstant is the fixed RDF term produced by a constant-valued map.
	TermMapConstant = "rml.termmap.constant"

	// TermMapReference is the source selector of a reference-valued map.
	TermMapReference = "rml.termmap.reference"

	// TermMapTemplate is the string template of a template-valued map.
	TermMapTemplate = "rml.termmap.template"

	// TermMapTermType is the explicit term type IRI.
	TermMapTermType = "rml.termmap.term_type"

	// TermMapDatatype is the explicit datatype IRI of a typeable map.
	TermMapDatatype = "rml.termmap.datatype"

	// TermMapLanguage is the language tag of a literal map.
	TermMapLanguage = "rml.termmap.language"

	// TermMapInverse is the inverse expression of a reference or template map.
	TermMapInverse = "rml.termmap.inverse_expression"
)

// Rule group predicates linking a triples map to its term maps.
const (
	// RuleGroupSubject links a triples map to its subject map.
	RuleGroupSubject = "rml.rulegroup.subject_map"

	// RuleGroupPredicate links a predicate-object map to its predicate maps.
	RuleGroupPredicate = "rml.rulegroup.predicate_map"

	// RuleGroupObject links a predicate-object map to its object maps.
	RuleGroupObject = "rml.rulegroup.object_map"

	// RuleGroupGraph links a subject or predicate-object map to its graph maps.
	RuleGroupGraph = "rml.rulegroup.graph_map"
)

// FieldIRI returns the standard IRI registered for a field predicate, or the
// predicate itself when none is registered.
func FieldIRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return predicate
}

func init() {
	vocabulary.Register(TermMapConstant,
		vocabulary.WithDescription("Constant IRI or literal produced by the term map"),
		vocabulary.WithDataType("term"),
		vocabulary.WithIRI(R2RMLNamespace+"constant"))

	vocabulary.Register(TermMapReference,
		vocabulary.WithDescription("Reference to a field of the logical source"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RMLNamespace+"reference"))

	vocabulary.Register(TermMapTemplate,
		vocabulary.WithDescription("String template with {selector} placeholders"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(R2RMLNamespace+"template"))

	vocabulary.Register(TermMapTermType,
		vocabulary.WithDescription("Kind of RDF term produced: rr:IRI, rr:BlankNode or rr:Literal"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(R2RMLNamespace+"termType"))

	vocabulary.Register(TermMapDatatype,
		vocabulary.WithDescription("Datatype IRI of generated literals"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(R2RMLNamespace+"datatype"))

	vocabulary.Register(TermMapLanguage,
		vocabulary.WithDescription("Language tag of generated literals"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(R2RMLNamespace+"language"))

	vocabulary.Register(TermMapInverse,
		vocabulary.WithDescription("Expression mapping a generated term back to source values"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(R2RMLNamespace+"inverseExpression"))

	vocabulary.Register(RuleGroupSubject,
		vocabulary.WithDescription("Subject map of a triples map"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(R2RMLNamespace+"subjectMap"))

	vocabulary.Register(RuleGroupPredicate,
		vocabulary.WithDescription("Predicate map of a predicate-object map"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(R2RMLNamespace+"predicateMap"))

	vocabulary.Register(RuleGroupObject,
		vocabulary.WithDescription("Object map of a predicate-object map"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(R2RMLNamespace+"objectMap"))

	vocabulary.Register(RuleGroupGraph,
		vocabulary.WithDescription("Graph map of a subject or predicate-object map"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(R2RMLNamespace+"graphMap"))
}

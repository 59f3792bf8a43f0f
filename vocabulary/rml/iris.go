package rml

// Namespace IRIs used by term maps.
const (
	// R2RMLNamespace is the W3C R2RML vocabulary namespace.
	R2RMLNamespace = "http://www.w3.org/ns/r2rml#"

	// RMLNamespace is the RML extension namespace.
	RMLNamespace = "http://semweb.mmlab.be/ns/rml#"

	// XSDNamespace is the XML Schema datatype namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

	// RDFNamespace is the RDF syntax namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// Term type IRIs. These are the only legal values of rr:termType.
const (
	TermTypeIRI       = R2RMLNamespace + "IRI"
	TermTypeBlankNode = R2RMLNamespace + "BlankNode"
	TermTypeLiteral   = R2RMLNamespace + "Literal"
)

// XSD datatype IRIs.
const (
	XSDString       = XSDNamespace + "string"
	XSDBoolean      = XSDNamespace + "boolean"
	XSDDecimal      = XSDNamespace + "decimal"
	XSDInteger      = XSDNamespace + "integer"
	XSDInt          = XSDNamespace + "int"
	XSDLong         = XSDNamespace + "long"
	XSDShort        = XSDNamespace + "short"
	XSDByte         = XSDNamespace + "byte"
	XSDDouble       = XSDNamespace + "double"
	XSDFloat        = XSDNamespace + "float"
	XSDDate         = XSDNamespace + "date"
	XSDTime         = XSDNamespace + "time"
	XSDDateTime     = XSDNamespace + "dateTime"
	XSDDuration     = XSDNamespace + "duration"
	XSDHexBinary    = XSDNamespace + "hexBinary"
	XSDBase64Binary = XSDNamespace + "base64Binary"
	XSDAnyURI       = XSDNamespace + "anyURI"

	RDFLangString = RDFNamespace + "langString"
	RDFXMLLiteral = RDFNamespace + "XMLLiteral"
	RDFHTML       = RDFNamespace + "HTML"
	RDFJSON       = RDFNamespace + "JSON"
)

// DatatypeCategory groups datatypes by the lexical transformation the binding engine
// applies to source values before emitting a typed literal.
type DatatypeCategory string

const (
	CategoryNone     DatatypeCategory = ""
	CategoryString   DatatypeCategory = "string"
	CategoryNumeric  DatatypeCategory = "numeric"
	CategoryBoolean  DatatypeCategory = "boolean"
	CategoryTemporal DatatypeCategory = "temporal"
	CategoryBinary   DatatypeCategory = "binary"
	CategoryMarkup   DatatypeCategory = "markup"
)

var knownDatatypes = map[string]DatatypeCategory{
	XSDString:       CategoryString,
	XSDAnyURI:       CategoryString,
	XSDBoolean:      CategoryBoolean,
	XSDDecimal:      CategoryNumeric,
	XSDInteger:      CategoryNumeric,
	XSDInt:          CategoryNumeric,
	XSDLong:         CategoryNumeric,
	XSDShort:        CategoryNumeric,
	XSDByte:         CategoryNumeric,
	XSDDouble:       CategoryNumeric,
	XSDFloat:        CategoryNumeric,
	XSDDate:         CategoryTemporal,
	XSDTime:         CategoryTemporal,
	XSDDateTime:     CategoryTemporal,
	XSDDuration:     CategoryTemporal,
	XSDHexBinary:    CategoryBinary,
	XSDBase64Binary: CategoryBinary,
	RDFLangString:   CategoryString,
	RDFXMLLiteral:   CategoryMarkup,
	RDFHTML:         CategoryMarkup,
	RDFJSON:         CategoryMarkup,
}

// IsKnownDatatype reports whether iri is one of the XSD or RDF datatypes above.
func IsKnownDatatype(iri string) bool {
	_, ok := knownDatatypes[iri]
	return ok
}

// CategoryOf returns the transformation category for a datatype IRI.
// Unknown datatypes return CategoryNone.
func CategoryOf(iri string) DatatypeCategory {
	return knownDatatypes[iri]
}

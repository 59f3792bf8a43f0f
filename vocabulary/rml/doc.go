// Package rml provides vocabulary predicates and IRIs for R2RML/RML term maps.
//
// Term map fields are named with dotted predicates ("rml.termmap.template") internally
// and carry their standard rr:/rml: IRIs for diagnostics at API boundaries.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/semmap/vocabulary/rml"
package rml

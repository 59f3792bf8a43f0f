// Package grammar holds the pure validators a term map needs before classification:
// absolute IRIs, RFC-3066 language tags, datatype IRIs, literal lexical forms and
// inverse expressions.
//
// Every Validate* function returns nil or an error matching one of the package
// sentinels with errors.Is. The Is* helpers are boolean shorthands.
package grammar

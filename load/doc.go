// Package load builds the term maps of a mapping specification from record files.
//
// A record file is YAML with one entry per term map, carrying the raw fields a
// mapping-document front end would hand over:
//
//	source: people.csv
//	formulation: csv
//	groups:
//	  - name: person
//	    maps:
//	      - role: subject
//	        template: "http://example.org/person/{id}"
//	      - role: predicate
//	        constant: {iri: "http://xmlns.com/foaf/0.1/name"}
//	      - role: object
//	        reference: name
//	        language: en
//
// Loader validates every record with a termmap.Builder and collects the results in
// one termmap.Arena. Rejected records either abort the load (fail-fast) or are
// reported and skipped. Watcher re-triggers loads when record files change.
package load

// Package mapping provides the YAML declaration file: schema definitions,
// parsing, structural validation and the conversion into a type lattice,
// a declaration graph and the call shapes to resolve.
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  preset: java            # optional, pre-populates java.lang / java.util classes
//	  root: Object
//	  primitives:
//	    - {name: int, boxed: Integer}
//	  classes:
//	    - {name: Car, supers: [Vehicle]}
//	    - {name: Page, params: [E], supers: ["List<E>"], iterable: true}
//	  aliases:
//	    - {name: java.lang.Integer, target: Integer}
//	declarations:
//	  - name: CarMapper
//	    package: com.example
//	    uses: [DateMapper]
//	    methods:
//	      - name: carToDto
//	        abstract: true
//	        params:
//	          - car: Car                              # shorthand
//	          - {name: dto, type: CarDto, target: true}
//	        returns: void
//	    calls:
//	      - {name: made, sources: [Date], target: String}
//
// Type expressions use the syntax accepted by typemodel: generic arguments
// in angle brackets, "[]" suffixes for arrays and "?", "? extends B" or
// "? super B" wildcards. Methods may declare type parameters with bounds,
// e.g. "T extends Number & Comparable<T>".
//
// # Validation
//
// Validate reports structural problems as diagnostics. Unknown type names,
// bad type expressions and duplicate names are errors; a "uses" entry that
// names no declaration is only a warning, because retrieval reports it as a
// configuration fault with suggestions.
package mapping

// Package catalog holds the lesson catalog: an ordered list of named sections,
// each an ordered list of entries pairing an explanation with an optional
// runnable snippet.
//
// A catalog is loaded once from a document whose top-level keys are section
// names and whose values are lists of {explanation, code} records:
//
//	{
//	  "Blocks": [
//	    {"explanation": "Blocks are expressions.", "code": "let x = { 1 + 2 }; print(x)"}
//	  ]
//	}
//
// JSON and YAML documents are both accepted. Section order is the order of
// the document, never the iteration order of a Go map. Section names double
// as navigation anchors, so duplicates are rejected at load time with
// [ErrDuplicateSection].
//
// A loaded [Catalog] is read-only; accessors hand out copies.
package catalog

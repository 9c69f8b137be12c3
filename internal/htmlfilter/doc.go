// Package htmlfilter walks golang.org/x/net/html trees and lets NodeFilters
// replace the element nodes they accept.
//
// A Pipeline first collects every accepted node in document order and only
// then asks the filters for replacements, so rewrites never disturb the walk.
// Fragments (the output of a Markdown renderer) and full documents are both
// supported.
package htmlfilter

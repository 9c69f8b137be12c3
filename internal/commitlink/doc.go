// Package commitlink rewrites auto-linked commit mentions in rendered HTML.
//
// A commit mention is an anchor whose text equals its href and whose target is
// a commit, compare or pull request commit view on the repository host, for
// example
//
//	<a href="https://github.com/desktop/desktop/commit/6fd7945...">https://github.com/desktop/desktop/commit/6fd7945...</a>
//
// The Filter replaces the anchor content with a compact label such as
// <tt>6fd7945</tt> (or desktop/desktop@<tt>6fd7945</tt> for another repository)
// and keeps the href untouched.
//
// Everything here is a pure function of the node and the Repository the filter
// was built for. Nothing logs, nothing returns an error, and a Filter is safe
// for concurrent use on independent nodes. Links that do not fit a known shape,
// or that hit one of the exclusions, are left as they are.
package commitlink

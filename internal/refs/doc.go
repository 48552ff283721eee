// Package refs resolves user-supplied references (tag names, full SHAs or SHA
// prefixes) to the commit SHA used for history search.
//
// Resolution never fails for an unknown reference: when no tag has the exact
// name, the input is passed through unchanged and treated as a SHA or prefix.
// The [Resolution] records which of the two happened.
package refs

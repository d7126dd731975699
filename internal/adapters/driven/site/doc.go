// Package site implements the SiteWriter port on the local filesystem.
//
// Pages and artifacts accumulate in a hidden staging directory next to
// the output directory. Promote swaps the staged tree into place with
// two renames, so readers of the output directory never observe a
// half-written site and a failed build leaves the previous site
// untouched.
package site

// Package htmltpl renders pages from an embedded HTML template set.
//
// Templates are compiled into the binary with go:embed, one file per
// route template name plus a partials file shared by all of them. Each
// execution receives the site identity, the build time, and the page
// payload; contextual autoescaping covers everything interpolated into
// markup, URLs and scripts.
package htmltpl

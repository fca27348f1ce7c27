// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize cleans user-authored rich text before it is
// stored. Club and event descriptions accept basic formatting; script,
// event handlers, and javascript: URLs are stripped.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	return p
}()

// Sanitize returns the input with unsafe HTML removed.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

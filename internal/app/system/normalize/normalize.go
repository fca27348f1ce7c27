// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims surrounding whitespace and lower-cases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace and lower-cases a username.
// Usernames are compared case-insensitively everywhere, so they are
// stored in this canonical form.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace from a display name. Case is
// preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

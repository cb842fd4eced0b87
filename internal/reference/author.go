package reference

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Author is a publication author. Identity is the exact Name string: two
// spellings that differ only in case are distinct authors.
type Author struct {
	Name string `json:"name"`
}

// Lower returns the lowercase form of a name used for case-insensitive
// lookups and fuzzy search.
func Lower(name string) string {
	// Casers are stateful and not safe for concurrent use.
	return cases.Lower(language.Und).String(name)
}

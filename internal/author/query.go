// Package author provides fuzzy author name search and result ranking.
package author

import (
	"strings"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/storage"
)

// parts is a display name split on whitespace.
type parts []string

// parseName splits a name into whitespace-separated tokens.
//
//   - "Sam"             → ["Sam"]
//   - "Alice Sam"       → first="Alice", last="Sam"
//   - "Brian Sam Alice" → first="Brian", middle="Sam", last="Alice"
//
// A blank name yields a single empty token so first and last are defined.
func parseName(name string) parts {
	p := strings.Fields(name)
	if len(p) == 0 {
		return parts{name}
	}
	return p
}

func (p parts) first() string { return p[0] }
func (p parts) last() string  { return p[len(p)-1] }

// middle returns the middle token of a three-token name.
func (p parts) middle() (string, bool) {
	if len(p) != 3 {
		return "", false
	}
	return p[1], true
}

// Result is the outcome of an author search.
type Result struct {
	Query   string   `json:"query"`
	Exact   bool     `json:"exact"`   // the query equals a stored name, ignoring case
	Matches []string `json:"matches"` // stored names, ranked
}

// Resolved returns the lowercased name of the single author the search
// settled on: the query itself on an exact match, or the only match.
func (r Result) Resolved() (string, bool) {
	switch {
	case r.Exact:
		return reference.Lower(strings.TrimSpace(r.Query)), true
	case len(r.Matches) == 1:
		return reference.Lower(r.Matches[0]), true
	}
	return "", false
}

// Search finds every author whose lowercased name contains the lowercased
// query and ranks the stored names with Rank.
func Search(v *storage.Snapshot, query string) Result {
	lower := reference.Lower(strings.TrimSpace(query))
	names := v.LowerNames()

	res := Result{Query: query, Matches: []string{}}
	matched := make(map[string]bool)
	for _, n := range PartialMatch(lower, names) {
		matched[n] = true
		if n == lower {
			res.Exact = true
		}
	}

	var stored []string
	for id, n := range names {
		if matched[n] {
			stored = append(stored, v.AuthorName(id))
		}
	}
	if len(stored) > 0 {
		res.Matches = Rank(lower, stored)
	}
	return res
}

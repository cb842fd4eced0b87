// Package reference defines the core domain types for bibliographic records.
package reference

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a publication type name cannot be parsed.
var ErrUnknownType = errors.New("unknown publication type")

// PubType is the kind of a publication.
type PubType int

const (
	ConferencePaper PubType = iota
	Journal
	Book
	BookChapter
)

// NumTypes is the number of publication types. Per-type tables are sized by it.
const NumTypes = 4

// PubTypes lists every publication type in column order.
var PubTypes = [NumTypes]PubType{ConferencePaper, Journal, Book, BookChapter}

var typeLabels = [NumTypes]string{"Conference Paper", "Journal", "Book", "Book Chapter"}

// String returns the human-readable label used in report headers.
func (t PubType) String() string {
	if t < 0 || int(t) >= NumTypes {
		return fmt.Sprintf("PubType(%d)", int(t))
	}
	return typeLabels[t]
}

// MarshalText encodes the type as its label.
func (t PubType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes any name accepted by ParsePubType.
func (t *PubType) UnmarshalText(text []byte) error {
	parsed, err := ParsePubType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParsePubType parses a publication type from its label ("Book Chapter"),
// a snake-case name ("book_chapter"), or its DBLP element name ("incollection").
func ParsePubType(s string) (PubType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "conferencepaper", "conference", "inproceedings":
		return ConferencePaper, nil
	case "journal", "article":
		return Journal, nil
	case "book":
		return Book, nil
	case "bookchapter", "chapter", "incollection":
		return BookChapter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// TypeFilter selects either one publication type or all of them.
// The zero value selects all types.
type TypeFilter struct {
	typ PubType
	set bool
}

// AllTypes matches every publication type.
var AllTypes = TypeFilter{}

// OnlyType returns a filter matching a single publication type.
func OnlyType(t PubType) TypeFilter {
	return TypeFilter{typ: t, set: true}
}

// Matches reports whether t passes the filter.
func (f TypeFilter) Matches(t PubType) bool {
	return !f.set || f.typ == t
}

// IsAll reports whether the filter is the all-types sentinel.
func (f TypeFilter) IsAll() bool {
	return !f.set
}

func (f TypeFilter) String() string {
	if !f.set {
		return "all"
	}
	return f.typ.String()
}

// ParseTypeFilter parses "all" (or empty) as AllTypes, anything else with ParsePubType.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AllTypes, nil
	}
	t, err := ParsePubType(s)
	if err != nil {
		return AllTypes, err
	}
	return OnlyType(t), nil
}

// Publication is one admitted bibliographic entry.
//
// Year and AuthorIDs are always populated for admitted publications. Optional
// fields are nil when the source record did not carry them.
type Publication struct {
	Type      PubType `json:"type"`
	Title     *string `json:"title,omitempty"`
	Year      int     `json:"year"`
	AuthorIDs []int   `json:"author_ids"` // order of the source author list

	// Venue and link fields
	Link      *string `json:"link,omitempty"` // from <ee>
	BookTitle *string `json:"booktitle,omitempty"`
	Journal   *string `json:"journal,omitempty"`
	Volume    *string `json:"volume,omitempty"`
	Pages     *string `json:"pages,omitempty"`
	Number    *string `json:"number,omitempty"`
	Crossref  *string `json:"crossref,omitempty"`
	URL       *string `json:"url,omitempty"` // from <url>
	ISBN      *string `json:"isbn,omitempty"`
	Series    *string `json:"series,omitempty"`
}

// SoleAuthor reports whether the publication has exactly one author.
func (p *Publication) SoleAuthor() bool {
	return len(p.AuthorIDs) == 1
}

// FirstAuthor returns the id of the first listed author.
func (p *Publication) FirstAuthor() int {
	return p.AuthorIDs[0]
}

// LastAuthor returns the id of the last listed author.
func (p *Publication) LastAuthor() int {
	return p.AuthorIDs[len(p.AuthorIDs)-1]
}

// HasAuthor reports whether id appears in the author list.
func (p *Publication) HasAuthor(id int) bool {
	for _, a := range p.AuthorIDs {
		if a == id {
			return true
		}
	}
	return false
}

// Optional returns *s, or placeholder when s is nil.
func Optional(s *string, placeholder string) string {
	if s == nil {
		return placeholder
	}
	return *s
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

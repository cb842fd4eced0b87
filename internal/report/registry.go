package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/stats"
	"github.com/matsen/bibstat/internal/storage"
)

// ErrUnknownReport is returned by Lookup for an unregistered report name.
var ErrUnknownReport = errors.New("unknown report")

// ErrMissingParam is returned when a report that needs a year or author is run
// without one.
var ErrMissingParam = errors.New("missing report parameter")

// Params carries the arguments a named report may need.
type Params struct {
	Stat   stats.Stat
	Year   *int
	Author string
	Window Window
}

// RawParams holds report arguments as they arrive from flags or a query
// string. Empty fields are unset.
type RawParams struct {
	Stat   string
	Year   string
	From   string
	To     string
	Type   string
	Author string
}

// Parse validates raw and converts it to Params.
func (raw RawParams) Parse() (Params, error) {
	var p Params
	var err error
	if p.Stat, err = stats.ParseStat(raw.Stat); err != nil {
		return Params{}, err
	}
	if p.Year, err = optionalYear("year", raw.Year); err != nil {
		return Params{}, err
	}
	if p.Window.Start, err = optionalYear("from", raw.From); err != nil {
		return Params{}, err
	}
	if p.Window.End, err = optionalYear("to", raw.To); err != nil {
		return Params{}, err
	}
	if p.Window.Type, err = reference.ParseTypeFilter(raw.Type); err != nil {
		return Params{}, err
	}
	p.Author = strings.TrimSpace(raw.Author)
	return p, nil
}

func optionalYear(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return &y, nil
}

// Kind describes which Params a report reads.
type Kind int

const (
	KindPlain  Kind = iota // no parameters
	KindStat               // Stat
	KindYear               // Year (required)
	KindWindow             // Window
	KindAuthor             // Author (required)
)

func (k Kind) String() string {
	switch k {
	case KindStat:
		return "stat"
	case KindYear:
		return "year"
	case KindWindow:
		return "window"
	case KindAuthor:
		return "author"
	}
	return "plain"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Definition is a named report.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        Kind   `json:"params"`

	run func(*storage.Snapshot, Params) (Table, error)
}

// Run executes the report against v.
func (d Definition) Run(v *storage.Snapshot, p Params) (Table, error) {
	switch d.Kind {
	case KindYear:
		if p.Year == nil {
			return Table{}, fmt.Errorf("%w: %s needs a year", ErrMissingParam, d.Name)
		}
	case KindAuthor:
		if p.Author == "" {
			return Table{}, fmt.Errorf("%w: %s needs an author", ErrMissingParam, d.Name)
		}
	}
	return d.run(v, p)
}

func plain(f func(*storage.Snapshot) Table) func(*storage.Snapshot, Params) (Table, error) {
	return func(v *storage.Snapshot, _ Params) (Table, error) { return f(v), nil }
}

func withStat(f func(*storage.Snapshot, stats.Stat) Table) func(*storage.Snapshot, Params) (Table, error) {
	return func(v *storage.Snapshot, p Params) (Table, error) { return f(v, p.Stat), nil }
}

func withStatErr(f func(*storage.Snapshot, stats.Stat) (Table, error)) func(*storage.Snapshot, Params) (Table, error) {
	return func(v *storage.Snapshot, p Params) (Table, error) { return f(v, p.Stat) }
}

func withYear(f func(*storage.Snapshot, int) Table) func(*storage.Snapshot, Params) (Table, error) {
	return func(v *storage.Snapshot, p Params) (Table, error) { return f(v, *p.Year), nil }
}

func withWindow(f func(*storage.Snapshot, Window) Table) func(*storage.Snapshot, Params) (Table, error) {
	return func(v *storage.Snapshot, p Params) (Table, error) { return f(v, p.Window), nil }
}

var definitions = []Definition{
	{"summary", "Publications and distinct authors per type", KindPlain, plain(Summary)},
	{"summary-average", "Authors per publication and publications per author", KindStat, withStat(SummaryAverage)},
	{"authors-per-publication", "Authors per publication by type", KindStat, withStat(AuthorsPerPublication)},
	{"publications-per-author", "Publications per author by type", KindStat, withStat(PublicationsPerAuthor)},
	{"publications-per-year", "Publications per calendar year by type", KindStat, withStatErr(PublicationsPerYear)},
	{"authors-per-year", "Distinct authors per calendar year by type", KindStat, withStatErr(AuthorsPerYear)},
	{"authors-per-publication-by-author", "Authors per publication for each author", KindStat, withStat(AuthorsPerPublicationByAuthor)},
	{"publications-by-author", "Publication counts for each author", KindPlain, plain(PublicationsByAuthor)},
	{"first-last-sole", "First, last, and sole authorship for each author", KindPlain, plain(FirstLastSole)},
	{"author-stat", "Publication, co-author, and role counts for one author", KindAuthor,
		func(v *storage.Snapshot, p Params) (Table, error) { return AuthorStat(v, p.Author) }},
	{"authors-for-year", "Publication counts for each author in one year", KindYear, withYear(AuthorsStatForYear)},
	{"authors-per-publication-by-year", "Authors per publication for each year", KindStat, withStat(AuthorsPerPublicationByYear)},
	{"publications-by-year", "Publication counts for each year", KindPlain, plain(PublicationsByYear)},
	{"publications-for-year", "Publication counts in one year", KindYear, withYear(PublicationsForYear)},
	{"publications-per-author-by-year", "Publications per author for each year", KindStat, withStat(PublicationsPerAuthorByYear)},
	{"author-totals-by-year", "Distinct authors for each year", KindPlain, plain(AuthorTotalsByYear)},
	{"coauthors", "Co-authors of each author in a window", KindWindow, withWindow(CoauthorData)},
	{"author-details", "First, last, and sole authorship in a window", KindWindow, withWindow(AuthorDetails)},
	{"publications", "Every publication with a valid link", KindPlain, plain(AllPublications)},
}

// Definitions returns every registered report in display order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a report by name, ignoring case.
func Lookup(name string) (Definition, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range definitions {
		if d.Name == key {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownReport, name)
}

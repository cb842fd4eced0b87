// Package storage holds the in-memory bibliography and its snapshot exports.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/matsen/bibstat/internal/importer"
	"github.com/matsen/bibstat/internal/reference"
)

// ErrAuthorNotFound is returned when a lookup names an author that is not in
// the current dataset.
var ErrAuthorNotFound = errors.New("author not found")

// ProgressInterval is how many admitted publications pass between progress logs.
const ProgressInterval = 100000

// Store owns the author index and the publication list of one dataset.
//
// A Store is populated by Ingest and is read-only afterwards. Queries take a
// read lock, so any number of them may run concurrently once ingestion is done.
type Store struct {
	mu sync.RWMutex

	datasetID    string
	authors      []reference.Author
	authorIndex  map[string]int
	publications []reference.Publication
	minYear      int
	maxYear      int
	hasYears     bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{authorIndex: make(map[string]int)}
}

// Snapshot is a consistent read-only view of a Store. Callers must not modify
// the slices.
type Snapshot struct {
	DatasetID    string
	Authors      []reference.Author
	Publications []reference.Publication
	MinYear      int
	MaxYear      int
	HasYears     bool // false when no publication has been admitted

	index map[string]int
}

// AuthorName returns the name of author id.
func (v *Snapshot) AuthorName(id int) string {
	return v.Authors[id].Name
}

// Ingest replaces the contents of the store with the records decoded from r.
//
// Ingestion is atomic: if the document is malformed the store is left empty
// and the returned error wraps importer.ErrMalformed. Records that are
// rejected (no year or no authors) are logged and skipped without failing.
func (s *Store) Ingest(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	id := uuid.NewString()
	logger := slog.With("dataset", id)

	dec := importer.NewDecoder(r)
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			admitted := len(s.publications)
			s.reset()
			logger.Error("error reading document", "error", err, "discarded", admitted)
			return fmt.Errorf("reading document: %w", err)
		}
		s.admit(logger, rec)
	}

	s.recomputeYears()
	s.datasetID = id
	logger.Info("dataset loaded",
		"publications", len(s.publications),
		"authors", len(s.authors),
	)
	return nil
}

// IngestFile opens path and ingests it.
func (s *Store) IngestFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return s.Ingest(f)
}

// Admit adds a single record, applying the same admission rules as Ingest.
// It reports whether the record was admitted. Admit must not run concurrently
// with queries.
func (s *Store) Admit(rec *importer.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admit(slog.Default(), rec)
}

func (s *Store) reset() {
	s.datasetID = ""
	s.authors = nil
	s.authorIndex = make(map[string]int)
	s.publications = nil
	s.minYear, s.maxYear, s.hasYears = 0, 0, false
}

func (s *Store) admit(logger *slog.Logger, rec *importer.Record) bool {
	if rec.Year == nil || len(rec.Authors) == 0 {
		logger.Warn("excluding publication due to missing information",
			"type", rec.Type.String(),
			"title", reference.Optional(rec.Title, ""),
			"year", yearAttr(rec.Year),
			"authors", strings.Join(rec.Authors, ","),
		)
		return false
	}
	if rec.Title == nil {
		logger.Warn("adding publication with missing title",
			"type", rec.Type.String(),
			"year", *rec.Year,
			"authors", strings.Join(rec.Authors, ","),
		)
	}

	ids := make([]int, len(rec.Authors))
	for i, name := range rec.Authors {
		id, ok := s.authorIndex[name]
		if !ok {
			id = len(s.authors)
			s.authorIndex[name] = id
			s.authors = append(s.authors, reference.Author{Name: name})
		}
		ids[i] = id
	}

	s.publications = append(s.publications, reference.Publication{
		Type:      rec.Type,
		Title:     rec.Title,
		Year:      *rec.Year,
		AuthorIDs: ids,
		Link:      rec.Link,
		BookTitle: rec.BookTitle,
		Journal:   rec.Journal,
		Volume:    rec.Volume,
		Pages:     rec.Pages,
		Number:    rec.Number,
		Crossref:  rec.Crossref,
		URL:       rec.URL,
		ISBN:      rec.ISBN,
		Series:    rec.Series,
	})
	if n := len(s.publications); n%ProgressInterval == 0 {
		logger.Info("adding publications", "count", n, "authors", len(s.authors))
	}

	s.observeYear(*rec.Year)
	return true
}

func (s *Store) observeYear(y int) {
	if !s.hasYears || y < s.minYear {
		s.minYear = y
	}
	if !s.hasYears || y > s.maxYear {
		s.maxYear = y
	}
	s.hasYears = true
}

// recomputeYears derives the year range from the full publication list.
func (s *Store) recomputeYears() {
	s.minYear, s.maxYear, s.hasYears = 0, 0, false
	for i := range s.publications {
		s.observeYear(s.publications[i].Year)
	}
}

func yearAttr(y *int) any {
	if y == nil {
		return nil
	}
	return *y
}

// Snapshot returns a consistent view of the current dataset.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{
		DatasetID:    s.datasetID,
		Authors:      s.authors,
		Publications: s.publications,
		MinYear:      s.minYear,
		MaxYear:      s.maxYear,
		HasYears:     s.hasYears,
		index:        s.authorIndex,
	}
}

// DatasetID returns the identifier assigned to the last successful ingestion.
func (s *Store) DatasetID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasetID
}

// NumPublications returns the number of admitted publications.
func (s *Store) NumPublications() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.publications)
}

// NumAuthors returns the number of distinct authors.
func (s *Store) NumAuthors() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.authors)
}

// Authors returns all authors; the index of each is its id.
func (s *Store) Authors() []reference.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authors
}

// Publications returns all admitted publications in admission order.
func (s *Store) Publications() []reference.Publication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.publications
}

// AuthorName returns the name of author id.
func (s *Store) AuthorName(id int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authors[id].Name
}

// AuthorID returns the id of the author with exactly this name.
func (s *Store) AuthorID(name string) (int, error) {
	return s.Snapshot().AuthorID(name)
}

// YearRange returns the smallest and largest publication year. ok is false
// when the store is empty.
func (s *Store) YearRange() (first, last int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minYear, s.maxYear, s.hasYears
}

// LowerNames returns every author name lowercased, in id order.
func (s *Store) LowerNames() []string {
	return s.Snapshot().LowerNames()
}

// LookupFold returns the ids of every author whose lowercased name equals lower.
func (s *Store) LookupFold(lower string) []int {
	return s.Snapshot().LookupFold(lower)
}

// AuthorID returns the id of the author with exactly this name.
func (v *Snapshot) AuthorID(name string) (int, error) {
	id, ok := v.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrAuthorNotFound, name)
	}
	return id, nil
}

// LowerNames returns every author name lowercased, in id order.
func (v *Snapshot) LowerNames() []string {
	names := make([]string, len(v.Authors))
	for i, a := range v.Authors {
		names[i] = reference.Lower(a.Name)
	}
	return names
}

// LookupFold returns the ids of every author whose lowercased name equals
// lower, in id order.
func (v *Snapshot) LookupFold(lower string) []int {
	var ids []int
	for i, a := range v.Authors {
		if reference.Lower(a.Name) == lower {
			ids = append(ids, i)
		}
	}
	return ids
}

package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/matsen/bibstat/internal/importer"
	"github.com/matsen/bibstat/internal/reference"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// Entry is one publication of a JSONL snapshot, with author names resolved.
type Entry struct {
	Type      reference.PubType `json:"type"`
	Title     *string           `json:"title,omitempty"`
	Year      int               `json:"year"`
	Authors   []string          `json:"authors"`
	Link      *string           `json:"link,omitempty"`
	BookTitle *string           `json:"booktitle,omitempty"`
	Journal   *string           `json:"journal,omitempty"`
	Volume    *string           `json:"volume,omitempty"`
	Pages     *string           `json:"pages,omitempty"`
	Number    *string           `json:"number,omitempty"`
	Crossref  *string           `json:"crossref,omitempty"`
	URL       *string           `json:"url,omitempty"`
	ISBN      *string           `json:"isbn,omitempty"`
	Series    *string           `json:"series,omitempty"`
}

// EntryOf resolves the author ids of p against v.
func EntryOf(v *Snapshot, p *reference.Publication) Entry {
	names := make([]string, len(p.AuthorIDs))
	for i, id := range p.AuthorIDs {
		names[i] = v.AuthorName(id)
	}
	return Entry{
		Type:      p.Type,
		Title:     p.Title,
		Year:      p.Year,
		Authors:   names,
		Link:      p.Link,
		BookTitle: p.BookTitle,
		Journal:   p.Journal,
		Volume:    p.Volume,
		Pages:     p.Pages,
		Number:    p.Number,
		Crossref:  p.Crossref,
		URL:       p.URL,
		ISBN:      p.ISBN,
		Series:    p.Series,
	}
}

// Record converts the entry back into an import record.
func (e Entry) Record() *importer.Record {
	year := e.Year
	return &importer.Record{
		Type:      e.Type,
		Title:     e.Title,
		Year:      &year,
		Authors:   e.Authors,
		Link:      e.Link,
		BookTitle: e.BookTitle,
		Journal:   e.Journal,
		Volume:    e.Volume,
		Pages:     e.Pages,
		Number:    e.Number,
		Crossref:  e.Crossref,
		URL:       e.URL,
		ISBN:      e.ISBN,
		Series:    e.Series,
	}
}

// ReadJSONL reads all entries from a JSONL snapshot.
func ReadJSONL(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("%w: parsing line %d: %v", importer.ErrMalformed, lineNum, err)
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return entries, nil
}

// WriteJSONL writes every publication of v to path, replacing existing content.
func WriteJSONL(path string, v *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := range v.Publications {
		data, err := json.Marshal(EntryOf(v, &v.Publications[i]))
		if err != nil {
			return fmt.Errorf("encoding publication %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing publication %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	return f.Close()
}

// IngestJSONL replaces the contents of the store with a JSONL snapshot. Entries
// pass through the same admission rules as a DBLP document.
func (s *Store) IngestJSONL(path string) error {
	entries, err := ReadJSONL(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	id := uuid.NewString()
	logger := slog.With("dataset", id)
	for _, e := range entries {
		s.admit(logger, e.Record())
	}
	s.datasetID = id
	logger.Info("snapshot loaded",
		"path", path,
		"publications", len(s.publications),
		"authors", len(s.authors),
	)
	return nil
}

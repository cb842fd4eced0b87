// Package export writes a dataset's publications in bibliography formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/storage"
)

var entryTypes = [reference.NumTypes]string{
	reference.ConferencePaper: "inproceedings",
	reference.Journal:         "article",
	reference.Book:            "book",
	reference.BookChapter:     "incollection",
}

// Keys assigns citation keys of the form Surname2004 to publications, adding
// a, b, c... when the same surname and year repeat.
type Keys struct {
	seen map[string]int
}

// NewKeys returns an empty key generator.
func NewKeys() *Keys {
	return &Keys{seen: make(map[string]int)}
}

// Next returns a fresh key for p.
func (k *Keys) Next(v *storage.Snapshot, p *reference.Publication) string {
	base := fmt.Sprintf("%s%d", keySurname(v.AuthorName(p.FirstAuthor())), p.Year)
	n := k.seen[base]
	k.seen[base]++
	if n == 0 {
		return base
	}
	return base + suffix(n-1)
}

// suffix returns a, b, ..., z, aa, ab, ...
func suffix(n int) string {
	s := string(rune('a' + n%26))
	for n >= 26 {
		n = n/26 - 1
		s = string(rune('a'+n%26)) + s
	}
	return s
}

// keySurname is the last word of name with everything but letters and digits
// removed.
func keySurname(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "Anon"
	}
	last := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, words[len(words)-1])
	if last == "" {
		return "Anon"
	}
	return last
}

// ToBibTeX converts a publication to a BibTeX entry with the given key.
func ToBibTeX(v *storage.Snapshot, p *reference.Publication, key string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryTypes[p.Type], key))

	names := make([]string, len(p.AuthorIDs))
	for i, id := range p.AuthorIDs {
		names[i] = v.AuthorName(id)
	}
	b.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(strings.Join(names, " and "))))

	field := func(name string, value *string) {
		if value != nil && *value != "" {
			b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, escapeLatex(*value)))
		}
	}
	field("title", p.Title)
	field("journal", p.Journal)
	field("booktitle", p.BookTitle)
	field("volume", p.Volume)
	field("number", p.Number)
	field("pages", p.Pages)
	b.WriteString(fmt.Sprintf("  year = {%d},\n", p.Year))
	field("series", p.Series)
	field("isbn", p.ISBN)
	field("crossref", p.Crossref)

	// URLs are left unescaped so they stay usable
	if p.Link != nil && *p.Link != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", *p.Link))
	}

	b.WriteString("}\n")

	return b.String()
}

// WriteBibTeX writes every publication of v that passes keep, separated by
// blank lines. A nil keep writes them all.
func WriteBibTeX(w io.Writer, v *storage.Snapshot, keep func(*reference.Publication) bool) error {
	bw := bufio.NewWriter(w)
	keys := NewKeys()
	first := true
	for i := range v.Publications {
		p := &v.Publications[i]
		if keep != nil && !keep(p) {
			continue
		}
		if !first {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		first = false
		if _, err := bw.WriteString(ToBibTeX(v, p, keys.Next(v, p))); err != nil {
			return fmt.Errorf("writing publication %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

package report

import (
	"net/url"
	"strings"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/storage"
)

const placeholder = "-"

// AllPublications lists every publication whose link is a valid web URL.
// Absent fields are shown as "-".
func AllPublications(v *storage.Snapshot) Table {
	var rows []Row
	for i := range v.Publications {
		p := &v.Publications[i]
		if p.Link == nil || !validLink(*p.Link) {
			continue
		}
		names := make([]string, len(p.AuthorIDs))
		for j, a := range p.AuthorIDs {
			names[j] = v.AuthorName(a)
		}
		rows = append(rows, Row{
			reference.Optional(p.Title, placeholder),
			*p.Link,
			strings.Join(names, ", "),
			p.Year,
			reference.Optional(p.BookTitle, placeholder),
			reference.Optional(p.Journal, placeholder),
			reference.Optional(p.Volume, placeholder),
			reference.Optional(p.Pages, placeholder),
			reference.Optional(p.Number, placeholder),
			reference.Optional(p.Crossref, placeholder),
			reference.Optional(p.URL, placeholder),
			reference.Optional(p.ISBN, placeholder),
			reference.Optional(p.Series, placeholder),
		})
	}
	return Table{
		Header: []string{
			"Title",
			"Link",
			"Authors",
			"Year",
			"Book title",
			"Journal",
			"Volume",
			"Pages",
			"Number",
			"Cross reference",
			"Url",
			"ISBN",
			"Series",
		},
		Rows: rows,
	}
}

// validLink accepts absolute http, https, and ftp URLs with a dotted host or
// localhost.
func validLink(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}
	host := u.Hostname()
	return host == "localhost" || (strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, "."))
}

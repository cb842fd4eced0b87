package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/storage"
)

const testDoc = `<dblp>
<article><author>John Smith</author><author>Jane Doe</author><title>Graphs &amp; Trees</title><year>2006</year><journal>J. Graphs</journal><volume>3</volume><pages>1-10</pages><ee>https://doi.org/10.1/x_y</ee></article>
<inproceedings><author>Jane Doe</author><title>Paths</title><year>2006</year><booktitle>Proc. GD</booktitle></inproceedings>
<book><author>John Smith</author><year>2006</year><isbn>978-0</isbn></book>
<incollection><author>John Smith</author><title>Cuts</title><year>2006</year><booktitle>Handbook</booktitle></incollection>
</dblp>`

func load(t *testing.T) *storage.Snapshot {
	t.Helper()
	s := storage.New()
	if err := s.Ingest(strings.NewReader(testDoc)); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	return s.Snapshot()
}

func TestToBibTeX_Article(t *testing.T) {
	v := load(t)
	got := ToBibTeX(v, &v.Publications[0], "Smith2006")

	if !strings.HasPrefix(got, "@article{Smith2006,\n") {
		t.Errorf("ToBibTeX() should start with @article{Smith2006, got:\n%s", got)
	}
	for _, want := range []string{
		`author = {John Smith and Jane Doe}`,
		`title = {Graphs \& Trees}`,
		`journal = {J. Graphs}`,
		`volume = {3}`,
		`pages = {1-10}`,
		`year = {2006}`,
		`url = {https://doi.org/10.1/x_y}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeX() missing %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "booktitle") || strings.Contains(got, "isbn") {
		t.Errorf("ToBibTeX() should omit absent fields, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToBibTeX() should end with }, got:\n%s", got)
	}
}

func TestToBibTeX_EntryTypes(t *testing.T) {
	v := load(t)
	tests := []struct {
		index int
		want  string
	}{
		{0, "@article{"},
		{1, "@inproceedings{"},
		{2, "@book{"},
		{3, "@incollection{"},
	}
	for _, tt := range tests {
		p := &v.Publications[tt.index]
		t.Run(p.Type.String(), func(t *testing.T) {
			if got := ToBibTeX(v, p, "k"); !strings.HasPrefix(got, tt.want) {
				t.Errorf("ToBibTeX() = %q, want prefix %q", got, tt.want)
			}
		})
	}

	book := ToBibTeX(v, &v.Publications[2], "k")
	if strings.Contains(book, "title =") || !strings.Contains(book, "isbn = {978-0}") {
		t.Errorf("book entry = %s", book)
	}
}

func TestKeys(t *testing.T) {
	v := load(t)
	keys := NewKeys()
	var got []string
	for i := range v.Publications {
		got = append(got, keys.Next(v, &v.Publications[i]))
	}
	want := []string{"Smith2006", "Doe2006", "Smith2006a", "Smith2006b"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuffix(t *testing.T) {
	tests := map[int]string{0: "a", 1: "b", 25: "z", 26: "aa", 27: "ab", 51: "az", 52: "ba"}
	for n, want := range tests {
		if got := suffix(n); got != want {
			t.Errorf("suffix(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestKeySurname(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"John Smith", "Smith"},
		{"Jean-Luc O'Neil", "ONeil"},
		{"Hans Müller 0002", "0002"},
		{"Zoë", "Zoë"},
		{"   ", "Anon"},
		{"A. -", "Anon"},
	}
	for _, tt := range tests {
		if got := keySurname(tt.name); got != tt.want {
			t.Errorf("keySurname(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"A & B", `A \& B`},
		{"50%", `50\%`},
		{"$x$", `\$x\$`},
		{"#1", `\#1`},
		{"a_b", `a\_b`},
		{"{x}", `\{x\}`},
		{"~", `\textasciitilde{}`},
		{"^", `\textasciicircum{}`},
		{`a\b`, `a\textbackslash{}b`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeLatex(tt.input); got != tt.want {
				t.Errorf("escapeLatex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteBibTeX(t *testing.T) {
	v := load(t)

	var buf bytes.Buffer
	if err := WriteBibTeX(&buf, v, nil); err != nil {
		t.Fatalf("WriteBibTeX() error = %v", err)
	}
	out := buf.String()
	if n := strings.Count(out, "\n@"); n != 3 {
		t.Errorf("got %d separated entries after the first, want 3:\n%s", n, out)
	}
	if !strings.HasPrefix(out, "@article{Smith2006,") {
		t.Errorf("output should start with the first entry:\n%s", out)
	}

	buf.Reset()
	onlyBooks := func(p *reference.Publication) bool { return p.Type == reference.Book }
	if err := WriteBibTeX(&buf, v, onlyBooks); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); strings.Count(got, "@") != 1 || !strings.HasPrefix(got, "@book{Smith2006,") {
		t.Errorf("filtered output = %q", got)
	}

	buf.Reset()
	if err := WriteBibTeX(&buf, &storage.Snapshot{}, nil); err != nil || buf.Len() != 0 {
		t.Errorf("empty snapshot wrote %q, %v", buf.String(), err)
	}
}

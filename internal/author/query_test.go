package author

import (
	"slices"
	"strings"
	"testing"

	"github.com/matsen/bibstat/internal/storage"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		input  string
		first  string
		last   string
		middle string
	}{
		{"Sam", "Sam", "Sam", ""},
		{"Alice Sam", "Alice", "Sam", ""},
		{"  Brian   Sam Alice ", "Brian", "Alice", "Sam"},
		{"A B C D", "A", "D", ""},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := parseName(tt.input)
			if p.first() != tt.first || p.last() != tt.last {
				t.Errorf("parseName(%q) = first %q last %q, want %q %q", tt.input, p.first(), p.last(), tt.first, tt.last)
			}
			m, _ := p.middle()
			if m != tt.middle {
				t.Errorf("parseName(%q).middle() = %q, want %q", tt.input, m, tt.middle)
			}
		})
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"substring", "sam", "alice sammer", 100},
		{"order independent", "alice sammer", "sam", 100},
		{"identical", "bo chen", "bo chen", 100},
		{"empty", "", "anything", 0},
		{"disjoint", "xyz", "abc", 0},
		{"one edit", "sbm", "alice sam", 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartialRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("PartialRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPartialRatio_NeverFullWithoutSubstring(t *testing.T) {
	long := strings.Repeat("ab", 200) + "x"
	short := strings.Repeat("ab", 200) + "y"
	if got := PartialRatio(short, long); got == 100 {
		t.Errorf("PartialRatio() = 100 for strings that are not substrings")
	}
}

func TestPartialMatch(t *testing.T) {
	names := []string{"alice sam", "Brian Esam", "mona zaki", "SAMUEL brian"}
	got := PartialMatch("Sam", names)
	want := []string{"alice sam", "Brian Esam", "SAMUEL brian"}
	if !slices.Equal(got, want) {
		t.Errorf("PartialMatch() = %v, want %v", got, want)
	}
	if got := PartialMatch("nobody", names); len(got) != 0 {
		t.Errorf("PartialMatch(nobody) = %v, want none", got)
	}
}

func TestRank(t *testing.T) {
	pool := []string{
		"Brian Sam Alice", "Sam Alice", "Samuel Alice", "Alice Sam Brian",
		"Sam Brian", "Samuel Brian", "Alice Esam", "Brian Esam", "Brian Sam",
		"Alice Sam", "Alice Sammer", "Brian Sammer", "Alice Samming",
		"Brian Samming",
	}
	want := []string{
		"Alice Sam", "Brian Sam", "Alice Sammer", "Brian Sammer",
		"Alice Samming", "Brian Samming", "Sam Alice", "Sam Brian",
		"Samuel Alice", "Samuel Brian", "Brian Sam Alice", "Alice Sam Brian",
		"Alice Esam", "Brian Esam",
	}
	got := Rank("Sam", pool)
	if !slices.Equal(got, want) {
		t.Errorf("Rank() =\n%v\nwant\n%v", got, want)
	}
	if pool[0] != "Brian Sam Alice" {
		t.Error("Rank() modified its input")
	}
}

func TestRank_Remainder(t *testing.T) {
	got := Rank("x", []string{"Zed Alpha", "Amy Beta", "Bob Alpha"})
	want := []string{"Amy Beta", "Bob Alpha", "Zed Alpha"}
	if !slices.Equal(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestSearch(t *testing.T) {
	s := storage.New()
	doc := `<dblp>
<article><author>Alice Sam</author><author>Samuel Brian</author><year>2000</year></article>
<article><author>Mona Zaki</author><author>alice sam</author><year>2001</year></article>
</dblp>`
	if err := s.Ingest(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	v := s.Snapshot()

	res := Search(v, "SAM")
	if res.Exact {
		t.Error("Exact = true for a partial query")
	}
	want := []string{"Alice Sam", "alice sam", "Samuel Brian"}
	if !slices.Equal(res.Matches, want) {
		t.Errorf("Matches = %v, want %v", res.Matches, want)
	}
	if _, ok := res.Resolved(); ok {
		t.Error("Resolved() ok = true with several matches")
	}

	res = Search(v, "Alice Sam")
	if !res.Exact {
		t.Error("Exact = false for a case-insensitive full name")
	}
	if got, ok := res.Resolved(); !ok || got != "alice sam" {
		t.Errorf("Resolved() = %q, %v", got, ok)
	}

	res = Search(v, "  Alice Sam\t")
	if !res.Exact {
		t.Error("Exact = false for a padded full name")
	}
	if got, ok := res.Resolved(); !ok || got != "alice sam" {
		t.Errorf("Resolved() = %q, %v for a padded query", got, ok)
	}

	res = Search(v, "zak")
	if got, ok := res.Resolved(); !ok || got != "mona zaki" {
		t.Errorf("Resolved() = %q, %v, want mona zaki", got, ok)
	}

	res = Search(v, "nobody")
	if len(res.Matches) != 0 || res.Matches == nil {
		t.Errorf("Matches = %#v, want empty non-nil", res.Matches)
	}
}

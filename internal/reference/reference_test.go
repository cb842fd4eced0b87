package reference

import (
	"errors"
	"testing"
)

func TestParsePubType(t *testing.T) {
	tests := []struct {
		input string
		want  PubType
	}{
		{"Conference Paper", ConferencePaper},
		{"inproceedings", ConferencePaper},
		{"journal", Journal},
		{"article", Journal},
		{"Book", Book},
		{"book_chapter", BookChapter},
		{"incollection", BookChapter},
		{"  Book Chapter ", BookChapter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePubType(tt.input)
			if err != nil {
				t.Fatalf("ParsePubType(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePubType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePubType_Unknown(t *testing.T) {
	_, err := ParsePubType("phdthesis")
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("ParsePubType(phdthesis) error = %v, want ErrUnknownType", err)
	}
}

func TestPubTypeString(t *testing.T) {
	for i, want := range []string{"Conference Paper", "Journal", "Book", "Book Chapter"} {
		if got := PubTypes[i].String(); got != want {
			t.Errorf("PubTypes[%d].String() = %q, want %q", i, got, want)
		}
	}
}

func TestTypeFilter(t *testing.T) {
	if !AllTypes.IsAll() {
		t.Error("AllTypes.IsAll() = false")
	}
	for _, pt := range PubTypes {
		if !AllTypes.Matches(pt) {
			t.Errorf("AllTypes.Matches(%v) = false", pt)
		}
	}

	f := OnlyType(Book)
	if f.IsAll() {
		t.Error("OnlyType(Book).IsAll() = true")
	}
	if !f.Matches(Book) {
		t.Error("OnlyType(Book) does not match Book")
	}
	if f.Matches(BookChapter) {
		t.Error("OnlyType(Book) matches BookChapter")
	}
}

func TestParseTypeFilter(t *testing.T) {
	f, err := ParseTypeFilter("all")
	if err != nil || !f.IsAll() {
		t.Errorf("ParseTypeFilter(all) = %v, %v", f, err)
	}
	f, err = ParseTypeFilter("")
	if err != nil || !f.IsAll() {
		t.Errorf("ParseTypeFilter(\"\") = %v, %v", f, err)
	}
	f, err = ParseTypeFilter("article")
	if err != nil || !f.Matches(Journal) || f.Matches(Book) {
		t.Errorf("ParseTypeFilter(article) = %v, %v", f, err)
	}
	if _, err := ParseTypeFilter("thesis"); err == nil {
		t.Error("ParseTypeFilter(thesis) expected error")
	}
}

func TestPublicationRoles(t *testing.T) {
	p := Publication{AuthorIDs: []int{4, 2, 7}}
	if p.SoleAuthor() {
		t.Error("SoleAuthor() = true for three authors")
	}
	if p.FirstAuthor() != 4 || p.LastAuthor() != 7 {
		t.Errorf("first/last = %d/%d, want 4/7", p.FirstAuthor(), p.LastAuthor())
	}
	if !p.HasAuthor(2) || p.HasAuthor(3) {
		t.Error("HasAuthor mismatch")
	}

	sole := Publication{AuthorIDs: []int{1}}
	if !sole.SoleAuthor() {
		t.Error("SoleAuthor() = false for one author")
	}
}

func TestOptional(t *testing.T) {
	if got := Optional(nil, "-"); got != "-" {
		t.Errorf("Optional(nil) = %q, want -", got)
	}
	if got := Optional(StringPtr(""), "-"); got != "" {
		t.Errorf("Optional(\"\") = %q, want empty", got)
	}
}

// Package importer provides functions to import publication records from external formats.
package importer

import (
	"strconv"

	"github.com/matsen/bibstat/internal/reference"
)

// Field identifies the record slot a child element of a record fills.
type Field int

const (
	FieldNone Field = iota // unrecognized element, text is discarded
	FieldAuthor
	FieldTitle
	FieldLink
	FieldYear
	FieldBookTitle
	FieldJournal
	FieldVolume
	FieldPages
	FieldNumber
	FieldCrossref
	FieldURL
	FieldISBN
	FieldSeries
)

var fieldTags = map[string]Field{
	"author":    FieldAuthor,
	"title":     FieldTitle,
	"ee":        FieldLink,
	"year":      FieldYear,
	"booktitle": FieldBookTitle,
	"journal":   FieldJournal,
	"volume":    FieldVolume,
	"pages":     FieldPages,
	"number":    FieldNumber,
	"crossref":  FieldCrossref,
	"url":       FieldURL,
	"isbn":      FieldISBN,
	"series":    FieldSeries,
}

func fieldForTag(name string) Field {
	return fieldTags[name]
}

// Record is one completed record as read from the source document, before
// admission to a store. Nil pointers mark fields that were absent.
type Record struct {
	Type    reference.PubType
	Title   *string
	Year    *int
	Authors []string

	Link      *string
	BookTitle *string
	Journal   *string
	Volume    *string
	Pages     *string
	Number    *string
	Crossref  *string
	URL       *string
	ISBN      *string
	Series    *string
}

// set stores text in the slot for f. Authors accumulate; every other field
// keeps the last value seen.
func (r *Record) set(f Field, text string) {
	switch f {
	case FieldNone:
	case FieldAuthor:
		r.Authors = append(r.Authors, text)
	case FieldTitle:
		r.Title = &text
	case FieldLink:
		r.Link = &text
	case FieldYear:
		// A year that is not a number is treated as missing.
		if y, err := strconv.Atoi(text); err == nil {
			r.Year = &y
		} else {
			r.Year = nil
		}
	case FieldBookTitle:
		r.BookTitle = &text
	case FieldJournal:
		r.Journal = &text
	case FieldVolume:
		r.Volume = &text
	case FieldPages:
		r.Pages = &text
	case FieldNumber:
		r.Number = &text
	case FieldCrossref:
		r.Crossref = &text
	case FieldURL:
		r.URL = &text
	case FieldISBN:
		r.ISBN = &text
	case FieldSeries:
		r.Series = &text
	}
}

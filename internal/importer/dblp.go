package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/bibstat/internal/reference"
	"golang.org/x/net/html/charset"
)

// ErrMalformed is returned when the input is not a well-formed XML document.
var ErrMalformed = errors.New("malformed document")

// recordTypes maps the DBLP record elements that are imported to their
// publication type. Other record elements (phdthesis, www, proceedings, ...)
// are skipped along with their fields.
var recordTypes = map[string]reference.PubType{
	"inproceedings": reference.ConferencePaper,
	"article":       reference.Journal,
	"book":          reference.Book,
	"incollection":  reference.BookChapter,
}

// markupTags are inline typography elements found inside titles. They do not
// start a new field and their text stays in the enclosing field.
var markupTags = map[string]bool{
	"sub": true,
	"sup": true,
	"i":   true,
	"tt":  true,
	"ref": true,
}

// Decoder reads publication records from a DBLP-style XML stream.
//
// The only state carried between calls to Next is the record currently being
// accumulated, so a Decoder can be tested without any store.
type Decoder struct {
	xd *xml.Decoder

	sawElement bool

	// Current record. rec is nil while outside a recognized record.
	rec       *Record
	recordTag string
	field     Field
	inField   bool
	buf       strings.Builder
}

// NewDecoder returns a Decoder reading from r. Named HTML entities (DBLP uses
// &uuml; and friends) are resolved and non-UTF-8 encodings declared in the XML
// prolog are transcoded.
func NewDecoder(r io.Reader) *Decoder {
	xd := xml.NewDecoder(r)
	xd.Strict = true
	xd.Entity = xml.HTMLEntity
	xd.CharsetReader = charset.NewReaderLabel
	return &Decoder{xd: xd}
}

// Next returns the next completed record. It returns io.EOF after the last
// record of a well-formed document, and an error wrapping ErrMalformed if the
// document is not well formed.
func (d *Decoder) Next() (*Record, error) {
	for {
		tok, err := d.xd.Token()
		if err == io.EOF {
			if !d.sawElement {
				return nil, fmt.Errorf("%w: no root element", ErrMalformed)
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			d.sawElement = true
			d.start(t.Name.Local)
		case xml.CharData:
			if d.rec != nil {
				d.buf.Write(t)
			}
		case xml.EndElement:
			if rec := d.end(t.Name.Local); rec != nil {
				return rec, nil
			}
		}
	}
}

func (d *Decoder) start(name string) {
	if markupTags[name] {
		return
	}
	if d.rec == nil {
		if typ, ok := recordTypes[name]; ok {
			d.rec = &Record{Type: typ}
			d.recordTag = name
			d.inField = false
			d.buf.Reset()
		}
		return
	}
	d.field = fieldForTag(name)
	d.inField = true
	d.buf.Reset()
}

// end handles a closing tag and returns the finished record when the record
// element itself closes.
func (d *Decoder) end(name string) *Record {
	if d.rec == nil || markupTags[name] {
		return nil
	}
	if d.inField {
		d.rec.set(d.field, strings.TrimSpace(d.buf.String()))
		d.inField = false
		d.buf.Reset()
		return nil
	}
	if name != d.recordTag {
		return nil
	}
	rec := d.rec
	d.rec = nil
	d.recordTag = ""
	d.buf.Reset()
	return rec
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader) ([]Record, error) {
	d := NewDecoder(r)
	var recs []Record
	for {
		rec, err := d.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, *rec)
	}
}

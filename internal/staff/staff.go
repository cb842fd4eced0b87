// Package staff loads the list of internal staff names used to classify
// authors as internal or external.
package staff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// List is a set of staff names. Names match exactly. A nil *List contains
// nobody.
type List struct {
	names []string
	set   map[string]struct{}
}

// Parse reads one name per line. Surrounding whitespace is trimmed and blank
// lines are skipped.
func Parse(r io.Reader) (*List, error) {
	l := &List{set: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if _, dup := l.set[name]; dup {
			continue
		}
		l.set[name] = struct{}{}
		l.names = append(l.names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading staff list: %w", err)
	}
	return l, nil
}

// Load reads a staff list from path.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening staff list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Contains reports whether name is on the list.
func (l *List) Contains(name string) bool {
	if l == nil {
		return false
	}
	_, ok := l.set[name]
	return ok
}

// Names returns the staff names in file order without duplicates.
func (l *List) Names() []string {
	if l == nil {
		return nil
	}
	return l.names
}

// Len returns the number of distinct names.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}

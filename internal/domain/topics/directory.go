// Package topics holds the research topic directory: a fixed, ordered set of
// topic names and their one-sentence descriptions.
//
// A Directory is built once at process start and never mutated afterwards, so it
// is safe to share between any number of concurrent readers without locking.
package topics

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySeed is returned when a directory would be built without entries.
	ErrEmptySeed = errors.New("topic seed is empty")

	// ErrEmptyTopic is returned when an entry has a blank name or description.
	ErrEmptyTopic = errors.New("topic name and description are required")

	// ErrDuplicateTopic is returned when two entries share a name.
	ErrDuplicateTopic = errors.New("duplicate topic name")
)

// Entry is a single research topic.
type Entry struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
}

// Directory is an immutable name -> Entry mapping that remembers insertion order.
type Directory struct {
	entries []Entry
	index   map[string]int
	folded  []string
}

// NewDirectory builds a directory from entries in the given order.
// Names are case-sensitive and must be unique.
func NewDirectory(entries []Entry) (*Directory, error) {
	if len(entries) == 0 {
		return nil, ErrEmptySeed
	}

	d := &Directory{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
		folded:  make([]string, 0, len(entries)),
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Description) == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyTopic)
		}
		if _, exists := d.index[e.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTopic, e.Name)
		}
		d.index[e.Name] = len(d.entries)
		d.entries = append(d.entries, e)
		d.folded = append(d.folded, strings.ToLower(e.Name))
	}
	return d, nil
}

// Len returns the number of topics.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Lookup returns the entry whose name equals name exactly.
func (d *Directory) Lookup(name string) (Entry, bool) {
	i, ok := d.index[name]
	if !ok {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Suggest returns, in directory order, every name whose lowercase form contains
// the lowercase query. The result is never nil.
func (d *Directory) Suggest(query string) []string {
	needle := strings.ToLower(query)
	out := make([]string, 0)
	for i, name := range d.folded {
		if strings.Contains(name, needle) {
			out = append(out, d.entries[i].Name)
		}
	}
	return out
}

// Names returns all topic names in directory order.
func (d *Directory) Names() []string {
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of all entries in directory order.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

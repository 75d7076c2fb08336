package ckv

import (
	"bufio"
	"io"
	"strings"
)

// Entry is a single key / value pair
type Entry struct {
	Key   string
	Value string
}

// Table is an ordered collection of unique keys and their values.
// Order is the order in which keys were added.
type Table struct {
	entries []Entry
	// key => index in entries
	idx map[string]int
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		idx: map[string]int{},
	}
}

// Len returns number of entries
func (t *Table) Len() int {
	return len(t.entries)
}

// Get returns value for a key
func (t *Table) Get(key string) (string, bool) {
	i, ok := t.idx[key]
	if !ok {
		return "", false
	}
	return t.entries[i].Value, true
}

// Has returns true if key is present
func (t *Table) Has(key string) bool {
	_, ok := t.idx[key]
	return ok
}

// Add adds the key only if it's not already present.
// Returns false if it was present.
func (t *Table) Add(key, value string) bool {
	if t.Has(key) {
		return false
	}
	t.idx[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: key, Value: value})
	return true
}

// Set is an upsert: it replaces the value of an existing key, keeping
// its position, or appends a new entry. File.SetValue and File.SetValueTo
// use it to update a document.
func (t *Table) Set(key, value string) {
	if i, ok := t.idx[key]; ok {
		t.entries[i].Value = value
		return
	}
	t.Add(key, value)
}

// Delete removes the key, keeping the order of other entries.
// Returns false if it wasn't present.
func (t *Table) Delete(key string) bool {
	i, ok := t.idx[key]
	if !ok {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	delete(t.idx, key)
	for j := i; j < len(t.entries); j++ {
		t.idx[t.entries[j].Key] = j
	}
	return true
}

// Keys returns keys in order
func (t *Table) Keys() []string {
	res := make([]string, len(t.entries))
	for i, e := range t.entries {
		res[i] = e.Key
	}
	return res
}

// Entries returns a copy of entries in order
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Map returns the entries as a map
func (t *Table) Map() map[string]string {
	res := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		res[e.Key] = e.Value
	}
	return res
}

// WriteTo writes the table in ckv format
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	if w == nil {
		return 0, &Error{Kind: ErrInvalidOutputStream}
	}
	cw := &countingWriter{w: w}
	err := Render(cw, t.entries)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (w *countingWriter) Write(d []byte) (int, error) {
	n, err := w.w.Write(d)
	w.n += int64(n)
	return n, err
}

// ValidateKey returns an error if key can't be written in a way that
// can be read back
func ValidateKey(key string) error {
	if key == "" {
		return &Error{Kind: ErrInvalidKey}
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if !IsKeyChar(c) {
			return &Error{Kind: ErrInvalidKey, Key: key, Char: c, Err: ErrInvalidCharacter}
		}
	}
	return nil
}

// fold converts a value to its on-disk form: every line after the first
// is indented with a tab
func fold(value string) string {
	return strings.ReplaceAll(value, "\n", "\n\t")
}

// Render writes entries in ckv format. Each entry is:
//
//	KEY =
//		value line 1
//		value line 2
//
// followed by an empty line.
func Render(w io.Writer, entries []Entry) error {
	if w == nil {
		return &Error{Kind: ErrInvalidOutputStream}
	}
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.WriteString(e.Key)
		bw.WriteString(" =\n\t")
		bw.WriteString(fold(e.Value))
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

// RenderString is like Render but returns a string
func RenderString(entries []Entry) string {
	var sb strings.Builder
	_ = Render(&sb, entries)
	return sb.String()
}

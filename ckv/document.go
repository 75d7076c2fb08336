package ckv

import (
	"bytes"
	"io"
	"strings"
)

// Document scans ckv-formatted data from a seekable source.
// Every scan starts from the beginning of the source so it's ok
// to call Find() after a Find() that stopped in the middle.
// A Document must not be used by multiple goroutines at the same time.
type Document struct {
	src io.ReadSeeker
}

// NewDocument creates a document reading from src
func NewDocument(src io.ReadSeeker) *Document {
	return &Document{
		src: src,
	}
}

// start a new scan session at the beginning of the source
func (d *Document) rewind() (*scanner, error) {
	if _, err := d.src.Seek(0, io.SeekStart); err != nil {
		return nil, &Error{Kind: ErrReadFailed, Err: err}
	}
	return newScanner(d.src), nil
}

// Find returns the value of key. It doesn't read the document past
// the matching entry, so malformed data after it is not reported.
func (d *Document) Find(key string) (string, error) {
	s, err := d.rewind()
	if err != nil {
		return "", err
	}
	for {
		k, err := s.scanKey()
		if err != nil {
			return "", err
		}
		if k == "" {
			return "", errKeyNotFound(key)
		}
		v, err := s.scanValue()
		if err != nil {
			return "", err
		}
		if k == key {
			return v, nil
		}
	}
}

// CollectAll returns all entries in the order they appear in the document,
// including entries with duplicate keys
func (d *Document) CollectAll() ([]Entry, error) {
	s, err := d.rewind()
	if err != nil {
		return nil, err
	}
	var res []Entry
	for {
		k, err := s.scanKey()
		if err != nil {
			return nil, err
		}
		if k == "" {
			return res, nil
		}
		v, err := s.scanValue()
		if err != nil {
			return nil, err
		}
		res = append(res, Entry{Key: k, Value: v})
	}
}

// Table returns all entries as a Table. If a key is defined more than
// once, the first definition wins.
func (d *Document) Table() (*Table, error) {
	entries, err := d.CollectAll()
	if err != nil {
		return nil, err
	}
	t := NewTable()
	for _, e := range entries {
		t.Add(e.Key, e.Value)
	}
	return t, nil
}

// Parse parses ckv-formatted data
func Parse(d []byte) (*Table, error) {
	return NewDocument(bytes.NewReader(d)).Table()
}

// ParseString is like Parse but for a string
func ParseString(s string) (*Table, error) {
	return NewDocument(strings.NewReader(s)).Table()
}

package ckv

import (
	"bytes"
	"io"
	"os"

	"github.com/kjk/ckv/log"
	"github.com/kjk/ckv/u"
)

// File is a ckv document stored in a file.
// The file is opened on first use and kept open until Close().
// Files with .gz, .zst or .br extension are decompressed on read and
// compressed when re-written.
//
// Re-writing the file in place (SetValue, RemoveKey) is not atomic and
// not safe against concurrent modification by other processes.
type File struct {
	Path string

	// set when the file is open for reading
	f   *os.File
	doc *Document
}

// New creates a File for a given path. The file is not opened until needed.
func New(path string) *File {
	return &File{
		Path: path,
	}
}

// Open is like New but opens the file immediately so that
// ErrFileOpenFailed is reported early
func Open(path string) (*File, error) {
	f := New(path)
	if err := f.open(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) open() error {
	if f.doc != nil {
		return nil
	}
	if u.CompressionForPath(f.Path) != u.CompressionNone {
		d, err := u.ReadFileMaybeCompressed(f.Path)
		if err != nil {
			return errFileOpen(f.Path, err)
		}
		f.doc = NewDocument(bytes.NewReader(d))
		return nil
	}
	fr, err := os.Open(f.Path)
	if err != nil {
		return errFileOpen(f.Path, err)
	}
	f.f = fr
	f.doc = NewDocument(fr)
	return nil
}

// Close closes the file. It's ok to call it multiple times and to keep
// using File after Close(); it'll be re-opened as needed.
func (f *File) Close() error {
	f.doc = nil
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

// GetValue returns value for key
func (f *File) GetValue(key string) (string, error) {
	if err := f.open(); err != nil {
		return "", err
	}
	return f.doc.Find(key)
}

// ImportAll returns all entries in the file. For duplicate keys
// the first definition wins.
func (f *File) ImportAll() (*Table, error) {
	if err := f.open(); err != nil {
		return nil, err
	}
	return f.doc.Table()
}

// SetValueTo writes the document with key set to value to w.
// The file itself is not modified.
func (f *File) SetValueTo(w io.Writer, key, value string) error {
	t, err := f.tableForWriting(w)
	if err != nil {
		return err
	}
	if err = ValidateKey(key); err != nil {
		return err
	}
	t.Set(key, value)
	return Render(w, t.entries)
}

// RemoveKeyTo writes the document without key to w.
// The file itself is not modified.
func (f *File) RemoveKeyTo(w io.Writer, key string) error {
	t, err := f.tableForWriting(w)
	if err != nil {
		return err
	}
	t.Delete(key)
	return Render(w, t.entries)
}

func (f *File) tableForWriting(w io.Writer) (*Table, error) {
	if err := f.open(); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, &Error{Kind: ErrInvalidOutputStream}
	}
	return f.doc.Table()
}

// SetValue sets key to value and re-writes the file.
// If the file doesn't exist, it's created.
func (f *File) SetValue(key, value string) error {
	t, err := f.importForRewrite(true)
	if err != nil {
		return err
	}
	if err = ValidateKey(key); err != nil {
		return err
	}
	t.Set(key, value)
	return f.rewrite(t)
}

// RemoveKey removes key and re-writes the file
func (f *File) RemoveKey(key string) error {
	t, err := f.importForRewrite(false)
	if err != nil {
		return err
	}
	t.Delete(key)
	return f.rewrite(t)
}

// reads all entries and closes the read handle
func (f *File) importForRewrite(allowMissing bool) (*Table, error) {
	if allowMissing && !u.FileExists(f.Path) {
		return NewTable(), nil
	}
	if err := f.open(); err != nil {
		return nil, err
	}
	t, err := f.doc.Table()
	errClose := f.Close()
	if err != nil {
		return nil, err
	}
	if errClose != nil {
		return nil, errFileOpen(f.Path, errClose)
	}
	return t, nil
}

func (f *File) rewrite(t *Table) error {
	log.Verbosef("ckv: re-writing '%s' with %d entries\n", f.Path, t.Len())
	err := f.writeTable(t)
	log.IfErrf(err, "ckv: re-writing '%s' failed with '%s'", f.Path, err)
	return err
}

func (f *File) writeTable(t *Table) error {
	c := u.CompressionForPath(f.Path)
	if c != u.CompressionNone {
		var buf bytes.Buffer
		if err := Render(&buf, t.entries); err != nil {
			return err
		}
		if err := u.WriteFileMaybeCompressed(f.Path, buf.Bytes()); err != nil {
			return errFileOpen(f.Path, err)
		}
		return nil
	}

	fw, err := os.Create(f.Path)
	if err != nil {
		return errFileOpen(f.Path, err)
	}
	if err = Render(fw, t.entries); err != nil {
		u.CloseNoError(fw)
		return err
	}
	return fw.Close()
}

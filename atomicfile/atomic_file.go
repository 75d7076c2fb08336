package atomicfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrCancelled is returned by calls subsequent to Cancel()
	ErrCancelled = errors.New("cancelled")

	// ensure we implement desired interface
	_ io.WriteCloser = &File{}
)

// File writes to a temporary file in the same directory as the
// destination and renames it to destination in Close().
// If any write fails, the destination is left untouched.
type File struct {
	dstPath string
	dir     string
	tmp     *os.File
	err     error
}

// New creates new File
func New(path string) (*File, error) {
	dir, name := filepath.Split(path)
	if name == "" {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, name+".tmp")
	if err != nil {
		return nil, err
	}
	return &File{
		dstPath: path,
		dir:     dir,
		tmp:     tmp,
	}, nil
}

// remember the first error and delete the temporary file
func (f *File) setErr(err error) error {
	if err == nil {
		return nil
	}
	if f.err == nil {
		f.err = err
	}
	_ = f.Close()
	return err
}

// Write writes data to a temporary file
func (f *File) Write(d []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := f.tmp.Write(d)
	return n, f.setErr(err)
}

// Cancel discards everything written so far. Destination file is
// not created or modified. A no-op after Close.
// Use it with defer to clean up on early return or panic.
func (f *File) Cancel() {
	if f == nil || f.tmp == nil {
		return
	}
	f.err = ErrCancelled
	_ = f.Close()
}

// Close renames the temporary file to destination.
// Can be called multiple times, returns the first error.
func (f *File) Close() error {
	if f.tmp == nil {
		return f.err
	}
	tmp := f.tmp
	f.tmp = nil
	tmpPath := tmp.Name()

	// https://www.joeshaw.org/dont-defer-close-on-writable-files/
	errSync := tmp.Sync()
	errClose := tmp.Close()

	if f.err == nil {
		f.err = errSync
	}
	if f.err == nil {
		f.err = errClose
	}
	if f.err == nil {
		f.err = os.Rename(tmpPath, f.dstPath)
	}
	if f.err != nil {
		_ = os.Remove(tmpPath)
		return f.err
	}

	// for extra protection against crashes, sync directory after rename
	if dir, _ := os.Open(f.dir); dir != nil {
		_ = dir.Sync()
		_ = dir.Close()
	}
	return nil
}

// WriteFile writes d to path atomically
func WriteFile(path string, d []byte) error {
	f, err := New(path)
	if err != nil {
		return err
	}
	defer f.Cancel()
	if _, err = f.Write(d); err != nil {
		return err
	}
	return f.Close()
}

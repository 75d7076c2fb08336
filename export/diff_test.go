package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/kjk/ckv/ckv"
)

func TestDiff(t *testing.T) {
	s, err := Diff("a.ckv", []byte(testDoc), []byte(testDoc))
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = Diff("a.ckv", []byte("A =\n\tx\n"), []byte("A =\n\ty\n"))
	assert.NoError(t, err)
	assert.True(t, strings.Contains(s, "--- a.ckv\n"), "got: %s", s)
	assert.True(t, strings.Contains(s, "-\tx\n"), "got: %s", s)
	assert.True(t, strings.Contains(s, "+\ty\n"), "got: %s", s)
}

func TestPreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ckv")
	err := os.WriteFile(path, []byte(testDoc), 0644)
	assert.NoError(t, err)
	f := ckv.New(path)
	defer f.Close()

	s, err := PreviewSet(f, "NAME", "Jane")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(s, "-\tJohn\n"), "got: %s", s)
	assert.True(t, strings.Contains(s, "+\tJane\n"), "got: %s", s)

	// unchanged value, no diff
	s, err = PreviewSet(f, "NAME", "John")
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = PreviewRemove(f, "ADDRESS")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(s, "-ADDRESS =\n"), "got: %s", s)

	// preview doesn't change the file
	d, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, testDoc, string(d))

	_, err = PreviewSet(f, "BAD KEY", "x")
	assert.True(t, errors.Is(err, ckv.ErrInvalidKey))

	_, err = PreviewSet(ckv.New(filepath.Join(t.TempDir(), "missing.ckv")), "A", "x")
	assert.Error(t, err)
}

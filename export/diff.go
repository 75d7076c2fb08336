package export

import (
	"bytes"

	"github.com/kjk/ckv/ckv"
	"github.com/kjk/ckv/u"
	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff between before and after, "" if they're the same
func Diff(name string, before, after []byte) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: name,
		ToFile:   name + " (new)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}

func preview(f *ckv.File, update func(*bytes.Buffer) error) (string, error) {
	before, err := u.ReadFileMaybeCompressed(f.Path)
	if err != nil {
		return "", err
	}
	var after bytes.Buffer
	if err = update(&after); err != nil {
		return "", err
	}
	return Diff(f.Path, before, after.Bytes())
}

// PreviewSet returns a diff of what f.SetValue(key, value) would change
func PreviewSet(f *ckv.File, key, value string) (string, error) {
	return preview(f, func(buf *bytes.Buffer) error {
		return f.SetValueTo(buf, key, value)
	})
}

// PreviewRemove returns a diff of what f.RemoveKey(key) would change
func PreviewRemove(f *ckv.File, key string) (string, error) {
	return preview(f, func(buf *bytes.Buffer) error {
		return f.RemoveKeyTo(buf, key)
	})
}

package ckv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable()
	assert.Equal(t, 0, tbl.Len())
	assert.True(t, tbl.Add("A", "1"))
	assert.True(t, tbl.Add("B", "2"))
	assert.False(t, tbl.Add("A", "3"))
	v, ok := tbl.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	tbl.Set("A", "4")
	tbl.Set("C", "5")
	assert.Equal(t, []string{"A", "B", "C"}, tbl.Keys())
	v, _ = tbl.Get("A")
	assert.Equal(t, "4", v)

	assert.True(t, tbl.Delete("A"))
	assert.False(t, tbl.Delete("A"))
	assert.False(t, tbl.Has("A"))
	assert.Equal(t, []Entry{{"B", "2"}, {"C", "5"}}, tbl.Entries())
	// index is updated after delete
	v, _ = tbl.Get("C")
	assert.Equal(t, "5", v)
	tbl.Set("C", "6")
	assert.Equal(t, map[string]string{"B": "2", "C": "6"}, tbl.Map())

	_, ok = tbl.Get("A")
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	entries := []Entry{
		{"NAME", "John"},
		{"A", "line1\nline2"},
		{"EMPTY", ""},
	}
	exp := "NAME =\n\tJohn\n\nA =\n\tline1\n\tline2\n\nEMPTY =\n\t\n\n"
	assert.Equal(t, exp, RenderString(entries))

	var buf bytes.Buffer
	err := Render(&buf, entries)
	assert.NoError(t, err)
	assert.Equal(t, exp, buf.String())

	// writer never emits '+' continuation lines
	got := RenderString([]Entry{{"A", "first\n+second"}})
	assert.Equal(t, "A =\n\tfirst\n\t+second\n\n", got)
	tbl, err := ParseString(got)
	assert.NoError(t, err)
	v, _ := tbl.Get("A")
	assert.Equal(t, "first\n+second", v)
}

func TestRenderInvalidOutputStream(t *testing.T) {
	err := Render(nil, []Entry{{"A", "x"}})
	assert.True(t, errors.Is(err, ErrInvalidOutputStream))

	_, err = NewTable().WriteTo(nil)
	assert.True(t, errors.Is(err, ErrInvalidOutputStream))
}

type failingWriter struct{}

func (failingWriter) Write(d []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderWriteError(t *testing.T) {
	err := Render(failingWriter{}, []Entry{{"A", "x"}})
	assert.Error(t, err)
}

func TestTableWriteTo(t *testing.T) {
	tbl, err := ParseString(generalDoc)
	assert.NoError(t, err)
	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	tbl2, err := Parse(buf.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, tbl.Entries(), tbl2.Entries())
}

func TestTableSetDeleteKeepOrder(t *testing.T) {
	tbl, err := ParseString("A =\n\t1\nB =\n\t2\nC =\n\t3\n")
	assert.NoError(t, err)

	tbl.Set("B", "x")
	assert.Equal(t, []Entry{{"A", "1"}, {"B", "x"}, {"C", "3"}}, tbl.Entries())
	tbl.Set("D", "4")
	assert.Equal(t, []string{"A", "B", "C", "D"}, tbl.Keys())

	assert.True(t, tbl.Delete("A"))
	assert.Equal(t, []string{"B", "C", "D"}, tbl.Keys())
	assert.False(t, tbl.Delete("missing"))
	assert.Equal(t, 3, tbl.Len())

	// Entries() is a copy
	entries := tbl.Entries()
	entries[0].Value = "changed"
	v, _ := tbl.Get("B")
	assert.Equal(t, "x", v)
}

// set followed by find returns the new value
func TestSetThenFind(t *testing.T) {
	for _, key := range []string{"COMPILE", "NEW_KEY"} {
		for _, v := range []string{"", "x", "multi\nline\n", "\ttabbed\n+plus"} {
			tbl, err := ParseString(generalDoc)
			assert.NoError(t, err)
			tbl.Set(key, v)
			s := RenderString(tbl.Entries())
			got, err := NewDocument(strings.NewReader(s)).Find(key)
			assert.NoError(t, err)
			assert.Equal(t, v, got)
		}
	}
}

// after delete, find reports the key as missing and other keys are intact
func TestDeleteThenFind(t *testing.T) {
	tbl, err := ParseString(generalDoc)
	assert.NoError(t, err)
	tbl.Delete("COMPILE")
	doc := NewDocument(strings.NewReader(RenderString(tbl.Entries())))
	_, err = doc.Find("COMPILE")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	v, err := doc.Find("EXECUTE")
	assert.NoError(t, err)
	assert.Equal(t, "[OUTPUT_PATH]", v)
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"A", "a-b_C9", "0"} {
		assert.NoError(t, ValidateKey(key))
	}
	for _, key := range []string{"", "A B", "A=", "A\n", "ключ"} {
		err := ValidateKey(key)
		assert.True(t, errors.Is(err, ErrInvalidKey), "key: %q", key)
		assert.False(t, IsParseError(err))
	}
	err := ValidateKey("A.B")
	assert.True(t, errors.Is(err, ErrInvalidCharacter))
	assert.Equal(t, byte('.'), err.(*Error).Char)
}

// Package export converts ckv tables to JSON, TOON or siser-style
// records, and shows what a re-write would change as a diff.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kjk/ckv/atomicfile"
	"github.com/kjk/ckv/ckv"
	"github.com/tidwall/pretty"
	"github.com/toon-format/toon-go"
)

// Format is an output format, named after its file extension
type Format string

const (
	FormatCKV   Format = "ckv"
	FormatJSON  Format = "json"
	FormatTOON  Format = "toon"
	FormatSiser Format = "siser"
)

// FormatForPath returns format based on file extension, FormatCKV if unknown
func FormatForPath(path string) Format {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch Format(ext) {
	case FormatJSON, FormatTOON, FormatSiser:
		return Format(ext)
	}
	return FormatCKV
}

// JSON returns the table as a pretty-printed JSON object.
// Keys are in table order.
func JSON(t *ckv.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return pretty.Pretty(buf.Bytes()), nil
}

// TOON returns the table in TOON format (https://toonformat.dev).
// Keys are in table order.
func TOON(t *ckv.Table) ([]byte, error) {
	var fields []toon.Field
	for _, e := range t.Entries() {
		fields = append(fields, toon.Field{Key: e.Key, Value: e.Value})
	}
	return toon.Marshal(toon.NewObject(fields...))
}

// Marshal converts the table to a given format
func Marshal(t *ckv.Table, format Format) ([]byte, error) {
	switch format {
	case FormatCKV:
		var buf bytes.Buffer
		_, err := t.WriteTo(&buf)
		return buf.Bytes(), err
	case FormatJSON:
		return JSON(t)
	case FormatTOON:
		return TOON(t)
	case FormatSiser:
		return Record(t), nil
	}
	return nil, fmt.Errorf("unknown format '%s'", format)
}

// WriteFile writes the table to path in a format derived from
// path extension. The file is replaced atomically.
func WriteFile(path string, t *ckv.Table) error {
	d, err := Marshal(t, FormatForPath(path))
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, d)
}

package export

import (
	"bytes"
	"strconv"

	"github.com/kjk/ckv/ckv"
)

/*
Record format is line-oriented: "key: value\n"

When value is long (> 120 chars) or has characters outside of
printable ascii (e.g. '\n'), it's written as:
key:+$len\n
value\n
*/

func serializableOnLine(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 32 || b > 127 {
			return false
		}
	}
	return true
}

// return true if value needs to be serialized in long,
// size-prefixed format
func needsLongFormat(s string) bool {
	return len(s) == 0 || len(s) > 120 || !serializableOnLine(s)
}

// Record returns the table as a siser-style record
func Record(t *ckv.Table) []byte {
	var buf bytes.Buffer
	for _, e := range t.Entries() {
		buf.WriteString(e.Key)
		if !needsLongFormat(e.Value) {
			buf.WriteString(": ")
			buf.WriteString(e.Value)
			buf.WriteByte('\n')
			continue
		}
		buf.WriteString(":+")
		buf.WriteString(strconv.Itoa(len(e.Value)))
		buf.WriteByte('\n')
		buf.WriteString(e.Value)
		// for readability: next key always starts on a new line
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

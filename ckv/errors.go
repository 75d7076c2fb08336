package ckv

import (
	"errors"
	"strconv"
	"strings"
)

// Kinds of failures. Use errors.Is(err, ckv.ErrMissingEqualTo) etc.
// to tell them apart; the details are in *Error.
var (
	ErrFileOpenFailed            = errors.New("failed to open file")
	ErrEqualToWithoutAKey        = errors.New("'=' without a key")
	ErrInvalidCharacter          = errors.New("invalid character in key")
	ErrMissingEqualTo            = errors.New("missing '=' after key")
	ErrNoValueFoundForKey        = errors.New("no value found for key")
	ErrTrailingCharsAfterEqualTo = errors.New("trailing characters after '='")
	ErrInvalidOutputStream       = errors.New("invalid output stream")
	ErrKeyNotFound               = errors.New("key not found")
	ErrInvalidKey                = errors.New("invalid key")
	ErrReadFailed                = errors.New("read failed")

	// ErrValueWithoutAKey is never returned by the scanner. Other checks
	// in the grammar reject such input first; seeing it means a bug.
	ErrValueWithoutAKey = errors.New("value without a key")
)

// Error describes a failure with enough context for a diagnostic
type Error struct {
	// Kind is one of the Err* values above
	Kind error
	// Line is 1-based line number where scanning stopped, 0 if not known
	Line int
	// Key, if the failure relates to a key
	Key string
	// Char is the offending character for ErrInvalidCharacter
	Char byte
	// Path of the file, for ErrFileOpenFailed
	Path string
	// Err is an underlying error (e.g. from os.Open)
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("ckv: ")
	if e.Line > 0 {
		sb.WriteString("line ")
		sb.WriteString(strconv.Itoa(e.Line))
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.Error())
	switch {
	case e.Kind == ErrInvalidCharacter:
		sb.WriteString(" " + strconv.QuoteRune(rune(e.Char)))
	case e.Path != "":
		sb.WriteString(" '" + e.Path + "'")
	case e.Key != "":
		sb.WriteString(" '" + e.Key + "'")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap allows errors.Is to match both the kind and the underlying error
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func errKeyNotFound(key string) error {
	return &Error{Kind: ErrKeyNotFound, Key: key}
}

func errFileOpen(path string, err error) error {
	return &Error{Kind: ErrFileOpenFailed, Path: path, Err: err}
}

// IsParseError returns true if err is caused by malformed input
func IsParseError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case ErrEqualToWithoutAKey, ErrInvalidCharacter, ErrMissingEqualTo,
		ErrNoValueFoundForKey, ErrTrailingCharsAfterEqualTo, ErrValueWithoutAKey:
		return true
	}
	return false
}

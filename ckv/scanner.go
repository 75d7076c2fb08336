package ckv

import (
	"bufio"
	"io"
)

/*
A key line looks like:

KEY =

and is followed by a value block: one or more lines, each starting with
a tab or a '+'. The leading tab or '+' is not part of the value. Lines
are joined with '\n'. The block ends at the first line that starts with
neither.

KEY =
	first line
	second line
+third line
*/

type keyState int

const (
	// no key characters yet, skipping blank lines
	stateIdle keyState = iota
	// accumulating key characters
	stateInKey
	// key followed by space / tab, only more space / tab or '=' allowed
	stateAwaitingEquals
	// after '=', only space / tab and then '\n' allowed
	stateAwaitingNewline
)

// scanner is the state of a single top-level scan of a document
type scanner struct {
	r *bufio.Reader
	// 1-based line number, for diagnostics only
	line int
}

func newScanner(r io.Reader) *scanner {
	return &scanner{
		r:    bufio.NewReader(r),
		line: 1,
	}
}

func isTabOrSpace(c byte) bool {
	return c == '\t' || c == ' '
}

// other whitespace we tolerate on blank lines
func isOtherSpace(c byte) bool {
	return c == '\r' || c == '\v' || c == '\f'
}

// IsKeyChar returns true if c is allowed in a key: 0-9, A-Z, a-z, '_' and '-'
func IsKeyChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return c == '_' || c == '-'
}

// fail builds an error for the current position and resets the line
// counter so that a stale value is never mistaken for a live one
func (s *scanner) fail(kind error, key string) *Error {
	err := &Error{
		Kind: kind,
		Line: s.line,
		Key:  key,
	}
	s.line = 0
	return err
}

func (s *scanner) failIO(err error) error {
	e := &Error{
		Kind: ErrReadFailed,
		Line: s.line,
		Err:  err,
	}
	s.line = 0
	return e
}

// peek returns the next byte without consuming it. ok is false at the
// end of the stream
func (s *scanner) peek() (byte, bool) {
	d, err := s.r.Peek(1)
	if err != nil || len(d) == 0 {
		return 0, false
	}
	return d[0], true
}

// scanKey reads up to and including the newline that ends a key line.
// Returns "" and no error when there are no more keys. scanValue must
// not be called in that case.
func (s *scanner) scanKey() (string, error) {
	var key []byte
	state := stateIdle
	for {
		c, err := s.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", s.failIO(err)
		}

		switch {
		case c == '\n':
			switch state {
			case stateAwaitingNewline:
				// a key must be followed by at least one tab-indented line
				next, ok := s.peek()
				if !ok || next != '\t' {
					return "", s.fail(ErrNoValueFoundForKey, string(key))
				}
				s.line++
				return string(key), nil
			case stateInKey, stateAwaitingEquals:
				return "", s.fail(ErrMissingEqualTo, string(key))
			}
			// blank line
			s.line++

		case c == '=':
			if state == stateAwaitingNewline {
				return "", s.fail(ErrTrailingCharsAfterEqualTo, string(key))
			}
			if len(key) == 0 {
				return "", s.fail(ErrEqualToWithoutAKey, "")
			}
			state = stateAwaitingNewline

		case isTabOrSpace(c):
			if state == stateInKey {
				state = stateAwaitingEquals
			}

		case state == stateAwaitingEquals:
			return "", s.fail(ErrMissingEqualTo, string(key))

		case state == stateAwaitingNewline:
			return "", s.fail(ErrTrailingCharsAfterEqualTo, string(key))

		case state == stateIdle && isOtherSpace(c):
			continue

		case !IsKeyChar(c):
			err := s.fail(ErrInvalidCharacter, string(key))
			err.Char = c
			return "", err

		default:
			key = append(key, c)
			state = stateInKey
		}
	}

	switch state {
	case stateAwaitingNewline:
		return "", s.fail(ErrNoValueFoundForKey, string(key))
	case stateInKey, stateAwaitingEquals:
		return "", s.fail(ErrMissingEqualTo, string(key))
	}
	return "", nil
}

// scanValue reads a value block. Must be called right after scanKey
// returned a non-empty key, which guarantees the next byte is a tab.
// If the stream ends before a line terminating the block, the value
// is lost and "" is returned.
func (s *scanner) scanValue() (string, error) {
	// the leading tab
	if _, err := s.r.ReadByte(); err != nil {
		if err == io.EOF {
			return "", nil
		}
		return "", s.failIO(err)
	}

	var value []byte
	for {
		c, err := s.r.ReadByte()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", s.failIO(err)
		}
		if c != '\n' {
			value = append(value, c)
			continue
		}
		s.line++
		next, ok := s.peek()
		if !ok || (next != '\t' && next != '+') {
			return string(value), nil
		}
		// folded line: keep the line break, drop the tab or '+'
		value = append(value, '\n')
		_, _ = s.r.ReadByte()
	}
}

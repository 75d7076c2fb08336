// Package ckv reads and writes ckv files: a simple, line-oriented
// key / value format that is easy to edit by hand.
//
// # Format
//
// A key is on its own, unindented line, followed by '='. The value is on
// the following lines, each starting with a tab. A line starting with '+'
// also continues the value.
//
//	NAME =
//		John
//
//	ADDRESS =
//		1 Main Street
//		Springfield
//
// Keys can only contain A-Z, a-z, 0-9, '_' and '-'. Spaces and tabs are
// allowed between the key and '=' and after '='. Every key must have a
// value. Blank lines between entries are ignored.
//
// The value of ADDRESS above is "1 Main Street\nSpringfield".
//
// If the file doesn't end with a newline, the value of the last key is
// read as an empty string.
//
// # Reading
//
//	f := ckv.New("settings.ckv")
//	defer f.Close()
//	name, err := f.GetValue("NAME")
//	if errors.Is(err, ckv.ErrKeyNotFound) {
//	    // ...
//	}
//
// To read everything use [File.ImportAll] or [Parse].
//
// # Writing
//
// [File.SetValue] and [File.RemoveKey] re-write the whole file. The order of
// entries is preserved, new keys are added at the end. [File.SetValueTo]
// and [File.RemoveKeyTo] write the updated document to an io.Writer instead.
//
// # Errors
//
// Malformed data is reported as *Error with Kind set to one of
// ErrEqualToWithoutAKey, ErrInvalidCharacter, ErrMissingEqualTo,
// ErrNoValueFoundForKey or ErrTrailingCharsAfterEqualTo and Line set to
// the line where the problem was found. Any error aborts the whole
// operation.
package ckv

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jrepair

import "fmt"

// ErrorKind classifies a grammar violation. ErrorKind values implement the
// error interface, so a *SyntaxError can be matched with errors.Is.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnexpectedByte     ErrorKind = iota + 1 // byte not permitted here
	UnterminatedString                      // input ended inside a string
	InvalidEscape                           // bad \-escape in a string
	InvalidNumber                           // malformed number
	InvalidLiteral                          // misspelled true, false, or null
	MismatchedBracket                       // "{" closed by "]" or vice versa
	TrailingContent                         // non-space after a complete value
	EmptyInput                              // no value to complete
	DepthExceeded                           // nesting deeper than the limit
	Incomplete                              // input ended with open structures
)

var kindStr = [...]string{
	0:                  "no error",
	UnexpectedByte:     "unexpected byte",
	UnterminatedString: "unterminated string",
	InvalidEscape:      "invalid escape",
	InvalidNumber:      "invalid number",
	InvalidLiteral:     "invalid literal",
	MismatchedBracket:  "mismatched bracket",
	TrailingContent:    "trailing content",
	EmptyInput:         "empty input",
	DepthExceeded:      "depth exceeded",
	Incomplete:         "incomplete input",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// SyntaxError is the concrete type of errors reported by a Verifier.
type SyntaxError struct {
	Location LineCol   // where the offending byte (or end of input) occurred
	Offset   int       // byte offset from the start of input, 0-based
	Kind     ErrorKind // the class of violation
	Message  string    // a human-readable description
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping. It returns the Kind of s.
func (s *SyntaxError) Unwrap() error { return s.Kind }

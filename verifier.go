// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jrepair

import (
	"fmt"

	"go4.org/mem"
)

// Status describes the state of a Verifier after the most recent byte.
type Status byte

// Constants defining the valid Status values.
const (
	Continue Status = iota // the input is a valid prefix of a JSON value
	Valid                  // the top-level value is complete
	Invalid                // the input is not a valid prefix
)

var statusStr = [...]string{
	Continue: "Continue",
	Valid:    "Valid",
	Invalid:  "Invalid",
}

func (s Status) String() string {
	if int(s) >= len(statusStr) {
		return fmt.Sprintf("Status(%d)", s)
	}
	return statusStr[s]
}

type frameKind byte

const (
	objectFrame frameKind = iota
	arrayFrame
)

type expectation byte

const (
	expectValue expectation = iota
	expectKey
	expectColon
	expectCommaOrClose
)

// A frame records the state of one open object or array.
type frame struct {
	kind   frameKind
	expect expectation
	has    bool // at least one element is complete
	mark   int  // offset after the open bracket or the last complete element
}

func (f frame) closer() byte {
	if f.kind == objectFrame {
		return '}'
	}
	return ']'
}

type lexKind byte

const (
	lexNone    lexKind = iota // between tokens
	lexString                 // inside a string
	lexEscape                 // after a backslash in a string
	lexUnicode                // inside the hex digits of a \u escape
	lexNumber                 // inside a number
	lexLiteral                // inside true, false, or null
)

type numPhase byte

const (
	numSign      numPhase = iota // after "-"
	numZero                      // after a leading "0"
	numInt                       // in integer digits
	numDot                       // after "."
	numFrac                      // in fraction digits
	numExp                       // after "e" or "E"
	numExpSign                   // after the exponent sign
	numExpDigits                 // in exponent digits
)

// terminal reports whether a number may end in phase p.
func (p numPhase) terminal() bool {
	switch p {
	case numZero, numInt, numFrac, numExpDigits:
		return true
	}
	return false
}

// lexState is the lexical sub-state of a verifier. At most one token is in
// progress at a time.
type lexState struct {
	kind lexKind
	key  bool     // lexString, lexEscape, lexUnicode: the string is an object key
	num  numPhase // lexNumber
	lit  mem.RO   // lexLiteral: the expected text
	pos  int      // lexLiteral: bytes matched; lexUnicode: hex digits remaining
}

var (
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
	litNull  = mem.S("null")
)

// A Verifier checks incrementally, one byte at a time, whether its input is a
// prefix of a valid JSON text. The zero value is ready for use.
//
// Once a Verifier reports an error it is Invalid, and all further calls to
// Update report the same error without changing its state.
type Verifier struct {
	stk      []frame
	lex      lexState
	done     bool // the top-level value is complete
	err      *SyntaxError
	maxDepth int

	off       int // bytes accepted
	line, col int // 0-based
}

// NewVerifier constructs a new Verifier with no depth limit.
func NewVerifier() *Verifier { return new(Verifier) }

// SetMaxDepth limits the nesting depth of objects and arrays to n. If n == 0
// there is no limit. SetMaxDepth panics if n < 0.
func (v *Verifier) SetMaxDepth(n int) {
	if n < 0 {
		panic(fmt.Sprintf("invalid maximum depth %d", n))
	}
	v.maxDepth = n
}

// Status reports the current status of v.
func (v *Verifier) Status() Status {
	if v.err != nil {
		return Invalid
	} else if v.done {
		return Valid
	}
	return Continue
}

// Err returns the error that made v Invalid, or nil.
func (v *Verifier) Err() error {
	if v.err == nil {
		return nil
	}
	return v.err
}

// Depth reports the number of objects and arrays currently open.
func (v *Verifier) Depth() int { return len(v.stk) }

// Len reports the number of bytes v has accepted.
func (v *Verifier) Len() int { return v.off }

// Reset discards the state of v so that it can be reused for a new input.
// The depth limit is retained.
func (v *Verifier) Reset() {
	v.stk = v.stk[:0]
	v.lex = lexState{}
	v.done = false
	v.err = nil
	v.off, v.line, v.col = 0, 0, 0
}

// Update advances v by one byte of input. It returns nil if the input up to
// and including b is a valid prefix; otherwise it returns a *SyntaxError and v
// becomes Invalid. A rejected byte does not change the grammar state.
func (v *Verifier) Update(b byte) error {
	if v.err != nil {
		return v.err
	}
	if err := v.step(b); err != nil {
		return err
	}
	v.off++
	if b == '\n' {
		v.line++
		v.col = 0
	} else {
		v.col++
	}
	return nil
}

// Finish reports the end of the input. A pending number is completed.
// Finish returns nil if the input is a complete JSON value; otherwise v
// becomes Invalid and the error is returned.
func (v *Verifier) Finish() error {
	if v.err != nil {
		return v.err
	}
	switch v.lex.kind {
	case lexNone:
		// OK
	case lexString, lexEscape, lexUnicode:
		return v.failf(UnterminatedString, "unterminated string")
	case lexNumber:
		if !v.lex.num.terminal() {
			return v.failf(InvalidNumber, "incomplete number")
		}
		v.lex = lexState{}
		v.complete(v.off)
	case lexLiteral:
		return v.failf(InvalidLiteral, "incomplete %s", v.lex.lit.StringCopy())
	default:
		panic(fmt.Sprintf("invalid lexical state %d", v.lex.kind))
	}
	if v.done {
		return nil
	} else if len(v.stk) == 0 {
		return v.failf(EmptyInput, "no value")
	}
	return v.failf(Incomplete, "missing %q", v.top().closer())
}

// Check reports whether data is a single complete JSON value, possibly
// surrounded by whitespace. If not, the error has type *SyntaxError.
func Check(data []byte) error {
	var v Verifier
	for _, b := range data {
		if err := v.Update(b); err != nil {
			return err
		}
	}
	return v.Finish()
}

// IsValid reports whether data is a single complete JSON value.
func IsValid(data []byte) bool { return Check(data) == nil }

func (v *Verifier) step(b byte) error {
	switch v.lex.kind {
	case lexNone:
		return v.between(b)
	case lexString:
		return v.inString(b)
	case lexEscape:
		return v.inEscape(b)
	case lexUnicode:
		if !isHexDigit(b) {
			return v.failf(InvalidEscape, "not a hex digit: %q", b)
		}
		v.lex.pos--
		if v.lex.pos == 0 {
			v.lex.kind = lexString
		}
		return nil
	case lexNumber:
		return v.inNumber(b)
	case lexLiteral:
		return v.inLiteral(b)
	default:
		panic(fmt.Sprintf("invalid lexical state %d", v.lex.kind))
	}
}

// between handles b when no token is in progress.
func (v *Verifier) between(b byte) error {
	if isSpace(b) {
		return nil
	}
	if len(v.stk) == 0 {
		if v.done {
			return v.failf(TrailingContent, "unexpected %q after value", b)
		}
		return v.begin(b)
	}

	f := v.top()
	switch f.expect {
	case expectValue:
		if b == '}' || b == ']' {
			return v.close(b, f.kind == arrayFrame && !f.has)
		}
		return v.begin(b)

	case expectKey:
		switch b {
		case '"':
			v.lex = lexState{kind: lexString, key: true}
			return nil
		case '}', ']':
			return v.close(b, !f.has)
		}
		return v.failf(UnexpectedByte, "got %q, want string", b)

	case expectColon:
		if b != ':' {
			return v.failf(UnexpectedByte, `got %q, want ":"`, b)
		}
		f.expect = expectValue
		return nil

	case expectCommaOrClose:
		switch b {
		case ',':
			if f.kind == objectFrame {
				f.expect = expectKey
			} else {
				f.expect = expectValue
			}
			return nil
		case '}', ']':
			return v.close(b, true)
		}
		return v.failf(UnexpectedByte, `got %q, want "," or %q`, b, f.closer())

	default:
		panic(fmt.Sprintf("invalid expectation %d", f.expect))
	}
}

// begin starts a new value whose first byte is b.
func (v *Verifier) begin(b byte) error {
	switch b {
	case '{':
		return v.push(objectFrame, expectKey)
	case '[':
		return v.push(arrayFrame, expectValue)
	case '"':
		v.lex = lexState{kind: lexString}
	case '-':
		v.lex = lexState{kind: lexNumber, num: numSign}
	case '0':
		v.lex = lexState{kind: lexNumber, num: numZero}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v.lex = lexState{kind: lexNumber, num: numInt}
	case 't':
		v.lex = lexState{kind: lexLiteral, lit: litTrue, pos: 1}
	case 'f':
		v.lex = lexState{kind: lexLiteral, lit: litFalse, pos: 1}
	case 'n':
		v.lex = lexState{kind: lexLiteral, lit: litNull, pos: 1}
	default:
		return v.failf(UnexpectedByte, "unexpected %q", b)
	}
	return nil
}

func (v *Verifier) inString(b byte) error {
	switch {
	case b == '"':
		key := v.lex.key
		v.lex = lexState{}
		if key {
			v.top().expect = expectColon
		} else {
			v.complete(v.off + 1)
		}
	case b == '\\':
		v.lex.kind = lexEscape
	case b < ' ':
		return v.failf(UnexpectedByte, "unescaped control %q", b)
	}
	return nil
}

func (v *Verifier) inEscape(b byte) error {
	switch b {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		v.lex.kind = lexString
	case 'u':
		v.lex.kind = lexUnicode
		v.lex.pos = 4
	default:
		return v.failf(InvalidEscape, "invalid %q after escape", b)
	}
	return nil
}

func (v *Verifier) inLiteral(b byte) error {
	if b != v.lex.lit.At(v.lex.pos) {
		return v.failf(InvalidLiteral, "invalid %q in %s", b, v.lex.lit.StringCopy())
	}
	v.lex.pos++
	if v.lex.pos == v.lex.lit.Len() {
		v.lex = lexState{}
		v.complete(v.off + 1)
	}
	return nil
}

func (v *Verifier) inNumber(b byte) error {
	p := v.lex.num
	switch {
	case isDigit(b):
		switch p {
		case numSign:
			if b == '0' {
				p = numZero
			} else {
				p = numInt
			}
		case numZero:
			// That is: 0.12 is OK, 01.2 is not.
			return v.failf(InvalidNumber, "extra leading zeroes")
		case numDot:
			p = numFrac
		case numExp, numExpSign:
			p = numExpDigits
		}
	case b == '.' && (p == numZero || p == numInt):
		p = numDot
	case (b == 'e' || b == 'E') && (p == numZero || p == numInt || p == numFrac):
		p = numExp
	case (b == '+' || b == '-') && p == numExp:
		p = numExpSign
	case p.terminal() && isNumEnd(b):
		return v.endNumber(b)
	default:
		return v.failf(InvalidNumber, "unexpected %q in number", b)
	}
	v.lex.num = p
	return nil
}

// endNumber completes the current number, which is terminated by b, and then
// processes b. If b is rejected, the state prior to b is restored.
func (v *Verifier) endNumber(b byte) error {
	saveLex, saveDone := v.lex, v.done
	var saveTop frame
	if len(v.stk) != 0 {
		saveTop = *v.top()
	}

	v.lex = lexState{}
	v.complete(v.off)
	if err := v.between(b); err != nil {
		v.lex, v.done = saveLex, saveDone
		if len(v.stk) != 0 {
			*v.top() = saveTop
		}
		return err
	}
	return nil
}

func (v *Verifier) push(kind frameKind, expect expectation) error {
	if v.maxDepth > 0 && len(v.stk) >= v.maxDepth {
		return v.failf(DepthExceeded, "nesting depth exceeds %d", v.maxDepth)
	}
	v.stk = append(v.stk, frame{kind: kind, expect: expect, mark: v.off + 1})
	return nil
}

// close pops the innermost frame for the closing bracket b. If ok is false,
// the frame may not be closed at this point.
func (v *Verifier) close(b byte, ok bool) error {
	f := v.top()
	if want := f.closer(); b != want {
		return v.failf(MismatchedBracket, "got %q, want %q", b, want)
	} else if !ok {
		return v.failf(UnexpectedByte, "unexpected %q", b)
	}
	v.stk = v.stk[:len(v.stk)-1]
	v.complete(v.off + 1)
	return nil
}

// complete records the completion of a value ending at offset end.
func (v *Verifier) complete(end int) {
	if len(v.stk) == 0 {
		v.done = true
		return
	}
	f := v.top()
	f.has = true
	f.expect = expectCommaOrClose
	f.mark = end
}

func (v *Verifier) top() *frame { return &v.stk[len(v.stk)-1] }

// cut reports the length of the longest prefix of the input, no longer than
// end, that becomes a complete value when the open frames are closed. It
// returns -1 if there is no such prefix.
//
// The frames must not have changed since offset end, apart from a token in
// progress.
func (v *Verifier) cut(end int) int {
	if len(v.stk) == 0 {
		if v.done {
			return end
		}
		return -1
	}
	if f := v.stk[len(v.stk)-1]; f.expect != expectCommaOrClose {
		// Drop a trailing comma, a key without a value, or a partial token.
		return f.mark
	}
	return end
}

// appendClosers appends to buf the closing brackets for all open frames,
// innermost first.
func (v *Verifier) appendClosers(buf []byte) []byte {
	for i := len(v.stk) - 1; i >= 0; i-- {
		buf = append(buf, v.stk[i].closer())
	}
	return buf
}

func (v *Verifier) failf(kind ErrorKind, msg string, args ...any) error {
	v.err = &SyntaxError{
		Location: LineCol{Line: v.line + 1, Column: v.col},
		Offset:   v.off,
		Kind:     kind,
		Message:  fmt.Sprintf(msg, args...),
	}
	return v.err
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}

func isNumEnd(b byte) bool { return isSpace(b) || b == ',' || b == '}' || b == ']' }
func isDigit(b byte) bool  { return '0' <= b && b <= '9' }

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

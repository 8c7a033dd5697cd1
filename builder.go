// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jrepair

import (
	"io"

	"go4.org/mem"
)

// Options are settings for a Builder. A nil *Options is ready for use and
// provides default values as described.
type Options struct {
	// Limit the nesting depth of objects and arrays.
	// If zero, there is no limit. Negative values are invalid.
	MaxDepth int

	// The initial capacity of the input buffer, in bytes.
	// If zero or negative, a default size is used.
	Capacity int
}

const defaultCapacity = 512

func (o *Options) maxDepth() int {
	if o == nil {
		return 0
	}
	return o.MaxDepth
}

func (o *Options) capacity() int {
	if o == nil || o.Capacity <= 0 {
		return defaultCapacity
	}
	return o.Capacity
}

// A Builder accumulates a possibly incomplete JSON text and, on request,
// completes it to a valid JSON value by discarding an incomplete tail and
// closing any open objects and arrays.
//
// Every byte written to a Builder is checked by an internal Verifier. Once
// the input becomes invalid, further bytes are recorded but not checked, and
// completion works from the valid prefix.
type Builder struct {
	v    Verifier
	buf  []byte
	ckpt int // offset after the last byte that left no token in progress
}

// NewBuilder constructs a new empty Builder with the given options.
// NewBuilder panics if opts.MaxDepth < 0.
func NewBuilder(opts *Options) *Builder {
	b := &Builder{buf: make([]byte, 0, opts.capacity())}
	b.v.SetMaxDepth(opts.maxDepth())
	return b
}

// Update appends data to the input of b. It reports an error of concrete
// type *SyntaxError if the input is no longer a valid JSON prefix; that
// error is sticky and is reported by all subsequent calls to Update.
func (b *Builder) Update(data []byte) error { return b.update(mem.B(data)) }

// UpdateString appends s to the input of b. It behaves as Update.
func (b *Builder) UpdateString(s string) error { return b.update(mem.S(s)) }

// ReadFrom appends all the data from r to the input of b, until r reports
// io.EOF. It implements the io.ReaderFrom interface. Reading stops at the
// first read error or when the input becomes invalid.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	var buf [4096]byte
	var nr int64
	for {
		n, err := r.Read(buf[:])
		nr += int64(n)
		if uerr := b.update(mem.B(buf[:n])); uerr != nil {
			return nr, uerr
		}
		if err == io.EOF {
			return nr, nil
		} else if err != nil {
			return nr, err
		}
	}
}

func (b *Builder) update(src mem.RO) error {
	base := len(b.buf)
	b.buf = mem.Append(b.buf, src)
	if b.v.err != nil {
		return b.v.err
	}
	for i := 0; i < src.Len(); i++ {
		if err := b.v.Update(src.At(i)); err != nil {
			return err
		}
		if b.v.lex.kind == lexNone {
			b.ckpt = base + i + 1
		}
	}
	return nil
}

// Len reports the total number of bytes written to b, including any that
// were not accepted.
func (b *Builder) Len() int { return len(b.buf) }

// Bytes returns a view of all the bytes written to b, including any that were
// not accepted. The return value is only valid until the next call to an
// update method of b.
func (b *Builder) Bytes() []byte { return b.buf }

// Status reports the status of the input written to b.
func (b *Builder) Status() Status { return b.v.Status() }

// Err returns the error that made the input invalid, or nil.
func (b *Builder) Err() error { return b.v.Err() }

// Checkpoint reports the offset just past the last byte of the input at
// which no string, number, or literal was in progress.
func (b *Builder) Checkpoint() int { return b.ckpt }

// Reset discards the contents of b so it can be reused.
func (b *Builder) Reset() {
	b.v.Reset()
	b.buf = b.buf[:0]
	b.ckpt = 0
}

// CompletedBytes returns a complete JSON value built from the longest usable
// prefix of the input, with closing brackets added for any objects and arrays
// left open. A token in progress, a trailing comma, and an object key with no
// value are discarded. The input of b is not modified.
//
// If the input contains no usable value, CompletedBytes reports EmptyInput.
func (b *Builder) CompletedBytes() ([]byte, error) {
	n := b.v.cut(b.ckpt)
	if n < 0 {
		return nil, EmptyInput
	}
	out := make([]byte, n, n+b.v.Depth())
	copy(out, b.buf)
	return b.v.appendClosers(out), nil
}

// CompletedString returns the result of CompletedBytes as a string.
func (b *Builder) CompletedString() (string, error) {
	out, err := b.CompletedBytes()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

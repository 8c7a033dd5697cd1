// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jrepair implements an incremental JSON verifier, and a builder that
// completes truncated or damaged JSON text.
//
// # Verifying
//
// The Verifier type checks its input one byte at a time. After each call to
// Update, the Status method reports whether the input so far is a valid
// prefix of a JSON value (Continue), a complete value (Valid), or neither
// (Invalid):
//
//	v := jrepair.NewVerifier()
//	for _, b := range input {
//	   if err := v.Update(b); err != nil {
//	      log.Fatalf("Invalid JSON: %v", err)
//	   }
//	}
//	if err := v.Finish(); err != nil {
//	   log.Fatalf("Incomplete JSON: %v", err)
//	}
//
// A Verifier never buffers its input. Its memory use is proportional to the
// nesting depth of the input. Errors are terminal: once Update reports an
// error, every later call reports the same error. Errors have concrete type
// *jrepair.SyntaxError, and match their ErrorKind with errors.Is:
//
//	if errors.Is(err, jrepair.TrailingContent) { ... }
//
// # Completing
//
// The Builder type records its input and tracks the last point at which no
// string, number, or literal was in progress. The CompletedString method
// truncates the input to a usable prefix and closes any objects or arrays
// still open:
//
//	b := jrepair.NewBuilder(nil)
//	b.UpdateString(`{"name":"annie","tags":["a","b`)
//	s, err := b.CompletedString() // {"name":"annie","tags":["a"]}
//
// Completion never invents values: an incomplete token, a trailing comma, and
// a key with no value are removed, and nothing else is changed.
//
// Neither type is safe for concurrent use without external synchronization.
package jrepair

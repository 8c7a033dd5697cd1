package jrepair_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jrepair"
)

// benchInput returns a synthetic JSON document with n array elements.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`{"items": [`)
	for i := range n {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, `{"id": %d, "name": "item é %d", "ok": true, "score": %d.25e-1, "tags": [null, "a"]}`, i, i, i)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String())
}

func BenchmarkVerifier(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Valid", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for i := 0; i < b.N; i++ {
			if !json.Valid(input) {
				b.Fatal("Invalid input")
			}
		}
	})

	b.Run("Check", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for i := 0; i < b.N; i++ {
			if err := jrepair.Check(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Builder", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		half := input[:len(input)/2]
		for i := 0; i < b.N; i++ {
			bb := jrepair.NewBuilder(&jrepair.Options{Capacity: len(half)})
			if err := bb.Update(half); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			if _, err := bb.CompletedBytes(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

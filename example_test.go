package jrepair_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/creachadair/jrepair"
)

func ExampleVerifier() {
	v := jrepair.NewVerifier()
	for _, b := range []byte(`{"a":1}x`) {
		err := v.Update(b)
		fmt.Printf("%c %v", b, v.Status())
		if err != nil {
			fmt.Printf(" (%v)", err)
		}
		fmt.Println()
	}
	// Output:
	// { Continue
	// " Continue
	// a Continue
	// " Continue
	// : Continue
	// 1 Continue
	// } Valid
	// x Invalid (at 1:7: unexpected 'x' after value)
}

func ExampleBuilder() {
	b := jrepair.NewBuilder(nil)
	b.UpdateString(`{"name":"annie","age":14,"parents":{"mother":null,"broken`)
	b.UpdateString(" value")

	s, err := b.CompletedString()
	if err != nil {
		log.Fatalf("CompletedString: %v", err)
	}
	fmt.Println(s)
	// Output:
	// {"name":"annie","age":14,"parents":{"mother":null}}
}

func ExampleBuilder_emptyInput() {
	b := jrepair.NewBuilder(nil)
	b.UpdateString("   ")

	_, err := b.CompletedString()
	fmt.Println(errors.Is(err, jrepair.EmptyInput))
	// Output:
	// true
}

func ExampleCheck() {
	for _, s := range []string{`[1, 2]`, `[1, 2,]`, `[1, 2`} {
		fmt.Println(jrepair.Check([]byte(s)))
	}
	// Output:
	// <nil>
	// at 1:6: unexpected ']'
	// at 1:5: missing ']'
}

// Command peg is a tiny demonstration of the parser: it builds a small
// arithmetic grammar from PEG source text and tries it against a couple
// of inputs, printing whether each one was accepted.
package main

import (
	"fmt"

	"github.com/tef/peg"
)

const grammarSource = `
Expr    <- Term (('+' / '-') Term)*
Term    <- Factor (('*' / '/') Factor)*
Factor  <- '(' Expr ')' / Number
Number  <- [0-9]+
`

func main() {
	grammar, err := peg.ParseGrammar(grammarSource)
	if err != nil {
		fmt.Println("err:", err)
		return
	}

	for _, input := range []string{"1+2*3", "(1+2)*3", "1+"} {
		fmt.Println("-")
		result, err := grammar.Parse(input, "Expr")
		if err != nil {
			fmt.Println("err:", err)
			continue
		}
		if peg.IsMismatch(result) {
			fmt.Printf("%q: mismatch (furthest %d)\n", input, result.Furthest)
			continue
		}
		fmt.Printf("%q: matched [%d, %d)\n", input, result.Start, result.End)
	}
}

// Command rhyme analyses end-rhyme in lines of verse from the command line.
//
// Usage:
//
//	rhyme analyse "line one" "line two" [...]
//	rhyme scheme poem.txt [more.txt...]
//	rhyme poem poem.txt [-o out.csv]
//	rhyme couplets poem.txt [-o out.csv]
//	rhyme gloss "a sentence"
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

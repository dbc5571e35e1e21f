// Command hkeyqp runs a small set of canned physical query plans against
// the in-memory reference adapter, demonstrating the row codec and
// operator framework end to end.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

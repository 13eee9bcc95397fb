package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// main defers all real work to cobra. The only policy here is the exit
// status and keeping interrupt-driven cancellations quiet.
func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "videodub: %v\n", err)
	}
	os.Exit(1)
}

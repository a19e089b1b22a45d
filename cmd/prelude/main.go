// Command prelude generates the reference prelude and plays, renders or
// serves it.
//
// Usage:
//
//	prelude notes                    # print the note sequence
//	prelude play -k harmonic-minor   # play it on the speakers
//	prelude render -o prelude.wav    # write a WAVE file
//	prelude midi -o prelude.mid      # write a MIDI file
//	prelude serve                    # HTTP API on :7999
package main

import (
	"fmt"
	"os"

	"github.com/rwelin/prelude/cmd/prelude/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

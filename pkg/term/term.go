// Package term owns the output stream for user-facing command output.
//
// Commands write through Echo rather than printing to os.Stdout directly so
// that the progress bar can capture incidental output while an animation is
// on screen, and so tests can inspect what was printed.
package term

import (
	"fmt"
	"io"
	"os"
)

// Stdout is the destination for user-facing output. The progress bar swaps
// it for an inert sink while a frame animation is running, and restores it
// when the animation stops.
var Stdout io.Writer = os.Stdout

// Echo prints a single line of user-facing output.
func Echo(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, format+"\n", args...)
}

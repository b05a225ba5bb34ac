// Package climsg prints dano's status and error lines, following the
// teacher's cmd/error.go, cmd/output.go, and cmd/log.go convention of
// routing everything through fatih/color with TTY-aware escape suppression.
package climsg

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	colorEnabled = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	fatalColor   = color.New(color.FgRed, color.Bold)
)

func init() {
	color.NoColor = !colorEnabled
}

// Warning prints a yellow, non-fatal status line to stderr.
func Warning(format string, args ...interface{}) {
	warningColor.Fprintf(os.Stderr, format+"\n", args...)
}

// Error prints a red, non-fatal error line to stderr.
func Error(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
}

// Fatal prints a bold red error line to stderr and exits the process with
// code 1, dano's reserved code for configuration and startup failures.
func Fatal(format string, args ...interface{}) {
	fatalColor.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Printf writes an unstyled line to stdout.
func Printf(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

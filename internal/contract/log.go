package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("✗"), msg, err)
	os.Exit(1)
}

// Warnf logs a formatted warning to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("⚠"), fmt.Sprintf(format, args...))
}

// Infof logs a formatted informational message to stderr, keeping stdout
// clean for report output.
func Infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s\n", fmt.Sprintf(format, args...))
}

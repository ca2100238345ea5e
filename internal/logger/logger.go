package logger

import (
	"io"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Out receives Info, Warn and Debug output. Error output goes to ErrOut.
// Both default to fatih/color's colorable stdout/stderr and can be swapped
// (tests point them at a bytes.Buffer).
var (
	Out    io.Writer = color.Output
	ErrOut io.Writer = color.Error
)

var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Info logs informational messages in green color.
func Info(format string, a ...any) {
	_, _ = infoColor.Fprintf(Out, format, a...)
}

// Warn logs warning messages in bright magenta color.
// Used for conditions that are reported but never abort a run, like a skipped plugin.
func Warn(format string, a ...any) {
	_, _ = warnColor.Fprintf(Out, format, a...)
}

// Error logs error messages in red color on the error stream.
func Error(format string, a ...any) {
	_, _ = errorColor.Fprintf(ErrOut, format, a...)
}

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is reassigned by Init based on the --debug flag.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
// When enabled, Debug prints cyan messages to Out.
// When disabled, Debug silently ignores everything.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = func(format string, a ...any) {
			_, _ = debugColor.Fprintf(Out, format, a...)
		}
	} else {
		Debug = func(format string, a ...any) {}
	}
}

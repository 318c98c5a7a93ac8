// Package logging provides colored, leveled log output for the gemini-note CLI.
//
// All output functions write a prefixed, color-coded line. Debug output is
// suppressed unless verbose mode is enabled via SetVerbose(true). Notices are
// the user-facing status messages ("Generating...", "Note created: ...").
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	verbose bool
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
)

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	noticePrefix  = color.New(color.FgCyan).SprintFunc()
	debugPrefix   = color.New(color.FgBlue).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// SetOutput redirects regular output to out and error output to errOut.
// Nil writers restore the process defaults.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

// Writer returns the current regular output writer.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return stdout
}

func write(toErr bool, prefix, msg string) {
	mu.Lock()
	defer mu.Unlock()
	w := stdout
	if toErr {
		w = stderr
	}
	fmt.Fprintln(w, prefix+" "+msg)
}

// Info prints an informational message to stdout in blue.
func Info(msg string) {
	write(false, infoPrefix("[INFO]"), msg)
}

// Success prints a success message to stdout in green.
func Success(msg string) {
	write(false, successPrefix("[SUCCESS]"), msg)
}

// Warn prints a warning message to stdout in yellow.
func Warn(msg string) {
	write(false, warnPrefix("[WARN]"), msg)
}

// Error prints an error message to stderr in red.
func Error(msg string) {
	write(true, errorPrefix("[ERROR]"), msg)
}

// Notice prints a user-facing status notice to stdout in cyan.
func Notice(msg string) {
	write(false, noticePrefix("[NOTICE]"), msg)
}

// Debug prints a debug message to stdout in blue, only when verbose mode is enabled.
func Debug(msg string) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if !v {
		return
	}
	write(false, debugPrefix("[DEBUG]"), msg)
}

// FormatSeconds renders a possibly fractional number of seconds.
//
// Examples:
//
//	FormatSeconds(0)    => "0s"
//	FormatSeconds(5)    => "5s"
//	FormatSeconds(2.5)  => "2.5s"
//	FormatSeconds(90)   => "1m 30s"
//	FormatSeconds(3661) => "1h 1m 1s"
func FormatSeconds(seconds float64) string {
	if seconds < 60 {
		return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
	}
	total := int(seconds)
	if total < 3600 {
		return fmt.Sprintf("%dm %ds", total/60, total%60)
	}
	return fmt.Sprintf("%dh %dm %ds", total/3600, (total%3600)/60, total%60)
}

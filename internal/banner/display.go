// Package banner provides colored banner display functions for the gemini-note CLI.
//
// Banners frame the start and the end of a run: what is about to be sent to
// Gemini, and how the request ended. They are written to the logging
// package's regular output.
package banner

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/gemini-note/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// Run describes a generation run for the startup banner.
type Run struct {
	Preset      string
	Model       string
	Input       string
	MIMEType    string
	Size        int
	Output      string
	IntervalSec float64
	MaxWaitSec  float64
}

func line(a ...any) {
	fmt.Fprintln(logging.Writer(), a...)
}

func linef(format string, a ...any) {
	fmt.Fprintf(logging.Writer(), format, a...)
}

// PrintStartupBanner displays what is about to be sent.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  gemini-note - Gemini attachment to note
//	═══════════════════════════════════════════════════
//	  Preset:     Translate
//	  Model:      gemini-2.5-flash
//	  Input:      paper.pdf (application/pdf, 1.2 MB)
//	  Output:     Papers/Translated
//	  Retry:      every 5s, up to 1m 0s
//	═══════════════════════════════════════════════════
func PrintStartupBanner(r Run) {
	sep := headerColor(rule)
	line(sep)
	line(headerColor("  gemini-note - Gemini attachment to note"))
	line(sep)
	if r.Preset != "" {
		linef("  Preset:     %s\n", r.Preset)
	}
	linef("  Model:      %s\n", r.Model)
	linef("  Input:      %s (%s, %s)\n", r.Input, r.MIMEType, FormatSize(r.Size))
	output := r.Output
	if output == "" {
		output = "."
	}
	linef("  Output:     %s\n", output)
	linef("  Retry:      every %s, up to %s\n", logging.FormatSeconds(r.IntervalSec), logging.FormatSeconds(r.MaxWaitSec))
	line(sep)
}

// PrintNoteBanner displays the created note.
//
//	═══════════════════════════════════════════════════
//	  ✓ Note created
//	  Path:       Papers/Translated/paper.md
//	  Attempts:   2
//	  Duration:   7.1s
//	═══════════════════════════════════════════════════
func PrintNoteBanner(path string, attempts int, durationSecs float64) {
	sep := successColor(rule)
	line(sep)
	line(successColor("  ✓ Note created"))
	linef("  Path:       %s\n", path)
	linef("  Attempts:   %d\n", attempts)
	linef("  Duration:   %s\n", logging.FormatSeconds(math.Round(durationSecs*10)/10))
	line(sep)
}

// PrintNoTextBanner displays when Gemini answered without usable text.
func PrintNoTextBanner(attempts int) {
	sep := warnColor(rule)
	line(sep)
	line(warnColor("  ⚠ No text returned from Gemini; no note created."))
	linef("  Attempts:   %d\n", attempts)
	line(sep)
}

// PrintFailureBanner displays a failed request. exhausted marks a request
// that kept hitting an unavailable service until the wait budget ran out.
//
//	═══════════════════════════════════════════════════
//	  ✗ Retry budget exhausted after 13 attempts
//	═══════════════════════════════════════════════════
//	  Reason:
//	  503 UNAVAILABLE: The model is overloaded.
//	═══════════════════════════════════════════════════
func PrintFailureBanner(attempts int, exhausted bool, reason string) {
	sep := errorColor(rule)
	line(sep)
	switch {
	case exhausted:
		line(errorColor(fmt.Sprintf("  ✗ Retry budget exhausted after %d attempts", attempts)))
	case attempts > 0:
		line(errorColor(fmt.Sprintf("  ✗ Generation failed on attempt %d", attempts)))
	default:
		line(errorColor("  ✗ Generation failed"))
	}
	line(sep)
	if reason = strings.TrimSpace(reason); reason != "" {
		line("  Reason:")
		linef("  %s\n", reason)
	}
	line(sep)
}

// PrintInterruptedBanner displays when the run was interrupted.
func PrintInterruptedBanner(attempts int) {
	sep := warnColor(rule)
	line(sep)
	line(warnColor("  ⚠ Interrupted"))
	linef("  Attempts:   %d\n", attempts)
	line("  No note was created")
	line(sep)
}

// FormatSize renders a byte count as B, KB or MB with one decimal.
func FormatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

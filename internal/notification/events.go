package notification

import "fmt"

// Event types emitted at the end of a run.
const (
	EventNoteCreated = "note_created"
	EventNoText      = "no_text"
	EventFailed      = "failed"
	EventExhausted   = "exhausted"
	EventInterrupted = "interrupted"
)

// Details carries the facts a notification message reports.
type Details struct {
	Input    string
	Model    string
	Note     string
	Attempts int
	ExitCode int
}

// FormatEvent creates a notification message for the given event.
func FormatEvent(event string, d Details) string {
	switch event {
	case EventNoteCreated:
		return fmt.Sprintf("✅ gemini-note [%s] note created: %s (%s, %d attempts)", d.Input, d.Note, d.Model, d.Attempts)
	case EventNoText:
		return fmt.Sprintf("⚠️ gemini-note [%s] no text returned from %s; no note created (exit %d)", d.Input, d.Model, d.ExitCode)
	case EventFailed:
		return fmt.Sprintf("❌ gemini-note [%s] generation failed on attempt %d (exit %d)", d.Input, d.Attempts, d.ExitCode)
	case EventExhausted:
		return fmt.Sprintf("⏳ gemini-note [%s] %s unavailable, gave up after %d attempts (exit %d)", d.Input, d.Model, d.Attempts, d.ExitCode)
	case EventInterrupted:
		return fmt.Sprintf("⏸️ gemini-note [%s] interrupted after %d attempts (exit %d)", d.Input, d.Attempts, d.ExitCode)
	default:
		return fmt.Sprintf("ℹ️ gemini-note [%s] event: %s (exit %d)", d.Input, event, d.ExitCode)
	}
}

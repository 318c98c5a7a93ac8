// Package exitcode defines named exit codes for the gemini-note CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

// Exit code constants.
const (
	Success       = 0   // Note created
	Error         = 1   // Invalid args, file not found, misconfiguration, write failure
	RequestFailed = 2   // Gemini request failed or retry budget exhausted
	NoText        = 3   // Gemini answered without text; no note created
	Interrupted   = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case RequestFailed:
		return "RequestFailed"
	case NoText:
		return "NoText"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}

package model

import (
	"fmt"
	"regexp"
	"strings"
)

// geminiModelRe matches identifiers the Gemini API accepts in a model path,
// optionally prefixed with "models/".
var geminiModelRe = regexp.MustCompile(`^(models/)?[a-z0-9][a-z0-9.\-]*$`)

// foreignModelHints are lower-cased prefixes of models served by other
// providers.
var foreignModelHints = []string{"opus", "sonnet", "haiku", "claude-", "gpt", "o1", "o3", "chatgpt"}

// Validate checks that id can be sent as a Gemini model. label names the
// flag or preset field being validated and is used in error messages.
//
// Rules:
//   - Empty ids are rejected (callers apply defaults first).
//   - Ids must be lower-case letters, digits, dots and dashes.
//   - Ids that look like another provider's model are rejected.
//
// Unknown but well-formed ids are accepted; use IsKnown to warn about them.
func Validate(id, label string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is empty", label)
	}
	if IsForeignModelHint(id) {
		return fmt.Errorf("%s %q is not a gemini model", label, id)
	}
	if !geminiModelRe.MatchString(id) {
		return fmt.Errorf("%s %q is not a valid model id", label, id)
	}
	return nil
}

// IsForeignModelHint returns true when id appears to target a Claude or
// OpenAI backend.
func IsForeignModelHint(id string) bool {
	lower := strings.ToLower(strings.TrimPrefix(id, "models/"))
	for _, hint := range foreignModelHints {
		if strings.HasPrefix(lower, hint) {
			return true
		}
	}
	return false
}

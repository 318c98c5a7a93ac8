// Package model provides Gemini model helpers for the gemini-note CLI.
//
// It centralises the catalogue of models offered to users, the default
// model, and validation of user-supplied model identifiers.
package model

// Default is the model used when neither a preset nor a flag names one.
const Default = "gemini-2.5-flash"

// Known lists the models offered for presets, in display order.
var Known = []string{
	"gemini-2.5-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-3-flash-preview",
	"gemini-3-pro-preview",
}

// IsKnown reports whether id is in the catalogue.
func IsKnown(id string) bool {
	for _, k := range Known {
		if k == id {
			return true
		}
	}
	return false
}

// OrDefault returns id, or Default when id is empty.
func OrDefault(id string) string {
	if id == "" {
		return Default
	}
	return id
}

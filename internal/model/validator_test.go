package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Validate ----------

func TestValidate_KnownModelsOK(t *testing.T) {
	for _, m := range Known {
		assert.NoError(t, Validate(m, "model"), "%q should be ok", m)
	}
}

func TestValidate_UnknownWellFormedOK(t *testing.T) {
	for _, m := range []string{"gemini-1.5-pro-002", "models/gemini-2.0-flash", "learnlm-2.0-flash-experimental"} {
		assert.NoError(t, Validate(m, "model"), "%q should be ok", m)
	}
}

func TestValidate_EmptyError(t *testing.T) {
	err := Validate("  ", "preset model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preset model")
}

func TestValidate_ForeignModelError(t *testing.T) {
	for _, m := range []string{"opus", "claude-3-opus", "gpt-4o", "o3-mini", "models/gpt-4"} {
		err := Validate(m, "--model")
		require.Error(t, err, "%q should be rejected", m)
		assert.Contains(t, err.Error(), "not a gemini model")
	}
}

func TestValidate_MalformedError(t *testing.T) {
	for _, m := range []string{"Gemini-2.5-Flash", "gemini 2.5", "gemini/flash", "-gemini"} {
		err := Validate(m, "--model")
		require.Error(t, err, "%q should be rejected", m)
		assert.Contains(t, err.Error(), "not a valid model id")
	}
}

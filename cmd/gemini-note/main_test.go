package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/gemini-note/internal/ai"
	"github.com/CodexForgeBR/gemini-note/internal/config"
	"github.com/CodexForgeBR/gemini-note/internal/exitcode"
	"github.com/CodexForgeBR/gemini-note/internal/logging"
)

// instantTimer fires as soon as it is started.
type instantTimer struct {
	mu sync.Mutex
	c  chan time.Time
}

func (t *instantTimer) Start(time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.c = make(chan time.Time, 1)
	t.c <- time.Now()
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	}
}

var unavailable = ai.NewStatusError(map[string]any{
	"status": 503,
	"error":  map[string]any{"code": 503, "status": "UNAVAILABLE", "message": "The model is overloaded."},
})

// fakeGemini answers with errs in order, then resp.
type fakeGemini struct {
	mu    sync.Mutex
	errs  []error
	resp  map[string]any
	calls int
	last  *ai.GenerationRequest
}

func (f *fakeGemini) Generate(_ context.Context, req *ai.GenerationRequest) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.calls <= len(f.errs) {
		return nil, f.errs[f.calls-1]
	}
	return f.resp, nil
}

// workspace isolates config discovery and returns the temp working dir.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	for _, key := range config.WhitelistedVars {
		t.Setenv(key, "")
	}
	t.Setenv("GEMINI_API_KEY", "AIza-test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.pdf"), []byte("%PDF-1.4"), 0644))
	return dir
}

func execute(t *testing.T, gen *fakeGemini, args ...string) (int, string) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out, errOut bytes.Buffer
	logging.SetOutput(&out, &errOut)
	t.Cleanup(func() {
		logging.SetOutput(nil, nil)
		logging.SetVerbose(false)
	})

	code := exitcode.Success
	cmd := newRootCmd(&ai.Executor{Generator: gen, Timer: &instantTimer{}}, &code)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		errOut.WriteString(err.Error())
		code = exitcode.Error
	}
	return code, out.String() + errOut.String()
}

func TestRunCreatesNote(t *testing.T) {
	dir := workspace(t)
	gen := &fakeGemini{resp: textResponse("# Summary")}

	code, output := execute(t, gen, "--prompt", "Summarize.", "paper.pdf")

	assert.Equal(t, exitcode.Success, code, output)
	assert.Contains(t, output, "Generating...")
	assert.Contains(t, output, "Note created: paper.md")

	data, err := os.ReadFile(filepath.Join(dir, "paper.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Summary", string(data))

	require.NotNil(t, gen.last)
	assert.Equal(t, "AIza-test", gen.last.Credential)
	assert.Equal(t, "gemini-2.5-flash", gen.last.Model)
	assert.Equal(t, "Summarize.", gen.last.Prompt)
	assert.Equal(t, "application/pdf", gen.last.Payload.MIMEType)
}

func TestRunRetriesWhileUnavailable(t *testing.T) {
	dir := workspace(t)
	gen := &fakeGemini{errs: []error{unavailable, unavailable}, resp: textResponse("done")}

	code, output := execute(t, gen, "--retry-interval", "5", "--max-retry-wait", "12", "paper.pdf")

	assert.Equal(t, exitcode.Success, code, output)
	assert.Equal(t, 3, gen.calls)
	assert.FileExists(t, filepath.Join(dir, "paper.md"))
}

func TestRunRetryBudgetExhausted(t *testing.T) {
	dir := workspace(t)
	gen := &fakeGemini{errs: []error{unavailable, unavailable, unavailable, unavailable}, resp: textResponse("late")}

	code, output := execute(t, gen, "--retry-interval", "5", "--max-retry-wait", "10", "paper.pdf")

	assert.Equal(t, exitcode.RequestFailed, code)
	assert.Equal(t, 3, gen.calls)
	assert.Contains(t, output, "Retry budget exhausted after 3 attempts")
	assert.NoFileExists(t, filepath.Join(dir, "paper.md"))
}

func TestRunFatalErrorIsNotRetried(t *testing.T) {
	workspace(t)
	fatal := ai.NewStatusError(map[string]any{"status": 400, "message": "API key not valid"})
	gen := &fakeGemini{errs: []error{fatal}}

	code, output := execute(t, gen, "paper.pdf")

	assert.Equal(t, exitcode.RequestFailed, code)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, output, "API key not valid")
}

func TestRunNoText(t *testing.T) {
	dir := workspace(t)
	gen := &fakeGemini{resp: nil}

	code, output := execute(t, gen, "paper.pdf")

	assert.Equal(t, exitcode.NoText, code)
	assert.Contains(t, output, "No text returned from Gemini; no note created.")
	assert.NoFileExists(t, filepath.Join(dir, "paper.md"))
}

func TestRunUniqueNoteNames(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.md"), []byte("old"), 0644))

	code, output := execute(t, &fakeGemini{resp: textResponse("new")}, "paper.pdf")

	assert.Equal(t, exitcode.Success, code, output)
	assert.Contains(t, output, "Note created: paper (1).md")
}

func TestRunWithPreset(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".gemini-note"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gemini-note", "presets.yaml"), []byte(`presets:
  - name: Translate
    model: gemini-2.5-pro
    prompt: Translate into English.
    outputPath: Papers/Translated
`), 0644))
	gen := &fakeGemini{resp: textResponse("translated")}

	code, output := execute(t, gen, "-p", "translate", "paper.pdf")

	assert.Equal(t, exitcode.Success, code, output)
	assert.Equal(t, "gemini-2.5-pro", gen.last.Model)
	assert.Equal(t, "Translate into English.", gen.last.Prompt)
	assert.FileExists(t, filepath.Join(dir, "Papers", "Translated", "paper.md"))
}

func TestRunUnknownPreset(t *testing.T) {
	workspace(t)
	gen := &fakeGemini{resp: textResponse("x")}

	code, output := execute(t, gen, "-p", "Missing", "paper.pdf")

	assert.Equal(t, exitcode.Error, code)
	assert.Contains(t, output, "preset not found")
	assert.Zero(t, gen.calls)
}

func TestRunRequiresAPIKey(t *testing.T) {
	workspace(t)
	t.Setenv("GEMINI_API_KEY", "")
	gen := &fakeGemini{resp: textResponse("x")}

	code, output := execute(t, gen, "paper.pdf")

	assert.Equal(t, exitcode.Error, code)
	assert.Contains(t, output, "API key not set")
	assert.Zero(t, gen.calls)
}

func TestRunAPIKeyFromDotenv(t *testing.T) {
	dir := workspace(t)
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=AIza-dotenv\n"), 0644))
	gen := &fakeGemini{resp: textResponse("x")}

	code, output := execute(t, gen, "paper.pdf")

	assert.Equal(t, exitcode.Success, code, output)
	assert.Equal(t, "AIza-dotenv", gen.last.Credential)
}

func TestRunRejectsForeignModel(t *testing.T) {
	workspace(t)
	gen := &fakeGemini{resp: textResponse("x")}

	code, output := execute(t, gen, "-m", "claude-sonnet-4", "paper.pdf")

	assert.Equal(t, exitcode.Error, code)
	assert.Contains(t, output, "not a gemini model")
}

func TestRunMissingInput(t *testing.T) {
	workspace(t)
	code, output := execute(t, &fakeGemini{}, "missing.pdf")

	assert.Equal(t, exitcode.Error, code)
	assert.Contains(t, output, "read attachment")
}

func TestModelsCommand(t *testing.T) {
	workspace(t)
	code, output := execute(t, &fakeGemini{}, "models")

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, output, "gemini-2.5-flash (default)")
	assert.Contains(t, output, "gemini-2.5-pro")
}

func TestPresetsCommand(t *testing.T) {
	dir := workspace(t)
	path := filepath.Join(dir, "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - name: Summary\n    prompt: Summarize.\n"), 0644))

	code, output := execute(t, &fakeGemini{}, "presets", "--presets-file", path)

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, output, "Summary")
	assert.Contains(t, output, "gemini-2.5-flash")
}

func TestRunWithStartAt(t *testing.T) {
	dir := workspace(t)
	gen := &fakeGemini{resp: textResponse("scheduled")}

	code, output := execute(t, gen, "--at", "+0s", "paper.pdf")

	assert.Equal(t, exitcode.Success, code, output)
	assert.FileExists(t, filepath.Join(dir, "paper.md"))
}

func TestRunInvalidStartAt(t *testing.T) {
	workspace(t)
	gen := &fakeGemini{resp: textResponse("x")}

	code, output := execute(t, gen, "--at", "someday", "paper.pdf")

	assert.Equal(t, exitcode.Error, code)
	assert.Contains(t, output, "--at")
	assert.Zero(t, gen.calls)
}

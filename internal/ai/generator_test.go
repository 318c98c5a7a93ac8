package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// geminiStub records request bodies and replays canned responses.
type geminiStub struct {
	mu        sync.Mutex
	bodies    []map[string]any
	responses []stubResponse
}

type stubResponse struct {
	status int
	body   string
}

func (s *geminiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(data, &body)
	s.bodies = append(s.bodies, body)

	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func TestGenAIGenerator_Success(t *testing.T) {
	stub := &geminiStub{responses: []stubResponse{{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"role":"model","parts":[{"text":"hello"},{"text":""},{"text":"world"}]}}]}`,
	}}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	payload := base64.StdEncoding.EncodeToString([]byte("%PDF-1.7 test"))
	req, err := NewGenerationRequest("test-key", "gemini-2.5-flash", "summarize", "application/pdf", payload)
	require.NoError(t, err)

	exec := &Executor{Generator: &GenAIGenerator{BaseURL: srv.URL, HTTPClient: srv.Client()}, Timer: &fakeTimer{}}
	out, err := exec.Execute(context.Background(), req, RetryPolicy{Interval: 1, MaxWait: 1})
	require.NoError(t, err)

	assert.True(t, out.HasText)
	assert.Equal(t, "hello\n\nworld", out.Text)
	assert.Contains(t, out.Raw, "candidates")

	require.Len(t, stub.bodies, 1)
	contents, ok := stub.bodies[0]["contents"].([]any)
	require.True(t, ok, "request body must carry contents")
	require.Len(t, contents, 1)

	turn := contents[0].(map[string]any)
	assert.Equal(t, "user", turn["role"])
	parts := turn["parts"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "summarize", parts[0].(map[string]any)["text"])

	inline := parts[1].(map[string]any)["inlineData"].(map[string]any)
	assert.Equal(t, "application/pdf", inline["mimeType"])
	assert.Equal(t, payload, inline["data"])
}

func TestGenAIGenerator_FatalAPIError(t *testing.T) {
	stub := &geminiStub{responses: []stubResponse{{
		status: http.StatusBadRequest,
		body:   `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
	}}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	req, err := NewGenerationRequest("bad-key", "gemini-2.5-flash", "p", "image/png", base64.StdEncoding.EncodeToString([]byte("png")))
	require.NoError(t, err)

	timer := &fakeTimer{}
	exec := &Executor{Generator: &GenAIGenerator{BaseURL: srv.URL, HTTPClient: srv.Client()}, Timer: timer}
	_, err = exec.Execute(context.Background(), req, RetryPolicy{Interval: 1, MaxWait: 10})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 1, reqErr.Attempts)
	assert.Empty(t, timer.Waits())

	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
}

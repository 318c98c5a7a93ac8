package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/CodexForgeBR/gemini-note/internal/logging"
	"github.com/CodexForgeBR/gemini-note/internal/parser"
)

// Outcome is the result of a successful generation.
type Outcome struct {
	// Text is the extracted text; meaningful only when HasText is true.
	Text    string
	HasText bool
	// Raw is the untouched response.
	Raw      map[string]any
	Attempts int
}

// RequestError is returned when a request finally fails. Err is the error of
// the last attempt.
type RequestError struct {
	Attempts int
	// Exhausted is set when the retry budget ran out on a retryable error.
	Exhausted bool
	Err       error
}

func (e *RequestError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("generation failed after %d attempts, retry budget exhausted: %v", e.Attempts, e.Err)
	}
	if e.Attempts == 0 {
		return fmt.Sprintf("generation failed: %v", e.Err)
	}
	return fmt.Sprintf("generation failed on attempt %d: %v", e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Executor retries a Generator while the service reports itself unavailable.
// An Executor holds no per-request state and may be shared between
// goroutines as long as its hooks are safe for concurrent use.
type Executor struct {
	Generator Generator
	// Timer drives the waits between attempts. Nil uses a real timer.
	Timer backoff.Timer
	// OnRetry is called before each wait with the failed attempt number.
	OnRetry func(attempt int, wait time.Duration)
}

// NewExecutor returns an Executor backed by the genai SDK.
func NewExecutor() *Executor {
	return &Executor{Generator: &GenAIGenerator{}}
}

// Execute runs req until it succeeds, fails with a non-retryable error, or
// the policy's wait budget is spent. Attempts are strictly sequential.
func (e *Executor) Execute(ctx context.Context, req *GenerationRequest, policy RetryPolicy) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Err: err}
	}
	if policy.Interval <= 0 || policy.MaxWait <= 0 {
		return nil, &RequestError{Err: fmt.Errorf("%w: retry policy must be positive", ErrInvalidRequest)}
	}

	id := uuid.NewString()[:8]
	attempt := 0
	var last Failure

	op := func() (map[string]any, error) {
		attempt++
		logging.Debug(fmt.Sprintf("[%s] gemini attempt %d (model %s)", id, attempt, req.Model))

		raw, err := e.Generator.Generate(ctx, req)
		if err == nil {
			return raw, nil
		}

		last = Classify(err)
		logging.Warn(fmt.Sprintf("[%s] gemini error (attempt %d, retryable=%t): %v", id, attempt, last.Retryable, err))
		if !last.Retryable {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, wait time.Duration) {
		logging.Info(fmt.Sprintf("[%s] service unavailable, retrying in %s", id, logging.FormatSeconds(wait.Seconds())))
		if e.OnRetry != nil {
			e.OnRetry(attempt, wait)
		}
	}

	budget := newBudgetBackOff(policy)
	raw, err := backoff.RetryNotifyWithTimerAndData(op, backoff.WithContext(budget, ctx), notify, e.Timer)
	if err != nil {
		exhausted := budget.spent && last.Retryable && ctx.Err() == nil
		return nil, &RequestError{Attempts: attempt, Exhausted: exhausted, Err: err}
	}

	text, ok := parser.ResponseText(raw)
	return &Outcome{Text: text, HasText: ok, Raw: raw, Attempts: attempt}, nil
}

// GenerateFromInlineData sends prompt together with an inline attachment to
// model, retrying every intervalSec seconds for at most maxWaitSec seconds of
// waiting while the service is unavailable.
func GenerateFromInlineData(ctx context.Context, credential, model, prompt, mimeType, base64Data string, intervalSec, maxWaitSec float64) (*Outcome, error) {
	req, err := NewGenerationRequest(credential, model, prompt, mimeType, base64Data)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	policy, err := NewRetryPolicy(intervalSec, maxWaitSec)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	return NewExecutor().Execute(ctx, req, policy)
}

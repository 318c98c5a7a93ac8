package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/CodexForgeBR/gemini-note/internal/logging"
)

// Waiter blocks until a target time while logging a countdown.
// The zero value uses the real clock.
type Waiter struct {
	Now   func() time.Time
	After func(time.Duration) <-chan time.Time
}

func (w *Waiter) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Waiter) after(d time.Duration) <-chan time.Time {
	if w.After != nil {
		return w.After(d)
	}
	return time.After(d)
}

// WaitUntil returns once target is reached, immediately if it has passed.
// Countdown lines are spaced adaptively: 60s above an hour, 30s above ten
// minutes, 10s above a minute, then every second.
func (w *Waiter) WaitUntil(ctx context.Context, target time.Time) error {
	remaining := target.Sub(w.now())
	if remaining <= 0 {
		return nil
	}

	logging.Info(fmt.Sprintf("Waiting until %s (%s remaining)", target.Format("2006-01-02 15:04:05"), remaining.Round(time.Second)))

	for {
		interval := adaptiveInterval(remaining)
		if interval > remaining {
			interval = remaining
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.after(interval):
		}

		remaining = target.Sub(w.now())
		if remaining <= 0 {
			return nil
		}
		logging.Debug(fmt.Sprintf("... %s remaining", remaining.Round(time.Second)))
	}
}

// adaptiveInterval returns the countdown display interval based on remaining time.
func adaptiveInterval(remaining time.Duration) time.Duration {
	switch {
	case remaining > time.Hour:
		return 60 * time.Second
	case remaining > 10*time.Minute:
		return 30 * time.Second
	case remaining > time.Minute:
		return 10 * time.Second
	default:
		return time.Second
	}
}

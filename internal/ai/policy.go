package ai

import (
	"fmt"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds the retries of a single request.
type RetryPolicy struct {
	// Interval is the fixed wait between attempts.
	Interval time.Duration
	// MaxWait is the total time that may be spent waiting between attempts.
	MaxWait time.Duration
}

// NewRetryPolicy builds a policy from (possibly fractional) seconds.
func NewRetryPolicy(intervalSec, maxWaitSec float64) (RetryPolicy, error) {
	if !(intervalSec > 0) || math.IsInf(intervalSec, 0) {
		return RetryPolicy{}, fmt.Errorf("%w: retry interval must be positive, got %v", ErrInvalidRequest, intervalSec)
	}
	if !(maxWaitSec > 0) || math.IsInf(maxWaitSec, 0) {
		return RetryPolicy{}, fmt.Errorf("%w: max retry wait must be positive, got %v", ErrInvalidRequest, maxWaitSec)
	}
	return RetryPolicy{
		Interval: seconds(intervalSec),
		MaxWait:  seconds(maxWaitSec),
	}, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// budgetBackOff hands out a constant interval until the accumulated wait
// would exceed the budget.
//
// An attempt is allowed while elapsed <= MaxWait, but no wait is started when
// elapsed+Interval > MaxWait. With Interval=5s and MaxWait=10s this yields
// attempts at 0s, 5s and 10s.
type budgetBackOff struct {
	policy  RetryPolicy
	elapsed time.Duration
	// spent is set once Stop has been returned.
	spent bool
}

var _ backoff.BackOff = (*budgetBackOff)(nil)

func newBudgetBackOff(p RetryPolicy) *budgetBackOff {
	return &budgetBackOff{policy: p}
}

// NextBackOff reports the next wait, or backoff.Stop once the budget is spent.
func (b *budgetBackOff) NextBackOff() time.Duration {
	if b.elapsed > b.policy.MaxWait || b.elapsed+b.policy.Interval > b.policy.MaxWait {
		b.spent = true
		return backoff.Stop
	}
	b.elapsed += b.policy.Interval
	return b.policy.Interval
}

// Reset clears the accumulated wait.
func (b *budgetBackOff) Reset() {
	b.elapsed = 0
	b.spent = false
}

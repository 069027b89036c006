package maintenance

import (
	"context"
	"errors"
	"math"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/shahinrahmannaim/CleanServiceManager-sub001/internal/domain"
)

// RetryPolicy bounds the attempts made within one maintenance cycle.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	Multiplier     float64
}

// DefaultRetryPolicy allows 3 attempts, waiting 2s and then 4s between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 2 * time.Second,
		Multiplier:     2,
	}
}

func (p RetryPolicy) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialBackoff
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(float64(p.InitialBackoff) * math.Pow(p.Multiplier, float64(p.MaxAttempts)))
	b.MaxElapsedTime = 0
	b.Reset()

	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithMaxRetries(b, uint64(retries))
}

// transientMarkers are message fragments that indicate connectivity or timeout trouble.
var transientMarkers = []string{
	"timeout",
	"timed out",
	"econnreset",
	"connection reset",
	"socket",
	"channel closed",
	"terminated",
	"terminating",
	"connection",
}

// IsTransientError reports whether err is likely to go away on retry. A transient or
// permanent kind recorded on a domain.StoreError is authoritative. Otherwise context
// deadlines, network timeouts and connectivity wording in the message count as transient.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if kind, ok := domain.KindOf(err); ok && kind != domain.KindUnknown {
		return kind == domain.KindTransient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return isTransientMessage(err.Error())
}

func isTransientMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// retry runs op under policy, retrying only transient failures. It returns the number of
// attempts made and the last error.
func retry(ctx context.Context, policy RetryPolicy, op func(ctx context.Context) error, notify func(attempt int, err error, wait time.Duration)) (int, error) {
	attempts := 0
	operation := func() error {
		attempts++
		err := op(ctx)
		if err != nil && !IsTransientError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(policy.newBackOff(), ctx), func(err error, wait time.Duration) {
		if notify != nil {
			notify(attempts, err, wait)
		}
	})
	return attempts, err
}

package maintenance

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRetryPolicy_Waits(t *testing.T) {
	b := DefaultRetryPolicy().newBackOff()

	assert.Equal(t, 2*time.Second, b.NextBackOff())
	assert.Equal(t, 4*time.Second, b.NextBackOff())
	assert.Equal(t, backoff.Stop, b.NextBackOff())
}

func TestRetryPolicy_SingleAttemptNeverWaits(t *testing.T) {
	b := RetryPolicy{MaxAttempts: 1, InitialBackoff: time.Second, Multiplier: 2}.newBackOff()

	assert.Equal(t, backoff.Stop, b.NextBackOff())
}

package worker

import (
	"math/rand"
	"time"
)

const (
	backoffBase = 2 * time.Second
	backoffCap  = 5 * time.Minute
)

// ExponentialBackoff spaces out retries after queue errors.
// attempt=0 => 2s, attempt=1 => 4s, attempt=2 => 8s, capped at 5m.
// The streak counter grows without bound during a long outage, so the
// exponent is clamped before the shift can overflow the duration.
func ExponentialBackoff(attempt int) time.Duration {
	delay := backoffCap

	if attempt >= 0 && attempt < 16 {
		if d := backoffBase << uint(attempt); d < backoffCap {
			delay = d
		}
	}

	// small jitter (0-250ms) to avoid thundering herd
	delay += time.Duration(rand.Intn(250)) * time.Millisecond
	return delay
}

package timeutil

import (
	"math/rand"
	"time"
)

// DurationPtr is a helper function to create a pointer to a time.Duration
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}

// MaxDuration returns the largest duration in the slice, or zero for an empty slice.
func MaxDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	max := durations[0]
	for _, d := range durations[1:] {
		if d > max {
			max = d
		}
	}
	return max
}

// ExponentialBackoffDelay computes the delay before retry attempt backoffCount+1.
// The base delay grows geometrically from the initial duration, is capped at the
// configured maximum, and a uniformly random jitter in [0, jitter) is added on top.
// The rng is passed by value so a caller-seeded generator controls the jitter.
func ExponentialBackoffDelay(
	backoffCount int,
	jitter time.Duration,
	rng rand.Rand,
	backoffParam BackoffParam,
) time.Duration {
	if backoffCount < 1 {
		backoffCount = 1
	}

	delay := float64(backoffParam.InitialDuration())
	for i := 1; i < backoffCount; i++ {
		delay *= backoffParam.Multiplier()
		if delay >= float64(backoffParam.MaxDuration()) {
			delay = float64(backoffParam.MaxDuration())
			break
		}
	}

	result := time.Duration(delay)
	if max := backoffParam.MaxDuration(); max > 0 && result > max {
		result = max
	}

	if jitter > 0 {
		result += time.Duration(rng.Int63n(int64(jitter)))
	}

	if result < 0 {
		return 0
	}
	return result
}

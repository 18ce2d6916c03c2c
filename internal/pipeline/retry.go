package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/logseq"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
)

// IsRetryable checks if an error is worth retrying: transient failures from
// either the recognition service or the Logseq API.
func IsRetryable(err error) bool {
	var recErr *recognition.RetryableError
	if errors.As(err, &recErr) {
		return true
	}
	var lsErr *logseq.RetryableError
	return errors.As(err, &lsErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3

package githubmodels

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Rate-limit headers consumed from API responses. Lookups through
// net/http are case-insensitive.
const (
	headerRateLimitRemaining     = "x-ratelimit-remaining"
	headerRateLimitReset         = "x-ratelimit-reset"
	headerRateLimitTimeRemaining = "x-ratelimit-timeremaining"
	headerRetryAfter             = "retry-after"
)

// baseDelay is the exponential backoff base. Growth is deliberately
// uncapped: the server's reset signal is trusted over an arbitrary
// ceiling.
const baseDelay = time.Second

// rateLimitSnapshot holds the throttling state advertised by a single
// response. It is derived fresh from each response and lives no longer
// than the request call that read it.
type rateLimitSnapshot struct {
	remaining    int
	hasRemaining bool
	resetAt      time.Time // zero when the response carried no reset signal
}

// snapshotRateLimit reads the remaining-request count and reset time
// from response headers. x-ratelimit-reset carries epoch seconds and
// takes precedence; x-ratelimit-timeremaining carries seconds from now
// and is consulted only when the epoch header is absent.
func snapshotRateLimit(h http.Header, now time.Time) rateLimitSnapshot {
	var snap rateLimitSnapshot

	if v := h.Get(headerRateLimitRemaining); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			snap.remaining = n
			snap.hasRemaining = true
		}
	}

	if v := h.Get(headerRateLimitReset); v != "" {
		if epoch, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			sec := int64(epoch)
			nsec := int64((epoch - float64(sec)) * float64(time.Second))
			snap.resetAt = time.Unix(sec, nsec)
		}
	} else if v := h.Get(headerRateLimitTimeRemaining); v != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			snap.resetAt = now.Add(time.Duration(secs) * time.Second)
		}
	}

	return snap
}

// retryDelay computes the wait before retrying a rate-limited request:
// the server's retry-after value (integer seconds) verbatim when
// present, exponential backoff in the retry count otherwise.
func retryDelay(h http.Header, retryCount int) time.Duration {
	if v := h.Get(headerRetryAfter); v != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return backoffDelay(retryCount)
}

// backoffDelay is baseDelay * 2^retryCount.
func backoffDelay(retryCount int) time.Duration {
	return baseDelay * (1 << retryCount)
}

package githubmodels

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoContent is returned when a successful response carries no
// choices to read content from.
var ErrNoContent = errors.New("githubmodels: response contained no choices")

// errMaxRetries guards the retry loop's unreachable exit.
var errMaxRetries = errors.New("githubmodels: max retries exceeded")

// APIError represents an error response from the GitHub Models API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("githubmodels API error (status %d, code %s): %s",
			e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("githubmodels API error (status %d): %s", e.StatusCode, e.Message)
}

// IsRateLimit reports whether the error carries a rate-limit status.
// The API signals secondary limits with 403 as well as 429.
func (e *APIError) IsRateLimit() bool {
	return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests
}

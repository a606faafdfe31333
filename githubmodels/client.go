package githubmodels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL    = "https://models.github.ai/inference"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3

	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
)

// client wraps the HTTP plumbing for the GitHub Models inference API,
// including rate-limit handling and retries. It keeps no state across
// calls: all retry bookkeeping lives on the stack of a single post
// invocation, so concurrent use needs no locking.
type client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	logger     *slog.Logger

	// Injected so tests can observe delays instead of serving them.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// newClient creates a client for the GitHub Models API.
func newClient(token, baseURL string, httpClient *http.Client, timeout time.Duration, maxRetries int, logger *slog.Logger) *client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &client{
		token:      token,
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		maxRetries: maxRetries,
		logger:     logger,
		sleep:      sleepContext,
		now:        time.Now,
	}
}

// buildHeaders assembles the static headers the API requires.
func buildHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization":        "Bearer " + token,
		"Accept":               acceptHeader,
		"Content-Type":         "application/json",
		"X-GitHub-Api-Version": apiVersion,
	}
}

// chatCompletions sends a chat-completion request.
func (c *client) chatCompletions(ctx context.Context, req *chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.post(ctx, c.baseURL+"/chat/completions", buildHeaders(c.token), payload)
	if err != nil {
		return nil, err
	}

	var out chatResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &out, nil
}

// apiResponse is a fully drained HTTP response. Bodies are read before
// any retry decision so connections stay reusable.
type apiResponse struct {
	statusCode int
	header     http.Header
	body       []byte
}

// post issues a rate-limited POST, retrying up to maxRetries times on
// 403/429 responses and transport errors, for at most maxRetries+1
// attempts. The most recent reset time seen in response headers is
// carried across attempts and waited out before re-requesting; all
// other retry state is local to this call. Rate-limit waits use the
// server's retry-after verbatim when present, exponential backoff
// otherwise. Any other non-2xx status fails immediately.
func (c *client) post(ctx context.Context, url string, headers map[string]string, payload []byte) (*apiResponse, error) {
	retryCount := 0
	var resetAt time.Time

	for retryCount <= c.maxRetries {
		if !resetAt.IsZero() {
			if wait := resetAt.Sub(c.now()); wait > 0 {
				c.logger.Debug("waiting for rate limit reset", "wait", wait)
				if err := c.sleep(ctx, wait); err != nil {
					return nil, err
				}
			}
		}

		resp, err := c.doPost(ctx, url, headers, payload)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			if retryCount >= c.maxRetries {
				c.logger.Debug("max retries exceeded after transport error", "error", err)
				return nil, err
			}
			delay := backoffDelay(retryCount)
			c.logger.Debug("transport error, backing off",
				"error", err, "delay", delay, "attempt", retryCount+1)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			retryCount++
			continue
		}

		snap := snapshotRateLimit(resp.header, c.now())
		if snap.hasRemaining {
			c.logger.Debug("rate limit remaining", "requests", snap.remaining)
		}
		if !snap.resetAt.IsZero() {
			resetAt = snap.resetAt
		}

		if resp.statusCode == http.StatusForbidden || resp.statusCode == http.StatusTooManyRequests {
			if retryCount >= c.maxRetries {
				c.logger.Debug("max retries exceeded, returning rate limit error",
					"status", resp.statusCode)
				return nil, newAPIError(resp)
			}
			delay := retryDelay(resp.header, retryCount)
			c.logger.Debug("rate limited, backing off",
				"status", resp.statusCode, "delay", delay, "attempt", retryCount+1)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			retryCount++
			continue
		}

		if resp.statusCode < 200 || resp.statusCode >= 300 {
			return nil, newAPIError(resp)
		}

		return resp, nil
	}

	// Unreachable: every loop path returns or increments retryCount.
	return nil, errMaxRetries
}

// doPost performs one attempt with the per-attempt timeout applied.
func (c *client) doPost(ctx context.Context, url string, headers map[string]string, payload []byte) (*apiResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &apiResponse{statusCode: resp.StatusCode, header: resp.Header, body: body}, nil
}

func newAPIError(resp *apiResponse) *APIError {
	var errResp errorResponse
	if err := json.Unmarshal(resp.body, &errResp); err != nil || errResp.Error.Message == "" {
		return &APIError{StatusCode: resp.statusCode, Message: string(resp.body)}
	}
	return &APIError{
		StatusCode: resp.statusCode,
		Code:       errResp.Error.Code,
		Message:    errResp.Error.Message,
	}
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

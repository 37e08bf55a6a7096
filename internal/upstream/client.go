// Package upstream is the typed HTTP client for the external gym backend.
// One configured http.Client with a fixed request timeout serves every
// repository; entities are exchanged as JSON and authentication is a bearer
// token attached per request. Calls are never retried here: mutations must
// not duplicate side effects such as a double charge or a double check-in.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Resource base paths on the backend, relative to the configured base URL.
const (
	MembersPath  = "/members"
	PlansPath    = "/membership-plans"
	CheckInsPath = "/check-ins"
	PaymentsPath = "/payments"
)

// Client talks to the gym backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL and per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do issues one request and decodes the JSON answer into out (when out is
// non-nil). A non-2xx status becomes an *Error carrying the backend message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	const op = "upstream.do"

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resource := resourceLabel(path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(resource, "transport_error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	requestsTotal.WithLabelValues(resource, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body errorBody
	msg := "the server could not process the request"
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		switch {
		case body.Message != "":
			msg = body.Message
		case body.Error != "":
			msg = body.Error
		}
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}

func resourceLabel(path string) string {
	for i := 1; i < len(path); i++ {
		if path[i] == '/' || path[i] == '?' {
			return path[1:i]
		}
	}
	if len(path) > 1 {
		return path[1:]
	}
	return "root"
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

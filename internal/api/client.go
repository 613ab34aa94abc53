// Package api implements the session-aware HTTP layer shared by every
// repository: one request per logical operation, bearer auth read from the
// session store, and uniform mapping of rejected responses into failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"unitip-client/internal/domain"
	"unitip-client/internal/observability"
)

// Request describes one logical API operation.
type Request struct {
	Method  string
	Path    string // relative to the client's base URL, e.g. "/chats/rooms"
	Query   url.Values
	Payload any // JSON-encoded request body when non-nil

	// Operation is the stable metrics/log label for this call, e.g.
	// "chat.get_all_rooms". Path parameters such as room ids never appear
	// in it.
	Operation string
}

// Response is the outcome of a completed round trip. Body is the decoded
// success body; it is nil when the backend sent a 2xx status with an empty
// or JSON-null body. For non-2xx statuses the raw body is retained for the
// failure mapper instead.
type Response[T any] struct {
	StatusCode int
	Body       *T

	errorBody []byte
}

// Successful reports whether the response carries a 2xx status.
func (r Response[T]) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Failure maps a non-success response into the uniform failure value.
func (r Response[T]) Failure() *domain.Failure {
	return MapFailure(r.StatusCode, r.errorBody)
}

// Client performs HTTP requests against the Unitip backend. The session is
// read fresh on every request, so a login or logout that lands between two
// calls is picked up naturally.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   domain.SessionReader
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, sessions domain.SessionReader) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sessions: sessions,
	}
}

// Do executes one request and decodes a successful body into T. The returned
// error is non-nil only for transport-level problems: request construction,
// network failure, context cancellation, or a success body that is not valid
// JSON for T. Status-level rejection is reported through the Response so the
// caller can run it through the failure mapper.
func Do[T any](ctx context.Context, c *Client, rq Request) (Response[T], error) {
	u := c.baseURL + rq.Path
	if len(rq.Query) > 0 {
		u += "?" + rq.Query.Encode()
	}

	var reqBody io.Reader
	if rq.Payload != nil {
		data, err := json.Marshal(rq.Payload)
		if err != nil {
			return Response[T]{}, fmt.Errorf("failed to encode request payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, rq.Method, u, reqBody)
	if err != nil {
		return Response[T]{}, fmt.Errorf("failed to create request: %w", err)
	}

	// The Authorization header is always present. With no session the token
	// is empty and the backend rejects the request like any other failure.
	token := ""
	if sess, ok := c.sessions.Read(); ok {
		token = sess.Token
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	if rq.Payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observability.APITransportErrorsTotal.WithLabelValues(rq.Operation).Inc()
		return Response[T]{}, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	status := strconv.Itoa(httpResp.StatusCode)
	observability.APIRequestDuration.WithLabelValues(rq.Operation, status).Observe(time.Since(start).Seconds())
	observability.APIRequestsTotal.WithLabelValues(rq.Operation, status).Inc()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		observability.APITransportErrorsTotal.WithLabelValues(rq.Operation).Inc()
		return Response[T]{}, fmt.Errorf("failed to read response body: %w", err)
	}

	resp := Response[T]{StatusCode: httpResp.StatusCode}

	if !resp.Successful() {
		resp.errorBody = data
		return resp, nil
	}

	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		// Success status with no usable body; the repository decides what
		// that means for its operation.
		return resp, nil
	}

	var body T
	if err := json.Unmarshal(data, &body); err != nil {
		return Response[T]{}, fmt.Errorf("failed to decode response body: %w", err)
	}
	resp.Body = &body
	return resp, nil
}

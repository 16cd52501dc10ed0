// Package api implements the HTTP client for the identity service: typed
// actions, bearer-token injection, and normalization of every failure into
// the Error taxonomy consumed by the authentication flow.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gesan-dev/backoffice-cli/internal/logging"
)

const (
	headerRequestID = "X-Request-ID"

	// responses larger than this are truncated before decoding
	maxBodySize = 1 << 20
)

// SessionStore is the slice of session storage the client needs: reading the
// current bearer token and invalidating the session when the server rejects
// it.
type SessionStore interface {
	Token(ctx context.Context) string
	Clear(ctx context.Context)
}

// Client talks to the identity service. It never retries on its own; retry
// policy belongs to the caller.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions SessionStore
	log      logging.Logger
}

// New returns a Client bound to baseURL. The session store supplies the
// bearer token for authenticated calls and absorbs 401 invalidations.
func New(baseURL string, timeout time.Duration, sessions SessionStore, log logging.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		log:      log.With("component", "api"),
	}
}

// do performs one request/response cycle.
//
//   - attaches Authorization: Bearer <token> when the store has a token;
//   - a transport failure (no response at all) becomes KindNetwork, status 0;
//   - an HTTP 401 clears the stored session before the error is returned;
//   - any other non-2xx body is normalized via decodeError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sessions.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return &Error{Kind: KindNetwork, Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Kind: KindNetwork, Status: 0, Message: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The server no longer accepts our token; drop the session so the
		// next interaction starts from the login view.
		c.sessions.Clear(ctx)
		c.log.Info(ctx, "session invalidated by server", "path", path)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := unmarshalBody(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return decodeError(resp.StatusCode, data)
}

func unmarshalBody(data []byte, out any) error {
	if len(data) == 0 {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal(data, out)
}

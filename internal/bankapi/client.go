package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/scabridge/scabridge/internal/session"
)

const defaultTimeout = 30 * time.Second

// Client is the authenticated HTTP transport shared by every flow. It stamps
// the session credentials onto each request and folds rotated credentials
// from each response back into the session, then distinguishes transport
// failures from bank-side business errors before handing payloads upward.
type Client struct {
	base    *url.URL
	httpc   *http.Client
	session *session.State
	logger  *slog.Logger
}

// New builds a client for the bank API rooted at baseURL.
func New(baseURL string, timeout time.Duration, sess *session.State, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bankapi: parse base url: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:    base,
		httpc:   &http.Client{Timeout: timeout},
		session: sess,
		logger:  logger,
	}, nil
}

// Session exposes the session state shared with the flows.
func (c *Client) Session() *session.State {
	return c.session
}

// PostJSON sends body as JSON and decodes the response into out (skipped when
// out is nil). Business-error payloads come back as *BusinessError.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bankapi: encode %s request: %w", path, err)
		}
		payload = bytes.NewReader(raw)
	}
	raw, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return decodeChecked(path, raw, out)
}

// GetJSON fetches path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeChecked(path, raw, out)
}

// GetBytes fetches path and returns the raw response body, used for keypad
// images.
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("bankapi: parse path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("bankapi: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.session.Decorate(req)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bankapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.session.Apply(resp.Header)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bankapi: read %s response: %w", path, err)
	}

	c.logger.Debug("bank call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Path: path, Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// decodeChecked inspects a 200 payload for the bank's embedded error shape
// before decoding it into out. The bank reports business rejections with a
// 200 status and an "error" object, so every decoded response goes through
// this check.
func decodeChecked(path string, raw []byte, out any) error {
	var probe struct {
		Error *struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Context map[string]any `json:"context"`
		} `json:"error"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &probe); err == nil && probe.Error != nil {
			return &BusinessError{
				Code:    probe.Error.Code,
				Message: probe.Error.Message,
				Context: probe.Error.Context,
			}
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bankapi: decode %s response: %w", path, err)
	}
	return nil
}

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"enigmasim/internal/domain"
)

// maxBlobBytes bounds a sealed key sheet in either direction.
const maxBlobBytes = 64 << 10

// StatusError is a non-2xx response from the relay.
type StatusError struct {
	Method string
	URL    string
	Status int
	Text   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("relay %s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Text != "" {
		msg += ": " + e.Text
	}
	return msg
}

// Unwrap maps 404 to domain.ErrConfigurationNotFound.
func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrConfigurationNotFound
	}
	return nil
}

// HTTPClient talks to a keysheetd server.
type HTTPClient struct {
	Base  string
	Token string
	HTTP  *http.Client
}

// NewHTTP returns a client for the relay at base. token is only needed to
// publish.
func NewHTTP(base, token string) *HTTPClient {
	return &HTTPClient{
		Base:  strings.TrimRight(base, "/"),
		Token: token,
		HTTP:  http.DefaultClient,
	}
}

// PublishKeySheet uploads a sealed blob under name.
func (c *HTTPClient) PublishKeySheet(ctx context.Context, name domain.KeySheetName, sealed []byte) error {
	if err := name.Validate(); err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPut, "/keysheets/"+url.PathEscape(string(name)), bytes.NewReader(sealed))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// FetchKeySheet downloads the sealed blob stored under name.
func (c *HTTPClient) FetchKeySheet(ctx context.Context, name domain.KeySheetName) ([]byte, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodGet, "/keysheets/"+url.PathEscape(string(name)), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, maxBlobBytes))
}

// ListKeySheets returns the names the relay holds, sorted.
func (c *HTTPClient) ListKeySheets(ctx context.Context) ([]domain.KeySheetName, error) {
	resp, err := c.do(ctx, http.MethodGet, "/keysheets", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("relay list: %w", err)
	}
	return out.Names, nil
}

// do sends the request and turns non-2xx statuses into *StatusError. On
// success the caller owns the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	u := c.Base + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		var e errorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&e)
		return nil, &StatusError{Method: method, URL: u, Status: resp.StatusCode, Text: e.Error}
	}
	return resp, nil
}

var _ domain.RelayClient = (*HTTPClient)(nil)

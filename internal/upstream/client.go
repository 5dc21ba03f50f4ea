package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tickify/gateway/internal/monitoring"
)

var (
	ErrNotFound     = errors.New("upstream: resource not found")
	ErrUnauthorized = errors.New("upstream: unauthorized")
	ErrUnavailable  = errors.New("upstream: backend unavailable")
)

// Client is a typed HTTP client for the external ticketing backend. The
// backend owns every business rule (inventory, settlement, auth); the
// gateway only forwards the caller's bearer token and shapes responses.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logrus.WithField("component", "upstream"),
	}
}

func (c *Client) get(ctx context.Context, token, endpoint, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, token, endpoint, http.MethodGet, path, query, nil)
}

func (c *Client) send(ctx context.Context, token, endpoint, method, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, token, endpoint, method, path, nil, body)
}

func (c *Client) do(ctx context.Context, token, endpoint, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("upstream: encode request: %w", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		monitoring.ObserveUpstream(endpoint, "network_error", time.Since(start))
		c.log.WithError(err).WithField("endpoint", endpoint).Warn("backend request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		monitoring.ObserveUpstream(endpoint, "read_error", time.Since(start))
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	monitoring.ObserveUpstream(endpoint, fmt.Sprintf("%d", resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("upstream: %s returned status %d", endpoint, resp.StatusCode)
	}

	return raw, nil
}

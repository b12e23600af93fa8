// Package supabase implements the remote gateway contracts against a
// Supabase-style backend: GoTrue for auth, PostgREST for tables, and the
// storage object API for blobs.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// Client holds the connection details shared by the auth, table, and storage
// gateways, plus the current session used for authorized calls.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     *zap.Logger

	mu        sync.RWMutex
	session   *domain.Session
	listeners map[string]func(domain.AuthChangeEvent, *domain.Session)
}

// Config carries the project connection details.
type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// NewClient creates a gateway client for one Supabase project.
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.URL, "/"),
		anonKey:   cfg.AnonKey,
		http:      &http.Client{Timeout: timeout},
		log:       log,
		listeners: make(map[string]func(domain.AuthChangeEvent, *domain.Session)),
	}
}

// apiError is the shape GoTrue/PostgREST/storage use for failures. The
// message is surfaced verbatim to callers.
type apiError struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
	StatusCode       int    `json:"-"`
}

func (e *apiError) Error() string {
	for _, m := range []string{e.Message, e.Msg, e.ErrorDescription, e.ErrorField} {
		if m != "" {
			return m
		}
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// do issues one JSON request. A non-2xx status decodes the backend's error
// body and returns it; out, when non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, headers map[string]string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case []byte:
			reader = bytes.NewReader(b)
		default:
			encoded, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("encode request body: %w", err)
			}
			reader = bytes.NewReader(encoded)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{StatusCode: resp.StatusCode}
		if len(data) > 0 {
			if err := json.Unmarshal(data, apiErr); err != nil {
				apiErr.Message = strings.TrimSpace(string(data))
			}
		}
		c.log.Debug("gateway call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

// bearerToken returns the session's access token, falling back to the anon
// key for unauthenticated calls (public listings browsing).
func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session != nil {
		return c.session.AccessToken
	}
	return c.anonKey
}

// setSession replaces the tracked session and notifies subscribers when the
// transition is a real change.
func (c *Client) setSession(event domain.AuthChangeEvent, s *domain.Session) {
	c.mu.Lock()
	same := sameSession(c.session, s)
	c.session = s
	listeners := make([]func(domain.AuthChangeEvent, *domain.Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	if same {
		return
	}
	for _, fn := range listeners {
		fn(event, s)
	}
}

func sameSession(a, b *domain.Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.AccessToken == b.AccessToken
}

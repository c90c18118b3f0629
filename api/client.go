// Package api is the single request pipeline used to reach the CivicSync
// backend. Every call carries the session's bearer credential when one is
// held, and every failure comes back as an *Error with a displayable message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"civicsync-client/logger"

	"github.com/sirupsen/logrus"
)

const (
	contentTypeJSON = "application/json"
	headerAuth      = "Authorization"
)

// CredentialSource supplies the bearer token for outgoing requests. An
// empty string means the request goes out unauthenticated.
type CredentialSource interface {
	Credential() string
}

// Client talks to the backend REST API.
type Client struct {
	baseURL    string
	creds      CredentialSource
	httpClient *http.Client
	log        *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. http://localhost:8080/api/v1). creds may be nil.
func NewClient(baseURL string, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		creds:      creds,
		httpClient: &http.Client{},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authorize attaches the bearer header when a credential is held. It only
// reads the credential source.
func (c *Client) authorize(req *http.Request) {
	if c.creds == nil {
		return
	}
	if token := c.creds.Credential(); token != "" {
		req.Header.Set(headerAuth, "Bearer "+token)
	}
}

// doJSON sends in (when non-nil) as JSON and decodes the response into out
// (when non-nil). A call with an out target fails on an empty 2xx body.
func (c *Client) doJSON(ctx context.Context, op Op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return transportError(op, fmt.Errorf("marshal request: %w", err))
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, op, method, path, body, contentTypeJSON, out)
}

// do runs one request. There is exactly one attempt per call.
func (c *Client) do(ctx context.Context, op Op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return transportError(op, fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		if contentType == "" {
			contentType = contentTypeJSON
		}
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", contentTypeJSON)
	c.authorize(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"op":     string(op),
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Warn("API request failed")
		return transportError(op, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(op, fmt.Errorf("read response: %w", err))
	}

	fields := logrus.Fields{
		"op":       string(op),
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := statusError(op, resp.StatusCode, raw)
		fields["message"] = apiErr.Message
		c.log.WithFields(fields).Warn("API request rejected")
		return apiErr
	}
	c.log.WithFields(fields).Debug("API request completed")

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		e := transportError(op, errors.New("empty response body"))
		e.StatusCode = resp.StatusCode
		return e
	}
	if err := json.Unmarshal(raw, out); err != nil {
		e := transportError(op, fmt.Errorf("unmarshal response: %w", err))
		e.StatusCode = resp.StatusCode
		return e
	}
	return nil
}

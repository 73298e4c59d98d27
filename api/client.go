// Package api issues HTTP calls against the marketplace backend with
// consistent headers and uniform error normalization. Every failure is
// surfaced as a single-message *Error; a 401 from any endpoint tears the
// session down before the error reaches the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client performs HTTP calls against a configured base URL. Calls are at
// most one network attempt each; the client never retries.
type Client struct {
	baseURL   string
	http      *http.Client
	creds     CredentialSource
	onExpired func()
	log       zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// still wrapped by the auth interceptor.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCredentials sets the session the transport reads bearer tokens from
// and tears down on authorization failures.
func WithCredentials(creds CredentialSource) Option {
	return func(c *Client) {
		c.creds = creds
	}
}

// WithSessionExpired registers a hook invoked after a 401 has cleared the
// session, once per failing response. The console uses it to steer the
// operator back to login.
func WithSessionExpired(fn func()) Option {
	return func(c *Client) {
		c.onExpired = fn
	}
}

// WithLogger sets the client's logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	// Copy so wrapping the transport does not mutate a shared http.Client.
	hc := *c.http
	hc.Transport = &authTransport{
		base:      base,
		creds:     c.creds,
		onExpired: c.onExpired,
		log:       c.log,
	}
	c.http = &hc
	return c
}

// Get issues a GET request. params may be nil. The response body is
// decoded into out unless out is nil.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, "", out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, reader, "application/json", out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, reader, "application/json", out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// UploadFile POSTs file under a multipart "file" field. Unlike the JSON
// methods no Content-Type: application/json header is set; the multipart
// writer supplies the boundary content type.
func (c *Client) UploadFile(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return transportError(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return transportError(err)
	}
	if err := mw.Close(); err != nil {
		return transportError(err)
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return transportError(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		normErr := normalizeError(resp.StatusCode, data)
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg(normErr.Message)
		return normErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return transportError(err)
	}
	return nil
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		body = struct{}{}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, transportError(err)
	}
	return bytes.NewReader(data), nil
}

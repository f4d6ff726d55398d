// Package client is the consumer side of the content API: page renderers and
// admin tools call it to resolve and save sections over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/content"
	"github.com/zaqqye/agency_backend/internal/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	defaults *content.Defaults
	logger   *zap.Logger
}

type Option func(*Client)

// WithToken sets the bearer token sent on writes.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithDefaults(d *content.Defaults) Option {
	return func(c *Client) { c.defaults = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the API rooted at baseURL, e.g.
// "https://api.example.com/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		defaults: content.BuiltinDefaults(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveAll fetches every stored section.
func (c *Client) ResolveAll(ctx context.Context) ([]models.ContentSection, error) {
	var out []models.ContentSection
	if err := c.do(ctx, http.MethodGet, "/cms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve fetches the stored fields of section. A section that was never
// saved resolves to an empty mapping.
func (c *Client) Resolve(ctx context.Context, section string) (content.Fields, error) {
	var doc models.ContentSection
	if err := c.do(ctx, http.MethodGet, "/cms?section="+url.QueryEscape(section), nil, &doc); err != nil {
		return nil, err
	}
	if doc.Fields == nil {
		return content.Fields{}, nil
	}
	return content.Fields(doc.Fields), nil
}

// ResolveOr resolves section and backfills it with the registered defaults.
// It never fails: on any error the defaults alone are returned.
func (c *Client) ResolveOr(ctx context.Context, section string) content.Fields {
	resolved, err := c.Resolve(ctx, section)
	if err != nil {
		c.logger.Warn("content fetch failed, rendering defaults",
			zap.String("section", section),
			zap.Error(err),
		)
		resolved = nil
	}
	return content.Merge(c.defaults.For(section), resolved)
}

// Upsert merges fields into section and returns the resulting document.
func (c *Client) Upsert(ctx context.Context, section string, fields content.Fields) (*models.ContentSection, error) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body[models.KeySection] = section

	var out models.ContentSection
	if err := c.do(ctx, http.MethodPost, "/cms", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveTyped resolves section with defaults and decodes it into T.
func ResolveTyped[T any](ctx context.Context, c *Client, section string) (T, error) {
	return content.Decode[T](c.ResolveOr(ctx, section))
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Package foodapi talks to the food REST service.
package foodapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/foods/internal/model"
)

// RequestIDHeader carries the per-call id the server echoes back and logs.
const RequestIDHeader = "X-Request-Id"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op      string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Code, e.Message)
}

type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: 10 * time.Second},
		log:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// List fetches every food.
func (c *Client) List(ctx context.Context) ([]*model.Food, error) {
	var out []*model.Food
	if err := c.do(ctx, "list", http.MethodGet, "/foods", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*model.Food{}
	}
	return out, nil
}

// Create posts food and returns the stored copy with its new id.
func (c *Client) Create(ctx context.Context, food *model.Food) (*model.Food, error) {
	var out model.Food
	if err := c.do(ctx, "create", http.MethodPost, "/foods", food, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the food with id.
func (c *Client) Update(ctx context.Context, id int64, food *model.Food) (*model.Food, error) {
	var out model.Food
	if err := c.do(ctx, "update", http.MethodPut, foodPath(id), food, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, foodPath(id), nil, nil)
}

func foodPath(id int64) string { return "/foods/" + strconv.FormatInt(id, 10) }

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: json marshal: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	c.log.Debug("food api call", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "request_id", reqID, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: json decode: %w", op, err)
	}
	return nil
}

// errorMessage pulls "error" out of a JSON error body, falling back to the
// raw text.
func errorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil || len(b) == 0 {
		return ""
	}
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(b))
}

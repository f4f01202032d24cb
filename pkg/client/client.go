// Package client is a Go SDK for the creditos API. Session state and
// fallback snapshots live in an injected Store.
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

	"github.com/google/uuid"
)

const (
	HeaderTenantID  = "X-Tenant-Id"
	HeaderRequestID = "X-Request-Id"
	HeaderRequestAt = "X-Request-At"
	HeaderActor     = "X-User-Id"
)

type Client struct {
	baseURL string
	http    *http.Client
	store   Store
	actor   string
	now     func() time.Time
	newID   func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithActor sets the user recorded in the credit history for transitions.
func WithActor(actor string) Option { return func(c *Client) { c.actor = actor } }

func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

func New(baseURL string, store Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTenant scopes every later call to tenantID.
func (c *Client) SetTenant(ctx context.Context, tenantID string) error {
	return c.store.Set(ctx, KeyTenantID, tenantID)
}

func (c *Client) tenant(ctx context.Context) (string, error) {
	v, _, err := c.store.Get(ctx, KeyTenantID)
	return v, err
}

// do sends one request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	op := method + " " + path
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tenantID, err := c.tenant(ctx)
	if err != nil {
		return fmt.Errorf("%s: read tenant: %w", op, err)
	}
	if tenantID != "" {
		req.Header.Set(HeaderTenantID, tenantID)
	}
	if c.actor != "" {
		req.Header.Set(HeaderActor, c.actor)
	}
	if method == http.MethodPost {
		req.Header.Set(HeaderRequestID, c.newID())
		req.Header.Set(HeaderRequestAt, c.now().UTC().Format(time.RFC3339Nano))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func pageQuery(q url.Values, page, pageSize int) {
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
}

func setIf(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

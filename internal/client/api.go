package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when the item addressed by a mutation no longer
// exists, typically because someone else deleted it first.
var ErrNotFound = errors.New("item not found")

// Item is the wire model of one shopping-list entry as the API returns it.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Checked  bool   `json:"checked"`
}

// ListAPI is the store contract from the client's side. Every operation is
// a single attempt; no retries.
type ListAPI interface {
	List(ctx context.Context, token string) ([]Item, error)
	Add(ctx context.Context, token, name string, quantity int) (Item, error)
	Update(ctx context.Context, id, name string, quantity int) (Item, error)
	SetChecked(ctx context.Context, id string, checked bool) (Item, error)
	Remove(ctx context.Context, id string) error
	ClearChecked(ctx context.Context, token string) (int64, error)
}

// Client talks to the lista API over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// BaseURL returns the API address the client was built with.
func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

func (c *Client) List(ctx context.Context, token string) ([]Item, error) {
	var items []Item
	err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath("api", "lists", token, "items"), nil, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Add(ctx context.Context, token, name string, quantity int) (Item, error) {
	var it Item
	body := map[string]any{"name": name, "quantity": quantity}
	err := c.do(ctx, http.MethodPost, c.baseURL.JoinPath("api", "lists", token, "items"), body, &it)
	return it, err
}

func (c *Client) Update(ctx context.Context, id, name string, quantity int) (Item, error) {
	var it Item
	body := map[string]any{"name": name, "quantity": quantity}
	err := c.do(ctx, http.MethodPut, c.baseURL.JoinPath("api", "items", id), body, &it)
	return it, err
}

func (c *Client) SetChecked(ctx context.Context, id string, checked bool) (Item, error) {
	var it Item
	body := map[string]any{"checked": checked}
	err := c.do(ctx, http.MethodPut, c.baseURL.JoinPath("api", "items", id, "checked"), body, &it)
	return it, err
}

func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL.JoinPath("api", "items", id), nil, nil)
}

func (c *Client) ClearChecked(ctx context.Context, token string) (int64, error) {
	var resp struct {
		Removed int64 `json:"removed"`
	}
	err := c.do(ctx, http.MethodDelete, c.baseURL.JoinPath("api", "lists", token, "checked"), nil, &resp)
	return resp.Removed, err
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, u.Path, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

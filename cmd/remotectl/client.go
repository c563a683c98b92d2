package main

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

	"github.com/urmzd/plasma-remote/pkg/api/types"
)

// client is a thin JSON client for the /api/v1 routes.
type client struct {
	base string
	http *http.Client
}

func newClient(base string) *client {
	return &client{
		base: strings.TrimRight(base, "/") + "/api/v1",
		http: &http.Client{Timeout: 20 * time.Second},
	}
}

// apiError is a non-2xx response decoded from types.ErrorResponse.
type apiError struct {
	Status int
	Body   types.ErrorResponse
}

func (e *apiError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Body.Error, e.Body.Message, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Body.Error, e.Status)
}

func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		e := &apiError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, &e.Body); jsonErr != nil || e.Body.Error == "" {
			e.Body.Error = http.StatusText(resp.StatusCode)
		}
		return e
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *client) State(ctx context.Context) (*types.StateResponse, error) {
	var out types.StateResponse
	if err := c.do(ctx, http.MethodGet, "/remote/state", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Press(ctx context.Context, key, protocol string) (*types.StateResponse, error) {
	var q url.Values
	if protocol != "" {
		q = url.Values{"protocol": {protocol}}
	}
	var out types.StateResponse
	if err := c.do(ctx, http.MethodPost, "/remote/keys/"+url.PathEscape(key), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Zap(ctx context.Context, number int, name string) (*types.ZapResponse, error) {
	var out types.ZapResponse
	body := types.ZapRequest{Number: number, Name: name}
	if err := c.do(ctx, http.MethodPost, "/remote/zap", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Shortcuts(ctx context.Context) (*types.ListShortcutsResponse, error) {
	var out types.ListShortcutsResponse
	if err := c.do(ctx, http.MethodGet, "/shortcuts", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) AssignShortcut(ctx context.Context, key string, number int, name string) (*types.ShortcutResponse, error) {
	var out types.ShortcutResponse
	body := types.AssignShortcutRequest{Number: number, Name: name}
	if err := c.do(ctx, http.MethodPut, "/shortcuts/"+url.PathEscape(key), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) ClearShortcut(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "/shortcuts/"+url.PathEscape(key), nil, nil, nil)
}

func (c *client) Ask(ctx context.Context, text string) (*types.CommandResponse, error) {
	var out types.CommandResponse
	if err := c.do(ctx, http.MethodPost, "/assistant/commands", nil, types.CommandRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

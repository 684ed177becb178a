// Package bridgeclient talks to a running relay over HTTP.
package bridgeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agent-bridge/internal/relay"
)

// APIError is a non-2xx answer from the relay.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bridge returned %d: %s", e.StatusCode, e.Message)
}

type SendResult struct {
	Status    string `json:"status"`
	MessageID int64  `json:"message_id"`
	Timestamp string `json:"timestamp"`
}

type Inbox struct {
	Agent    relay.Agent     `json:"agent"`
	Messages []relay.Message `json:"messages"`
	Count    int             `json:"count"`
}

type ClearResult struct {
	Status       string `json:"status"`
	ClearedCount int    `json:"cleared_count"`
}

type Status struct {
	Status        string                            `json:"status"`
	Queues        map[relay.Agent]relay.QueueStatus `json:"queues"`
	TotalMessages int                               `json:"total_messages"`
	Timestamp     string                            `json:"timestamp"`
}

type History struct {
	Messages []relay.Message `json:"messages"`
	Count    int             `json:"count"`
}

type Info struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Send(ctx context.Context, from, to relay.Agent, content string) (SendResult, error) {
	body := map[string]string{"from": string(from), "to": string(to), "content": content}
	var out SendResult
	err := c.do(ctx, http.MethodPost, "/message", nil, body, &out)
	return out, err
}

func (c *Client) Messages(ctx context.Context, agent relay.Agent, clear bool) (Inbox, error) {
	var q url.Values
	if clear {
		q = url.Values{"clear": {"true"}}
	}
	var out Inbox
	err := c.do(ctx, http.MethodGet, "/messages/"+url.PathEscape(string(agent)), q, nil, &out)
	return out, err
}

func (c *Client) Clear(ctx context.Context, agent relay.Agent) (ClearResult, error) {
	var out ClearResult
	err := c.do(ctx, http.MethodPost, "/clear/"+url.PathEscape(string(agent)), nil, nil, &out)
	return out, err
}

func (c *Client) Status(ctx context.Context) (Status, error) {
	var out Status
	err := c.do(ctx, http.MethodGet, "/status", nil, nil, &out)
	return out, err
}

// History fetches the newest limit messages; limit <= 0 leaves the server default.
func (c *Client) History(ctx context.Context, limit int) (History, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var out History
	err := c.do(ctx, http.MethodGet, "/history", q, nil, &out)
	return out, err
}

func (c *Client) Info(ctx context.Context) (Info, error) {
	var out Info
	err := c.do(ctx, http.MethodGet, "/", nil, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

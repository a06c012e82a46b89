package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"player-list/pkg/httpmw"
	apicore "player-list/web/core"
)

type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
}

func NewClient(address string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("parse tasks address %q: %w", address, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("tasks address %q: want http(s)://host[:port]", address)
	}

	return &Client{
		log:     log,
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(u.String(), "/"),
	}, nil
}

func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// ---- Pinger

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// ---- Tasks

func (c *Client) ListTasks(ctx context.Context) ([]apicore.Task, error) {
	var out struct {
		Tasks []apicore.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	if out.Tasks == nil {
		out.Tasks = []apicore.Task{}
	}
	return out.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, label string) (apicore.Task, error) {
	var out apicore.Task
	in := map[string]string{"task": label}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", in, &out); err != nil {
		return apicore.Task{}, err
	}
	return out, nil
}

func (c *Client) ToggleTask(ctx context.Context, id string) (apicore.Task, error) {
	var out apicore.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), nil, &out); err != nil {
		return apicore.Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

var _ apicore.Tasks = (*Client)(nil)

// ---- helpers

func taskPath(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := httpmw.RequestIDFrom(ctx); id != "" {
		req.Header.Set(httpmw.RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("tasks service request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", apicore.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapHTTPErr(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func mapHTTPErr(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)

	msg := payload.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", apicore.ErrBadArguments, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", apicore.ErrNotFound, msg)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", apicore.ErrUnavailable, msg)
	default:
		return fmt.Errorf("tasks service: %d %s", resp.StatusCode, msg)
	}
}

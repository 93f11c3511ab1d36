package fastapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ariatravel/app/config"
	"ariatravel/app/model"

	"github.com/bytedance/sonic"
	"github.com/samber/do"
)

const (
	maxHistory   = 10
	maxBodyBytes = 1 << 20
)

type Client struct {
	baseURL string
	http    *http.Client
}

type chatRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []model.Message   `json:"conversation_history"`
	UserPreferences     model.Preferences `json:"user_preferences"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

type destinationsResponse struct {
	Destinations []model.Destination `json:"destinations"`
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Backend.URL, &http.Client{Timeout: cfg.Backend.Timeout}), nil
}

func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Query asks the backend for a reply. Any failure is reported as absent.
func (c *Client) Query(ctx context.Context, message string, history []model.Message, prefs model.Preferences) (string, bool) {
	if !c.Enabled() {
		return "", false
	}

	payload := chatRequest{
		Message:             message,
		ConversationHistory: model.TrimTail(history, maxHistory),
		UserPreferences:     prefs,
	}
	if payload.ConversationHistory == nil {
		payload.ConversationHistory = []model.Message{}
	}

	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", payload, &resp); err != nil {
		slog.Warn("Backend unavailable", "error", err)
		return "", false
	}

	if !resp.Success || strings.TrimSpace(resp.Response) == "" {
		slog.Warn("Backend returned no reply", "success", resp.Success)
		return "", false
	}

	return resp.Response, true
}

func (c *Client) Destinations(ctx context.Context, query model.DestinationQuery) ([]model.Destination, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("backend is not configured")
	}

	params := url.Values{}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Featured != nil {
		params.Set("featured", strconv.FormatBool(*query.Featured))
	}
	if query.Category != "" {
		params.Set("category", query.Category)
	}

	path := "/api/destinations"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp destinationsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Destinations, nil
}

func (c *Client) Health(ctx context.Context) error {
	if !c.Enabled() {
		return fmt.Errorf("backend is not configured")
	}

	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err = sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

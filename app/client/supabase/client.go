package supabase

import (
	"context"
	"fmt"
	"io"
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
	destinationsTable = "destinations"
	maxBodyBytes      = 4 << 20
)

// Client reads the destinations table through the PostgREST endpoint.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.Supabase.URL, cfg.Supabase.Key, &http.Client{Timeout: cfg.Supabase.Timeout}), nil
}

func New(baseURL, key string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		http:    httpClient,
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.key != ""
}

func (c *Client) Destinations(ctx context.Context, query model.DestinationQuery) ([]model.Destination, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("supabase is not configured")
	}

	params := url.Values{}
	params.Set("select", "*")
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Featured != nil {
		params.Set("featured", "eq."+strconv.FormatBool(*query.Featured))
	}
	if query.Category != "" {
		params.Set("category", "eq."+query.Category)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, destinationsTable, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", destinationsTable, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("supabase: response exceeds %d bytes", maxBodyBytes)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supabase: status %d: %s", res.StatusCode, body)
	}

	var destinations []model.Destination
	if err = sonic.Unmarshal(body, &destinations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal destinations: %w", err)
	}

	return destinations, nil
}

package webflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://api.webflow.com"
	defaultPageSize = 100
	maxPageSize     = 100
	apiVersion      = "2.0"
)

// ErrCollectionNotFound is returned when no collection matches the display name
var ErrCollectionNotFound = errors.New("webflow: collection not found")

// NewClient instantiates a Webflow API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("webflow: api token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
		pageSize:   pageSize,
	}, nil
}

// ListCollections returns every collection of a site
func (c *Client) ListCollections(ctx context.Context, siteID string) ([]Collection, error) {
	if siteID == "" {
		return nil, fmt.Errorf("webflow: site id is required")
	}

	var payload collectionsResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "v2", "sites", siteID, "collections"), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Collections, nil
}

// FindCollectionID resolves a collection id by its display name
func (c *Client) FindCollectionID(ctx context.Context, siteID, displayName string) (string, error) {
	collections, err := c.ListCollections(ctx, siteID)
	if err != nil {
		return "", err
	}

	for _, col := range collections {
		if col.DisplayName == displayName {
			return col.ID, nil
		}
	}

	return "", fmt.Errorf("%w: %q on site %s", ErrCollectionNotFound, displayName, siteID)
}

// ListItems returns all items of a collection, following pagination
func (c *Client) ListItems(ctx context.Context, collectionID string) ([]Item, error) {
	if collectionID == "" {
		return nil, fmt.Errorf("webflow: collection id is required")
	}

	var items []Item
	offset := 0
	for {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(c.pageSize))

		var page itemsResponse
		if err := c.do(ctx, http.MethodGet, c.endpoint(q, "v2", "collections", collectionID, "items"), nil, &page); err != nil {
			return nil, err
		}

		items = append(items, page.Items...)
		offset += len(page.Items)

		if len(page.Items) == 0 || offset >= page.Pagination.Total {
			break
		}
	}

	return items, nil
}

// CreateItem adds a single live-able (non-draft) item to a collection
func (c *Client) CreateItem(ctx context.Context, collectionID string, fieldData map[string]any) (Item, error) {
	if collectionID == "" {
		return Item{}, fmt.Errorf("webflow: collection id is required")
	}

	body := Item{
		IsArchived: false,
		IsDraft:    false,
		FieldData:  fieldData,
	}

	var created Item
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "v2", "collections", collectionID, "items"), body, &created); err != nil {
		return Item{}, err
	}
	return created, nil
}

// Publish pushes the given collections live on the given domains
func (c *Client) Publish(ctx context.Context, siteID string, req PublishRequest) error {
	if siteID == "" {
		return fmt.Errorf("webflow: site id is required")
	}
	if req.Collections == nil {
		req.Collections = []string{}
	}
	if req.Domains == nil {
		req.Domains = []string{}
	}

	return c.do(ctx, http.MethodPost, c.endpoint(nil, "v2", "sites", siteID, "publish"), req, nil)
}

func (c *Client) endpoint(query url.Values, segments ...string) string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL + "/" + path.Join(segments...)
	}
	u.Path = path.Join(append([]string{"/", u.Path}, segments...)...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	if c == nil {
		return fmt.Errorf("webflow: client is nil")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("webflow: rate limiter: %w", err)
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("webflow: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("webflow: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("accept-version", apiVersion)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webflow: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("webflow: decode response: %w", err)
	}
	return nil
}

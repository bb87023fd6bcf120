package webflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := Config{Token: "secret", BaseURL: srv.URL, HTTPClient: srv.Client()}
	for _, opt := range opts {
		opt(&cfg)
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestFindCollectionID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/sites/site-1/collections", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2.0", r.Header.Get("accept-version"))
		_, _ = w.Write([]byte(`{"collections":[{"id":"c-blog","displayName":"Blog"},{"id":"c-jobs","displayName":"Jobs"}]}`))
	})

	id, err := c.FindCollectionID(context.Background(), "site-1", "Jobs")
	require.NoError(t, err)
	assert.Equal(t, "c-jobs", id)
}

func TestFindCollectionIDNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"collections":[{"id":"c-blog","displayName":"Blog"}]}`))
	})

	_, err := c.FindCollectionID(context.Background(), "site-1", "Jobs")
	require.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestListItemsFollowsPagination(t *testing.T) {
	const total = 5
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v2/collections/c-jobs/items", r.URL.Path)
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		assert.Equal(t, 2, limit)

		items := []Item{}
		for i := offset; i < offset+limit && i < total; i++ {
			items = append(items, Item{ID: fmt.Sprint(i), FieldData: map[string]any{"reference-id": fmt.Sprintf("ref-%d", i)}})
		}
		_ = json.NewEncoder(w).Encode(itemsResponse{
			Items:      items,
			Pagination: pagination{Limit: limit, Offset: offset, Total: total},
		})
	}, func(cfg *Config) { cfg.PageSize = 2 })

	items, err := c.ListItems(context.Background(), "c-jobs")
	require.NoError(t, err)
	assert.Len(t, items, total)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "ref-4", items[4].FieldData["reference-id"])
}

func TestListItemsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[],"pagination":{"limit":100,"offset":0,"total":0}}`))
	})

	items, err := c.ListItems(context.Background(), "c-jobs")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateItemSendsFieldData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body Item
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.False(t, body.IsDraft)
		assert.Equal(t, "ref-1", body.FieldData["reference-id"])

		body.ID = "item-1"
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(body)
	})

	item, err := c.CreateItem(context.Background(), "c-jobs", map[string]any{"reference-id": "ref-1"})
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
}

func TestCreateItemAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Validation Error"}`))
	})

	_, err := c.CreateItem(context.Background(), "c-jobs", map[string]any{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Validation Error")
}

func TestPublish(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/sites/site-1/publish", r.URL.Path)

		var body PublishRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"c-jobs"}, body.Collections)
		assert.Equal(t, []string{}, body.Domains)
		_, _ = w.Write([]byte(`{"queued":true}`))
	})

	err := c.Publish(context.Background(), "site-1", PublishRequest{Collections: []string{"c-jobs"}})
	require.NoError(t, err)
}

func TestRequestsHonourContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, func(cfg *Config) { cfg.RequestsPerSecond = 0.001 })

	// first call consumes the single burst token
	_, err := c.ListCollections(context.Background(), "site-1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ListCollections(ctx, "site-1")
	require.Error(t, err)
}

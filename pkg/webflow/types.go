package webflow

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config defines Webflow Data API client settings
type Config struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
	// RequestsPerSecond paces outbound calls; zero or negative disables pacing
	RequestsPerSecond float64
	Burst             int
	PageSize          int
}

// Client talks to the Webflow v2 Data API
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	pageSize   int
}

// Collection is an entry of a site's collection list
type Collection struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	SingularName string `json:"singularName,omitempty"`
	Slug         string `json:"slug,omitempty"`
}

// Item is a CMS collection item
type Item struct {
	ID            string         `json:"id,omitempty"`
	CMSLocaleID   string         `json:"cmsLocaleId,omitempty"`
	LastPublished *time.Time     `json:"lastPublished,omitempty"`
	LastUpdated   *time.Time     `json:"lastUpdated,omitempty"`
	CreatedOn     *time.Time     `json:"createdOn,omitempty"`
	IsArchived    bool           `json:"isArchived"`
	IsDraft       bool           `json:"isDraft"`
	FieldData     map[string]any `json:"fieldData"`
}

// PublishRequest names the collections and domains to push live
type PublishRequest struct {
	Collections []string `json:"collections"`
	Domains     []string `json:"domains"`
}

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("webflow: API error (%d): %s", e.StatusCode, e.Body)
}

type collectionsResponse struct {
	Collections []Collection `json:"collections"`
}

type pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type itemsResponse struct {
	Items      []Item     `json:"items"`
	Pagination pagination `json:"pagination"`
}

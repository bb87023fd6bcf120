package cms

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// JobsCollectionName is the display name of the destination collection.
const JobsCollectionName = "Jobs"

type collectionFinder interface {
	FindCollectionID(ctx context.Context, siteID, displayName string) (string, error)
}

// CollectionResolver memoizes the destination collection id. A configured id
// short-circuits the lookup; otherwise the first successful lookup is cached
// for the lifetime of the resolver and concurrent callers share one request.
type CollectionResolver struct {
	finder collectionFinder
	siteID string
	name   string

	mu    sync.RWMutex
	id    string
	group singleflight.Group
}

// NewCollectionResolver builds a resolver seeded with configuredID (may be empty).
func NewCollectionResolver(finder collectionFinder, siteID, name, configuredID string) (*CollectionResolver, error) {
	if finder == nil {
		return nil, fmt.Errorf("cms: collection finder is required")
	}
	if name == "" {
		name = JobsCollectionName
	}
	return &CollectionResolver{
		finder: finder,
		siteID: siteID,
		name:   name,
		id:     configuredID,
	}, nil
}

// Resolve returns the collection id, looking it up once if needed.
func (r *CollectionResolver) Resolve(ctx context.Context) (string, error) {
	if id := r.Cached(); id != "" {
		return id, nil
	}

	v, err, _ := r.group.Do(r.siteID, func() (any, error) {
		if id := r.Cached(); id != "" {
			return id, nil
		}
		id, err := r.finder.FindCollectionID(ctx, r.siteID, r.name)
		if err != nil {
			return "", err
		}
		r.mu.Lock()
		r.id = id
		r.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Cached returns the memoized id or "" when not yet resolved.
func (r *CollectionResolver) Cached() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id
}

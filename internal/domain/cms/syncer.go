package cms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/pkg/logging"
	"github.com/honeycarbs/jobsync/pkg/webflow"
)

// ErrSyncInProgress is returned when another run holds the sync lock.
var ErrSyncInProgress = errors.New("cms: sync already in progress")

// Remote is the subset of the Webflow client the syncer drives.
type Remote interface {
	FindCollectionID(ctx context.Context, siteID, displayName string) (string, error)
	ListItems(ctx context.Context, collectionID string) ([]webflow.Item, error)
	CreateItem(ctx context.Context, collectionID string, fieldData map[string]any) (webflow.Item, error)
	Publish(ctx context.Context, siteID string, req webflow.PublishRequest) error
}

// Store reads every job record from the document store.
type Store interface {
	ListJobs(ctx context.Context) ([]domain.Job, error)
}

// Locker excludes overlapping runs across processes.
type Locker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Settings carries the destination site configuration.
type Settings struct {
	SiteID    string
	DomainIDs []string
	// FailClosed aborts the run when existing items cannot be listed
	// instead of treating the collection as empty.
	FailClosed bool
}

// Syncer mirrors stored job records into the destination collection.
type Syncer struct {
	remote   Remote
	store    Store
	resolver *CollectionResolver
	settings Settings
	locker   Locker
	logger   *logging.Logger
	clock    func() time.Time

	running sync.Mutex
}

// SyncerOption configures optional Syncer collaborators.
type SyncerOption func(*Syncer)

// WithLocker guards runs with a cross-process lock.
func WithLocker(l Locker) SyncerOption {
	return func(s *Syncer) {
		s.locker = l
	}
}

// WithSyncClock sets a custom clock.
func WithSyncClock(clock func() time.Time) SyncerOption {
	return func(s *Syncer) {
		s.clock = clock
	}
}

// NewSyncer wires a Syncer from its collaborators.
func NewSyncer(
	remote Remote,
	store Store,
	resolver *CollectionResolver,
	settings Settings,
	logger *logging.Logger,
	opts ...SyncerOption,
) (*Syncer, error) {
	if remote == nil {
		return nil, fmt.Errorf("cms.Syncer: remote is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cms.Syncer: store is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("cms.Syncer: collection resolver is required")
	}
	if settings.SiteID == "" {
		return nil, fmt.Errorf("cms.Syncer: site id is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	s := &Syncer{
		remote:   remote,
		store:    store,
		resolver: resolver,
		settings: settings,
		logger:   logger.With("component", "webflow_sync"),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SyncAll creates a remote item for every stored job whose reference id is
// not yet in the collection, then publishes. Jobs are handled one at a time;
// a failed create is recorded and the batch continues. Publish runs after the
// batch whatever the item outcomes, and its failure is only recorded.
func (s *Syncer) SyncAll(ctx context.Context) (domain.SyncResult, error) {
	res := domain.SyncResult{StartedAt: s.clock(), Outcomes: []domain.ItemOutcome{}}

	if !s.running.TryLock() {
		return res, ErrSyncInProgress
	}
	defer s.running.Unlock()

	if s.locker != nil {
		ok, err := s.locker.TryLock()
		if err != nil {
			return res, fmt.Errorf("cms: acquire run lock: %w", err)
		}
		if !ok {
			return res, ErrSyncInProgress
		}
		defer func() {
			if err := s.locker.Unlock(); err != nil {
				s.logger.Warn("failed to release run lock", "err", err)
			}
		}()
	}

	collectionID, err := s.resolver.Resolve(ctx)
	if err != nil {
		s.logger.Error("failed to resolve destination collection", "site_id", s.settings.SiteID, "err", err)
		return res, fmt.Errorf("cms: resolve collection: %w", err)
	}
	res.CollectionID = collectionID
	s.logger.Info("destination collection resolved", "collection_id", collectionID)

	existing, err := s.existingReferences(ctx, collectionID)
	if err != nil {
		if s.settings.FailClosed {
			s.logger.Error("failed to list existing items, aborting", "collection_id", collectionID, "err", err)
			return res, fmt.Errorf("cms: list existing items: %w", err)
		}
		s.logger.Warn("failed to list existing items, treating collection as empty", "collection_id", collectionID, "err", err)
		res.ExistingError = err.Error()
		existing = make(map[string]struct{})
	}
	res.Existing = len(existing)

	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return res, fmt.Errorf("cms: load jobs: %w", err)
	}
	s.logger.Info("jobs loaded from store", "count", len(jobs), "existing", len(existing))

	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Record(s.syncOne(ctx, collectionID, j, existing))
	}

	s.publish(ctx, collectionID, &res)

	res.FinishedAt = s.clock()
	s.logger.Info("webflow sync finished",
		"created", res.Created,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"published", res.Published,
		"duration", res.FinishedAt.Sub(res.StartedAt),
	)
	return res, nil
}

func (s *Syncer) syncOne(ctx context.Context, collectionID string, j domain.Job, existing map[string]struct{}) domain.ItemOutcome {
	out := domain.ItemOutcome{ReferenceID: j.OfferID, Title: j.Title, State: domain.ItemPending}

	if j.OfferID == "" {
		out.State = domain.ItemFailed
		out.Error = "missing reference id"
		s.logger.Warn("job has no reference id, not mirrored", "job_id", j.ID, "title", j.Title)
		return out
	}

	if _, ok := existing[j.OfferID]; ok {
		out.State = domain.ItemSkippedDuplicate
		s.logger.Debug("job already mirrored", "reference_id", j.OfferID, "title", j.Title)
		return out
	}

	item, err := s.remote.CreateItem(ctx, collectionID, FieldData(j))
	if err != nil {
		out.State = domain.ItemFailed
		out.Error = err.Error()
		s.logger.Error("failed to create item", "reference_id", j.OfferID, "title", j.Title, "err", err)
		return out
	}

	existing[j.OfferID] = struct{}{}
	out.State = domain.ItemCreated
	out.RemoteID = item.ID
	s.logger.Info("item created", "reference_id", j.OfferID, "title", j.Title, "item_id", item.ID)
	return out
}

func (s *Syncer) existingReferences(ctx context.Context, collectionID string) (map[string]struct{}, error) {
	items, err := s.remote.ListItems(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]struct{}, len(items))
	for _, item := range items {
		ref, ok := item.FieldData[FieldReferenceID].(string)
		if !ok || ref == "" {
			continue
		}
		refs[ref] = struct{}{}
	}
	return refs, nil
}

func (s *Syncer) publish(ctx context.Context, collectionID string, res *domain.SyncResult) {
	err := s.remote.Publish(ctx, s.settings.SiteID, webflow.PublishRequest{
		Collections: []string{collectionID},
		Domains:     s.settings.DomainIDs,
	})
	if err != nil {
		res.PublishError = err.Error()
		s.logger.Error("failed to publish site", "site_id", s.settings.SiteID, "err", err)
		return
	}
	res.Published = true
	s.logger.Info("site published", "site_id", s.settings.SiteID, "domains", s.settings.DomainIDs)
}

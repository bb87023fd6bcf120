package job

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

type Service interface {
	// Fetch pulls jobs from every provider and upserts them into the store
	Fetch(ctx context.Context, query string, filters domain.JobSearchFilters) (domain.FetchResult, error)
	// List returns every stored job record
	List(ctx context.Context) ([]domain.Job, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	providers []Provider
	repo      Repository
	clock     func() time.Time
	logger    *logging.Logger
}

// WithProviders sets job providers
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithRepository sets the repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for provider failures
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("job.Service: repository is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.Nop()
	}

	return &service{
		providers: cfg.providers,
		repo:      cfg.repo,
		clock:     cfg.clock,
		logger:    cfg.logger,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible).
// An empty provider list is allowed: List still works, Fetch stores nothing.
func NewServiceWithDeps(repo Repository, providers []Provider, logger *logging.Logger) (Service, error) {
	return NewService(
		WithRepository(repo),
		WithProviders(providers...),
		WithLogger(logger),
	)
}

type service struct {
	providers []Provider
	repo      Repository
	clock     func() time.Time
	logger    *logging.Logger
}

// Fetch queries providers and stores results
func (s *service) Fetch(
	ctx context.Context,
	query string,
	filters domain.JobSearchFilters,
) (domain.FetchResult, error) {
	now := s.clock()

	if query == "" {
		return domain.FetchResult{}, fmt.Errorf("query is required")
	}
	if len(s.providers) == 0 {
		return domain.FetchResult{}, fmt.Errorf("job.Service: no upstream provider configured")
	}

	type key struct {
		source  string
		offerID string
	}
	dedup := make(map[key]domain.Job)
	sourceCount := 0

	for _, p := range s.providers {
		jobs, err := p.Search(ctx, query, filters)
		if err != nil {
			s.logger.Warn("upstream provider failed", "provider", p.Name(), "err", err)
			continue
		}
		if len(jobs) > 0 {
			sourceCount++
		}

		for _, j := range jobs {
			if j.Source == "" || j.OfferID == "" {
				continue
			}
			k := key{source: j.Source, offerID: j.OfferID}

			if j.ID == uuid.Nil {
				j.ID = uuid.New()
			}
			if j.FetchedAt.IsZero() {
				j.FetchedAt = now
			}

			dedup[k] = j
		}
	}

	allJobs := make([]domain.Job, 0, len(dedup))
	for _, j := range dedup {
		allJobs = append(allJobs, j)
	}
	sort.Slice(allJobs, func(a, b int) bool {
		return allJobs[a].OfferID < allJobs[b].OfferID
	})

	if len(allJobs) > 0 {
		if err := s.repo.UpsertJobs(ctx, allJobs); err != nil {
			return domain.FetchResult{}, fmt.Errorf("store jobs: %w", err)
		}
	}

	summaries := make([]domain.JobSummary, 0, len(allJobs))
	for _, j := range allJobs {
		summaries = append(summaries, domain.Summarize(j))
	}

	return domain.FetchResult{
		Jobs:        summaries,
		Stored:      len(allJobs),
		FetchedAt:   now,
		SourceCount: sourceCount,
	}, nil
}

// List returns all stored job records
func (s *service) List(ctx context.Context) ([]domain.Job, error) {
	return s.repo.ListJobs(ctx)
}

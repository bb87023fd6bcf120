package job

import (
	"context"

	"github.com/honeycarbs/jobsync/internal/domain"
)

// Provider represents an upstream job data source (Adzuna, France Travail, mock API, etc.)
type Provider interface {
	// e.g. "adzuna"
	Name() string

	// Search returns normalized job records for a query
	Search(ctx context.Context, query string, filters domain.JobSearchFilters) ([]domain.Job, error)
}

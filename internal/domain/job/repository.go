package job

import (
	"context"

	"github.com/honeycarbs/jobsync/internal/domain"
)

// Repository persists and loads job records from the document store
type Repository interface {
	// UpsertJobs creates or updates jobs keyed by Source + OfferID
	UpsertJobs(ctx context.Context, jobs []domain.Job) error

	// ListJobs returns every stored job record, unfiltered
	ListJobs(ctx context.Context) ([]domain.Job, error)
}

package repository

import (
	"context"

	"github.com/honeycarbs/jobsync/internal/domain"
)

// JobRepository defines the interface for job storage operations
type JobRepository interface {
	UpsertJobs(ctx context.Context, jobs []domain.Job) error
	ListJobs(ctx context.Context) ([]domain.Job, error)
	Close(ctx context.Context) error
}

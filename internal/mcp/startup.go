package mcp

import (
	"context"
	"errors"

	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/domain/cms"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

// RunStartup refreshes the store from upstream and mirrors it to Webflow.
// Failures are logged and never stop the service from starting.
func RunStartup(ctx context.Context, cfg config.Config, res *Resources, logger *logging.Logger) {
	if cfg.AdzunaEnabled() {
		fetched, err := res.JobService.Fetch(ctx, cfg.Adzuna.Query, domain.JobSearchFilters{
			Location: cfg.Adzuna.Location,
		})
		if err != nil {
			logger.Error("startup fetch failed", "query", cfg.Adzuna.Query, "err", err)
		} else {
			logger.Info("startup fetch completed", "stored", fetched.Stored, "sources", fetched.SourceCount)
		}
	}

	result, err := res.Syncer.SyncAll(ctx)
	switch {
	case errors.Is(err, cms.ErrSyncInProgress):
		logger.Info("startup sync skipped, another run holds the lock")
	case err != nil:
		logger.Error("startup sync failed", "err", err)
	default:
		logger.Info("startup sync completed",
			"created", result.Created,
			"skipped", result.Skipped,
			"failed", result.Failed,
			"published", result.Published,
		)
	}
}

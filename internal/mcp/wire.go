//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

// InitializeResources creates Resources with all collaborators wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Store
		provideJobRepository,

		// Upstream fetch
		provideJobProviders,
		provideJobService,

		// CMS sync
		provideWebflowClient,
		provideCollectionResolver,
		provideSyncer,

		// Export
		provideSheetsAdapter,

		newResources,
	)

	return nil, nil, nil
}

package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/internal/domain/cms"
	"github.com/honeycarbs/jobsync/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/jobsync/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/jobsync/internal/repository"
	"github.com/honeycarbs/jobsync/internal/secrets"
	storage "github.com/honeycarbs/jobsync/internal/storage/neo4j"
	"github.com/honeycarbs/jobsync/internal/storage/sqlite"
	"github.com/honeycarbs/jobsync/pkg/adzuna"
	"github.com/honeycarbs/jobsync/pkg/logging"
	n4j "github.com/honeycarbs/jobsync/pkg/neo4j"
	"github.com/honeycarbs/jobsync/pkg/runlock"
	sheetsclient "github.com/honeycarbs/jobsync/pkg/sheets"
	"github.com/honeycarbs/jobsync/pkg/webflow"
)

// provideJobRepository opens the store selected by STORE_DRIVER
func provideJobRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (repository.JobRepository, func(), error) {
	var (
		repo repository.JobRepository
		err  error
	)

	switch cfg.StoreDriver {
	case config.StoreSQLite:
		repo, err = sqlite.Open(ctx, cfg.SQLitePath)
		if err == nil {
			logger.Info("SQLite store opened", "path", cfg.SQLitePath)
		}
	default:
		var client *n4j.Client
		client, err = n4j.NewClient(n4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
		})
		if err == nil {
			repo = storage.NewJobRepository(client)
			logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Warn("failed to close job store", "err", err)
		}
	}
	return repo, cleanup, nil
}

// provideJobProviders returns the upstream providers that have credentials
func provideJobProviders(cfg config.Config, logger *logging.Logger) ([]job.Provider, error) {
	if !cfg.AdzunaEnabled() {
		logger.Warn("Adzuna credentials missing, upstream fetch disabled")
		return nil, nil
	}

	client, err := adzuna.NewClient(adzuna.Config{
		AppID:   cfg.Adzuna.AppID,
		AppKey:  cfg.Adzuna.AppKey,
		Country: cfg.Adzuna.Country,
	})
	if err != nil {
		return nil, err
	}

	provider, err := adzunaProvider.NewProvider(client)
	if err != nil {
		return nil, err
	}

	logger.Info("Adzuna provider initialized", "country", cfg.Adzuna.Country)
	return []job.Provider{provider}, nil
}

func provideJobService(repo repository.JobRepository, providers []job.Provider, logger *logging.Logger) (job.Service, error) {
	return job.NewServiceWithDeps(repo, providers, logger)
}

// provideWebflowClient builds the CMS client, reading the token from the keyring when needed
func provideWebflowClient(cfg config.Config) (*webflow.Client, error) {
	token, err := secrets.WebflowToken(cfg.Webflow.APIToken, cfg.Webflow.KeyringAccount)
	if err != nil {
		return nil, err
	}

	return webflow.NewClient(webflow.Config{
		Token:             token,
		RequestsPerSecond: cfg.Webflow.RequestsPerSecond,
	})
}

func provideCollectionResolver(client *webflow.Client, cfg config.Config) (*cms.CollectionResolver, error) {
	return cms.NewCollectionResolver(client, cfg.Webflow.SiteID, cfg.Webflow.CollectionName, cfg.Webflow.CollectionID)
}

func provideSyncer(
	client *webflow.Client,
	repo repository.JobRepository,
	resolver *cms.CollectionResolver,
	cfg config.Config,
	logger *logging.Logger,
) (*cms.Syncer, error) {
	var opts []cms.SyncerOption
	if cfg.SyncLockPath != "" {
		lock, err := runlock.New(cfg.SyncLockPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cms.WithLocker(lock))
	}

	return cms.NewSyncer(client, repo, resolver, cms.Settings{
		SiteID:     cfg.Webflow.SiteID,
		DomainIDs:  cfg.Webflow.DomainIDs,
		FailClosed: cfg.Webflow.FailClosed,
	}, logger, opts...)
}

// provideSheetsAdapter returns an adapter that reports "not configured" when no credentials are set
func provideSheetsAdapter(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sheetsClientAdapter, error) {
	if cfg.SheetsCredentialsPath == "" {
		return &sheetsClientAdapter{}, nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}

	logger.Info("Google Sheets client initialized")
	return &sheetsClientAdapter{client: client}, nil
}

package mcp

import (
	"github.com/honeycarbs/jobsync/internal/domain/cms"
	"github.com/honeycarbs/jobsync/internal/domain/job"
	"github.com/honeycarbs/jobsync/internal/repository"
)

// Resources bundles the collaborators the tools and the startup run share
type Resources struct {
	JobService job.Service
	Syncer     *cms.Syncer
	JobRepo    repository.JobRepository
	Sheets     *sheetsClientAdapter
}

func newResources(
	jobService job.Service,
	syncer *cms.Syncer,
	jobRepo repository.JobRepository,
	sheets *sheetsClientAdapter,
) *Resources {
	return &Resources{
		JobService: jobService,
		Syncer:     syncer,
		JobRepo:    jobRepo,
		Sheets:     sheets,
	}
}


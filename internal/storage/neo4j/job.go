package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/repository"

	pkgneo4j "github.com/honeycarbs/jobsync/pkg/neo4j"
)

// Ensure JobRepository implements repository.JobRepository
var _ repository.JobRepository = (*JobRepository)(nil)

// JobRepository implements repository.JobRepository with Neo4j
type JobRepository struct {
	client *pkgneo4j.Client
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
	}
}

const upsertJobsQuery = `
	UNWIND $jobs AS job
	MERGE (j:Job {source: job.source, offerId: job.offerId})
	SET j.id = coalesce(j.id, job.id),
	    j.title = job.title,
	    j.contactEmail = job.contactEmail,
	    j.jobDescription = job.jobDescription,
	    j.companyDescription = job.companyDescription,
	    j.profileDescription = job.profileDescription,
	    j.city = job.city,
	    j.occupation = job.occupation,
	    j.contractType = job.contractType,
	    j.salaryMin = job.salaryMin,
	    j.salaryMax = job.salaryMax,
	    j.weeklyHours = job.weeklyHours,
	    j.remoteType = job.remoteType,
	    j.applyUrl = job.applyUrl,
	    j.postedAt = CASE WHEN job.postedAt IS NULL THEN null ELSE datetime({epochMillis: job.postedAt}) END,
	    j.fetchedAt = datetime({epochMillis: job.fetchedAt})
	WITH j, job
	OPTIONAL MATCH (j)-[old:POSTED_BY]->(:Company)
	DELETE old
	WITH j, job
	WHERE job.company <> ''
	MERGE (c:Company {name: job.company})
	MERGE (j)-[:POSTED_BY]->(c)
`

const listJobsQuery = `
	MATCH (j:Job)
	OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
	RETURN j.id AS id,
	       j.source AS source,
	       j.offerId AS offerId,
	       j.title AS title,
	       coalesce(c.name, '') AS company,
	       j.contactEmail AS contactEmail,
	       j.jobDescription AS jobDescription,
	       j.companyDescription AS companyDescription,
	       j.profileDescription AS profileDescription,
	       j.city AS city,
	       j.occupation AS occupation,
	       j.contractType AS contractType,
	       j.salaryMin AS salaryMin,
	       j.salaryMax AS salaryMax,
	       j.weeklyHours AS weeklyHours,
	       j.remoteType AS remoteType,
	       j.applyUrl AS applyUrl,
	       j.postedAt AS postedAt,
	       j.fetchedAt AS fetchedAt
	ORDER BY j.fetchedAt, j.offerId
`

// UpsertJobs merges job records keyed by source and offer id
func (r *JobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	session := r.client.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	jobsData := make([]map[string]any, 0, len(jobs))
	for _, job := range jobs {
		jobsData = append(jobsData, jobParams(job))
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertJobsQuery, map[string]any{"jobs": jobsData})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: upsert jobs: %w", err)
	}
	return nil
}

// ListJobs loads every stored job
func (r *JobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	session := r.client.NewSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, listJobsQuery, nil)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: list jobs: %w", err)
	}

	records := out.([]*neo4j.Record)
	jobs := make([]domain.Job, 0, len(records))
	for _, record := range records {
		job, err := jobFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("neo4j: decode job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Close releases the underlying driver
func (r *JobRepository) Close(ctx context.Context) error {
	return r.client.Close(ctx)
}

func jobParams(job domain.Job) map[string]any {
	var postedAt any
	if !job.PostedAt.IsZero() {
		postedAt = job.PostedAt.UnixMilli()
	}

	return map[string]any{
		"id":                 job.ID.String(),
		"source":             job.Source,
		"offerId":            job.OfferID,
		"title":              job.Title,
		"company":            job.CompanyName,
		"contactEmail":       job.ContactEmail,
		"jobDescription":     job.JobDescription,
		"companyDescription": job.CompanyDescription,
		"profileDescription": job.ProfileDescription,
		"city":               job.City,
		"occupation":         job.Occupation,
		"contractType":       job.ContractType,
		"salaryMin":          optionalFloat(job.SalaryMin),
		"salaryMax":          optionalFloat(job.SalaryMax),
		"weeklyHours":        job.WeeklyHours,
		"remoteType":         job.RemoteType,
		"applyUrl":           job.ApplyURL,
		"postedAt":           postedAt,
		"fetchedAt":          job.FetchedAt.UnixMilli(),
	}
}

func optionalFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func jobFromRecord(record *neo4j.Record) (domain.Job, error) {
	str := func(key string) string {
		v, _, _ := neo4j.GetRecordValue[string](record, key)
		return v
	}
	float := func(key string) *float64 {
		v, isNil, err := neo4j.GetRecordValue[float64](record, key)
		if err != nil || isNil {
			return nil
		}
		return &v
	}
	ts := func(key string) time.Time {
		v, isNil, err := neo4j.GetRecordValue[time.Time](record, key)
		if err != nil || isNil {
			return time.Time{}
		}
		return v
	}

	id, err := uuid.Parse(str("id"))
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %q: %w", str("offerId"), err)
	}

	return domain.Job{
		ID:                 id,
		Source:             str("source"),
		OfferID:            str("offerId"),
		Title:              str("title"),
		CompanyName:        str("company"),
		ContactEmail:       str("contactEmail"),
		JobDescription:     str("jobDescription"),
		CompanyDescription: str("companyDescription"),
		ProfileDescription: str("profileDescription"),
		City:               str("city"),
		Occupation:         str("occupation"),
		ContractType:       str("contractType"),
		SalaryMin:          float("salaryMin"),
		SalaryMax:          float("salaryMax"),
		WeeklyHours:        str("weeklyHours"),
		RemoteType:         str("remoteType"),
		ApplyURL:           str("applyUrl"),
		PostedAt:           ts("postedAt"),
		FetchedAt:          ts("fetchedAt"),
	}, nil
}

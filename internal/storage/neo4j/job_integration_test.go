package neo4j

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobsync/internal/domain"
	pkgneo4j "github.com/honeycarbs/jobsync/pkg/neo4j"
)

func TestJobRepositoryIntegration(t *testing.T) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" || testing.Short() {
		t.Skip("NEO4J_URI must be set to run this test")
	}

	client, err := pkgneo4j.NewClient(pkgneo4j.Config{
		URI:      uri,
		Username: os.Getenv("NEO4J_USERNAME"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: os.Getenv("NEO4J_DATABASE"),
	})
	require.NoError(t, err)

	repo := NewJobRepository(client)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	defer func() { _ = repo.Close(ctx) }()

	salary := 1000.0
	source := "itest-" + uuid.NewString()
	job := domain.Job{
		ID:          uuid.New(),
		Source:      source,
		OfferID:     "offer-1",
		Title:       "Integration Engineer",
		CompanyName: "Acme",
		SalaryMin:   &salary,
		FetchedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.UpsertJobs(ctx, []domain.Job{job}))

	job.Title = "Integration Engineer II"
	require.NoError(t, repo.UpsertJobs(ctx, []domain.Job{job}))

	jobs, err := repo.ListJobs(ctx)
	require.NoError(t, err)

	var found []domain.Job
	for _, j := range jobs {
		if j.Source == source {
			found = append(found, j)
		}
	}
	require.Len(t, found, 1)
	assert.Equal(t, "Integration Engineer II", found[0].Title)
	assert.Equal(t, "Acme", found[0].CompanyName)
	require.NotNil(t, found[0].SalaryMin)
	assert.Nil(t, found[0].SalaryMax)
	assert.True(t, found[0].PostedAt.IsZero())
}

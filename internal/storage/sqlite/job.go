package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/repository"
)

var _ repository.JobRepository = (*JobRepository)(nil)

// JobRepository implements repository.JobRepository on an embedded SQLite file
type JobRepository struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT NOT NULL,
  source TEXT NOT NULL,
  offer_id TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  contact_email TEXT NOT NULL DEFAULT '',
  job_description TEXT NOT NULL DEFAULT '',
  company_description TEXT NOT NULL DEFAULT '',
  profile_description TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  occupation TEXT NOT NULL DEFAULT '',
  contract_type TEXT NOT NULL DEFAULT '',
  salary_min REAL,
  salary_max REAL,
  weekly_hours TEXT NOT NULL DEFAULT '',
  remote_type TEXT NOT NULL DEFAULT '',
  apply_url TEXT NOT NULL DEFAULT '',
  posted_at TEXT NOT NULL DEFAULT '',
  fetched_at TEXT NOT NULL,
  PRIMARY KEY (source, offer_id)
);
CREATE INDEX IF NOT EXISTS idx_jobs_fetched_at ON jobs(fetched_at);
`

// Open opens (or creates) the SQLite file at path and ensures the schema
func Open(ctx context.Context, path string) (*JobRepository, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// sqlite wants a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	return &JobRepository{db: db}, nil
}

// UpsertJobs inserts or refreshes jobs keyed by (source, offer_id).
// The stored id of an existing row is kept.
func (r *JobRepository) UpsertJobs(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO jobs (
  id, source, offer_id, title, company, contact_email, job_description,
  company_description, profile_description, city, occupation, contract_type,
  salary_min, salary_max, weekly_hours, remote_type, apply_url, posted_at, fetched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source, offer_id) DO UPDATE SET
  title = excluded.title,
  company = excluded.company,
  contact_email = excluded.contact_email,
  job_description = excluded.job_description,
  company_description = excluded.company_description,
  profile_description = excluded.profile_description,
  city = excluded.city,
  occupation = excluded.occupation,
  contract_type = excluded.contract_type,
  salary_min = excluded.salary_min,
  salary_max = excluded.salary_max,
  weekly_hours = excluded.weekly_hours,
  remote_type = excluded.remote_type,
  apply_url = excluded.apply_url,
  posted_at = excluded.posted_at,
  fetched_at = excluded.fetched_at;`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, j := range jobs {
		_, err := stmt.ExecContext(ctx,
			j.ID.String(), j.Source, j.OfferID, j.Title, j.CompanyName, j.ContactEmail, j.JobDescription,
			j.CompanyDescription, j.ProfileDescription, j.City, j.Occupation, j.ContractType,
			nullFloat(j.SalaryMin), nullFloat(j.SalaryMax), j.WeeklyHours, j.RemoteType, j.ApplyURL,
			formatTime(j.PostedAt), formatTime(j.FetchedAt),
		)
		if err != nil {
			return fmt.Errorf("sqlite: upsert job %s/%s: %w", j.Source, j.OfferID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// ListJobs returns every stored job, oldest fetch first
func (r *JobRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, source, offer_id, title, company, contact_email, job_description,
       company_description, profile_description, city, occupation, contract_type,
       salary_min, salary_max, weekly_hours, remote_type, apply_url, posted_at, fetched_at
FROM jobs
ORDER BY fetched_at, offer_id;`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list jobs: %w", err)
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var (
			j                    domain.Job
			id                   string
			salaryMin, salaryMax sql.NullFloat64
			postedAt, fetchedAt  string
		)
		if err := rows.Scan(
			&id, &j.Source, &j.OfferID, &j.Title, &j.CompanyName, &j.ContactEmail, &j.JobDescription,
			&j.CompanyDescription, &j.ProfileDescription, &j.City, &j.Occupation, &j.ContractType,
			&salaryMin, &salaryMax, &j.WeeklyHours, &j.RemoteType, &j.ApplyURL, &postedAt, &fetchedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan job: %w", err)
		}

		if j.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("sqlite: job %s: %w", j.OfferID, err)
		}
		j.SalaryMin = floatPtr(salaryMin)
		j.SalaryMax = floatPtr(salaryMax)
		j.PostedAt, _ = time.Parse(time.RFC3339Nano, postedAt)
		j.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepository) Close(context.Context) error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

package adzuna

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/honeycarbs/jobsync/internal/domain"
	jobdomain "github.com/honeycarbs/jobsync/internal/domain/job"
	"github.com/honeycarbs/jobsync/pkg/adzuna"
)

const sourceName = "adzuna"

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, query string, params adzuna.SearchParams) ([]adzuna.Job, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client searchClient
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return sourceName
}

// Search queries Adzuna and returns normalized job records
func (p *Provider) Search(ctx context.Context, query string, filters domain.JobSearchFilters) ([]domain.Job, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("adzuna provider: client is nil")
	}

	respJobs, err := p.client.SearchJobs(ctx, query, adzuna.SearchParams{
		Location: filters.Location,
		Remote:   filters.Remote,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Job, 0, len(respJobs))
	for _, j := range respJobs {
		out = append(out, normalize(j))
	}

	return out, nil
}

var _ jobdomain.Provider = (*Provider)(nil)

func normalize(j adzuna.Job) domain.Job {
	description := plainText(j.Description)

	return domain.Job{
		ID:             uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceName+":"+j.ID)),
		Source:         sourceName,
		OfferID:        j.ID,
		Title:          cleanText(j.Title),
		CompanyName:    cleanText(j.CompanyName),
		JobDescription: description,
		City:           city(j),
		Occupation:     j.Category,
		ContractType:   contractLabel(j.ContractType),
		SalaryMin:      positive(j.SalaryMin),
		SalaryMax:      positive(j.SalaryMax),
		WeeklyHours:    hoursLabel(j.ContractTime),
		RemoteType:     remoteType(j.Title, j.Location, description),
		ApplyURL:       j.URL,
		PostedAt:       j.PostedAt,
		FetchedAt:      j.FetchedAt,
	}
}

// plainText flattens the HTML fragments Adzuna leaves in descriptions.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return cleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	return cleanText(doc.Text())
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// city prefers the most specific area entry over the display name.
func city(j adzuna.Job) string {
	if n := len(j.Area); n > 0 && j.Area[n-1] != "" {
		return j.Area[n-1]
	}
	if i := strings.Index(j.Location, ","); i > 0 {
		return strings.TrimSpace(j.Location[:i])
	}
	return j.Location
}

func contractLabel(t string) string {
	switch strings.ToLower(t) {
	case "permanent":
		return "Permanent"
	case "contract":
		return "Contract"
	default:
		return t
	}
}

func hoursLabel(t string) string {
	switch strings.ToLower(t) {
	case "full_time":
		return "Full time"
	case "part_time":
		return "Part time"
	default:
		return t
	}
}

func remoteType(fields ...string) string {
	blob := strings.ToLower(strings.Join(fields, " "))
	switch {
	case strings.Contains(blob, "hybrid"):
		return "Hybrid"
	case strings.Contains(blob, "remote"), strings.Contains(blob, "télétravail"):
		return "Remote"
	default:
		return ""
	}
}

// positive drops the zero salaries Adzuna reports for unknown bounds.
func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	out := *v
	return &out
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobID uniquely identifies a stored job record
type JobID = uuid.UUID

// Job is the normalized job listing record kept in the document store.
// OfferID is the reference identifier used to match a record to its CMS item.
type Job struct {
	ID                 JobID
	Source             string
	OfferID            string
	Title              string
	CompanyName        string
	ContactEmail       string
	JobDescription     string
	CompanyDescription string
	ProfileDescription string
	City               string
	Occupation         string
	ContractType       string
	SalaryMin          *float64
	SalaryMax          *float64
	WeeklyHours        string
	RemoteType         string
	ApplyURL           string
	PostedAt           time.Time
	FetchedAt          time.Time
}

// JobSearchFilters describe allowed upstream query filters
type JobSearchFilters struct {
	Location string
	Remote   *bool
}

// JobSummary is the response-friendly job view
type JobSummary struct {
	ID       JobID  `json:"id"`
	OfferID  string `json:"offer_id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	City     string `json:"city"`
	Contract string `json:"contract"`
	URL      string `json:"url"`
	Source   string `json:"source"`
}

// Summarize converts a job into its response view
func Summarize(j Job) JobSummary {
	return JobSummary{
		ID:       j.ID,
		OfferID:  j.OfferID,
		Title:    j.Title,
		Company:  j.CompanyName,
		City:     j.City,
		Contract: j.ContractType,
		URL:      j.ApplyURL,
		Source:   j.Source,
	}
}

// FetchResult wraps the outcome of an upstream fetch
type FetchResult struct {
	Jobs        []JobSummary `json:"jobs"`
	Stored      int          `json:"stored"`
	FetchedAt   time.Time    `json:"fetched_at"`
	SourceCount int          `json:"source_count"`
}

// ItemState is the per-job state of a sync run
type ItemState string

const (
	ItemPending          ItemState = "pending"
	ItemSkippedDuplicate ItemState = "skipped-duplicate"
	ItemCreated          ItemState = "created"
	ItemFailed           ItemState = "failed"
)

// Terminal reports whether no further transition is possible
func (s ItemState) Terminal() bool {
	return s == ItemSkippedDuplicate || s == ItemCreated || s == ItemFailed
}

// ItemOutcome records what happened to one job during a sync run
type ItemOutcome struct {
	ReferenceID string    `json:"reference_id"`
	Title       string    `json:"title"`
	State       ItemState `json:"state"`
	RemoteID    string    `json:"remote_id,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// SyncResult summarizes a sync run
type SyncResult struct {
	CollectionID  string        `json:"collection_id"`
	Existing      int           `json:"existing"`
	ExistingError string        `json:"existing_error,omitempty"`
	Created       int           `json:"created"`
	Skipped       int           `json:"skipped"`
	Failed        int           `json:"failed"`
	Outcomes      []ItemOutcome `json:"outcomes"`
	Published     bool          `json:"published"`
	PublishError  string        `json:"publish_error,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
}

// Record appends an outcome and bumps the matching counter
func (r *SyncResult) Record(o ItemOutcome) {
	switch o.State {
	case ItemCreated:
		r.Created++
	case ItemSkippedDuplicate:
		r.Skipped++
	case ItemFailed:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, o)
}

package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/domain/cms"
)

// SheetsExportResult describes a finished export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message"`
}

type sheetsWriter interface {
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
}

var sheetHeader = []interface{}{
	"Reference", "Title", "Company", "City", "Contract", "Salary", "Remote", "URL", "Fetched",
}

type sheetsClientAdapter struct {
	client sheetsWriter
	clock  func() time.Time
}

func (a *sheetsClientAdapter) Export(ctx context.Context, params SheetsExportParams, jobs []domain.Job) (SheetsExportResult, error) {
	if a.client == nil {
		return SheetsExportResult{
			SpreadsheetID: params.SpreadsheetID,
			Tab:           params.Tab,
			Message:       "Google Sheets client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)",
		}, fmt.Errorf("sheets: client not configured")
	}

	clock := a.clock
	if clock == nil {
		clock = time.Now
	}

	result := SheetsExportResult{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           tabName(params.Tab),
	}

	if params.ClearTab {
		if err := a.client.ClearValues(ctx, params.SpreadsheetID, buildClearRange(params.Tab)); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
	}

	values := append([][]interface{}{sheetHeader}, convertJobsToValues(jobs)...)
	if err := a.client.UpdateValues(ctx, params.SpreadsheetID, buildRange(params.Tab), values); err != nil {
		return result, fmt.Errorf("sheets: failed to write rows: %w", err)
	}

	result.CompletedAt = clock().UTC()
	result.WrittenRows = len(jobs)
	if len(jobs) == 0 {
		result.Message = "no stored jobs, header written"
	} else {
		result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)
	}

	return result, nil
}

func tabName(tab string) string {
	if tab == "" {
		return "Sheet1"
	}
	return tab
}

func buildRange(tab string) string {
	return fmt.Sprintf("%s!A1", tabName(tab))
}

func buildClearRange(tab string) string {
	return fmt.Sprintf("%s!A2:Z", tabName(tab))
}

func convertJobsToValues(jobs []domain.Job) [][]interface{} {
	values := make([][]interface{}, len(jobs))
	for i, j := range jobs {
		fetched := ""
		if !j.FetchedAt.IsZero() {
			fetched = j.FetchedAt.UTC().Format(time.RFC3339)
		}
		values[i] = []interface{}{
			j.OfferID,
			j.Title,
			j.CompanyName,
			j.City,
			j.ContractType,
			cms.SalaryRange(j.SalaryMin, j.SalaryMax),
			j.RemoteType,
			j.ApplyURL,
			fetched,
		}
	}
	return values
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/domain/job"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

// JobFetchParams defines the arguments for the job_fetch tool
type JobFetchParams struct {
	Query    string `json:"query" jsonschema:"Job search keywords sent to the upstream board"`
	Location string `json:"location,omitempty" jsonschema:"Preferred location filter"`
	Remote   *bool  `json:"remote,omitempty" jsonschema:"Whether to restrict to remote postings"`
}

// JobListParams defines the arguments for the job_list tool
type JobListParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of jobs to return, 0 for all"`
}

// WebflowSyncParams defines the arguments for the webflow_sync tool
type WebflowSyncParams struct {
	IncludeOutcomes bool `json:"include_outcomes,omitempty" jsonschema:"Return the per-job outcome list"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write data to"`
	ClearTab      bool   `json:"clear_tab,omitempty" jsonschema:"Clear existing rows below the header before writing"`
}

type syncRunner interface {
	SyncAll(ctx context.Context) (domain.SyncResult, error)
}

type sheetsExporter interface {
	Export(ctx context.Context, params SheetsExportParams, jobs []domain.Job) (SheetsExportResult, error)
}

type toolset struct {
	jobs   job.Service
	syncer syncRunner
	sheets sheetsExporter
	logger *logging.Logger
}

// registerTools wires all tools into the MCP server
func registerTools(s *sdkmcp.Server, t *toolset) {
	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "job_fetch",
		Description: "Fetch postings from the upstream job board, normalize them, and store them",
	}, t.jobFetch)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "job_list",
		Description: "List job records currently held in the store",
	}, t.jobList)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "webflow_sync",
		Description: "Mirror stored jobs into the Webflow Jobs collection and publish the site",
	}, t.webflowSync)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "sheets_export",
		Description: "Export stored jobs to a Google Sheets tab",
	}, t.sheetsExport)
}

func (t *toolset) jobFetch(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobFetchParams) (*sdkmcp.CallToolResult, any, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, nil, fmt.Errorf("job_fetch: query is required")
	}

	res, err := t.jobs.Fetch(ctx, query, domain.JobSearchFilters{
		Location: params.Location,
		Remote:   params.Remote,
	})
	if err != nil {
		t.logger.Warn("job_fetch failed", "query", query, "err", err)
		return nil, nil, err
	}

	return jsonResult(res)
}

func (t *toolset) jobList(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobListParams) (*sdkmcp.CallToolResult, any, error) {
	jobs, err := t.jobs.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	if params.Limit > 0 && len(jobs) > params.Limit {
		jobs = jobs[:params.Limit]
	}

	out := struct {
		Count int                 `json:"count"`
		Jobs  []domain.JobSummary `json:"jobs"`
	}{Count: len(jobs), Jobs: make([]domain.JobSummary, 0, len(jobs))}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, domain.Summarize(j))
	}

	return jsonResult(out)
}

func (t *toolset) webflowSync(ctx context.Context, _ *sdkmcp.CallToolRequest, params WebflowSyncParams) (*sdkmcp.CallToolResult, any, error) {
	res, err := t.syncer.SyncAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	if !params.IncludeOutcomes {
		res.Outcomes = nil
	}
	return jsonResult(res)
}

func (t *toolset) sheetsExport(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.SpreadsheetID) == "" {
		return nil, nil, fmt.Errorf("sheets_export: spreadsheet_id is required")
	}

	jobs, err := t.jobs.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	res, err := t.sheets.Export(ctx, params, jobs)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(res)
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode tool result: %w", err)
	}
	return textResult(string(raw)), nil, nil
}

// Produce a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

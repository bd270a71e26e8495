package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gyaneshwarpardhi/inspector/internal/engine"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
	"github.com/gyaneshwarpardhi/inspector/internal/projection"
)

// --- Input/Output types ---

// FilterInput mirrors the panel filter bar.
type FilterInput struct {
	Category   string `json:"category,omitempty" jsonschema:"only entries of this category (AI, Tool, WebMCP, Event, System)"`
	FailedOnly bool   `json:"failed_only,omitempty" jsonschema:"only failed entries"`
	Query      string `json:"query,omitempty" jsonschema:"case-insensitive match on entry name or type"`
}

// InspectInput defines parameters for the inspector_inspect tool.
type InspectInput struct {
	Events     []map[string]any `json:"events" jsonschema:"raw events in arrival order; each carries a type and optional timestamp in epoch ms"`
	Category   string           `json:"category,omitempty" jsonschema:"only entries of this category"`
	FailedOnly bool             `json:"failed_only,omitempty" jsonschema:"only failed entries"`
	Query      string           `json:"query,omitempty" jsonschema:"case-insensitive match on entry name or type"`
}

// SummaryInput defines parameters for the inspector_summary tool.
type SummaryInput struct {
	Events []map[string]any `json:"events" jsonschema:"raw events in arrival order"`
}

// EntryRow is the tool-facing subset of a projection row.
type EntryRow struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Failed      bool   `json:"failed,omitempty"`
	Pending     bool   `json:"pending,omitempty"`
	Time        string `json:"time"`
	Size        string `json:"size"`
	Duration    string `json:"duration,omitempty"`
	HasResponse bool   `json:"has_response,omitempty"`
}

// EntriesOutput lists correlated entries with the summary of the whole stream.
type EntriesOutput struct {
	Events  int                `json:"events"`
	Entries []EntryRow         `json:"entries"`
	Summary projection.Summary `json:"summary"`
}

// --- Handlers ---

func (s *Server) handleInspect(ctx context.Context, req *mcpsdk.CallToolRequest, input InspectInput) (*mcpsdk.CallToolResult, EntriesOutput, error) {
	events, err := decodeEvents(input.Events)
	if err != nil {
		return nil, EntriesOutput{}, err
	}
	f := FilterInput{Category: input.Category, FailedOnly: input.FailedOnly, Query: input.Query}
	v := s.eng.Inspect(events, f.filter())
	return nil, toOutput(v), nil
}

func (s *Server) handleSummary(ctx context.Context, req *mcpsdk.CallToolRequest, input SummaryInput) (*mcpsdk.CallToolResult, projection.Summary, error) {
	events, err := decodeEvents(input.Events)
	if err != nil {
		return nil, projection.Summary{}, err
	}
	v := s.eng.Inspect(events, projection.Filter{})
	return nil, v.Summary, nil
}

func (s *Server) handleEntries(ctx context.Context, req *mcpsdk.CallToolRequest, input FilterInput) (*mcpsdk.CallToolResult, EntriesOutput, error) {
	v := s.eng.Entries(input.filter())
	return nil, toOutput(v), nil
}

// --- Helpers ---

func (f FilterInput) filter() projection.Filter {
	return projection.Filter{
		Category:   f.Category,
		FailedOnly: f.FailedOnly,
		Text:       f.Query,
	}
}

// decodeEvents round-trips tool arguments through the event wire codec so
// kind and timestamp are read exactly as the HTTP API reads them.
func decodeEvents(raw []map[string]any) ([]event.RawEvent, error) {
	events := make([]event.RawEvent, 0, len(raw))
	for i, m := range raw {
		b, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		var ev event.RawEvent
		if err := json.Unmarshal(b, &ev); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func toOutput(v *engine.View) EntriesOutput {
	out := EntriesOutput{
		Events:  v.Events,
		Entries: make([]EntryRow, 0, len(v.Rows)),
		Summary: v.Summary,
	}
	for _, r := range v.Rows {
		row := EntryRow{
			ID:          r.ID,
			Type:        r.Type,
			Name:        r.Name,
			Category:    r.Category,
			Status:      r.Status.Label,
			Failed:      r.Failed,
			Pending:     r.Pending,
			Time:        r.Time,
			Size:        r.Size,
			HasResponse: r.RawResponse != nil,
		}
		if r.Duration != nil {
			row.Duration = *r.Duration
		}
		out.Entries = append(out.Entries, row)
	}
	return out
}

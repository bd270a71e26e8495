package projection

import (
	"strings"

	"github.com/gyaneshwarpardhi/inspector/internal/classifier"
	"github.com/gyaneshwarpardhi/inspector/internal/config"
	"github.com/gyaneshwarpardhi/inspector/internal/correlate"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
)

// Row is the rendered snapshot of one entry, keyed by the entry ID.
type Row struct {
	ID            int                    `json:"id"`
	Type          string                 `json:"type"`
	Name          string                 `json:"name"`
	Color         string                 `json:"color"`
	Category      string                 `json:"category"`
	CategoryColor string                 `json:"category_color"`
	Status        classifier.Status      `json:"status"`
	Failed        bool                   `json:"failed"`
	Pending       bool                   `json:"pending"`
	Time          string                 `json:"time"`
	Size          string                 `json:"size"`
	SizeBytes     int                    `json:"size_bytes"`
	Duration      *string                `json:"duration"`
	DurationMs    *float64               `json:"duration_ms"`
	Payload       map[string]interface{} `json:"payload"`
	Response      map[string]interface{} `json:"response,omitempty"`
	Headers       []Header               `json:"headers"`
	Request       event.RawEvent         `json:"request"`
	RawResponse   *event.RawEvent        `json:"raw_response,omitempty"`
}

// Row evaluates every accessor for e.
func (p *Projector) Row(e *correlate.Entry) Row {
	r := Row{
		ID:            e.ID,
		Type:          p.Type(e),
		Name:          p.Name(e),
		Color:         p.Color(e),
		Category:      p.Category(e),
		CategoryColor: p.CategoryColor(e),
		Status:        p.Status(e),
		Failed:        p.IsFailed(e),
		Pending:       p.Pairable(e) && e.Response == nil,
		Time:          p.Time(e),
		Size:          p.Size(e),
		SizeBytes:     p.SizeBytes(e),
		Payload:       p.Payload(e),
		Response:      p.ResponseData(e),
		Headers:       p.Headers(e),
		Request:       e.Request,
		RawResponse:   e.Response,
	}
	if ms, ok := p.DurationMs(e); ok {
		d := formatDuration(ms)
		r.Duration = &d
		r.DurationMs = &ms
	}
	return r
}

// Filter narrows the entry list the way the panel's filter bar does.
// Zero values match everything.
type Filter struct {
	Category   string
	FailedOnly bool
	Text       string
}

// Match reports whether r passes the filter. Text matches the name or type
// case-insensitively.
func (f Filter) Match(r Row) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, r.Category) {
		return false
	}
	if f.FailedOnly && !r.Failed {
		return false
	}
	if f.Text != "" {
		q := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(r.Name), q) && !strings.Contains(strings.ToLower(r.Type), q) {
			return false
		}
	}
	return true
}

// Rows projects entries and keeps the ones f matches, in entry order.
func (p *Projector) Rows(entries []correlate.Entry, f Filter) []Row {
	out := make([]Row, 0, len(entries))
	for i := range entries {
		r := p.Row(&entries[i])
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summary counts rows for the panel's status bar.
type Summary struct {
	Total      int            `json:"total"`
	Failed     int            `json:"failed"`
	Pending    int            `json:"pending"`
	ByCategory map[string]int `json:"by_category"`
}

// Summarize tallies rows. Every category appears, even with a zero count.
func Summarize(rows []Row) Summary {
	s := Summary{ByCategory: make(map[string]int, len(config.Categories))}
	for _, c := range config.Categories {
		s.ByCategory[c] = 0
	}
	for _, r := range rows {
		s.Total++
		s.ByCategory[r.Category]++
		if r.Failed {
			s.Failed++
		}
		if r.Pending {
			s.Pending++
		}
	}
	return s
}

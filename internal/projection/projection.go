// Package projection derives the read-only display facts of a correlated
// entry: labels and colors from the classifier, plus timing, size and
// payload views computed here.
package projection

import (
	"bytes"
	"encoding/json"

	"github.com/gyaneshwarpardhi/inspector/internal/classifier"
	"github.com/gyaneshwarpardhi/inspector/internal/correlate"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
)

// Placeholder is shown for values that are not known.
const Placeholder = "—"

// Header is one name/value metadata pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Projector answers display questions about entries. It holds no state
// besides the classifier it defers to.
type Projector struct {
	c *classifier.Classifier
}

// New creates a Projector over c.
func New(c *classifier.Classifier) *Projector {
	return &Projector{c: c}
}

// Type is the request kind, relabeled for pairable opening kinds.
func (p *Projector) Type(e *correlate.Entry) string { return p.c.Label(e.Request.Kind) }

// Color is the request kind's color.
func (p *Projector) Color(e *correlate.Entry) string { return p.c.ColorOf(e.Request.Kind) }

// Name is the request's display name.
func (p *Projector) Name(e *correlate.Entry) string { return p.c.DisplayNameOf(e.Request) }

// Category is the request kind's category.
func (p *Projector) Category(e *correlate.Entry) string { return p.c.CategoryOf(e.Request.Kind) }

// CategoryColor is the color of the entry's category.
func (p *Projector) CategoryColor(e *correlate.Entry) string {
	return p.c.CategoryColor(p.Category(e))
}

// Pairable reports whether the request kind opens a pair.
func (p *Projector) Pairable(e *correlate.Entry) bool {
	_, ok := p.c.Opens(e.Request.Kind)
	return ok
}

// Status is the response's status when present, "pending" for an
// unanswered pairable request, and the request's own status otherwise.
func (p *Projector) Status(e *correlate.Entry) classifier.Status {
	if e.Response != nil {
		return p.c.StatusOf(*e.Response)
	}
	if p.Pairable(e) {
		return classifier.Status{Label: "pending", Color: p.c.Palette().Warning}
	}
	return p.c.StatusOf(e.Request)
}

// IsFailed is true for error responses, error requests and pairable
// requests that never received a response.
func (p *Projector) IsFailed(e *correlate.Entry) bool {
	if e.Response != nil && p.c.IsError(*e.Response) {
		return true
	}
	if p.c.IsError(e.Request) {
		return true
	}
	return p.Pairable(e) && e.Response == nil
}

// Time formats the request timestamp.
func (p *Projector) Time(e *correlate.Entry) string {
	return p.formatInstant(e.Request)
}

// SizeBytes is the serialized length of the request fields plus the
// response fields when present. Kind and timestamp are not counted.
func (p *Projector) SizeBytes(e *correlate.Entry) int {
	n := FieldsSize(e.Request)
	if e.Response != nil {
		n += FieldsSize(*e.Response)
	}
	return n
}

// Size formats SizeBytes.
func (p *Projector) Size(e *correlate.Entry) string { return formatBytes(p.SizeBytes(e)) }

// DurationMs is response minus request timestamp. ok is false unless both
// timestamps are known. Responses stamped before their request clamp to 0.
func (p *Projector) DurationMs(e *correlate.Entry) (ms float64, ok bool) {
	if e.Response == nil {
		return 0, false
	}
	start, ok1 := e.Request.Time()
	end, ok2 := e.Response.Time()
	if !ok1 || !ok2 {
		return 0, false
	}
	if end < start {
		return 0, true
	}
	return end - start, true
}

// Duration formats DurationMs; ok mirrors DurationMs.
func (p *Projector) Duration(e *correlate.Entry) (string, bool) {
	ms, ok := p.DurationMs(e)
	if !ok {
		return "", false
	}
	return formatDuration(ms), true
}

// Payload extracts the request-side fields worth showing for the kind.
func (p *Projector) Payload(e *correlate.Entry) map[string]interface{} {
	ev := e.Request
	switch pl := event.Decode(ev).(type) {
	case event.Prompt:
		return pick(ev, event.FieldInput, event.FieldOptions)
	case event.ToolCall:
		return pick(ev, event.FieldTool, event.FieldArgs)
	case event.WebMCP:
		if pl.Op == event.WebMCPCall {
			return pick(ev, event.FieldToolName, event.FieldArgs)
		}
	}
	return pick(ev)
}

// ResponseData extracts the response-side fields, or nil with no response.
func (p *Projector) ResponseData(e *correlate.Entry) map[string]interface{} {
	if e.Response == nil {
		return nil
	}
	ev := *e.Response
	switch event.Decode(ev).(type) {
	case event.Completion:
		return pick(ev, event.FieldResult)
	case event.Failure:
		return pick(ev, event.FieldError)
	case event.ToolResult, event.WebMCP:
		return pick(ev, event.FieldResult, event.FieldError)
	}
	return pick(ev)
}

// Headers lists request metadata, followed by response timing when the
// entry is resolved.
func (p *Projector) Headers(e *correlate.Entry) []Header {
	req := e.Request
	hs := []Header{
		{Name: "Type", Value: req.Kind},
		{Name: "Category", Value: p.Category(e)},
		{Name: "Timestamp", Value: p.Time(e)},
	}
	if sid := req.String(event.FieldSessionID); sid != "" {
		hs = append(hs, Header{Name: "Session ID", Value: sid})
	}
	if tool := req.String(event.FieldTool); tool != "" {
		hs = append(hs, Header{Name: "Tool", Value: tool})
	}
	if name := req.String(event.FieldToolName); name != "" {
		hs = append(hs, Header{Name: "Tool Name", Value: name})
	}
	if e.Response != nil {
		hs = append(hs,
			Header{Name: "Response Type", Value: e.Response.Kind},
			Header{Name: "Response Time", Value: p.formatInstant(*e.Response)},
		)
		d, ok := p.Duration(e)
		if !ok {
			d = Placeholder
		}
		hs = append(hs, Header{Name: "Duration", Value: d})
	}
	return hs
}

func (p *Projector) formatInstant(ev event.RawEvent) string {
	ts, ok := ev.Time()
	if !ok {
		return Placeholder
	}
	return p.c.FormatTime(ts)
}

// FieldsSize is the byte length of ev's fields serialized as compact JSON.
func FieldsSize(ev event.RawEvent) int {
	fields := ev.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return 0
	}
	return len(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// pick copies the named fields that are present; no names copies all.
func pick(ev event.RawEvent, names ...string) map[string]interface{} {
	out := make(map[string]interface{})
	if len(names) == 0 {
		for k, v := range ev.Fields {
			out[k] = v
		}
		return out
	}
	for _, n := range names {
		if v, ok := ev.Fields[n]; ok {
			out[n] = v
		}
	}
	return out
}

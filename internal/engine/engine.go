package engine

import (
	"sync/atomic"
	"time"

	"github.com/gyaneshwarpardhi/inspector/internal/classifier"
	"github.com/gyaneshwarpardhi/inspector/internal/config"
	"github.com/gyaneshwarpardhi/inspector/internal/correlate"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
	"github.com/gyaneshwarpardhi/inspector/internal/metrics"
	"github.com/gyaneshwarpardhi/inspector/internal/projection"
)

// View is the outcome of one merge-and-project pass.
type View struct {
	StreamID   string             `json:"stream_id,omitempty"`
	Events     int                `json:"events"`
	Rows       []projection.Row   `json:"rows"`
	Summary    projection.Summary `json:"summary"`
	DurationMs float64            `json:"duration_ms"`
}

// Engine owns the panel's event history and the active classifier.
type Engine struct {
	classifier atomic.Pointer[classifier.Classifier]
	history    *History
}

// New creates an Engine using c and the history limits in conf.
func New(c *classifier.Classifier, conf config.ServerConf) *Engine {
	e := &Engine{history: NewHistory(conf.MaxEvents)}
	e.classifier.Store(c)
	return e
}

// SwapClassifier atomically replaces the lookup tables (used on hot-reload).
// The next merge re-classifies the whole history with the new tables, so
// the stream ID rotates and renderers rebuild their rows.
func (e *Engine) SwapClassifier(c *classifier.Classifier) {
	e.classifier.Store(c)
	e.history.Rotate()
}

// Follow swaps in a fresh classifier whenever l publishes a new config,
// whether from the file watcher or an explicit reload. Failed reloads
// leave the classifier in place and are counted.
func (e *Engine) Follow(l *config.Loader) {
	l.OnChange(func(cfg *config.Config) {
		e.SwapClassifier(classifier.New(cfg.Tables))
		metrics.TableReloads.WithLabelValues("success").Inc()
	})
	l.OnError(func(error) {
		metrics.TableReloads.WithLabelValues("error").Inc()
	})
}

// Classifier returns the active classifier.
func (e *Engine) Classifier() *classifier.Classifier {
	return e.classifier.Load()
}

// Append records events in arrival order.
func (e *Engine) Append(evs ...event.RawEvent) {
	c := e.classifier.Load()
	for _, ev := range evs {
		metrics.EventsAppended.WithLabelValues(c.CategoryOf(ev.Kind)).Inc()
	}
	if evicted := e.history.Append(c, evs...); evicted > 0 {
		metrics.EventsEvicted.Add(float64(evicted))
	}
	metrics.HistorySize.Set(float64(e.history.Len()))
}

// Clear empties the history and returns the new stream ID.
func (e *Engine) Clear() string {
	id := e.history.Clear()
	metrics.HistorySize.Set(0)
	metrics.PendingEntries.Set(0)
	return id
}

// Entries merges the full history and returns the rows f matches.
// The summary always covers every row. Row IDs count entries evicted by
// the history cap, so an entry keeps its ID for as long as it is held.
func (e *Engine) Entries(f projection.Filter) *View {
	id, base, events := e.history.Snapshot()
	v := e.build(events, base, f)
	v.StreamID = id
	metrics.PendingEntries.Set(float64(v.Summary.Pending))
	return v
}

// Inspect merges a caller-supplied stream without touching the history.
func (e *Engine) Inspect(events []event.RawEvent, f projection.Filter) *View {
	return e.build(events, 0, f)
}

func (e *Engine) build(events []event.RawEvent, base int, f projection.Filter) *View {
	start := time.Now()
	c := e.classifier.Load()

	res := correlate.Merge(c, events)
	for i := range res.Entries {
		res.Entries[i].ID += base
	}
	p := projection.New(c)
	all := p.Rows(res.Entries, projection.Filter{})

	rows := all
	if f != (projection.Filter{}) {
		rows = make([]projection.Row, 0, len(all))
		for _, r := range all {
			if f.Match(r) {
				rows = append(rows, r)
			}
		}
	}

	v := &View{
		Events:     len(events),
		Rows:       rows,
		Summary:    projection.Summarize(all),
		DurationMs: float64(time.Since(start).Microseconds()) / 1000,
	}

	metrics.MergesRun.Inc()
	metrics.ResponsesPaired.Add(float64(res.Paired))
	metrics.OrphanResponses.Add(float64(res.Orphans))
	metrics.MergeDuration.Observe(v.DurationMs)
	return v
}

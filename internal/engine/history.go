package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/inspector/internal/correlate"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
)

// History is the accumulated raw event stream of one panel. Correlation is
// re-run over a snapshot, never applied incrementally.
//
// When capped, History evicts whole entries, oldest first: the request and
// its response leave together, and base counts the entries gone so far.
// Merging the remaining stream yields the same entries as before with IDs
// lowered by exactly base, so base+ID stays a stable key within a stream.
type History struct {
	mu       sync.RWMutex
	streamID string
	events   []event.RawEvent
	base     int // entries evicted since the stream started
	max      int // 0 = unbounded
}

// NewHistory creates an empty history holding at most max events.
func NewHistory(max int) *History {
	return &History{streamID: uuid.New().String(), max: max}
}

// Append adds events in order and returns how many old events were evicted.
// p decides entry boundaries for eviction.
func (h *History) Append(p correlate.Pairing, evs ...event.RawEvent) (evicted int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, evs...)
	if h.max <= 0 || len(h.events) <= h.max {
		return 0
	}

	res := correlate.Merge(p, h.events)
	drop := make(map[int]bool)
	entries := 0
	for _, sp := range res.Spans {
		if len(h.events)-len(drop) <= h.max {
			break
		}
		drop[sp.Request] = true
		if sp.Response >= 0 {
			drop[sp.Response] = true
		}
		entries++
	}

	kept := make([]event.RawEvent, 0, len(h.events)-len(drop))
	for i, ev := range h.events {
		if !drop[i] {
			kept = append(kept, ev)
		}
	}
	h.events = kept
	h.base += entries
	return len(drop)
}

// Snapshot returns the stream ID, the ID offset of its first entry and a
// copy of the events.
func (h *History) Snapshot() (id string, base int, events []event.RawEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	events = make([]event.RawEvent, len(h.events))
	copy(events, h.events)
	return h.streamID, h.base, events
}

// Len returns the number of held events.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.events)
}

// Clear drops every event and starts a new stream ID, so renderers keyed on
// entry IDs know to discard their rows.
func (h *History) Clear() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = nil
	h.base = 0
	h.streamID = uuid.New().String()
	return h.streamID
}

// Rotate starts a new stream ID while keeping the events. Used when the
// tables change and entries may regroup.
func (h *History) Rotate() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.streamID = uuid.New().String()
	return h.streamID
}

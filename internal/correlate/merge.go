// Package correlate folds a flat event stream into logical entries by
// pairing opening events (a prompt sent, a tool called) with the event that
// closes them.
package correlate

import (
	"github.com/gyaneshwarpardhi/inspector/internal/config"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
)

// Pairing tells the merger which kinds open and close a pair.
// *classifier.Classifier satisfies it.
type Pairing interface {
	Opens(kind string) (pair string, ok bool)
	Closes(kind string) (pair string, ok bool)
}

// Key identifies one in-flight request. Tool is only set for the tool pair,
// so two tools running in the same session pair independently.
type Key struct {
	Pair      string
	SessionID string
	Tool      string
}

// KeyFor derives the correlation key for ev under pair.
// A missing sessionId collapses into the "" bucket.
func KeyFor(pair string, ev event.RawEvent) Key {
	k := Key{Pair: pair, SessionID: ev.String(event.FieldSessionID)}
	if pair == config.PairTool {
		k.Tool = ev.String(event.FieldTool)
	}
	return k
}

// Entry is one logical row: the event that opened it and, once matched,
// the event that closed it.
type Entry struct {
	ID       int
	Request  event.RawEvent
	Response *event.RawEvent
}

// Resolved reports whether a response has been attached.
func (e *Entry) Resolved() bool { return e.Response != nil }

// Span locates an entry's events in the merged stream. Response is -1
// while the entry is unresolved.
type Span struct {
	Request  int
	Response int
}

// Result is the outcome of one Merge pass.
type Result struct {
	Entries []Entry
	Spans   []Span // parallel to Entries
	Paired  int // closing events absorbed into an earlier entry
	Orphans int // closing events with nothing pending
	Pending int // opening entries still waiting at end of stream
}

// Merge runs a single pass over events in stream order.
//
// Closing events that match a pending key are absorbed into the pending
// entry; all other events create a new entry whose ID is its position in
// the output. An opening event whose key is already pending replaces the
// table slot, leaving the older entry unresolved.
func Merge(p Pairing, events []event.RawEvent) Result {
	res := Result{
		Entries: make([]Entry, 0, len(events)),
		Spans:   make([]Span, 0, len(events)),
	}
	pending := make(map[Key]int)

	for i := range events {
		ev := events[i]

		if pair, ok := p.Closes(ev.Kind); ok {
			key := KeyFor(pair, ev)
			if idx, found := pending[key]; found {
				resp := ev
				res.Entries[idx].Response = &resp
				res.Spans[idx].Response = i
				delete(pending, key)
				res.Paired++
				continue
			}
			res.Orphans++
		}

		idx := len(res.Entries)
		res.Entries = append(res.Entries, Entry{ID: idx, Request: ev})
		res.Spans = append(res.Spans, Span{Request: i, Response: -1})

		if pair, ok := p.Opens(ev.Kind); ok {
			pending[KeyFor(pair, ev)] = idx
		}
	}

	for _, e := range res.Entries {
		if _, ok := p.Opens(e.Request.Kind); ok && e.Response == nil {
			res.Pending++
		}
	}
	return res
}

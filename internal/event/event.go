package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingKind is returned when a wire event carries no type tag.
var ErrMissingKind = errors.New("event type is required")

// RawEvent is the canonical input model: one instrumentation record emitted
// by the host page. Fields holds every member other than the type tag and
// the timestamp; its shape depends entirely on Kind.
//
// A RawEvent is treated as immutable once constructed. Callers must not
// mutate Fields after handing the event to the correlator.
type RawEvent struct {
	Kind      string
	Timestamp *float64 // epoch milliseconds; nil means unknown
	Fields    map[string]interface{}
}

// New builds an event without a timestamp.
func New(kind string, fields map[string]interface{}) RawEvent {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return RawEvent{Kind: kind, Fields: fields}
}

// At returns a copy of ev stamped with ms.
func (ev RawEvent) At(ms float64) RawEvent {
	ev.Timestamp = &ms
	return ev
}

// Value returns the raw field value and whether the field is present.
func (ev RawEvent) Value(name string) (interface{}, bool) {
	v, ok := ev.Fields[name]
	return v, ok
}

// String returns the field as text. Missing and null fields yield "".
func (ev RawEvent) String(name string) string {
	return asString(ev.Fields[name])
}

// Time returns the timestamp and whether it is known.
func (ev RawEvent) Time() (float64, bool) {
	if ev.Timestamp == nil {
		return 0, false
	}
	return *ev.Timestamp, true
}

// UnmarshalJSON decodes the flat wire object. The kind is read from "type",
// falling back to "kind". A non-numeric timestamp is treated as unknown.
func (ev *RawEvent) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("event must be a JSON object")
	}

	kindKey := "type"
	kind, _ := m[kindKey].(string)
	if kind == "" {
		kindKey = "kind"
		kind, _ = m[kindKey].(string)
	}
	if kind == "" {
		return ErrMissingKind
	}
	delete(m, kindKey)

	var ts *float64
	if raw, ok := m["timestamp"]; ok {
		if f, ok := toFloat64(raw); ok {
			ts = &f
		}
		delete(m, "timestamp")
	}

	*ev = RawEvent{Kind: kind, Timestamp: ts, Fields: m}
	return nil
}

// MarshalJSON encodes the event back into its flat wire form.
func (ev RawEvent) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(ev.Fields)+2)
	for k, v := range ev.Fields {
		m[k] = v
	}
	m["type"] = ev.Kind
	if ev.Timestamp != nil {
		m["timestamp"] = *ev.Timestamp
	}
	return json.Marshal(m)
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// toFloat64 coerces a numeric value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Package classifier maps event kinds to display categories, colors, names
// and statuses. Every function is pure and total: unknown kinds fall back to
// the System category and the palette's unknown color.
package classifier

import (
	"time"
	_ "time/tzdata" // display.time_zone must resolve on hosts without zoneinfo
	"unicode/utf8"

	"github.com/gyaneshwarpardhi/inspector/internal/config"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
)

// Status is a short outcome label with its color.
type Status struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Classifier holds the lookup tables compiled from config.Tables.
// It is immutable once built; hot-reload creates a new Classifier and swaps it.
type Classifier struct {
	kinds          map[string]config.KindDef
	categoryColors map[string]string
	palette        config.Palette
	display        config.DisplayConf
	loc            *time.Location
}

// New compiles tables into a Classifier. Tables are expected to have passed
// config.Validate; an unloadable time zone falls back to UTC.
func New(t config.Tables) *Classifier {
	c := &Classifier{
		kinds:          make(map[string]config.KindDef, len(t.Kinds)),
		categoryColors: make(map[string]string, len(t.Categories)),
		palette:        t.Palette,
		display:        t.Display,
		loc:            time.UTC,
	}
	for _, k := range t.Kinds {
		c.kinds[k.Kind] = k
	}
	for _, cat := range t.Categories {
		c.categoryColors[cat.Name] = cat.Color
	}
	if loc, err := time.LoadLocation(t.Display.TimeZone); err == nil {
		c.loc = loc
	}
	return c
}

// Default returns a Classifier over the built-in tables.
func Default() *Classifier {
	return New(config.Default().Tables)
}

// CategoryOf returns the category of kind, or System when unknown.
func (c *Classifier) CategoryOf(kind string) string {
	if k, ok := c.kinds[kind]; ok && k.Category != "" {
		return k.Category
	}
	return config.CategorySystem
}

// ColorOf returns the color of kind, or the palette's unknown color.
func (c *Classifier) ColorOf(kind string) string {
	if k, ok := c.kinds[kind]; ok && k.Color != "" {
		return k.Color
	}
	return c.palette.Unknown
}

// CategoryColor returns the color assigned to a category.
func (c *Classifier) CategoryColor(category string) string {
	if col, ok := c.categoryColors[category]; ok {
		return col
	}
	return c.palette.Unknown
}

// Opens returns the pair type kind opens, if any.
func (c *Classifier) Opens(kind string) (string, bool) {
	k, ok := c.kinds[kind]
	return k.Opens, ok && k.Opens != ""
}

// Closes returns the pair type kind closes, if any.
func (c *Classifier) Closes(kind string) (string, bool) {
	k, ok := c.kinds[kind]
	return k.Closes, ok && k.Closes != ""
}

// Label returns the relabeled type of an opening kind, or the kind itself.
func (c *Classifier) Label(kind string) string {
	if k, ok := c.kinds[kind]; ok && k.Label != "" {
		return k.Label
	}
	return kind
}

// Palette returns the status colors.
func (c *Classifier) Palette() config.Palette { return c.palette }

// FormatTime renders an epoch-millisecond instant in the configured zone.
func (c *Classifier) FormatTime(ms float64) string {
	return time.UnixMilli(int64(ms)).In(c.loc).Format(c.display.TimeFormat)
}

// DisplayNameOf extracts a human label for ev.
func (c *Classifier) DisplayNameOf(ev event.RawEvent) string {
	switch p := event.Decode(ev).(type) {
	case event.Session:
		name := "Session"
		if p.SessionID != "" {
			name += " " + truncate(p.SessionID, c.display.SessionIDChars)
		}
		if p.Destroyed {
			name += " closed"
		}
		return name
	case event.Prompt:
		return truncate(p.Input, c.display.TruncateAt)
	case event.Completion:
		return truncate(p.Result, c.display.TruncateAt)
	case event.Failure:
		if p.Error == "" {
			return "Unknown error"
		}
		return truncate(p.Error, c.display.TruncateAt)
	case event.ToolCall:
		return p.Tool
	case event.ToolResult:
		return p.Tool
	case event.WebMCP:
		return p.ToolName
	case event.Navigation:
		if p.URL == "" {
			return ev.Kind
		}
		return truncate(p.URL, c.display.TruncateAt)
	default:
		return ev.Kind
	}
}

// StatusOf derives the outcome label for a single event.
func (c *Classifier) StatusOf(ev event.RawEvent) Status {
	pal := c.palette
	if k, ok := c.kinds[ev.Kind]; ok && k.Error {
		return Status{Label: "error", Color: pal.Error}
	}
	switch p := event.Decode(ev).(type) {
	case event.Session:
		if p.Destroyed {
			return Status{Label: "destroyed", Color: pal.Muted}
		}
		return Status{Label: "created", Color: pal.Success}
	case event.Prompt:
		if p.Streaming {
			return Status{Label: "streaming", Color: pal.Info}
		}
		return Status{Label: "sent", Color: pal.Info}
	case event.Completion:
		return Status{Label: "ok", Color: pal.Success}
	case event.Failure:
		return Status{Label: "error", Color: pal.Error}
	case event.ToolCall:
		return Status{Label: "called", Color: pal.Info}
	case event.ToolResult:
		switch {
		case p.Failed():
			return Status{Label: "error", Color: pal.Error}
		case !p.HasResult:
			return Status{Label: "empty", Color: pal.Warning}
		default:
			return Status{Label: "ok", Color: pal.Success}
		}
	case event.WebMCP:
		switch p.Op {
		case event.WebMCPRegister:
			return Status{Label: "registered", Color: pal.Success}
		case event.WebMCPUnregister:
			return Status{Label: "unregistered", Color: pal.Muted}
		case event.WebMCPCall:
			return Status{Label: "called", Color: pal.Info}
		default:
			if p.Failed() {
				return Status{Label: "error", Color: pal.Error}
			}
			return Status{Label: "ok", Color: pal.Success}
		}
	case event.Navigation:
		if p.Reload {
			return Status{Label: "reloaded", Color: pal.Info}
		}
		return Status{Label: "navigated", Color: pal.Info}
	default:
		return Status{Label: "info", Color: pal.Muted}
	}
}

// IsError reports whether ev is an error kind or a tool result carrying an error.
func (c *Classifier) IsError(ev event.RawEvent) bool {
	if k, ok := c.kinds[ev.Kind]; ok && k.Error {
		return true
	}
	switch p := event.Decode(ev).(type) {
	case event.ToolResult:
		return p.Failed()
	case event.WebMCP:
		return p.Op == event.WebMCPResult && p.Failed()
	}
	return false
}

func truncate(s string, n int) string {
	if n < 1 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}

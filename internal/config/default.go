package config

import "github.com/gyaneshwarpardhi/inspector/internal/event"

// Category names. The set is closed.
const (
	CategoryAI     = "AI"
	CategoryTool   = "Tool"
	CategoryWebMCP = "WebMCP"
	CategoryEvent  = "Event"
	CategorySystem = "System"
)

// Categories lists every valid category in display order.
var Categories = []string{CategoryAI, CategoryTool, CategoryWebMCP, CategoryEvent, CategorySystem}

// Pair types shared by opening and closing kinds.
const (
	PairPrompt = "prompt"
	PairStream = "stream"
	PairTool   = "tool"
)

// DefaultTables returns the built-in tables that ship with the inspector.
func DefaultTables() Tables {
	return Tables{
		Categories: []CategoryDef{
			{Name: CategoryAI, Color: "#8b5cf6"},
			{Name: CategoryTool, Color: "#f59e0b"},
			{Name: CategoryWebMCP, Color: "#06b6d4"},
			{Name: CategoryEvent, Color: "#3b82f6"},
			{Name: CategorySystem, Color: "#6b7280"},
		},
		Kinds: []KindDef{
			{Kind: event.KindSessionCreated, Category: CategoryAI, Color: "#a78bfa"},
			{Kind: event.KindSessionDestroyed, Category: CategoryAI, Color: "#7c3aed"},
			{Kind: event.KindPromptSent, Category: CategoryAI, Color: "#8b5cf6", Opens: PairPrompt, Label: "PROMPT"},
			{Kind: event.KindPromptResponse, Category: CategoryAI, Color: "#22c55e", Closes: PairPrompt},
			{Kind: event.KindPromptError, Category: CategoryAI, Color: "#ef4444", Closes: PairPrompt, Error: true},
			{Kind: event.KindStreamStart, Category: CategoryAI, Color: "#6366f1", Opens: PairStream, Label: "STREAM"},
			{Kind: event.KindStreamEnd, Category: CategoryAI, Color: "#16a34a", Closes: PairStream},
			{Kind: event.KindStreamError, Category: CategoryAI, Color: "#dc2626", Closes: PairStream, Error: true},
			{Kind: event.KindToolCall, Category: CategoryTool, Color: "#f59e0b", Opens: PairTool, Label: "TOOL"},
			{Kind: event.KindToolResultAI, Category: CategoryTool, Color: "#d97706", Closes: PairTool},
			{Kind: event.KindWebMCPToolRegistered, Category: CategoryWebMCP, Color: "#06b6d4"},
			{Kind: event.KindWebMCPToolUnregistered, Category: CategoryWebMCP, Color: "#0e7490"},
			{Kind: event.KindWebMCPToolCall, Category: CategoryWebMCP, Color: "#0891b2"},
			{Kind: event.KindWebMCPToolResult, Category: CategoryWebMCP, Color: "#155e75"},
			{Kind: event.KindPageNavigation, Category: CategoryEvent, Color: "#3b82f6"},
			{Kind: event.KindPageReload, Category: CategoryEvent, Color: "#2563eb"},
			{Kind: event.KindToolActivated, Category: CategoryEvent, Color: "#60a5fa"},
			{Kind: event.KindPanelConnected, Category: CategorySystem, Color: "#9ca3af"},
		},
		Palette: Palette{
			Success: "#22c55e",
			Warning: "#f59e0b",
			Error:   "#ef4444",
			Info:    "#3b82f6",
			Muted:   "#9ca3af",
			Unknown: "#6b7280",
		},
		Display: DisplayConf{
			TruncateAt:     60,
			SessionIDChars: 8,
			TimeZone:       "UTC",
			TimeFormat:     "15:04:05.000",
		},
	}
}

// Default returns a complete Config built from DefaultTables.
func Default() *Config {
	cfg := &Config{Version: "v1", Tables: DefaultTables()}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills zero values and overlays file tables onto the
// built-in ones. Kinds and categories from the file replace built-ins with
// the same name and append otherwise.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "v1"
	}
	if cfg.Server.MaxBatch == 0 {
		cfg.Server.MaxBatch = 500
	}

	def := DefaultTables()
	t := &cfg.Tables
	t.Categories = overlay(def.Categories, t.Categories, func(c CategoryDef) string { return c.Name })
	t.Kinds = overlay(def.Kinds, t.Kinds, func(k KindDef) string { return k.Kind })

	p := &t.Palette
	fill(&p.Success, def.Palette.Success)
	fill(&p.Warning, def.Palette.Warning)
	fill(&p.Error, def.Palette.Error)
	fill(&p.Info, def.Palette.Info)
	fill(&p.Muted, def.Palette.Muted)
	fill(&p.Unknown, def.Palette.Unknown)

	d := &t.Display
	if d.TruncateAt == 0 {
		d.TruncateAt = def.Display.TruncateAt
	}
	if d.SessionIDChars == 0 {
		d.SessionIDChars = def.Display.SessionIDChars
	}
	fill(&d.TimeZone, def.Display.TimeZone)
	fill(&d.TimeFormat, def.Display.TimeFormat)
}

func overlay[T any](base, over []T, key func(T) string) []T {
	out := make([]T, 0, len(base)+len(over))
	idx := make(map[string]int, len(base))
	for _, b := range base {
		idx[key(b)] = len(out)
		out = append(out, b)
	}
	for _, o := range over {
		if i, ok := idx[key(o)]; ok {
			out[i] = o
			continue
		}
		idx[key(o)] = len(out)
		out = append(out, o)
	}
	return out
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

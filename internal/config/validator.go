package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Validate checks the config for:
//   - Categories outside the fixed set
//   - Empty or duplicate kinds, kinds pointing at unknown categories
//   - Kinds that both open and close, relabels on non-opening kinds
//   - Pair types that are opened but never closed (or the reverse)
//   - Missing palette slots and unusable display settings
func Validate(cfg *Config) error {
	var errs []string
	t := &cfg.Tables

	valid := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		valid[c] = true
	}

	for i, c := range t.Categories {
		if !valid[c.Name] {
			errs = append(errs, fmt.Sprintf("categories[%d]: unknown category %q (want one of %s)", i, c.Name, strings.Join(Categories, ", ")))
		}
		if c.Color == "" {
			errs = append(errs, fmt.Sprintf("category %s: color is required", c.Name))
		}
	}

	seen := make(map[string]int)
	opened := make(map[string]bool)
	closed := make(map[string]bool)
	for i, k := range t.Kinds {
		if k.Kind == "" {
			errs = append(errs, fmt.Sprintf("kinds[%d]: kind is required", i))
			continue
		}
		if prev, ok := seen[k.Kind]; ok {
			errs = append(errs, fmt.Sprintf("duplicate kind %q (kinds[%d] and kinds[%d])", k.Kind, prev, i))
		} else {
			seen[k.Kind] = i
		}
		if !valid[k.Category] {
			errs = append(errs, fmt.Sprintf("kind %s: unknown category %q", k.Kind, k.Category))
		}
		if k.Opens != "" && k.Closes != "" {
			errs = append(errs, fmt.Sprintf("kind %s: only one of opens/closes may be set", k.Kind))
		}
		if k.Label != "" && k.Opens == "" {
			errs = append(errs, fmt.Sprintf("kind %s: label is only allowed on opening kinds", k.Kind))
		}
		if k.Opens != "" {
			opened[k.Opens] = true
		}
		if k.Closes != "" {
			closed[k.Closes] = true
		}
	}
	for _, p := range sortedKeys(opened) {
		if !closed[p] {
			errs = append(errs, fmt.Sprintf("pair %q is opened but no kind closes it", p))
		}
	}
	for _, p := range sortedKeys(closed) {
		if !opened[p] {
			errs = append(errs, fmt.Sprintf("pair %q is closed but no kind opens it", p))
		}
	}

	p := t.Palette
	for _, slot := range []struct{ name, color string }{
		{"success", p.Success}, {"warning", p.Warning}, {"error", p.Error},
		{"info", p.Info}, {"muted", p.Muted}, {"unknown", p.Unknown},
	} {
		if slot.color == "" {
			errs = append(errs, fmt.Sprintf("palette.%s is required", slot.name))
		}
	}

	if t.Display.TruncateAt < 1 {
		errs = append(errs, "display.truncate_at must be positive")
	}
	if t.Display.SessionIDChars < 1 {
		errs = append(errs, "display.session_id_chars must be positive")
	}
	if _, err := time.LoadLocation(t.Display.TimeZone); err != nil {
		errs = append(errs, fmt.Sprintf("display.time_zone %q: %v", t.Display.TimeZone, err))
	}
	if cfg.Server.MaxEvents < 0 {
		errs = append(errs, "server.max_events must not be negative")
	}
	if cfg.Server.MaxBatch < 1 {
		errs = append(errs, "server.max_batch must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

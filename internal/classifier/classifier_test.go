package classifier_test

import (
	"strings"
	"testing"

	"github.com/gyaneshwarpardhi/inspector/internal/classifier"
	"github.com/gyaneshwarpardhi/inspector/internal/config"
	"github.com/gyaneshwarpardhi/inspector/internal/event"
)

func ev(kind string, kv ...interface{}) event.RawEvent {
	fields := make(map[string]interface{})
	for i := 0; i < len(kv)-1; i += 2 {
		fields[kv[i].(string)] = kv[i+1]
	}
	return event.New(kind, fields)
}

func TestCategoryOf(t *testing.T) {
	c := classifier.Default()
	cases := map[string]string{
		event.KindPromptSent:           config.CategoryAI,
		event.KindSessionCreated:       config.CategoryAI,
		event.KindToolCall:             config.CategoryTool,
		event.KindToolResultAI:         config.CategoryTool,
		event.KindWebMCPToolRegistered: config.CategoryWebMCP,
		event.KindPageNavigation:       config.CategoryEvent,
		event.KindPanelConnected:       config.CategorySystem,
		"SOMETHING_NEW":                config.CategorySystem,
		"":                             config.CategorySystem,
	}
	for kind, want := range cases {
		if got := c.CategoryOf(kind); got != want {
			t.Errorf("CategoryOf(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestColorOf_UnknownFallsBack(t *testing.T) {
	c := classifier.Default()
	pal := c.Palette()
	if got := c.ColorOf("SOMETHING_NEW"); got != pal.Unknown {
		t.Errorf("ColorOf(unknown) = %q, want %q", got, pal.Unknown)
	}
	if got := c.ColorOf(event.KindToolCall); got == "" || got == pal.Unknown {
		t.Errorf("ColorOf(TOOL_CALL) = %q, want a dedicated color", got)
	}
	if got := c.CategoryColor("Nope"); got != pal.Unknown {
		t.Errorf("CategoryColor(unknown) = %q", got)
	}
}

func TestPairingTables(t *testing.T) {
	c := classifier.Default()
	if p, ok := c.Opens(event.KindToolCall); !ok || p != config.PairTool {
		t.Errorf("Opens(TOOL_CALL) = %q,%v", p, ok)
	}
	if p, ok := c.Closes(event.KindPromptError); !ok || p != config.PairPrompt {
		t.Errorf("Closes(PROMPT_ERROR) = %q,%v", p, ok)
	}
	if _, ok := c.Opens(event.KindToolResultAI); ok {
		t.Error("TOOL_RESULT_AI must not open")
	}
	if _, ok := c.Closes("SOMETHING_NEW"); ok {
		t.Error("unknown kind must not close")
	}
	if got := c.Label(event.KindPromptSent); got != "PROMPT" {
		t.Errorf("Label(PROMPT_SENT) = %q", got)
	}
	if got := c.Label(event.KindPromptResponse); got != event.KindPromptResponse {
		t.Errorf("Label(PROMPT_RESPONSE) = %q", got)
	}
}

func TestDisplayNameOf(t *testing.T) {
	c := classifier.Default()
	long := strings.Repeat("x", 61)
	tests := []struct {
		name string
		ev   event.RawEvent
		want string
	}{
		{"session created", ev(event.KindSessionCreated, "sessionId", "0123456789abcdef"), "Session 01234567…"},
		{"short session", ev(event.KindSessionCreated, "sessionId", "abc"), "Session abc"},
		{"session destroyed", ev(event.KindSessionDestroyed, "sessionId", "abc"), "Session abc closed"},
		{"prompt input", ev(event.KindPromptSent, "input", "hi"), "hi"},
		{"prompt truncated", ev(event.KindStreamStart, "input", long), strings.Repeat("x", 60) + "…"},
		{"prompt exactly 60", ev(event.KindPromptSent, "input", long[:60]), long[:60]},
		{"response result", ev(event.KindPromptResponse, "result", "hello"), "hello"},
		{"stream end truncated", ev(event.KindStreamEnd, "result", long), strings.Repeat("x", 60) + "…"},
		{"error text", ev(event.KindPromptError, "error", "quota"), "quota"},
		{"error fallback", ev(event.KindStreamError), "Unknown error"},
		{"tool call", ev(event.KindToolCall, "tool", "search"), "search"},
		{"tool result", ev(event.KindToolResultAI, "tool", "search"), "search"},
		{"webmcp", ev(event.KindWebMCPToolRegistered, "toolName", "addToCart"), "addToCart"},
		{"navigation", ev(event.KindPageNavigation, "url", "https://shop.test/"), "https://shop.test/"},
		{"unknown", ev("CUSTOM"), "CUSTOM"},
		{"multibyte truncation", ev(event.KindPromptSent, "input", strings.Repeat("é", 61)), strings.Repeat("é", 60) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.DisplayNameOf(tt.ev); got != tt.want {
				t.Errorf("DisplayNameOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	c := classifier.Default()
	pal := c.Palette()
	tests := []struct {
		name string
		ev   event.RawEvent
		want classifier.Status
	}{
		{"tool result error", ev(event.KindToolResultAI, "error", "denied", "result", "x"), classifier.Status{Label: "error", Color: pal.Error}},
		{"tool result empty", ev(event.KindToolResultAI), classifier.Status{Label: "empty", Color: pal.Warning}},
		{"tool result ok", ev(event.KindToolResultAI, "result", map[string]interface{}{}), classifier.Status{Label: "ok", Color: pal.Success}},
		{"tool result empty error string", ev(event.KindToolResultAI, "error", "", "result", 1), classifier.Status{Label: "ok", Color: pal.Success}},
		{"prompt error", ev(event.KindPromptError, "error", "x"), classifier.Status{Label: "error", Color: pal.Error}},
		{"prompt response", ev(event.KindPromptResponse), classifier.Status{Label: "ok", Color: pal.Success}},
		{"prompt sent", ev(event.KindPromptSent), classifier.Status{Label: "sent", Color: pal.Info}},
		{"stream start", ev(event.KindStreamStart), classifier.Status{Label: "streaming", Color: pal.Info}},
		{"session created", ev(event.KindSessionCreated), classifier.Status{Label: "created", Color: pal.Success}},
		{"webmcp unregistered", ev(event.KindWebMCPToolUnregistered), classifier.Status{Label: "unregistered", Color: pal.Muted}},
		{"webmcp result error", ev(event.KindWebMCPToolResult, "error", "x"), classifier.Status{Label: "error", Color: pal.Error}},
		{"unknown", ev("CUSTOM"), classifier.Status{Label: "info", Color: pal.Muted}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.StatusOf(tt.ev); got != tt.want {
				t.Errorf("StatusOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsError(t *testing.T) {
	c := classifier.Default()
	tests := []struct {
		name string
		ev   event.RawEvent
		want bool
	}{
		{"prompt error kind", ev(event.KindPromptError), true},
		{"stream error kind", ev(event.KindStreamError, "error", ""), true},
		{"tool result with error", ev(event.KindToolResultAI, "error", "boom"), true},
		{"tool result empty error", ev(event.KindToolResultAI, "error", ""), false},
		{"tool result without error", ev(event.KindToolResultAI, "result", "ok"), false},
		{"tool call with error field", ev(event.KindToolCall, "error", "boom"), false},
		{"prompt response", ev(event.KindPromptResponse), false},
		{"webmcp result with error", ev(event.KindWebMCPToolResult, "toolName", "t", "error", "boom"), true},
		{"webmcp result ok", ev(event.KindWebMCPToolResult, "toolName", "t", "result", "done"), false},
		{"webmcp call with error field", ev(event.KindWebMCPToolCall, "error", "boom"), false},
		{"unknown", ev("CUSTOM", "error", "boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsError(tt.ev); got != tt.want {
				t.Errorf("IsError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_CustomTables(t *testing.T) {
	tables := config.Default().Tables
	tables.Kinds = append(tables.Kinds, config.KindDef{Kind: "JOB_FAILED", Category: config.CategoryEvent, Color: "red", Error: true})
	tables.Display.TimeZone = "Asia/Kolkata"
	c := classifier.New(tables)

	if got := c.CategoryOf("JOB_FAILED"); got != config.CategoryEvent {
		t.Errorf("CategoryOf(JOB_FAILED) = %q", got)
	}
	if !c.IsError(ev("JOB_FAILED")) {
		t.Error("configured error kind should be an error")
	}
	if got := c.FormatTime(0); got != "05:30:00.000" {
		t.Errorf("FormatTime(0) = %q, want 05:30:00.000", got)
	}
}

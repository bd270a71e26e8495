package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inspector.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func findKind(t *testing.T, cfg *Config, kind string) KindDef {
	t.Helper()
	for _, k := range cfg.Tables.Kinds {
		if k.Kind == kind {
			return k
		}
	}
	t.Fatalf("kind %s not found", kind)
	return KindDef{}
}

func TestNewLoader_Defaults(t *testing.T) {
	l, err := NewLoader("")
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := findKind(t, cfg, "TOOL_CALL"); got.Opens != PairTool {
		t.Errorf("TOOL_CALL opens %q, want %q", got.Opens, PairTool)
	}
	if cfg.Server.MaxBatch != 500 {
		t.Errorf("MaxBatch = %d, want 500", cfg.Server.MaxBatch)
	}
	if _, err := l.Watch(); err == nil {
		t.Error("Watch without a file should fail")
	}
}

func TestNewLoader_OverlaysFileTables(t *testing.T) {
	path := writeConfig(t, `
version: v2
server:
  max_events: 1000
tables:
  kinds:
    - kind: TOOL_CALL
      category: Tool
      color: "#000000"
      opens: tool
      label: CALL
    - kind: CUSTOM_PING
      category: Event
      color: "#123456"
  palette:
    warning: orange
  display:
    truncate_at: 20
`)
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()
	if cfg.Version != "v2" || cfg.Server.MaxEvents != 1000 {
		t.Errorf("unexpected header %+v", cfg)
	}
	if got := findKind(t, cfg, "TOOL_CALL"); got.Label != "CALL" || got.Color != "#000000" {
		t.Errorf("TOOL_CALL not overridden: %+v", got)
	}
	if got := findKind(t, cfg, "CUSTOM_PING"); got.Category != CategoryEvent {
		t.Errorf("CUSTOM_PING not appended: %+v", got)
	}
	if got := findKind(t, cfg, "PROMPT_SENT"); got.Opens != PairPrompt {
		t.Errorf("built-in PROMPT_SENT lost: %+v", got)
	}
	if cfg.Tables.Palette.Warning != "orange" || cfg.Tables.Palette.Error == "" {
		t.Errorf("palette not merged: %+v", cfg.Tables.Palette)
	}
	if cfg.Tables.Display.TruncateAt != 20 || cfg.Tables.Display.SessionIDChars != 8 {
		t.Errorf("display not merged: %+v", cfg.Tables.Display)
	}
}

func TestNewLoader_Errors(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := NewLoader(writeConfig(t, "tables: [")); err == nil {
		t.Error("expected parse error")
	}
	_, err := NewLoader(writeConfig(t, `
tables:
  kinds:
    - kind: ODD
      category: Nope
`))
	if err == nil || !strings.Contains(err.Error(), `unknown category "Nope"`) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestReload_InvokesCallbacksAndKeepsOldOnError(t *testing.T) {
	path := writeConfig(t, "version: v1\n")
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	var got []string
	var failures []error
	l.OnChange(func(c *Config) { got = append(got, c.Version) })
	l.OnError(func(err error) { failures = append(failures, err) })

	if err := os.WriteFile(path, []byte("version: v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if len(got) != 1 || got[0] != "v2" {
		t.Errorf("callbacks = %v, want [v2]", got)
	}

	if err := os.WriteFile(path, []byte("tables: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if l.Config().Version != "v2" {
		t.Errorf("config replaced on failed reload: %s", l.Config().Version)
	}
	if len(got) != 1 {
		t.Errorf("callback fired on failed reload")
	}
	if len(failures) != 1 || !strings.Contains(failures[0].Error(), "parse config") {
		t.Errorf("error callbacks = %v, want one parse failure", failures)
	}
}

func TestWatch_ReportsFailedReload(t *testing.T) {
	path := writeConfig(t, "version: v1\n")
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	failed := make(chan error, 1)
	l.OnError(func(err error) {
		select {
		case failed <- err:
		default:
		}
	})

	stop, err := l.Watch()
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("tables: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-failed:
		if !strings.Contains(err.Error(), "parse config") {
			t.Errorf("watcher error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the failed reload")
	}
	if l.Config().Version != "v1" {
		t.Errorf("config replaced on failed reload: %s", l.Config().Version)
	}
}

func TestNewLoader_ShippedConfig(t *testing.T) {
	l, err := NewLoader(filepath.Join("..", "..", "configs", "inspector.yaml"))
	if err != nil {
		t.Fatalf("shipped config: %v", err)
	}
	cfg := l.Config()
	if got := findKind(t, cfg, "AGENT_STEP"); got.Opens != "step" || got.Label != "STEP" {
		t.Errorf("AGENT_STEP = %+v", got)
	}
	if got := findKind(t, cfg, "PROMPT_SENT"); got.Opens != PairPrompt {
		t.Errorf("built-in PROMPT_SENT lost: %+v", got)
	}
	if cfg.Tables.Display.TruncateAt != 80 || cfg.Tables.Display.SessionIDChars != 8 {
		t.Errorf("display = %+v", cfg.Tables.Display)
	}
}

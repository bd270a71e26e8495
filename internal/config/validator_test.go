package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name: "empty kind",
			mutate: func(c *Config) {
				c.Tables.Kinds = append(c.Tables.Kinds, KindDef{Category: CategoryAI})
			},
			wantErr: "kind is required",
		},
		{
			name: "duplicate kind",
			mutate: func(c *Config) {
				c.Tables.Kinds = append(c.Tables.Kinds, c.Tables.Kinds[0])
			},
			wantErr: "duplicate kind",
		},
		{
			name: "opens and closes",
			mutate: func(c *Config) {
				c.Tables.Kinds = append(c.Tables.Kinds, KindDef{Kind: "X", Category: CategoryAI, Opens: PairTool, Closes: PairTool})
			},
			wantErr: "only one of opens/closes",
		},
		{
			name: "label on closing kind",
			mutate: func(c *Config) {
				c.Tables.Kinds = append(c.Tables.Kinds, KindDef{Kind: "X", Category: CategoryAI, Closes: PairTool, Label: "X"})
			},
			wantErr: "label is only allowed",
		},
		{
			name: "unclosed pair",
			mutate: func(c *Config) {
				c.Tables.Kinds = append(c.Tables.Kinds, KindDef{Kind: "X", Category: CategoryAI, Opens: "job"})
			},
			wantErr: `pair "job" is opened`,
		},
		{
			name: "unknown category def",
			mutate: func(c *Config) {
				c.Tables.Categories = append(c.Tables.Categories, CategoryDef{Name: "Misc", Color: "#fff"})
			},
			wantErr: `unknown category "Misc"`,
		},
		{
			name:    "missing palette slot",
			mutate:  func(c *Config) { c.Tables.Palette.Warning = "" },
			wantErr: "palette.warning is required",
		},
		{
			name:    "bad time zone",
			mutate:  func(c *Config) { c.Tables.Display.TimeZone = "Mars/Olympus" },
			wantErr: "display.time_zone",
		},
		{
			name:    "negative history",
			mutate:  func(c *Config) { c.Server.MaxEvents = -1 },
			wantErr: "max_events",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

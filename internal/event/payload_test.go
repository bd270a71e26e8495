package event

import "testing"

func TestDecode_Variants(t *testing.T) {
	tests := []struct {
		name string
		ev   RawEvent
		want Payload
	}{
		{
			name: "session created",
			ev:   New(KindSessionCreated, map[string]interface{}{"sessionId": "abc"}),
			want: Session{SessionID: "abc"},
		},
		{
			name: "session destroyed",
			ev:   New(KindSessionDestroyed, map[string]interface{}{"sessionId": "abc"}),
			want: Session{SessionID: "abc", Destroyed: true},
		},
		{
			name: "stream start",
			ev:   New(KindStreamStart, map[string]interface{}{"sessionId": "s", "input": "go"}),
			want: Prompt{SessionID: "s", Input: "go", Streaming: true},
		},
		{
			name: "prompt response",
			ev:   New(KindPromptResponse, map[string]interface{}{"result": "ok"}),
			want: Completion{Result: "ok"},
		},
		{
			name: "stream error",
			ev:   New(KindStreamError, map[string]interface{}{"error": "boom"}),
			want: Failure{Error: "boom", Streaming: true},
		},
		{
			name: "navigation",
			ev:   New(KindPageReload, map[string]interface{}{"url": "https://x.test"}),
			want: Navigation{URL: "https://x.test", Reload: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.ev); got != tt.want {
				t.Errorf("Decode() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecode_ToolResult(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]interface{}
		hasResult  bool
		wantFailed bool
	}{
		{"ok", map[string]interface{}{"result": "r"}, true, false},
		{"missing result", map[string]interface{}{}, false, false},
		{"null result", map[string]interface{}{"result": nil}, false, false},
		{"string error", map[string]interface{}{"error": "bad"}, false, true},
		{"empty error", map[string]interface{}{"error": "", "result": 1}, true, false},
		{"object error", map[string]interface{}{"error": map[string]interface{}{"code": 1}}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Decode(New(KindToolResultAI, tt.fields)).(ToolResult)
			if !ok {
				t.Fatalf("expected ToolResult")
			}
			if p.HasResult != tt.hasResult {
				t.Errorf("HasResult = %v, want %v", p.HasResult, tt.hasResult)
			}
			if p.Failed() != tt.wantFailed {
				t.Errorf("Failed() = %v, want %v", p.Failed(), tt.wantFailed)
			}
		})
	}
}

func TestDecode_Unknown(t *testing.T) {
	p := Decode(New("CUSTOM_THING", nil))
	u, ok := p.(Unknown)
	if !ok {
		t.Fatalf("expected Unknown, got %T", p)
	}
	if u.Kind != "CUSTOM_THING" {
		t.Errorf("kind = %q", u.Kind)
	}
}

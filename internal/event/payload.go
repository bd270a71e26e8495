package event

// Payload is the typed view of a RawEvent's fields. Decode picks the
// variant from the kind; kinds it does not know decode to Unknown.
type Payload interface {
	payload()
}

// Session covers SESSION_CREATED and SESSION_DESTROYED.
type Session struct {
	SessionID string
	Destroyed bool
}

// Prompt is an opening AI request (PROMPT_SENT, STREAM_START).
type Prompt struct {
	SessionID string
	Input     string
	Options   interface{}
	Streaming bool
}

// Completion is a successful AI response (PROMPT_RESPONSE, STREAM_END).
type Completion struct {
	SessionID string
	Result    string
	Streaming bool
}

// Failure is an AI error (PROMPT_ERROR, STREAM_ERROR).
type Failure struct {
	SessionID string
	Error     string
	Streaming bool
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	SessionID string
	Tool      string
	Args      interface{}
}

// ToolResult is the outcome handed back to the model for a ToolCall.
// HasResult is false when the result member is missing or null.
type ToolResult struct {
	SessionID string
	Tool      string
	Result    interface{}
	HasResult bool
	Error     interface{}
}

// Failed reports whether the result carries a non-empty error.
func (r ToolResult) Failed() bool { return nonEmpty(r.Error) }

// WebMCPOp names the lifecycle step of a WebMCP tool event.
type WebMCPOp string

const (
	WebMCPRegister   WebMCPOp = "register"
	WebMCPUnregister WebMCPOp = "unregister"
	WebMCPCall       WebMCPOp = "call"
	WebMCPResult     WebMCPOp = "result"
)

// WebMCP covers tools a page exposes through navigator.modelContext.
type WebMCP struct {
	Op       WebMCPOp
	ToolName string
	Args     interface{}
	Result   interface{}
	Error    interface{}
}

// Failed reports whether a WebMCP result carries a non-empty error.
func (w WebMCP) Failed() bool { return nonEmpty(w.Error) }

// Navigation covers page navigation and reloads.
type Navigation struct {
	URL    string
	Reload bool
}

// Unknown is any kind without a dedicated variant.
type Unknown struct {
	Kind   string
	Fields map[string]interface{}
}

func (Session) payload()    {}
func (Prompt) payload()     {}
func (Completion) payload() {}
func (Failure) payload()    {}
func (ToolCall) payload()   {}
func (ToolResult) payload() {}
func (WebMCP) payload()     {}
func (Navigation) payload() {}
func (Unknown) payload()    {}

// Decode returns the typed payload for ev. It never fails: absent or
// mistyped fields decode to zero values.
func Decode(ev RawEvent) Payload {
	sid := ev.String(FieldSessionID)
	switch ev.Kind {
	case KindSessionCreated:
		return Session{SessionID: sid}
	case KindSessionDestroyed:
		return Session{SessionID: sid, Destroyed: true}
	case KindPromptSent, KindStreamStart:
		return Prompt{
			SessionID: sid,
			Input:     ev.String(FieldInput),
			Options:   ev.Fields[FieldOptions],
			Streaming: ev.Kind == KindStreamStart,
		}
	case KindPromptResponse, KindStreamEnd:
		return Completion{SessionID: sid, Result: ev.String(FieldResult), Streaming: ev.Kind == KindStreamEnd}
	case KindPromptError, KindStreamError:
		return Failure{SessionID: sid, Error: ev.String(FieldError), Streaming: ev.Kind == KindStreamError}
	case KindToolCall:
		return ToolCall{SessionID: sid, Tool: ev.String(FieldTool), Args: ev.Fields[FieldArgs]}
	case KindToolResultAI:
		res, ok := ev.Fields[FieldResult]
		return ToolResult{
			SessionID: sid,
			Tool:      ev.String(FieldTool),
			Result:    res,
			HasResult: ok && res != nil,
			Error:     ev.Fields[FieldError],
		}
	case KindWebMCPToolRegistered, KindWebMCPToolUnregistered, KindWebMCPToolCall, KindWebMCPToolResult:
		return WebMCP{
			Op:       webMCPOps[ev.Kind],
			ToolName: ev.String(FieldToolName),
			Args:     ev.Fields[FieldArgs],
			Result:   ev.Fields[FieldResult],
			Error:    ev.Fields[FieldError],
		}
	case KindPageNavigation, KindPageReload:
		return Navigation{URL: ev.String(FieldURL), Reload: ev.Kind == KindPageReload}
	default:
		return Unknown{Kind: ev.Kind, Fields: ev.Fields}
	}
}

var webMCPOps = map[string]WebMCPOp{
	KindWebMCPToolRegistered:   WebMCPRegister,
	KindWebMCPToolUnregistered: WebMCPUnregister,
	KindWebMCPToolCall:         WebMCPCall,
	KindWebMCPToolResult:       WebMCPResult,
}

// nonEmpty treats nil, "", false and empty containers as no error.
func nonEmpty(v interface{}) bool {
	switch e := v.(type) {
	case nil:
		return false
	case string:
		return e != ""
	case bool:
		return e
	case map[string]interface{}:
		return len(e) > 0
	case []interface{}:
		return len(e) > 0
	default:
		return true
	}
}

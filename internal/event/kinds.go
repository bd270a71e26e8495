package event

// Kinds emitted by the host instrumentation. The set is open: anything not
// listed here still flows through the pipeline and decodes to Unknown.
const (
	KindSessionCreated   = "SESSION_CREATED"
	KindSessionDestroyed = "SESSION_DESTROYED"

	KindPromptSent     = "PROMPT_SENT"
	KindPromptResponse = "PROMPT_RESPONSE"
	KindPromptError    = "PROMPT_ERROR"

	KindStreamStart = "STREAM_START"
	KindStreamEnd   = "STREAM_END"
	KindStreamError = "STREAM_ERROR"

	KindToolCall     = "TOOL_CALL"
	KindToolResultAI = "TOOL_RESULT_AI"

	KindWebMCPToolRegistered   = "WEBMCP_TOOL_REGISTERED"
	KindWebMCPToolUnregistered = "WEBMCP_TOOL_UNREGISTERED"
	KindWebMCPToolCall         = "WEBMCP_TOOL_CALL"
	KindWebMCPToolResult       = "WEBMCP_TOOL_RESULT"

	KindPageNavigation = "PAGE_NAVIGATION"
	KindPageReload     = "PAGE_RELOAD"
	KindToolActivated  = "TOOL_ACTIVATED"

	KindPanelConnected = "PANEL_CONNECTED"
)

// Field names shared by several kinds.
const (
	FieldSessionID = "sessionId"
	FieldTool      = "tool"
	FieldToolName  = "toolName"
	FieldInput     = "input"
	FieldResult    = "result"
	FieldError     = "error"
	FieldArgs      = "args"
	FieldOptions   = "options"
	FieldURL       = "url"
)

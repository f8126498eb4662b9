package httpapi

// DispatchRequest is the body of POST /v1/dispatch.
type DispatchRequest struct {
	Input string `json:"input"`
}

// DispatchResponse carries a handler's result.
type DispatchResponse struct {
	Command string `json:"command,omitempty"`
	Result  any    `json:"result"`
}

// ErrorResponse describes a failed request. Usage failures fill Kind and
// the fields that apply to it.
type ErrorResponse struct {
	Error       string   `json:"error"`
	Kind        string   `json:"kind,omitempty"`
	Position    *int     `json:"position,omitempty"`
	Token       string   `json:"token,omitempty"`
	Parameter   string   `json:"parameter,omitempty"`
	Expected    []string `json:"expected,omitempty"`
	Permission  string   `json:"permission,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	ExitCode    int      `json:"exit_code,omitempty"`
}

// SuggestResponse is the body of GET /v1/suggest.
type SuggestResponse struct {
	Input       string   `json:"input"`
	Suggestions []string `json:"suggestions"`
}

// CommandInfo describes one registered command.
type CommandInfo struct {
	Usage      string `json:"usage"`
	Summary    string `json:"summary,omitempty"`
	Category   string `json:"category"`
	Permission string `json:"permission,omitempty"`
}

// CommandsResponse is the body of GET /v1/commands.
type CommandsResponse struct {
	Fingerprint string        `json:"fingerprint"`
	Commands    []CommandInfo `json:"commands"`
}

// TokenizeResponse is the body of GET /v1/tokenize.
type TokenizeResponse struct {
	Tokens []string `json:"tokens"`
}

// HealthzResponse is the body of GET /healthz.
type HealthzResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Commands      int    `json:"commands"`
}

package tools

import (
	"encoding/json"
	"errors"
)

// Supported actions. These names are part of the wire contract with the
// model: the system prompt advertises them and the parser deserializes
// them, so they must not change.
const (
	ActionReadFile     = "read_file"
	ActionCreateFile   = "create_file"
	ActionCreateFolder = "create_folder"
	ActionDelete       = "delete"
	ActionListDir      = "list_dir"
)

// ToolCall is one filesystem operation requested by the model. Path and
// Content are optional depending on the action.
type ToolCall struct {
	Action  string `json:"action"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
}

// UnmarshalJSON requires the action key to be present and a string. Path
// and content stay optional. Without this, any JSON object would decode
// into a ToolCall and the parser could not tell tool calls apart from
// arbitrary objects.
func (c *ToolCall) UnmarshalJSON(data []byte) error {
	var probe struct {
		Action  *string `json:"action"`
		Path    *string `json:"path"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Action == nil {
		return errors.New("tool call missing action")
	}
	*c = ToolCall{Action: *probe.Action}
	if probe.Path != nil {
		c.Path = *probe.Path
	}
	if probe.Content != nil {
		c.Content = *probe.Content
	}
	return nil
}

// ToolResponse is the model's reply once interpreted: either an ordered
// list of tool calls or a plain textual answer. A well-formed reply
// populates exactly one of the two.
type ToolResponse struct {
	Tools    []ToolCall `json:"tools,omitempty"`
	Response string     `json:"response,omitempty"`
}

// ToolResult is the outcome of executing or rejecting one ToolCall.
// Result carries the operation payload on success or a human-readable
// reason on failure. Results are serialized back to the model, so the
// field set and order are stable.
type ToolResult struct {
	Action  string `json:"action"`
	Path    string `json:"path"`
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

// IsSupportedAction reports whether the executor knows how to perform
// the named action.
func IsSupportedAction(action string) bool {
	switch action {
	case ActionReadFile, ActionCreateFile, ActionCreateFolder, ActionDelete, ActionListDir:
		return true
	}
	return false
}

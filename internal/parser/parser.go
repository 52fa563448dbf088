// Package parser turns raw model output into structured tool responses.
//
// Models are instructed to answer with a single JSON object, but in
// practice they wrap it in markdown fences, prepend prose, or skip JSON
// entirely and emit filename-plus-code-block sections. Parse works
// through those shapes in order and always produces a usable response.
package parser

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/GenAICloudDevOps/clio-ai/internal/tools"
)

// Parse interprets raw model output. It tries, in order: the whole text
// as JSON, any balanced JSON object or array embedded in the text, and
// markdown filename/code-block pairs. Anything else becomes a plain
// chat response carrying the trimmed text.
func Parse(raw string) tools.ToolResponse {
	text := strings.TrimSpace(raw)

	if resp, ok := parseJSON(text); ok {
		return resp
	}

	if calls := scanFileBlocks(text); len(calls) > 0 {
		return tools.ToolResponse{Tools: calls}
	}

	return tools.ToolResponse{Response: text}
}

func parseJSON(text string) (tools.ToolResponse, bool) {
	if resp, ok := responseFromJSON([]byte(text)); ok {
		return resp, true
	}

	for _, candidate := range jsonCandidates(text) {
		if resp, ok := responseFromJSON([]byte(candidate)); ok {
			return resp, true
		}
	}

	return tools.ToolResponse{}, false
}

// responseFromJSON maps one JSON value onto a ToolResponse. A value is
// only accepted when it carries something usable: at least one tool
// call or a non-blank response string.
func responseFromJSON(data []byte) (tools.ToolResponse, bool) {
	var resp tools.ToolResponse
	if err := json.Unmarshal(data, &resp); err == nil {
		if len(resp.Tools) > 0 || strings.TrimSpace(resp.Response) != "" {
			return resp, true
		}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil && obj != nil {
		// A bare tool call: {"action": "...", ...}
		if _, ok := obj["action"]; ok {
			var call tools.ToolCall
			if err := json.Unmarshal(data, &call); err == nil {
				return tools.ToolResponse{Tools: []tools.ToolCall{call}}, true
			}
		}

		// Salvage a valid tools list even when the envelope does not
		// deserialize as a whole.
		if rawTools, ok := obj["tools"]; ok {
			var calls []tools.ToolCall
			if err := json.Unmarshal(rawTools, &calls); err == nil && len(calls) > 0 {
				return tools.ToolResponse{Tools: calls}, true
			}
		}

		if rawResp, ok := obj["response"]; ok {
			var s string
			if err := json.Unmarshal(rawResp, &s); err == nil && strings.TrimSpace(s) != "" {
				return tools.ToolResponse{Response: s}, true
			}
		}
	}

	// A bare array of tool calls.
	var calls []tools.ToolCall
	if err := json.Unmarshal(data, &calls); err == nil && len(calls) > 0 {
		return tools.ToolResponse{Tools: calls}, true
	}

	return tools.ToolResponse{}, false
}

// jsonCandidates collects every balanced top-level {...} or [...] span
// in text, ignoring brackets inside JSON string literals. Spans with
// mismatched brackets are skipped; scanning then resumes at the next
// character so a later well-formed span is still found.
func jsonCandidates(text string) []string {
	var candidates []string
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		if end, ok := matchBracket(text, i); ok {
			candidates = append(candidates, text[i:end])
			i = end - 1
		}
	}
	return candidates
}

// matchBracket finds the closing bracket balancing text[start] and
// returns the index just past it. String literals are honored: quotes
// and escaped characters inside them never affect bracket depth.
func matchBracket(text string, start int) (int, bool) {
	stack := []byte{text[start]}
	inString := false
	escape := false

	for j := start + 1; j < len(text); j++ {
		c := text[j]
		if inString {
			switch {
			case escape:
				escape = false
			case c == '\\':
				escape = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if (open == '{') != (c == '}') {
				return 0, false
			}
			if len(stack) == 0 {
				return j + 1, true
			}
		}
	}

	return 0, false
}

// scanFileBlocks recovers create_file calls from markdown of the form
// a filename line (like **app.py** or `app.py`) immediately followed
// by a fenced code block.
func scanFileBlocks(text string) []tools.ToolCall {
	var calls []tools.ToolCall
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); i++ {
		name, ok := filenameFromLine(lines[i])
		if !ok {
			continue
		}
		if i+1 >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[i+1]), "```") {
			continue
		}

		var content strings.Builder
		i += 2
		for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			content.WriteString(lines[i])
			content.WriteByte('\n')
			i++
		}

		calls = append(calls, tools.ToolCall{
			Action:  tools.ActionCreateFile,
			Path:    name,
			Content: strings.TrimRightFunc(content.String(), unicode.IsSpace),
		})
	}

	return calls
}

// filenameFromLine recognizes the ways models label a file before a
// code block: **app.py**, `app.py`, or a "app.py:"-style heading.
func filenameFromLine(line string) (string, bool) {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "**"), "**"))
		if strings.Contains(name, ".") || strings.HasSuffix(name, "/") {
			return name, true
		}
	}

	if strings.HasPrefix(line, "`") && strings.HasSuffix(line, "`") && !strings.Contains(line, "```") {
		name := strings.TrimSpace(strings.Trim(line, "`"))
		if strings.Contains(name, ".") {
			return name, true
		}
	}

	for _, sep := range []string{" (", " -", ":"} {
		pos := strings.Index(line, sep)
		if pos < 0 {
			continue
		}
		name := strings.TrimSpace(line[:pos])
		name = strings.TrimSuffix(strings.TrimPrefix(name, "**"), "**")
		if strings.Contains(name, ".") && !strings.Contains(name, " ") {
			return name, true
		}
	}

	return "", false
}

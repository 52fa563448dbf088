package parser

import (
	"reflect"
	"testing"

	"github.com/GenAICloudDevOps/clio-ai/internal/tools"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected tools.ToolResponse
	}{
		{
			name:  "strict tools object",
			input: `{"tools": [{"action": "create_file", "path": "hello.py", "content": "print('hi')"}]}`,
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "create_file", Path: "hello.py", Content: "print('hi')"},
				},
			},
		},
		{
			name:     "strict response object",
			input:    `{"response": "Hello! How can I help?"}`,
			expected: tools.ToolResponse{Response: "Hello! How can I help?"},
		},
		{
			name:  "bare tool call object",
			input: `{"action": "list_dir", "path": "."}`,
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{{Action: "list_dir", Path: "."}},
			},
		},
		{
			name:  "bare tool call array",
			input: `[{"action": "read_file", "path": "a.txt"}, {"action": "delete", "path": "b.txt"}]`,
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "read_file", Path: "a.txt"},
					{Action: "delete", Path: "b.txt"},
				},
			},
		},
		{
			name:  "json inside markdown fence",
			input: "```json\n{\"tools\": [{\"action\": \"create_folder\", \"path\": \"src\"}]}\n```",
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{{Action: "create_folder", Path: "src"}},
			},
		},
		{
			name:  "json with surrounding prose",
			input: `Sure, here is the plan: {"tools": [{"action": "read_file", "path": "main.go"}]} Let me know!`,
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{{Action: "read_file", Path: "main.go"}},
			},
		},
		{
			name:  "escaped quote and bracket inside string",
			input: `{"tools": [{"action": "create_file", "path": "a.txt", "content": "a\"}b"}]}`,
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "create_file", Path: "a.txt", Content: `a"}b`},
				},
			},
		},
		{
			name:  "unknown action passes through",
			input: `{"action": "run_shell", "path": "build.sh"}`,
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{{Action: "run_shell", Path: "build.sh"}},
			},
		},
		{
			name:  "tools salvaged from broken envelope",
			input: `{"tools": [{"action": "delete", "path": "tmp"}], "response": 12}`,
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{{Action: "delete", Path: "tmp"}},
			},
		},
		{
			name:     "response salvaged from broken envelope",
			input:    `{"tools": "oops", "response": "All done."}`,
			expected: tools.ToolResponse{Response: "All done."},
		},
		{
			name:     "empty tools list falls back to text",
			input:    `{"tools": []}`,
			expected: tools.ToolResponse{Response: `{"tools": []}`},
		},
		{
			name:     "mismatched brackets skipped, later object found",
			input:    `{"a": [1, 2}] and then {"response": "ok"}`,
			expected: tools.ToolResponse{Response: "ok"},
		},
		{
			name:  "markdown filename with code block",
			input: "**app.py**\n```python\nprint('hi')\n```",
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "create_file", Path: "app.py", Content: "print('hi')"},
				},
			},
		},
		{
			name:  "markdown block trailing blank lines trimmed",
			input: "**app.py**\n```python\nprint('hi')\n\n\n```",
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "create_file", Path: "app.py", Content: "print('hi')"},
				},
			},
		},
		{
			name:  "backtick filename with code block",
			input: "`config.yaml`\n```yaml\nport: 8080\n```",
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "create_file", Path: "config.yaml", Content: "port: 8080"},
				},
			},
		},
		{
			name:  "filename heading with colon",
			input: "Here are the files:\n\nmain.go:\n```go\npackage main\n```",
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "create_file", Path: "main.go", Content: "package main"},
				},
			},
		},
		{
			name:  "multiple markdown blocks",
			input: "**app.py**\n```python\nimport os\n```\n\n**requirements.txt**\n```\nflask\n```",
			expected: tools.ToolResponse{
				Tools: []tools.ToolCall{
					{Action: "create_file", Path: "app.py", Content: "import os"},
					{Action: "create_file", Path: "requirements.txt", Content: "flask"},
				},
			},
		},
		{
			name:     "plain text fallback",
			input:    "  I could not find that file.  ",
			expected: tools.ToolResponse{Response: "I could not find that file."},
		},
		{
			name:     "empty input",
			input:    "",
			expected: tools.ToolResponse{Response: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Parse() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestParseFenceEqualsStrict(t *testing.T) {
	strict := `{"tools": [{"action": "create_file", "path": "hello.py", "content": "print('hi')"}]}`
	fenced := "```json\n" + strict + "\n```"

	if !reflect.DeepEqual(Parse(strict), Parse(fenced)) {
		t.Errorf("fenced parse diverged: %+v vs %+v", Parse(fenced), Parse(strict))
	}
}

func TestJSONCandidates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single object",
			input:    `before {"a": 1} after`,
			expected: []string{`{"a": 1}`},
		},
		{
			name:     "two objects",
			input:    `{"a": 1} {"b": 2}`,
			expected: []string{`{"a": 1}`, `{"b": 2}`},
		},
		{
			name:     "nested object reported once",
			input:    `{"a": {"b": [1, 2]}}`,
			expected: []string{`{"a": {"b": [1, 2]}}`},
		},
		{
			name:     "brackets inside strings ignored",
			input:    `{"a": "}{][", "b": "a\"}b"}`,
			expected: []string{`{"a": "}{][", "b": "a\"}b"}`},
		},
		{
			name:     "mismatched span yields nothing",
			input:    `{"a": [1, 2}]`,
			expected: nil,
		},
		{
			name:     "later span recovered after mismatch",
			input:    `{"a" ] [1]`,
			expected: []string{`[1]`},
		},
		{
			name:     "unclosed object yields nothing",
			input:    `{"a": 1`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := jsonCandidates(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("jsonCandidates() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFilenameFromLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "bold filename", input: "**app.py**", expected: "app.py", ok: true},
		{name: "bold folder", input: "**src/**", expected: "src/", ok: true},
		{name: "backtick filename", input: "`docker-compose.yml`", expected: "docker-compose.yml", ok: true},
		{name: "colon heading", input: "main.go: the entry point", expected: "main.go", ok: true},
		{name: "dash heading", input: "app.py - main application", expected: "app.py", ok: true},
		{name: "paren heading", input: "**app.py** (entry point)", expected: "app.py", ok: true},
		{name: "bold word without extension", input: "**Important**", ok: false},
		{name: "prose with spaces before colon", input: "Here is the file:", ok: false},
		{name: "triple backtick fence", input: "```python", ok: false},
		{name: "plain prose", input: "This creates the app", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := filenameFromLine(tt.input)
			if ok != tt.ok || result != tt.expected {
				t.Errorf("filenameFromLine(%q) = (%q, %v), want (%q, %v)", tt.input, result, ok, tt.expected, tt.ok)
			}
		})
	}
}

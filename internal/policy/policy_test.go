package policy

import (
	"testing"

	"github.com/GenAICloudDevOps/clio-ai/internal/tools"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		call       tools.ToolCall
		prompt     string
		wantReason string
		wantBlock  bool
	}{
		{
			name:       "streamlit request blocks rust source",
			call:       tools.ToolCall{Action: "create_file", Path: "main.rs", Content: "fn main() {}"},
			prompt:     "create a streamlit app",
			wantReason: "Blocked Rust-specific file for Python/Streamlit request",
			wantBlock:  true,
		},
		{
			name:       "python request blocks cargo manifest",
			call:       tools.ToolCall{Action: "create_file", Path: "Cargo.toml"},
			prompt:     "Build me a Python CLI",
			wantReason: "Blocked Rust-specific file for Python/Streamlit request",
			wantBlock:  true,
		},
		{
			name:       "nested rust source blocked by suffix",
			call:       tools.ToolCall{Action: "create_file", Path: "src/main.rs"},
			prompt:     "write a python script",
			wantReason: "Blocked Rust-specific file for Python/Streamlit request",
			wantBlock:  true,
		},
		{
			name:      "mixed request is left alone",
			call:      tools.ToolCall{Action: "create_file", Path: "main.rs"},
			prompt:    "port this python app to rust",
			wantBlock: false,
		},
		{
			name:      "rust request may create rust files",
			call:      tools.ToolCall{Action: "create_file", Path: "main.rs"},
			prompt:    "create a rust hello world",
			wantBlock: false,
		},
		{
			name:       "rust request blocks python requirements",
			call:       tools.ToolCall{Action: "create_file", Path: "requirements.txt"},
			prompt:     "scaffold a cargo project",
			wantReason: "Blocked Python-specific file for Rust/Cargo request",
			wantBlock:  true,
		},
		{
			name:      "reads are never blocked",
			call:      tools.ToolCall{Action: "read_file", Path: "main.rs"},
			prompt:    "create a streamlit app",
			wantBlock: false,
		},
		{
			name:      "deletes are never blocked",
			call:      tools.ToolCall{Action: "delete", Path: "main.rs"},
			prompt:    "create a streamlit app",
			wantBlock: false,
		},
		{
			name:      "empty path is left alone",
			call:      tools.ToolCall{Action: "create_file"},
			prompt:    "create a streamlit app",
			wantBlock: false,
		},
		{
			name:      "unrelated request is left alone",
			call:      tools.ToolCall{Action: "create_file", Path: "main.rs"},
			prompt:    "save my notes",
			wantBlock: false,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, blocked := p.Check(tt.call, tt.prompt)
			if blocked != tt.wantBlock {
				t.Fatalf("Check() blocked = %v, want %v", blocked, tt.wantBlock)
			}
			if reason != tt.wantReason {
				t.Errorf("Check() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

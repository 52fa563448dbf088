// Package policy guards file creation against stack mismatches. When a
// request clearly asks for one technology stack, tool calls that would
// scaffold files belonging to a different stack are refused instead of
// written to disk.
package policy

import (
	"strings"

	"github.com/GenAICloudDevOps/clio-ai/internal/tools"
)

// StackRule describes one mismatch: requests matching RequestSignals
// must not create files matching BlockNames or BlockSuffixes, unless
// the request also mentions a ConflictSignal, which marks a mixed-stack
// request the rule stays out of. All matching is case-insensitive;
// BlockNames compare against the whole path.
type StackRule struct {
	RequestSignals  []string
	ConflictSignals []string
	BlockNames      []string
	BlockSuffixes   []string
	Reason          string
}

var defaultRules = []StackRule{
	{
		RequestSignals:  []string{"python", "streamlit"},
		ConflictSignals: []string{"rust", "cargo"},
		BlockNames:      []string{"cargo.toml", "cargo.lock"},
		BlockSuffixes:   []string{".rs"},
		Reason:          "Blocked Rust-specific file for Python/Streamlit request",
	},
	{
		RequestSignals:  []string{"rust", "cargo"},
		ConflictSignals: []string{"python", "streamlit"},
		BlockNames:      []string{"requirements.txt", "pyproject.toml"},
		BlockSuffixes:   []string{".py"},
		Reason:          "Blocked Python-specific file for Rust/Cargo request",
	},
}

// Policy checks tool calls against a set of stack rules.
type Policy struct {
	rules []StackRule
}

// New returns a policy carrying the built-in stack rules.
func New() *Policy {
	return &Policy{rules: defaultRules}
}

// Check reports whether call should be refused for the given request
// and, if so, the reason to surface to the model. Only create_file and
// create_folder are ever refused; reads, listings and deletions pass.
func (p *Policy) Check(call tools.ToolCall, prompt string) (string, bool) {
	if call.Action != tools.ActionCreateFile && call.Action != tools.ActionCreateFolder {
		return "", false
	}
	if call.Path == "" {
		return "", false
	}

	promptLower := strings.ToLower(prompt)
	pathLower := strings.ToLower(call.Path)

	for _, rule := range p.rules {
		if !containsAny(promptLower, rule.RequestSignals) {
			continue
		}
		if containsAny(promptLower, rule.ConflictSignals) {
			continue
		}
		if matchesPath(pathLower, rule) {
			return rule.Reason, true
		}
	}

	return "", false
}

func matchesPath(pathLower string, rule StackRule) bool {
	for _, name := range rule.BlockNames {
		if pathLower == name {
			return true
		}
	}
	for _, suffix := range rule.BlockSuffixes {
		if strings.HasSuffix(pathLower, suffix) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// Package agent drives the conversation loop: ask the model, interpret
// its reply, run the requested file operations, and feed the outcomes
// back until the model produces a final answer or the loop gives up.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/GenAICloudDevOps/clio-ai/internal/parser"
	"github.com/GenAICloudDevOps/clio-ai/internal/policy"
	"github.com/GenAICloudDevOps/clio-ai/internal/tools"
)

// Responder produces raw model text for a system/user message pair.
// Implementations own transport, timeouts and retries; the loop treats
// any returned error as fatal for the current request.
type Responder interface {
	Ask(ctx context.Context, system, user string) (string, error)
}

const defaultMaxRounds = 10

const (
	msgNoAction   = "No action taken."
	msgNoProgress = "No further progress possible."
	msgExhausted  = "Max iterations reached."
	msgNoResponse = "No response."
)

// Loop runs rounds of ask-parse-execute for one request at a time. A
// Loop is not safe for concurrent use; each request owns its rolling
// tool-results text exclusively.
type Loop struct {
	Responder Responder
	Policy    *policy.Policy
	Logger    *slog.Logger

	// MaxRounds bounds the number of model calls per request. Zero
	// means the default budget of 10.
	MaxRounds int

	// OnAction, when set, observes each allowed tool call just before
	// it executes. Used by the CLI to echo progress.
	OnAction func(tools.ToolCall)
}

// Run processes one user request against workingRoot and returns the
// final answer text. repoContext, when non-empty, is folded into the
// first round's user message. The loop terminates on a model answer, a
// stall (two consecutive rounds with identical tool results), or when
// the round budget runs out; each of those yields a final string, not
// an error. Only a failed model call returns an error.
func (l *Loop) Run(ctx context.Context, prompt, workingRoot, repoContext string) (string, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", gonanoid.Must(6))

	pol := l.Policy
	if pol == nil {
		pol = policy.New()
	}

	maxRounds := l.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}

	system := buildSystem(workingRoot)
	toolResults := ""

	for round := 1; round <= maxRounds; round++ {
		user := buildUser(prompt, toolResults, repoContext)

		raw, err := l.Responder.Ask(ctx, system, user)
		if err != nil {
			return "", fmt.Errorf("model call failed (round %d): %w", round, err)
		}

		resp := parser.Parse(raw)
		logger.Debug("round interpreted",
			"round", round,
			"tool_calls", len(resp.Tools),
			"has_answer", resp.Response != "")

		if resp.Response != "" {
			return resp.Response, nil
		}
		if resp.Tools == nil {
			return msgNoResponse, nil
		}
		if len(resp.Tools) == 0 {
			return msgNoAction, nil
		}

		serialized := l.act(resp.Tools, pol, prompt, workingRoot, logger)
		if serialized == toolResults {
			return msgNoProgress, nil
		}
		toolResults = serialized
	}

	return msgExhausted, nil
}

// act partitions the round's calls into allowed, policy-blocked and
// unsupported, executes the allowed ones, and serializes every result
// in that grouping order into the feedback text for the next round.
func (l *Loop) act(calls []tools.ToolCall, pol *policy.Policy, prompt, workingRoot string, logger *slog.Logger) string {
	type veto struct {
		call   tools.ToolCall
		reason string
	}

	var allowed []tools.ToolCall
	var vetoed []veto
	var unsupported []tools.ToolCall

	for _, call := range calls {
		if !tools.IsSupportedAction(call.Action) {
			unsupported = append(unsupported, call)
			continue
		}
		if reason, blocked := pol.Check(call, prompt); blocked {
			vetoed = append(vetoed, veto{call: call, reason: reason})
			continue
		}
		allowed = append(allowed, call)
	}

	var lines []string
	for _, call := range allowed {
		if l.OnAction != nil {
			l.OnAction(call)
		}
		result := tools.Execute(call, workingRoot)
		logger.Info("tool executed",
			"action", call.Action, "path", call.Path, "success", result.Success)
		lines = append(lines, marshalResult(result))
	}
	for _, v := range vetoed {
		logger.Warn("tool blocked",
			"action", v.call.Action, "path", v.call.Path, "reason", v.reason)
		lines = append(lines, marshalResult(tools.ToolResult{
			Action:  v.call.Action,
			Path:    v.call.Path,
			Success: false,
			Result:  v.reason,
		}))
	}
	for _, call := range unsupported {
		logger.Warn("unsupported action", "action", call.Action, "path", call.Path)
		lines = append(lines, marshalResult(tools.ToolResult{
			Action:  call.Action,
			Path:    call.Path,
			Success: false,
			Result:  "Unsupported action",
		}))
	}

	return strings.Join(lines, "\n")
}

// marshalResult renders one result as compact JSON without HTML
// escaping, so file contents survive the round trip readably.
func marshalResult(r tools.ToolResult) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(r)
	return strings.TrimRight(buf.String(), "\n")
}

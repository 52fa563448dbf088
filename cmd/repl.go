package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GenAICloudDevOps/clio-ai/internal/agent"
	"github.com/GenAICloudDevOps/clio-ai/internal/config"
	"github.com/GenAICloudDevOps/clio-ai/internal/llm"
	"github.com/GenAICloudDevOps/clio-ai/internal/modelcatalog"
	"github.com/GenAICloudDevOps/clio-ai/internal/version"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2980b9", Dark: "#3498db"})
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#16a085", Dark: "#1abc9c"})
)

type repl struct {
	cfg       *config.Config
	logger    *slog.Logger
	responder llm.Responder
	renderer  agent.Renderer
	cwd       string
}

func runREPL(ctx context.Context, cfg *config.Config, logger *slog.Logger, cwd string) error {
	responder, err := llm.NewResponder(ctx, *cfg, logger)
	if err != nil {
		return err
	}
	r := &repl{
		cfg:       cfg,
		logger:    logger,
		responder: responder,
		renderer:  agent.NewRenderer(),
		cwd:       cwd,
	}
	return r.run(ctx)
}

func (r *repl) run(ctx context.Context) error {
	banner := fmt.Sprintf("clio-ai %s | Model: %s | /help for commands", version.Get(), r.cfg.Model)
	fmt.Println(bannerStyle.Render(banner))

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB input buffer

	for {
		fmt.Print(promptStyle.Render(">>> "))
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			handled, quit := r.handleCommand(ctx, input)
			if quit {
				return nil
			}
			if handled {
				continue
			}
		}

		answer, err := processPrompt(ctx, r.responder, r.logger, r.cwd, input)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println()
				break
			}
			fmt.Printf("\nError: %v\n\n", err)
			continue
		}
		rendered, err := r.renderer.Render(answer)
		if err != nil {
			rendered = answer
		}
		fmt.Printf("\n%s\n\n", rendered)
	}
	return scanner.Err()
}

// handleCommand dispatches a slash command. Unknown commands are reported
// as unhandled so prompts that happen to start with "/" still reach the
// model.
func (r *repl) handleCommand(ctx context.Context, input string) (handled, quit bool) {
	parts := strings.SplitN(input, " ", 2)

	switch parts[0] {
	case "/help":
		fmt.Println("\nCommands:")
		fmt.Println("  /models        - List available models")
		fmt.Println("  /model <name>  - Switch model")
		fmt.Println("  /config        - Show config path")
		fmt.Println("  /quit          - Exit")
		fmt.Println()
		return true, false

	case "/models":
		models, err := modelcatalog.All(modelcatalog.UserCatalogPath())
		if err != nil {
			fmt.Printf("Error loading model catalog: %v\n", err)
			return true, false
		}
		fmt.Println("\nAvailable models:")
		for _, m := range models {
			marker := "  "
			if m.ID == r.cfg.Model {
				marker = "* "
			}
			fmt.Printf("%s%s - %s (%s)\n", marker, m.ID, m.Name, m.Provider)
		}
		fmt.Println()
		return true, false

	case "/model":
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			fmt.Println("Usage: /model <model_name>")
			return true, false
		}
		r.switchModel(ctx, strings.TrimSpace(parts[1]))
		return true, false

	case "/config":
		line := "Config: .env in current dir"
		for _, path := range config.EnvPaths() {
			line += fmt.Sprintf(" OR %q", path)
		}
		fmt.Println(line)
		return true, false

	case "/quit", "/exit":
		return true, true

	default:
		return false, false
	}
}

// switchModel swaps the active model and rebuilds the backend client. The
// old client stays active when the new one cannot be built, for example
// when the target provider's API key is missing.
func (r *repl) switchModel(ctx context.Context, model string) {
	next := *r.cfg
	next.Model = model
	next.Provider = modelcatalog.DetectProvider(model)

	responder, err := llm.NewResponder(ctx, next, r.logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	*r.cfg = next
	r.responder = responder
	fmt.Printf("Switched to: %s\n", model)
}

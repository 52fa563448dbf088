package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GenAICloudDevOps/clio-ai/internal/agent"
	"github.com/GenAICloudDevOps/clio-ai/internal/config"
	"github.com/GenAICloudDevOps/clio-ai/internal/llm"
	"github.com/GenAICloudDevOps/clio-ai/internal/modelcatalog"
	"github.com/GenAICloudDevOps/clio-ai/internal/repocontext"
	"github.com/GenAICloudDevOps/clio-ai/internal/version"
)

var (
	modelFlag    string
	providerFlag string
	timeoutFlag  string
	debugFlag    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clio-ai [flags] [prompt]",
	Short: "AI assistant for your terminal",
	Long: `clio-ai is a command-line AI assistant that reads, creates, and deletes
files in the current directory through natural language requests. It talks
to Gemini, Groq, or a local Ollama server. With a prompt argument it runs
once and exits; without one it starts an interactive session.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Printf("clio-ai version %s\n", version.Get())
			return nil
		}
		return executeRootCommand(cmd.Context(), args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Listen for cancellation
	// - in shells for user-initiated interruption SIGINT
	// - in system sent/container environments, SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Specify the model to use")
	rootCmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "Specify the provider (gemini, groq, or ollama)")
	rootCmd.PersistentFlags().StringVar(&timeoutFlag, "timeout", "5m", "Specify request timeout duration (e.g. '5m', '30s')")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.Flags().BoolP("version", "v", false, "Print the version number and exit")
}

// executeRootCommand handles the main functionality of the root command
func executeRootCommand(ctx context.Context, args []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	logger := newLogger(debugFlag)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	prompt, err := gatherPrompt(args)
	if err != nil {
		return err
	}
	if prompt == "" {
		return runREPL(ctx, cfg, logger, cwd)
	}

	responder, err := llm.NewResponder(ctx, *cfg, logger)
	if err != nil {
		return err
	}

	answer, err := processPrompt(ctx, responder, logger, cwd, prompt)
	if err != nil {
		return err
	}

	rendered, err := agent.NewRenderer().Render(answer)
	if err != nil {
		rendered = answer
	}
	fmt.Println(rendered)
	return nil
}

// loadRuntimeConfig merges the environment configuration with command-line
// flags. A --model value also switches the provider; an explicit --provider
// wins over detection.
func loadRuntimeConfig() (*config.Config, error) {
	cfg := config.Load()
	if modelFlag != "" {
		cfg.Model = modelFlag
		cfg.Provider = modelcatalog.DetectProvider(modelFlag)
	}
	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value '%s': %w", timeoutFlag, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// processPrompt runs one request through the agent loop, gathering a repo
// snapshot first when the prompt asks about the project.
func processPrompt(ctx context.Context, responder llm.Responder, logger *slog.Logger, cwd, prompt string) (string, error) {
	var repoContext string
	if repocontext.NeedsContext(prompt) {
		var g repocontext.Gatherer
		snapshot, err := g.Gather(ctx, cwd)
		if err != nil {
			return "", err
		}
		repoContext = snapshot
	}

	loop := &agent.Loop{Responder: responder, Logger: logger}
	return loop.Run(ctx, prompt, cwd, repoContext)
}

// gatherPrompt combines piped stdin with positional arguments.
func gatherPrompt(args []string) (string, error) {
	var parts []string

	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to check stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		if s := strings.TrimSpace(string(b)); s != "" {
			parts = append(parts, s)
		}
	}

	if len(args) > 0 {
		parts = append(parts, strings.TrimSpace(strings.Join(args, " ")))
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")), nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

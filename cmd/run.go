package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/config"
	"github.com/calverra/workdeck/internal/instrumentation"
	"github.com/calverra/workdeck/internal/planner"
	"github.com/calverra/workdeck/internal/server"
)

func newRunCmd() *cobra.Command {
	var (
		account   string
		model     string
		system    string
		maxTurns  int
		showSteps bool
		debugMode bool
	)

	cmd := &cobra.Command{
		Use:   "run <objective>",
		Short: "Run a natural-language objective through the planning loop",
		Long: `Run a single natural-language objective against the capability catalog.

The objective is sent to Claude with every capability advertised as a tool.
The model plans, requested capabilities are dispatched (concurrently per
turn), and results are fed back until the model produces a final answer.

Requires ANTHROPIC_API_KEY. Defaults for model, token budget and turn limit
come from WORKDECK_* environment variables and can be overridden by flags.

Examples:
  workdeck run "archive all newsletters older than a week"
  workdeck run --account work "summarize today's unread email into a doc"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjective(strings.Join(args, " "), account, model, system, maxTurns, showSteps, debugMode)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Google account name to act as (default from WORKDECK_ACCOUNT)")
	cmd.Flags().StringVar(&model, "model", "", "Claude model identifier (default from WORKDECK_MODEL)")
	cmd.Flags().StringVar(&system, "system", "", "System prompt prepended to the planning conversation")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Maximum model turns before the run fails (default from WORKDECK_MAX_TURNS)")
	cmd.Flags().BoolVar(&showSteps, "show-steps", false, "Print every tool-use round as JSON after the answer")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runObjective(objective, account, model, system string, maxTurns int, showSteps, debugMode bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if account != "" {
		cfg.Account = account
	}
	if model != "" {
		cfg.Model = model
	}
	if maxTurns > 0 {
		cfg.MaxTurns = maxTurns
	}
	if err := cfg.ValidateForPlanner(); err != nil {
		return err
	}

	level := parseLogLevel(cfg.LogLevel)
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	mode := capability.Lenient
	if cfg.StrictValidation {
		mode = capability.Strict
	}
	auditLogger := instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging)
	contextOpts := []server.ServerContextOption{
		server.WithLogger(logger),
		server.WithValidationMode(mode),
		server.WithObserver(auditLogger),
	}
	if provider.Enabled() {
		contextOpts = append(contextOpts, server.WithObserver(provider.Metrics()))
	}

	serverContext, err := server.NewServerContext(ctx, contextOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { _ = serverContext.Shutdown() }()

	p, err := planner.NewFromAPIKey(cfg.AnthropicAPIKey, serverContext.Dispatcher(), planner.Options{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		MaxTurns:    cfg.MaxTurns,
		System:      system,
		Temperature: cfg.Temperature,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}

	out, runErr := p.Run(ctx, objective, capability.Context{Account: cfg.Account})

	if out != nil && provider.Enabled() {
		metrics := provider.Metrics()
		metrics.RecordPlannerTurns(ctx, cfg.Model, out.Turns)
		metrics.RecordPlannerTokens(ctx, cfg.Model, out.InputTokens, out.OutputTokens)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println(out.Text)

	if showSteps && len(out.Steps) > 0 {
		steps, err := json.MarshalIndent(out.Steps, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode steps: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\nSteps:\n%s\n", steps)
	}

	fmt.Fprintf(os.Stderr, "\n(%d turns, %d input tokens, %d output tokens)\n",
		out.Turns, out.InputTokens, out.OutputTokens)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

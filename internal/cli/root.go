// Package cli wires landing's cobra commands: the hero page itself plus
// helpers to inspect prompts, configuration and animator timing.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/landing/internal/config"
	"github.com/csheth/landing/internal/journal"
	"github.com/csheth/landing/internal/logging"
	"github.com/csheth/landing/internal/tui"
)

type options struct {
	configPath  string
	logFile     string
	logLevel    string
	debug       bool
	noAltScreen bool
	promptsPath string
	historyPath string
}

// NewRootCommand builds the command tree. Each call returns a fresh tree so
// tests can execute commands in isolation.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "landing",
		Short: "Terminal landing page with an animated prompt placeholder",
		Long: `landing renders a hero page in the terminal: a headline, a subtitle and a
prompt field whose placeholder types out example prompts, pauses, and
deletes them again.

Press Tab to copy the current suggestion into the field, or start typing
your own prompt and send it with Ctrl+S.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHero(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.landing/config.yaml)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "render inline instead of using the alternate screen")
	flags.StringVar(&opts.promptsPath, "prompts", "", "YAML or JSON file with example prompts")
	flags.StringVar(&opts.historyPath, "history", "", "JSON file that records submitted prompts")

	cmd.AddCommand(
		newPromptsCmd(opts),
		newSimulateCmd(opts),
		newConfigCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// load resolves the effective configuration for cmd and the config path it
// was read from.
func (o *options) load(cmd *cobra.Command) (*config.Config, string, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, "", err
	}
	if o.configPath != "" {
		if _, err := os.Stat(o.configPath); err != nil {
			return nil, "", fmt.Errorf("config: %w", err)
		}
	}
	path := config.DiscoverPath(o.configPath)
	cfg, err := config.LoadWithEnv(path, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, "", err
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	if o.noAltScreen {
		cfg.UI.AltScreen = false
	}
	return cfg, path, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	return logging.New(logging.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

func runHero(cmd *cobra.Command, opts *options) error {
	cfg, path, err := opts.load(cmd)
	if err != nil {
		return err
	}
	set, err := cfg.PromptSet()
	if err != nil {
		return err
	}
	logger, cleanup, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting landing",
		zap.String("config", path),
		zap.String("history", cfg.HistoryFile),
		zap.Int("prompts", set.Len()),
		zap.Bool("alt_screen", cfg.UI.AltScreen),
		zap.Bool("mouse", cfg.UI.Mouse),
	)

	tuiConfig := tui.Config{
		Prompts:      set,
		Timing:       cfg.AnimatorTiming(),
		Headline:     cfg.UI.Headline,
		Subtitle:     cfg.UI.Subtitle,
		CompactWidth: cfg.UI.CompactWidth,
		Logger:       logger,
	}
	if cfg.HistoryFile != "" {
		tuiConfig.Journal = journal.Open(cfg.HistoryFile)
	}
	model := tui.New(tuiConfig)

	programOpts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, programOpts...)
	if _, err := program.Run(); err != nil {
		logger.Error("program error", zap.Error(err))
		return fmt.Errorf("landing: run: %w", err)
	}
	logger.Info("landing exited")
	return nil
}

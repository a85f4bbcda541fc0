package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/csheth/landing/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	var writePath string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the effective configuration",
		Long: `Display the effective configuration after defaults, the config file,
LANDING_* environment variables and flags have been applied.

With --write the effective configuration is saved as YAML instead, which is
a convenient way to start a config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if writePath != "" {
				if err := config.Save(cfg, writePath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s\n", writePath)
				return nil
			}
			timing := cfg.AnimatorTiming()

			fileState := path
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				fileState += " (not found, using defaults)"
			}
			promptSource := "built-in"
			switch {
			case cfg.PromptsFile != "":
				promptSource = cfg.PromptsFile
			case len(cfg.Prompts) > 0:
				promptSource = fmt.Sprintf("inline (%d)", len(cfg.Prompts))
			}
			historyFile := cfg.HistoryFile
			if historyFile == "" {
				historyFile = "(disabled)"
			}
			logFile := cfg.Log.File
			if logFile == "" {
				logFile = "(disabled)"
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Setting", "Value")
			table.Append("Config File", fileState)
			table.Append("Prompts", promptSource)
			table.Append("History File", historyFile)
			table.Append("Type Interval", timing.TypeInterval.String())
			table.Append("Dwell", timing.Dwell.String())
			table.Append("Delete Interval", timing.DeleteInterval.String())
			table.Append("Headline", cfg.UI.Headline)
			table.Append("Subtitle", cfg.UI.Subtitle)
			table.Append("Compact Width", fmt.Sprintf("%d", cfg.UI.CompactWidth))
			table.Append("Alt Screen", fmt.Sprintf("%v", cfg.UI.AltScreen))
			table.Append("Mouse", fmt.Sprintf("%v", cfg.UI.Mouse))
			table.Append("Log File", logFile)
			table.Append("Log Level", strings.ToLower(cfg.Log.Level))
			table.Append("Log Format", cfg.Log.Format)
			return table.Render()
		},
	}
	cmd.Flags().StringVar(&writePath, "write", "", "save the effective configuration to this YAML file")
	return cmd
}

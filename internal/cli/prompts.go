package cli

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/csheth/landing/internal/placeholder"
)

func newPromptsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "List the example prompts the placeholder cycles through",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			set, err := cfg.PromptSet()
			if err != nil {
				return err
			}
			timing := cfg.AnimatorTiming()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("#", "Prompt", "Runes", "Tab after", "Cycle")
			for i, entry := range set.Entries() {
				runes := utf8.RuneCountInString(entry)
				table.Append(
					strconv.Itoa(i),
					entry,
					strconv.Itoa(runes),
					tabAfter(runes),
					cycleDuration(runes, timing).String(),
				)
			}
			return table.Render()
		},
	}
}

// tabAfter reports how many typed runes it takes before the Tab badge can
// appear for a prompt of the given length.
func tabAfter(runes int) string {
	if runes < placeholder.TabThreshold {
		return "never"
	}
	return strconv.Itoa(placeholder.TabThreshold)
}

// cycleDuration is the time one prompt spends on screen: typed, held and
// deleted.
func cycleDuration(runes int, timing placeholder.Timing) time.Duration {
	n := time.Duration(runes)
	return n*timing.TypeInterval + timing.Dwell + n*timing.DeleteInterval
}

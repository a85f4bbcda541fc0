package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/landing/internal/placeholder"
)

// maxSimulationSteps bounds a simulation run in case the timing would
// never complete a cycle.
const maxSimulationSteps = 1_000_000

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		cycles     int
		phasesOnly bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay the placeholder animation on a virtual clock",
		Long: `simulate drives the placeholder animator on a virtual clock and prints
every state change with its timestamp, without waiting in real time.

One cycle types, holds and deletes each prompt of the set once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cycles < 1 {
				return errors.New("simulate: --cycles must be at least 1")
			}
			cfg, _, err := opts.load(cmd)
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

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("At", "Phase", "Prompt", "Text", "Tab")

			clock := placeholder.NewManualClock()
			target := cycles * set.Len()
			completed := 0
			prev := placeholder.State{Phase: -1}
			observer := func(s placeholder.State) {
				if prev.Phase == placeholder.PhaseDeleting && s.Phase == placeholder.PhaseTyping {
					completed++
				}
				if !phasesOnly || s.Phase != prev.Phase {
					table.Append(
						clock.Now().String(),
						s.Phase.String(),
						strconv.Itoa(s.Index),
						strconv.Quote(s.Text),
						tabMark(s),
					)
				}
				prev = s
			}

			animator := placeholder.New(set, clock,
				placeholder.WithTiming(cfg.AnimatorTiming()),
				placeholder.WithLogger(logger.Named("animator")),
				placeholder.WithObserver(observer),
			)
			animator.Start()
			steps := 0
			for completed < target {
				if steps == maxSimulationSteps || !clock.Step() {
					animator.Stop()
					return fmt.Errorf("simulate: stopped after %d steps with %d of %d prompts shown", steps, completed, target)
				}
				steps++
			}
			animator.Stop()
			logger.Info("simulation finished",
				zap.Int("cycles", cycles),
				zap.Int("steps", steps),
				zap.Duration("virtual", clock.Now()),
			)
			return table.Render()
		},
	}
	cmd.Flags().IntVar(&cycles, "cycles", 1, "number of passes over the prompt set")
	cmd.Flags().BoolVar(&phasesOnly, "phases", false, "only print phase changes")
	return cmd
}

func tabMark(s placeholder.State) string {
	if s.TabAffordanceVisible() {
		return "yes"
	}
	return ""
}

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"claudeforge/internal/bootstrap"
	"claudeforge/internal/generate"
	"claudeforge/internal/writer"
)

var renderPlan bool

// planCmd shows what init would write.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the artifacts init would write and their outcomes",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	icfg, err := initializerConfig(cmd)
	if err != nil {
		return err
	}
	icfg.Force = force || cfg.Init.Force

	result, err := bootstrap.NewInitializer(icfg).Plan(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	outcomes := outcomeIndex(result.Outcome)
	for _, a := range result.Artifacts {
		fmt.Fprintf(out, "%s  %-12s %s\n", styleOutcome(outcomes[a.Path]), a.Kind, a.Path)
	}
	fmt.Fprintln(out, mutedStyle.Render(countsLine(result.Outcome)))

	if !renderPlan {
		return nil
	}
	for _, a := range result.Artifacts {
		if a.Path != generate.InstructionsPath {
			continue
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		rendered, err := r.Render(a.Content)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", a.Path, err)
		}
		fmt.Fprint(out, rendered)
	}
	return nil
}

func outcomeIndex(r writer.Result) map[string]writer.Outcome {
	idx := make(map[string]writer.Outcome, r.Total())
	for _, p := range r.Created {
		idx[p] = writer.Created
	}
	for _, p := range r.Updated {
		idx[p] = writer.Updated
	}
	for _, p := range r.Skipped {
		idx[p] = writer.Skipped
	}
	return idx
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"claudeforge/internal/bootstrap"
	"claudeforge/internal/logging"
	"claudeforge/internal/watch"
)

// watchCmd regenerates the configuration whenever a signal file changes.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate .claude/ whenever project files change",
	Long: `Runs init once, then watches the workspace root and .github/workflows and
re-runs it (never forced, never prompting) after changes settle.
Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	icfg, err := initializerConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	pipeline := bootstrap.NewInitializer(icfg)
	first, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	printSummary(out, first)

	w, err := watch.New(icfg.Workspace, cfg.GetDebounce(), cfg.Scan.IgnorePatterns, func(ctx context.Context, changed []string) {
		fmt.Fprintf(out, "\n%s %s\n", infoStyle.Render("changed:"), strings.Join(changed, ", "))
		result, err := pipeline.Run(ctx)
		if err != nil {
			logging.WatchWarn("rerun failed: %v", err)
			fmt.Fprintf(out, "%s %v\n", warnStyle.Render("rerun failed:"), err)
			return
		}
		fmt.Fprintln(out, mutedStyle.Render(countsLine(result.Outcome)))
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	fmt.Fprintf(out, "\nWatching %s (Ctrl+C to stop)\n", icfg.Workspace)
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return fmt.Errorf("failed to watch %s: %w", icfg.Workspace, err)
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}


package main

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"claudeforge/internal/bootstrap"
)

// initCmd writes the .claude/ configuration for the workspace.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Detect the stack and write .claude/ configuration",
	Long: `Detects the project's stack and writes the .claude/ configuration.

Generated skills, agents, rules, commands and settings are always rewritten.
.claude/CLAUDE.md and .claude/state/task.md are created once and then left
alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	icfg, err := initializerConfig(cmd)
	if err != nil {
		return err
	}
	icfg.Force = force || cfg.Init.Force
	icfg.DryRun = dryRun
	icfg.Interactive = cfg.Init.Interactive && !nonInteractive && promptable(cmd.InOrStdin())

	result, err := bootstrap.NewInitializer(icfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// initializerConfig builds the pipeline config shared by init, plan and watch.
func initializerConfig(cmd *cobra.Command) (bootstrap.Config, error) {
	root, err := workspaceRoot()
	if err != nil {
		return bootstrap.Config{}, err
	}
	icfg := bootstrap.DefaultConfig(root)
	icfg.Scan = scanOptions()
	icfg.Interactive = false
	icfg.Prompt = bootstrap.InteractiveConfig{
		Reader: bufio.NewReader(cmd.InOrStdin()),
		Writer: cmd.OutOrStdout(),
	}
	return icfg, nil
}

// promptable reports whether in can answer prompts: a terminal, or any
// non-file reader supplied by the caller.
func promptable(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

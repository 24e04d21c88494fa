package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"claudeforge/internal/bootstrap"
	"claudeforge/internal/config"
	"claudeforge/internal/logging"
	"claudeforge/internal/signals"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Init flags, shared by the root command
	force          bool
	nonInteractive bool
	dryRun         bool

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command. Without a subcommand it runs init.
var rootCmd = &cobra.Command{
	Use:   "claudeforge",
	Short: "Generate a .claude/ configuration tailored to a project's stack",
	Long: `claudeforge inspects a project directory, detects its languages, frameworks
and tooling, and writes a .claude/ directory with instructions, permissions,
skills, agents, rules and commands that match the detected stack.

Re-running regenerates everything except .claude/CLAUDE.md and
.claude/state/task.md, which are left alone unless --force is given.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
		if err := logging.Initialize(loaded.Logging, verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded
		logging.BootDebug("config loaded from %s", path)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runInit,
}

func addInitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite .claude/CLAUDE.md and .claude/state/task.md")
	cmd.Flags().BoolVarP(&nonInteractive, "yes", "y", false, "Never prompt; accept detected values")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be written without writing")
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config dir)")

	addInitFlags(rootCmd)
	addInitFlags(initCmd)
	planCmd.Flags().BoolVarP(&force, "force", "f", false, "Report .claude/CLAUDE.md and .claude/state/task.md as overwritten")
	planCmd.Flags().BoolVar(&renderPlan, "render", false, "Render the instructions document as formatted markdown")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// workspaceRoot resolves the --workspace flag and rejects anything that is
// not an existing directory.
func workspaceRoot() (string, error) {
	ws := workspace
	if ws == "" {
		var err error
		if ws, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return "", fmt.Errorf("%w: %s", bootstrap.ErrWorkspaceNotFound, ws)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", bootstrap.ErrWorkspaceNotFound, abs)
	}
	return abs, nil
}

func scanOptions() signals.Options {
	return signals.Options{
		MaxDepth:    cfg.Scan.MaxDepth,
		ExtraIgnore: cfg.Scan.IgnorePatterns,
	}
}

// Package bootstrap runs the claudeforge pipeline over one workspace:
// collect signals, classify the stack, synthesize artifacts and write them
// under .claude/.
//
// Related files:
//   - project.go: ProjectInfo derivation from manifests
//   - interactive.go: prompts for projects with no detectable stack
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"claudeforge/internal/detect"
	"claudeforge/internal/generate"
	"claudeforge/internal/logging"
	"claudeforge/internal/signals"
	"claudeforge/internal/writer"
)

// ErrWorkspaceNotFound is returned when the workspace is missing or not a directory.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// Progress is a pipeline status update.
type Progress struct {
	Phase   string  // collect, classify, describe, prompt, generate, write, complete
	Message string  // human-readable status
	Percent float64 // 0.0 - 1.0
}

// Config holds configuration for one pipeline run.
type Config struct {
	Workspace    string
	Interactive  bool // prompt for details when no stack is detected
	Force        bool // overwrite preserved files
	DryRun       bool // compute outcomes without writing
	Scan         signals.Options
	Prompt       InteractiveConfig
	ProgressChan chan Progress
}

// DefaultConfig returns defaults for workspace ("" means the working directory).
func DefaultConfig(workspace string) Config {
	if workspace == "" {
		workspace, _ = os.Getwd()
	}
	return Config{
		Workspace:   workspace,
		Interactive: true,
		Scan:        signals.Options{MaxDepth: signals.DefaultMaxDepth},
		Prompt:      DefaultInteractiveConfig(),
	}
}

// Result summarizes a pipeline run.
type Result struct {
	Workspace string
	Stack     detect.StackDescriptor
	Project   generate.ProjectInfo
	Artifacts []generate.Artifact
	Outcome   writer.Result
	Prompted  bool
	DryRun    bool
	Duration  time.Duration
}

// Initializer runs the pipeline.
type Initializer struct {
	config Config
}

// NewInitializer creates a new initializer.
func NewInitializer(config Config) *Initializer {
	if config.Prompt.Reader == nil || config.Prompt.Writer == nil {
		def := DefaultInteractiveConfig()
		if config.Prompt.Reader == nil {
			config.Prompt.Reader = def.Reader
		}
		if config.Prompt.Writer == nil {
			config.Prompt.Writer = def.Writer
		}
	}
	return &Initializer{config: config}
}

// Plan runs every stage except persistence. Result.Outcome holds the
// outcomes a write would produce.
func (i *Initializer) Plan(ctx context.Context) (*Result, error) {
	start := time.Now()

	root, err := i.resolveWorkspace()
	if err != nil {
		return nil, err
	}
	result := &Result{Workspace: root, DryRun: true}
	logging.Boot("planning workspace %s", root)

	// Collect
	i.sendProgress("collect", "Collecting project signals...", 0.1)
	bundle := signals.Collect(root, i.config.Scan)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Classify
	i.sendProgress("classify", "Classifying stack...", 0.3)
	result.Stack = detect.Classify(bundle)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Describe
	i.sendProgress("describe", "Deriving project metadata...", 0.4)
	result.Project = DeriveProjectInfo(bundle)

	// Prompt
	if i.config.Interactive && isSignalless(result.Stack) {
		i.sendProgress("prompt", "Asking for project details...", 0.5)
		answers, err := PromptProjectDetails(i.config.Prompt, result.Project.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to read project details: %w", err)
		}
		result.Prompted = true
		if result.Project.Description == "" {
			result.Project.Description = answers.Description
		}
		result.Stack = result.Stack.WithFallbackLanguage(answers.Language)
		logging.BootDebug("prompt answers: description=%q language=%q", answers.Description, answers.Language)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Generate
	i.sendProgress("generate", "Synthesizing artifacts...", 0.6)
	result.Artifacts = writer.MarkNew(root, generate.Generate(result.Stack, result.Project))

	outcome, err := writer.Write(root, result.Artifacts, writer.Options{Force: i.config.Force, DryRun: true})
	if err != nil {
		return nil, err
	}
	result.Outcome = outcome
	result.Duration = time.Since(start)
	return result, nil
}

// Run executes the full pipeline. Write failures abort the run; files
// already written are left in place.
func (i *Initializer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	result, err := i.Plan(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if i.config.DryRun {
		i.sendProgress("complete", "Dry run complete", 1.0)
		result.Duration = time.Since(start)
		return result, nil
	}

	i.sendProgress("write", "Writing artifacts...", 0.8)
	outcome, err := writer.Write(result.Workspace, result.Artifacts, writer.Options{Force: i.config.Force})
	result.Outcome = outcome
	if err != nil {
		return result, err
	}
	result.DryRun = false
	result.Duration = time.Since(start)

	i.sendProgress("complete", "Initialization complete", 1.0)
	logging.Boot("run complete in %s", result.Duration)
	return result, nil
}

func (i *Initializer) resolveWorkspace() (string, error) {
	ws := i.config.Workspace
	if ws == "" {
		ws = "."
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWorkspaceNotFound, ws, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrWorkspaceNotFound, abs)
	}
	return abs, nil
}

// isSignalless reports whether classification found nothing to go on.
func isSignalless(d detect.StackDescriptor) bool {
	return !d.HasStack() && d.PackageManager == ""
}

// sendProgress sends a progress update if channel is configured.
func (i *Initializer) sendProgress(phase, message string, percent float64) {
	if i.config.ProgressChan != nil {
		select {
		case i.config.ProgressChan <- Progress{
			Phase:   phase,
			Message: message,
			Percent: percent,
		}:
		default:
			// Don't block if channel is full
		}
	}
}

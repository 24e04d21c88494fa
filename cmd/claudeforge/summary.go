package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"claudeforge/internal/bootstrap"
	"claudeforge/internal/writer"
)

var (
	success = lipgloss.Color("#8BC34A")
	warning = lipgloss.Color("#FFC107")
	info    = lipgloss.Color("#2196F3")
	muted   = lipgloss.Color("#6B7280")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(success)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	createdStyle = lipgloss.NewStyle().Foreground(success)
	updatedStyle = lipgloss.NewStyle().Foreground(info)
	skippedStyle = lipgloss.NewStyle().Foreground(warning)
	infoStyle    = lipgloss.NewStyle().Foreground(info)
	warnStyle    = lipgloss.NewStyle().Foreground(warning)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
)

func styleOutcome(o writer.Outcome) string {
	label := fmt.Sprintf("%-7s", o)
	switch o {
	case writer.Created:
		return createdStyle.Render(label)
	case writer.Updated:
		return updatedStyle.Render(label)
	case writer.Skipped:
		return skippedStyle.Render(label)
	default:
		return label
	}
}

func countsLine(r writer.Result) string {
	return fmt.Sprintf("%d created, %d updated, %d skipped", len(r.Created), len(r.Updated), len(r.Skipped))
}

// printSummary prints the result of an init run.
func printSummary(w io.Writer, r *bootstrap.Result) {
	title := "claudeforge: " + r.Project.Name
	if r.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(w, titleStyle.Render(title))

	stack := append(append([]string{}, r.Stack.Languages...), r.Stack.Frameworks...)
	if r.Stack.PackageManager != "" {
		stack = append(stack, r.Stack.PackageManager)
	}
	if len(stack) == 0 {
		stack = []string{"nothing detected"}
	}
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Stack:"), strings.Join(stack, " · "))

	outcomes := outcomeIndex(r.Outcome)
	for _, a := range r.Artifacts {
		fmt.Fprintf(w, "  %s %s\n", styleOutcome(outcomes[a.Path]), a.Path)
	}

	fmt.Fprintf(w, "\n%s in %s\n", countsLine(r.Outcome), r.Duration.Round(time.Millisecond))
	if len(r.Outcome.Skipped) > 0 {
		fmt.Fprintln(w, mutedStyle.Render("Skipped files are user-owned; pass --force to overwrite them."))
	}
}

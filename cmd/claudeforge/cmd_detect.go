package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"claudeforge/internal/detect"
	"claudeforge/internal/signals"
)

// detectCmd prints the classification without writing anything.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the detected stack as YAML",
	Args:  cobra.NoArgs,
	RunE:  runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	d := detect.Classify(signals.Collect(root, scanOptions()))

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode stack: %w", err)
	}
	return enc.Close()
}

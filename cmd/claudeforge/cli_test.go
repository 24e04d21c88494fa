package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"claudeforge/internal/bootstrap"
	"claudeforge/internal/detect"
	"claudeforge/internal/logging"
)

// execute runs the root command with fresh flag state and returns stdout.
func execute(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	verbose, workspace, configPath = false, "", ""
	force, nonInteractive, dryRun, renderPlan = false, false, false, false
	cfg = nil
	t.Cleanup(logging.Reset)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestInitCmd(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, ws, "package.json", `{"name":"storefront","dependencies":{"next":"14.2.0","react":"18.3.0"}}`)
	writeFile(t, ws, "pnpm-lock.yaml", "")

	out, err := execute(t, context.Background(), "", "init", "-y", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "claudeforge: storefront")
	assert.Contains(t, out, "nextjs · pnpm")
	assert.Contains(t, out, "created")
	assert.FileExists(t, filepath.Join(ws, ".claude", "CLAUDE.md"))
	assert.FileExists(t, filepath.Join(ws, ".claude", "skills", "nextjs-patterns", "SKILL.md"))

	// Second run leaves user-owned files alone
	out, err = execute(t, context.Background(), "", "init", "-y", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "0 created")
	assert.Contains(t, out, "2 skipped")
	assert.Contains(t, out, "--force")

	out, err = execute(t, context.Background(), "", "init", "-y", "--force", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "0 skipped")
}

func TestRootRunsInit(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, ws, "go.mod", "module example.com/tool\n\ngo 1.22\n")

	out, err := execute(t, context.Background(), "", "-y", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "claudeforge: tool")
	assert.FileExists(t, filepath.Join(ws, ".claude", "rules", "go.md"))
}

func TestInitCmd_PromptsForEmptyWorkspace(t *testing.T) {
	ws := t.TempDir()

	out, err := execute(t, context.Background(), "Note taking CLI\n3\n", "init", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "No project files detected")
	assert.FileExists(t, filepath.Join(ws, ".claude", "rules", "python.md"))

	doc, err := os.ReadFile(filepath.Join(ws, ".claude", "CLAUDE.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Note taking CLI")
}

func TestInitCmd_YesSkipsPrompt(t *testing.T) {
	ws := t.TempDir()

	out, err := execute(t, context.Background(), "ignored\n3\n", "init", "-y", "-w", ws)
	require.NoError(t, err)
	assert.NotContains(t, out, "No project files detected")
	assert.Contains(t, out, "nothing detected")
	assert.NoFileExists(t, filepath.Join(ws, ".claude", "rules", "python.md"))
}

func TestInitCmd_DryRun(t *testing.T) {
	ws := t.TempDir()

	out, err := execute(t, context.Background(), "", "init", "-y", "--dry-run", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "(dry run)")
	assert.NoDirExists(t, filepath.Join(ws, ".claude"))
}

func TestInitCmd_MissingWorkspace(t *testing.T) {
	ws := filepath.Join(t.TempDir(), "missing")

	_, err := execute(t, context.Background(), "", "init", "-y", "-w", ws)
	require.Error(t, err)
	assert.ErrorIs(t, err, bootstrap.ErrWorkspaceNotFound)
	assert.NoDirExists(t, ws)
}

func TestInvalidConfigRejected(t *testing.T) {
	ws := t.TempDir()
	conf := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("logging:\n  level: loud\n"), 0644))

	_, err := execute(t, context.Background(), "", "init", "-y", "-w", ws, "--config", conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.NoDirExists(t, filepath.Join(ws, ".claude"))
}

func TestDetectCmd(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, ws, "pyproject.toml", "[project]\nname = \"api\"\ndependencies = [\"fastapi\", \"pytest\"]\n")
	writeFile(t, ws, "Dockerfile", "FROM python:3.12\n")

	out, err := execute(t, context.Background(), "", "detect", "-w", ws)
	require.NoError(t, err)

	var d detect.StackDescriptor
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Equal(t, []string{"python"}, d.Languages)
	assert.Equal(t, []string{"fastapi"}, d.Frameworks)
	assert.True(t, d.HasDocker)
	assert.NoDirExists(t, filepath.Join(ws, ".claude"))
}

func TestPlanCmd(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, ws, "Cargo.toml", "[package]\nname = \"crab\"\n")
	writeFile(t, ws, ".claude/state/task.md", "# Current Task\n\nPort the parser\n")

	out, err := execute(t, context.Background(), "", "plan", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, out, ".claude/rules/rust.md")
	assert.Contains(t, out, ".claude/settings.json")
	assert.Regexp(t, `skipped\s+task\s+\.claude/state/task\.md`, out)
	assert.Contains(t, out, "1 skipped")
	assert.NoFileExists(t, filepath.Join(ws, ".claude", "CLAUDE.md"))

	rendered, err := execute(t, context.Background(), "", "plan", "--render", "-w", ws)
	require.NoError(t, err)
	assert.Contains(t, rendered, "crab")
	assert.Contains(t, rendered, "Quick Start")
}

func TestPlanCmd_Force(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, ws, ".claude/state/task.md", "# Current Task\n\nPort the parser\n")

	out, err := execute(t, context.Background(), "", "plan", "--force", "-w", ws)
	require.NoError(t, err)
	assert.Regexp(t, `updated\s+task\s+\.claude/state/task\.md`, out)
	assert.Contains(t, out, "0 skipped")

	data, err := os.ReadFile(filepath.Join(ws, ".claude", "state", "task.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Current Task\n\nPort the parser\n", string(data))
}

func TestWatchCmd_CancelledContext(t *testing.T) {
	ws := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := execute(t, ctx, "", "watch", "-w", ws)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, context.Background(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "claudeforge "+Version+"\n", out)
}

func TestVersionCmd_IgnoresBrokenConfig(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("logging: [unterminated\n"), 0644))

	out, err := execute(t, context.Background(), "", "version", "--config", conf)
	require.NoError(t, err)
	assert.Equal(t, "claudeforge "+Version+"\n", out)
}

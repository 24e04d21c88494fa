package generate

import (
	"encoding/json"
	"path"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudeforge/internal/detect"
)

func find(t *testing.T, artifacts []Artifact, p string) Artifact {
	t.Helper()
	for _, a := range artifacts {
		if a.Path == p {
			return a
		}
	}
	t.Fatalf("artifact %s not generated; have %v", p, Paths(artifacts))
	return Artifact{}
}

func has(artifacts []Artifact, p string) bool {
	for _, a := range artifacts {
		if a.Path == p {
			return true
		}
	}
	return false
}

var nextStack = detect.StackDescriptor{
	Languages:        []string{"typescript"},
	Frameworks:       []string{"nextjs", "tailwind"},
	PackageManager:   "pnpm",
	TestingFramework: "vitest",
	Linter:           "eslint",
	Formatter:        "prettier",
	Bundler:          "turbopack",
	HasDocker:        true,
}

func TestGenerate_EmptyStack(t *testing.T) {
	artifacts := Generate(detect.StackDescriptor{}, ProjectInfo{Name: "blank"})

	want := []string{
		SettingsPath,
		TaskPath,
		".claude/skills/pattern-discovery/SKILL.md",
		".claude/skills/systematic-debugging/SKILL.md",
		".claude/skills/testing-methodology/SKILL.md",
		".claude/skills/iterative-development/SKILL.md",
		".claude/agents/code-reviewer.md",
		".claude/agents/test-writer.md",
		".claude/rules/code-style.md",
		".claude/commands/task.md",
		".claude/commands/status.md",
		".claude/commands/done.md",
		".claude/commands/analyze.md",
		".claude/commands/code-review.md",
		InstructionsPath,
	}
	if diff := cmp.Diff(want, Paths(artifacts)); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	task := find(t, artifacts, TaskPath)
	assert.Equal(t, KindTask, task.Kind)
	assert.Contains(t, task.Content, "No active task")
	for _, section := range []string{"## Status", "## Task Description", "## Next Steps", "## Decisions"} {
		assert.Contains(t, task.Content, section)
	}

	doc := find(t, artifacts, InstructionsPath)
	assert.True(t, strings.HasPrefix(doc.Content, "# blank\n"))
	assert.NotContains(t, doc.Content, "## Stack")
	assert.Contains(t, doc.Content, "No build or test commands were detected")
	assert.Contains(t, doc.Content, "No package manager was detected")
}

func TestGenerate_InvariantsAcrossStacks(t *testing.T) {
	stacks := map[string]detect.StackDescriptor{
		"empty":  {},
		"nextjs": nextStack,
		"python": {Languages: []string{"python"}, Frameworks: []string{"fastapi", "django"}, PackageManager: "poetry", TestingFramework: "pytest", Linter: "ruff", Formatter: "ruff"},
		"go":     {Languages: []string{"go"}, PackageManager: "go", TestingFramework: "go-test", Linter: "golangci-lint", Formatter: "gofmt"},
	}
	for name, d := range stacks {
		t.Run(name, func(t *testing.T) {
			artifacts := Generate(d, ProjectInfo{Name: name})
			require.NotEmpty(t, artifacts)

			assert.Equal(t, InstructionsPath, artifacts[len(artifacts)-1].Path, "instructions come last")

			seen := map[string]bool{}
			for _, a := range artifacts {
				assert.False(t, seen[a.Path], "duplicate path %s", a.Path)
				seen[a.Path] = true
				assert.True(t, strings.HasPrefix(a.Path, ".claude/"), a.Path)
				assert.False(t, a.IsNew, "synthesis never sets IsNew")
				assert.NotEmpty(t, a.Content)
			}

			for _, kind := range []Kind{KindSkill, KindAgent, KindRule, KindCommand} {
				for _, a := range OfKind(artifacts, kind) {
					fm, body, err := ParseFrontMatter(a.Content)
					require.NoError(t, err, a.Path)
					assert.NotEmpty(t, fm.Name, a.Path)
					assert.NotEmpty(t, fm.Description, a.Path)
					assert.NotEmpty(t, body, a.Path)
					assert.NotContains(t, body, "<no value>", a.Path)
				}
			}

			if diff := cmp.Diff(artifacts, Generate(d, ProjectInfo{Name: name})); diff != "" {
				t.Errorf("Generate not deterministic:\n%s", diff)
			}
		})
	}
}

func TestGenerate_NextJSProject(t *testing.T) {
	artifacts := Generate(nextStack, ProjectInfo{Name: "shop", Description: "Storefront"})

	assert.True(t, has(artifacts, ".claude/skills/nextjs-patterns/SKILL.md"))
	assert.False(t, has(artifacts, ".claude/skills/react-components/SKILL.md"))
	assert.True(t, has(artifacts, ".claude/rules/typescript.md"))
	assert.False(t, has(artifacts, ".claude/rules/javascript.md"))

	doc := find(t, artifacts, InstructionsPath).Content
	assert.Contains(t, doc, "Storefront")
	assert.Contains(t, doc, "## Stack")
	assert.Contains(t, doc, "- **Frameworks:** nextjs, tailwind")
	assert.Contains(t, doc, "- **Package manager:** pnpm")
	assert.Contains(t, doc, "| Install | `pnpm install` |")
	assert.Contains(t, doc, "`pnpm add <package>`")
	assert.Contains(t, doc, "`nextjs-patterns`")
	assert.NotContains(t, doc, "react-components")
	assert.Contains(t, doc, "`/code-review`")

	order := []string{"# shop", "## Quick Start", "## Stack", "## Commands", "## Common Operations", "## Rules", "## Skills and Agents"}
	last := -1
	for _, heading := range order {
		i := strings.Index(doc, heading)
		require.GreaterOrEqual(t, i, 0, heading)
		assert.Greater(t, i, last, "%s out of order", heading)
		last = i
	}
}

func TestGenerate_FrameworkSkillWhitelist(t *testing.T) {
	tests := []struct {
		frameworks []string
		want       []string
	}{
		{[]string{"react"}, []string{"react-components"}},
		{[]string{"express", "prisma"}, []string{"express-patterns"}},
		{[]string{"fastapi", "django"}, []string{"fastapi-patterns", "django-patterns"}},
		{[]string{"vue", "tailwind"}, nil},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.frameworks, "+"), func(t *testing.T) {
			artifacts := Generate(detect.StackDescriptor{Frameworks: tt.frameworks}, ProjectInfo{Name: "x"})
			var got []string
			for _, a := range OfKind(artifacts, KindSkill) {
				name := path.Base(path.Dir(a.Path))
				switch name {
				case "pattern-discovery", "systematic-debugging", "testing-methodology", "iterative-development":
					continue
				}
				got = append(got, name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_TestingExampleFollowsFramework(t *testing.T) {
	tests := []struct {
		testing string
		marker  string
	}{
		{"vitest", `from "vitest"`},
		{"jest", `from "@jest/globals"`},
		{"playwright", "@playwright/test"},
		{"cypress", "cy.visit"},
		{"pytest", "def test_parses_decimal_amount"},
		{"go-test", "func TestParsePrice"},
		{"cargo-test", "#[cfg(test)]"},
		{"rspec", "RSpec.describe"},
		{"", "Write a failing test"},
	}
	for _, tt := range tests {
		t.Run(tt.testing, func(t *testing.T) {
			artifacts := Generate(detect.StackDescriptor{TestingFramework: tt.testing}, ProjectInfo{Name: "x"})
			skill := find(t, artifacts, ".claude/skills/testing-methodology/SKILL.md")
			assert.Contains(t, skill.Content, tt.marker)
		})
	}
}

func TestGenerate_AgentsCarryCommands(t *testing.T) {
	d := detect.StackDescriptor{Languages: []string{"python"}, PackageManager: "poetry", TestingFramework: "pytest", Linter: "ruff"}
	artifacts := Generate(d, ProjectInfo{Name: "api"})

	reviewer := find(t, artifacts, ".claude/agents/code-reviewer.md")
	assert.Contains(t, reviewer.Content, "`poetry run ruff check .`")
	assert.Contains(t, reviewer.Content, "`poetry run pytest`")

	fm, _, err := ParseFrontMatter(reviewer.Content)
	require.NoError(t, err)
	assert.Equal(t, "code-reviewer", fm.Name)
	assert.Equal(t, []string{"Read", "Grep", "Glob", "Bash"}, fm.Tools)

	writer := find(t, artifacts, ".claude/agents/test-writer.md")
	assert.Contains(t, writer.Content, "**pytest**")

	bare := Generate(detect.StackDescriptor{}, ProjectInfo{Name: "x"})
	assert.Contains(t, find(t, bare, ".claude/agents/code-reviewer.md").Content, "No linter is configured")
}

func TestGenerate_Rules(t *testing.T) {
	d := detect.StackDescriptor{Languages: []string{"go", "python", "ruby"}, Linter: "golangci-lint", Formatter: "gofmt", PackageManager: "go"}
	artifacts := Generate(d, ProjectInfo{Name: "x"})

	var names []string
	for _, a := range OfKind(artifacts, KindRule) {
		names = append(names, strings.TrimSuffix(path.Base(a.Path), ".md"))
	}
	assert.Equal(t, []string{"python", "go", "code-style"}, names)

	fm, _, err := ParseFrontMatter(find(t, artifacts, ".claude/rules/go.md").Content)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.go"}, fm.Globs)

	style := find(t, artifacts, ".claude/rules/code-style.md").Content
	assert.Contains(t, style, "**golangci-lint**: `golangci-lint run`")
	assert.Contains(t, style, "**gofmt**: `gofmt -w .`")

	bare := find(t, Generate(detect.StackDescriptor{}, ProjectInfo{Name: "x"}), ".claude/rules/code-style.md").Content
	assert.Contains(t, bare, "No linter or formatter was detected")
}

func TestBuildPermissions(t *testing.T) {
	d := detect.StackDescriptor{
		Languages:        []string{"go"},
		PackageManager:   "go",
		TestingFramework: "go-test",
		HasDocker:        true,
	}
	allow := BuildPermissions(d)

	assert.True(t, sort.StringsAreSorted(allow))
	count := map[string]int{}
	for _, p := range allow {
		count[p]++
		assert.Regexp(t, `^[A-Za-z]+\(.+:\*\)$`, p)
	}
	for p, n := range count {
		assert.Equal(t, 1, n, "duplicate %s", p)
	}
	assert.Contains(t, allow, "Bash(go test:*)")
	assert.Contains(t, allow, "Bash(docker compose:*)")
	assert.Contains(t, allow, "Bash(git status:*)")

	without := BuildPermissions(detect.StackDescriptor{})
	assert.NotContains(t, without, "Bash(docker compose:*)")
	assert.ElementsMatch(t, basePermissions, without)
}

func TestSettingsArtifact(t *testing.T) {
	artifacts := Generate(nextStack, ProjectInfo{Name: "shop"})
	a := find(t, artifacts, SettingsPath)
	assert.Equal(t, KindSettings, a.Kind)

	var s Settings
	require.NoError(t, json.Unmarshal([]byte(a.Content), &s))
	assert.Equal(t, SettingsSchema, s.Schema)
	assert.Contains(t, s.Permissions.Allow, "Bash(pnpm:*)")
	assert.Contains(t, s.Permissions.Allow, "Bash(npx vitest:*)")
	assert.Equal(t, BuildPermissions(nextStack), s.Permissions.Allow)
}

func TestResolveCommands(t *testing.T) {
	tests := []struct {
		name string
		d    detect.StackDescriptor
		want Commands
	}{
		{
			name: "none",
			d:    detect.StackDescriptor{},
			want: Commands{},
		},
		{
			name: "pnpm with prettier",
			d:    detect.StackDescriptor{PackageManager: "pnpm", TestingFramework: "vitest", Linter: "eslint", Formatter: "prettier"},
			want: Commands{Install: "pnpm install", Dev: "pnpm dev", Build: "pnpm build", Test: "pnpm test", Lint: "pnpm lint", Format: "pnpm exec prettier --write ."},
		},
		{
			name: "uv with ruff",
			d:    detect.StackDescriptor{PackageManager: "uv", TestingFramework: "pytest", Linter: "ruff", Formatter: "ruff"},
			want: Commands{Install: "uv sync", Test: "uv run pytest", Lint: "uv run ruff check .", Format: "uv run ruff format ."},
		},
		{
			name: "go with golangci",
			d:    detect.StackDescriptor{PackageManager: "go", TestingFramework: "go-test", Linter: "golangci-lint", Formatter: "gofmt"},
			want: Commands{Install: "go mod download", Build: "go build ./...", Test: "go test ./...", Lint: "golangci-lint run", Format: "gofmt -w ."},
		},
		{
			name: "pytest without manager",
			d:    detect.StackDescriptor{TestingFramework: "pytest"},
			want: Commands{Test: "pytest"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCommands(tt.d))
		})
	}
}

func TestParseFrontMatter(t *testing.T) {
	content := document(FrontMatter{Name: "go", Description: "Go: conventions", Globs: []string{"**/*.go"}}, "# Go\n\nBody.\n")
	assert.True(t, strings.HasPrefix(content, "---\nname: go\n"))

	fm, body, err := ParseFrontMatter(content)
	require.NoError(t, err)
	assert.Equal(t, FrontMatter{Name: "go", Description: "Go: conventions", Globs: []string{"**/*.go"}}, fm)
	assert.Equal(t, "# Go\n\nBody.", body)

	fm, body, err = ParseFrontMatter("# Plain\n")
	require.NoError(t, err)
	assert.Equal(t, FrontMatter{}, fm)
	assert.Equal(t, "# Plain\n", body)

	_, _, err = ParseFrontMatter("---\nname: x\n")
	assert.Error(t, err)

	_, _, err = ParseFrontMatter("---\nname: [unclosed\n---\n")
	assert.Error(t, err)
}

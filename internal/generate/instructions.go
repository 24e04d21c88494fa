package generate

import (
	"fmt"
	"strings"

	"claudeforge/internal/detect"
)

// instructionRules are the fixed working rules listed in every CLAUDE.md.
var instructionRules = []string{
	"Read `.claude/state/task.md` before changing code and keep it current.",
	"Search for an existing pattern before writing new code.",
	"Make one focused change at a time and verify it before the next.",
	"Run the tests and linters before declaring work done.",
	"Never commit secrets, credentials or generated build output.",
	"Ask before deleting files or changing public interfaces.",
}

// instructions assembles CLAUDE.md from ordered sections. artifacts is every
// other document generated in this run; the index lists exactly those.
func (g *generator) instructions(artifacts []Artifact) Artifact {
	sections := []string{
		g.headerSection(),
		quickStartSection(),
		stackSection(g.data.Stack),
		commandSection(g.data.Commands),
		operationsSection(g.data.Stack.PackageManager),
		rulesSection(),
		indexSection(artifacts),
	}

	var parts []string
	for _, s := range sections {
		if s != "" {
			parts = append(parts, strings.TrimRight(s, "\n"))
		}
	}
	return Artifact{
		Kind:    KindInstructions,
		Path:    InstructionsPath,
		Content: strings.Join(parts, "\n\n") + "\n",
	}
}

func (g *generator) headerSection() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", g.data.Project.Name)
	if g.data.Project.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", g.data.Project.Description)
	}
	return sb.String()
}

func quickStartSection() string {
	return "## Quick Start\n\n" +
		"Read `.claude/state/task.md` first. It records the active task, the next steps and the decisions made so far.\n" +
		"Use `/task` to start work, `/status` to check progress and `/done` to close out.\n"
}

// stackSection is omitted entirely when nothing was detected.
func stackSection(d detect.StackDescriptor) string {
	if !d.HasStack() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("## Stack\n\n")
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "- **%s:** %s\n", label, value)
		}
	}
	line("Languages", strings.Join(d.Languages, ", "))
	line("Frameworks", strings.Join(d.Frameworks, ", "))
	line("Package manager", d.PackageManager)
	line("Testing", d.TestingFramework)
	line("Linter", d.Linter)
	line("Formatter", d.Formatter)
	line("Bundler", d.Bundler)
	line("CI/CD", d.CICDPlatform)
	if d.IsMonorepo {
		line("Layout", "monorepo")
	}
	if d.HasDocker {
		line("Containers", "Docker")
	}
	return sb.String()
}

func commandSection(c Commands) string {
	rows := []struct{ task, cmd string }{
		{"Install", c.Install},
		{"Dev", c.Dev},
		{"Build", c.Build},
		{"Test", c.Test},
		{"Lint", c.Lint},
		{"Format", c.Format},
	}

	var sb strings.Builder
	sb.WriteString("## Commands\n\n")
	n := 0
	for _, r := range rows {
		if r.cmd == "" {
			continue
		}
		if n == 0 {
			sb.WriteString("| Task | Command |\n|------|---------|\n")
		}
		fmt.Fprintf(&sb, "| %s | `%s` |\n", r.task, r.cmd)
		n++
	}
	if n == 0 {
		sb.WriteString("No build or test commands were detected. Add them here once they exist.\n")
	}
	return sb.String()
}

func operationsSection(pm string) string {
	var sb strings.Builder
	sb.WriteString("## Common Operations\n\n")

	add := addCommand(pm)
	switch pm {
	case "npm", "pnpm", "yarn", "bun":
		fmt.Fprintf(&sb, "- Add a dependency: `%s`\n", add)
		fmt.Fprintf(&sb, "- Add a dev dependency: `%s -D`\n", add)
		fmt.Fprintf(&sb, "- Run a script: `%s`\n", runScript(pm))
	case "poetry", "uv", "pipenv", "pip":
		fmt.Fprintf(&sb, "- Add a dependency: `%s`\n", add)
		fmt.Fprintf(&sb, "- Run a module: `%spython -m <module>`\n", pythonRunPrefix(pm))
	case "go":
		fmt.Fprintf(&sb, "- Add a dependency: `%s`\n", add)
		sb.WriteString("- Tidy modules: `go mod tidy`\n")
		sb.WriteString("- Run one test: `go test ./... -run <TestName>`\n")
	case "cargo":
		fmt.Fprintf(&sb, "- Add a dependency: `%s`\n", add)
		sb.WriteString("- Run one test: `cargo test <name>`\n")
	case "bundler", "composer":
		fmt.Fprintf(&sb, "- Add a dependency: `%s`\n", add)
	case "maven", "gradle", "mix":
		sb.WriteString("- Declare dependencies in the build file, then re-run the install command.\n")
	default:
		sb.WriteString("- No package manager was detected. Record how dependencies are managed here.\n")
	}
	return sb.String()
}

func runScript(pm string) string {
	switch pm {
	case "npm", "bun":
		return pm + " run <script>"
	default:
		return pm + " <script>"
	}
}

func rulesSection() string {
	var sb strings.Builder
	sb.WriteString("## Rules\n\n")
	for i, r := range instructionRules {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r)
	}
	return sb.String()
}

// indexSection lists skills, agents, rules and commands from their front matter.
func indexSection(artifacts []Artifact) string {
	groups := []struct {
		kind  Kind
		title string
	}{
		{KindSkill, "Skills"},
		{KindAgent, "Agents"},
		{KindRule, "Rules"},
		{KindCommand, "Commands"},
	}

	var sb strings.Builder
	sb.WriteString("## Skills and Agents\n")
	for _, grp := range groups {
		docs := OfKind(artifacts, grp.kind)
		if len(docs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n### %s\n\n", grp.title)
		for _, a := range docs {
			fm, _, err := ParseFrontMatter(a.Content)
			if err != nil || fm.Name == "" {
				continue
			}
			label := fm.Name
			if grp.kind == KindCommand {
				label = "/" + fm.Name
			}
			fmt.Fprintf(&sb, "- `%s`: %s (`%s`)\n", label, fm.Description, a.Path)
		}
	}
	return sb.String()
}

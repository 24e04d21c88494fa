// Package generate synthesizes the .claude/ configuration documents for a
// classified project.
//
// Every function here is pure: output depends only on the StackDescriptor and
// ProjectInfo passed in. Nothing reads or writes the file system.
package generate

import "path"

// Kind categorizes a generated document.
type Kind string

const (
	KindInstructions Kind = "instructions"
	KindSettings     Kind = "settings"
	KindTask         Kind = "task"
	KindSkill        Kind = "skill"
	KindAgent        Kind = "agent"
	KindRule         Kind = "rule"
	KindCommand      Kind = "command"
)

// Well-known artifact paths, slash-separated and relative to the project root.
const (
	InstructionsPath = ".claude/CLAUDE.md"
	SettingsPath     = ".claude/settings.json"
	TaskPath         = ".claude/state/task.md"
)

// Artifact is one generated document awaiting persistence.
type Artifact struct {
	Kind    Kind
	Path    string
	Content string
	IsNew   bool // set by the writer, never by synthesis
}

// ProjectInfo is descriptive metadata used in document headers.
type ProjectInfo struct {
	Name        string
	Description string
}

func skillPath(name string) string   { return path.Join(".claude", "skills", name, "SKILL.md") }
func agentPath(name string) string   { return path.Join(".claude", "agents", name+".md") }
func rulePath(name string) string    { return path.Join(".claude", "rules", name+".md") }
func commandPath(name string) string { return path.Join(".claude", "commands", name+".md") }

// Paths returns the artifact paths in order.
func Paths(artifacts []Artifact) []string {
	out := make([]string, len(artifacts))
	for i, a := range artifacts {
		out[i] = a.Path
	}
	return out
}

// OfKind filters artifacts by kind, preserving order.
func OfKind(artifacts []Artifact, kind Kind) []Artifact {
	var out []Artifact
	for _, a := range artifacts {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

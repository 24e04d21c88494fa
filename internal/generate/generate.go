package generate

import (
	"text/template"

	"claudeforge/internal/detect"
	"claudeforge/internal/logging"
)

type generator struct {
	data templateData
}

// Generate synthesizes the full artifact list for a classified project. The
// instructions document comes last so its index reflects every other
// artifact.
func Generate(d detect.StackDescriptor, info ProjectInfo) []Artifact {
	if info.Name == "" {
		info.Name = "Project"
	}
	g := &generator{data: templateData{
		Project:  info,
		Stack:    d,
		Commands: ResolveCommands(d),
	}}

	artifacts := []Artifact{settingsArtifact(d), g.task()}
	artifacts = append(artifacts, g.skills()...)
	artifacts = append(artifacts, g.agents()...)
	artifacts = append(artifacts, g.rules()...)
	artifacts = append(artifacts, g.commands()...)
	artifacts = append(artifacts, g.instructions(artifacts))

	logging.Generate("synthesized %d artifacts for %q", len(artifacts), info.Name)
	for _, a := range artifacts {
		logging.GenerateDebug("%-12s %s (%d bytes)", a.Kind, a.Path, len(a.Content))
	}
	return artifacts
}

// doc renders one front-matter document.
func (g *generator) doc(kind Kind, path string, set *template.Template, spec docSpec) Artifact {
	return Artifact{
		Kind:    kind,
		Path:    path,
		Content: document(spec.frontMatter(), render(set, spec.name, g.data)),
	}
}

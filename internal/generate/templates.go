package generate

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"claudeforge/internal/detect"
)

// templateFS holds the markdown bodies, one directory per artifact kind.
//
//go:embed templates
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

var (
	skillTemplates   = mustParse("skills")
	agentTemplates   = mustParse("agents")
	ruleTemplates    = mustParse("rules")
	commandTemplates = mustParse("commands")
	stateTemplates   = mustParse("state")
)

func mustParse(dir string) *template.Template {
	return template.Must(template.New(dir).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+dir+"/*.md"))
}

// templateData is the value every body template executes against.
type templateData struct {
	Project  ProjectInfo
	Stack    detect.StackDescriptor
	Commands Commands
}

// render executes the named body template. Templates are compiled into the
// binary, so an execution failure is a programming error.
func render(set *template.Template, name string, data templateData) string {
	var sb strings.Builder
	if err := set.ExecuteTemplate(&sb, name+".md", data); err != nil {
		panic(fmt.Sprintf("render %s/%s: %v", set.Name(), name, err))
	}
	return sb.String()
}

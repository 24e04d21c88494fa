package generate

// docSpec describes one front-matter document: its header and the body
// template that renders it.
type docSpec struct {
	name        string
	description string
	globs       []string
	tools       []string
}

func (s docSpec) frontMatter() FrontMatter {
	return FrontMatter{Name: s.name, Description: s.description, Globs: s.globs, Tools: s.tools}
}

// =============================================================================
// SKILLS
// =============================================================================

var universalSkills = []docSpec{
	{name: "pattern-discovery", description: "Find and follow existing codebase patterns before writing new code"},
	{name: "systematic-debugging", description: "Reproduce, isolate and fix bugs at their root cause"},
	{name: "testing-methodology", description: "Write focused tests for every behavior change and run them"},
	{name: "iterative-development", description: "Deliver work in small verified steps tracked in the task file"},
}

// frameworkSkill ties a whitelisted framework tag to its guide.
type frameworkSkill struct {
	framework string
	spec      docSpec
	unless    string // skip when this framework is also present
}

var frameworkSkills = []frameworkSkill{
	{framework: "nextjs", spec: docSpec{name: "nextjs-patterns", description: "Next.js App Router conventions for routing, server components and data"}},
	{framework: "react", unless: "nextjs", spec: docSpec{name: "react-components", description: "React component structure, state and composition"}},
	{framework: "fastapi", spec: docSpec{name: "fastapi-patterns", description: "FastAPI routers, Pydantic models and dependency injection"}},
	{framework: "django", spec: docSpec{name: "django-patterns", description: "Django apps, models, views and tests"}},
	{framework: "express", spec: docSpec{name: "express-patterns", description: "Express routers, middleware and error handling"}},
}

func (g *generator) skills() []Artifact {
	var out []Artifact
	for _, s := range universalSkills {
		out = append(out, g.doc(KindSkill, skillPath(s.name), skillTemplates, s))
	}
	for _, fs := range frameworkSkills {
		if !g.data.Stack.HasFramework(fs.framework) {
			continue
		}
		if fs.unless != "" && g.data.Stack.HasFramework(fs.unless) {
			continue
		}
		out = append(out, g.doc(KindSkill, skillPath(fs.spec.name), skillTemplates, fs.spec))
	}
	return out
}

// =============================================================================
// AGENTS
// =============================================================================

var agentSpecs = []docSpec{
	{
		name:        "code-reviewer",
		description: "Reviews the working-tree diff for bugs, clarity and consistency with existing patterns",
		tools:       []string{"Read", "Grep", "Glob", "Bash"},
	},
	{
		name:        "test-writer",
		description: "Writes focused tests that follow the project's existing test conventions",
		tools:       []string{"Read", "Write", "Edit", "Grep", "Glob", "Bash"},
	},
}

func (g *generator) agents() []Artifact {
	out := make([]Artifact, 0, len(agentSpecs))
	for _, s := range agentSpecs {
		out = append(out, g.doc(KindAgent, agentPath(s.name), agentTemplates, s))
	}
	return out
}

// =============================================================================
// RULES
// =============================================================================

var languageRules = []docSpec{
	{name: "typescript", description: "TypeScript conventions", globs: []string{"**/*.ts", "**/*.tsx"}},
	{name: "javascript", description: "JavaScript conventions", globs: []string{"**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs"}},
	{name: "python", description: "Python conventions", globs: []string{"**/*.py"}},
	{name: "go", description: "Go conventions", globs: []string{"**/*.go"}},
	{name: "rust", description: "Rust conventions", globs: []string{"**/*.rs"}},
}

var styleRule = docSpec{name: "code-style", description: "Project-wide style and tooling expectations"}

func (g *generator) rules() []Artifact {
	var out []Artifact
	for _, r := range languageRules {
		if g.data.Stack.HasLanguage(r.name) {
			out = append(out, g.doc(KindRule, rulePath(r.name), ruleTemplates, r))
		}
	}
	return append(out, g.doc(KindRule, rulePath(styleRule.name), ruleTemplates, styleRule))
}

// =============================================================================
// COMMANDS
// =============================================================================

var commandSpecs = []docSpec{
	{name: "task", description: "Start or update the active task"},
	{name: "status", description: "Report progress on the active task"},
	{name: "done", description: "Verify and close out the active task"},
	{name: "analyze", description: "Analyze the structure and risks of part of the codebase"},
	{name: "code-review", description: "Review the current changes with the code-reviewer agent"},
}

func (g *generator) commands() []Artifact {
	out := make([]Artifact, 0, len(commandSpecs))
	for _, s := range commandSpecs {
		out = append(out, g.doc(KindCommand, commandPath(s.name), commandTemplates, s))
	}
	return out
}

// =============================================================================
// TASK STATE
// =============================================================================

func (g *generator) task() Artifact {
	return Artifact{Kind: KindTask, Path: TaskPath, Content: render(stateTemplates, "task", g.data)}
}

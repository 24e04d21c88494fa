package generate

import (
	"encoding/json"
	"sort"

	"claudeforge/internal/detect"
)

// SettingsSchema is referenced from every generated settings.json.
const SettingsSchema = "https://json.schemastore.org/claude-code-settings.json"

// Settings is the JSON shape of .claude/settings.json.
type Settings struct {
	Schema      string      `json:"$schema"`
	Permissions Permissions `json:"permissions"`
}

// Permissions holds the capability allow-list.
type Permissions struct {
	Allow []string `json:"allow"`
}

var basePermissions = []string{
	"Bash(git status:*)",
	"Bash(git diff:*)",
	"Bash(git log:*)",
	"Bash(git add:*)",
	"Bash(git commit:*)",
	"Bash(git checkout:*)",
	"Bash(git branch:*)",
	"Bash(ls:*)",
	"Bash(cat:*)",
	"Bash(grep:*)",
	"Bash(find:*)",
	"Bash(mkdir:*)",
}

func packageManagerPermissions(pm string) []string {
	switch pm {
	case "npm":
		return []string{"Bash(npm run:*)", "Bash(npm install:*)", "Bash(npm test:*)", "Bash(npx:*)"}
	case "pnpm":
		return []string{"Bash(pnpm:*)"}
	case "yarn":
		return []string{"Bash(yarn:*)"}
	case "bun":
		return []string{"Bash(bun:*)", "Bash(bunx:*)"}
	case "poetry":
		return []string{"Bash(poetry:*)"}
	case "uv":
		return []string{"Bash(uv:*)"}
	case "pipenv":
		return []string{"Bash(pipenv:*)"}
	case "pip":
		return []string{"Bash(pip install:*)", "Bash(pip freeze:*)"}
	case "go":
		return []string{"Bash(go mod:*)", "Bash(go get:*)"}
	case "cargo":
		return []string{"Bash(cargo:*)"}
	case "bundler":
		return []string{"Bash(bundle:*)"}
	case "composer":
		return []string{"Bash(composer:*)"}
	case "maven":
		return []string{"Bash(mvn:*)"}
	case "gradle":
		return []string{"Bash(gradle:*)", "Bash(./gradlew:*)"}
	case "mix":
		return []string{"Bash(mix:*)"}
	default:
		return nil
	}
}

func languagePermissions(lang string) []string {
	switch lang {
	case "typescript":
		return []string{"Bash(npx tsc:*)", "Bash(tsc:*)", "Bash(node:*)"}
	case "javascript":
		return []string{"Bash(node:*)"}
	case "python":
		return []string{"Bash(python:*)", "Bash(python3:*)"}
	case "go":
		return []string{"Bash(go build:*)", "Bash(go test:*)", "Bash(go vet:*)", "Bash(go run:*)", "Bash(go mod tidy:*)"}
	case "rust":
		return []string{"Bash(cargo build:*)", "Bash(cargo test:*)", "Bash(cargo check:*)", "Bash(cargo run:*)"}
	case "ruby":
		return []string{"Bash(ruby:*)", "Bash(bundle exec:*)"}
	case "java", "kotlin":
		return []string{"Bash(java:*)"}
	case "php":
		return []string{"Bash(php:*)"}
	case "elixir":
		return []string{"Bash(mix:*)", "Bash(elixir:*)"}
	case "swift":
		return []string{"Bash(swift:*)"}
	case "csharp":
		return []string{"Bash(dotnet:*)"}
	default:
		return nil
	}
}

func toolPermissions(d detect.StackDescriptor) []string {
	var out []string
	switch d.TestingFramework {
	case "vitest":
		out = append(out, "Bash(npx vitest:*)")
	case "jest":
		out = append(out, "Bash(npx jest:*)")
	case "mocha":
		out = append(out, "Bash(npx mocha:*)")
	case "playwright":
		out = append(out, "Bash(npx playwright:*)")
	case "cypress":
		out = append(out, "Bash(npx cypress:*)")
	case "pytest":
		out = append(out, "Bash(pytest:*)", "Bash(python -m pytest:*)")
	case "go-test":
		out = append(out, "Bash(go test:*)")
	case "cargo-test":
		out = append(out, "Bash(cargo test:*)")
	case "rspec":
		out = append(out, "Bash(bundle exec rspec:*)")
	case "exunit":
		out = append(out, "Bash(mix test:*)")
	}
	switch d.Linter {
	case "eslint":
		out = append(out, "Bash(npx eslint:*)")
	case "biome":
		out = append(out, "Bash(npx biome:*)")
	case "ruff":
		out = append(out, "Bash(ruff:*)")
	case "flake8":
		out = append(out, "Bash(flake8:*)")
	case "pylint":
		out = append(out, "Bash(pylint:*)")
	case "golangci-lint":
		out = append(out, "Bash(golangci-lint:*)")
	case "clippy":
		out = append(out, "Bash(cargo clippy:*)")
	case "rubocop":
		out = append(out, "Bash(bundle exec rubocop:*)")
	}
	switch d.Formatter {
	case "prettier":
		out = append(out, "Bash(npx prettier:*)")
	case "biome":
		out = append(out, "Bash(npx biome:*)")
	case "black":
		out = append(out, "Bash(black:*)")
	case "ruff":
		out = append(out, "Bash(ruff format:*)")
	case "gofmt":
		out = append(out, "Bash(gofmt:*)")
	case "rustfmt":
		out = append(out, "Bash(cargo fmt:*)")
	}
	return out
}

var dockerPermissions = []string{
	"Bash(docker build:*)",
	"Bash(docker run:*)",
	"Bash(docker ps:*)",
	"Bash(docker logs:*)",
	"Bash(docker compose:*)",
}

// BuildPermissions assembles the allow-list for d. Fragments are appended in
// any order, collapsed through a set, and returned sorted.
func BuildPermissions(d detect.StackDescriptor) []string {
	fragments := append([]string{}, basePermissions...)
	fragments = append(fragments, packageManagerPermissions(d.PackageManager)...)
	for _, lang := range d.Languages {
		fragments = append(fragments, languagePermissions(lang)...)
	}
	fragments = append(fragments, toolPermissions(d)...)
	if d.HasDocker {
		fragments = append(fragments, dockerPermissions...)
	}

	set := make(map[string]struct{}, len(fragments))
	for _, f := range fragments {
		set[f] = struct{}{}
	}
	allow := make([]string, 0, len(set))
	for f := range set {
		allow = append(allow, f)
	}
	sort.Strings(allow)
	return allow
}

func settingsArtifact(d detect.StackDescriptor) Artifact {
	s := Settings{
		Schema:      SettingsSchema,
		Permissions: Permissions{Allow: BuildPermissions(d)},
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		panic("marshal settings: " + err.Error())
	}
	return Artifact{Kind: KindSettings, Path: SettingsPath, Content: string(data) + "\n"}
}

package detect

import (
	"strings"

	"claudeforge/internal/signals"
)

// rule pairs a predicate with the tag it yields.
type rule struct {
	tag   string
	match func(b *signals.Bundle) bool
}

// firstMatch resolves an exclusive chain: the first matching rule wins.
func firstMatch(b *signals.Bundle, chain []rule) string {
	for _, r := range chain {
		if r.match(b) {
			return r.tag
		}
	}
	return ""
}

// collectMatches appends every matching tag of an additive group to set.
func collectMatches(b *signals.Bundle, group []rule, set *tagSet) {
	for _, r := range group {
		if r.match(b) {
			set.add(r.tag)
		}
	}
}

func dep(names ...string) func(*signals.Bundle) bool {
	return func(b *signals.Bundle) bool {
		for _, n := range names {
			if b.DependsOn(n) {
				return true
			}
		}
		return false
	}
}

func file(names ...string) func(*signals.Bundle) bool {
	return func(b *signals.Bundle) bool { return b.HasAny(names...) }
}

func glob(patterns ...string) func(*signals.Bundle) bool {
	return func(b *signals.Bundle) bool {
		for _, p := range patterns {
			if b.HasGlob(p) {
				return true
			}
		}
		return false
	}
}

func text(needle string, files ...string) func(*signals.Bundle) bool {
	return func(b *signals.Bundle) bool { return b.TextContains(needle, files...) }
}

func ext(exts ...string) func(*signals.Bundle) bool {
	return func(b *signals.Bundle) bool { return b.HasExt(exts...) }
}

func anyOf(preds ...func(*signals.Bundle) bool) func(*signals.Bundle) bool {
	return func(b *signals.Bundle) bool {
		for _, p := range preds {
			if p(b) {
				return true
			}
		}
		return false
	}
}

var (
	pythonDeclarations = []string{"requirements.txt", "pyproject.toml", "Pipfile", "setup.py"}
	jvmDeclarations    = []string{"pom.xml", "build.gradle", "build.gradle.kts"}
)

// =============================================================================
// LANGUAGES
// =============================================================================

// languagePair is a primary-capable detector and the looser sibling it
// suppresses when it matches.
type languagePair struct {
	strict rule
	loose  rule
}

var languagePairs = []languagePair{
	{
		strict: rule{"typescript", anyOf(file("tsconfig.json"), dep("typescript"), ext(".ts", ".tsx"))},
		loose:  rule{"javascript", anyOf(file(signals.ManifestFile), ext(".js", ".mjs", ".cjs", ".jsx"))},
	},
}

var additiveLanguages = []rule{
	{"python", anyOf(file("setup.cfg"), file(pythonDeclarations...), ext(".py"))},
	{"go", anyOf(file("go.work"), file("go.mod"), ext(".go"))},
	{"rust", anyOf(file("rust-toolchain.toml"), file("Cargo.toml"), ext(".rs"))},
	{"ruby", anyOf(file(".ruby-version"), file("Gemfile"), ext(".rb"))},
	{"java", anyOf(file("pom.xml", "build.gradle"), ext(".java"))},
	{"kotlin", anyOf(file("build.gradle.kts"), ext(".kt"))},
	{"csharp", anyOf(glob("*.sln", "*.csproj"), ext(".cs"))},
	{"php", anyOf(file("composer.json"), ext(".php"))},
	{"swift", anyOf(file("Package.swift"), ext(".swift"))},
	{"elixir", anyOf(file("mix.exs"), ext(".ex", ".exs"))},
}

// =============================================================================
// FRAMEWORKS
// =============================================================================

var frontendChain = []rule{
	{"nextjs", dep("next")},
	{"remix", dep("@remix-run/react")},
	{"gatsby", dep("gatsby")},
	{"nuxt", dep("nuxt")},
	{"sveltekit", dep("@sveltejs/kit")},
	{"astro", dep("astro")},
	{"angular", dep("@angular/core")},
	{"vue", dep("vue")},
	{"svelte", dep("svelte")},
	{"solid", dep("solid-js")},
	{"react", dep("react")},
}

var additiveFrameworks = []rule{
	// backend
	{"express", dep("express")},
	{"fastify", dep("fastify")},
	{"nestjs", dep("@nestjs/core")},
	{"hono", dep("hono")},
	{"koa", dep("koa")},
	// css / ui
	{"tailwind", dep("tailwindcss")},
	{"mui", dep("@mui/material")},
	{"chakra", dep("@chakra-ui/react")},
	{"styled-components", dep("styled-components")},
	// orm
	{"prisma", dep("prisma", "@prisma/client")},
	{"drizzle", dep("drizzle-orm")},
	{"typeorm", dep("typeorm")},
	{"mongoose", dep("mongoose")},
	{"sequelize", dep("sequelize")},
}

// ecosystemFallback only runs when there is no manifest.
var ecosystemFallback = []rule{
	{"django", text("django", pythonDeclarations...)},
	{"flask", text("flask", pythonDeclarations...)},
	{"fastapi", text("fastapi", pythonDeclarations...)},
	{"sqlalchemy", text("sqlalchemy", pythonDeclarations...)},
	{"gin", text("gin-gonic/gin", "go.mod")},
	{"echo", text("labstack/echo", "go.mod")},
	{"fiber", text("gofiber/fiber", "go.mod")},
	{"chi", text("go-chi/chi", "go.mod")},
	{"gorm", text("gorm.io/gorm", "go.mod")},
	{"actix", text("actix-web", "Cargo.toml")},
	{"axum", text("axum", "Cargo.toml")},
	{"rocket", text("rocket", "Cargo.toml")},
	{"rails", text("rails", "Gemfile")},
	{"sinatra", text("sinatra", "Gemfile")},
	{"laravel", text("laravel/framework", "composer.json")},
	{"symfony", text("symfony/", "composer.json")},
	{"spring", text("spring-boot", jvmDeclarations...)},
}

// =============================================================================
// TOOLING
// =============================================================================

// knownNodeManagers are accepted from the manifest's packageManager field.
var knownNodeManagers = []string{"npm", "pnpm", "yarn", "bun"}

func declaredManager(b *signals.Bundle) string {
	if b.Manifest == nil || b.Manifest.PackageManager == "" {
		return ""
	}
	name := b.Manifest.PackageManager
	if i := strings.Index(name, "@"); i > 0 {
		name = name[:i]
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range knownNodeManagers {
		if name == k {
			return k
		}
	}
	return ""
}

var lockfileManagers = []rule{
	{"bun", file("bun.lockb", "bun.lock")},
	{"pnpm", file("pnpm-lock.yaml")},
	{"yarn", file("yarn.lock")},
	{"npm", file("package-lock.json")},
}

var ecosystemManagers = []rule{
	{"npm", func(b *signals.Bundle) bool { return b.Manifest != nil }},
	{"poetry", file("poetry.lock")},
	{"uv", file("uv.lock")},
	{"pipenv", file("Pipfile")},
	{"pip", file("requirements.txt", "pyproject.toml", "setup.py")},
	{"go", file("go.mod")},
	{"cargo", file("Cargo.toml")},
	{"bundler", file("Gemfile")},
	{"composer", file("composer.json")},
	{"maven", file("pom.xml")},
	{"gradle", file("build.gradle", "build.gradle.kts")},
	{"mix", file("mix.exs")},
}

func resolvePackageManager(b *signals.Bundle) string {
	if pm := firstMatch(b, lockfileManagers); pm != "" {
		return pm
	}
	if pm := declaredManager(b); pm != "" {
		return pm
	}
	return firstMatch(b, ecosystemManagers)
}

var testingChain = []rule{
	{"vitest", anyOf(dep("vitest"), glob("vitest.config.*"))},
	{"jest", anyOf(dep("jest"), glob("jest.config.*"))},
	{"mocha", anyOf(dep("mocha"), glob(".mocharc*"))},
	{"playwright", anyOf(dep("@playwright/test"), glob("playwright.config.*"))},
	{"cypress", anyOf(dep("cypress"), glob("cypress.config.*"))},
	{"pytest", anyOf(file("pytest.ini", "conftest.py"), text("pytest", pythonDeclarations...))},
	{"go-test", file("go.mod")},
	{"cargo-test", file("Cargo.toml")},
	{"rspec", anyOf(file(".rspec"), text("rspec", "Gemfile"))},
	{"junit", text("junit", jvmDeclarations...)},
	{"exunit", file("mix.exs")},
}

var linterChain = []rule{
	{"biome", anyOf(file("biome.json", "biome.jsonc"), dep("@biomejs/biome"))},
	{"eslint", anyOf(glob(".eslintrc*", "eslint.config.*"), dep("eslint"))},
	{"ruff", anyOf(file("ruff.toml", ".ruff.toml"), text("[tool.ruff", "pyproject.toml"), text("ruff", "requirements.txt"))},
	{"flake8", anyOf(file(".flake8"), text("flake8", "requirements.txt", "Pipfile"))},
	{"pylint", anyOf(file(".pylintrc"), text("pylint", "requirements.txt", "pyproject.toml"))},
	{"golangci-lint", file(".golangci.yml", ".golangci.yaml", ".golangci.toml", ".golangci.json")},
	{"clippy", file("Cargo.toml")},
	{"rubocop", anyOf(file(".rubocop.yml"), text("rubocop", "Gemfile"))},
}

var formatterChain = []rule{
	{"prettier", anyOf(glob(".prettierrc*", "prettier.config.*"), dep("prettier"))},
	{"biome", anyOf(file("biome.json", "biome.jsonc"), dep("@biomejs/biome"))},
	{"black", anyOf(text("[tool.black", "pyproject.toml"), text("black", "requirements.txt"))},
	{"ruff", anyOf(text("[tool.ruff", "pyproject.toml"), file("ruff.toml", ".ruff.toml"))},
	{"gofmt", file("go.mod")},
	{"rustfmt", file("Cargo.toml", "rustfmt.toml")},
	{"rubocop", file(".rubocop.yml")},
}

var bundlerChain = []rule{
	{"vite", anyOf(glob("vite.config.*"), dep("vite"))},
	{"webpack", anyOf(glob("webpack.config.*"), dep("webpack"))},
	{"rollup", anyOf(glob("rollup.config.*"), dep("rollup"))},
	{"esbuild", dep("esbuild")},
	{"parcel", anyOf(file(".parcelrc"), dep("parcel"))},
	{"turbopack", func(b *signals.Bundle) bool {
		return b.DependsOn("next") && b.Manifest.HasScriptContaining("--turbo")
	}},
}

var ciChain = []rule{
	{"github-actions", func(b *signals.Bundle) bool { return b.Probe(".github/workflows") }},
	{"gitlab-ci", file(".gitlab-ci.yml")},
	{"circleci", func(b *signals.Bundle) bool { return b.HasDir(".circleci") }},
	{"jenkins", file("Jenkinsfile")},
	{"azure-pipelines", file("azure-pipelines.yml")},
	{"travis", file(".travis.yml")},
	{"bitbucket-pipelines", file("bitbucket-pipelines.yml")},
}

// =============================================================================
// BOOLEANS
// =============================================================================

func isMonorepo(b *signals.Bundle) bool {
	if b.Manifest != nil && b.Manifest.HasWorkspaces {
		return true
	}
	if b.HasAny("pnpm-workspace.yaml", "lerna.json", "nx.json", "turbo.json", "rush.json") {
		return true
	}
	return b.HasDir("packages") || b.HasDir("apps")
}

func hasDocker(b *signals.Bundle) bool {
	return b.HasAny("Dockerfile", "docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml", ".dockerignore")
}

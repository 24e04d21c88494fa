package generate

import "claudeforge/internal/detect"

// Commands are the shell commands a project uses for routine work. Any field
// may be "" when the stack gives no basis for it.
type Commands struct {
	Install string
	Dev     string
	Build   string
	Test    string
	Lint    string
	Format  string
}

// ResolveCommands derives the command set by switching on the package
// manager, then refining test, lint and format from the detected tools.
func ResolveCommands(d detect.StackDescriptor) Commands {
	var c Commands

	switch d.PackageManager {
	case "npm":
		c = Commands{Install: "npm install", Dev: "npm run dev", Build: "npm run build", Test: "npm test", Lint: "npm run lint"}
	case "pnpm":
		c = Commands{Install: "pnpm install", Dev: "pnpm dev", Build: "pnpm build", Test: "pnpm test", Lint: "pnpm lint"}
	case "yarn":
		c = Commands{Install: "yarn install", Dev: "yarn dev", Build: "yarn build", Test: "yarn test", Lint: "yarn lint"}
	case "bun":
		c = Commands{Install: "bun install", Dev: "bun run dev", Build: "bun run build", Test: "bun test", Lint: "bun run lint"}
	case "poetry":
		c = Commands{Install: "poetry install"}
	case "uv":
		c = Commands{Install: "uv sync"}
	case "pipenv":
		c = Commands{Install: "pipenv install --dev"}
	case "pip":
		c = Commands{Install: "pip install -r requirements.txt"}
	case "go":
		c = Commands{Install: "go mod download", Build: "go build ./...", Test: "go test ./...", Lint: "go vet ./...", Format: "gofmt -w ."}
	case "cargo":
		c = Commands{Install: "cargo fetch", Dev: "cargo run", Build: "cargo build", Test: "cargo test", Lint: "cargo clippy -- -D warnings", Format: "cargo fmt"}
	case "bundler":
		c = Commands{Install: "bundle install"}
	case "composer":
		c = Commands{Install: "composer install", Test: "vendor/bin/phpunit"}
	case "maven":
		c = Commands{Install: "mvn install -DskipTests", Build: "mvn package", Test: "mvn test"}
	case "gradle":
		c = Commands{Install: "./gradlew dependencies", Build: "./gradlew build", Test: "./gradlew test"}
	case "mix":
		c = Commands{Install: "mix deps.get", Dev: "mix run", Build: "mix compile", Test: "mix test", Format: "mix format"}
	}

	prefix := pythonRunPrefix(d.PackageManager)
	switch d.TestingFramework {
	case "pytest":
		c.Test = prefix + "pytest"
	case "rspec":
		c.Test = "bundle exec rspec"
	case "playwright":
		if c.Test == "" {
			c.Test = "npx playwright test"
		}
	case "go-test":
		c.Test = "go test ./..."
	case "cargo-test":
		c.Test = "cargo test"
	}

	switch d.Linter {
	case "ruff":
		c.Lint = prefix + "ruff check ."
	case "flake8":
		c.Lint = prefix + "flake8 ."
	case "pylint":
		c.Lint = prefix + "pylint ."
	case "golangci-lint":
		c.Lint = "golangci-lint run"
	case "rubocop":
		c.Lint = "bundle exec rubocop"
	case "eslint", "biome":
		if c.Lint == "" {
			c.Lint = "npx " + d.Linter + " ."
		}
	}

	switch d.Formatter {
	case "prettier":
		c.Format = nodeExec(d.PackageManager) + " prettier --write ."
	case "biome":
		c.Format = nodeExec(d.PackageManager) + " biome format --write ."
	case "black":
		c.Format = prefix + "black ."
	case "ruff":
		c.Format = prefix + "ruff format ."
	case "rubocop":
		c.Format = "bundle exec rubocop -a"
	}

	return c
}

func pythonRunPrefix(pm string) string {
	switch pm {
	case "poetry":
		return "poetry run "
	case "uv":
		return "uv run "
	case "pipenv":
		return "pipenv run "
	default:
		return ""
	}
}

func nodeExec(pm string) string {
	switch pm {
	case "pnpm":
		return "pnpm exec"
	case "yarn":
		return "yarn"
	case "bun":
		return "bunx"
	default:
		return "npx"
	}
}

// addCommand returns the command that adds a dependency, or "".
func addCommand(pm string) string {
	switch pm {
	case "npm":
		return "npm install <package>"
	case "pnpm", "yarn", "bun":
		return pm + " add <package>"
	case "poetry", "uv":
		return pm + " add <package>"
	case "pipenv":
		return "pipenv install <package>"
	case "pip":
		return "pip install <package> && pip freeze > requirements.txt"
	case "go":
		return "go get <module>@latest"
	case "cargo":
		return "cargo add <crate>"
	case "bundler":
		return "bundle add <gem>"
	case "composer":
		return "composer require <vendor/package>"
	default:
		return ""
	}
}

package bootstrap

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"

	"claudeforge/internal/generate"
	"claudeforge/internal/logging"
	"claudeforge/internal/signals"
)

type pyprojectFile struct {
	Project struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name        string `toml:"name"`
			Description string `toml:"description"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

type cargoFile struct {
	Package struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"package"`
}

var majorVersionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// DeriveProjectInfo picks the project name and description from the first
// source that provides each: package.json, pyproject.toml, Cargo.toml, the
// go.mod module path, then the directory name.
func DeriveProjectInfo(b *signals.Bundle) generate.ProjectInfo {
	var candidates []generate.ProjectInfo

	if b.Manifest != nil {
		candidates = append(candidates, generate.ProjectInfo{Name: b.Manifest.Name, Description: b.Manifest.Description})
	}
	if text := b.Text("pyproject.toml"); text != "" {
		var py pyprojectFile
		if _, err := toml.Decode(text, &py); err != nil {
			logging.BootDebug("pyproject.toml not decodable: %v", err)
		} else {
			candidates = append(candidates,
				generate.ProjectInfo{Name: py.Project.Name, Description: py.Project.Description},
				generate.ProjectInfo{Name: py.Tool.Poetry.Name, Description: py.Tool.Poetry.Description},
			)
		}
	}
	if text := b.Text("Cargo.toml"); text != "" {
		var cargo cargoFile
		if _, err := toml.Decode(text, &cargo); err != nil {
			logging.BootDebug("Cargo.toml not decodable: %v", err)
		} else {
			candidates = append(candidates, generate.ProjectInfo{Name: cargo.Package.Name, Description: cargo.Package.Description})
		}
	}
	if text := b.Text("go.mod"); text != "" {
		if mod := modfile.ModulePath([]byte(text)); mod != "" {
			candidates = append(candidates, generate.ProjectInfo{Name: moduleName(mod)})
		}
	}
	if b.Root != "" {
		candidates = append(candidates, generate.ProjectInfo{Name: filepath.Base(b.Root)})
	}

	var info generate.ProjectInfo
	for _, c := range candidates {
		if info.Name == "" {
			info.Name = strings.TrimSpace(c.Name)
		}
		if info.Description == "" {
			info.Description = strings.TrimSpace(c.Description)
		}
	}
	return info
}

// moduleName is the last meaningful element of a module path, skipping a
// trailing major-version element.
func moduleName(mod string) string {
	base := path.Base(mod)
	if majorVersionSuffix.MatchString(base) {
		if parent := path.Base(path.Dir(mod)); parent != "." && parent != "/" {
			return parent
		}
	}
	return base
}

// Package signals collects raw file-system evidence about a project.
//
// Collection is a pure read with no interpretation: the root listing, the
// package.json manifest, the text of ecosystem declaration files, a few
// probed nested paths, an extension census and the contents of the reserved
// .claude/ subtree. Every read failure degrades to an absent signal.
package signals

import (
	"path"
	"strings"
)

// ReservedDir is the configuration subtree claudeforge owns.
const ReservedDir = ".claude"

// LegacyMarker is the root file that marks an older, pre-subtree setup.
const LegacyMarker = "CLAUDE.md"

// ManifestFile is the structured manifest parsed into Bundle.Manifest.
const ManifestFile = "package.json"

// IgnoreFile extends the census ignore list, one pattern per line.
const IgnoreFile = ".gitignore"

// DeclarationFiles are read verbatim when present.
var DeclarationFiles = []string{
	"requirements.txt",
	"pyproject.toml",
	"Pipfile",
	"setup.py",
	"go.mod",
	"Cargo.toml",
	"Gemfile",
	"composer.json",
	"pom.xml",
	"build.gradle",
	"build.gradle.kts",
	"mix.exs",
}

// ProbePaths are nested paths whose existence is recorded.
var ProbePaths = []string{
	".github/workflows",
	ReservedDir,
}

// Bundle is the evidence gathered for one run.
type Bundle struct {
	Root         string
	Entries      []string          // immediate entry names, sorted
	Dirs         map[string]bool   // entries that are directories
	Manifest     *Manifest         // nil when absent or unparseable
	Declarations map[string]string // file name -> raw text
	Probes       map[string]bool   // ProbePaths entry -> exists
	Census       Census
	ConfigFiles  []string // slash paths relative to Root, sorted
}

// Census counts files found by the depth-capped walk.
type Census struct {
	Files      int
	Extensions map[string]int // lower-cased ".ext" -> count
}

// Has reports whether the root contains an entry with this exact name.
func (b *Bundle) Has(name string) bool {
	for _, e := range b.Entries {
		if e == name {
			return true
		}
	}
	return false
}

// HasAny reports whether any of names is a root entry.
func (b *Bundle) HasAny(names ...string) bool {
	for _, n := range names {
		if b.Has(n) {
			return true
		}
	}
	return false
}

// HasDir reports whether name is a root directory.
func (b *Bundle) HasDir(name string) bool {
	return b.Dirs[name]
}

// HasGlob reports whether any root entry matches a path.Match pattern.
func (b *Bundle) HasGlob(pattern string) bool {
	for _, e := range b.Entries {
		if ok, _ := path.Match(pattern, e); ok {
			return true
		}
	}
	return false
}

// Text returns the raw text of a declaration file, or "".
func (b *Bundle) Text(name string) string {
	return b.Declarations[name]
}

// HasDeclaration reports whether the declaration file was read.
func (b *Bundle) HasDeclaration(name string) bool {
	_, ok := b.Declarations[name]
	return ok
}

// TextContains reports whether the lower-cased text of any of files contains needle.
func (b *Bundle) TextContains(needle string, files ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range files {
		if t, ok := b.Declarations[f]; ok && strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// DependsOn reports whether the manifest lists dep in any dependency map.
func (b *Bundle) DependsOn(dep string) bool {
	return b.Manifest != nil && b.Manifest.HasDependency(dep)
}

// ExtCount returns the census count for ext (with leading dot).
func (b *Bundle) ExtCount(ext string) int {
	return b.Census.Extensions[strings.ToLower(ext)]
}

// HasExt reports whether any file with one of exts was counted.
func (b *Bundle) HasExt(exts ...string) bool {
	for _, e := range exts {
		if b.ExtCount(e) > 0 {
			return true
		}
	}
	return false
}

// Probe reports whether a ProbePaths entry exists.
func (b *Bundle) Probe(rel string) bool {
	return b.Probes[rel]
}

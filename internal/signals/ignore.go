package signals

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns are always skipped by the census walk.
var DefaultIgnorePatterns = []string{
	".git",
	ReservedDir,
	"node_modules",
	"vendor",
	"dist",
	"build",
	".next",
	".nuxt",
	".svelte-kit",
	"target",
	"bin",
	"obj",
	".terraform",
	".venv",
	"venv",
	"__pycache__",
	".cache",
	"coverage",
}

// Matcher decides whether a relative path is excluded from the census.
type Matcher struct {
	patterns []string
}

// NewMatcher builds a matcher from the defaults plus extra patterns.
func NewMatcher(extra ...[]string) *Matcher {
	m := &Matcher{}
	for _, p := range DefaultIgnorePatterns {
		m.add(p)
	}
	for _, list := range extra {
		for _, p := range list {
			m.add(p)
		}
	}
	return m
}

// LoadMatcher builds the matcher for a project: defaults, then the root
// .gitignore lines, then extra. A missing .gitignore is not an error.
func LoadMatcher(root string, extra []string) *Matcher {
	var gitignore []string
	if data, err := os.ReadFile(filepath.Join(root, IgnoreFile)); err == nil {
		gitignore = ParseIgnoreLines(string(data))
	}
	return NewMatcher(gitignore, extra)
}

func (m *Matcher) add(raw string) {
	if p := normalizePattern(raw); p != "" {
		m.patterns = append(m.patterns, p)
	}
}

// Patterns returns the normalized pattern list.
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

func normalizePattern(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, "/")
	p = strings.TrimSuffix(p, "\\")
	return filepath.ToSlash(p)
}

// Ignored reports whether rel (slash-separated, relative to root) is excluded.
// name is the final path element.
func (m *Matcher) Ignored(rel, name string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range m.patterns {
		if strings.ContainsAny(p, "*?[") {
			if ok, _ := path.Match(p, rel); ok {
				return true
			}
			if ok, _ := path.Match(p, name); ok && !strings.Contains(p, "/") {
				return true
			}
			// Directory globs like "vendor/*"
			if strings.HasSuffix(p, "/*") {
				prefix := strings.TrimSuffix(p, "/*")
				if strings.HasPrefix(rel, prefix+"/") {
					return true
				}
			}
			continue
		}
		if name == p || rel == p {
			return true
		}
		if strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// ParseIgnoreLines extracts usable patterns from .gitignore-style text.
// Comments, blank lines and negations are dropped.
func ParseIgnoreLines(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		if p := normalizePattern(line); p != "" {
			out = append(out, p)
		}
	}
	return out
}

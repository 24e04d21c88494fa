package generate

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// FrontMatter is the YAML header carried by skills, agents, rules and commands.
type FrontMatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Globs       []string `yaml:"globs,omitempty"`
	Tools       []string `yaml:"tools,omitempty"`
}

// document renders front matter followed by a markdown body.
func document(fm FrontMatter, body string) string {
	data, err := yaml.Marshal(fm)
	if err != nil {
		// FrontMatter only holds strings; Marshal cannot fail on it.
		panic(fmt.Sprintf("marshal front matter: %v", err))
	}
	var sb strings.Builder
	sb.WriteString(frontMatterDelim + "\n")
	sb.Write(data)
	sb.WriteString(frontMatterDelim + "\n\n")
	sb.WriteString(strings.TrimLeft(body, "\n"))
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseFrontMatter splits a document into its YAML header and markdown body.
// A document without a header yields an empty FrontMatter and the full
// content as body.
func ParseFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	first, rest, found := strings.Cut(content, "\n")
	if strings.TrimSpace(first) != frontMatterDelim {
		return fm, content, nil
	}
	if !found {
		return fm, "", fmt.Errorf("unterminated front matter")
	}

	var header strings.Builder
	lines := strings.SplitAfter(rest, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == frontMatterDelim {
			if err := yaml.Unmarshal([]byte(header.String()), &fm); err != nil {
				return FrontMatter{}, "", fmt.Errorf("invalid front matter: %w", err)
			}
			body := strings.Join(lines[i+1:], "")
			return fm, strings.TrimSpace(body), nil
		}
		header.WriteString(line)
	}
	return FrontMatter{}, "", fmt.Errorf("unterminated front matter")
}

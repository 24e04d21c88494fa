package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claudeforge/internal/generate"
	"claudeforge/internal/signals"
)

func TestDeriveProjectInfo(t *testing.T) {
	tests := []struct {
		name string
		b    *signals.Bundle
		want generate.ProjectInfo
	}{
		{
			name: "manifest",
			b: &signals.Bundle{
				Root:     "/work/dir",
				Manifest: &signals.Manifest{Name: "web", Description: "Web app"},
			},
			want: generate.ProjectInfo{Name: "web", Description: "Web app"},
		},
		{
			name: "manifest without name falls through",
			b: &signals.Bundle{
				Root:         "/work/dir",
				Manifest:     &signals.Manifest{},
				Declarations: map[string]string{"pyproject.toml": "[project]\nname = \"svc\"\ndescription = \"Service\"\n"},
			},
			want: generate.ProjectInfo{Name: "svc", Description: "Service"},
		},
		{
			name: "poetry",
			b: &signals.Bundle{
				Root:         "/work/dir",
				Declarations: map[string]string{"pyproject.toml": "[tool.poetry]\nname = \"legacy\"\ndescription = \"Old layout\"\n"},
			},
			want: generate.ProjectInfo{Name: "legacy", Description: "Old layout"},
		},
		{
			name: "cargo",
			b: &signals.Bundle{
				Root:         "/work/dir",
				Declarations: map[string]string{"Cargo.toml": "[package]\nname = \"crabby\"\nversion = \"0.1.0\"\n"},
			},
			want: generate.ProjectInfo{Name: "crabby"},
		},
		{
			name: "go module",
			b: &signals.Bundle{
				Root:         "/work/dir",
				Declarations: map[string]string{"go.mod": "module github.com/acme/widget\n\ngo 1.22\n"},
			},
			want: generate.ProjectInfo{Name: "widget"},
		},
		{
			name: "go module major version",
			b: &signals.Bundle{
				Root:         "/work/dir",
				Declarations: map[string]string{"go.mod": "module github.com/acme/widget/v3\n"},
			},
			want: generate.ProjectInfo{Name: "widget"},
		},
		{
			name: "malformed toml falls back to dir",
			b: &signals.Bundle{
				Root:         "/work/dir",
				Declarations: map[string]string{"pyproject.toml": "[project\nname="},
			},
			want: generate.ProjectInfo{Name: "dir"},
		},
		{
			name: "directory name",
			b:    &signals.Bundle{Root: "/work/my-project"},
			want: generate.ProjectInfo{Name: "my-project"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveProjectInfo(tt.b))
		})
	}
}

func TestParseLanguageChoice(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1", "typescript", true},
		{"5", "rust", true},
		{"Go", "go", true},
		{"0", "", false},
		{"6", "", false},
		{"cobol", "", false},
	}
	for _, tt := range tests {
		got, ok := parseLanguageChoice(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

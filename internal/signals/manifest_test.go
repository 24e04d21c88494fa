package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	m := ParseManifest([]byte(`{
		"name": "shop",
		"description": "storefront",
		"dependencies": {"react": "^18", "next": "14"},
		"devDependencies": {"vitest": "1.0.0"},
		"peerDependencies": {"react-dom": "^18"},
		"scripts": {"dev": "next dev --turbo", "test": "vitest"},
		"workspaces": ["packages/*"],
		"packageManager": "pnpm@9.1.0"
	}`))
	require.NotNil(t, m)

	assert.Equal(t, "shop", m.Name)
	assert.Equal(t, "storefront", m.Description)
	assert.True(t, m.HasDependency("next"))
	assert.True(t, m.HasDependency("vitest"))
	assert.True(t, m.HasDependency("react-dom"))
	assert.False(t, m.HasDependency("vue"))
	assert.True(t, m.HasWorkspaces)
	assert.Equal(t, []string{"packages/*"}, m.Workspaces)
	assert.Equal(t, "pnpm@9.1.0", m.PackageManager)
	assert.True(t, m.HasScriptContaining("--turbo"))
	assert.Equal(t, []string{"dev", "test"}, m.ScriptNames())
}

func TestParseManifest_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, m *Manifest)
	}{
		{
			name:  "not json",
			input: `name = "x"`,
			check: func(t *testing.T, m *Manifest) { assert.Nil(t, m) },
		},
		{
			name:  "top-level array",
			input: `["a"]`,
			check: func(t *testing.T, m *Manifest) { assert.Nil(t, m) },
		},
		{
			name:  "wrongly typed name keeps other fields",
			input: `{"name": 42, "dependencies": {"express": "4"}}`,
			check: func(t *testing.T, m *Manifest) {
				require.NotNil(t, m)
				assert.Empty(t, m.Name)
				assert.True(t, m.HasDependency("express"))
			},
		},
		{
			name:  "non-string dependency version keeps key",
			input: `{"dependencies": {"hono": {"version": "4"}}}`,
			check: func(t *testing.T, m *Manifest) {
				require.NotNil(t, m)
				assert.True(t, m.HasDependency("hono"))
			},
		},
		{
			name:  "object workspaces",
			input: `{"workspaces": {"packages": ["apps/*"]}}`,
			check: func(t *testing.T, m *Manifest) {
				require.NotNil(t, m)
				assert.True(t, m.HasWorkspaces)
				assert.Equal(t, []string{"apps/*"}, m.Workspaces)
			},
		},
		{
			name:  "empty workspaces",
			input: `{"workspaces": []}`,
			check: func(t *testing.T, m *Manifest) {
				require.NotNil(t, m)
				assert.False(t, m.HasWorkspaces)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ParseManifest([]byte(tt.input)))
		})
	}
}

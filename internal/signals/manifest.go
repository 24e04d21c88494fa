package signals

import (
	"encoding/json"
	"sort"
	"strings"
)

// Manifest is the lenient view of package.json. Fields that fail to decode
// are left empty instead of failing the whole parse.
type Manifest struct {
	Name             string
	Description      string
	Dependencies     map[string]string
	DevDependencies  map[string]string
	PeerDependencies map[string]string
	Scripts          map[string]string
	Workspaces       []string
	HasWorkspaces    bool
	PackageManager   string // e.g. "pnpm@9.1.0"
}

// ParseManifest decodes package.json content. It returns nil only when the
// document is not a JSON object at all.
func ParseManifest(data []byte) *Manifest {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil
	}

	m := &Manifest{}
	decodeField(raw, "name", &m.Name)
	decodeField(raw, "description", &m.Description)
	m.Dependencies = decodeStringMap(raw["dependencies"])
	m.DevDependencies = decodeStringMap(raw["devDependencies"])
	m.PeerDependencies = decodeStringMap(raw["peerDependencies"])
	m.Scripts = decodeStringMap(raw["scripts"])
	decodeField(raw, "packageManager", &m.PackageManager)

	if ws, ok := raw["workspaces"]; ok {
		m.Workspaces, m.HasWorkspaces = decodeWorkspaces(ws)
	}
	return m
}

func decodeField(raw map[string]json.RawMessage, key string, dst interface{}) {
	v, ok := raw[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(v, dst)
}

// decodeStringMap keeps every key of a JSON object. Non-string values map to "".
func decodeStringMap(v json.RawMessage) map[string]string {
	if len(v) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err != nil {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, raw := range obj {
		var s string
		_ = json.Unmarshal(raw, &s)
		out[k] = s
	}
	return out
}

// decodeWorkspaces accepts both ["packages/*"] and {"packages": ["packages/*"]}.
func decodeWorkspaces(v json.RawMessage) ([]string, bool) {
	var list []string
	if err := json.Unmarshal(v, &list); err == nil {
		return list, len(list) > 0
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(v, &obj); err == nil {
		return obj.Packages, len(obj.Packages) > 0
	}
	return nil, false
}

// HasDependency checks dependencies, devDependencies and peerDependencies.
func (m *Manifest) HasDependency(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	if _, ok := m.DevDependencies[name]; ok {
		return true
	}
	_, ok := m.PeerDependencies[name]
	return ok
}

// HasScriptContaining reports whether any script body contains s.
func (m *Manifest) HasScriptContaining(s string) bool {
	for _, body := range m.Scripts {
		if strings.Contains(body, s) {
			return true
		}
	}
	return false
}

// ScriptNames returns the declared script names, sorted.
func (m *Manifest) ScriptNames() []string {
	names := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

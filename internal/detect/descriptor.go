// Package detect classifies a project's technology stack from collected signals.
//
// Classification is a fixed battery of rules. Single-valued categories are
// resolved by ordered (predicate, tag) chains where the first match wins;
// additive categories append to an insertion-ordered set. Nothing here can
// fail: missing evidence yields "" or an empty list.
package detect

// StackDescriptor is the immutable classification result.
type StackDescriptor struct {
	Languages  []string `yaml:"languages"`
	Frameworks []string `yaml:"frameworks"`

	PackageManager   string `yaml:"package_manager,omitempty"`
	TestingFramework string `yaml:"testing_framework,omitempty"`
	Linter           string `yaml:"linter,omitempty"`
	Formatter        string `yaml:"formatter,omitempty"`
	Bundler          string `yaml:"bundler,omitempty"`

	IsMonorepo   bool   `yaml:"is_monorepo"`
	HasDocker    bool   `yaml:"has_docker"`
	HasCICD      bool   `yaml:"has_cicd"`
	CICDPlatform string `yaml:"cicd_platform,omitempty"`

	HasExistingConfig   bool     `yaml:"has_existing_config"`
	ExistingConfigPaths []string `yaml:"existing_config_paths"`
}

// PrimaryLanguage is the first detected language, or "".
func (d StackDescriptor) PrimaryLanguage() string {
	if len(d.Languages) == 0 {
		return ""
	}
	return d.Languages[0]
}

// PrimaryFramework is the first detected framework, or "".
func (d StackDescriptor) PrimaryFramework() string {
	if len(d.Frameworks) == 0 {
		return ""
	}
	return d.Frameworks[0]
}

// HasLanguage reports whether tag was detected.
func (d StackDescriptor) HasLanguage(tag string) bool {
	return containsTag(d.Languages, tag)
}

// HasFramework reports whether tag was detected.
func (d StackDescriptor) HasFramework(tag string) bool {
	return containsTag(d.Frameworks, tag)
}

// HasStack reports whether any language or framework was detected.
func (d StackDescriptor) HasStack() bool {
	return len(d.Languages) > 0 || len(d.Frameworks) > 0
}

// WithFallbackLanguage returns a copy carrying lang as its only language when
// nothing was detected. Used for brand-new projects whose intended language
// was supplied interactively.
func (d StackDescriptor) WithFallbackLanguage(lang string) StackDescriptor {
	if lang == "" || len(d.Languages) > 0 {
		return d
	}
	out := d
	out.Languages = []string{lang}
	return out
}

func containsTag(list []string, tag string) bool {
	for _, t := range list {
		if t == tag {
			return true
		}
	}
	return false
}

// tagSet is an insertion-ordered set of tags.
type tagSet struct {
	order []string
	seen  map[string]bool
}

func newTagSet() *tagSet {
	return &tagSet{order: []string{}, seen: make(map[string]bool)}
}

func (s *tagSet) add(tag string) {
	if s.seen[tag] {
		return
	}
	s.seen[tag] = true
	s.order = append(s.order, tag)
}

func (s *tagSet) list() []string {
	return s.order
}

package config

// MaxScanDepth is the hard ceiling for scan.max_depth.
const MaxScanDepth = 16

// ScanConfig controls signal collection scope.
type ScanConfig struct {
	// MaxDepth caps how deep the file census and config walk descend.
	MaxDepth int `yaml:"max_depth" json:"max_depth,omitempty"`
	// IgnorePatterns are added to the built-in ignore list and .gitignore lines.
	// Supports simple dir names (e.g., "fixtures") and glob patterns (e.g., "testdata/*").
	IgnorePatterns []string `yaml:"ignore" json:"ignore,omitempty"`
}

// DefaultScanConfig returns defaults for signal collection.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxDepth:       4,
		IgnorePatterns: nil,
	}
}

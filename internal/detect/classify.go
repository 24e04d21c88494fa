package detect

import (
	"sort"
	"strings"

	"claudeforge/internal/logging"
	"claudeforge/internal/signals"
)

// Classify maps a signal bundle to a StackDescriptor. It is deterministic and
// never fails.
func Classify(b *signals.Bundle) StackDescriptor {
	if b == nil {
		b = &signals.Bundle{}
	}

	d := StackDescriptor{
		Languages:        detectLanguages(b),
		Frameworks:       detectFrameworks(b),
		PackageManager:   resolvePackageManager(b),
		TestingFramework: firstMatch(b, testingChain),
		Linter:           firstMatch(b, linterChain),
		Formatter:        firstMatch(b, formatterChain),
		Bundler:          firstMatch(b, bundlerChain),
		CICDPlatform:     firstMatch(b, ciChain),
		IsMonorepo:       isMonorepo(b),
		HasDocker:        hasDocker(b),
	}
	d.HasCICD = d.CICDPlatform != ""
	d.ExistingConfigPaths = existingConfig(b)
	d.HasExistingConfig = len(d.ExistingConfigPaths) > 0

	logging.Detect("languages=[%s] frameworks=[%s] pm=%q test=%q lint=%q fmt=%q",
		strings.Join(d.Languages, ","), strings.Join(d.Frameworks, ","),
		d.PackageManager, d.TestingFramework, d.Linter, d.Formatter)
	logging.DetectDebug("bundler=%q ci=%q monorepo=%v docker=%v existing=%d",
		d.Bundler, d.CICDPlatform, d.IsMonorepo, d.HasDocker, len(d.ExistingConfigPaths))
	return d
}

func detectLanguages(b *signals.Bundle) []string {
	set := newTagSet()
	for _, p := range languagePairs {
		switch {
		case p.strict.match(b):
			set.add(p.strict.tag)
		case p.loose.match(b):
			set.add(p.loose.tag)
		}
	}
	collectMatches(b, additiveLanguages, set)
	return set.list()
}

func detectFrameworks(b *signals.Bundle) []string {
	set := newTagSet()
	if fe := firstMatch(b, frontendChain); fe != "" {
		set.add(fe)
	}
	collectMatches(b, additiveFrameworks, set)
	if b.Manifest == nil {
		collectMatches(b, ecosystemFallback, set)
	}
	return set.list()
}

func existingConfig(b *signals.Bundle) []string {
	seen := make(map[string]bool, len(b.ConfigFiles))
	out := make([]string, 0, len(b.ConfigFiles))
	for _, p := range b.ConfigFiles {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

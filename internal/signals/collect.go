package signals

import (
	"os"
	"path/filepath"
	"sort"

	"claudeforge/internal/logging"
)

// DefaultMaxDepth bounds the census and config walks.
const DefaultMaxDepth = 4

// Options tune collection.
type Options struct {
	MaxDepth    int      // <= 0 means DefaultMaxDepth
	ExtraIgnore []string // added after defaults and .gitignore
}

// Collect gathers every signal under root. It never fails: each unreadable
// input is simply absent from the bundle.
func Collect(root string, opts Options) *Bundle {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	b := &Bundle{
		Root:         root,
		Entries:      []string{},
		Dirs:         make(map[string]bool),
		Declarations: make(map[string]string),
		Probes:       make(map[string]bool),
	}

	b.listRoot()
	b.readManifest()
	b.readDeclarations()
	b.probe()

	b.Census = takeCensus(root, opts.MaxDepth, LoadMatcher(root, opts.ExtraIgnore))

	switch {
	case b.Probes[ReservedDir]:
		b.ConfigFiles = scanConfigFiles(root, opts.MaxDepth)
	case b.Has(LegacyMarker) && !b.HasDir(LegacyMarker):
		b.ConfigFiles = []string{LegacyMarker}
	default:
		b.ConfigFiles = []string{}
	}

	logging.CollectDebug("collected %d entries, %d declarations, %d files counted, %d config files",
		len(b.Entries), len(b.Declarations), b.Census.Files, len(b.ConfigFiles))
	return b
}

func (b *Bundle) listRoot() {
	entries, err := os.ReadDir(b.Root)
	if err != nil {
		logging.CollectDebug("cannot list %s: %v", b.Root, err)
		return
	}
	for _, e := range entries {
		b.Entries = append(b.Entries, e.Name())
		if e.IsDir() {
			b.Dirs[e.Name()] = true
		}
	}
	sort.Strings(b.Entries)
}

func (b *Bundle) readManifest() {
	data, err := os.ReadFile(filepath.Join(b.Root, ManifestFile))
	if err != nil {
		return
	}
	b.Manifest = ParseManifest(data)
	if b.Manifest == nil {
		logging.CollectDebug("%s is not a JSON object, treating as absent", ManifestFile)
	}
}

func (b *Bundle) readDeclarations() {
	for _, name := range DeclarationFiles {
		data, err := os.ReadFile(filepath.Join(b.Root, name))
		if err != nil {
			continue
		}
		b.Declarations[name] = string(data)
	}
}

func (b *Bundle) probe() {
	for _, rel := range ProbePaths {
		info, err := os.Stat(filepath.Join(b.Root, filepath.FromSlash(rel)))
		b.Probes[rel] = err == nil && info.IsDir()
	}
}

package signals

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"claudeforge/internal/logging"
)

// walker is an explicit depth-capped traversal. It never follows symlinked
// directories, so link cycles cannot extend it.
type walker struct {
	root       string
	maxDepth   int
	ignore     *Matcher // nil means nothing is ignored
	skipHidden bool     // skip dot-directories
	onFile     func(rel, name string)
}

func (w *walker) walk(rel string, depth int) {
	dir := filepath.Join(w.root, filepath.FromSlash(rel))
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.CollectDebug("skipping unreadable directory %s: %v", dir, err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}
		if w.ignore != nil && w.ignore.Ignored(childRel, name) {
			continue
		}
		switch {
		case e.Type()&os.ModeSymlink != 0:
			// Recorded as a file, never descended.
			w.onFile(childRel, name)
		case e.IsDir():
			if w.skipHidden && strings.HasPrefix(name, ".") {
				continue
			}
			if depth < w.maxDepth {
				w.walk(childRel, depth+1)
			}
		default:
			w.onFile(childRel, name)
		}
	}
}

// takeCensus counts files by extension below root.
func takeCensus(root string, maxDepth int, ignore *Matcher) Census {
	c := Census{Extensions: make(map[string]int)}
	w := &walker{
		root:       root,
		maxDepth:   maxDepth,
		ignore:     ignore,
		skipHidden: true,
		onFile: func(rel, name string) {
			c.Files++
			if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
				c.Extensions[ext]++
			}
		},
	}
	w.walk("", 1)
	return c
}

// scanConfigFiles lists every file under the reserved subtree as slash paths
// relative to root.
func scanConfigFiles(root string, maxDepth int) []string {
	files := []string{}
	w := &walker{
		root:     filepath.Join(root, ReservedDir),
		maxDepth: maxDepth,
		onFile: func(rel, _ string) {
			files = append(files, ReservedDir+"/"+rel)
		},
	}
	w.walk("", 1)
	sort.Strings(files)
	return files
}

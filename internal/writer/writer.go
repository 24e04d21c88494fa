// Package writer persists generated artifacts under the project root and
// reports which files were created, updated or left alone.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"claudeforge/internal/generate"
	"claudeforge/internal/logging"
	"claudeforge/internal/signals"
)

var (
	// ErrOutsideReserved is returned for an artifact path that does not
	// resolve inside the reserved .claude/ directory.
	ErrOutsideReserved = errors.New("artifact path outside " + signals.ReservedDir + "/")

	// ErrDuplicatePath is returned when two artifacts share a path.
	ErrDuplicatePath = errors.New("duplicate artifact path")
)

// preservedPaths are user-owned once they exist: a non-forced run never
// overwrites them.
var preservedPaths = map[string]bool{
	generate.InstructionsPath: true,
	generate.TaskPath:         true,
}

// IsPreserved reports whether p is a user-owned path.
func IsPreserved(p string) bool {
	return preservedPaths[path.Clean(p)]
}

// Outcome is what happened, or would happen, to one artifact.
type Outcome string

const (
	Created Outcome = "created"
	Updated Outcome = "updated"
	Skipped Outcome = "skipped"
)

// Options controls a write pass.
type Options struct {
	Force  bool // overwrite preserved paths too
	DryRun bool // compute outcomes without touching disk
}

// Result partitions the artifact paths by outcome.
type Result struct {
	Created []string `yaml:"created"`
	Updated []string `yaml:"updated"`
	Skipped []string `yaml:"skipped"`
}

// Total is the number of artifacts accounted for.
func (r Result) Total() int {
	return len(r.Created) + len(r.Updated) + len(r.Skipped)
}

func (r *Result) record(o Outcome, p string) {
	switch o {
	case Created:
		r.Created = append(r.Created, p)
	case Updated:
		r.Updated = append(r.Updated, p)
	case Skipped:
		r.Skipped = append(r.Skipped, p)
	}
}

// decide applies the merge policy: preserved paths are skipped when present
// unless forced; everything else is always written.
func decide(p string, exists, force bool) Outcome {
	switch {
	case !exists:
		return Created
	case IsPreserved(p) && !force:
		return Skipped
	default:
		return Updated
	}
}

// Write persists artifacts under root. Paths are validated before anything
// is written. A write failure stops the pass immediately; files already
// written stay on disk.
func Write(root string, artifacts []generate.Artifact, opts Options) (Result, error) {
	result := Result{Created: []string{}, Updated: []string{}, Skipped: []string{}}

	if err := validate(artifacts); err != nil {
		return result, err
	}

	for _, a := range artifacts {
		target := filepath.Join(root, filepath.FromSlash(a.Path))

		if !opts.DryRun {
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				logging.WriteError("mkdir for %s failed: %v", a.Path, err)
				return result, fmt.Errorf("failed to create directory for %s: %w", a.Path, err)
			}
		}

		exists, err := fileExists(target)
		if err != nil {
			return result, fmt.Errorf("failed to stat %s: %w", a.Path, err)
		}

		outcome := decide(a.Path, exists, opts.Force)
		if outcome != Skipped && !opts.DryRun {
			if err := writeAtomic(target, []byte(a.Content)); err != nil {
				logging.WriteError("write %s failed: %v", a.Path, err)
				return result, fmt.Errorf("failed to write %s: %w", a.Path, err)
			}
		}

		result.record(outcome, a.Path)
		logging.WriteDebug("%s %s", outcome, a.Path)
	}

	logging.Write("created=%d updated=%d skipped=%d dry_run=%v",
		len(result.Created), len(result.Updated), len(result.Skipped), opts.DryRun)
	return result, nil
}

// MarkNew returns a copy of artifacts with IsNew set from disk state.
func MarkNew(root string, artifacts []generate.Artifact) []generate.Artifact {
	out := make([]generate.Artifact, len(artifacts))
	for i, a := range artifacts {
		exists, _ := fileExists(filepath.Join(root, filepath.FromSlash(a.Path)))
		a.IsNew = !exists
		out[i] = a
	}
	return out
}

func validate(artifacts []generate.Artifact) error {
	seen := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		if !insideReserved(a.Path) {
			return fmt.Errorf("%w: %s", ErrOutsideReserved, a.Path)
		}
		clean := path.Clean(a.Path)
		if seen[clean] {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, a.Path)
		}
		seen[clean] = true
	}
	return nil
}

func insideReserved(p string) bool {
	if p == "" || path.IsAbs(p) || strings.Contains(p, `\`) {
		return false
	}
	clean := path.Clean(p)
	return strings.HasPrefix(clean, signals.ReservedDir+"/")
}

func fileExists(p string) (bool, error) {
	_, err := os.Lstat(p)
	if err == nil {
		return true, nil
	}
	// ENOTDIR: an ancestor is a regular file, so the target cannot exist.
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}

// writeAtomic writes via a uniquely named sibling temp file and rename.
// An existing file or symlink at any temp name is never opened.
func writeAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

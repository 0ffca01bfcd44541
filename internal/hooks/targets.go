package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// target is a file picked from the event, with the path the tool receives.
type target struct {
	path    string // as given in the event
	absPath string
}

// resolveTarget anchors path at workDir and applies the existence, exclude
// and workdir checks. The second result is the reason a file was skipped.
func (o Options) resolveTarget(path string) (target, string) {
	abs := path
	if !filepath.IsAbs(path) && o.WorkDir != "" {
		abs = filepath.Join(o.WorkDir, path)
	}
	abs = filepath.Clean(abs)

	if info, err := os.Stat(abs); err != nil || info.IsDir() {
		return target{}, "missing"
	}

	rel, inside := relToRoot(abs, o.WorkDir)
	if o.Config.RestrictToWorkdir && !inside {
		return target{}, "outside workdir"
	}

	for _, pattern := range o.Config.Exclude {
		if matchExclude(pattern, rel) || matchExclude(pattern, filepath.ToSlash(abs)) {
			return target{}, "excluded by " + pattern
		}
	}

	return target{path: path, absPath: abs}, ""
}

// relToRoot returns abs relative to root in slash form, and whether abs lies
// under root. Paths outside root come back unchanged.
func relToRoot(abs, root string) (string, bool) {
	if root == "" {
		return filepath.ToSlash(abs), false
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(abs), false
	}
	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs), false
	}
	return filepath.ToSlash(rel), true
}

func matchExclude(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}

package qflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ScriptName is the file qflow writes into every project directory.
const ScriptName = "qflow_vars.sh"

// ErrScriptNotFound is returned when a project directory has no qflow_vars.sh.
var ErrScriptNotFound = errors.New("qflow: no " + ScriptName + " found")

// Locate searches root for qflow_vars.sh. The shallowest match wins so that a
// project's own script is preferred over copies in nested runs.
func Locate(root string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/"+ScriptName)
	if err != nil {
		return "", fmt.Errorf("qflow: search %s: %w", root, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w under %s", ErrScriptNotFound, root)
	}

	sort.Slice(matches, func(i, j int) bool {
		di, dj := strings.Count(matches[i], "/"), strings.Count(matches[j], "/")
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})
	return filepath.Join(root, filepath.FromSlash(matches[0])), nil
}

// ResolveScript turns the command-line argument into a script path: files
// are used as given, directories are searched with Locate.
func ResolveScript(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	if info.IsDir() {
		return Locate(arg)
	}
	return arg, nil
}

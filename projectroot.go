package pandasai

import (
	"os"
	"path/filepath"
)

// EnvProjectRoot overrides project-root discovery when set.
const EnvProjectRoot = "PANDABI_PROJECT_ROOT"

var projectMarkers = []string{"pandasai.yaml", "go.mod", ".git"}

// FindProjectRoot locates the directory datasets are staged under. It
// honors the PANDABI_PROJECT_ROOT override, then walks up from the working
// directory looking for a project marker, and finally falls back to the
// working directory itself.
func FindProjectRoot(env Environ) string {
	if env == nil {
		env = OSEnviron{}
	}
	if root := env.Get(EnvProjectRoot); root != "" {
		return root
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	dir := cwd
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

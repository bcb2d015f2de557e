package config

import (
	"os"
	"path/filepath"
)

// envCandidates lists the env files to try for names, in order. When appEnv
// is set the environment file (".env.production") precedes the plain one.
func envCandidates(appEnv string, names []string) []string {
	if len(names) == 0 {
		names = []string{".env"}
	}
	out := make([]string, 0, 2*len(names))
	for _, name := range names {
		if name == "" {
			name = ".env"
		}
		if appEnv != "" {
			out = append(out, name+"."+appEnv)
		}
		out = append(out, name)
	}
	return out
}

// findUpward returns the first dir/name found walking from dir to the root.
// Absolute names are only checked as given.
func findUpward(dir, name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// findEnvFile resolves the env file Load should read, starting at dir.
func findEnvFile(dir, appEnv string, names ...string) (string, error) {
	for _, name := range envCandidates(appEnv, names) {
		if path, err := findUpward(dir, name); err == nil {
			return path, nil
		}
	}
	return "", os.ErrNotExist
}

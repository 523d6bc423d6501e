package config

import (
	"fmt"
	"os"
	"path/filepath"

	"predator/internal/support"
)

const rootEnvKey = "PREDATOR_ROOT"

// RootDirectory returns the Predator installation root: $PREDATOR_ROOT when set,
// otherwise the directory holding the running executable with symlinks resolved.
func RootDirectory() (string, error) {
	if root := support.GetEnv(rootEnvKey, ""); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", rootEnvKey, err)
		}
		return abs, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

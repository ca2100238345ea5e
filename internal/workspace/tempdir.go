package workspace

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"mcdevkit/internal/logger"
)

// ParentDirName groups every generated workspace under one folder of the temp root.
const ParentDirName = "mcdevkit"

// sharedTempDirs are preferred over os.TempDir on unix because they survive reboots
// and are shared between users.
var sharedTempDirs = []string{"/var/tmp"}

// RandomSuffix returns n random lowercase hex characters. It avoids
// collisions between runs; it is not a secret.
func RandomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// GeneratedName builds the folder name of a generated workspace.
func GeneratedName(software, version string) string {
	return fmt.Sprintf("%s-%s-%s", software, version, RandomSuffix(8))
}

// TempRoot finds a writable location for generated workspaces: a shared temp
// directory on unix when it is writable, otherwise a fresh mcdevkit-tmp*
// folder under os.TempDir().
func TempRoot() (string, error) {
	if runtime.GOOS != "windows" {
		for _, dir := range sharedTempDirs {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			if info.Mode().Perm()&0o200 != 0 {
				return dir, nil
			}
			logger.Debug("[DEBUG] %s is not writable, skipping\n", dir)
		}
	}

	dir, err := os.MkdirTemp(os.TempDir(), "mcdevkit-tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp folder: %w", err)
	}
	return dir, nil
}

// createDirIfAbsent creates dir (not its parents) when it does not exist yet.
func createDirIfAbsent(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

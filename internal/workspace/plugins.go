package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mcdevkit/internal/logger"
)

// ErrNotRegular is reported for plugin paths that exist but are not regular files.
var ErrNotRegular = errors.New("not a file")

// Skipped is one plugin input that was not copied.
type Skipped struct {
	Path   string
	Reason error
}

// CopyReport lists what CopyPlugins did. Every Skipped entry was logged as a warning.
type CopyReport struct {
	Copied  []string // destination paths
	Skipped []Skipped
}

// CopyPlugins copies every existing regular file of paths into dir, keeping
// its base name. Bundles (see IsBundle) have their .jar entries extracted
// instead. Bad inputs are skipped with a warning; only a missing dir is an error.
func CopyPlugins(paths []string, dir string) (CopyReport, error) {
	var report CopyReport

	info, err := os.Stat(dir)
	if err != nil {
		return report, fmt.Errorf("plugins folder %s does not exist: %w", dir, err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("plugins folder %s: %w", dir, ErrNotDirectory)
	}

	skip := func(path string, reason error) {
		logger.Warn("[WARN] %s: %v. Skipping...\n", path, reason)
		report.Skipped = append(report.Skipped, Skipped{Path: path, Reason: reason})
	}

	for _, plugin := range paths {
		st, err := os.Stat(plugin)
		if err != nil {
			skip(plugin, err)
			continue
		}
		if !st.Mode().IsRegular() {
			skip(plugin, ErrNotRegular)
			continue
		}

		if IsBundle(plugin) {
			jars, err := ExtractJars(plugin, dir)
			for _, jar := range jars {
				logger.Info("[INFO] %s unpacked from %s into plugins folder.\n", filepath.Base(jar), plugin)
			}
			report.Copied = append(report.Copied, jars...)
			if err != nil {
				skip(plugin, err)
			}
			continue
		}

		dest := filepath.Join(dir, filepath.Base(plugin))
		if existing, err := os.Stat(dest); err == nil && os.SameFile(st, existing) {
			// Copying onto itself would truncate the source.
			logger.Info("[INFO] %s is already in the plugins folder.\n", plugin)
			report.Copied = append(report.Copied, dest)
			continue
		}
		if err := copyFile(plugin, dest); err != nil {
			skip(plugin, err)
			continue
		}
		logger.Info("[INFO] %s copied to plugins folder.\n", plugin)
		report.Copied = append(report.Copied, dest)
	}

	return report, nil
}

// copyFile copies src to dst, keeping the source permissions.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	if stat, err := os.Stat(src); err == nil {
		return os.Chmod(dst, stat.Mode())
	}
	return nil
}

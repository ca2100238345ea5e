package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mcdevkit/internal/config"
	"mcdevkit/internal/logger"
	"mcdevkit/internal/software"
)

const (
	// JarName is the file name of the downloaded server distribution.
	JarName = "server.jar"
	// EulaFile must exist before the server agrees to start.
	EulaFile = "eula.txt"
	// EulaContent is the acceptance token written to EulaFile.
	EulaContent = "eula=true"
	// PluginsDir is the subdirectory the server loads plugins from.
	PluginsDir = "plugins"
)

// ErrNotDirectory is returned when a workspace path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Downloader fetches url into dir/name.
type Downloader interface {
	Download(ctx context.Context, url, dir, name string) error
}

// Manager materializes workspaces.
type Manager struct {
	Resolver   software.Resolver
	Downloader Downloader
	// TempRoot overrides the root of generated workspaces. Empty means TempRoot().
	TempRoot string
	// Now is used for the run record. Nil means time.Now.
	Now func() time.Time
}

// Workspace is a prepared server directory.
type Workspace struct {
	Dir         string
	DownloadURL string
	Plugins     CopyReport
}

// Jar returns the absolute path of the downloaded server jar.
func (w *Workspace) Jar() string {
	return filepath.Join(w.Dir, JarName)
}

// PluginsDir returns the absolute path of the plugins folder.
func (w *Workspace) PluginsDir() string {
	return filepath.Join(w.Dir, PluginsDir)
}

// EnsureExplicit runs before validation of a user-given workspace path. A
// missing directory is created as a convenience; a creation failure is only
// logged and surfaces later when the path is resolved. A path that exists
// but is a file is rejected with ErrNotDirectory.
func EnsureExplicit(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.Mkdir(path, 0o755); err != nil {
			logger.Error("[ERROR] Error creating directory: %v\n", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w, you need to specify a directory not a file", path, ErrNotDirectory)
	}
	return nil
}

// Resolve returns the absolute workspace directory for wd, creating a fresh
// generated one when wd is not explicit.
func (m *Manager) Resolve(sw software.Software, version string, wd config.WorkingDirectory) (string, error) {
	var dir string
	if wd.IsExplicit() {
		abs, err := filepath.Abs(wd.Path())
		if err != nil {
			return "", fmt.Errorf("failed to get the full path of %s: %w", wd.Path(), err)
		}
		dir, err = filepath.EvalSymlinks(abs)
		if err != nil {
			return "", fmt.Errorf("failed to get the full path of %s: %w", wd.Path(), err)
		}
	} else {
		root := m.TempRoot
		if root == "" {
			var err error
			if root, err = TempRoot(); err != nil {
				return "", err
			}
		}

		parent := filepath.Join(root, ParentDirName)
		if err := createDirIfAbsent(parent); err != nil {
			return "", err
		}
		dir = filepath.Join(parent, GeneratedName(sw.String(), version))
		if err := createDirIfAbsent(dir); err != nil {
			return "", err
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat workspace %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return dir, nil
}

// Prepare resolves the workspace, downloads the server jar into it, accepts
// the EULA and copies the plugins. Nothing is rolled back on failure.
func (m *Manager) Prepare(ctx context.Context, cfg *config.ServerConfig) (*Workspace, error) {
	logger.Info("[INFO] Creating working directory.\n")
	dir, err := m.Resolve(cfg.Software, cfg.Version, cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Workspace: %s\n", dir)

	if prev, err := LoadRecord(dir); err == nil {
		logger.Debug("[DEBUG] Workspace was last provisioned with %s %s at %s\n",
			prev.Software, prev.Version, prev.CreatedAt.Format(time.RFC3339))
	}

	ws := &Workspace{Dir: dir}

	logger.Info("[INFO] Downloading server software.\n")
	url, err := m.Resolver.DownloadURL(ctx, cfg.Version)
	if err != nil {
		return nil, err
	}
	ws.DownloadURL = url
	if err := m.Downloader.Download(ctx, url, dir, JarName); err != nil {
		return nil, err
	}

	logger.Info("[INFO] Creating %s.\n", EulaFile)
	if err := WriteEula(dir); err != nil {
		return nil, err
	}

	if err := createDirIfAbsent(ws.PluginsDir()); err != nil {
		return nil, err
	}
	report, err := CopyPlugins(cfg.Plugins, ws.PluginsDir())
	if err != nil {
		return nil, err
	}
	ws.Plugins = report

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	rec := Record{
		Software:    cfg.Software.String(),
		Version:     cfg.Version,
		DownloadURL: url,
		Plugins:     report.Copied,
		CreatedAt:   now().UTC(),
	}
	if err := SaveRecord(dir, rec); err != nil {
		logger.Warn("[WARN] %v\n", err)
	}

	return ws, nil
}

// WriteEula writes the acceptance marker into dir.
func WriteEula(dir string) error {
	path := filepath.Join(dir, EulaFile)
	if err := os.WriteFile(path, []byte(EulaContent), 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

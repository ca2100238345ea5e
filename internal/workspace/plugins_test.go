package workspace_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcdevkit/internal/logger"
	"mcdevkit/internal/workspace"
)

func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.Out
	logger.Out = &buf
	t.Cleanup(func() { logger.Out = prev })
	return &buf
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
}

func TestCopyPlugins_SkipsMissingAndDirectories(t *testing.T) {
	out := captureOut(t)
	src := t.TempDir()
	valid := writeFile(t, filepath.Join(src, "validFile.jar"), "plugin")
	missing := filepath.Join(src, "missing.jar")
	aDirectory := filepath.Join(src, "aDirectory")
	require.NoError(t, os.Mkdir(aDirectory, 0o755))

	dest := t.TempDir()
	report, err := workspace.CopyPlugins([]string{valid, missing, aDirectory}, dest)
	require.NoError(t, err)

	assert.Equal(t, []string{"validFile.jar"}, listDir(t, dest))
	assert.Equal(t, []string{filepath.Join(dest, "validFile.jar")}, report.Copied)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, missing, report.Skipped[0].Path)
	assert.True(t, os.IsNotExist(report.Skipped[0].Reason))
	assert.Equal(t, aDirectory, report.Skipped[1].Path)
	assert.ErrorIs(t, report.Skipped[1].Reason, workspace.ErrNotRegular)

	assert.Contains(t, out.String(), "missing.jar")
	assert.Contains(t, out.String(), "aDirectory")

	got, err := os.ReadFile(filepath.Join(dest, "validFile.jar"))
	require.NoError(t, err)
	assert.Equal(t, "plugin", string(got))
}

func TestCopyPlugins_MissingDestination(t *testing.T) {
	_, err := workspace.CopyPlugins(nil, filepath.Join(t.TempDir(), "plugins"))
	assert.Error(t, err)
}

func TestCopyPlugins_KeepsPermissions(t *testing.T) {
	src := t.TempDir()
	plugin := filepath.Join(src, "Exec.jar")
	require.NoError(t, os.WriteFile(plugin, []byte("x"), 0o600))

	dest := t.TempDir()
	_, err := workspace.CopyPlugins([]string{plugin}, dest)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dest, "Exec.jar"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCopyPlugins_ZipBundle(t *testing.T) {
	src := t.TempDir()
	bundle := filepath.Join(src, "essentials.zip")
	writeZip(t, bundle, map[string]string{
		"EssentialsX.jar":            "core",
		"addons/EssentialsXChat.jar": "chat",
		"README.txt":                 "ignored",
	})

	dest := t.TempDir()
	report, err := workspace.CopyPlugins([]string{bundle}, dest)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"EssentialsX.jar", "EssentialsXChat.jar"}, listDir(t, dest))
	assert.Len(t, report.Copied, 2)
	assert.Empty(t, report.Skipped)
}

func TestCopyPlugins_TarGzBundle(t *testing.T) {
	src := t.TempDir()
	bundle := filepath.Join(src, "worldedit.tar.gz")
	writeTarGz(t, bundle, map[string]string{
		"worldedit/WorldEdit.jar": "we",
		"worldedit/config.yml":    "ignored",
	})

	dest := t.TempDir()
	report, err := workspace.CopyPlugins([]string{bundle}, dest)
	require.NoError(t, err)

	assert.Equal(t, []string{"WorldEdit.jar"}, listDir(t, dest))
	assert.Equal(t, []string{filepath.Join(dest, "WorldEdit.jar")}, report.Copied)
}

func TestCopyPlugins_JarIsNeverUnpacked(t *testing.T) {
	src := t.TempDir()
	jar := filepath.Join(src, "Shaded.jar")
	writeZip(t, jar, map[string]string{"lib/Inner.jar": "inner"})

	dest := t.TempDir()
	_, err := workspace.CopyPlugins([]string{jar}, dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shaded.jar"}, listDir(t, dest))
}

func TestCopyPlugins_CorruptBundleIsSkipped(t *testing.T) {
	captureOut(t)
	src := t.TempDir()
	bundle := writeFile(t, filepath.Join(src, "broken.zip"), "not a zip")

	dest := t.TempDir()
	report, err := workspace.CopyPlugins([]string{bundle}, dest)
	require.NoError(t, err)
	assert.Empty(t, report.Copied)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, bundle, report.Skipped[0].Path)
}

func TestCopyPlugins_AlreadyInPluginsFolder(t *testing.T) {
	dest := t.TempDir()
	plugin := writeFile(t, filepath.Join(dest, "Foo.jar"), "plugin bytes")

	report, err := workspace.CopyPlugins([]string{plugin}, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(plugin)
	require.NoError(t, err)
	assert.Equal(t, "plugin bytes", string(got))
	assert.Equal(t, []string{plugin}, report.Copied)
	assert.Empty(t, report.Skipped)
}

func TestCopyPlugins_PartialBundleIsReported(t *testing.T) {
	captureOut(t)
	src := t.TempDir()
	bundle := filepath.Join(src, "pack.zip")
	f, err := os.Create(bundle)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"First.jar", "Second.jar"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dest := t.TempDir()
	// A directory in the way makes the second entry fail to extract.
	require.NoError(t, os.Mkdir(filepath.Join(dest, "Second.jar"), 0o755))

	report, err := workspace.CopyPlugins([]string{bundle}, dest)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dest, "First.jar")}, report.Copied)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, bundle, report.Skipped[0].Path)
}

func TestIsBundle(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"plugins.zip", true},
		{"plugins.ZIP", true},
		{"plugins.7z", true},
		{"plugins.tar", true},
		{"plugins.tar.gz", true},
		{"plugins.tgz", true},
		{"plugins.tar.bz2", true},
		{"plugins.tar.xz", true},
		{"Plugin.jar", false},
		{"notes.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, workspace.IsBundle(tt.path))
		})
	}
}

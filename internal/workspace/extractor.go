package workspace

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"mcdevkit/internal/logger"
)

// bundleExtensions are archive formats accepted as plugin bundles.
// .jar is deliberately absent: a jar is a zip but is itself a plugin.
var bundleExtensions = []string{".zip", ".7z", ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz"}

// IsBundle reports whether path names a plugin bundle archive.
func IsBundle(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range bundleExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ExtractJars writes every .jar entry of the bundle at src into dest,
// flattening any folder structure. It returns the written paths.
func ExtractJars(src, dest string) ([]string, error) {
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		logger.Debug("[DEBUG] bundle %s is a zip\n", src)
		return extractZip(src, dest)
	case strings.HasSuffix(lower, ".7z"):
		logger.Debug("[DEBUG] bundle %s is a 7z\n", src)
		return extract7z(src, dest)
	case IsBundle(src):
		logger.Debug("[DEBUG] bundle %s is a tar.*\n", src)
		return extractTar(src, dest)
	default:
		return nil, fmt.Errorf("unsupported bundle format: %s", src)
	}
}

func isJarEntry(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".jar")
}

// writeEntry stores one archive entry as dest/<base name of entry>.
func writeEntry(r io.Reader, dest, entry string) (string, error) {
	target := filepath.Join(dest, filepath.Base(entry))
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return "", err
	}
	return target, out.Close()
}

func extractTar(src, dest string) ([]string, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(lower, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(lower, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		reader = xzr
	}

	var written []string
	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, err
		}
		if hdr.Typeflag != tar.TypeReg || !isJarEntry(hdr.Name) {
			continue
		}
		path, err := writeEntry(tr, dest, hdr.Name)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func extractZip(src, dest string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var written []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isJarEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return written, err
		}
		path, err := writeEntry(rc, dest, f.Name)
		rc.Close()
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func extract7z(src, dest string) ([]string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	var written []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isJarEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return written, err
		}
		path, err := writeEntry(rc, dest, f.Name)
		rc.Close()
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

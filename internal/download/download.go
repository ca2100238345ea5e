package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mcdevkit/internal/logger"
	"mcdevkit/internal/remote"
)

// chunkSize is the read buffer used while streaming a download to disk.
const chunkSize = 32 * 1024

// Downloader streams remote files to disk.
type Downloader struct {
	Fetcher remote.Fetcher
	// NewProgress creates the progress sink for one download. Nil means Silent.
	NewProgress func(name string, total int64) Progress
}

// Download fetches url into dir/name, creating dir when missing.
// Chunks are written as they arrive. On a stream error the partial file is
// left in place.
func (d *Downloader) Download(ctx context.Context, url, dir, name string) error {
	body, total, err := d.Fetcher.Open(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	dest := filepath.Join(dir, name)
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", dest, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	progress := Progress(Silent{})
	if d.NewProgress != nil {
		progress = d.NewProgress(name, total)
	}

	written, err := copyChunks(out, body, progress)
	if err != nil {
		progress.Fail()
		return fmt.Errorf("download of %s aborted after %d bytes: %w", url, written, err)
	}
	progress.Done()

	logger.Debug("[DEBUG] Downloaded %d bytes to %s\n", written, dest)
	return nil
}

// copyChunks copies src to dst one chunk at a time, reporting the running total.
func copyChunks(dst io.Writer, src io.Reader, progress Progress) (int64, error) {
	buf := make([]byte, chunkSize)
	var received int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return received, werr
			}
			received += int64(n)
			progress.Update(received)
		}
		if rerr == io.EOF {
			return received, nil
		}
		if rerr != nil {
			return received, rerr
		}
	}
}

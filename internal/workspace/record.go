package workspace

import (
	"encoding/json" // For JSON encoding and decoding of the record file
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mcdevkit/internal/logger"
)

// RecordFile is written into every prepared workspace.
const RecordFile = ".mcdevkit.json"

// Record describes how a workspace was last provisioned. It is informational
// only: runs never read it to skip a download.
type Record struct {
	Software    string    `json:"software"`
	Version     string    `json:"version"`
	DownloadURL string    `json:"download_url"`
	Plugins     []string  `json:"plugins"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoadRecord reads the record of dir.
func LoadRecord(dir string) (*Record, error) {
	raw, err := os.ReadFile(filepath.Join(dir, RecordFile))
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", RecordFile, err)
	}
	return &rec, nil
}

// SaveRecord writes rec into dir as indented JSON.
func SaveRecord(dir string, rec Record) error {
	file, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace record: %w", err)
	}

	path := filepath.Join(dir, RecordFile)
	logger.Debug("[DEBUG] Writing workspace record to %s\n", path)

	if err := os.WriteFile(path, file, 0o644); err != nil {
		return fmt.Errorf("failed to write workspace record %s: %w", path, err)
	}
	return nil
}

package software

import (
	"context"
	"fmt"

	"mcdevkit/internal/logger"
	"mcdevkit/internal/remote"
)

// PaperAPIResponse is the document served by the Paper download API.
type PaperAPIResponse struct {
	Latest   string            `json:"latest"`
	Versions map[string]string `json:"versions"` // version -> direct jar URL
}

// PaperResolver resolves Paper download links.
type PaperResolver struct {
	Fetcher remote.Fetcher
	APIURL  string
}

// DownloadURL implements Resolver.
func (r *PaperResolver) DownloadURL(ctx context.Context, version string) (string, error) {
	var api PaperAPIResponse
	if err := r.Fetcher.GetJSON(ctx, r.APIURL, &api); err != nil {
		return "", fmt.Errorf("failed to fetch Paper API response: %w", err)
	}

	if version == "" {
		version = api.Latest
		logger.Debug("[DEBUG] No version requested, using latest Paper version %s\n", version)
	}

	link, ok := api.Versions[version]
	if !ok {
		return "", fmt.Errorf("paper %s: %w in API response", version, ErrVersionNotFound)
	}

	logger.Debug("[DEBUG] Paper %s resolves to %s\n", version, link)
	return link, nil
}

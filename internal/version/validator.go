package version

import (
	"context"
	"regexp"

	"mcdevkit/internal/logger"
	"mcdevkit/internal/remote"
)

// DefaultManifestURL is the official Minecraft version manifest.
const DefaultManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// pattern accepts 1.<1-2 digits> with an optional .<1-2 digits> patch component.
var pattern = regexp.MustCompile(`^1\.\d{1,2}(\.\d{1,2})?$`)

// Manifest mirrors the parts of the version manifest we care about.
type Manifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []ManifestEntry `json:"versions"`
}

// ManifestEntry is one known upstream version.
type ManifestEntry struct {
	ID   string `json:"id"`
	Type string `json:"type"` // release, snapshot, old_beta, old_alpha
}

// IDs returns the set of all version ids listed in the manifest.
func (m *Manifest) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(m.Versions))
	for _, v := range m.Versions {
		ids[v.ID] = struct{}{}
	}
	return ids
}

// MatchesPattern is the syntactic prefilter applied before any network call.
func MatchesPattern(v string) bool {
	return pattern.MatchString(v)
}

// Validator checks requested versions against the manifest.
type Validator struct {
	Fetcher     remote.Fetcher
	ManifestURL string
}

// NewValidator returns a Validator for the given manifest URL, or the
// official one when url is empty.
func NewValidator(fetcher remote.Fetcher, url string) *Validator {
	if url == "" {
		url = DefaultManifestURL
	}
	return &Validator{Fetcher: fetcher, ManifestURL: url}
}

// Manifest fetches and decodes the version manifest.
func (v *Validator) Manifest(ctx context.Context) (*Manifest, error) {
	var m Manifest
	if err := v.Fetcher.GetJSON(ctx, v.ManifestURL, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// IsValid reports whether ver is well formed and listed in the manifest.
// Failures are logged, never returned; the caller decides whether to abort.
func (v *Validator) IsValid(ctx context.Context, ver string) bool {
	if !MatchesPattern(ver) {
		logger.Error("[ERROR] '%s' is not a valid version number.\n", ver)
		return false
	}

	m, err := v.Manifest(ctx)
	if err != nil {
		logger.Error("[ERROR] Failed to fetch version manifest: %v\n", err)
		return false
	}
	logger.Debug("[DEBUG] Manifest lists %d versions (latest release %s, snapshot %s)\n",
		len(m.Versions), m.Latest.Release, m.Latest.Snapshot)

	if _, ok := m.IDs()[ver]; !ok {
		logger.Error("[ERROR] Version %s not found in version manifest.\n", ver)
		return false
	}
	return true
}

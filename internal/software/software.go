package software

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mcdevkit/internal/remote"
)

// Software identifies a server distribution that can be downloaded and run.
type Software string

const (
	// Paper is the PaperMC server distribution.
	Paper Software = "paper"
)

// Supported lists every Software value in the order shown to users.
var Supported = []Software{Paper}

// ErrVersionNotFound is returned when a distribution API does not list the
// requested version. It is distinct from transport and decode failures.
var ErrVersionNotFound = errors.New("version not found")

// String implements fmt.Stringer.
func (s Software) String() string {
	return string(s)
}

// Parse maps a user-supplied name to a Software value, ignoring case.
func Parse(name string) (Software, error) {
	for _, s := range Supported {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unsupported software %q (supported: %s)", name, supportedNames())
}

func supportedNames() string {
	names := make([]string, 0, len(Supported))
	for _, s := range Supported {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Resolver turns a version string into a direct download URL for one distribution.
// An empty version asks for the distribution's latest build.
type Resolver interface {
	DownloadURL(ctx context.Context, version string) (string, error)
}

// Endpoints holds the API base URLs used by the resolvers.
type Endpoints struct {
	Paper string
}

// DefaultEndpoints are the public APIs used when no override is configured.
var DefaultEndpoints = Endpoints{
	Paper: "https://qing762.is-a.dev/api/papermc",
}

// For returns the Resolver implementation selected by s.
func For(s Software, fetcher remote.Fetcher, endpoints Endpoints) (Resolver, error) {
	switch s {
	case Paper:
		url := endpoints.Paper
		if url == "" {
			url = DefaultEndpoints.Paper
		}
		return &PaperResolver{Fetcher: fetcher, APIURL: url}, nil
	default:
		return nil, fmt.Errorf("no resolver for software %q", s)
	}
}

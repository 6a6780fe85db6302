package config

import "context"

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads every manifest found under the given paths (files or
	// directories) and returns the merged model. root is the repository
	// root; manifests may refer to it, but paths are returned as written.
	Load(ctx context.Context, root string, paths ...string) (*Model, error)
}

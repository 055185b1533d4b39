package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load parses the file at path into a raw BuildConfig. Defaults are not
	// applied; string fields left empty mean "unset".
	Load(ctx context.Context, path string) (*BuildConfig, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*BuildConfig, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, path string) (*BuildConfig, error) {
	return f(ctx, path)
}

// Source pairs a configuration file name with the loader able to parse it.
// ReadPackerConfig probes sources in order and uses the first file present.
type Source struct {
	File   string
	Loader Loader
}

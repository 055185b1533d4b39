package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/packer/internal/ctxlog"
)

// ReadPackerConfig locates the project configuration in dir by probing the
// given sources in order, parses it and applies defaults.
func ReadPackerConfig(ctx context.Context, dir string, sources ...Source) (*BuildConfig, error) {
	logger := ctxlog.FromContext(ctx)

	tried := make([]string, 0, len(sources))
	for _, src := range sources {
		path := filepath.Join(dir, src.File)
		tried = append(tried, src.File)

		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &ConfigInvalidError{Path: path, Reason: "cannot access file", Err: err}
		}

		logger.Debug("Reading packer configuration.", "path", path)
		cfg, err := src.Loader.Load(ctx, path)
		if err != nil {
			var invalid *ConfigInvalidError
			if errors.As(err, &invalid) {
				return nil, err
			}
			return nil, &ConfigInvalidError{Path: path, Reason: "parse failure", Err: err}
		}

		ApplyDefaults(cfg)
		if reason := Validate(cfg); reason != "" {
			return nil, &ConfigInvalidError{Path: path, Reason: reason}
		}
		cfg.Path = path
		logger.Debug("Packer configuration loaded.", "buildMode", cfg.Compiler.BuildMode, "format", cfg.Output.Format)
		return cfg, nil
	}

	return nil, &ConfigNotFoundError{Dir: dir, Tried: tried}
}

// ReadPackageData parses the project's package.json.
func ReadPackageData(dir string) (*PackageMetadata, error) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &PackageNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pkg PackageMetadata
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, &ConfigInvalidError{Path: path, Reason: "malformed package descriptor", Err: err}
	}
	if pkg.Name == "" {
		return nil, &ConfigInvalidError{Path: path, Reason: "package name is required"}
	}
	return &pkg, nil
}

// babelConfigFiles are probed in order by ReadBabelConfig.
var babelConfigFiles = []string{".babelrc", "babel.config.json"}

// ReadBabelConfig reads the optional Babel configuration of the project.
// A missing file is reported through found=false and is not an error.
func ReadBabelConfig(dir string) (cfg *BabelConfig, found bool, err error) {
	for _, name := range babelConfigFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var babel BabelConfig
		if err := json.Unmarshal(data, &babel); err != nil {
			return nil, false, &ConfigInvalidError{Path: path, Reason: "malformed babel configuration", Err: err}
		}
		return &babel, true, nil
	}
	return nil, false, nil
}

// Dependency is a resolved node module of the project.
type Dependency struct {
	Name    string
	Version string
	Dir     string
}

// RequireDependency resolves a node module installed in the project, failing
// with DependencyMissingError when it is absent.
func RequireDependency(dir, name string) (*Dependency, error) {
	moduleDir := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
	data, err := os.ReadFile(filepath.Join(moduleDir, "package.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DependencyMissingError{Name: name, Dir: dir}
		}
		return nil, fmt.Errorf("failed to inspect dependency %s: %w", name, err)
	}

	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &ConfigInvalidError{Path: filepath.Join(moduleDir, "package.json"), Reason: "malformed dependency manifest", Err: err}
	}
	return &Dependency{Name: name, Version: manifest.Version, Dir: moduleDir}, nil
}

package config

import "fmt"

// ConfigNotFoundError is returned when no project configuration file exists.
type ConfigNotFoundError struct {
	Dir   string
	Tried []string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("packer configuration not found in %s (tried %v)", e.Dir, e.Tried)
}

// ConfigInvalidError is returned when a configuration or metadata file
// cannot be parsed or holds a value outside the accepted set.
type ConfigInvalidError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigInvalidError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.Path, e.Reason)
}

func (e *ConfigInvalidError) Unwrap() error { return e.Err }

// PackageNotFoundError is returned when the project has no package.json.
type PackageNotFoundError struct {
	Path string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package descriptor not found: %s", e.Path)
}

// DependencyMissingError is returned when a required peer tool, such as the
// typescript compiler, is not installed in the project.
type DependencyMissingError struct {
	Name string
	Dir  string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("required dependency %q is not installed; run `npm install --save-dev %s` in %s", e.Name, e.Name, e.Dir)
}

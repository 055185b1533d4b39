// Package config defines the format-agnostic project model consumed by the
// plugin selectors and the task modules, along with the Loader interface
// for reading it from the various configuration file formats.
//
// A BuildConfig is produced once per task invocation by ReadPackerConfig and
// is treated as immutable afterwards. Concrete loaders for HCL/JSON and YAML
// live in separate adapter packages and only fill the raw model; defaults and
// validation are applied here so every format behaves the same.
package config

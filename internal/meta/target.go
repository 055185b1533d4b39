// Package meta derives the distributed package descriptor and the license
// banner from the project's configuration and package.json.
package meta

import (
	"bytes"
	"encoding/json"
	"path"

	"github.com/specialistvlad/packer/internal/config"
)

// TargetPackage is the package.json written into the distribution directory.
// Field order is the serialization order.
type TargetPackage struct {
	Name             string            `json:"name"`
	Version          string            `json:"version,omitempty"`
	Description      string            `json:"description,omitempty"`
	Keywords         json.RawMessage   `json:"keywords,omitempty"`
	Author           json.RawMessage   `json:"author,omitempty"`
	Repository       json.RawMessage   `json:"repository,omitempty"`
	License          string            `json:"license,omitempty"`
	Bugs             json.RawMessage   `json:"bugs,omitempty"`
	Homepage         string            `json:"homepage,omitempty"`
	Main             string            `json:"main"`
	Bin              json.RawMessage   `json:"bin,omitempty"`
	Typings          string            `json:"typings,omitempty"`
	Module           string            `json:"module,omitempty"`
	FESM5            string            `json:"fesm5,omitempty"`
	ESNext           string            `json:"esnext,omitempty"`
	FESMNext         string            `json:"fesmnext,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// BuildTargetPackage selects and re-maps package.json fields for the
// distributed package.
func BuildTargetPackage(cfg *config.BuildConfig, pkg *config.PackageMetadata) *TargetPackage {
	target := &TargetPackage{
		Name:        pkg.Name,
		Version:     pkg.Version,
		Description: pkg.Description,
		Keywords:    pkg.Keywords,
		Author:      pkg.Author,
		Repository:  pkg.Repository,
		License:     pkg.License,
		Bugs:        pkg.Bugs,
		Homepage:    pkg.Homepage,
		Main:        path.Join("bundle", pkg.Name+"."+cfg.Output.Format+".min.js"),
	}

	if cfg.Compiler.BuildMode == config.BuildModeNodeCLI {
		target.Bin = pkg.Bin
	}
	if cfg.Compiler.ScriptPreprocessor == config.ScriptTypescript {
		target.Typings = "index.d.ts"
	}
	if cfg.Output.ES5 {
		target.Module = path.Join("fesm5", pkg.Name+".esm.min.js")
		target.FESM5 = target.Module
	}
	if cfg.Output.ESNext {
		target.ESNext = path.Join("fesmnext", pkg.Name+".esm.min.js")
		target.FESMNext = target.ESNext
	}

	target.Dependencies, target.PeerDependencies = MapDependencies(cfg.Output.DependencyMapMode, pkg)
	return target
}

// MapDependencies applies the dependency map mode to the project's
// dependencies and peerDependencies. The returned maps are copies.
func MapDependencies(mode string, pkg *config.PackageMetadata) (deps, peers map[string]string) {
	switch mode {
	case config.MapCrossPeer:
		peers = clone(pkg.Dependencies)
	case config.MapCross:
		deps = clone(pkg.PeerDependencies)
	case config.MapDirect:
		deps = clone(pkg.Dependencies)
	case config.MapPeer:
		peers = clone(pkg.PeerDependencies)
	case config.MapAll:
		deps = clone(pkg.Dependencies)
		peers = clone(pkg.PeerDependencies)
	}
	return deps, peers
}

// MarshalTargetPackage encodes the package with two-space indentation and a
// trailing newline. Output is byte-stable for equal inputs.
func MarshalTargetPackage(target *TargetPackage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(target); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clone(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package config

import "encoding/json"

// PackageMetadata is the subset of package.json the tasks consume. Fields
// whose shape varies between projects (author as string or object, bin as
// string or map) are kept as raw JSON so they are copied through unchanged.
type PackageMetadata struct {
	Name             string            `json:"name"`
	Version          string            `json:"version,omitempty"`
	Description      string            `json:"description,omitempty"`
	Keywords         json.RawMessage   `json:"keywords,omitempty"`
	Author           json.RawMessage   `json:"author,omitempty"`
	Repository       json.RawMessage   `json:"repository,omitempty"`
	License          string            `json:"license,omitempty"`
	Bugs             json.RawMessage   `json:"bugs,omitempty"`
	Homepage         string            `json:"homepage,omitempty"`
	Bin              json.RawMessage   `json:"bin,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
}

// AuthorName returns the author as a display string, whichever form
// package.json uses.
func (p *PackageMetadata) AuthorName() string {
	if len(p.Author) == 0 {
		return ""
	}
	var name string
	if err := json.Unmarshal(p.Author, &name); err == nil {
		return name
	}
	var person struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(p.Author, &person); err != nil {
		return ""
	}
	if person.Email != "" {
		return person.Name + " <" + person.Email + ">"
	}
	return person.Name
}

// BabelConfig is the optional project Babel configuration. Presets and
// plugins are kept verbatim and forwarded to the babel rollup plugin.
type BabelConfig struct {
	Presets []json.RawMessage `json:"presets,omitempty"`
	Plugins []json.RawMessage `json:"plugins,omitempty"`
}

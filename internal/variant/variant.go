// Package variant names the bundle outputs a build can produce.
package variant

import "github.com/specialistvlad/packer/internal/config"

// Variant is one distinct bundle output target.
type Variant string

const (
	// Flat is the single-file bundle in the configured module format.
	Flat Variant = "flat"
	// ES5 is the flat ES module bundle transpiled to ES5.
	ES5 Variant = "es5"
	// ESNext is the flat ES module bundle targeting ESNext.
	ESNext Variant = "esnext"
)

// Phase returns the name users reference in custom plugin phases. The flat
// variant is historically called "bundle".
func (v Variant) Phase() string {
	if v == Flat {
		return "bundle"
	}
	return string(v)
}

// Dir returns the output sub-directory of the variant inside dist.
func (v Variant) Dir() string {
	switch v {
	case ES5:
		return "fesm5"
	case ESNext:
		return "fesmnext"
	default:
		return "bundle"
	}
}

// Requested lists the variants a configuration asks for. The flat variant
// is always built; es5 and esnext follow their output flags, in that order.
func Requested(cfg *config.BuildConfig) []Variant {
	variants := []Variant{Flat}
	if cfg.Output.ES5 {
		variants = append(variants, ES5)
	}
	if cfg.Output.ESNext {
		variants = append(variants, ESNext)
	}
	return variants
}

package hcl_adapter

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// FromCtyValue converts a free-form cty value (plugin options) into plain
// JSON-compatible Go values. Unset and null values become nil.
func FromCtyValue(v cty.Value) (any, error) {
	if v.Type() == cty.NilType || v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known at load time")
	}

	raw, err := ctyjson.SimpleJSONValue{Value: v}.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("unable to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unable to decode value: %w", err)
	}
	return out, nil
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
// Values of dynamic shape go through JSON so maps with mixed element types
// become cty objects.
func ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	switch v.(type) {
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return cty.NilVal, fmt.Errorf("unable to encode value: %w", err)
		}
		var sv ctyjson.SimpleJSONValue
		if err := sv.UnmarshalJSON(raw); err != nil {
			return cty.NilVal, fmt.Errorf("unable to convert value: %w", err)
		}
		return sv.Value, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

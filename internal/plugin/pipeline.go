package plugin

import "fmt"

// Pipeline is an ordered sequence of plugin invocations.
type Pipeline []Descriptor

// OrderError reports a descriptor placed after a later phase.
type OrderError struct {
	Index int
	Kind  Kind
	Phase Phase
	After Phase
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("plugin %d (%s) in phase %s is placed after phase %s", e.Index, e.Kind, e.Phase, e.After)
}

// Append returns a new pipeline with the given descriptors appended. The
// receiver is never modified, so pipelines can be shared as prefixes.
func (p Pipeline) Append(descriptors ...Descriptor) Pipeline {
	out := make(Pipeline, 0, len(p)+len(descriptors))
	out = append(out, p...)
	return append(out, descriptors...)
}

// Validate checks that phases never decrease along the pipeline.
func (p Pipeline) Validate() error {
	var last Phase
	for i, d := range p {
		if d.Phase < last {
			return &OrderError{Index: i, Kind: d.Kind, Phase: d.Phase, After: last}
		}
		last = d.Phase
	}
	return nil
}

// Kinds returns the plugin kinds in pipeline order.
func (p Pipeline) Kinds() []Kind {
	kinds := make([]Kind, len(p))
	for i, d := range p {
		kinds[i] = d.Kind
	}
	return kinds
}

// Split separates module graph plugins from output-stage plugins, keeping
// the relative order of each group.
func (p Pipeline) Split() (graph, output Pipeline) {
	for _, d := range p {
		if d.Output {
			output = append(output, d)
		} else {
			graph = append(graph, d)
		}
	}
	return graph, output
}

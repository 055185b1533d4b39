package plugin

import "fmt"

// Phase is a named stage of the plugin pipeline. The numeric order of the
// constants is the execution order.
type Phase int

const (
	PhaseStyle Phase = iota + 1
	PhasePreBundle
	PhaseResolve
	PhaseScript
	PhaseCustom
	PhasePostBundle
	PhaseDevServer
	PhaseCoverage
)

var phaseNames = map[Phase]string{
	PhaseStyle:      "style",
	PhasePreBundle:  "pre-bundle",
	PhaseResolve:    "resolve",
	PhaseScript:     "script",
	PhaseCustom:     "custom",
	PhasePostBundle: "post-bundle",
	PhaseDevServer:  "dev-server",
	PhaseCoverage:   "coverage",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Phases lists every phase in execution order.
func Phases() []Phase {
	return []Phase{
		PhaseStyle,
		PhasePreBundle,
		PhaseResolve,
		PhaseScript,
		PhaseCustom,
		PhasePostBundle,
		PhaseDevServer,
		PhaseCoverage,
	}
}

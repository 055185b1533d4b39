// Package plugin defines the closed set of rollup plugin descriptors that the
// selectors produce and the rollup renderer consumes.
//
// Every descriptor carries an explicit Phase. Phases are ordered, and an
// assembled Pipeline is only valid when its phases never decrease: style
// plugins run before pre-bundle transforms, pre-bundle before resolution,
// resolution before script compilation, and so on. Position inside a phase
// is the order of construction.
package plugin

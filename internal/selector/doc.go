// Package selector holds the pure functions that map a normalized
// configuration to ordered plugin descriptors, one function per pipeline
// phase. Selectors never touch the file system and never share the slices
// they return, so every variant gets a freshly built pipeline.
package selector

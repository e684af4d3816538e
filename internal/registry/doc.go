// Package registry discovers the projects of a workspace and answers the
// one question every later stage depends on: is a given coordinate
// produced by this workspace?
//
// Discovery walks the aggregator tree depth first from the root manifest.
// Missing manifests are warnings, unreadable ones are recorded errors, and
// only a missing root manifest stops the run. The registry is complete
// before anyone asks it about dependencies; it is never consulted half
// built.
package registry

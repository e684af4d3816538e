// Package manifest reads Maven module manifests (pom.xml) from a billy
// filesystem and turns them into model.Project values.
//
// The Reader first tries to compute an effective model: it follows the
// parent chain on the local filesystem, inherits coordinates, properties,
// dependencies and build plugins, and interpolates ${...} references. When
// that fails the raw manifest is used instead and the project is flagged
// as degraded. Parsed manifests are kept in an LRU cache because parents
// are shared by many modules.
package manifest

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of a Maven project as the rest
// of the application sees it. Values are produced by a manifest provider and
// are treated as immutable from then on.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Coordinate: The (groupId, artifactId) pair. It is the identity of a
//     project inside a workspace and the key that decides whether a declared
//     dependency is internal (produced by the workspace) or external.
//
//   - Project: One module manifest after resolution. It records its own
//     coordinate, packaging, dependencies, sub-module references and build
//     plugins, along with where the manifest lives in the workspace.
//
//   - Plugin and Execution: The build plugins of a project and the goal
//     bindings they declare. Executions may pin goals to a lifecycle phase.
//
//   - Goal: A plugin goal lifted into a build target. It carries the target
//     name it will be published under, its category and the phases it should
//     run after.
//
// Nothing in this package performs I/O. Parsing lives in the manifest
// package; graph construction lives in the builder package.
package model

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Project structure and the manifest elements it is
// assembled from.
package model

import "strings"

// Packaging values with dedicated handling.
const (
	PackagingPOM         = "pom"
	PackagingJar         = "jar"
	PackagingBundle      = "bundle"
	PackagingWar         = "war"
	PackagingEar         = "ear"
	PackagingMavenPlugin = "maven-plugin"
)

// DefaultPluginGroup is the groupId Maven assumes for plugins declared
// without one.
const DefaultPluginGroup = "org.apache.maven.plugins"

// DefaultExecutionID is the id of executions declared without one and of
// every framework-synthesized goal.
const DefaultExecutionID = "default"

// UnknownGroup names projects whose groupId could not be determined from the
// manifest or its parent.
const UnknownGroup = "unknown"

// Coordinate identifies a project within a workspace.
type Coordinate struct {
	GroupID    string
	ArtifactID string
}

// String renders the coordinate as "group:artifact".
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// IsZero reports whether the coordinate carries no artifact id.
func (c Coordinate) IsZero() bool {
	return c.ArtifactID == ""
}

// Dependency is a declared dependency of a project.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      string
}

// Coordinate returns the dependency's coordinate.
func (d Dependency) Coordinate() Coordinate {
	return Coordinate{GroupID: d.GroupID, ArtifactID: d.ArtifactID}
}

// Execution is a plugin execution block.
type Execution struct {
	ID    string
	Phase string // empty when the goals are not bound explicitly
	Goals []string
}

// Plugin is a build plugin declared by a project.
type Plugin struct {
	GroupID    string
	ArtifactID string
	Version    string
	Executions []Execution
}

// Key returns "group:artifact" with Maven's default plugin group applied.
func (p Plugin) Key() string {
	group := p.GroupID
	if group == "" {
		group = DefaultPluginGroup
	}
	return group + ":" + p.ArtifactID
}

// Project is a module manifest after resolution.
type Project struct {
	Coordinate
	Version string
	Name    string

	// ParentGroupID is the groupId of the declared parent, if any.
	ParentGroupID string

	// ManifestPath is the workspace-relative, slash separated manifest path.
	ManifestPath string
	// Root is the directory holding the manifest, "." for the workspace root.
	Root string

	Packaging    string
	Dependencies []Dependency
	Modules      []string
	Plugins      []Plugin

	// Degraded is set when the effective model could not be computed and the
	// project was read from the raw manifest instead.
	Degraded bool
}

// PackagingOrDefault returns the lower-cased packaging, "jar" when unset.
func (p *Project) PackagingOrDefault() string {
	pkg := strings.ToLower(strings.TrimSpace(p.Packaging))
	if pkg == "" {
		return PackagingJar
	}
	return pkg
}

// DisplayName returns the "group:artifact" name a project is published
// under. A missing groupId falls back to the parent's, then to "unknown".
func (p *Project) DisplayName() string {
	group := p.GroupID
	if group == "" {
		group = p.ParentGroupID
	}
	if group == "" {
		group = UnknownGroup
	}
	return group + ":" + p.ArtifactID
}

// IsAggregator reports whether the project declares sub-modules.
func (p *Project) IsAggregator() bool {
	return len(p.Modules) > 0
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Goal structure, a plugin goal lifted into a build
// target.
package model

// Category is the coarse classification of a goal.
type Category string

// Goal categories.
const (
	CategoryServe   Category = "serve"
	CategoryBuild   Category = "build"
	CategoryTest    Category = "test"
	CategoryDeploy  Category = "deploy"
	CategoryUtility Category = "utility"
)

// ParseCategory converts a string into a Category. Unknown values are
// reported with ok=false.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategoryServe, CategoryBuild, CategoryTest, CategoryDeploy, CategoryUtility:
		return c, true
	}
	return "", false
}

// Goal is a plugin goal that will be published as a build target.
type Goal struct {
	PluginKey   string
	Name        string
	Phase       string // explicit binding, empty when unbound
	ExecutionID string
	TargetName  string
	Category    Category

	// SuggestedDependencies lists the phases the goal should run after.
	SuggestedDependencies []string
}

// Bound reports whether the goal is explicitly bound to a phase.
func (g Goal) Bound() bool {
	return g.Phase != ""
}

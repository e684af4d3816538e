// Package framework detects build frameworks from a project's plugins and
// dependencies. Each Rule pairs a signature with the lifecycle phases and
// plugin goals the framework contributes. Rules are evaluated in registry
// order and every matching rule contributes.
package framework

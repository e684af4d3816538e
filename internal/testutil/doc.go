// Package testutil holds fixtures shared by package tests: in-memory
// workspaces, a manifest builder and a logging context.
package testutil

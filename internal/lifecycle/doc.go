// Package lifecycle holds the static ordering model of Maven phases: for
// every known phase, the phases that must run directly before it.
//
// The built-in table covers the default, clean and site lifecycles plus a
// handful of framework phases. It is built once and never mutated; tables
// with extra framework phases are separate values built with New.
package lifecycle

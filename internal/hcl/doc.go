// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses settings files, evaluates them against a fixed set
// of variables and translates the result into the format-agnostic model.
package hcl

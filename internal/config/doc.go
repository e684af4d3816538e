// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from a
// concrete format.
//
// The `config.Model` carries run settings plus the user-defined framework
// rules and lifecycle phases. It is translated into `framework.Rule` and
// `lifecycle.Extension` values before use; the concrete HCL implementation
// lives in a separate package.
package config

// Package config defines the format-agnostic configuration model for a
// hardware design and its circuit library, along with the Loader interface
// for reading that model from a concrete format.
//
// The config.Model is the single source of truth for the builder package.
// Concrete loaders, such as for HCL or YAML, live in separate packages.
package config

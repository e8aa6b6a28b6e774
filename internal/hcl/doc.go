// Package hcl is the HCL-specific implementation of the config.Loader
// interface. It discovers .hcl files under the configured paths, decodes
// `cell` blocks (circuit-library manifests) and `module` blocks (design
// hierarchy), and translates them into the format-agnostic config model.
//
// Port width and bit-range attributes are HCL expressions, so literals and
// constant arithmetic (`width = 2 * 8`) both work.
package hcl

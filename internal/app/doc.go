// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle — load the design
// model, build the module registry, check the hierarchy, report — decoupled
// from any specific entrypoint like a CLI.
package app

// Package builder turns a format-agnostic config model into a populated
// module registry and circuit library.
//
// The build runs in three phases: every design module is registered first
// (so forward references between modules resolve regardless of file order),
// then ports are attached in declaration order, then instances are linked
// as parent/child containment edges. A library cell referenced by an
// instance is registered as a module on first use, with its ports.
//
// Duplicate module names and unresolvable instance references are
// load-time errors returned to the caller, not panics: they come from user
// configuration, not from caller bugs.
package builder

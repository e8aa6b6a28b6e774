// Package modreg implements the in-memory module registry at the heart of
// the netlist front-end: identity management for hierarchical hardware
// modules, typed port classification with fast per-type retrieval, and
// deduplicated parent/child containment edges.
//
// # Storage Model
//
// All authoritative data lives in dense, handle-indexed parallel slices
// (an arena). A ModuleID is an index into those slices; a PortID is an
// index into the owning module's port slices. Handles are assigned in
// allocation order starting at zero and are never reused.
//
// Two structures are derived caches over the authoritative slices:
//   - the name→id map used by FindModule
//   - the per-(module, port type) lookup buckets
//
// Both can be invalidated at any time and are rebuilt lazily; clearing
// them never affects the authoritative per-module sequences.
//
// # Error Model
//
// Registering a duplicate module name is an expected, recoverable
// condition signaled by InvalidModuleID with no state mutation. Passing
// an invalid handle to an accessor or mutator is a caller bug and panics.
//
// # Thread-Safety
//
// A single RWMutex guards the registry, so one writer at a time is safe.
// Mutators append to several parallel slices, which is why the exclusive
// lock covers the whole operation.
package modreg

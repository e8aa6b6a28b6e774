package modreg

import "fmt"

// ValidModuleID reports whether the handle was produced by this registry
// and is still within the current allocation range. The slot-identity check
// guards against handles carried over from a different registry instance.
func (r *Registry) ValidModuleID(module ModuleID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validModuleLocked(module)
}

// ValidPortID reports whether the port handle is valid within the given
// module's port-id space. Returns false if the module handle itself is
// invalid.
func (r *Registry) ValidPortID(module ModuleID, p PortID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.validModuleLocked(module) {
		return false
	}
	return int(p) >= 0 && int(p) < len(r.portIDs[module]) && r.portIDs[module][p] == p
}

// InvalidateNameLookup clears the derived name→id map. Subsequent name
// lookups rebuild it from the authoritative name slice.
func (r *Registry) InvalidateNameLookup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nameToID = nil
}

// InvalidatePortLookup clears the derived per-type port buckets. Subsequent
// bucket reads rebuild them from the authoritative port sequences.
func (r *Registry) InvalidatePortLookup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.portLookup = nil
}

func (r *Registry) validModuleLocked(module ModuleID) bool {
	return int(module) >= 0 && int(module) < len(r.ids) && r.ids[module] == module
}

// mustValidModuleLocked enforces the handle-validity contract. An invalid
// handle here is a bug in the caller, not an environmental condition.
func (r *Registry) mustValidModuleLocked(module ModuleID) {
	if !r.validModuleLocked(module) {
		panic(fmt.Sprintf("modreg: invalid module id %d", int(module)))
	}
}

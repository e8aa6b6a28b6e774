package modreg

import (
	"fmt"
	"sync"

	"github.com/vk/netgridgo/internal/port"
)

// ModuleID is a stable, dense handle for a registered module.
type ModuleID int

// PortID is a stable, dense handle for a port, unique only within the
// namespace of the module that owns it.
type PortID int

// Invalid sentinel handles. AddModule returns InvalidModuleID when the
// requested name is already taken.
const (
	InvalidModuleID ModuleID = -1
	InvalidPortID   PortID   = -1
)

// IsValid reports whether the handle is not the invalid sentinel. It says
// nothing about whether the handle belongs to a given registry; use
// Registry.ValidModuleID for that.
func (id ModuleID) IsValid() bool { return id != InvalidModuleID }

// IsValid reports whether the handle is not the invalid sentinel.
func (id PortID) IsValid() bool { return id != InvalidPortID }

// Registry owns the hierarchical module arena. All authoritative state is
// kept in handle-indexed parallel slices; nameToID and portLookup are
// derived caches that can be invalidated and rebuilt lazily.
type Registry struct {
	mu sync.RWMutex

	ids      []ModuleID
	names    []string
	parents  [][]ModuleID
	children [][]ModuleID

	portIDs   [][]PortID
	ports     [][]port.BasicPort
	portTypes [][]PortType

	nameToID   map[string]ModuleID // derived; nil after invalidation
	portLookup [][][]PortID        // derived; [module][port type][]; nil after invalidation
}

// New creates a new, empty module registry.
func New() *Registry {
	return &Registry{
		nameToID:   make(map[string]ModuleID),
		portLookup: [][][]PortID{},
	}
}

// AddModule registers a new module under a unique name and returns its
// handle. If the name is already registered, it returns InvalidModuleID and
// mutates nothing; the caller can recover the existing handle via FindModule.
func (r *Registry) AddModule(name string) ModuleID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lookupNameLocked(name); exists {
		return InvalidModuleID
	}

	id := ModuleID(len(r.ids))
	r.ids = append(r.ids, id)
	r.names = append(r.names, name)
	r.parents = append(r.parents, nil)
	r.children = append(r.children, nil)

	r.portIDs = append(r.portIDs, nil)
	r.ports = append(r.ports, nil)
	r.portTypes = append(r.portTypes, nil)

	if r.nameToID != nil {
		r.nameToID[name] = id
	}
	if r.portLookup != nil {
		r.portLookup = append(r.portLookup, make([][]PortID, NumPortTypes))
	}

	return id
}

// AddPort appends a typed port to a module and returns the new handle from
// the module's own dense port-id space. Duplicate descriptors are permitted;
// uniqueness is only enforced for module names and containment edges.
func (r *Registry) AddPort(module ModuleID, p port.BasicPort, portType PortType) PortID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustValidModuleLocked(module)
	if !portType.Valid() {
		panic(fmt.Sprintf("modreg: invalid port type %d", int(portType)))
	}

	id := PortID(len(r.portIDs[module]))
	r.portIDs[module] = append(r.portIDs[module], id)
	r.ports[module] = append(r.ports[module], p)
	r.portTypes[module] = append(r.portTypes[module], portType)

	if r.portLookup != nil {
		r.portLookup[module][portType] = append(r.portLookup[module][portType], id)
	}

	return id
}

// AddChild records a containment edge between two modules. The edge is
// stored in both directions and deduplicated on both sides; each membership
// test scans the same list it would append to. Calling it again with the
// same pair is a no-op. Cycles are not detected here; structural sanity is
// the caller's responsibility (see the hierarchy package).
func (r *Registry) AddChild(parent, child ModuleID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustValidModuleLocked(parent)
	r.mustValidModuleLocked(child)

	if !containsModule(r.parents[child], parent) {
		r.parents[child] = append(r.parents[child], parent)
	}
	if !containsModule(r.children[parent], child) {
		r.children[parent] = append(r.children[parent], child)
	}
}

// ModuleName returns the unique name of a module. Panics on an invalid
// handle.
func (r *Registry) ModuleName(module ModuleID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustValidModuleLocked(module)
	return r.names[module]
}

// NumModules returns the number of registered modules.
func (r *Registry) NumModules() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}

// Modules returns the handles of all registered modules in allocation order.
func (r *Registry) Modules() []ModuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ModuleID, len(r.ids))
	copy(out, r.ids)
	return out
}

// FindModule returns the handle registered under name, or InvalidModuleID
// if no such module exists. The name map is a derived cache; if it was
// invalidated, this rebuilds it from the authoritative name slice.
func (r *Registry) FindModule(name string) ModuleID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.lookupNameLocked(name); ok {
		return id
	}
	return InvalidModuleID
}

// Ports returns the module's port descriptors in declaration order.
// Panics on an invalid handle.
func (r *Registry) Ports(module ModuleID) []port.BasicPort {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustValidModuleLocked(module)
	out := make([]port.BasicPort, len(r.ports[module]))
	copy(out, r.ports[module])
	return out
}

// PortsByType returns the declaration-order subsequence of a module's port
// descriptors matching the given category. The result is materialized by
// filtering the authoritative sequence, so it stays stable if the registry
// mutates afterwards. Panics on an invalid handle.
func (r *Registry) PortsByType(module ModuleID, portType PortType) []port.BasicPort {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustValidModuleLocked(module)

	ports := []port.BasicPort{}
	for _, id := range r.portIDs[module] {
		if r.portTypes[module][id] != portType {
			continue
		}
		ports = append(ports, r.ports[module][id])
	}
	return ports
}

// PortIDsByType returns the module's port handles for a category, in
// declaration order, served from the derived lookup buckets. The buckets
// are rebuilt from the authoritative sequences if they were invalidated.
// Panics on an invalid handle.
func (r *Registry) PortIDsByType(module ModuleID, portType PortType) []PortID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustValidModuleLocked(module)
	if !portType.Valid() {
		panic(fmt.Sprintf("modreg: invalid port type %d", int(portType)))
	}

	if r.portLookup == nil {
		r.rebuildPortLookupLocked()
	}
	bucket := r.portLookup[module][portType]
	out := make([]PortID, len(bucket))
	copy(out, bucket)
	return out
}

// Parents returns the modules that directly contain this module.
// Panics on an invalid handle.
func (r *Registry) Parents(module ModuleID) []ModuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustValidModuleLocked(module)
	out := make([]ModuleID, len(r.parents[module]))
	copy(out, r.parents[module])
	return out
}

// Children returns the modules this module directly contains.
// Panics on an invalid handle.
func (r *Registry) Children(module ModuleID) []ModuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustValidModuleLocked(module)
	out := make([]ModuleID, len(r.children[module]))
	copy(out, r.children[module])
	return out
}

// lookupNameLocked resolves a name through the derived map, rebuilding the
// map first if it was invalidated. Caller must hold the write lock.
func (r *Registry) lookupNameLocked(name string) (ModuleID, bool) {
	if r.nameToID == nil {
		r.nameToID = make(map[string]ModuleID, len(r.ids))
		for _, id := range r.ids {
			r.nameToID[r.names[id]] = id
		}
	}
	id, ok := r.nameToID[name]
	return id, ok
}

// rebuildPortLookupLocked reconstructs the per-type buckets from the
// authoritative port sequences. Caller must hold the write lock.
func (r *Registry) rebuildPortLookupLocked() {
	r.portLookup = make([][][]PortID, len(r.ids))
	for _, module := range r.ids {
		r.portLookup[module] = make([][]PortID, NumPortTypes)
		for _, id := range r.portIDs[module] {
			t := r.portTypes[module][id]
			r.portLookup[module][t] = append(r.portLookup[module][t], id)
		}
	}
}

func containsModule(list []ModuleID, id ModuleID) bool {
	for _, m := range list {
		if m == id {
			return true
		}
	}
	return false
}

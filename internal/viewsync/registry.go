package viewsync

// Registry maps record ids to their currently mounted representations. Each
// synchronizer owns exactly one registry, so independent lists never share
// handle state. An entry exists only while the record is mounted; after any
// completed synchronizer operation the key set equals the collection's id set.
type Registry struct {
	handles map[string]Representation
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]Representation)}
}

// Put records the handle mounted for id, replacing any previous entry.
func (r *Registry) Put(id string, h Representation) {
	r.handles[id] = h
}

// Get returns the mounted handle for id, if any.
func (r *Registry) Get(id string) (Representation, bool) {
	h, ok := r.handles[id]
	return h, ok
}

// Delete removes the entry for id. Absent ids are a no-op.
func (r *Registry) Delete(id string) {
	delete(r.handles, id)
}

// Clear drops every entry.
func (r *Registry) Clear() {
	clear(r.handles)
}

// Len returns the number of mounted entries.
func (r *Registry) Len() int {
	return len(r.handles)
}

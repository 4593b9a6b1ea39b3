// Package viewsync keeps a mounted, rendered list continuously consistent
// with a canonical sorted collection while doing the minimum re-mount work per
// mutation. It is the one piece of machinery shared by every live list in
// barkeep (areas, locations, counters): the synchronizer owns the collection
// and the id->representation registry, and drives an external host surface
// through the small contracts below.
package viewsync

import "barkeep/internal/inventory"

// Representation is the live, mounted form of exactly one record. The
// synchronizer never looks inside it; it only holds the handle so it can
// order mount calls relative to other handles and ask for an in-place redraw.
// A representation is created once, mounted, and discarded on unmount — never
// reused for a different record id.
type Representation interface {
	// Refresh redraws the representation from the record's current fields.
	// Called on update-in-place; the handle stays mounted.
	Refresh(rec inventory.Record)
}

// Renderer turns a record into a fresh representation. Errors are not handled
// by the synchronizer; they propagate to whoever invoked the mutation.
type Renderer func(rec inventory.Record) (Representation, error)

// HostSurface is the sink that physically places and removes representations.
// The synchronizer calls CreateContainer exactly when it leaves the empty
// state and DestroyContainer when it returns to it; the placeholder is the
// host's own empty-state affordance. Mount and unmount failures propagate to
// the mutation caller without rollback.
type HostSurface interface {
	CreateContainer() error
	DestroyContainer() error
	MountAppend(h Representation) error
	MountBefore(h, before Representation) error
	Unmount(h Representation) error
	ShowPlaceholder()
	HidePlaceholder()
}

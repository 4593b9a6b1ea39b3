package viewsync

import "barkeep/internal/inventory"

// viewState is the synchronizer's two-state machine. In stateEmpty no host
// container exists and the placeholder is showing; in statePopulated the
// container exists and every collection record has a mounted representation
// at its sorted position.
type viewState int

const (
	stateEmpty viewState = iota
	statePopulated
)

// Synchronizer orchestrates mutations against one canonical collection and
// its representation registry, choosing between a full rebuild and a minimal
// positional patch, and issuing placement instructions to the host surface.
//
// The synchronizer is strictly single-writer: it spawns no goroutines, holds
// no locks, and assumes each operation runs to completion before the next
// begins. Renderer and host failures propagate to the caller with no rollback;
// internal bookkeeping is left consistent with the last completed step, and
// SetRecords is the caller's recovery hammer.
type Synchronizer struct {
	render Renderer
	host   HostSurface
	coll   inventory.Collection
	reg    *Registry
	state  viewState
}

// New returns a synchronizer in the empty state, owning a fresh collection
// and registry. Multiple synchronizers over the same host type are fully
// independent lists.
func New(render Renderer, host HostSurface) *Synchronizer {
	return &Synchronizer{
		render: render,
		host:   host,
		reg:    NewRegistry(),
	}
}

// SetRecords replaces the whole list: always a full rebuild, never a patch.
// A nil slice is an empty list. Calling it twice with the same input lands in
// the same mounted order regardless of what was mounted before.
func (s *Synchronizer) SetRecords(records []inventory.Record) error {
	if err := s.teardown(); err != nil {
		return err
	}
	s.coll.ReplaceAll(records)
	return s.buildUp()
}

// AddRecord inserts one record at its sorted position. From the empty state
// this is a full rebuild, which also clears the placeholder; otherwise only
// the new record is rendered and mounted, before its immediate successor when
// one is mounted, appended otherwise. A record whose id already exists is
// treated as an update (the registry never holds two handles for one id).
func (s *Synchronizer) AddRecord(rec inventory.Record) error {
	if s.coll.IndexByID(rec.ID) >= 0 {
		return s.UpdateRecord(rec)
	}
	wasEmpty := s.state == stateEmpty
	i := s.coll.Insert(rec)
	if wasEmpty {
		return s.rebuild()
	}
	h, err := s.render(rec)
	if err != nil {
		return err
	}
	if err := s.mountPositional(h, i); err != nil {
		return err
	}
	s.reg.Put(rec.ID, h)
	return nil
}

// UpdateRecord overwrites the stored record's fields and refreshes its
// representation in place. The record is re-seated only when its own rank or
// label changed; payload-only updates never move anything. An unknown id is
// an upsert and delegates to AddRecord.
func (s *Synchronizer) UpdateRecord(rec inventory.Record) error {
	i := s.coll.IndexByID(rec.ID)
	if i < 0 {
		return s.AddRecord(rec)
	}

	prev := s.coll.Get(i)
	s.coll.Set(i, rec)
	h, mounted := s.reg.Get(rec.ID)
	if mounted {
		h.Refresh(rec)
	}

	if inventory.RankEqual(prev.Rank, rec.Rank) && prev.Label == rec.Label {
		return nil
	}

	s.coll.Resort()
	if !mounted {
		return nil
	}
	if err := s.host.Unmount(h); err != nil {
		return err
	}
	s.reg.Delete(rec.ID)
	if err := s.mountPositional(h, s.coll.IndexByID(rec.ID)); err != nil {
		return err
	}
	s.reg.Put(rec.ID, h)
	return nil
}

// RemoveByID deletes one record and unmounts its representation. Absent ids
// are a no-op. Removing the last record tears the container down and shows
// the placeholder; removing any other record touches nothing else, since the
// survivors are already correctly positioned.
func (s *Synchronizer) RemoveByID(id string) error {
	s.coll.RemoveByID(id)
	if h, ok := s.reg.Get(id); ok {
		if err := s.host.Unmount(h); err != nil {
			return err
		}
		s.reg.Delete(id)
	}
	if s.coll.Len() == 0 && s.state == statePopulated {
		if err := s.host.DestroyContainer(); err != nil {
			return err
		}
		s.reg.Clear()
		s.host.ShowPlaceholder()
		s.state = stateEmpty
	}
	return nil
}

// Records returns the collection's current contents in sort order.
func (s *Synchronizer) Records() []inventory.Record {
	return s.coll.All()
}

// Len returns the number of records in the collection.
func (s *Synchronizer) Len() int {
	return s.coll.Len()
}

// Mounted returns the representation currently mounted for id, if any.
func (s *Synchronizer) Mounted(id string) (Representation, bool) {
	return s.reg.Get(id)
}

// rebuild re-derives the whole view from the collection as it stands.
func (s *Synchronizer) rebuild() error {
	if err := s.teardown(); err != nil {
		return err
	}
	return s.buildUp()
}

// teardown unmounts every registered representation and destroys the
// container, returning the host to its bare state. Unmount order is
// unspecified; the container goes away regardless.
func (s *Synchronizer) teardown() error {
	for id, h := range s.reg.handles {
		if err := s.host.Unmount(h); err != nil {
			return err
		}
		delete(s.reg.handles, id)
	}
	if s.state == statePopulated {
		if err := s.host.DestroyContainer(); err != nil {
			return err
		}
		s.state = stateEmpty
	}
	return nil
}

// buildUp renders the collection into a fresh container, or shows the
// placeholder when there is nothing to show. Append-only mounting is
// sufficient because the collection is already sorted.
func (s *Synchronizer) buildUp() error {
	if s.coll.Len() == 0 {
		s.host.ShowPlaceholder()
		return nil
	}
	s.host.HidePlaceholder()
	if err := s.host.CreateContainer(); err != nil {
		return err
	}
	s.state = statePopulated
	for _, rec := range s.coll.All() {
		h, err := s.render(rec)
		if err != nil {
			return err
		}
		if err := s.host.MountAppend(h); err != nil {
			return err
		}
		s.reg.Put(rec.ID, h)
	}
	return nil
}

// mountPositional places h at collection index i: before the successor's
// handle when the successor is mounted, appended at the end otherwise.
func (s *Synchronizer) mountPositional(h Representation, i int) error {
	if i+1 < s.coll.Len() {
		if succ, ok := s.reg.Get(s.coll.Get(i + 1).ID); ok {
			return s.host.MountBefore(h, succ)
		}
	}
	return s.host.MountAppend(h)
}

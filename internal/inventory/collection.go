package inventory

import (
	"slices"
	"sort"
)

// Collection is the authoritative in-memory sequence of records for one list,
// kept sorted under Compare at every stable point. Insertion order carries no
// meaning; only sort order does. The collection does not deduplicate ids —
// uniqueness is the caller's contract (the view synchronizer enforces it by
// upserting).
type Collection struct {
	records []Record
}

// ReplaceAll discards the current sequence and stores a freshly sorted copy of
// records. A nil slice is an empty collection, never an error. The sort is
// stable, so equal-key records keep their input order.
func (c *Collection) ReplaceAll(records []Record) {
	c.records = slices.Clone(records)
	sort.SliceStable(c.records, func(i, j int) bool {
		return Compare(c.records[i], c.records[j]) < 0
	})
}

// Insert splices rec into its sorted position. Equal-key records are placed
// after existing equals, matching the stable-sort order ReplaceAll produces.
// Returns the index rec now occupies.
func (c *Collection) Insert(rec Record) int {
	i := sort.Search(len(c.records), func(i int) bool {
		return Compare(rec, c.records[i]) < 0
	})
	c.records = slices.Insert(c.records, i, rec)
	return i
}

// RemoveByID deletes the record with the given id. Absent ids are a no-op.
func (c *Collection) RemoveByID(id string) {
	if i := c.IndexByID(id); i >= 0 {
		c.records = slices.Delete(c.records, i, i+1)
	}
}

// IndexByID returns the position of the record with the given id, or -1.
func (c *Collection) IndexByID(id string) int {
	return slices.IndexFunc(c.records, func(r Record) bool { return r.ID == id })
}

// Get returns the record at index i.
func (c *Collection) Get(i int) Record {
	return c.records[i]
}

// Set overwrites the record at index i in place, without resorting.
func (c *Collection) Set(i int, rec Record) {
	c.records[i] = rec
}

// Resort restores sort order after an in-place field change. Stable, so
// untouched equal-key neighbors do not swap.
func (c *Collection) Resort() {
	sort.SliceStable(c.records, func(i, j int) bool {
		return Compare(c.records[i], c.records[j]) < 0
	})
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// All returns the records in sort order. The slice is a copy; mutating it
// does not affect the collection.
func (c *Collection) All() []Record {
	return slices.Clone(c.records)
}

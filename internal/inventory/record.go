// Package inventory defines the record model and the canonical sorted
// collection that every live list in barkeep is driven from. Areas, locations
// and counters all flow through the same Record shape; anything kind-specific
// rides along in the opaque payload.
package inventory

// Record is one rankable unit of inventory data. ID is the join key between
// the canonical collection and whatever representation is mounted for it, and
// must not change for the lifetime of the record. Rank is optional: a nil Rank
// sorts after every ranked record. Payload is carried through untouched.
type Record struct {
	ID      string
	Rank    *float64
	Label   string
	Payload any
}

// RankOf returns a pointer to v, for building records with a defined rank.
func RankOf(v float64) *float64 {
	return &v
}

// RankEqual reports whether two optional ranks are the same, treating two
// absent ranks as equal.
func RankEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

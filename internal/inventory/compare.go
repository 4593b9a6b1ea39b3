package inventory

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// labelCollator orders labels the way a human reads a list: locale-aware and
// case-folded, so "ales" and "Amari" interleave instead of splitting into
// upper/lower blocks. Collators are not safe for concurrent use, but the
// synchronizer model is single-writer so a package-level instance is fine.
var labelCollator = collate.New(language.Und, collate.IgnoreCase)

// Compare is the total order for records: rank ascending, with unranked
// records after every ranked one, then label collation as the tiebreaker.
// Returns -1, 0 or 1. Records with equal rank and equal label compare as 0;
// callers that need a deterministic full sequence rely on stable sorting.
func Compare(a, b Record) int {
	switch {
	case a.Rank != nil && b.Rank != nil:
		if *a.Rank < *b.Rank {
			return -1
		}
		if *a.Rank > *b.Rank {
			return 1
		}
	case a.Rank != nil:
		return -1
	case b.Rank != nil:
		return 1
	}
	return labelCollator.CompareString(a.Label, b.Label)
}

package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_RankOrdering(t *testing.T) {
	a := Record{ID: "a", Rank: RankOf(1), Label: "Alpha"}
	b := Record{ID: "b", Rank: RankOf(2), Label: "Beta"}

	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
}

func TestCompare_AbsentRankSortsLast(t *testing.T) {
	ranked := Record{ID: "r", Rank: RankOf(9999), Label: "Zzz"}
	unranked := Record{ID: "u", Label: "Aaa"}

	assert.Equal(t, -1, Compare(ranked, unranked), "any defined rank beats an absent one")
	assert.Equal(t, 1, Compare(unranked, ranked))
}

func TestCompare_LabelTiebreaker(t *testing.T) {
	t.Run("equal ranks fall through to label", func(t *testing.T) {
		a := Record{ID: "a", Rank: RankOf(5), Label: "Gin"}
		b := Record{ID: "b", Rank: RankOf(5), Label: "Rum"}
		assert.Equal(t, -1, Compare(a, b))
	})

	t.Run("both unranked compare by label", func(t *testing.T) {
		a := Record{ID: "a", Label: "Bitters"}
		b := Record{ID: "b", Label: "Vermouth"}
		assert.Equal(t, -1, Compare(a, b))
	})

	t.Run("case is folded", func(t *testing.T) {
		a := Record{ID: "a", Label: "amaro"}
		b := Record{ID: "b", Label: "Brandy"}
		assert.Equal(t, -1, Compare(a, b), "lowercase must not sort after all uppercase")
	})
}

func TestCompare_EqualKeys(t *testing.T) {
	a := Record{ID: "a", Rank: RankOf(1), Label: "Well Gin"}
	b := Record{ID: "b", Rank: RankOf(1), Label: "Well Gin"}

	assert.Equal(t, 0, Compare(a, b))
	assert.Equal(t, 0, Compare(b, a))
}

func TestRankEqual(t *testing.T) {
	assert.True(t, RankEqual(nil, nil))
	assert.True(t, RankEqual(RankOf(2), RankOf(2)))
	assert.False(t, RankEqual(nil, RankOf(0)))
	assert.False(t, RankEqual(RankOf(1), RankOf(2)))
}

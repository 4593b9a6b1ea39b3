package inventory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ids(c *Collection) []string {
	out := make([]string, 0, c.Len())
	for _, r := range c.All() {
		out = append(out, r.ID)
	}
	return out
}

func TestCollection_ReplaceAllSorts(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{
		{ID: "a", Rank: RankOf(2), Label: "Alpha"},
		{ID: "b", Rank: RankOf(1), Label: "Beta"},
		{ID: "c", Label: "Gamma"},
	})

	if diff := cmp.Diff([]string{"b", "a", "c"}, ids(&c)); diff != "" {
		t.Errorf("sorted order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_ReplaceAllNil(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{{ID: "x", Label: "X"}})
	c.ReplaceAll(nil)

	assert.Equal(t, 0, c.Len())
}

func TestCollection_ReplaceAllDoesNotAliasInput(t *testing.T) {
	in := []Record{
		{ID: "b", Label: "B"},
		{ID: "a", Label: "A"},
	}
	var c Collection
	c.ReplaceAll(in)

	assert.Equal(t, "b", in[0].ID, "caller's slice must not be reordered")
	assert.Equal(t, []string{"a", "b"}, ids(&c))
}

func TestCollection_InsertFindsSortedPosition(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{
		{ID: "a", Rank: RankOf(2), Label: "Alpha"},
		{ID: "b", Rank: RankOf(1), Label: "Beta"},
	})

	i := c.Insert(Record{ID: "z", Rank: RankOf(0), Label: "Zero"})
	assert.Equal(t, 0, i)

	i = c.Insert(Record{ID: "m", Label: "Mid"})
	assert.Equal(t, 3, i, "unranked goes after every ranked record")

	assert.Equal(t, []string{"z", "b", "a", "m"}, ids(&c))
}

func TestCollection_InsertEqualKeysAfterExisting(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{{ID: "first", Rank: RankOf(1), Label: "Gin"}})

	i := c.Insert(Record{ID: "second", Rank: RankOf(1), Label: "Gin"})

	assert.Equal(t, 1, i, "equal keys splice after existing equals")
	assert.Equal(t, []string{"first", "second"}, ids(&c))
}

func TestCollection_RemoveByID(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{
		{ID: "a", Label: "A"},
		{ID: "b", Label: "B"},
	})

	c.RemoveByID("a")
	assert.Equal(t, []string{"b"}, ids(&c))

	// Absent id is a no-op, not an error.
	c.RemoveByID("ghost")
	assert.Equal(t, []string{"b"}, ids(&c))
}

func TestCollection_IndexByID(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{
		{ID: "a", Rank: RankOf(1), Label: "A"},
		{ID: "b", Rank: RankOf(2), Label: "B"},
	})

	assert.Equal(t, 0, c.IndexByID("a"))
	assert.Equal(t, 1, c.IndexByID("b"))
	assert.Equal(t, -1, c.IndexByID("missing"))
}

func TestCollection_ResortIsStable(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{
		{ID: "x", Rank: RankOf(1), Label: "Same"},
		{ID: "y", Rank: RankOf(1), Label: "Same"},
		{ID: "z", Rank: RankOf(1), Label: "Same"},
	})

	before := ids(&c)
	c.Resort()
	c.Resort()

	if diff := cmp.Diff(before, ids(&c)); diff != "" {
		t.Errorf("equal-key records moved across resorts (-want +got):\n%s", diff)
	}
}

func TestCollection_SetThenResort(t *testing.T) {
	var c Collection
	c.ReplaceAll([]Record{
		{ID: "a", Rank: RankOf(1), Label: "A"},
		{ID: "b", Rank: RankOf(2), Label: "B"},
	})

	i := c.IndexByID("a")
	rec := c.Get(i)
	rec.Rank = RankOf(3)
	c.Set(i, rec)
	c.Resort()

	assert.Equal(t, []string{"b", "a"}, ids(&c))
}

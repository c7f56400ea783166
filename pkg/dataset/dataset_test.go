package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ID: "2", Subset: "train"},
		{ID: "1", Subset: "train"},
		{ID: "1"},
		{ID: "1", Subset: "train", Media: "img/1.png"},
	}
}

func TestFromItems(t *testing.T) {
	ds := FromItems(testItems(), WithFormat("jsonl"), WithOrigin("/data"))

	require.Equal(t, 3, ds.Len(), "duplicate id and subset must be merged")
	assert.Equal(t, []string{"default", "train"}, ds.Subsets())
	assert.Equal(t, "jsonl", ds.Format())
	assert.Equal(t, "/data", ds.Origin())

	items := ds.Items()
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "", items[0].Subset)
	assert.Equal(t, "1", items[1].ID)
	assert.Equal(t, "2", items[2].ID)

	item, ok := ds.Get("1", "train")
	require.True(t, ok)
	assert.Equal(t, "img/1.png", item.Media, "last item wins")

	_, ok = ds.Get("1", DefaultSubset)
	assert.True(t, ok)
	_, ok = ds.Get("1", "")
	assert.True(t, ok)
	_, ok = ds.Get("3", "train")
	assert.False(t, ok)

	items[0].ID = "changed"
	_, ok = ds.Get("1", "")
	assert.True(t, ok, "Items must yield a copy")
}

func TestConcat(t *testing.T) {
	a := FromItems([]Item{{ID: "a"}})
	b := FromItems([]Item{{ID: "b", Subset: "val"}})

	ds := Concat("snapshot", a, b, Empty("nothing"))
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "snapshot", ds.Origin())
	assert.Equal(t, []string{"default", "val"}, ds.Subsets())
}

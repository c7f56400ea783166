package format

import (
	"errors"
	"testing"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []dataset.Item {
	return []dataset.Item{
		{ID: "1", Subset: "train", Media: "images/1.jpg", Annotations: []dataset.Annotation{{Type: "label", Label: "cat"}}},
		{ID: "2", Subset: "train"},
		{ID: "3", Subset: "val"},
		{ID: "4"},
	}
}

func TestDatarevFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	reg := NewDefault(WithFs(fs))

	require.NoError(t, reg.Save("/out/ds", DefaultFormat, dataset.FromItems(sampleItems())))

	detected, err := reg.Detect("/out/ds", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFormat, detected)

	ds, err := reg.Load("/out/ds", detected)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"default", "train", "val"}, ds.Subsets())

	item, ok := ds.Get("1", "train")
	require.True(t, ok)
	require.Len(t, item.Annotations, 1)
	assert.Equal(t, "cat", item.Annotations[0].Label)
}

func TestDatarevDetectsUnsupportedVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ds/dataset.yaml", []byte("version: 7\nitems: []\n"), 0644))

	ok, err := detectDatarev(fs, "/ds")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJSONLFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	reg := NewDefault(WithFs(fs))

	require.NoError(t, reg.Save("/out/ds", "jsonl", dataset.FromItems(sampleItems())))
	for _, file := range []string{"/out/ds/default.jsonl", "/out/ds/train.jsonl", "/out/ds/val.jsonl"} {
		exists, err := afero.Exists(fs, file)
		require.NoError(t, err)
		assert.Truef(t, exists, "expected %s", file)
	}

	detected, err := reg.Detect("/out/ds", "")
	require.NoError(t, err)
	assert.Equal(t, "jsonl", detected)

	ds, err := reg.Load("/out/ds", detected)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
	_, ok := ds.Get("4", "")
	assert.True(t, ok)

	// a single file is a dataset too
	ds, err = reg.Load("/out/ds/val.jsonl", "jsonl")
	require.NoError(t, err)
	assert.Equal(t, []string{"val"}, ds.Subsets())
}

func TestJSONLRejectsItemsWithoutID(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ds/a.jsonl", []byte(`{"media":"x"}`+"\n"), 0644))

	ok, err := detectJSONL(fs, "/ds")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = loadJSONL(fs, "/ds")
	assert.Error(t, err)
}

func TestCSVFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ds/train.csv", []byte("id,label,weather\n1,cat,sunny\n2,,rain\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/ds/other.csv", []byte("id,subset\n3,val\n"), 0644))
	reg := NewDefault(WithFs(fs))

	detected, err := reg.Detect("/ds", "")
	require.NoError(t, err)
	assert.Equal(t, "csv", detected)

	ds, err := reg.Load("/ds", detected)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"train", "val"}, ds.Subsets())

	item, ok := ds.Get("1", "train")
	require.True(t, ok)
	assert.Equal(t, "sunny", item.Attributes["weather"])
	require.Len(t, item.Annotations, 1)
	assert.Equal(t, "cat", item.Annotations[0].Label)

	item, ok = ds.Get("2", "train")
	require.True(t, ok)
	assert.Empty(t, item.Annotations)
}

func TestCSVWithoutIDColumn(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ds/a.csv", []byte("name,label\nx,y\n"), 0644))

	ok, err := detectCSV(fs, "/ds")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAmbiguousBuiltins(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mixed/a.csv", []byte("id\n1\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/mixed/b.jsonl", []byte(`{"id":"2"}`+"\n"), 0644))
	reg := NewDefault(WithFs(fs))

	_, err := reg.Detect("/mixed", "")
	var multi *MultipleFormatsMatchError
	require.True(t, errors.As(err, &multi))
	assert.Equal(t, []string{"csv", "jsonl"}, multi.Formats)

	ds, err := reg.Load("/mixed", "jsonl")
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

package localfs

import (
	"testing"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transformFixture() dataset.Dataset {
	return dataset.FromItems([]dataset.Item{
		{ID: "a1", Subset: "train", Media: "images/a1.png"},
		{ID: "a2", Subset: "train", Media: "images/nested/a2.png"},
		{ID: "b1", Subset: "test", Media: "images/b1.jpg"},
	}, dataset.WithFormat("jsonl"))
}

func TestTransforms(t *testing.T) {
	for _, toPin := range []struct {
		name      string
		transform string
		params    map[string]string
		ids       []string
		wantError bool
	}{
		{name: "subset", transform: TransformSubset, params: map[string]string{"subsets": "train"}, ids: []string{"a1", "a2"}},
		{name: "several subsets", transform: TransformSubset, params: map[string]string{"subsets": "train, test"}, ids: []string{"b1", "a1", "a2"}},
		{name: "subset without param", transform: TransformSubset, wantError: true},
		{name: "head", transform: TransformHead, params: map[string]string{"count": "2"}, ids: []string{"b1", "a1"}},
		{name: "head beyond length", transform: TransformHead, params: map[string]string{"count": "10"}, ids: []string{"b1", "a1", "a2"}},
		{name: "head with invalid count", transform: TransformHead, params: map[string]string{"count": "-1"}, wantError: true},
		{name: "match id", transform: TransformMatch, params: map[string]string{"pattern": "a*"}, ids: []string{"a1", "a2"}},
		{name: "match media", transform: TransformMatch, params: map[string]string{"pattern": "images/**/*.png", "field": "media"}, ids: []string{"a1", "a2"}},
		{name: "match nothing", transform: TransformMatch, params: map[string]string{"pattern": "z*"}, ids: nil},
		{name: "match invalid pattern", transform: TransformMatch, params: map[string]string{"pattern": "[a"}, wantError: true},
		{name: "match invalid field", transform: TransformMatch, params: map[string]string{"pattern": "*", "field": "label"}, wantError: true},
		{name: "match without pattern", transform: TransformMatch, wantError: true},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			transform, ok := builtinTransforms()[testcase.transform]
			require.True(t, ok)

			ds, err := transform(transformFixture(), testcase.params)
			if testcase.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), testcase.transform)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "jsonl", ds.Format())
			var ids []string
			for _, item := range ds.Items() {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, testcase.ids, ids)
		})
	}
}

func TestRenameSubsetTransform(t *testing.T) {
	source := transformFixture()
	ds, err := renameSubsetTransform(source, map[string]string{"from": "train", "to": "fit"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fit", "test"}, ds.Subsets())
	assert.Equal(t, []string{"test", "train"}, source.Subsets(), "the input dataset must remain unchanged")

	_, err = renameSubsetTransform(source, map[string]string{"from": "train"})
	require.Error(t, err)
}

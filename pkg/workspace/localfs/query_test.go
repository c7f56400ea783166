package localfs

import (
	"context"
	"fmt"
	"testing"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/oneconcern/datarev/pkg/workspace"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func buildStage(t testing.TB, w *Workspace, rev workspace.Revision, source, stage string) (dataset.Dataset, error) {
	ctx := context.Background()
	src, err := w.Source(ctx, rev, source)
	require.NoError(t, err)
	st, err := w.Stage(ctx, src, stage)
	require.NoError(t, err)
	return w.Build(ctx, st)
}

func TestBuild(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	_, w := setupWorkspace(t)
	_, err := w.ImportSource(ctx, "images", testData, "")
	require.NoError(t, err)
	require.NoError(t, w.AddStage(ctx, "images", model.StageDescriptor{
		Name: "train", Transform: TransformSubset, Params: map[string]string{"subsets": "train"},
	}))
	require.NoError(t, w.AddStage(ctx, "images", model.StageDescriptor{
		Name: "renamed", Transform: TransformRenameSubset, Params: map[string]string{"from": "train", "to": "fit"},
	}))
	require.NoError(t, w.AddStage(ctx, "images", model.StageDescriptor{
		Name: "first", Transform: TransformHead, Params: map[string]string{"count": "1"},
	}))

	working, err := w.ResolveRevision(ctx, model.WorkingRevision)
	require.NoError(t, err)
	assert.True(t, working.IsWorking())

	for _, toPin := range []struct {
		stage   string
		len     int
		subsets []string
	}{
		{stage: model.RootStage, len: 3, subsets: []string{"test", "train"}},
		{stage: "train", len: 2, subsets: []string{"train"}},
		{stage: "renamed", len: 2, subsets: []string{"fit"}},
		{stage: "first", len: 1, subsets: []string{"fit"}},
	} {
		testcase := toPin
		t.Run(testcase.stage, func(t *testing.T) {
			ds, err := buildStage(t, w, working, "images", testcase.stage)
			require.NoError(t, err)
			assert.Equal(t, testcase.len, ds.Len())
			assert.Equal(t, testcase.subsets, ds.Subsets())
			assert.Equal(t, "jsonl", ds.Format())
			assert.Equal(t, fmt.Sprintf("%s@:images.%s", testRoot, testcase.stage), ds.Origin())
		})
	}

	snapshot, err := w.Snapshot(ctx, working)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Len(), "expected the snapshot to build the last stage of each source")
	assert.Equal(t, testRoot, snapshot.Origin())
}

func TestBuildCommittedRevision(t *testing.T) {
	ctx := context.Background()
	_, w := setupWorkspace(t)
	_, err := w.ImportSource(ctx, "images", testData, "")
	require.NoError(t, err)
	committed, err := w.Commit(ctx, "first", false)
	require.NoError(t, err)

	// the revision remains buildable once the working tree moved on
	require.NoError(t, w.RemoveSource(ctx, "images"))

	rev, err := w.ResolveRevision(ctx, committed.ID)
	require.NoError(t, err)
	ds, err := buildStage(t, w, rev, "images", model.RootStage)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	item, ok := ds.Get("b1", "test")
	require.True(t, ok)
	assert.Equal(t, "b1.png", item.Media)

	working, err := w.ResolveRevision(ctx, model.WorkingRevision)
	require.NoError(t, err)
	snapshot, err := w.Snapshot(ctx, working)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Len())
}

func TestQueryErrors(t *testing.T) {
	ctx := context.Background()
	_, w := setupWorkspace(t)
	_, err := w.ImportSource(ctx, "images", testData, "")
	require.NoError(t, err)
	working, err := w.ResolveRevision(ctx, model.WorkingRevision)
	require.NoError(t, err)

	_, err = w.Source(ctx, working, "videos")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrUnknownTarget))

	src, err := w.Source(ctx, working, "images")
	require.NoError(t, err)
	_, err = w.Stage(ctx, src, "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrUnknownTarget))

	// a stage whose transform fails at build time
	broken := src
	broken.Descriptor.Stages = append(broken.Descriptor.Stages,
		model.StageDescriptor{Name: "broken", Type: model.StageTypeTransform, Transform: TransformHead, Params: map[string]string{"count": "many"}})
	stage, err := w.Stage(ctx, broken, "broken")
	require.NoError(t, err)
	_, err = w.Build(ctx, stage)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrBuild))

	require.NoError(t, w.Close())
	_, err = w.Snapshot(ctx, working)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrClosed))
}

func TestCustomTransform(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	setupData(t, fs)
	reverse := func(ds dataset.Dataset, _ map[string]string) (dataset.Dataset, error) {
		items := ds.Items()
		for i := range items {
			items[i].Attributes = map[string]interface{}{"reversed": true}
		}
		return dataset.FromItems(items), nil
	}
	w, err := Init(ctx, testRoot, WithFs(fs), WithTransform("mark", reverse))
	require.NoError(t, err)
	_, err = w.ImportSource(ctx, "images", testData, "")
	require.NoError(t, err)
	require.NoError(t, w.AddStage(ctx, "images", model.StageDescriptor{Name: "marked", Transform: "mark"}))

	working, err := w.ResolveRevision(ctx, model.WorkingRevision)
	require.NoError(t, err)
	ds, err := buildStage(t, w, working, "images", "marked")
	require.NoError(t, err)
	for _, item := range ds.Items() {
		assert.Equal(t, true, item.Attributes["reversed"])
	}
}

func TestWorkspaceOnDisk(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewOsFs()
	dir := t.TempDir()
	data := dir + "/data"
	writeFile(t, fs, data+"/default.jsonl", `{"id":"x"}`+"\n"+`{"id":"y"}`+"\n")

	w, err := Init(ctx, dir+"/ws")
	require.NoError(t, err)
	_, err = w.ImportSource(ctx, "things", data, "")
	require.NoError(t, err)
	_, err = w.Commit(ctx, "on disk", false)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reopened, err := Open(ctx, dir+"/ws")
	require.NoError(t, err)
	defer func() {
		_ = reopened.Close()
	}()
	rev, err := reopened.ResolveRevision(ctx, model.HeadRevision)
	require.NoError(t, err)
	ds, err := reopened.Snapshot(ctx, rev)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"default"}, ds.Subsets())
}

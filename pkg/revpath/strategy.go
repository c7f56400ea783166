package revpath

import (
	"context"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/oneconcern/datarev/pkg/workspace"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// outcome of a strategy: either a result or an error
type outcome struct {
	result *Result
	err    error

	// quiet failures are not reported as problems
	quiet bool
}

func success(res *Result) outcome {
	return outcome{result: res}
}

func failure(err error) outcome {
	return outcome{err: err}
}

type attempt struct {
	strategy Strategy
	applies  func(*resolver) bool
	run      func(*resolver, context.Context, string) outcome
}

// chain lists the strategies in the order they are attempted
var chain = []attempt{
	{strategy: StrategyWorkspacePath, applies: always, run: (*resolver).tryWorkspacePath},
	{strategy: StrategyAmbientRevision, applies: hasAmbient, run: (*resolver).tryAmbientRevision},
	{strategy: StrategyBareDataset, applies: always, run: (*resolver).tryBareDataset},
}

func always(*resolver) bool {
	return true
}

func hasAmbient(r *resolver) bool {
	return r.ambient != nil
}

// tryWorkspacePath opens the workspace at "path" in "path[@rest]", then resolves rest in this workspace.
//
// When the revpath has no '@' and there is an ambient workspace, not finding a workspace at
// this path is expected and is not reported.
func (r *resolver) tryWorkspacePath(ctx context.Context, revpath string) outcome {
	form := parseWorkspacePath(revpath)
	if form.path == "" {
		return failure(status.ErrProjectNotFound.Wrapf("empty workspace path"))
	}

	ws, err := r.opener(ctx, form.path)
	if err != nil {
		return outcome{
			err:   err,
			quiet: !form.hasRest && r.ambient != nil && errors.Is(err, status.ErrProjectNotFound),
		}
	}

	ds, err := r.resolveInWorkspace(ctx, ws, form.rest)
	if err != nil {
		if cerr := ws.Close(); cerr != nil {
			r.l.Warn("could not close workspace", zap.String("workspace", ws.Root()), zap.Error(cerr))
		}
		return failure(err)
	}
	return success(&Result{Dataset: ds, Workspace: ws, Owned: true})
}

// tryAmbientRevision resolves "[revision:]target" in the ambient workspace
func (r *resolver) tryAmbientRevision(ctx context.Context, revpath string) outcome {
	ds, err := r.resolveInWorkspace(ctx, r.ambient, revpath)
	if err != nil {
		return failure(err)
	}
	return success(&Result{Dataset: ds})
}

// tryBareDataset loads "dataset-path[:format]" from the file system
func (r *resolver) tryBareDataset(_ context.Context, revpath string) outcome {
	form := parseDataset(revpath)
	if form.format != "" && !r.exists(form.path) && r.exists(revpath) {
		// the path itself contains a ':'
		form = datasetForm{path: revpath}
	}

	formatName, err := r.formats.Detect(form.path, form.format)
	if err != nil {
		return failure(err)
	}
	ds, err := r.formats.Load(form.path, formatName)
	if err != nil {
		return failure(err)
	}
	return success(&Result{Dataset: ds})
}

func (r *resolver) exists(path string) bool {
	ok, err := afero.Exists(r.formats.Fs(), path)
	return err == nil && ok
}

// resolveInWorkspace resolves "[revision:]target" in a workspace.
//
// Without a ':', the string is first looked up as a source. Failing that, it is looked up
// as a revision.
func (r *resolver) resolveInWorkspace(ctx context.Context, ws workspace.Workspace, s string) (dataset.Dataset, error) {
	form := parseRevision(s)
	ds, err := r.buildTarget(ctx, ws, form.revision, form.target)
	if err == nil || form.hasSeparator || form.target == "" || !errors.Is(err, status.ErrUnknownTarget) {
		return ds, err
	}

	ds, rerr := r.buildTarget(ctx, ws, form.target, "")
	if rerr != nil {
		r.l.Debug("not a revision either", zap.String("revision", form.target), zap.Error(rerr))
		return nil, err
	}
	return ds, nil
}

// buildTarget builds "source[.stage]" at some revision, or the whole revision when target is empty
func (r *resolver) buildTarget(ctx context.Context, ws workspace.Workspace, revision, target string) (dataset.Dataset, error) {
	rev, err := ws.ResolveRevision(ctx, revision)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return ws.Snapshot(ctx, rev)
	}

	sourceName, stageName := splitTarget(target)
	if stageName == "" {
		stageName = model.RootStage
	}
	src, err := ws.Source(ctx, rev, sourceName)
	if err != nil {
		return nil, err
	}
	stage, err := ws.Stage(ctx, src, stageName)
	if err != nil {
		return nil, err
	}
	return ws.Build(ctx, stage)
}

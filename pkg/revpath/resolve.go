package revpath

import (
	"context"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/oneconcern/datarev/pkg/format"
	"github.com/oneconcern/datarev/pkg/workspace"
	"github.com/oneconcern/datarev/pkg/workspace/localfs"
	"go.uber.org/zap"
)

// Result of the resolution of a revpath
type Result struct {
	Dataset dataset.Dataset

	// Workspace opened to resolve the revpath, if any. It is owned by the caller,
	// who must release it with Close.
	Workspace workspace.Workspace
	Owned     bool

	// Strategy is the interpretation of the revpath which succeeded
	Strategy Strategy
}

// Close releases the workspace opened to resolve the revpath, if any
func (r *Result) Close() error {
	if r == nil || !r.Owned || r.Workspace == nil {
		return nil
	}
	return r.Workspace.Close()
}

type resolver struct {
	ambient workspace.Workspace
	formats *format.Registry
	opener  workspace.Opener
	l       *zap.Logger
}

func newResolver(opts []Option) *resolver {
	r := &resolver{
		l: zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	if r.formats == nil {
		r.formats = format.NewDefault(format.WithLogger(r.l))
	}
	if r.opener == nil {
		r.opener = localfs.Opener(
			localfs.WithFs(r.formats.Fs()),
			localfs.WithFormats(r.formats),
			localfs.WithLogger(r.l),
		)
	}
	return r
}

// Resolve a revpath into a dataset.
//
// Each interpretation of the revpath is attempted in turn: a workspace path, a revision or
// a target in the ambient workspace (see WithWorkspace), then a bare dataset path. The
// first one to succeed wins.
//
// When a workspace is opened to resolve the revpath, it is returned in the Result and the
// caller becomes responsible for closing it. The ambient workspace is never returned.
//
// The only error returned is a *WrongRevpathError.
func Resolve(ctx context.Context, revpath string, opts ...Option) (*Result, error) {
	r := newResolver(opts)
	l := r.l.With(zap.String("revpath", revpath))
	problems := &aggregator{revpath: revpath}

	for _, a := range chain {
		if !a.applies(r) {
			l.Debug("strategy not applicable", zap.String("strategy", string(a.strategy)))
			continue
		}
		problems.attempted()

		if err := ctx.Err(); err != nil {
			problems.fail(a.strategy, err)
			continue
		}

		out := a.run(r, ctx, revpath)
		if out.err == nil {
			out.result.Strategy = a.strategy
			l.Debug("revpath resolved", zap.String("strategy", string(a.strategy)))
			return out.result, nil
		}

		l.Debug("strategy failed",
			zap.String("strategy", string(a.strategy)), zap.Bool("reported", !out.quiet), zap.Error(out.err))
		if out.quiet {
			problems.dismiss()
			continue
		}
		problems.fail(a.strategy, out.err)
	}

	return nil, problems.result()
}

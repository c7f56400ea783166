package localfs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/oneconcern/datarev/pkg/workspace"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"go.uber.org/zap"
)

// Source finds a source at some revision
func (w *Workspace) Source(ctx context.Context, rev workspace.Revision, name string) (workspace.Source, error) {
	if err := w.guard(); err != nil {
		return workspace.Source{}, err
	}
	descriptor, ok := rev.Sources.Find(name)
	if !ok {
		return workspace.Source{}, status.ErrUnknownTarget.Wrapf("no source %q at %s", name, rev)
	}
	return workspace.Source{Revision: rev, Descriptor: descriptor}, nil
}

// Stage finds a build stage of a source
func (w *Workspace) Stage(ctx context.Context, src workspace.Source, name string) (workspace.Stage, error) {
	if err := w.guard(); err != nil {
		return workspace.Stage{}, err
	}
	descriptor, ok := src.Descriptor.Stage(name)
	if !ok {
		return workspace.Stage{}, status.ErrUnknownTarget.Wrapf("no stage %q in source %q at %s", name, src.Name(), src.Revision)
	}
	return workspace.Stage{Source: src, Descriptor: descriptor}, nil
}

// Build runs the pipeline of a source up to some stage
func (w *Workspace) Build(ctx context.Context, stage workspace.Stage) (dataset.Dataset, error) {
	if err := w.guard(); err != nil {
		return nil, err
	}
	src := stage.Source.Descriptor
	pipeline, ok := src.Pipeline(stage.Name())
	if !ok {
		return nil, status.ErrUnknownTarget.Wrapf("no stage %q in source %q", stage.Name(), src.Name)
	}

	var ds dataset.Dataset
	for _, step := range pipeline {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch step.Type {
		case model.StageTypeSource:
			loaded, err := w.formats.Load(w.dataPath(src), src.Format)
			if err != nil {
				return nil, status.ErrBuild.Wrap(fmt.Errorf("stage %s: %w", stage, err))
			}
			ds = loaded
		case model.StageTypeTransform:
			if ds == nil {
				return nil, status.ErrBuild.Wrapf("stage %s: transform %q has no input", stage, step.Name)
			}
			transform, ok := w.transforms[step.Transform]
			if !ok {
				return nil, status.ErrBuild.Wrapf("stage %s: unknown transform %q", stage, step.Transform)
			}
			transformed, err := transform(ds, step.Params)
			if err != nil {
				return nil, status.ErrBuild.Wrap(fmt.Errorf("stage %s: %w", stage, err))
			}
			ds = transformed
		default:
			return nil, status.ErrBuild.Wrapf("stage %s: unsupported stage type %q", stage, step.Type)
		}
	}
	w.l.Debug("stage built", zap.Stringer("stage", stage), zap.Int("items", ds.Len()))
	return dataset.FromItems(ds.Items(), dataset.WithFormat(src.Format), dataset.WithOrigin(w.origin(stage.String()))), nil
}

// Snapshot builds the last stage of every source at some revision, as one dataset
func (w *Workspace) Snapshot(ctx context.Context, rev workspace.Revision) (dataset.Dataset, error) {
	parts := make([]dataset.Dataset, 0, len(rev.Sources))
	for _, descriptor := range rev.Sources {
		src := workspace.Source{Revision: rev, Descriptor: descriptor}
		ds, err := w.Build(ctx, workspace.Stage{Source: src, Descriptor: descriptor.Head()})
		if err != nil {
			return nil, err
		}
		parts = append(parts, ds)
	}
	origin := w.origin(rev.ID)
	if len(parts) == 0 {
		if err := w.guard(); err != nil {
			return nil, err
		}
		return dataset.Empty(origin), nil
	}
	return dataset.Concat(origin, parts...), nil
}

func (w *Workspace) guard() error {
	w.mx.RLock()
	defer w.mx.RUnlock()
	return w.checkOpen()
}

func (w *Workspace) dataPath(src model.SourceDescriptor) string {
	return filepath.Join(w.root, filepath.FromSlash(src.Path))
}

func (w *Workspace) origin(target string) string {
	if target == "" {
		return w.root
	}
	return fmt.Sprintf("%s@%s", w.root, target)
}

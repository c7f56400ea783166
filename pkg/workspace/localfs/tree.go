package localfs

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/oneconcern/datarev/pkg/model"
	"github.com/oneconcern/datarev/pkg/storage"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func (w *Workspace) readTree(ctx context.Context) (model.SourceDescriptors, error) {
	b, err := storage.ReadAll(ctx, w.meta, model.GetArchivePathToTree())
	if err != nil {
		return nil, fmt.Errorf("reading working tree: %w", err)
	}
	return model.UnmarshalSources(b)
}

func (w *Workspace) putTree(ctx context.Context, sources model.SourceDescriptors) error {
	sort.Sort(sources)
	b, err := model.MarshalSources(sources)
	if err != nil {
		return err
	}
	return w.meta.Put(ctx, model.GetArchivePathToTree(), bytes.NewReader(b), storage.OverWrite)
}

// Sources lists the sources in the working tree
func (w *Workspace) Sources(ctx context.Context) (model.SourceDescriptors, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	return w.readTree(ctx)
}

// ImportSource adds a source to the working tree.
//
// The data found at url is copied into the workspace. When formatName is empty,
// the format is detected.
func (w *Workspace) ImportSource(ctx context.Context, name, url, formatName string) (model.SourceDescriptor, error) {
	if err := model.ValidateName("source", name); err != nil {
		return model.SourceDescriptor{}, status.ErrInvalidName.Wrap(err)
	}

	w.mx.Lock()
	defer w.mx.Unlock()
	if err := w.checkOpen(); err != nil {
		return model.SourceDescriptor{}, err
	}

	sources, err := w.readTree(ctx)
	if err != nil {
		return model.SourceDescriptor{}, err
	}
	if _, exists := sources.Find(name); exists {
		return model.SourceDescriptor{}, status.ErrTargetExists.Wrapf("source %q", name)
	}

	detected, err := w.formats.Detect(url, formatName)
	if err != nil {
		return model.SourceDescriptor{}, err
	}
	if _, err = w.formats.Load(url, detected); err != nil {
		return model.SourceDescriptor{}, err
	}

	dataDir := filepath.Join(w.root, name)
	if exists, _ := afero.Exists(w.fs, dataDir); exists {
		return model.SourceDescriptor{}, status.ErrTargetExists.Wrapf("directory %q is in the way of source %q", dataDir, name)
	}
	if err = copyTree(w.fs, url, dataDir); err != nil {
		_ = w.fs.RemoveAll(dataDir)
		return model.SourceDescriptor{}, fmt.Errorf("copying source data from %s: %w", url, err)
	}

	src := model.NewSourceDescriptor(name, url, name, detected)
	if err = w.putTree(ctx, append(sources, src)); err != nil {
		return model.SourceDescriptor{}, err
	}
	w.l.Info("source imported",
		zap.String("source", name), zap.String("url", url), zap.String("format", detected))
	return src, nil
}

// RemoveSource removes a source from the working tree, with its data
func (w *Workspace) RemoveSource(ctx context.Context, name string) error {
	w.mx.Lock()
	defer w.mx.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}

	sources, err := w.readTree(ctx)
	if err != nil {
		return err
	}
	src, exists := sources.Find(name)
	if !exists {
		return status.ErrUnknownTarget.Wrapf("source %q", name)
	}
	kept := make(model.SourceDescriptors, 0, len(sources))
	for _, s := range sources {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	if err = w.putTree(ctx, kept); err != nil {
		return err
	}
	if err = w.fs.RemoveAll(w.dataPath(src)); err != nil {
		return err
	}
	w.l.Info("source removed", zap.String("source", name))
	return nil
}

// AddStage appends a transform stage to the pipeline of a source in the working tree
func (w *Workspace) AddStage(ctx context.Context, source string, stage model.StageDescriptor) error {
	if err := model.ValidateName("stage", stage.Name); err != nil {
		return status.ErrInvalidName.Wrap(err)
	}
	if stage.Type == "" {
		stage.Type = model.StageTypeTransform
	}
	if stage.Type != model.StageTypeTransform {
		return fmt.Errorf("invalid stage type %q: only %q stages may be added", stage.Type, model.StageTypeTransform)
	}
	if _, ok := w.transforms[stage.Transform]; !ok {
		return fmt.Errorf("unknown transform %q for stage %s", stage.Transform, stage.Name)
	}

	w.mx.Lock()
	defer w.mx.Unlock()
	if err := w.checkOpen(); err != nil {
		return err
	}

	sources, err := w.readTree(ctx)
	if err != nil {
		return err
	}
	for i := range sources {
		if sources[i].Name != source {
			continue
		}
		if _, exists := sources[i].Stage(stage.Name); exists {
			return status.ErrTargetExists.Wrapf("stage %q in source %q", stage.Name, source)
		}
		sources[i].Stages = append(sources[i].Stages, stage)
		if err = model.ValidateSource(sources[i]); err != nil {
			return status.ErrInvalidName.Wrap(err)
		}
		if err = w.putTree(ctx, sources); err != nil {
			return err
		}
		w.l.Info("stage added",
			zap.String("source", source), zap.String("stage", stage.Name), zap.String("transform", stage.Transform))
		return nil
	}
	return status.ErrUnknownTarget.Wrapf("source %q", source)
}

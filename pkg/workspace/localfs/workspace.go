/*
 * Copyright © 2019 One Concern
 *
 */

// Package localfs implements a workspace stored on a file system.
//
// Layout, under the workspace root:
//
//	.datarev/workspace.yaml                workspace descriptor
//	.datarev/HEAD                          id of the latest revision
//	.datarev/tree/sources.yaml             sources of the working tree
//	.datarev/revisions/{id}/revision.yaml  revision descriptors
//	.datarev/objects/{id}/{source}/        source data, as committed
//	{source}/                              source data in the working tree
package localfs

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/format"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/oneconcern/datarev/pkg/storage"
	storagefs "github.com/oneconcern/datarev/pkg/storage/localfs"
	storagestatus "github.com/oneconcern/datarev/pkg/storage/status"
	"github.com/oneconcern/datarev/pkg/workspace"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	objectsDir = "objects"

	defaultRevisionCacheSize = 64
)

var _ workspace.Workspace = &Workspace{}

// Workspace is a workspace stored on a file system
type Workspace struct {
	root        string
	fs          afero.Fs
	meta        storage.Store
	formats     *format.Registry
	transforms  map[string]Transform
	contributor model.Contributor
	descriptor  model.WorkspaceDescriptor
	l           *zap.Logger

	cacheSize int
	revisions *lru.Cache // revision descriptors are immutable

	mx     sync.RWMutex
	closed bool
}

func newWorkspace(root string, opts []Option) (*Workspace, error) {
	w := &Workspace{
		fs:         afero.NewOsFs(),
		transforms: builtinTransforms(),
		l:          zap.NewNop(),
		cacheSize:  defaultRevisionCacheSize,
	}
	for _, apply := range opts {
		apply(w)
	}
	revisions, err := lru.New(w.cacheSize)
	if err != nil {
		return nil, err
	}
	w.revisions = revisions
	if w.formats == nil {
		w.formats = format.NewDefault(format.WithFs(w.fs), format.WithLogger(w.l))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	w.root = abs
	w.l = w.l.With(zap.String("workspace", w.root))
	return w, nil
}

func (w *Workspace) metaDir() string {
	return filepath.Join(w.root, model.MetaDir)
}

func (w *Workspace) openMeta() error {
	meta, err := storagefs.New(afero.NewBasePathFs(w.fs, w.metaDir()), storagefs.Atomic(true))
	if err != nil {
		return err
	}
	w.meta = meta
	return nil
}

// IsWorkspace tells if a path is the root of a workspace
func IsWorkspace(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, filepath.Join(path, model.MetaDir, model.GetArchivePathToWorkspace()))
	return err == nil && ok
}

// Init creates a new workspace at some directory, which is created if needed
func Init(ctx context.Context, dir string, opts ...Option) (*Workspace, error) {
	w, err := newWorkspace(dir, opts)
	if err != nil {
		return nil, err
	}
	if IsWorkspace(w.fs, w.root) {
		return nil, status.ErrProjectExists.Wrapf("path %q", w.root)
	}
	if err = w.fs.MkdirAll(w.metaDir(), 0755); err != nil {
		return nil, err
	}
	if err = w.openMeta(); err != nil {
		return nil, err
	}

	descriptor := model.NewWorkspaceDescriptor(filepath.Base(w.root), w.contributor)
	b, err := model.MarshalWorkspace(descriptor)
	if err != nil {
		return nil, err
	}
	if err = w.putTree(ctx, model.SourceDescriptors{}); err != nil {
		return nil, err
	}
	if err = w.meta.Put(ctx, model.GetArchivePathToWorkspace(), bytes.NewReader(b), storage.NoOverWrite); err != nil {
		if errors.Is(err, storagestatus.ErrExists) {
			return nil, status.ErrProjectExists.Wrapf("path %q", w.root)
		}
		return nil, err
	}
	w.descriptor = *descriptor
	w.l.Info("workspace initialized")
	return w, nil
}

// Open a workspace rooted at some directory.
//
// The returned workspace is fully initialized. It fails with status.ErrProjectNotFound
// if the directory is not a workspace root.
func Open(ctx context.Context, dir string, opts ...Option) (*Workspace, error) {
	w, err := newWorkspace(dir, opts)
	if err != nil {
		return nil, err
	}
	if !IsWorkspace(w.fs, w.root) {
		return nil, status.ErrProjectNotFound.Wrapf("path %q", w.root)
	}
	if err = w.openMeta(); err != nil {
		return nil, err
	}
	b, err := storage.ReadAll(ctx, w.meta, model.GetArchivePathToWorkspace())
	if err != nil {
		return nil, status.ErrProjectNotFound.Wrap(err)
	}
	descriptor, err := model.UnmarshalWorkspace(b)
	if err != nil {
		return nil, status.ErrProjectNotFound.Wrap(err)
	}
	if err = descriptor.CheckVersion(); err != nil {
		return nil, status.ErrIncompatibleVersion.Wrap(err)
	}
	w.descriptor = *descriptor
	w.l.Debug("workspace opened", zap.String("version", descriptor.Version))
	return w, nil
}

// Opener yields a workspace.Opener for workspaces stored on a file system
func Opener(opts ...Option) workspace.Opener {
	return func(ctx context.Context, path string) (workspace.Workspace, error) {
		w, err := Open(ctx, path, opts...)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// Root yields the path to the workspace root
func (w *Workspace) Root() string {
	return w.root
}

// Descriptor yields the workspace descriptor
func (w *Workspace) Descriptor() model.WorkspaceDescriptor {
	return w.descriptor
}

// Formats yields the registry used to load source data
func (w *Workspace) Formats() *format.Registry {
	return w.formats
}

// Close the workspace. Further operations fail with status.ErrClosed.
func (w *Workspace) Close() error {
	w.mx.Lock()
	defer w.mx.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.l.Debug("workspace closed")
	return nil
}

// Closed tells if the workspace has been closed
func (w *Workspace) Closed() bool {
	w.mx.RLock()
	defer w.mx.RUnlock()
	return w.closed
}

func (w *Workspace) checkOpen() error {
	if w.closed {
		return status.ErrClosed.Wrapf("path %q", w.root)
	}
	return nil
}

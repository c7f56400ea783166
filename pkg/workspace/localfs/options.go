package localfs

import (
	"github.com/oneconcern/datarev/pkg/format"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option configures a workspace
type Option func(*Workspace)

// WithFs sets the file system the workspace lives on. Defaults to the OS file system.
func WithFs(fs afero.Fs) Option {
	return func(w *Workspace) {
		if fs != nil {
			w.fs = fs
		}
	}
}

// WithFormats sets the registry used to load source data.
//
// The registry should read from the same file system as the workspace.
// Defaults to the built-in formats.
func WithFormats(formats *format.Registry) Option {
	return func(w *Workspace) {
		w.formats = formats
	}
}

// WithLogger injects a logger
func WithLogger(l *zap.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.l = l
		}
	}
}

// WithContributor sets the contributor recorded in new workspaces and revisions
func WithContributor(c model.Contributor) Option {
	return func(w *Workspace) {
		w.contributor = c
	}
}

// WithTransform registers an additional transform available to build stages
func WithTransform(name string, transform Transform) Option {
	return func(w *Workspace) {
		w.transforms[name] = transform
	}
}

// WithRevisionCache sets how many revision descriptors are kept in memory. Defaults to 64.
func WithRevisionCache(size int) Option {
	return func(w *Workspace) {
		if size > 0 {
			w.cacheSize = size
		}
	}
}

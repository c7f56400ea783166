package revpath

import (
	"github.com/oneconcern/datarev/pkg/format"
	"github.com/oneconcern/datarev/pkg/workspace"
	"go.uber.org/zap"
)

// Option configures the resolution of a revpath
type Option func(*resolver)

// WithWorkspace sets the ambient workspace.
//
// The workspace remains owned by the caller: it is never closed by Resolve nor returned in the Result.
func WithWorkspace(ws workspace.Workspace) Option {
	return func(r *resolver) {
		r.ambient = ws
	}
}

// WithFormats sets the registry used to detect and load bare datasets. Defaults to the built-in formats.
func WithFormats(formats *format.Registry) Option {
	return func(r *resolver) {
		r.formats = formats
	}
}

// WithOpener sets how workspace paths are opened. Defaults to on-disk workspaces.
func WithOpener(opener workspace.Opener) Option {
	return func(r *resolver) {
		r.opener = opener
	}
}

// WithLogger injects a logger
func WithLogger(l *zap.Logger) Option {
	return func(r *resolver) {
		if l != nil {
			r.l = l
		}
	}
}

package format

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option configures a Registry
type Option func(*Registry)

// WithFs sets the file system datasets are read from. Defaults to the OS file system.
func WithFs(fs afero.Fs) Option {
	return func(r *Registry) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// WithLogger injects a logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.l = l
		}
	}
}

// WithFormats registers formats at construction time
func WithFormats(formats ...Format) Option {
	return func(r *Registry) {
		for _, f := range formats {
			r.formats[f.Name] = f
		}
	}
}

// WithBuiltins registers the built-in formats
func WithBuiltins() Option {
	return WithFormats(Builtins()...)
}

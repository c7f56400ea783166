package format

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/oneconcern/datarev/pkg/dataset/status"
	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Registry holds the known formats.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mx      sync.RWMutex
	formats map[string]Format
	fs      afero.Fs
	l       *zap.Logger
}

// NewRegistry builds a registry of formats. The registry is empty unless some formats
// are provided as options (e.g. WithBuiltins()).
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		formats: make(map[string]Format),
		fs:      afero.NewOsFs(),
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// NewDefault builds a registry with all built-in formats
func NewDefault(opts ...Option) *Registry {
	return NewRegistry(append([]Option{WithBuiltins()}, opts...)...)
}

// Register adds or replaces a format
func (r *Registry) Register(f Format) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.formats[f.Name] = f
}

// Fs yields the file system this registry reads datasets from
func (r *Registry) Fs() afero.Fs {
	return r.fs
}

// Formats yields the sorted names of registered formats
func (r *Registry) Formats() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get a format by name
func (r *Registry) Get(name string) (Format, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	f, ok := r.formats[name]
	if !ok {
		return Format{}, ErrUnknownFormat.Wrapf("format %q is not registered", name)
	}
	return f, nil
}

// Detect tells which format may load a dataset path.
//
// An explicit format is returned as is, without probing the path. Otherwise, every registered
// recognizer is probed: exactly one of them must match.
//
// Recognizer errors are considered as a mismatch. Errors accessing the path itself are reported
// as status.ErrPathNotFound or status.ErrPathAccess.
func (r *Registry) Detect(path, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	matches, err := r.DetectAll(path)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", ErrNoMatchingFormats.Wrapf("path %q", path)
	case 1:
		return matches[0], nil
	default:
		return "", &MultipleFormatsMatchError{Path: path, Formats: matches}
	}
}

// DetectAll yields all formats matching a dataset path, sorted by name
func (r *Registry) DetectAll(path string) ([]string, error) {
	if err := checkPath(r.fs, path); err != nil {
		return nil, err
	}
	var matches []string
	for _, name := range r.Formats() {
		f, err := r.Get(name)
		if err != nil || f.Detect == nil {
			continue
		}
		ok, err := f.Detect(r.fs, path)
		if err != nil {
			r.l.Debug("format recognizer failed, considered as a mismatch",
				zap.String("format", name), zap.String("path", path), zap.Error(err))
			continue
		}
		if ok {
			matches = append(matches, name)
		}
	}
	r.l.Debug("format detection", zap.String("path", path), zap.Strings("matches", matches))
	return matches, nil
}

// Load reads a dataset from a path, in the given format
func (r *Registry) Load(path, formatName string) (dataset.Dataset, error) {
	if err := checkPath(r.fs, path); err != nil {
		return nil, err
	}
	f, err := r.Get(formatName)
	if err != nil {
		return nil, err
	}
	if f.Load == nil {
		return nil, status.ErrLoad.Wrapf("format %q does not support loading", formatName)
	}
	items, err := f.Load(r.fs, path)
	if err != nil {
		return nil, status.ErrLoad.Wrap(fmt.Errorf("format %q, path %q: %w", formatName, path, err))
	}
	r.l.Debug("dataset loaded",
		zap.String("format", formatName), zap.String("path", path), zap.Int("items", len(items)))
	return dataset.FromItems(items, dataset.WithFormat(formatName), dataset.WithOrigin(path)), nil
}

// Save writes a dataset to a path, in the given format
func (r *Registry) Save(path, formatName string, ds dataset.Dataset) error {
	f, err := r.Get(formatName)
	if err != nil {
		return err
	}
	if !f.CanSave() {
		return status.ErrSave.Wrapf("format %q does not support saving", formatName)
	}
	if err = f.Save(r.fs, path, ds.Items()); err != nil {
		return status.ErrSave.Wrap(fmt.Errorf("format %q, path %q: %w", formatName, path, err))
	}
	return nil
}

// checkPath makes sure a path exists and is readable
func checkPath(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return status.ErrPathNotFound.Wrapf("path %q", path)
		}
		return status.ErrPathAccess.Wrap(err)
	}
	f, err := fs.Open(path)
	if err != nil {
		return status.ErrPathAccess.Wrap(err)
	}
	defer func() {
		_ = f.Close()
	}()
	if info.IsDir() {
		if _, err = f.Readdirnames(-1); err != nil {
			return status.ErrPathAccess.Wrap(err)
		}
	}
	return nil
}


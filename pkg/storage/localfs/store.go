// Copyright © 2018 One Concern

// Package localfs implements a storage.Store with plain files on an afero.Fs.
//
// Keys map to file paths relative to the base of the file system. With atomic writes,
// objects are first written in a staging area, then renamed into place, so readers
// never see a partially written descriptor.
package localfs

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/storage"
	"github.com/oneconcern/datarev/pkg/storage/status"
	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"
)

const stagingDir = ".staging"

// Option configures a file store
type Option func(*fileStore)

// Atomic writes objects to a staging area, then renames them into place.
//
// This requires Rename to be atomic on the underlying file system.
func Atomic(enabled bool) Option {
	return func(s *fileStore) {
		s.atomic = enabled
	}
}

type fileStore struct {
	fs     afero.Fs
	atomic bool
}

// New builds a store keeping objects as files on fs
func New(fs afero.Fs, opts ...Option) (storage.Store, error) {
	if fs == nil {
		return nil, status.ErrStorageAPI.Wrapf("a file system is required")
	}
	s := &fileStore{fs: fs}
	for _, apply := range opts {
		apply(s)
	}
	if s.atomic {
		if err := fs.MkdirAll(stagingDir, 0700); err != nil {
			return nil, status.ErrStorageAPI.Wrap(err)
		}
	}
	return s, nil
}

// checkKey yields the file path for a key, which must remain within the store
func checkKey(key string) (string, error) {
	clean := path.Clean(filepath.ToSlash(key))
	switch {
	case clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../"):
		return "", status.ErrInvalidKey.Wrapf("key %q", key)
	case clean == stagingDir || strings.HasPrefix(clean, stagingDir+"/"):
		return "", status.ErrInvalidKey.Wrapf("key %q conflicts with the staging area", key)
	}
	return filepath.FromSlash(clean), nil
}

func (s *fileStore) Has(_ context.Context, key string) (bool, error) {
	name, err := checkKey(key)
	if err != nil {
		return false, err
	}
	return s.has(name)
}

func (s *fileStore) has(name string) (bool, error) {
	fi, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, status.ErrStorageAPI.Wrap(err)
	}
	return !fi.IsDir(), nil
}

func (s *fileStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	name, err := checkKey(key)
	if err != nil {
		return nil, err
	}
	ok, err := s.has(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, status.ErrNotExists.Wrapf("key %q", key)
	}
	f, err := s.fs.Open(name)
	if err != nil {
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	return f, nil
}

func (s *fileStore) Put(_ context.Context, key string, source io.Reader, exclusive bool) error {
	name, err := checkKey(key)
	if err != nil {
		return err
	}
	if !s.atomic {
		return s.write(name, source, exclusive)
	}

	if exclusive {
		ok, err := s.has(name)
		if err != nil {
			return err
		}
		if ok {
			return status.ErrExists.Wrapf("key %q", key)
		}
	}
	staged := filepath.Join(stagingDir, ksuid.New().String())
	if err = s.write(staged, source, false); err != nil {
		_ = s.fs.Remove(staged)
		return err
	}
	if err = s.fs.MkdirAll(filepath.Dir(name), 0700); err != nil {
		_ = s.fs.Remove(staged)
		return status.ErrStorageAPI.Wrap(err)
	}
	if err = s.fs.Rename(staged, name); err != nil {
		_ = s.fs.Remove(staged)
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}

func (s *fileStore) write(name string, source io.Reader, exclusive bool) error {
	if err := s.fs.MkdirAll(filepath.Dir(name), 0700); err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if exclusive {
		flag |= os.O_EXCL
	}
	f, err := s.fs.OpenFile(name, flag, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return status.ErrExists.Wrapf("key %q", filepath.ToSlash(name))
		}
		return status.ErrStorageAPI.Wrap(err)
	}
	if _, err = io.Copy(f, source); err != nil {
		_ = f.Close()
		return status.ErrStorageAPI.Wrap(err)
	}
	if err = f.Close(); err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	name, err := checkKey(key)
	if err != nil {
		return err
	}
	if err = s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}

func (s *fileStore) KeysPrefix(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := afero.Walk(s.fs, ".", func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if name == stagingDir {
				return filepath.SkipDir
			}
			return nil
		}
		key := filepath.ToSlash(name)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *fileStore) String() string {
	name := "localfs"
	if s.atomic {
		name += "-atomic"
	}
	if base, ok := s.fs.(*afero.BasePathFs); ok {
		if root, err := base.RealPath(""); err == nil {
			return name + "@" + root
		}
	}
	return name
}

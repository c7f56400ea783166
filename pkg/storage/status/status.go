// Copyright © 2018 One Concern

// Package status declares the errors returned by storage.Store implementations.
//
// They live apart from pkg/storage so implementations may import them without cycles.
package status

import "github.com/oneconcern/datarev/pkg/errors"

var (
	// ErrNotExists means there is no object under the requested key
	ErrNotExists = errors.New("object doesn't exist")

	// ErrExists means an exclusive put found an object under its key
	ErrExists = errors.New("exists already")

	// ErrInvalidKey means a key is not a relative path inside the store
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrStorageAPI wraps any failure of the underlying file system
	ErrStorageAPI = errors.New("storage API error")
)

// Package status exports errors produced when accessing or loading datasets.
package status

import (
	"github.com/oneconcern/datarev/pkg/errors"
)

var (
	// ErrPathNotFound indicates that a dataset path does not exist
	ErrPathNotFound = errors.New("dataset path not found")

	// ErrPathAccess indicates that a dataset path exists but cannot be read
	ErrPathAccess = errors.New("dataset path cannot be accessed")

	// ErrLoad indicates that a dataset could not be loaded in the requested format
	ErrLoad = errors.New("failed to load dataset")

	// ErrSave indicates that a dataset could not be saved in the requested format
	ErrSave = errors.New("failed to save dataset")
)

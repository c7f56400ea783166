// Package status exports errors produced by workspace implementations.
package status

import (
	"github.com/oneconcern/datarev/pkg/errors"
)

var (
	// ErrProjectNotFound indicates that a path is not a workspace root
	ErrProjectNotFound = errors.New("workspace not found")

	// ErrProjectExists indicates that a workspace already exists at some path
	ErrProjectExists = errors.New("workspace exists already")

	// ErrIncompatibleVersion indicates that the workspace layout is not supported
	ErrIncompatibleVersion = errors.New("incompatible workspace version")

	// ErrUnknownRevision indicates that a revision does not exist in the workspace
	ErrUnknownRevision = errors.New("unknown revision")

	// ErrUnknownTarget indicates that a source or a stage does not exist at some revision
	ErrUnknownTarget = errors.New("unknown target")

	// ErrEmptyCommit indicates that there is nothing to commit
	ErrEmptyCommit = errors.New("nothing to commit")

	// ErrInvalidName indicates that a source or stage name is invalid
	ErrInvalidName = errors.New("invalid name")

	// ErrTargetExists indicates that a source or a stage already exists
	ErrTargetExists = errors.New("target exists already")

	// ErrClosed indicates that the workspace has been closed
	ErrClosed = errors.New("workspace is closed")

	// ErrBuild indicates a failure while building a stage
	ErrBuild = errors.New("build failed")
)

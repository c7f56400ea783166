package workspace

import (
	"context"
	"fmt"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/oneconcern/datarev/pkg/model"
)

// Opener opens the workspace rooted at some path.
//
// Implementations fail with status.ErrProjectNotFound when the path is not a workspace root.
type Opener func(ctx context.Context, path string) (Workspace, error)

// Workspace is the query interface to a versioned workspace.
//
// Implementations must be safe for concurrent read access.
type Workspace interface {
	// Root yields the path to the workspace root
	Root() string

	// ResolveRevision finds a revision. The empty id stands for the working state.
	// It fails with status.ErrUnknownRevision.
	ResolveRevision(ctx context.Context, id string) (Revision, error)

	// Source finds a source at some revision. It fails with status.ErrUnknownTarget.
	Source(ctx context.Context, rev Revision, name string) (Source, error)

	// Stage finds a stage of a source. It fails with status.ErrUnknownTarget.
	Stage(ctx context.Context, src Source, name string) (Stage, error)

	// Build materializes the dataset produced by a stage
	Build(ctx context.Context, stage Stage) (dataset.Dataset, error)

	// Snapshot materializes the dataset made of all sources at some revision
	Snapshot(ctx context.Context, rev Revision) (dataset.Dataset, error)

	// Close releases the workspace
	Close() error
}

// Revision is a handle on a revision of a workspace
type Revision struct {
	// ID of the revision. Empty for the working state.
	ID string

	// Descriptor of the committed revision. Nil for the working state.
	Descriptor *model.RevisionDescriptor

	// Sources at this revision
	Sources model.SourceDescriptors
}

// IsWorking tells if this revision is the working state of the workspace
func (r Revision) IsWorking() bool {
	return r.ID == model.WorkingRevision
}

func (r Revision) String() string {
	if r.IsWorking() {
		return "working tree"
	}
	return r.ID
}

// Source is a handle on a source at some revision
type Source struct {
	Revision   Revision
	Descriptor model.SourceDescriptor
}

// Name of the source
func (s Source) Name() string {
	return s.Descriptor.Name
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%s", s.Revision.ID, s.Descriptor.Name)
}

// Stage is a handle on a build stage of a source
type Stage struct {
	Source     Source
	Descriptor model.StageDescriptor
}

// Name of the stage
func (s Stage) Name() string {
	return s.Descriptor.Name
}

func (s Stage) String() string {
	return fmt.Sprintf("%s.%s", s.Source, s.Descriptor.Name)
}

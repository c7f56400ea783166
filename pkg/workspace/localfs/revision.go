package localfs

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/oneconcern/datarev/pkg/errors"
	"github.com/oneconcern/datarev/pkg/model"
	"github.com/oneconcern/datarev/pkg/storage"
	storagestatus "github.com/oneconcern/datarev/pkg/storage/status"
	"github.com/oneconcern/datarev/pkg/workspace"
	"github.com/oneconcern/datarev/pkg/workspace/status"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// minPrefixLength is the shortest revision id prefix accepted in place of a full id
const minPrefixLength = 4

// readHead yields the id of the latest revision, or the empty string before the first commit
func (w *Workspace) readHead(ctx context.Context) (string, error) {
	b, err := storage.ReadAll(ctx, w.meta, model.GetArchivePathToHead())
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// readRevision yields a revision descriptor the caller may modify
func (w *Workspace) readRevision(ctx context.Context, id string) (*model.RevisionDescriptor, error) {
	if cached, ok := w.revisions.Get(id); ok {
		return cached.(*model.RevisionDescriptor).Clone(), nil
	}
	b, err := storage.ReadAll(ctx, w.meta, model.GetArchivePathToRevision(id))
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return nil, status.ErrUnknownRevision.Wrapf("revision %q", id)
		}
		return nil, err
	}
	descriptor, err := model.UnmarshalRevision(b)
	if err != nil {
		return nil, err
	}
	w.revisions.Add(id, descriptor.Clone())
	return descriptor, nil
}

func (w *Workspace) revisionIDs(ctx context.Context) ([]string, error) {
	keys, err := w.meta.KeysPrefix(ctx, model.GetArchivePathPrefixToRevisions())
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		apc, err := model.GetArchivePathComponents(key)
		if err != nil {
			w.l.Debug("skipping unexpected metadata object", zap.String("key", key), zap.Error(err))
			continue
		}
		ids = append(ids, apc.RevisionID)
	}
	return ids, nil
}

func (w *Workspace) lookupRevision(ctx context.Context, id string) (*model.RevisionDescriptor, error) {
	switch {
	case id == model.HeadRevision:
		head, err := w.readHead(ctx)
		if err != nil {
			return nil, err
		}
		if head == "" {
			return nil, status.ErrUnknownRevision.Wrapf("%s: no revision committed yet", model.HeadRevision)
		}
		return w.readRevision(ctx, head)

	case model.IsRevisionID(id):
		return w.readRevision(ctx, id)

	case len(id) >= minPrefixLength:
		ids, err := w.revisionIDs(ctx)
		if err != nil {
			return nil, err
		}
		var matches []string
		for _, candidate := range ids {
			if strings.HasPrefix(candidate, id) {
				matches = append(matches, candidate)
			}
		}
		switch len(matches) {
		case 0:
			return nil, status.ErrUnknownRevision.Wrapf("revision %q", id)
		case 1:
			return w.readRevision(ctx, matches[0])
		default:
			return nil, status.ErrUnknownRevision.Wrapf("ambiguous revision prefix %q matches %d revisions", id, len(matches))
		}

	default:
		return nil, status.ErrUnknownRevision.Wrapf("revision %q", id)
	}
}

// ResolveRevision finds a revision by id, unique id prefix or HEAD.
// The empty id stands for the working state.
func (w *Workspace) ResolveRevision(ctx context.Context, id string) (workspace.Revision, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	if err := w.checkOpen(); err != nil {
		return workspace.Revision{}, err
	}

	if id == model.WorkingRevision {
		sources, err := w.readTree(ctx)
		if err != nil {
			return workspace.Revision{}, err
		}
		return workspace.Revision{ID: model.WorkingRevision, Sources: sources}, nil
	}

	descriptor, err := w.lookupRevision(ctx, id)
	if err != nil {
		return workspace.Revision{}, err
	}
	return workspace.Revision{
		ID:         descriptor.ID,
		Descriptor: descriptor,
		Sources:    descriptor.Sources.Clone(),
	}, nil
}

// Log yields all revisions, newest first
func (w *Workspace) Log(ctx context.Context) (model.RevisionDescriptors, error) {
	w.mx.RLock()
	defer w.mx.RUnlock()
	if err := w.checkOpen(); err != nil {
		return nil, err
	}

	ids, err := w.revisionIDs(ctx)
	if err != nil {
		return nil, err
	}
	revisions := make(model.RevisionDescriptors, 0, len(ids))
	for _, id := range ids {
		descriptor, err := w.readRevision(ctx, id)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, *descriptor)
	}
	sort.Sort(revisions)
	return revisions, nil
}

// Commit records the working tree as a new revision.
//
// Source data is copied to the object area of the workspace, so the revision remains
// buildable after the working tree changes. Commit fails with status.ErrEmptyCommit when
// the working tree is identical to the latest revision, unless allowEmpty is set.
func (w *Workspace) Commit(ctx context.Context, message string, allowEmpty bool) (*model.RevisionDescriptor, error) {
	w.mx.Lock()
	defer w.mx.Unlock()
	if err := w.checkOpen(); err != nil {
		return nil, err
	}

	sources, err := w.readTree(ctx)
	if err != nil {
		return nil, err
	}
	head, err := w.readHead(ctx)
	if err != nil {
		return nil, err
	}

	if !allowEmpty {
		changed, err := w.changedSince(ctx, head, sources)
		if err != nil {
			return nil, err
		}
		if !changed {
			return nil, status.ErrEmptyCommit
		}
	}

	now := time.Now().UTC()
	id, err := model.NewRevisionID(now)
	if err != nil {
		return nil, err
	}

	committed := make(model.SourceDescriptors, 0, len(sources))
	for _, src := range sources.Clone() {
		objectPath := filepath.Join(model.MetaDir, objectsDir, id, src.Name)
		if err = copyTree(w.fs, w.dataPath(src), filepath.Join(w.root, objectPath)); err != nil {
			_ = w.fs.RemoveAll(filepath.Join(w.metaDir(), objectsDir, id))
			return nil, err
		}
		src.Path = filepath.ToSlash(objectPath)
		committed = append(committed, src)
	}

	descriptor := &model.RevisionDescriptor{
		ID:        id,
		Message:   message,
		Timestamp: now,
		Sources:   committed,
	}
	if head != "" {
		descriptor.Parents = []string{head}
	}
	if w.contributor != (model.Contributor{}) {
		descriptor.Contributors = []model.Contributor{w.contributor}
	}

	b, err := model.MarshalRevision(descriptor)
	if err != nil {
		return nil, err
	}
	if err = w.meta.Put(ctx, model.GetArchivePathToRevision(id), bytes.NewReader(b), storage.NoOverWrite); err != nil {
		return nil, err
	}
	if err = w.meta.Put(ctx, model.GetArchivePathToHead(), strings.NewReader(id), storage.OverWrite); err != nil {
		return nil, err
	}
	w.l.Info("revision committed", zap.String("revision", id), zap.Int("sources", len(committed)))
	return descriptor, nil
}

// changedSince tells if the working tree differs from a revision
func (w *Workspace) changedSince(ctx context.Context, head string, sources model.SourceDescriptors) (bool, error) {
	if head == "" {
		return len(sources) > 0, nil
	}
	previous, err := w.readRevision(ctx, head)
	if err != nil {
		return false, err
	}
	if len(previous.Sources) != len(sources) {
		return true, nil
	}
	for _, src := range sources {
		committed, ok := previous.Sources.Find(src.Name)
		if !ok {
			return true, nil
		}
		working := src
		working.Path = committed.Path
		if !sameDescriptor(working, committed) {
			return true, nil
		}
		same, err := sameTree(w.fs, w.dataPath(src), w.dataPath(committed))
		if err != nil {
			return false, err
		}
		if !same {
			return true, nil
		}
	}
	return false, nil
}

// sameTree tells if two directory trees hold the same files with the same content
func sameTree(fs afero.Fs, a, b string) (bool, error) {
	filesA, err := listFiles(fs, a)
	if err != nil {
		return false, err
	}
	filesB, err := listFiles(fs, b)
	if err != nil {
		return false, err
	}
	if !slices.Equal(filesA, filesB) {
		return false, nil
	}
	for _, rel := range filesA {
		contentA, err := afero.ReadFile(fs, filepath.Join(a, rel))
		if err != nil {
			return false, err
		}
		contentB, err := afero.ReadFile(fs, filepath.Join(b, rel))
		if err != nil {
			return false, err
		}
		if !bytes.Equal(contentA, contentB) {
			return false, nil
		}
	}
	return true, nil
}

func sameDescriptor(a, b model.SourceDescriptor) bool {
	ba, erra := model.MarshalSources(model.SourceDescriptors{a})
	bb, errb := model.MarshalSources(model.SourceDescriptors{b})
	return erra == nil && errb == nil && bytes.Equal(ba, bb)
}

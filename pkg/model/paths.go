package model

import (
	"fmt"
	"strings"
)

const (
	// MetaDir is the directory holding the metadata of a workspace, under the workspace root
	MetaDir = ".datarev"

	// descriptor files (object metadata)
	workspaceDescriptorFile = "workspace.yaml"
	revisionDescriptorFile  = "revision.yaml"
	headFile                = "HEAD"
	treeSourcesFile         = "sources.yaml"

	revisionsPrefix = "revisions"
	treePrefix      = "tree"
)

// ArchivePathComponents defines the unique path parts to retrieve a metadata object
type ArchivePathComponents struct {
	RevisionID      string
	ArchiveFileName string
}

// GetArchivePathToWorkspace yields the path to the workspace descriptor, in the metadata store
func GetArchivePathToWorkspace() string {
	return workspaceDescriptorFile
}

// GetArchivePathToHead yields the path to the reference of the latest revision
func GetArchivePathToHead() string {
	return headFile
}

// GetArchivePathToTree yields the path to the sources of the working tree
func GetArchivePathToTree() string {
	return fmt.Sprint(treePrefix, "/", treeSourcesFile)
}

// GetArchivePathPrefixToRevisions yields the common prefix to all revisions
func GetArchivePathPrefixToRevisions() string {
	return fmt.Sprint(revisionsPrefix, "/")
}

// GetArchivePathToRevision yields the path to a revision descriptor
func GetArchivePathToRevision(revisionID string) string {
	return fmt.Sprint(GetArchivePathPrefixToRevisions(), revisionID, "/", revisionDescriptorFile)
}

// GetArchivePathComponents yields all metadata components from a parsed archive path.
func GetArchivePathComponents(archivePath string) (ArchivePathComponents, error) {
	const (
		maxPos      = 3
		revisionPos = 1 // as in: revisions/{revisionID}/revision.yaml
	)
	cs := strings.SplitN(archivePath, "/", maxPos)
	switch cs[0] { // we always have at least 1 element
	case revisionsPrefix:
		if len(cs) < revisionPos+2 {
			return ArchivePathComponents{},
				fmt.Errorf("path is invalid: expect path to revision to have %d parts: %s", revisionPos+2, archivePath)
		}
		if cs[revisionPos+1] != revisionDescriptorFile {
			return ArchivePathComponents{},
				fmt.Errorf("path is invalid, last element in the path should be %q. components: %v, path: %s",
					revisionDescriptorFile, cs, archivePath)
		}
		if !IsRevisionID(cs[revisionPos]) {
			return ArchivePathComponents{},
				fmt.Errorf("path is invalid, %q is not a revision id. path: %s", cs[revisionPos], archivePath)
		}
		return ArchivePathComponents{
			RevisionID:      cs[revisionPos],
			ArchiveFileName: cs[revisionPos+1],
		}, nil
	case treePrefix:
		if len(cs) != 2 || cs[1] != treeSourcesFile {
			return ArchivePathComponents{},
				fmt.Errorf("path is invalid, expected %s: %s", GetArchivePathToTree(), archivePath)
		}
		return ArchivePathComponents{ArchiveFileName: cs[1]}, nil
	case workspaceDescriptorFile, headFile:
		if len(cs) != 1 {
			return ArchivePathComponents{}, fmt.Errorf("path is invalid: %s", archivePath)
		}
		return ArchivePathComponents{ArchiveFileName: cs[0]}, nil
	default:
		return ArchivePathComponents{}, fmt.Errorf("path is invalid: unknown metadata object %s", archivePath)
	}
}

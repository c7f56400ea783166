package revpath

import "strings"

const (
	localSeparator     = ":"
	workspaceSeparator = "@"
	stageSeparator     = "."
)

// SplitLocal splits a revpath on its first ':'.
//
// Without a ':', left is empty and right is the whole input. The meaning of both parts
// is left to the caller: "revision:target" or "dataset-path:format".
func SplitLocal(s string) (left, right string) {
	pos := strings.Index(s, localSeparator)
	if pos < 0 {
		return "", s
	}
	return s[:pos], s[pos+len(localSeparator):]
}

// workspacePathForm is a revpath read as "workspace-path[@rest]"
type workspacePathForm struct {
	path    string
	rest    string
	hasRest bool
}

func parseWorkspacePath(s string) workspacePathForm {
	pos := strings.LastIndex(s, workspaceSeparator)
	if pos < 0 {
		return workspacePathForm{path: s}
	}
	return workspacePathForm{path: s[:pos], rest: s[pos+len(workspaceSeparator):], hasRest: true}
}

// revisionForm is a revpath read as "[revision:]target"
type revisionForm struct {
	revision     string
	target       string
	hasSeparator bool
}

func parseRevision(s string) revisionForm {
	revision, target := SplitLocal(s)
	return revisionForm{revision: revision, target: target, hasSeparator: strings.Contains(s, localSeparator)}
}

// splitTarget splits "source[.stage]" on its first '.'
func splitTarget(target string) (source, stage string) {
	pos := strings.Index(target, stageSeparator)
	if pos < 0 {
		return target, ""
	}
	return target[:pos], target[pos+len(stageSeparator):]
}

// datasetForm is a revpath read as "dataset-path[:format]"
type datasetForm struct {
	path   string
	format string
}

func parseDataset(s string) datasetForm {
	if !strings.Contains(s, localSeparator) {
		return datasetForm{path: s}
	}
	path, format := SplitLocal(s)
	return datasetForm{path: path, format: format}
}

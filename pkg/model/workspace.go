/*
 * Copyright © 2019 One Concern
 *
 */

package model

import (
	"fmt"
	"time"

	"github.com/blang/semver"
	"gopkg.in/yaml.v2"
)

// CurrentWorkspaceVersion is the version of the on-disk workspace layout.
//
// Workspaces with a different major version cannot be opened.
const CurrentWorkspaceVersion = "1.0.0"

// WorkspaceDescriptor describes a workspace
type WorkspaceDescriptor struct {
	Name        string      `json:"name" yaml:"name"`
	Version     string      `json:"version" yaml:"version"`
	Timestamp   time.Time   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Contributor Contributor `json:"contributor,omitempty" yaml:"contributor,omitempty"`
	_           struct{}
}

// NewWorkspaceDescriptor builds a descriptor for a new workspace
func NewWorkspaceDescriptor(name string, contributor Contributor) *WorkspaceDescriptor {
	return &WorkspaceDescriptor{
		Name:        name,
		Version:     CurrentWorkspaceVersion,
		Timestamp:   time.Now().UTC(),
		Contributor: contributor,
	}
}

// CheckVersion verifies that the layout version of a workspace is supported
func (w WorkspaceDescriptor) CheckVersion() error {
	current := semver.MustParse(CurrentWorkspaceVersion)
	v, err := semver.ParseTolerant(w.Version)
	if err != nil {
		return fmt.Errorf("invalid workspace version %q: %w", w.Version, err)
	}
	if v.Major != current.Major {
		return fmt.Errorf("workspace version %s is not compatible with supported version %s", v, current)
	}
	return nil
}

// UnmarshalWorkspace reads a workspace descriptor
func UnmarshalWorkspace(b []byte) (*WorkspaceDescriptor, error) {
	var w WorkspaceDescriptor
	if err := yaml.Unmarshal(b, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// MarshalWorkspace serializes a workspace descriptor
func MarshalWorkspace(w *WorkspaceDescriptor) ([]byte, error) {
	return yaml.Marshal(w)
}

package model

import (
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v2"
)

// WorkingRevision is the revision id designating the working state of a workspace
const WorkingRevision = ""

// HeadRevision is the symbolic revision id designating the latest commit
const HeadRevision = "HEAD"

// RevisionDescriptor represents a commit: an immutable snapshot of the sources of a workspace.
type RevisionDescriptor struct {
	ID           string            `json:"id" yaml:"id"`
	Message      string            `json:"message" yaml:"message"`
	Parents      []string          `json:"parents,omitempty" yaml:"parents,omitempty"`
	Timestamp    time.Time         `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Contributors []Contributor     `json:"contributors" yaml:"contributors"`
	Sources      SourceDescriptors `json:"sources" yaml:"sources"`
	_            struct{}
}

// Clone yields a deep copy of the revision
func (r *RevisionDescriptor) Clone() *RevisionDescriptor {
	c := *r
	c.Parents = append([]string(nil), r.Parents...)
	c.Contributors = append([]Contributor(nil), r.Contributors...)
	c.Sources = r.Sources.Clone()
	return &c
}

// NewRevisionID yields a new unique, time-ordered revision id
func NewRevisionID(t time.Time) (string, error) {
	id, err := ksuid.NewRandomWithTime(t)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// IsRevisionID tells if a string is a well-formed full revision id
func IsRevisionID(id string) bool {
	_, err := ksuid.Parse(id)
	return err == nil
}

// RevisionDescriptors is a collection of revisions, sorted newest first
type RevisionDescriptors []RevisionDescriptor

func (r RevisionDescriptors) Len() int {
	return len(r)
}
func (r RevisionDescriptors) Less(i, j int) bool {
	if r[i].Timestamp.Equal(r[j].Timestamp) {
		return r[i].ID > r[j].ID
	}
	return r[i].Timestamp.After(r[j].Timestamp)
}
func (r RevisionDescriptors) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

// UnmarshalRevision reads a revision descriptor
func UnmarshalRevision(b []byte) (*RevisionDescriptor, error) {
	if b == nil {
		return nil, fmt.Errorf("received nil entry to unmarshall")
	}
	var r RevisionDescriptor
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MarshalRevision serializes a revision descriptor
func MarshalRevision(r *RevisionDescriptor) ([]byte, error) {
	return yaml.Marshal(r)
}

// UnmarshalSources reads the working tree sources
func UnmarshalSources(b []byte) (SourceDescriptors, error) {
	var s SourceDescriptors
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// MarshalSources serializes the working tree sources
func MarshalSources(s SourceDescriptors) ([]byte, error) {
	return yaml.Marshal(s)
}

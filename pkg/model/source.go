package model

import (
	"fmt"
	"sort"
	"unicode"
)

const (
	// RootStage is the name of the stage every source starts with
	RootStage = "root"

	// StageTypeSource is the type of the root stage: it loads the source data
	StageTypeSource = "source"

	// StageTypeTransform is the type of the stages applying a transform to the previous stage
	StageTypeTransform = "transform"
)

// SourceDescriptor defines how to obtain the raw data of a source
type SourceDescriptor struct {
	Name   string            `json:"name" yaml:"name"`
	URL    string            `json:"url" yaml:"url"`       // URL of the data as imported
	Path   string            `json:"path" yaml:"path"`     // Path to the data, relative to the workspace root
	Format string            `json:"format" yaml:"format"` // Format of the data
	Stages []StageDescriptor `json:"stages" yaml:"stages"`
	_      struct{}
}

// StageDescriptor defines a step in the build pipeline of a source
type StageDescriptor struct {
	Name      string            `json:"name" yaml:"name"`
	Type      string            `json:"type" yaml:"type"`
	Transform string            `json:"transform,omitempty" yaml:"transform,omitempty"`
	Params    map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	_         struct{}
}

// NewSourceDescriptor builds a source with its root stage
func NewSourceDescriptor(name, url, path, format string) SourceDescriptor {
	return SourceDescriptor{
		Name:   name,
		URL:    url,
		Path:   path,
		Format: format,
		Stages: []StageDescriptor{{Name: RootStage, Type: StageTypeSource}},
	}
}

// Stage finds a stage by name
func (s SourceDescriptor) Stage(name string) (StageDescriptor, bool) {
	for _, stage := range s.Stages {
		if stage.Name == name {
			return stage, true
		}
	}
	return StageDescriptor{}, false
}

// Head yields the last stage of the pipeline
func (s SourceDescriptor) Head() StageDescriptor {
	if len(s.Stages) == 0 {
		return StageDescriptor{Name: RootStage, Type: StageTypeSource}
	}
	return s.Stages[len(s.Stages)-1]
}

// Pipeline yields the stages up to (and including) the named stage
func (s SourceDescriptor) Pipeline(name string) ([]StageDescriptor, bool) {
	for i, stage := range s.Stages {
		if stage.Name == name {
			return s.Stages[:i+1], true
		}
	}
	return nil, false
}

// SourceDescriptors is a sortable collection of sources
type SourceDescriptors []SourceDescriptor

func (s SourceDescriptors) Len() int {
	return len(s)
}
func (s SourceDescriptors) Less(i, j int) bool {
	return s[i].Name < s[j].Name
}
func (s SourceDescriptors) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Find a source by name
func (s SourceDescriptors) Find(name string) (SourceDescriptor, bool) {
	for _, src := range s {
		if src.Name == name {
			return src, true
		}
	}
	return SourceDescriptor{}, false
}

// Clone yields a deep copy of the sources, sorted by name
func (s SourceDescriptors) Clone() SourceDescriptors {
	res := make(SourceDescriptors, 0, len(s))
	for _, src := range s {
		stages := make([]StageDescriptor, 0, len(src.Stages))
		for _, stage := range src.Stages {
			if stage.Params != nil {
				params := make(map[string]string, len(stage.Params))
				for k, v := range stage.Params {
					params[k] = v
				}
				stage.Params = params
			}
			stages = append(stages, stage)
		}
		src.Stages = stages
		res = append(res, src)
	}
	sort.Sort(res)
	return res
}

// ValidateName checks the name of a source or a stage.
//
// Names are used in revpaths, so they cannot contain separators such as ':', '.' or '@'.
func ValidateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("empty field: %s name is empty", kind)
	}
	for _, c := range name {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && !unicode.Is(unicode.Hyphen, c) && c != '_' {
			return fmt.Errorf("invalid name: %s name:%s contains unsupported character %q", kind, name, c)
		}
	}
	return nil
}

// ValidateSource checks a source descriptor and its stages
func ValidateSource(src SourceDescriptor) error {
	if err := ValidateName("source", src.Name); err != nil {
		return err
	}
	if src.Format == "" {
		return fmt.Errorf("empty field: format for source %s is empty", src.Name)
	}
	if len(src.Stages) == 0 || src.Stages[0].Name != RootStage || src.Stages[0].Type != StageTypeSource {
		return fmt.Errorf("invalid pipeline: source %s must start with the %q stage", src.Name, RootStage)
	}
	seen := make(map[string]struct{}, len(src.Stages))
	for _, stage := range src.Stages {
		if err := ValidateName("stage", stage.Name); err != nil {
			return err
		}
		if _, ok := seen[stage.Name]; ok {
			return fmt.Errorf("duplicate stage: stage %s appears more than once in source %s", stage.Name, src.Name)
		}
		seen[stage.Name] = struct{}{}
		if stage.Type == StageTypeTransform && stage.Transform == "" {
			return fmt.Errorf("empty field: transform for stage %s of source %s is empty", stage.Name, src.Name)
		}
	}
	return nil
}

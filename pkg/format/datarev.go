package format

import (
	"fmt"
	"path/filepath"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

const (
	datarevDescriptorFile = "dataset.yaml"
	datarevVersion        = 1
)

type datarevDescriptor struct {
	Version int            `yaml:"version"`
	Items   []dataset.Item `yaml:"items"`
}

// Datarev is the native format: a directory holding a dataset.yaml descriptor
func Datarev() Format {
	return Format{
		Name:   DefaultFormat,
		Detect: detectDatarev,
		Load:   loadDatarev,
		Save:   saveDatarev,
	}
}

func datarevDescriptorPath(fs afero.Fs, path string) (string, bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return "", false, err
	}
	if !info.IsDir() {
		return path, filepath.Base(path) == datarevDescriptorFile, nil
	}
	descriptor := filepath.Join(path, datarevDescriptorFile)
	ok, err := afero.Exists(fs, descriptor)
	return descriptor, ok, err
}

func detectDatarev(fs afero.Fs, path string) (bool, error) {
	descriptor, ok, err := datarevDescriptorPath(fs, path)
	if err != nil || !ok {
		return false, err
	}
	b, err := afero.ReadFile(fs, descriptor)
	if err != nil {
		return false, err
	}
	var header struct {
		Version int `yaml:"version"`
	}
	if err = yaml.Unmarshal(b, &header); err != nil {
		return false, err
	}
	return header.Version > 0 && header.Version <= datarevVersion, nil
}

func loadDatarev(fs afero.Fs, path string) ([]dataset.Item, error) {
	descriptor, ok, err := datarevDescriptorPath(fs, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no %s found in %s", datarevDescriptorFile, path)
	}
	b, err := afero.ReadFile(fs, descriptor)
	if err != nil {
		return nil, err
	}
	var d datarevDescriptor
	if err = yaml.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	if d.Version > datarevVersion {
		return nil, fmt.Errorf("unsupported dataset version %d", d.Version)
	}
	return d.Items, nil
}

func saveDatarev(fs afero.Fs, path string, items []dataset.Item) error {
	if err := fs.MkdirAll(path, 0755); err != nil {
		return err
	}
	if items == nil {
		items = []dataset.Item{}
	}
	b, err := yaml.Marshal(datarevDescriptor{Version: datarevVersion, Items: items})
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, filepath.Join(path, datarevDescriptorFile), b, 0644)
}

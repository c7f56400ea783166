package format

import (
	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/spf13/afero"
)

// DefaultFormat is the native format of datarev
const DefaultFormat = "datarev"

// Format knows how to recognize and load datasets of some kind
type Format struct {
	// Name identifies the format
	Name string

	// Detect probes a path. Detection may read files, but should only sniff headers or structure.
	Detect func(fs afero.Fs, path string) (bool, error)

	// Load reads all items from a path
	Load func(fs afero.Fs, path string) ([]dataset.Item, error)

	// Save writes all items to a path. Optional.
	Save func(fs afero.Fs, path string, items []dataset.Item) error
}

// CanSave tells if the format supports exporting datasets
func (f Format) CanSave() bool {
	return f.Save != nil
}

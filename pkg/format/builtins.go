package format

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/spf13/afero"
)

// Builtins yields the formats supported out of the box
func Builtins() []Format {
	return []Format{
		Datarev(),
		JSONL(),
		CSV(),
	}
}

// dataFiles lists the files with some extension which make up a dataset.
//
// A path to a file with the extension yields this file. A path to a directory yields all
// files with the extension directly under this directory, sorted by name.
func dataFiles(fs afero.Fs, path, ext string) ([]string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(path), ext) {
			return []string{path}, nil
		}
		return nil, nil
	}
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// subsetFromFile derives a subset name from a data file name
func subsetFromFile(file string) string {
	base := filepath.Base(file)
	subset := strings.TrimSuffix(base, filepath.Ext(base))
	if subset == dataset.DefaultSubset {
		return ""
	}
	return subset
}

// groupBySubset splits items per subset, in subset order
func groupBySubset(items []dataset.Item) ([]string, map[string][]dataset.Item) {
	groups := make(map[string][]dataset.Item)
	var subsets []string
	for _, item := range items {
		s := item.SubsetOrDefault()
		if _, ok := groups[s]; !ok {
			subsets = append(subsets, s)
		}
		groups[s] = append(groups[s], item)
	}
	sort.Strings(subsets)
	return subsets, groups
}

package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/spf13/afero"
)

const (
	csvFormat = "csv"
	csvExt    = ".csv"

	csvColumnID     = "id"
	csvColumnSubset = "subset"
	csvColumnMedia  = "media"
	csvColumnLabel  = "label"
)

// CSV reads datasets stored as comma separated values, with a header line.
//
// The "id" column is mandatory. "subset" and "media" columns map to the corresponding item
// fields, a "label" column adds a label annotation, other columns are stored as attributes.
// Without a "subset" column, the subset is given by the file name.
func CSV() Format {
	return Format{
		Name:   csvFormat,
		Detect: detectCSV,
		Load:   loadCSV,
	}
}

// readCSVHeader yields the normalized column names and the position of each name.
// With duplicate names, the first column wins.
func readCSVHeader(r *csv.Reader) ([]string, map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(header))
	columns := make(map[string]int, len(header))
	for i, name := range header {
		names[i] = strings.ToLower(strings.TrimSpace(name))
		if _, ok := columns[names[i]]; !ok {
			columns[names[i]] = i
		}
	}
	return names, columns, nil
}

func detectCSV(fs afero.Fs, path string) (bool, error) {
	files, err := dataFiles(fs, path, csvExt)
	if err != nil || len(files) == 0 {
		return false, err
	}
	f, err := fs.Open(files[0])
	if err != nil {
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	_, columns, err := readCSVHeader(csv.NewReader(f))
	if err != nil {
		return false, nil
	}
	_, ok := columns[csvColumnID]
	return ok, nil
}

func loadCSV(fs afero.Fs, path string) ([]dataset.Item, error) {
	files, err := dataFiles(fs, path, csvExt)
	if err != nil {
		return nil, err
	}
	var items []dataset.Item
	for _, file := range files {
		loaded, err := loadCSVFile(fs, file)
		if err != nil {
			return nil, err
		}
		items = append(items, loaded...)
	}
	return items, nil
}

func loadCSVFile(fs afero.Fs, file string) ([]dataset.Item, error) {
	f, err := fs.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	names, columns, err := readCSVHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", file, err)
	}
	idCol, ok := columns[csvColumnID]
	if !ok {
		return nil, fmt.Errorf("%s: missing %q column", file, csvColumnID)
	}

	subset := subsetFromFile(file)
	var items []dataset.Item
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		item := dataset.Item{ID: record[idCol], Subset: subset}
		for i, value := range record {
			if i != columns[names[i]] {
				continue
			}
			switch names[i] {
			case csvColumnID:
			case csvColumnSubset:
				if value != "" {
					item.Subset = value
				}
			case csvColumnMedia:
				item.Media = value
			case csvColumnLabel:
				if value != "" {
					item.Annotations = append(item.Annotations, dataset.Annotation{Type: "label", Label: value})
				}
			default:
				if item.Attributes == nil {
					item.Attributes = make(map[string]interface{})
				}
				item.Attributes[names[i]] = value
			}
		}
		if item.ID == "" {
			return nil, fmt.Errorf("%s: item has no id", file)
		}
		items = append(items, item)
	}
	return items, nil
}

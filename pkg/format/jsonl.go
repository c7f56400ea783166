package format

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/datarev/pkg/dataset"
	"github.com/spf13/afero"
)

const (
	jsonlFormat    = "jsonl"
	jsonlExt       = ".jsonl"
	maxJSONLLine   = 16 * 1024 * 1024
	jsonlSniffSize = 64 * 1024
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONL reads datasets stored as json lines: one item per line, one file per subset
func JSONL() Format {
	return Format{
		Name:   jsonlFormat,
		Detect: detectJSONL,
		Load:   loadJSONL,
		Save:   saveJSONL,
	}
}

func detectJSONL(fs afero.Fs, path string) (bool, error) {
	files, err := dataFiles(fs, path, jsonlExt)
	if err != nil || len(files) == 0 {
		return false, err
	}
	// sniff the first line of the first file
	f, err := fs.Open(files[0])
	if err != nil {
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), jsonlSniffSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var probe struct {
			ID *string `json:"id"`
		}
		if err := json.Unmarshal(line, &probe); err != nil {
			return false, nil
		}
		return probe.ID != nil, nil
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	// an empty file is a valid, empty subset
	return true, nil
}

func loadJSONL(fs afero.Fs, path string) ([]dataset.Item, error) {
	files, err := dataFiles(fs, path, jsonlExt)
	if err != nil {
		return nil, err
	}
	var items []dataset.Item
	for _, file := range files {
		loaded, err := loadJSONLFile(fs, file)
		if err != nil {
			return nil, err
		}
		items = append(items, loaded...)
	}
	return items, nil
}

func loadJSONLFile(fs afero.Fs, file string) ([]dataset.Item, error) {
	f, err := fs.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	subset := subsetFromFile(file)
	var items []dataset.Item
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var item dataset.Item
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", file, lineNo, err)
		}
		if item.ID == "" {
			return nil, fmt.Errorf("%s:%d: item has no id", file, lineNo)
		}
		if item.Subset == "" {
			item.Subset = subset
		}
		items = append(items, item)
	}
	return items, scanner.Err()
}

func saveJSONL(fs afero.Fs, path string, items []dataset.Item) error {
	if err := fs.MkdirAll(path, 0755); err != nil {
		return err
	}
	subsets, groups := groupBySubset(items)
	for _, subset := range subsets {
		var buf bytes.Buffer
		stream := json.BorrowStream(&buf)
		for _, item := range groups[subset] {
			stream.WriteVal(item)
			stream.WriteRaw("\n")
		}
		err := stream.Flush()
		json.ReturnStream(stream)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(fs, filepath.Join(path, subset+jsonlExt), buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

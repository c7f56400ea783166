package localfs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/oneconcern/datarev/pkg/dataset"
)

// Transform builds a dataset from the output of the previous stage
type Transform func(ds dataset.Dataset, params map[string]string) (dataset.Dataset, error)

const (
	// TransformSubset keeps the items of some subsets. Params: "subsets" (comma separated)
	TransformSubset = "subset"

	// TransformHead keeps the first items. Params: "count"
	TransformHead = "head"

	// TransformRenameSubset renames a subset. Params: "from", "to"
	TransformRenameSubset = "rename-subset"

	// TransformMatch keeps the items with an id, or media path, matching a glob pattern.
	// Params: "pattern", "field" (id or media, defaults to id)
	TransformMatch = "match"
)

func builtinTransforms() map[string]Transform {
	return map[string]Transform{
		TransformSubset:       subsetTransform,
		TransformHead:         headTransform,
		TransformRenameSubset: renameSubsetTransform,
		TransformMatch:        matchTransform,
	}
}

func subsetTransform(ds dataset.Dataset, params map[string]string) (dataset.Dataset, error) {
	param := params["subsets"]
	if param == "" {
		return nil, fmt.Errorf("%s: missing parameter %q", TransformSubset, "subsets")
	}
	keep := make(map[string]struct{})
	for _, s := range strings.Split(param, ",") {
		keep[strings.TrimSpace(s)] = struct{}{}
	}
	var items []dataset.Item
	for _, item := range ds.Items() {
		if _, ok := keep[item.SubsetOrDefault()]; ok {
			items = append(items, item)
		}
	}
	return dataset.FromItems(items, dataset.WithFormat(ds.Format())), nil
}

func headTransform(ds dataset.Dataset, params map[string]string) (dataset.Dataset, error) {
	count, err := strconv.Atoi(params["count"])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%s: invalid parameter %q: %q", TransformHead, "count", params["count"])
	}
	items := ds.Items()
	if count < len(items) {
		items = items[:count]
	}
	return dataset.FromItems(items, dataset.WithFormat(ds.Format())), nil
}

func renameSubsetTransform(ds dataset.Dataset, params map[string]string) (dataset.Dataset, error) {
	from, to := params["from"], params["to"]
	if from == "" || to == "" {
		return nil, fmt.Errorf("%s: parameters %q and %q are required", TransformRenameSubset, "from", "to")
	}
	items := ds.Items()
	for i := range items {
		if items[i].SubsetOrDefault() == from {
			items[i].Subset = to
		}
	}
	return dataset.FromItems(items, dataset.WithFormat(ds.Format())), nil
}

func matchTransform(ds dataset.Dataset, params map[string]string) (dataset.Dataset, error) {
	pattern := params["pattern"]
	if pattern == "" {
		return nil, fmt.Errorf("%s: missing parameter %q", TransformMatch, "pattern")
	}
	field := func(item dataset.Item) string { return item.ID }
	switch params["field"] {
	case "", "id":
	case "media":
		field = func(item dataset.Item) string { return item.Media }
	default:
		return nil, fmt.Errorf("%s: invalid parameter %q: %q", TransformMatch, "field", params["field"])
	}
	var items []dataset.Item
	for _, item := range ds.Items() {
		ok, err := doublestar.Match(pattern, field(item))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", TransformMatch, err)
		}
		if ok {
			items = append(items, item)
		}
	}
	return dataset.FromItems(items, dataset.WithFormat(ds.Format())), nil
}

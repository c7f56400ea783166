package dataset

import (
	"fmt"
	"sort"
)

// Dataset is the read-only query capability of a resolved dataset
type Dataset interface {
	// Len yields the number of items
	Len() int
	// Items yields all items, ordered by subset then id
	Items() []Item
	// Get retrieves an item. An empty subset stands for the default subset.
	Get(id, subset string) (Item, bool)
	// Subsets yields the sorted names of subsets
	Subsets() []string
	// Format yields the format the dataset was loaded from, if any
	Format() string
	// Origin describes where the dataset comes from (path, or workspace revision and target)
	Origin() string
}

var _ Dataset = &memDataset{}

type memDataset struct {
	format string
	origin string
	items  []Item
	index  map[itemKey]int
}

// Option sets properties of an in-memory dataset
type Option func(*memDataset)

// WithFormat records the format of a dataset
func WithFormat(format string) Option {
	return func(d *memDataset) {
		d.format = format
	}
}

// WithOrigin records where a dataset comes from
func WithOrigin(origin string) Option {
	return func(d *memDataset) {
		d.origin = origin
	}
}

// FromItems builds an in-memory dataset.
//
// Items with the same id and subset are merged: the last one wins.
func FromItems(items []Item, opts ...Option) Dataset {
	d := &memDataset{
		index: make(map[itemKey]int, len(items)),
	}
	for _, apply := range opts {
		apply(d)
	}
	for _, item := range items {
		k := item.key()
		if pos, ok := d.index[k]; ok {
			d.items[pos] = item
			continue
		}
		d.index[k] = len(d.items)
		d.items = append(d.items, item)
	}
	sort.SliceStable(d.items, func(i, j int) bool {
		si, sj := d.items[i].SubsetOrDefault(), d.items[j].SubsetOrDefault()
		if si != sj {
			return si < sj
		}
		return d.items[i].ID < d.items[j].ID
	})
	for i, item := range d.items {
		d.index[item.key()] = i
	}
	return d
}

// Concat builds a dataset from several datasets
func Concat(origin string, datasets ...Dataset) Dataset {
	var items []Item
	for _, ds := range datasets {
		items = append(items, ds.Items()...)
	}
	return FromItems(items, WithOrigin(origin))
}

// Empty builds a dataset with no items
func Empty(origin string) Dataset {
	return FromItems(nil, WithOrigin(origin))
}

func (d *memDataset) Len() int {
	return len(d.items)
}

func (d *memDataset) Items() []Item {
	res := make([]Item, len(d.items))
	copy(res, d.items)
	return res
}

func (d *memDataset) Get(id, subset string) (Item, bool) {
	pos, ok := d.index[Item{ID: id, Subset: subset}.key()]
	if !ok {
		return Item{}, false
	}
	return d.items[pos], true
}

func (d *memDataset) Subsets() []string {
	seen := make(map[string]struct{})
	var res []string
	for _, item := range d.items {
		s := item.SubsetOrDefault()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	sort.Strings(res)
	return res
}

func (d *memDataset) Format() string {
	return d.format
}

func (d *memDataset) Origin() string {
	return d.origin
}

func (d *memDataset) String() string {
	return fmt.Sprintf("dataset %s (%d items, format: %q)", d.origin, len(d.items), d.format)
}

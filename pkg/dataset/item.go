package dataset

// DefaultSubset is the subset of items which don't declare one
const DefaultSubset = "default"

// Item is a single entry of a dataset
type Item struct {
	ID          string                 `json:"id" yaml:"id"`
	Subset      string                 `json:"subset,omitempty" yaml:"subset,omitempty"`
	Media       string                 `json:"media,omitempty" yaml:"media,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Annotations []Annotation           `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Annotation is a labeled piece of information attached to an item
type Annotation struct {
	Type       string                 `json:"type" yaml:"type"`
	Label      string                 `json:"label,omitempty" yaml:"label,omitempty"`
	Points     []float64              `json:"points,omitempty" yaml:"points,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// SubsetOrDefault yields the subset of the item
func (i Item) SubsetOrDefault() string {
	if i.Subset == "" {
		return DefaultSubset
	}
	return i.Subset
}

type itemKey struct {
	id     string
	subset string
}

func (i Item) key() itemKey {
	return itemKey{id: i.ID, subset: i.SubsetOrDefault()}
}

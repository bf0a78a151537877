package types

// MaxItemLength is the maximum number of runes the entry form accepts.
const MaxItemLength = 55

// Task is one entry of the task list.
type Task struct {
	ID       string   `json:"id,omitempty"` // UUID v7, generated on creation.
	Item     string   `json:"item"`         // Free text, trimmed by the form.
	Category Category `json:"category"`     // One of RecordCategories.
}

// SameContent reports whether t and o carry identical text and category.
// Duplicate detection on add uses this comparison.
func (t Task) SameContent(o Task) bool {
	return t.Item == o.Item && t.Category == o.Category
}

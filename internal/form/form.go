// Package form implements the task entry form: a text field whose content is
// trimmed, checked and forwarded to the task store.
package form

import (
	"strings"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Adder is the part of the task store the form needs.
type Adder interface {
	Add(item string, category types.Category) (types.Task, error)
}

// Form holds the current input text.
type Form struct {
	store Adder
	input string
}

// New returns an empty form forwarding to store.
func New(store Adder) *Form {
	return &Form{store: store}
}

// SetInput replaces the field content, truncated to MaxItemLength runes.
func (f *Form) SetInput(text string) {
	f.input = Truncate(text)
}

// Input returns the field content.
func (f *Form) Input() string {
	return f.input
}

// Submit forwards the trimmed input with category to the store.
//
// Empty input returns ErrEmptyInput and the All pseudo-category returns
// ErrInvalidCategory; neither touches the store or the field. Otherwise
// the field is cleared once the store has been called, even when the store
// rejects the item as a duplicate.
func (f *Form) Submit(category types.Category) (types.Task, error) {
	item := strings.TrimSpace(f.input)
	if item == "" {
		return types.Task{}, types.ErrEmptyInput
	}
	if !category.IsRecord() {
		return types.Task{}, types.ErrInvalidCategory
	}
	task, err := f.store.Add(item, category)
	f.input = ""
	return task, err
}

// SubmitText sets the field to raw and submits it.
func (f *Form) SubmitText(raw string, category types.Category) (types.Task, error) {
	f.SetInput(raw)
	return f.Submit(category)
}

// Truncate cuts s to at most MaxItemLength runes.
func Truncate(s string) string {
	n := 0
	for i := range s {
		if n == types.MaxItemLength {
			return s[:i]
		}
		n++
	}
	return s
}

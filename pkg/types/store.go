package types

import (
	"errors"
	"iter"
)

// TaskStore holds the ordered task list and persists it on every change.
// Positions index the full, unfiltered list.
type TaskStore interface {
	// Add appends a task. Returns ErrEmptyInput for blank items,
	// ErrDuplicate when a task with the same item and category exists and
	// ErrInvalidCategory for non-record categories.
	Add(item string, category Category) (Task, error)

	// Update replaces the task with the given ID without a duplicate check.
	Update(id, item string, category Category) error

	// UpdateAt replaces the task at pos without a duplicate check.
	UpdateAt(pos int, item string, category Category) error

	// Delete removes the task with the given ID.
	Delete(id string) error

	// DeleteAt removes the task at pos; later positions shift down by one.
	DeleteAt(pos int) error

	// List yields the tasks passing filter in list order. The sequence can
	// be ranged over more than once.
	List(filter Category) iter.Seq[Task]

	// Entries is List with each task's position in the full list.
	Entries(filter Category) iter.Seq2[int, Task]

	// Get returns the task with the given ID.
	Get(id string) (Task, error)

	// Len returns the number of tasks.
	Len() int
}

// Task operation errors.
var (
	ErrEmptyInput      = errors.New("item must not be empty")
	ErrDuplicate       = errors.New("task already exists in this category")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotFound        = errors.New("task not found")
	ErrInvalidPosition = errors.New("position out of range")
	ErrAmbiguousRef    = errors.New("reference matches more than one task")
	ErrStorageParse    = errors.New("stored task list is malformed")
)

package types

import (
	"slices"
	"strings"
)

// Category tags a task and doubles as the list filter.
type Category string

// Category values. CategoryAll is a filter pseudo-category and is never
// assigned to a task.
const (
	CategoryAll       Category = "All"
	CategoryGroceries Category = "Groceries"
	CategoryCollege   Category = "College"
	CategoryPayments  Category = "Payments"
)

// Categories lists every selectable option in display order.
var Categories = []Category{
	CategoryAll,
	CategoryGroceries,
	CategoryCollege,
	CategoryPayments,
}

// RecordCategories lists the categories a task may carry.
var RecordCategories = []Category{
	CategoryGroceries,
	CategoryCollege,
	CategoryPayments,
}

// ParseCategory matches s against the known categories, ignoring case and
// surrounding whitespace. Returns ErrInvalidCategory if nothing matches.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// IsRecord reports whether c may be assigned to a task.
func (c Category) IsRecord() bool {
	return slices.Contains(RecordCategories, c)
}

// Matches reports whether a task tagged with t passes the filter c.
func (c Category) Matches(t Category) bool {
	return c == CategoryAll || c == t
}

// Next returns the option after c in Categories, wrapping around.
func (c Category) Next() Category {
	return c.step(1)
}

// Prev returns the option before c in Categories, wrapping around.
func (c Category) Prev() Category {
	return c.step(-1)
}

func (c Category) step(delta int) Category {
	n := len(Categories)
	for i, o := range Categories {
		if o == c {
			return Categories[((i+delta)%n+n)%n]
		}
	}
	return CategoryAll
}

func (c Category) String() string { return string(c) }

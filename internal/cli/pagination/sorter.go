package pagination

import (
	"fmt"
	"sort"
)

// Sorter sorts items of one type by named fields.
type Sorter[T any] struct {
	less map[string]func(a, b T) bool
}

// NewSorter creates a Sorter from per-field ascending comparisons.
func NewSorter[T any](fields map[string]func(a, b T) bool) *Sorter[T] {
	return &Sorter[T]{less: fields}
}

// IsValidField reports whether field can be sorted on.
func (s *Sorter[T]) IsValidField(field string) bool {
	_, ok := s.less[field]
	return ok
}

// ValidFields returns the sortable fields in alphabetical order.
func (s *Sorter[T]) ValidFields() []string {
	fields := make([]string, 0, len(s.less))
	for f := range s.less {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of items. An empty field returns items
// unchanged; an unknown field returns ErrInvalidSortField. Sorting is stable
// in both directions.
func (s *Sorter[T]) Sort(items []T, field, order string) ([]T, error) {
	if field == "" {
		return items, nil
	}
	less, ok := s.less[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrInvalidSortField, field, s.ValidFields())
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted, nil
}

package listview

import (
	"slices"
	"sync"
)

// Ticket identifies one fetch issued for a view
type Ticket uint64

// View is the per-session state of one list page: the latest fetched result
// set, its error, the sort configuration and the row selection. Fetch results
// are committed against the ticket issued when the fetch started, and results
// of superseded fetches are discarded.
type View[T any] struct {
	mu        sync.Mutex
	latest    Ticket
	committed Ticket
	rows      []T
	err       error
	criteria  Criteria
	sort      Sort
	selection *Selection
	idOf      func(T) string
}

// NewView creates an empty view; idOf returns a record's identifier
func NewView[T any](idOf func(T) string) *View[T] {
	return &View[T]{selection: NewSelection(), idOf: idOf}
}

// Begin issues the ticket for a new fetch
func (v *View[T]) Begin() Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latest++
	return v.latest
}

// BeginWith records the criteria of a new fetch and issues its ticket
func (v *View[T]) BeginWith(c Criteria) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = c
	v.latest++
	return v.latest
}

// Commit stores the outcome of the fetch identified by t. It returns false,
// leaving the view untouched, when a newer fetch has been issued since.
// A failed fetch leaves an empty result set. Selected ids missing from the
// new result set are dropped.
func (v *View[T]) Commit(t Ticket, rows []T, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t != v.latest || t <= v.committed {
		return false
	}

	v.committed = t
	v.err = err
	if err != nil {
		v.rows = nil
	} else {
		v.rows = slices.Clone(rows)
	}

	ids := make([]string, len(v.rows))
	for i, r := range v.rows {
		ids[i] = v.idOf(r)
	}
	v.selection.Retain(ids)
	return true
}

// Rows returns a copy of the committed result set and its error
func (v *View[T]) Rows() ([]T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.rows), v.err
}

// Loaded reports whether any fetch has been committed
func (v *View[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.committed > 0
}

// Criteria returns the filter criteria of the last fetch
func (v *View[T]) Criteria() Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// SetCriteria records the filter criteria
func (v *View[T]) SetCriteria(c Criteria) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = c
}

// Sort returns the sort configuration
func (v *View[T]) Sort() Sort {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sort
}

// SetSort replaces the sort configuration
func (v *View[T]) SetSort(s Sort) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = s
}

// ToggleSort applies a header click to the sort configuration
func (v *View[T]) ToggleSort(key string) Sort {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = v.sort.Toggle(key)
	return v.sort
}

// ToggleOne flips the selection of id
func (v *View[T]) ToggleOne(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.ToggleOne(id)
}

// ToggleAll selects exactly ids, or none when they are all selected
// already. Callers pass the ids of the rows currently shown.
func (v *View[T]) ToggleAll(ids []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.ToggleAll(ids)
}

// RetainSelection deselects every id not in ids
func (v *View[T]) RetainSelection(ids []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Retain(ids)
}

// ClearSelection deselects everything
func (v *View[T]) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Clear()
}

// IsSelected reports whether id is selected
func (v *View[T]) IsSelected(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Has(id)
}

// SelectedCount returns the number of selected rows
func (v *View[T]) SelectedCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Len()
}

// SelectedIDs returns the selected ids in sorted order
func (v *View[T]) SelectedIDs() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.IDs()
}

// AllSelected reports whether ids is non-empty and every one is selected
func (v *View[T]) AllSelected(ids []string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !v.selection.Has(id) {
			return false
		}
	}
	return true
}

// IDsOf maps rows to their ids, keeping order
func (v *View[T]) IDsOf(rows []T) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = v.idOf(r)
	}
	return ids
}

// Selected returns the committed rows whose ids are selected, in committed order
func (v *View[T]) Selected() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []T
	for _, r := range v.rows {
		if v.selection.Has(v.idOf(r)) {
			out = append(out, r)
		}
	}
	return out
}

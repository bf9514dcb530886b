package datastore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryClient implements Client over in-process collections.
// It backs demos and tests, and can be told to fail per collection.
type MemoryClient struct {
	mu          sync.RWMutex
	collections map[string][]Row
	aliases     map[string]string
	failures    map[string]error
}

// NewMemoryClient creates a client with the given empty collections
func NewMemoryClient(collections ...string) *MemoryClient {
	m := &MemoryClient{
		collections: make(map[string][]Row),
		aliases:     make(map[string]string),
		failures:    make(map[string]error),
	}
	for _, name := range collections {
		m.collections[name] = nil
	}
	return m
}

// Alias exposes a collection under another name, the way a view projects a table
func (m *MemoryClient) Alias(view, collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aliases[view] = collection
}

// Seed appends rows to a collection, creating it when needed
func (m *MemoryClient) Seed(collection string, rows ...Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.collections[collection] = append(m.collections[collection], copyRow(r))
	}
	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = nil
	}
}

// Drop removes a collection so that queries against it report NotFound
func (m *MemoryClient) Drop(collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections, collection)
}

// Fail makes every call on the collection return err; a nil err clears it
func (m *MemoryClient) Fail(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, collection)
		return
	}
	m.failures[collection] = err
}

// Rows returns a copy of a collection's rows in insertion order
func (m *MemoryClient) Rows(collection string) []Row {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.collections[m.resolve(collection)]
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = copyRow(r)
	}
	return out
}

// Query filters, orders and slices a collection
func (m *MemoryClient) Query(ctx context.Context, q Query) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, Classify(q.Collection, err)
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, err := m.lookup(q.Collection)
	if err != nil {
		return nil, err
	}

	var out []Row
	for _, r := range rows {
		if matchesAll(r, q.Filters) {
			out = append(out, copyRow(r))
		}
	}

	if len(q.Order) > 0 {
		slices.SortStableFunc(out, func(a, b Row) int {
			for _, o := range q.Order {
				c := compareValues(a[o.Column], b[o.Column])
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return []Row{}, nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Insert appends a record; a duplicate id is a Validation failure
func (m *MemoryClient) Insert(ctx context.Context, collection string, row Row) error {
	if err := ctx.Err(); err != nil {
		return Classify(collection, err)
	}
	if err := validateRow(collection, row); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.lookup(collection)
	if err != nil {
		return err
	}

	if id, ok := row["id"]; ok {
		for _, r := range rows {
			if r["id"] == id {
				return NewError(KindValidation, collection, "23505", fmt.Sprintf("duplicate id %v", id))
			}
		}
	}

	name := m.resolve(collection)
	m.collections[name] = append(m.collections[name], copyRow(row))
	return nil
}

// Update merges patch into the record with the given id
func (m *MemoryClient) Update(ctx context.Context, collection, id string, patch Row) error {
	if err := ctx.Err(); err != nil {
		return Classify(collection, err)
	}
	if err := validateRow(collection, patch); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.lookup(collection)
	if err != nil {
		return err
	}

	for _, r := range rows {
		if fmt.Sprint(r["id"]) == id {
			for k, v := range patch {
				r[k] = v
			}
			return nil
		}
	}
	return NewError(KindNotFound, collection, "no_rows", fmt.Sprintf("no record with id %q", id))
}

// lookup returns the rows of a collection; callers hold the lock
func (m *MemoryClient) lookup(collection string) ([]Row, error) {
	if err, ok := m.failures[collection]; ok {
		return nil, Classify(collection, err)
	}
	rows, ok := m.collections[m.resolve(collection)]
	if !ok {
		return nil, NewError(KindNotFound, collection, CodeUndefinedTable,
			fmt.Sprintf("relation %q does not exist", collection))
	}
	return rows, nil
}

func (m *MemoryClient) resolve(collection string) string {
	if target, ok := m.aliases[collection]; ok {
		return target
	}
	return collection
}

func matchesAll(r Row, filters []Filter) bool {
	for _, f := range filters {
		if !matches(r[f.Column], f) {
			return false
		}
	}
	return true
}

func matches(v any, f Filter) bool {
	switch f.Op {
	case OpEq:
		return v != nil && compareValues(v, f.Value) == 0
	case OpILike:
		if v == nil {
			return false
		}
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(fmt.Sprint(f.Value)))
	case OpGte:
		return v != nil && compareValues(v, f.Value) >= 0
	case OpLte:
		return v != nil && compareValues(v, f.Value) <= 0
	case OpIn:
		if v == nil {
			return false
		}
		switch values := f.Value.(type) {
		case []string:
			return slices.Contains(values, fmt.Sprint(v))
		case []any:
			for _, candidate := range values {
				if compareValues(v, candidate) == 0 {
					return true
				}
			}
		}
	}
	return false
}

// compareValues orders nil first, then compares times, numbers and text
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	if na, ok := toFloat(a); ok {
		if nb, ok := toFloat(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

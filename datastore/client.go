// Package datastore is the generic data access client used by the repositories.
// Every call targets a named collection (a table or a view) and reports
// failures as *Error values carrying a Kind.
package datastore

import "context"

// Row is one record keyed by column name
type Row map[string]any

// Op is a filter operator
type Op string

const (
	OpEq    Op = "eq"
	OpILike Op = "ilike" // case-insensitive substring match
	OpGte   Op = "gte"
	OpLte   Op = "lte"
	OpIn    Op = "in"
)

// Filter is a single predicate; all filters of a query are combined with AND
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Order is one ordering key
type Order struct {
	Column string
	Desc   bool
}

// Query describes a read against a collection
type Query struct {
	Collection string
	Filters    []Filter
	Order      []Order
	Limit      int
	Offset     int
}

// Client executes queries and mutations against named collections
type Client interface {
	Query(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, collection string, row Row) error
	Update(ctx context.Context, collection, id string, patch Row) error
}

// Eq returns an equality filter
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// ILike returns a case-insensitive substring filter
func ILike(column, substring string) Filter {
	return Filter{Column: column, Op: OpILike, Value: substring}
}

// Gte returns a greater-or-equal filter
func Gte(column string, value any) Filter {
	return Filter{Column: column, Op: OpGte, Value: value}
}

// Lte returns a less-or-equal filter
func Lte(column string, value any) Filter {
	return Filter{Column: column, Op: OpLte, Value: value}
}

// In returns a membership filter; value must be a slice
func In(column string, values []string) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// Where appends filters to the query
func (q Query) Where(filters ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), filters...)
	return q
}

// OrderBy appends an ordering key
func (q Query) OrderBy(column string, desc bool) Query {
	q.Order = append(append([]Order(nil), q.Order...), Order{Column: column, Desc: desc})
	return q
}

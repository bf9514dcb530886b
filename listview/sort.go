// Package listview derives the rows a list page renders from the latest
// fetched result set: filtering, sorting, pagination and row selection.
package listview

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/blogem/regdesk/models"
)

// Kind selects how a field's values are compared
type Kind int

const (
	Text Kind = iota
	Number
	Time
)

// Field is a sortable column of T
type Field[T any] struct {
	Key   string
	Kind  Kind
	Value func(T) any
}

// Direction of a sort
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active sort configuration. An empty Key means fetch order.
type Sort struct {
	Key string
	Dir Direction
}

// Toggle returns the configuration after a click on key: the active key flips
// direction, any other key becomes active ascending.
func (s Sort) Toggle(key string) Sort {
	if key == "" {
		return s
	}
	if s.Key == key {
		if s.Dir == Desc {
			return Sort{Key: key, Dir: Asc}
		}
		return Sort{Key: key, Dir: Desc}
	}
	return Sort{Key: key, Dir: Asc}
}

// Indicator returns the arrow shown next to a column header
func (s Sort) Indicator(key string) string {
	if s.Key != key {
		return ""
	}
	if s.Dir == Desc {
		return "↓"
	}
	return "↑"
}

// ParseDirection maps "desc" to Desc and anything else to Asc
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// ApplySort returns records ordered by the configured field. With no key, or
// an unknown one, records are returned unchanged. The input is never
// modified, and records with equal keys keep their fetch order.
func ApplySort[T any](records []T, s Sort, fields []Field[T]) []T {
	if s.Key == "" {
		return records
	}

	idx := slices.IndexFunc(fields, func(f Field[T]) bool { return f.Key == s.Key })
	if idx < 0 {
		return records
	}
	field := fields[idx]

	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b T) int {
		c := compare(field.Kind, field.Value(a), field.Value(b))
		if s.Dir == Desc {
			return -c
		}
		return c
	})
	return out
}

func compare(kind Kind, a, b any) int {
	switch kind {
	case Number:
		return cmpFloat(toNumber(a), toNumber(b))
	case Time:
		return toTime(a).Compare(toTime(b))
	default:
		return strings.Compare(strings.ToLower(toText(a)), strings.ToLower(toText(b)))
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	}
	return fmt.Sprint(v)
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f
	}
	return 0
}

// toTime reads instants given as time values or as text; unparseable values
// sort as the zero time
func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		if parsed, err := models.ParseTimestamp(t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

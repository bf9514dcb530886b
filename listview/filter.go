package listview

import (
	"strings"
	"time"

	"github.com/blogem/regdesk/models"
)

// All disables a selector or the date range
const All = "all"

// Date range keys
const (
	RangeToday  = "today"
	RangeWeek   = "week"
	RangeMonth  = "month"
	RangeCustom = "custom"
)

// Criteria are the independent predicates of a list page. Empty or "all"
// values are not applied; the rest are combined with AND.
type Criteria struct {
	Search    string
	Selectors map[string]string
	DateRange string
	From      string // YYYY-MM-DD, custom range only
	To        string
}

// Selector returns the active value for a selector, "" when not applied
func (c Criteria) Selector(key string) string {
	v := strings.TrimSpace(c.Selectors[key])
	if v == "" || strings.EqualFold(v, All) {
		return ""
	}
	return v
}

// IsEmpty reports whether no predicate is active
func (c Criteria) IsEmpty() bool {
	if strings.TrimSpace(c.Search) != "" {
		return false
	}
	for key := range c.Selectors {
		if c.Selector(key) != "" {
			return false
		}
	}
	_, ok := c.Range(time.Now())
	return !ok
}

// Range resolves the date range relative to now. ok is false when no range applies.
func (c Criteria) Range(now time.Time) (r models.DateRange, ok bool) {
	switch c.DateRange {
	case RangeToday:
		return models.DateRange{Start: models.StartOfDay(now)}, true
	case RangeWeek:
		return models.DateRange{Start: now.AddDate(0, 0, -7)}, true
	case RangeMonth:
		return models.DateRange{Start: now.AddDate(0, 0, -30)}, true
	case RangeCustom:
		if from, err := models.ParseDate(c.From); err == nil {
			r.Start = from
		}
		if to, err := models.ParseDate(c.To); err == nil {
			r.End = to.Add(24*time.Hour - time.Nanosecond)
		}
		return r, !r.Start.IsZero() || !r.End.IsZero()
	}
	return models.DateRange{}, false
}

// Schema tells the filter how to read a record type
type Schema[T any] struct {
	// Search lists the text fields matched by the search string
	Search []func(T) string
	// Selectors read the value compared against each selector
	Selectors map[string]func(T) string
	// Date reads the instant tested against the date range
	Date func(T) time.Time
}

// ApplyFilters keeps the records that satisfy every active predicate, in
// input order.
func ApplyFilters[T any](records []T, c Criteria, schema Schema[T], now time.Time) []T {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	dateRange, hasRange := c.Range(now)
	if schema.Date == nil {
		hasRange = false
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if search != "" && !matchesSearch(rec, search, schema.Search) {
			continue
		}
		if !matchesSelectors(rec, c, schema.Selectors) {
			continue
		}
		if hasRange && !dateRange.Contains(schema.Date(rec)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch[T any](rec T, search string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(rec)), search) {
			return true
		}
	}
	return false
}

func matchesSelectors[T any](rec T, c Criteria, selectors map[string]func(T) string) bool {
	for key, read := range selectors {
		want := c.Selector(key)
		if want == "" {
			continue
		}
		if !strings.EqualFold(read(rec), want) {
			return false
		}
	}
	return true
}

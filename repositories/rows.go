package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
)

// timeNow is the clock used to derive aging; tests replace it
var timeNow = time.Now

func rowString(r datastore.Row, key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func rowInt(r datastore.Row, key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func rowBool(r datastore.Row, key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(v)
		return b || v == "t"
	}
	return false
}

// rowTime reads a timestamp stored either natively or as text
func rowTime(r datastore.Row, key string) (time.Time, bool) {
	switch v := r[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		if v == "" {
			return time.Time{}, false
		}
		t, err := models.ParseTimestamp(v)
		return t, err == nil
	}
	return time.Time{}, false
}

func rowTimePtr(r datastore.Row, key string) *time.Time {
	if t, ok := rowTime(r, key); ok {
		return &t
	}
	return nil
}

func rowJSON(r datastore.Row, key string) map[string]any {
	raw := rowString(r, key)
	if raw == "" {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return map[string]any{"raw": raw}
	}
	return out
}

// nullable stores empty strings as NULL
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

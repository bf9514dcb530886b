// Package export serializes list rows into CSV downloads.
package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ContentType is the MIME type of every CSV download
const ContentType = "text/csv;charset=utf-8"

// Column pairs a header label with the accessor producing the cell value
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// CSV renders the header row followed by one row per record, in input order
func CSV[T any](records []T, columns []Column[T]) []byte {
	var buf bytes.Buffer

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	writeRow(&buf, headers)

	cells := make([]string, len(columns))
	for _, rec := range records {
		for i, c := range columns {
			cells[i] = Text(c.Value(rec))
		}
		writeRow(&buf, cells)
	}
	return buf.Bytes()
}

// Rows renders pre-built string rows, the first being the header
func Rows(rows [][]string) []byte {
	var buf bytes.Buffer
	for _, r := range rows {
		writeRow(&buf, r)
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(Escape(cell))
	}
	buf.WriteByte('\n')
}

// Escape quotes a field containing a double quote, comma or newline and
// doubles its inner quotes. Other fields are written as-is.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\",\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Text converts a cell value to text; nil and nil pointers become "".
// fmt recovers a String method panicking on a nil receiver as "<nil>".
func Text(v any) string {
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
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	}
	if s := fmt.Sprint(v); s != nilText {
		return s
	}
	return ""
}

const nilText = "<nil>"

// Filename returns "<subject>_<YYYY-MM-DD>.csv"
func Filename(subject string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", subject, now.Format("2006-01-02"))
}

// Write sends body as a CSV attachment
func Write(w http.ResponseWriter, filename string, body []byte) error {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	_, err := w.Write(body)
	return err
}

package export

import (
	"encoding/csv"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID       string
	Business string
	Assignee *string
	Aging    int
	Created  time.Time
}

var columns = []Column[row]{
	{Header: "Application ID", Value: func(r row) any { return r.ID }},
	{Header: "Business Name", Value: func(r row) any { return r.Business }},
	{Header: "Assignee", Value: func(r row) any { return r.Assignee }},
	{Header: "Aging (days)", Value: func(r row) any { return r.Aging }},
	{Header: "Created", Value: func(r row) any { return r.Created }},
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"plain":            "plain",
		`Silva, "Traders"`: `"Silva, ""Traders"""`,
		"a,b":              `"a,b"`,
		"line\nbreak":      "\"line\nbreak\"",
		`say "hi"`:         `"say ""hi"""`,
		" leading space":   " leading space",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Escape(in), "input %q", in)
	}
}

func TestCSV_RoundTripsThroughStandardParser(t *testing.T) {
	rita := "Rita"
	records := []row{
		{ID: "APP-2", Business: `Silva, "Traders"`, Assignee: &rita, Aging: 7,
			Created: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{ID: "APP-1", Business: "Multi\nLine Ltd"},
	}

	out := CSV(records, columns)
	assert.Contains(t, string(out), `"Silva, ""Traders"""`)

	parsed, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	assert.Equal(t, []string{"Application ID", "Business Name", "Assignee", "Aging (days)", "Created"}, parsed[0])
	assert.Equal(t, []string{"APP-2", `Silva, "Traders"`, "Rita", "7", "2024-03-01T09:30:00Z"}, parsed[1])
	// nil and zero values render empty, order follows the input
	assert.Equal(t, []string{"APP-1", "Multi\nLine Ltd", "", "0", ""}, parsed[2])
}

func TestCSV_HeadersAreEscapedToo(t *testing.T) {
	cols := []Column[row]{{Header: "Name, Full", Value: func(r row) any { return r.ID }}}
	assert.Equal(t, "\"Name, Full\"\nx\n", string(CSV([]row{{ID: "x"}}, cols)))
}

func TestCSV_EmptyInputHasHeaderOnly(t *testing.T) {
	assert.Equal(t, "Application ID,Business Name,Assignee,Aging (days),Created\n", string(CSV(nil, columns)))
}

type reviewer struct{ name string }

func (r *reviewer) String() string { return r.name }

func TestText(t *testing.T) {
	name := "Rita"
	var noDays *int
	var noReviewer *reviewer
	var noTime *time.Time

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string pointer", &name, "Rita"},
		{"nil int pointer", noDays, ""},
		{"nil time pointer", noTime, ""},
		{"zero time", time.Time{}, ""},
		{"stringer", &reviewer{name: "Ben"}, "Ben"},
		{"nil stringer", noReviewer, ""},
		{"float", 2.5, "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.value))
		})
	}
}

func TestRows(t *testing.T) {
	out := Rows([][]string{{"Metric", "Value"}, {"Approval Rate", "50%"}})
	assert.Equal(t, "Metric,Value\nApproval Rate,50%\n", string(out))
}

func TestFilenameAndWrite(t *testing.T) {
	now := time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)
	name := Filename("applications", now)
	assert.Equal(t, "applications_2024-06-10.csv", name)

	rec := httptest.NewRecorder()
	require.NoError(t, Write(rec, name, []byte("a,b\n")))
	assert.Equal(t, "text/csv;charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="applications_2024-06-10.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}

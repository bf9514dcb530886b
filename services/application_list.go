package services

import (
	"time"

	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/listview"
	"github.com/blogem/regdesk/models"
)

// Selector keys on the application list
const (
	SelectorStatus = "status"
	SelectorType   = "type"
)

// ApplicationView is the per-session state of the application list
type ApplicationView = listview.View[models.Application]

// NewApplicationView creates empty application list state
func NewApplicationView() *ApplicationView {
	return listview.NewView(func(a models.Application) string { return a.ID })
}

// ApplicationSchema defines the searchable fields and selectors of the list
var ApplicationSchema = listview.Schema[models.Application]{
	Search: []func(models.Application) string{
		func(a models.Application) string { return a.ID },
		func(a models.Application) string { return a.ApplicantName },
		func(a models.Application) string { return a.ApplicantEmail },
		func(a models.Application) string { return a.BusinessName },
	},
	Selectors: map[string]func(models.Application) string{
		SelectorStatus: func(a models.Application) string { return models.NormalizeStatus(a.Status) },
		SelectorType:   func(a models.Application) string { return models.NormalizeBusinessType(a.BusinessType) },
	},
	Date: func(a models.Application) time.Time { return a.SubmittedAt },
}

// ApplicationFields are the sortable columns of the list
var ApplicationFields = []listview.Field[models.Application]{
	{Key: "id", Kind: listview.Text, Value: func(a models.Application) any { return a.ID }},
	{Key: "applicant", Kind: listview.Text, Value: func(a models.Application) any { return a.ApplicantName }},
	{Key: "business", Kind: listview.Text, Value: func(a models.Application) any { return a.BusinessName }},
	{Key: "type", Kind: listview.Text, Value: func(a models.Application) any { return a.BusinessTypeLabel() }},
	{Key: "status", Kind: listview.Text, Value: func(a models.Application) any { return a.Status }},
	{Key: "submittedDate", Kind: listview.Time, Value: func(a models.Application) any { return a.SubmittedAt }},
	{Key: "assignee", Kind: listview.Text, Value: func(a models.Application) any { return a.Assignee }},
	{Key: "aging", Kind: listview.Number, Value: func(a models.Application) any { return a.Aging }},
}

// ApplicationColumns is the application export column manifest
var ApplicationColumns = []export.Column[models.Application]{
	{Header: "Application ID", Value: func(a models.Application) any { return a.ID }},
	{Header: "Applicant Name", Value: func(a models.Application) any { return a.ApplicantName }},
	{Header: "Business Name", Value: func(a models.Application) any { return a.BusinessName }},
	{Header: "Business Type", Value: func(a models.Application) any { return a.BusinessTypeLabel() }},
	{Header: "Status", Value: func(a models.Application) any { return models.StatusLabel(a.Status) }},
	{Header: "Submitted Date", Value: func(a models.Application) any { return models.FormatDate(a.SubmittedAt) }},
	{Header: "Assignee", Value: func(a models.Application) any { return a.AssigneeName() }},
	{Header: "Aging (days)", Value: func(a models.Application) any { return a.Aging }},
}

// ApplicationList is what the list page renders
type ApplicationList struct {
	Page     listview.Page[models.Application]
	Criteria listview.Criteria
	Sort     listview.Sort
	// IDs are the ids of every filtered row, across all pages
	IDs []string
	// Fetched is the size of the result set before in-memory filtering
	Fetched int
	Banner  *Banner
}

// BulkResult reports the outcome of a bulk action
type BulkResult struct {
	Succeeded int
	Failed    []string
}

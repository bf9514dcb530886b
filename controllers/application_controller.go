package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/services"
)

var applicationColumns = [][2]string{
	{"id", "Application ID"},
	{"applicant", "Applicant"},
	{"business", "Business"},
	{"type", "Type"},
	{"status", "Status"},
	{"submittedDate", "Submitted"},
	{"assignee", "Assignee"},
	{"aging", "Aging"},
}

// pageLink is one entry of the pager
type pageLink struct {
	Number  int
	URL     string
	Current bool
}

func pageLinks(path string, q url.Values, numbers []int, current int) []pageLink {
	links := make([]pageLink, len(numbers))
	for i, n := range numbers {
		links[i] = pageLink{Number: n, URL: withQuery(path, q, "page", strconv.Itoa(n)), Current: n == current}
	}
	return links
}

// ApplicationController handles the application list, detail and actions
type ApplicationController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewApplicationController creates a new application controller
func NewApplicationController(services *services.Services, logger *zap.Logger) *ApplicationController {
	return &ApplicationController{services: services, logger: logger}
}

// Index handles GET /applications
func (c *ApplicationController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := applicationView(r)
	applySortParams(view, q)

	// sort/dir are applied to the session; links carry the resulting state
	q.Del("sort")
	q.Del("dir")

	c.services.Applications.Refresh(r.Context(), view, parseCriteria(q, services.SelectorStatus, services.SelectorType))
	list := c.services.Applications.List(view, pageNumber(r))

	templateData := struct {
		basePage
		List          *services.ApplicationList
		Headers       []sortHeader
		Pages         []pageLink
		PrevURL       string
		NextURL       string
		Selected      map[string]bool
		SelectedCount int
		AllSelected   bool
		ReturnURL     string
		ExportURL     string
		Statuses      []string
		BusinessTypes []string
	}{
		basePage:      newBasePage(r, "Applications", "applications"),
		List:          list,
		Headers:       sortHeaders("/applications", q, list.Sort, applicationColumns),
		Pages:         pageLinks("/applications", q, list.Page.Numbers(), list.Page.Number),
		PrevURL:       withQuery("/applications", q, "page", strconv.Itoa(list.Page.PrevNumber())),
		NextURL:       withQuery("/applications", q, "page", strconv.Itoa(list.Page.NextNumber())),
		Selected:      selectedSet(view),
		SelectedCount: view.SelectedCount(),
		AllSelected:   view.AllSelected(list.IDs),
		ReturnURL:     withQuery("/applications", q),
		ExportURL:     withQuery("/applications/export", q, "page", ""),
		Statuses:      models.Statuses,
		BusinessTypes: models.BusinessTypes,
	}

	renderTemplate(w, "applications.html", templateData)
}

// ToggleSelection handles POST /applications/selection/toggle
func (c *ApplicationController) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if id := r.FormValue("id"); id != "" {
		applicationView(r).ToggleOne(id)
	}
	http.Redirect(w, r, safeReturn(r, "/applications"), http.StatusSeeOther)
}

// ToggleAll handles POST /applications/selection/all
func (c *ApplicationController) ToggleAll(w http.ResponseWriter, r *http.Request) {
	view := applicationView(r)
	view.ToggleAll(c.services.Applications.VisibleIDs(view))
	http.Redirect(w, r, safeReturn(r, "/applications"), http.StatusSeeOther)
}

// ClearSelection handles POST /applications/selection/clear
func (c *ApplicationController) ClearSelection(w http.ResponseWriter, r *http.Request) {
	applicationView(r).ClearSelection()
	http.Redirect(w, r, safeReturn(r, "/applications"), http.StatusSeeOther)
}

// Bulk handles POST /applications/bulk
func (c *ApplicationController) Bulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	view := applicationView(r)
	back := safeReturn(r, "/applications")
	if view.SelectedCount() == 0 {
		redirectWith(w, r, back, "error", "Select at least one application")
		return
	}

	switch r.FormValue("action") {
	case "export":
		filename, body := c.services.Applications.ExportSelected(view)
		if err := export.Write(w, filename, body); err != nil {
			c.logger.Warn("failed to write export", zap.Error(err))
		}
		return
	case "assign":
		res, err := c.services.Applications.BulkAssign(r.Context(), view.SelectedIDs(), r.FormValue("assignee"))
		if err != nil {
			redirectWith(w, r, back, "error", validationMessage(err))
			return
		}
		view.ClearSelection()
		kind, msg := bulkMessage("Assigned", res)
		redirectWith(w, r, back, kind, msg)
	case "move-to-review":
		res := c.services.Applications.BulkMoveToReview(r.Context(), view.SelectedIDs())
		view.ClearSelection()
		kind, msg := bulkMessage("Moved to review", res)
		redirectWith(w, r, back, kind, msg)
	default:
		redirectWith(w, r, back, "error", "Unknown bulk action")
	}
}

// Export handles GET /applications/export
func (c *ApplicationController) Export(w http.ResponseWriter, r *http.Request) {
	view := applicationView(r)
	if !view.Loaded() {
		c.services.Applications.Refresh(r.Context(), view,
			parseCriteria(r.URL.Query(), services.SelectorStatus, services.SelectorType))
	}

	filename, body := c.services.Applications.ExportCSV(view)
	if err := export.Write(w, filename, body); err != nil {
		c.logger.Warn("failed to write export", zap.Error(err))
	}
}

type applicationFormPage struct {
	basePage
	Form          *models.ApplicationForm
	Errors        models.ValidationErrors
	BusinessTypes []string
}

// New handles GET /applications/new
func (c *ApplicationController) New(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "application_new.html", applicationFormPage{
		basePage:      newBasePage(r, "New Application", "applications"),
		Form:          &models.ApplicationForm{},
		BusinessTypes: models.BusinessTypes,
	})
}

// Create handles POST /applications/new
func (c *ApplicationController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.ApplicationForm{
		ApplicantName: r.FormValue("applicant_name"),
		BusinessName:  r.FormValue("business_name"),
		BusinessType:  r.FormValue("business_type"),
		Email:         r.FormValue("email"),
		Phone:         r.FormValue("phone"),
		Notes:         r.FormValue("notes"),
	}

	app, err := c.services.Applications.Create(r.Context(), form)
	if err != nil {
		page := applicationFormPage{
			basePage:      newBasePage(r, "New Application", "applications"),
			Form:          form,
			BusinessTypes: models.BusinessTypes,
		}
		status := http.StatusInternalServerError
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			status = http.StatusBadRequest
			page.Errors = verrs
		} else {
			page.Error = "Failed to submit application: " + err.Error()
		}
		renderTemplateWithStatus(w, status, "application_new.html", page)
		return
	}

	redirectWith(w, r, "/applications/"+app.ID, "success", "Application submitted")
}

type detailPage struct {
	basePage
	Detail          *services.ApplicationDetail
	Decision        *models.DecisionForm
	Message         *models.MessageForm
	Errors          models.ValidationErrors
	ReasonCodes     []string
	CannedResponses []string
	MessageFilter   string
	ReturnURL       string
}

// Show handles GET /applications/{id}
func (c *ApplicationController) Show(w http.ResponseWriter, r *http.Request) {
	c.renderDetail(w, r, http.StatusOK, &models.DecisionForm{}, &models.MessageForm{Visibility: models.VisibilityToApplicant}, nil, "")
}

func (c *ApplicationController) renderDetail(w http.ResponseWriter, r *http.Request, status int,
	decision *models.DecisionForm, message *models.MessageForm, errs models.ValidationErrors, errMsg string) {
	id := chi.URLParam(r, "id")
	filter := r.URL.Query().Get("messages")

	detail, err := c.services.Applications.Detail(r.Context(), id, filter)
	if err != nil {
		page := newBasePage(r, "Application not found", "applications")
		if datastore.IsNotFound(err) {
			page.Error = "Application " + id + " was not found."
			renderTemplateWithStatus(w, http.StatusNotFound, "not_found.html", page)
			return
		}
		c.logger.Warn("failed to load application", zap.String("application_id", id), zap.Error(err))
		page.Error = "Failed to load application: " + err.Error()
		renderTemplateWithStatus(w, http.StatusInternalServerError, "not_found.html", page)
		return
	}

	page := detailPage{
		basePage:        newBasePage(r, "Application "+id, "applications"),
		Detail:          detail,
		Decision:        decision,
		Message:         message,
		Errors:          errs,
		ReasonCodes:     models.ReasonCodes,
		CannedResponses: models.CannedResponses,
		MessageFilter:   filter,
		ReturnURL:       "/applications/" + id,
	}
	if errMsg != "" {
		page.Error = errMsg
	}
	renderTemplateWithStatus(w, status, "application_detail.html", page)
}

// Decide handles POST /applications/{id}/decision
func (c *ApplicationController) Decide(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	form := &models.DecisionForm{
		Decision:   r.FormValue("decision"),
		ReasonCode: r.FormValue("reason_code"),
		Notes:      r.FormValue("notes"),
	}

	app, err := c.services.Applications.Decide(r.Context(), id, form)
	if err != nil {
		c.mutationFailed(w, r, err, form, nil)
		return
	}

	redirectWith(w, r, safeReturn(r, "/applications/"+id), "success",
		"Application "+app.ID+" is now "+models.StatusLabel(app.Status))
}

// Assign handles POST /applications/{id}/assign
func (c *ApplicationController) Assign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	back := safeReturn(r, "/applications/"+id)
	if err := c.services.Applications.Assign(r.Context(), id, r.FormValue("assignee")); err != nil {
		redirectWith(w, r, back, "error", validationMessage(err))
		return
	}
	redirectWith(w, r, back, "success", "Assignee updated")
}

// SendMessage handles POST /applications/{id}/messages
func (c *ApplicationController) SendMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	form := &models.MessageForm{
		Body:       r.FormValue("body"),
		Visibility: r.FormValue("visibility"),
	}

	if _, err := c.services.Messages.Send(r.Context(), id, form); err != nil {
		c.mutationFailed(w, r, err, nil, form)
		return
	}

	redirectWith(w, r, "/applications/"+id, "success", "Message sent")
}

// mutationFailed re-renders the detail page keeping the submitted form
func (c *ApplicationController) mutationFailed(w http.ResponseWriter, r *http.Request, err error,
	decision *models.DecisionForm, message *models.MessageForm) {
	if datastore.IsNotFound(err) {
		page := newBasePage(r, "Application not found", "applications")
		page.Error = "Application " + chi.URLParam(r, "id") + " was not found."
		renderTemplateWithStatus(w, http.StatusNotFound, "not_found.html", page)
		return
	}
	if decision == nil {
		decision = &models.DecisionForm{}
	}
	if message == nil {
		message = &models.MessageForm{Visibility: models.VisibilityToApplicant}
	}

	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		c.renderDetail(w, r, http.StatusBadRequest, decision, message, verrs, "")
		return
	}
	c.logger.Warn("application update failed", zap.String("application_id", chi.URLParam(r, "id")), zap.Error(err))
	c.renderDetail(w, r, http.StatusInternalServerError, decision, message, nil, "Update failed: "+err.Error())
}

func validationMessage(err error) string {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Message
	}
	return err.Error()
}

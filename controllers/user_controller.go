package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/services"
)

var userColumns = [][2]string{
	{"name", "Name"},
	{"email", "Email"},
	{"status", "Status"},
	{"role", "Role"},
	{"created", "Created"},
}

// UserController handles account approval and the user directory
type UserController struct {
	services *services.Services
	logger   *zap.Logger
}

// NewUserController creates a new user controller
func NewUserController(services *services.Services, logger *zap.Logger) *UserController {
	return &UserController{services: services, logger: logger}
}

// Pending handles GET /users/pending
func (c *UserController) Pending(w http.ResponseWriter, r *http.Request) {
	view := userView(r, viewPendingUsers)
	pending := c.services.Users.Pending(r.Context(), view)

	templateData := struct {
		basePage
		Data          *services.PendingUsers
		Selected      map[string]bool
		SelectedCount int
		AllSelected   bool
		ReturnURL     string
	}{
		basePage:      newBasePage(r, "Pending Approvals", "users-pending"),
		Data:          pending,
		Selected:      selectedSet(view),
		SelectedCount: view.SelectedCount(),
		AllSelected:   view.AllSelected(pending.IDs),
		ReturnURL:     "/users/pending",
	}

	renderTemplate(w, "users_pending.html", templateData)
}

// TogglePending handles POST /users/pending/selection/toggle
func (c *UserController) TogglePending(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if id := r.FormValue("id"); id != "" {
		userView(r, viewPendingUsers).ToggleOne(id)
	}
	http.Redirect(w, r, "/users/pending", http.StatusSeeOther)
}

// ToggleAllPending handles POST /users/pending/selection/all
func (c *UserController) ToggleAllPending(w http.ResponseWriter, r *http.Request) {
	view := userView(r, viewPendingUsers)
	view.ToggleAll(c.services.Users.PendingIDs(view))
	http.Redirect(w, r, "/users/pending", http.StatusSeeOther)
}

// ClearPending handles POST /users/pending/selection/clear
func (c *UserController) ClearPending(w http.ResponseWriter, r *http.Request) {
	userView(r, viewPendingUsers).ClearSelection()
	http.Redirect(w, r, "/users/pending", http.StatusSeeOther)
}

// BulkPending handles POST /users/pending/bulk
func (c *UserController) BulkPending(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	view := userView(r, viewPendingUsers)
	if view.SelectedCount() == 0 {
		redirectWith(w, r, "/users/pending", "error", "Select at least one user")
		return
	}

	var res *services.BulkResult
	var verb string
	switch r.FormValue("action") {
	case "approve":
		res, verb = c.services.Users.BulkApprove(r.Context(), view.SelectedIDs()), "Approved"
	case "reject":
		res, verb = c.services.Users.BulkReject(r.Context(), view.SelectedIDs()), "Rejected"
	default:
		redirectWith(w, r, "/users/pending", "error", "Unknown bulk action")
		return
	}

	view.ClearSelection()
	kind, msg := bulkMessage(verb, res)
	redirectWith(w, r, "/users/pending", kind, msg)
}

// Approve handles POST /users/{id}/approve
func (c *UserController) Approve(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.services.Users.Approve, "approved")
}

// Reject handles POST /users/{id}/reject
func (c *UserController) Reject(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.services.Users.Reject, "rejected")
}

func (c *UserController) decide(w http.ResponseWriter, r *http.Request,
	action func(ctx context.Context, id, notes string) error, done string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	back := safeReturn(r, "/users/pending")
	if err := action(r.Context(), id, r.FormValue("notes")); err != nil {
		if datastore.IsNotFound(err) {
			redirectWith(w, r, back, "error", "User "+id+" was not found")
			return
		}
		c.logger.Warn("failed to update user", zap.String("user_id", id), zap.Error(err))
		redirectWith(w, r, back, "error", "Failed to update user: "+err.Error())
		return
	}
	redirectWith(w, r, back, "success", "User "+done)
}

// Index handles GET /users
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := userView(r, viewUsers)
	applySortParams(view, q)
	q.Del("sort")
	q.Del("dir")

	c.services.Users.RefreshDirectory(r.Context(), view, parseCriteria(q, services.SelectorStatus, services.SelectorRole))
	list := c.services.Users.Directory(view, pageNumber(r))

	templateData := struct {
		basePage
		List      *services.UserList
		Headers   []sortHeader
		Pages     []pageLink
		PrevURL   string
		NextURL   string
		ExportURL string
		Statuses  []string
		Roles     []string
	}{
		basePage:  newBasePage(r, "Users", "users"),
		List:      list,
		Headers:   sortHeaders("/users", q, list.Sort, userColumns),
		Pages:     pageLinks("/users", q, list.Page.Numbers(), list.Page.Number),
		PrevURL:   withQuery("/users", q, "page", strconv.Itoa(list.Page.PrevNumber())),
		NextURL:   withQuery("/users", q, "page", strconv.Itoa(list.Page.NextNumber())),
		ExportURL: withQuery("/users/export", q, "page", ""),
		Statuses:  models.UserStatuses,
		Roles:     models.UserRoles,
	}

	renderTemplate(w, "users.html", templateData)
}

// Export handles GET /users/export
func (c *UserController) Export(w http.ResponseWriter, r *http.Request) {
	view := userView(r, viewUsers)
	if !view.Loaded() {
		c.services.Users.RefreshDirectory(r.Context(), view,
			parseCriteria(r.URL.Query(), services.SelectorStatus, services.SelectorRole))
	}

	filename, body := c.services.Users.ExportCSV(view)
	if err := export.Write(w, filename, body); err != nil {
		c.logger.Warn("failed to write export", zap.Error(err))
	}
}

package controllers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/authenticator"
	"github.com/blogem/regdesk/listview"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/services"
	"github.com/blogem/regdesk/templates"
	"github.com/blogem/regdesk/userctx"
)

var templateFuncs = template.FuncMap{
	"add":            func(a, b int) int { return a + b },
	"sub":            func(a, b int) int { return a - b },
	"statusLabel":    models.StatusLabel,
	"typeLabel":      models.BusinessTypeLabel,
	"actionLabel":    models.ActionLabel,
	"formatDate":     models.FormatDate,
	"formatDateTime": models.FormatDateTime,
	"timeAgo":        func(t time.Time) string { return models.TimeAgo(t, time.Now()) },
	"join":           strings.Join,
	"deref": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return models.FormatDateTime(*t)
	},
}

// renderTemplate renders a page inside the layout
func renderTemplate(w http.ResponseWriter, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, pageTemplate, data)
}

// renderTemplateWithStatus renders a page inside the layout with the given status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, pageTemplate string, data interface{}) error {
	tmpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templates.FS, "layout.html", "banner.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err = buf.WriteTo(w)
	return err
}

// basePage carries what the layout needs on every page
type basePage struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	User        userctx.Session
	SignedIn    bool
}

func newBasePage(r *http.Request, title, current string) basePage {
	user, ok := userctx.GetSession(r.Context())
	return basePage{
		Title:       title,
		CurrentPage: current,
		Error:       r.URL.Query().Get("error"),
		Success:     r.URL.Query().Get("success"),
		User:        user,
		SignedIn:    ok,
	}
}

// sortHeader is one sortable column header
type sortHeader struct {
	Key       string
	Label     string
	URL       string
	Indicator string
}

func sortHeaders(path string, q url.Values, current listview.Sort, columns [][2]string) []sortHeader {
	headers := make([]sortHeader, len(columns))
	for i, col := range columns {
		next := current.Toggle(col[0])
		headers[i] = sortHeader{
			Key:       col[0],
			Label:     col[1],
			URL:       withQuery(path, q, "sort", next.Key, "dir", string(next.Dir), "page", ""),
			Indicator: current.Indicator(col[0]),
		}
	}
	return headers
}

// withQuery returns path with q after applying key/value pairs; empty values are removed
func withQuery(path string, q url.Values, pairs ...string) string {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			out.Del(pairs[i])
			continue
		}
		out.Set(pairs[i], pairs[i+1])
	}
	if len(out) == 0 {
		return path
	}
	return path + "?" + out.Encode()
}

// redirectWith redirects to target adding a flash parameter
func redirectWith(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	http.Redirect(w, r, target+sep+kind+"="+url.QueryEscape(message), http.StatusSeeOther)
}

// safeReturn returns the form's return path when it is a local path
func safeReturn(r *http.Request, fallback string) string {
	ret := r.FormValue("return")
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.Contains(ret, "\\") {
		return fallback
	}
	return ret
}

func pageNumber(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseCriteria(q url.Values, selectors ...string) listview.Criteria {
	c := listview.Criteria{
		Search:    strings.TrimSpace(q.Get("search")),
		Selectors: make(map[string]string, len(selectors)),
		DateRange: q.Get("dateRange"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}
	for _, key := range selectors {
		c.Selectors[key] = q.Get(key)
	}
	return c
}

// applySortParams updates the view's sort from ?sort=&dir=. Without dir the
// click toggles against the current configuration.
func applySortParams[T any](view *listview.View[T], q url.Values) {
	key := q.Get("sort")
	if key == "" {
		return
	}
	if dir := q.Get("dir"); dir != "" {
		view.SetSort(listview.Sort{Key: key, Dir: listview.ParseDirection(dir)})
		return
	}
	view.ToggleSort(key)
}

// Session keys of per-session list state
const (
	viewApplications = "view_applications"
	viewPendingUsers = "view_pending_users"
	viewUsers        = "view_users"
)

func applicationView(r *http.Request) *services.ApplicationView {
	sess := session.GetSession(r)
	if v, ok := sess.Get(viewApplications).(*services.ApplicationView); ok {
		return v
	}
	v := services.NewApplicationView()
	sess.Set(viewApplications, v)
	return v
}

func userView(r *http.Request, key string) *services.UserView {
	sess := session.GetSession(r)
	if v, ok := sess.Get(key).(*services.UserView); ok {
		return v
	}
	v := services.NewUserView()
	sess.Set(key, v)
	return v
}

func selectedSet[T any](view *listview.View[T]) map[string]bool {
	ids := view.SelectedIDs()
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func bulkMessage(verb string, res *services.BulkResult) (kind, message string) {
	if len(res.Failed) == 0 {
		return "success", fmt.Sprintf("%s %d item(s)", verb, res.Succeeded)
	}
	return "error", fmt.Sprintf("%s %d item(s); failed: %s", verb, res.Succeeded, strings.Join(res.Failed, ", "))
}

// Controllers holds all controller instances
type Controllers struct {
	Auth         *AuthController
	Dashboard    *DashboardController
	Applications *ApplicationController
	Audit        *AuditController
	Users        *UserController
	Reports      *ReportController
	Settings     *SettingsController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, auth authenticator.Provider, logger *zap.Logger) *Controllers {
	return &Controllers{
		Auth:         NewAuthController(auth, logger),
		Dashboard:    NewDashboardController(services),
		Applications: NewApplicationController(services, logger),
		Audit:        NewAuditController(services),
		Users:        NewUserController(services, logger),
		Reports:      NewReportController(services, logger),
		Settings:     NewSettingsController(services, logger),
	}
}

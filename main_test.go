package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/authenticator"
	"github.com/blogem/regdesk/cache"
	"github.com/blogem/regdesk/config"
	"github.com/blogem/regdesk/controllers"
	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/notify"
	"github.com/blogem/regdesk/repositories"
	"github.com/blogem/regdesk/services"
)

// fakeProvider sends the browser straight back to the callback
type fakeProvider struct{}

func (fakeProvider) GetAuthURL(state string) string {
	return "/callback?state=" + url.QueryEscape(state) + "&code=test"
}

func (fakeProvider) ExchangeCode(_ context.Context, code string) (*authenticator.Token, error) {
	if code != "test" {
		return nil, errors.New("bad code")
	}
	return &authenticator.Token{AccessToken: "access", IDToken: "id"}, nil
}

func (fakeProvider) GetClaims(context.Context, *authenticator.Token) (authenticator.Claims, error) {
	return authenticator.Claims{
		"sub":      "auth0|rita",
		"nickname": "Reviewer Rita",
		"email":    "rita@regdesk.local",
	}, nil
}

type AppTestSuite struct {
	suite.Suite
	store  *datastore.MemoryClient
	server *httptest.Server
	client *http.Client
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.store = datastore.NewMemoryClient()
	services.SeedMemory(s.store, time.Now())

	logger := zap.NewNop()
	srvs := services.NewServices(repositories.NewRepositories(s.store), cache.Noop{}, notify.NewLogNotifier(logger), logger,
		services.Options{List: services.ListOptions{PageSize: 10, FetchLimit: 100}})
	ctrl := controllers.NewControllers(srvs, fakeProvider{}, logger)

	r, err := setupRouter(ctrl, config.ServerConfig{RequestTimeout: 10 * time.Second, SessionLifetime: 3600}, logger)
	s.Require().NoError(err)

	s.server = httptest.NewServer(r)
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	s.client = &http.Client{Jar: jar}
}

func (s *AppTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *AppTestSuite) get(path string) (*http.Response, string) {
	resp, err := s.client.Get(s.server.URL + path)
	s.Require().NoError(err)
	return resp, s.body(resp)
}

func (s *AppTestSuite) post(path string, form url.Values) (*http.Response, string) {
	resp, err := s.client.PostForm(s.server.URL+path, form)
	s.Require().NoError(err)
	return resp, s.body(resp)
}

func (s *AppTestSuite) body(resp *http.Response) string {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(b)
}

func (s *AppTestSuite) login() {
	resp, body := s.get("/login")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Contains(body, "Reviewer Rita")
}

func (s *AppTestSuite) TestHealth() {
	resp, body := s.get("/health")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `"status": "healthy"`)
}

func (s *AppTestSuite) TestLandingPageWhenSignedOut() {
	resp, body := s.get("/")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Sign in to continue")
}

func (s *AppTestSuite) TestProtectedPageReturnsAfterLogin() {
	resp, body := s.get("/applications?status=pending")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("/applications", resp.Request.URL.Path)
	s.Equal("pending", resp.Request.URL.Query().Get("status"))
	s.Contains(body, "APP-2024-001")
	s.Contains(body, "APP-2024-005")
	s.NotContains(body, "APP-2024-004")
}

func (s *AppTestSuite) TestLogoutRequiresNewLogin() {
	s.login()
	s.get("/logout")

	noFollow := &http.Client{
		Jar: s.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := noFollow.Get(s.server.URL + "/applications")
	s.Require().NoError(err)
	resp.Body.Close()

	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
}

func (s *AppTestSuite) TestDashboard() {
	s.login()

	resp, body := s.get("/")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Newest pending applications")
	s.Contains(body, "Quick approve")
}

func (s *AppTestSuite) TestMissingViewShowsBanner() {
	s.login()
	s.store.Fail(repositories.ApplicationsView, &datastore.Error{
		Kind: datastore.KindNotFound, Code: datastore.CodeUndefinedTable,
		Collection: repositories.ApplicationsView, Message: "relation does not exist",
	})

	resp, body := s.get("/applications")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "vw_applications_list")
	s.Contains(body, "was not found")
	s.Contains(body, "No applications match the current filters.")
}

func (s *AppTestSuite) TestSelectionAndBulkExport() {
	s.login()
	s.get("/applications?status=pending")

	resp, body := s.post("/applications/selection/toggle", url.Values{
		"id":     {"APP-2024-001"},
		"return": {"/applications?status=pending"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pending", resp.Request.URL.Query().Get("status"))
	s.Contains(body, "1 selected")

	resp, body = s.post("/applications/bulk", url.Values{
		"action": {"export"},
		"return": {"/applications?status=pending"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/csv")
	s.Contains(resp.Header.Get("Content-Disposition"), "applications_selected_")
	s.True(strings.HasPrefix(body, "Application ID,"))
	s.Contains(body, "APP-2024-001")
	s.NotContains(body, "APP-2024-005")
}

func (s *AppTestSuite) TestSelectAllUnderSearchOnlyMovesMatches() {
	s.login()
	s.get("/applications?search=gomez")

	resp, body := s.post("/applications/selection/all", url.Values{"return": {"/applications?search=gomez"}})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "1 selected")

	resp, body = s.post("/applications/bulk", url.Values{
		"action": {"move-to-review"},
		"return": {"/applications?search=gomez"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Moved to review 1 item(s)")

	apps := repositories.NewApplicationRepository(s.store)
	moved, err := apps.GetByID(context.Background(), "APP-2024-005")
	s.Require().NoError(err)
	s.Equal(models.StatusInReview, moved.Status)

	untouched, err := apps.GetByID(context.Background(), "APP-2024-001")
	s.Require().NoError(err)
	s.Equal(models.StatusPending, untouched.Status)
}

func (s *AppTestSuite) TestBulkWithoutSelection() {
	s.login()
	s.get("/applications")

	resp, body := s.post("/applications/bulk", url.Values{"action": {"move-to-review"}})

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Select at least one application")
}

func (s *AppTestSuite) TestExportAll() {
	s.login()
	s.get("/applications?type=llc")

	resp, body := s.get("/applications/export")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Disposition"), "applications_")
	s.Contains(body, "APP-2024-001")
	s.NotContains(body, "APP-2024-002")
}

func (s *AppTestSuite) TestCreateApplication() {
	s.login()

	resp, body := s.post("/applications/new", url.Values{"business_name": {"Keep This Ltd"}})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Applicant name is required")
	s.Contains(body, "Keep This Ltd")

	resp, body = s.post("/applications/new", url.Values{
		"applicant_name": {"Nora Lind"},
		"business_name":  {"Lind Design"},
		"business_type":  {"llc"},
		"email":          {"nora@example.com"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(strings.HasPrefix(resp.Request.URL.Path, "/applications/APP-"))
	s.Contains(body, "Application submitted")
	s.Contains(body, "Lind Design")
}

func (s *AppTestSuite) TestQuickApproveReturnsToDashboard() {
	s.login()

	resp, body := s.post("/applications/APP-2024-001/decision", url.Values{
		"decision": {"approve"},
		"return":   {"/"},
	})

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("/", resp.Request.URL.Path)
	s.Contains(body, "Application APP-2024-001 is now Approved")
}

func (s *AppTestSuite) TestRejectWithoutReasonKeepsForm() {
	s.login()

	resp, body := s.post("/applications/APP-2024-002/decision", url.Values{
		"decision": {"reject"},
		"notes":    {"keep these notes"},
	})

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "A reason code is required")
	s.Contains(body, "keep these notes")
}

func (s *AppTestSuite) TestSendMessage() {
	s.login()

	resp, body := s.post("/applications/APP-2024-002/messages", url.Values{
		"body":       {"Your certificate of incorporation arrived, thanks."},
		"visibility": {"to-applicant"},
	})

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Message sent")
	s.Contains(body, "Your certificate of incorporation arrived, thanks.")
}

func (s *AppTestSuite) TestUnknownApplication() {
	s.login()

	resp, body := s.get("/applications/APP-NOPE")

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(body, "APP-NOPE was not found")
}

func (s *AppTestSuite) TestPendingUsersBulkApprove() {
	s.login()
	_, body := s.get("/users/pending")
	s.Contains(body, "Lars Berg")

	s.post("/users/pending/selection/toggle", url.Values{"id": {"sample-u1"}})
	resp, body := s.post("/users/pending/bulk", url.Values{"action": {"approve"}})

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Approved 1 item(s)")
	s.NotContains(body, "Lars Berg")
}

func (s *AppTestSuite) TestUserDirectoryExport() {
	s.login()
	s.get("/users?role=reviewer")

	resp, body := s.get("/users/export")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Reviewer Rita")
	s.NotContains(body, "Lars Berg")
}

func (s *AppTestSuite) TestAuditPageAndExport() {
	s.login()

	resp, body := s.get("/audit?range=all")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Audit Log")

	resp, _ = s.get("/audit/export?application=APP-2024-002")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Disposition"), "audit_log_APP-2024-002")
}

func (s *AppTestSuite) TestReports() {
	s.login()

	resp, body := s.get("/reports?range=90d")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Approval rate")

	resp, body = s.get("/reports/export?range=90d")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(strings.HasPrefix(body, "Metric,Value"))
}

func (s *AppTestSuite) TestSettingsSave() {
	s.login()
	form := url.Values{
		"system_name":             {"Review Desk"},
		"admin_email":             {"ops@example.com"},
		"timezone":                {"UTC"},
		"sla_hours":               {"0"},
		"session_timeout_minutes": {"30"},
		"email_notifications":     {"on"},
	}

	resp, body := s.post("/settings", form)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "SLA hours must be at least 1")
	s.Contains(body, "Review Desk")

	form.Set("sla_hours", "48")
	resp, body = s.post("/settings", form)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Settings saved successfully!")
	s.Contains(body, `value="48"`)
}

package services

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/cache"
	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/listview"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/notify"
	"github.com/blogem/regdesk/repositories"
	"github.com/blogem/regdesk/repositories/mocks"
	"github.com/blogem/regdesk/userctx"
)

type recordingNotifier struct {
	sent []notify.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Notification) error {
	n.sent = append(n.sent, msg)
	return nil
}

type testEnv struct {
	store    *datastore.MemoryClient
	services *Services
	notifier *recordingNotifier
}

// tickClock makes every read of the service clock a millisecond later than
// the previous one, so audit entries written in one test are strictly ordered
func tickClock(t *testing.T) {
	t.Helper()
	orig := timeNow
	base := time.Now()
	var ticks int64
	timeNow = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Millisecond)
	}
	t.Cleanup(func() { timeNow = orig })
}

func newTestEnv(t *testing.T, c cache.Cache) *testEnv {
	t.Helper()
	tickClock(t)
	store := datastore.NewMemoryClient()
	SeedMemory(store, time.Now())

	if c == nil {
		c = cache.Noop{}
	}
	notifier := &recordingNotifier{}
	svc := NewServices(repositories.NewRepositories(store), c, notifier, zap.NewNop(), Options{
		List:      ListOptions{PageSize: 2, FetchLimit: 100},
		ReportTTL: time.Minute,
	})
	return &testEnv{store: store, services: svc, notifier: notifier}
}

func reviewerContext() context.Context {
	ctx := userctx.WithSession(context.Background(), userctx.Session{
		UserID: "auth0|rita", DisplayName: "Reviewer Rita", Email: "rita@regdesk.local",
	})
	return userctx.WithRequestMeta(ctx, userctx.RequestMeta{IPAddress: "203.0.113.7", UserAgent: "test"})
}

func TestApplicationList_MissingViewShowsViewNotFoundBanner(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.Fail(repositories.ApplicationsView, &datastore.Error{
		Kind: datastore.KindNotFound, Code: datastore.CodeUndefinedTable,
		Collection: repositories.ApplicationsView, Message: `relation "vw_applications_list" does not exist`,
	})

	view := NewApplicationView()
	require.True(t, env.services.Applications.Refresh(context.Background(), view, listview.Criteria{}))

	list := env.services.Applications.List(view, 1)
	require.NotNil(t, list.Banner)
	assert.True(t, list.Banner.IsNotFound())
	assert.Equal(t, ViewNotFoundMessage, list.Banner.Message)
	assert.Empty(t, list.Page.Items)
	assert.Equal(t, 0, list.Page.Total)
}

func TestApplicationList_DroppedViewIsClassifiedAsNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.Drop(repositories.ApplicationsTable)

	view := NewApplicationView()
	env.services.Applications.Refresh(context.Background(), view, listview.Criteria{})

	list := env.services.Applications.List(view, 1)
	require.NotNil(t, list.Banner)
	assert.Equal(t, datastore.KindNotFound, list.Banner.Kind)
	assert.Empty(t, list.Page.Items)
}

func TestApplicationList_TransientFailureBanner(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.Fail(repositories.ApplicationsView, context.DeadlineExceeded)

	view := NewApplicationView()
	env.services.Applications.Refresh(context.Background(), view, listview.Criteria{})

	list := env.services.Applications.List(view, 1)
	require.NotNil(t, list.Banner)
	assert.Equal(t, datastore.KindTransient, list.Banner.Kind)
	assert.Contains(t, list.Banner.Message, "temporarily unavailable")
}

func TestApplicationList_FilterSortPaginate(t *testing.T) {
	env := newTestEnv(t, nil)
	view := NewApplicationView()
	ctx := context.Background()

	env.services.Applications.Refresh(ctx, view, listview.Criteria{
		Selectors: map[string]string{SelectorStatus: "all", SelectorType: models.BusinessLLC},
	})
	list := env.services.Applications.List(view, 1)
	require.Nil(t, list.Banner)
	assert.Equal(t, 2, list.Page.Total)
	for _, a := range list.Page.Items {
		assert.Equal(t, models.BusinessLLC, a.BusinessType)
	}

	env.services.Applications.Refresh(ctx, view, listview.Criteria{Search: "okafor"})
	list = env.services.Applications.List(view, 1)
	require.Len(t, list.Page.Items, 1)
	assert.Equal(t, "APP-2024-002", list.Page.Items[0].ID)
	assert.Equal(t, 5, list.Fetched)

	env.services.Applications.Refresh(ctx, view, listview.Criteria{})
	view.SetSort(listview.Sort{Key: "aging", Dir: listview.Desc})
	list = env.services.Applications.List(view, 1)
	assert.Equal(t, 5, list.Page.Total)
	assert.Equal(t, 3, list.Page.TotalPages)
	require.Len(t, list.Page.Items, 2)
	assert.GreaterOrEqual(t, list.Page.Items[0].Aging, list.Page.Items[1].Aging)

	assert.Empty(t, env.services.Applications.List(view, 4).Page.Items)
}

func TestApplicationRefresh_StaleFetchIsDiscarded(t *testing.T) {
	env := newTestEnv(t, nil)
	view := NewApplicationView()
	ctx := context.Background()

	stale := view.Begin()
	require.True(t, env.services.Applications.Refresh(ctx, view, listview.Criteria{
		Selectors: map[string]string{SelectorStatus: models.StatusPending},
	}))
	assert.False(t, view.Commit(stale, nil, errors.New("late failure")))

	list := env.services.Applications.List(view, 1)
	assert.Nil(t, list.Banner)
	assert.Equal(t, 2, list.Page.Total)
}

func TestApplicationExport_AllInFetchOrderAndSelectedInSortOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	view := NewApplicationView()
	env.services.Applications.Refresh(context.Background(), view, listview.Criteria{})

	filename, body := env.services.Applications.ExportCSV(view)
	assert.True(t, strings.HasPrefix(filename, "applications_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"Application ID", "Applicant Name", "Business Name", "Business Type",
		"Status", "Submitted Date", "Assignee", "Aging (days)"}, records[0])
	// newest submission first
	assert.Equal(t, "APP-2024-005", records[1][0])
	assert.Contains(t, string(body), `"Silva, ""Traders"""`)

	view.ToggleOne("APP-2024-001")
	view.ToggleOne("APP-2024-004")
	view.SetSort(listview.Sort{Key: "business", Dir: listview.Asc})
	_, body = env.services.Applications.ExportSelected(view)
	records, err = csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Berg Tech Corp", records[1][2])
	assert.Equal(t, `Silva, "Traders"`, records[2][2])
}

func TestApplicationCreate_ValidationBlocksRemoteCall(t *testing.T) {
	env := newTestEnv(t, nil)
	before := len(env.store.Rows(repositories.ApplicationsTable))

	_, err := env.services.Applications.Create(reviewerContext(), &models.ApplicationForm{Email: "bad"})
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs.For("applicant_name"))
	assert.NotEmpty(t, verrs.For("business_name"))
	assert.NotEmpty(t, verrs.For("email"))
	assert.Len(t, env.store.Rows(repositories.ApplicationsTable), before)
}

func TestApplicationDecide_UpdatesStatusAuditsAndNotifies(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := reviewerContext()

	app, err := env.services.Applications.Decide(ctx, "APP-2024-001", &models.DecisionForm{
		Decision: models.DecisionReject, ReasonCode: models.ReasonCodes[0], Notes: "Please rescan",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, app.Status)

	trail, err := env.services.Audit.ForApplication(ctx, "APP-2024-001")
	require.NoError(t, err)
	var kinds []string
	for _, e := range trail {
		kinds = append(kinds, e.ActionType)
	}
	assert.Contains(t, kinds, models.ActionStatusChanged)
	assert.Contains(t, kinds, models.ActionApplicationRejected)

	for _, e := range trail {
		if e.ActionType == models.ActionStatusChanged {
			assert.Equal(t, models.StatusPending, e.MetaString("old_status"))
			assert.Equal(t, models.StatusRejected, e.MetaString("new_status"))
			assert.Equal(t, "203.0.113.7", e.MetaString("ip_address"))
			assert.Equal(t, "Reviewer Rita", e.ActorName)
		}
	}

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "maria@silvatraders.com", env.notifier.sent[0].To)
}

func TestApplicationDecide_MissingApplication(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.services.Applications.Decide(reviewerContext(), "APP-0000-000", &models.DecisionForm{Decision: models.DecisionApprove})
	assert.True(t, datastore.IsNotFound(err))
}

func TestApplicationBulkActions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := reviewerContext()

	_, err := env.services.Applications.BulkAssign(ctx, []string{"APP-2024-001"}, "  ")
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	result, err := env.services.Applications.BulkAssign(ctx, []string{"APP-2024-001", "APP-2024-005", "APP-2024-001", "missing"}, "Reviewer Rita")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, []string{"missing"}, result.Failed)

	moved := env.services.Applications.BulkMoveToReview(ctx, []string{"APP-2024-001", "APP-2024-002"})
	assert.Equal(t, 2, moved.Succeeded)

	app, err := repositories.NewApplicationRepository(env.store).GetByID(ctx, "APP-2024-001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInReview, app.Status)
	assert.Equal(t, "Reviewer Rita", app.Assignee)
}

func TestApplicationSelectAll_StaysWithinSearchResults(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := reviewerContext()
	view := NewApplicationView()
	apps := repositories.NewApplicationRepository(env.store)

	require.True(t, env.services.Applications.Refresh(ctx, view, listview.Criteria{Search: "gomez"}))
	list := env.services.Applications.List(view, 1)
	require.Equal(t, []string{"APP-2024-005"}, list.IDs)

	view.ToggleAll(env.services.Applications.VisibleIDs(view))
	assert.Equal(t, []string{"APP-2024-005"}, view.SelectedIDs())
	assert.True(t, view.AllSelected(list.IDs))

	moved := env.services.Applications.BulkMoveToReview(ctx, view.SelectedIDs())
	assert.Equal(t, 1, moved.Succeeded)

	app, err := apps.GetByID(ctx, "APP-2024-005")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInReview, app.Status)

	app, err = apps.GetByID(ctx, "APP-2024-001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
}

func TestApplicationRefresh_DeselectsRowsHiddenBySearch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := reviewerContext()
	view := NewApplicationView()

	require.True(t, env.services.Applications.Refresh(ctx, view, listview.Criteria{}))
	view.ToggleOne("APP-2024-001")
	view.ToggleOne("APP-2024-005")

	require.True(t, env.services.Applications.Refresh(ctx, view, listview.Criteria{Search: "gomez"}))
	assert.Equal(t, []string{"APP-2024-005"}, view.SelectedIDs())
}

func TestApplicationDetail_RecordsView(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := reviewerContext()

	_, err := env.services.Messages.Send(ctx, "APP-2024-002", &models.MessageForm{
		Body: "Please upload a clearer copy of your document.", Visibility: models.VisibilityToApplicant,
	})
	require.NoError(t, err)
	_, err = env.services.Messages.Send(ctx, "APP-2024-002", &models.MessageForm{
		Body: "ID looks fine otherwise", Visibility: models.VisibilityInternal,
	})
	require.NoError(t, err)
	assert.Len(t, env.notifier.sent, 1)

	detail, err := env.services.Applications.Detail(ctx, "APP-2024-002", models.VisibilityInternal)
	require.NoError(t, err)
	assert.Nil(t, detail.Banner)
	require.Len(t, detail.Messages, 1)
	assert.Equal(t, "ID looks fine otherwise", detail.Messages[0].Body)

	trail, err := env.services.Audit.ForApplication(ctx, "APP-2024-002")
	require.NoError(t, err)
	assert.Equal(t, models.ActionApplicationViewed, trail[0].ActionType)
}

func TestAuditTrail_FallsBackToSampleData(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.Fail(repositories.AuditTable, errors.New("connection reset"))

	trail := env.services.Audit.Trail(context.Background(), AuditFilter{Range: "all"})
	require.NotNil(t, trail.Banner)
	assert.True(t, trail.Banner.Sample)
	assert.Len(t, trail.Entries, len(SampleAuditEntries(time.Now())))

	trail = env.services.Audit.Trail(context.Background(), AuditFilter{Range: "all", Action: models.ActionMessageSent})
	require.Len(t, trail.Entries, 1)
}

func TestAuditTrail_DefaultsAndExport(t *testing.T) {
	env := newTestEnv(t, nil)

	trail := env.services.Audit.Trail(context.Background(), AuditFilter{Range: "bogus"})
	assert.Equal(t, DefaultAuditRange, trail.Filter.Range)
	assert.Nil(t, trail.Banner)
	for i := 1; i < len(trail.Entries); i++ {
		assert.False(t, trail.Entries[i].CreatedAt.After(trail.Entries[i-1].CreatedAt))
	}

	filename, body, err := env.services.Audit.ExportCSV(context.Background(), AuditFilter{Range: "all", ApplicationID: "APP-2024-002"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "audit_log_APP-2024-002_"))
	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "IP Address", records[0][7])
	assert.Len(t, records, 3)
}

func TestPendingUsers(t *testing.T) {
	env := newTestEnv(t, nil)
	view := NewUserView()

	pending := env.services.Users.Pending(context.Background(), view)
	require.Nil(t, pending.Banner)
	require.Len(t, pending.Users, 3)
	assert.Equal(t, "lars@bergtech.io", pending.Users[0].Email)
	assert.Equal(t, 3, pending.Stats.Total)
	assert.Equal(t, 1, pending.Stats.WaitingLong)
	assert.Equal(t, 1, pending.Stats.InReview)

	assert.Len(t, pending.IDs, 3)
	view.ToggleAll(env.services.Users.PendingIDs(view))
	result := env.services.Users.BulkApprove(reviewerContext(), view.SelectedIDs())
	assert.Equal(t, 3, result.Succeeded)

	pending = env.services.Users.Pending(context.Background(), view)
	assert.Empty(t, pending.Users)
	assert.Equal(t, 0, view.SelectedCount())
}

func TestPendingUsers_RendersNewerFetchWhenOvertaken(t *testing.T) {
	view := NewUserView()
	userRepo := mocks.NewMockUserRepository(t)
	svc := NewUserService(userRepo, mocks.NewMockApplicationRepository(t),
		NewAuditService(mocks.NewMockAuditRepository(t), zap.NewNop()), zap.NewNop(), 10)

	newer := []models.User{{ID: "u-new", FullName: "Kim Park", Status: models.UserPending}}
	userRepo.EXPECT().List(mock.Anything, repositories.UserQuery{Status: models.UserPending}).
		RunAndReturn(func(context.Context, repositories.UserQuery) ([]models.User, error) {
			// a second request for the same view finishes first
			require.True(t, view.Commit(view.Begin(), newer, nil))
			return []models.User{{ID: "u-old", FullName: "Lars Berg", Status: models.UserPending}}, nil
		})

	pending := svc.Pending(context.Background(), view)

	require.Len(t, pending.Users, 1)
	assert.Equal(t, "u-new", pending.Users[0].ID)
	assert.Equal(t, []string{"u-new"}, pending.IDs)
	assert.Equal(t, 1, pending.Stats.Total)
}

func TestPendingUsers_SampleFallbackIsNotSelectable(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.Fail(repositories.UsersTable, errors.New("boom"))
	view := NewUserView()

	pending := env.services.Users.Pending(context.Background(), view)
	require.NotNil(t, pending.Banner)
	assert.True(t, pending.Banner.Sample)
	assert.NotEmpty(t, pending.Users)
	assert.Empty(t, pending.IDs)

	view.ToggleAll(env.services.Users.PendingIDs(view))
	assert.Equal(t, 0, view.SelectedCount())
}

func TestUserDirectory(t *testing.T) {
	env := newTestEnv(t, nil)
	view := NewUserView()

	env.services.Users.RefreshDirectory(context.Background(), view, listview.Criteria{
		Search: "berg", Selectors: map[string]string{SelectorRole: "applicant"},
	})
	list := env.services.Users.Directory(view, 1)
	require.Len(t, list.Page.Items, 1)
	assert.Equal(t, "Lars Berg", list.Page.Items[0].FullName)

	env.services.Users.RefreshDirectory(context.Background(), view, listview.Criteria{})
	view.SetSort(listview.Sort{Key: "name", Dir: listview.Asc})
	filename, body := env.services.Users.ExportCSV(view)
	assert.True(t, strings.HasPrefix(filename, "users_"))
	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "John Okafor", records[1][1])
	assert.Equal(t, "Reviewer Rita", records[4][1])
}

func TestUserReject_RecordsAudit(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := reviewerContext()

	require.NoError(t, env.services.Users.Reject(ctx, "sample-u1", "Documents expired"))

	user, err := repositories.NewUserRepository(env.store).GetByID(ctx, "sample-u1")
	require.NoError(t, err)
	assert.Equal(t, models.UserRejected, user.Status)
	assert.Equal(t, "Documents expired", user.VerificationNotes)

	entries, err := env.services.Audit.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionUserRejected, entries[0].ActionType)
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	settings, err := env.services.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 72, settings.SLAHours)

	settings.SLAHours = 0
	settings.AdminEmail = "nope"
	err = env.services.Settings.Save(ctx, settings)
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs.For("sla_hours"))
	assert.NotEmpty(t, verrs.For("admin_email"))

	settings.SLAHours = 24
	settings.AdminEmail = "ops@regdesk.local"
	require.NoError(t, env.services.Settings.Save(ctx, settings))

	saved, err := env.services.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24, saved.SLAHours)
	assert.Equal(t, "ops@regdesk.local", saved.AdminEmail)
}

func TestSettings_DefaultsWhenNeverSaved(t *testing.T) {
	store := datastore.NewMemoryClient(repositories.SettingsTable)
	svc := NewSettingsService(repositories.NewSettingsRepository(store), cache.Noop{}, zap.NewNop())

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), *settings)
}

func TestReports_CachedPerRangeAndDroppedOnSettingsSave(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	env := newTestEnv(t, rc)
	ctx := context.Background()

	report, err := env.services.Reports.Summary(ctx, "30d")
	require.NoError(t, err)
	assert.Equal(t, 5, report.Counts.Total)
	assert.True(t, mr.Exists("regdesk:report:30d"))

	env.store.Fail(repositories.ApplicationsView, errors.New("down"))
	cached, err := env.services.Reports.Summary(ctx, "30d")
	require.NoError(t, err)
	assert.Equal(t, report.Counts, cached.Counts)

	settings, err := env.services.Settings.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, env.services.Settings.Save(ctx, settings))
	assert.False(t, mr.Exists("regdesk:report:30d"))

	_, err = env.services.Reports.Summary(ctx, "30d")
	assert.Error(t, err)
}

func TestReportExport(t *testing.T) {
	env := newTestEnv(t, nil)

	filename, body, err := env.services.Reports.ExportCSV(context.Background(), "bogus")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "report_30d_"))

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, records[0])
	assert.Equal(t, []string{"Total Applications", "5"}, records[1])
}

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	at := func(d string) time.Time { tm, _ := time.Parse("2006-01-02 15:04", d); return tm }
	decided := func(d string) *time.Time { tm := at(d); return &tm }

	apps := []models.Application{
		{ID: "1", Status: models.StatusApproved, BusinessType: models.BusinessLLC,
			SubmittedAt: at("2024-06-01 09:00"), LastActionAt: decided("2024-06-02 09:00")},
		{ID: "2", Status: models.StatusRejected, BusinessType: models.BusinessLLC,
			SubmittedAt: at("2024-06-03 09:00"), LastActionAt: decided("2024-06-08 09:00")},
		{ID: "3", Status: "in_review", BusinessType: "Partnership", SubmittedAt: at("2024-05-20 09:00")},
		{ID: "4", Status: models.StatusPending, BusinessType: models.BusinessCorporation, SubmittedAt: at("2024-05-21 09:00")},
	}

	report := BuildReport(apps, "90d", 72, now)

	assert.Equal(t, models.StatusCounts{Total: 4, Pending: 1, InReview: 1, Approved: 1, Rejected: 1}, report.Counts)
	assert.Equal(t, 25, report.ApprovalRate)
	assert.Equal(t, 25, report.RejectionRate)
	assert.Equal(t, 3.0, report.AvgProcessingDays)
	assert.Equal(t, 50, report.SLACompliance)
	require.NotEmpty(t, report.BusinessTypes)
	assert.Equal(t, models.BusinessTypeShare{Type: models.BusinessLLC, Count: 2, Percentage: 50}, report.BusinessTypes[0])
	require.Len(t, report.Monthly, 2)
	assert.Equal(t, "2024-05", report.Monthly[0].Month)
	assert.Equal(t, models.MonthlyPoint{Month: "2024-06", Applications: 2, Approved: 1, Rejected: 1}, report.Monthly[1])
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, nil)

	dash := env.services.Dashboard.GetDashboard(context.Background())
	assert.Nil(t, dash.Banner)
	assert.Equal(t, 5, dash.Stats.Total)
	assert.Equal(t, 2, dash.Stats.Pending)
	assert.Equal(t, 1, dash.Stats.InReview)
	assert.Equal(t, 3, dash.Stats.PendingUsers)
	assert.Len(t, dash.NewestPending, 2)
	assert.NotEmpty(t, dash.Activity)
}

func criteriaOf(search, status, businessType string) listview.Criteria {
	return listview.Criteria{
		Search:    search,
		Selectors: map[string]string{SelectorStatus: status, SelectorType: businessType},
	}
}

package services

import (
	"time"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/repositories"
)

// SampleApplications is the demo data set
func SampleApplications(now time.Time) []models.Application {
	day := 24 * time.Hour
	apps := []models.Application{
		{ID: "APP-2024-001", ApplicantName: "Maria Silva", ApplicantEmail: "maria@silvatraders.com", ApplicantPhone: "+1 555 0101",
			BusinessName: `Silva, "Traders"`, BusinessType: models.BusinessLLC, Status: models.StatusPending, SubmittedAt: now.Add(-2 * day)},
		{ID: "APP-2024-002", ApplicantName: "John Okafor", ApplicantEmail: "john@okaforfoods.com",
			BusinessName: "Okafor Foods", BusinessType: models.BusinessSoleProprietorship, Status: models.StatusInReview,
			Assignee: "Reviewer Rita", SubmittedAt: now.Add(-6 * day)},
		{ID: "APP-2024-003", ApplicantName: "Priya Nair", ApplicantEmail: "priya@nairpartners.com",
			BusinessName: "Nair & Partners", BusinessType: models.BusinessPartnership, Status: models.StatusApproved,
			Assignee: "Reviewer Rita", SubmittedAt: now.Add(-12 * day)},
		{ID: "APP-2024-004", ApplicantName: "Lars Berg", ApplicantEmail: "lars@bergtech.io",
			BusinessName: "Berg Tech Corp", BusinessType: models.BusinessCorporation, Status: models.StatusRejected,
			SubmittedAt: now.Add(-20 * day)},
		{ID: "APP-2024-005", ApplicantName: "Ana Gomez", ApplicantEmail: "ana@gomezdesign.com",
			BusinessName: "Gomez Design Studio", BusinessType: models.BusinessLLC, Status: models.StatusPending,
			SubmittedAt: now.Add(-4 * time.Hour)},
	}
	for i := range apps {
		if apps[i].Status == models.StatusApproved || apps[i].Status == models.StatusRejected {
			decided := apps[i].SubmittedAt.Add(2 * day)
			apps[i].LastActionAt = &decided
		}
		apps[i].Aging = models.AgingDays(apps[i].SubmittedAt, apps[i].LastActionAt, now)
	}
	return apps
}

// SampleAuditEntries is the demo audit trail, newest first
func SampleAuditEntries(now time.Time) []models.AuditEntry {
	return []models.AuditEntry{
		{ID: "sample-5", ApplicationID: "APP-2024-005", BusinessName: "Gomez Design Studio", ActionType: models.ActionApplicationSubmitted,
			ActorName: "Ana Gomez", ActorEmail: "ana@gomezdesign.com", Details: "Application submitted", CreatedAt: now.Add(-4 * time.Hour)},
		{ID: "sample-4", ApplicationID: "APP-2024-002", BusinessName: "Okafor Foods", ActionType: models.ActionMessageSent,
			ActorName: "Reviewer Rita", Details: "Requested a clearer ID scan", CreatedAt: now.Add(-26 * time.Hour)},
		{ID: "sample-3", ApplicationID: "APP-2024-002", BusinessName: "Okafor Foods", ActionType: models.ActionStatusChanged,
			ActorName: "Reviewer Rita", Details: "Moved to review",
			Metadata: map[string]any{"old_status": models.StatusPending, "new_status": models.StatusInReview}, CreatedAt: now.Add(-50 * time.Hour)},
		{ID: "sample-2", ApplicationID: "APP-2024-001", BusinessName: `Silva, "Traders"`, ActionType: models.ActionDocumentUploaded,
			ActorName: "Maria Silva", Details: "Uploaded articles of organization", CreatedAt: now.Add(-60 * time.Hour)},
		{ID: "sample-1", ActionType: models.ActionSystemEvent, Details: "Nightly backup completed", CreatedAt: now.Add(-72 * time.Hour)},
	}
}

// SamplePendingUsers is the demo approval queue, oldest first
func SamplePendingUsers(now time.Time) []models.User {
	users := []models.User{
		{ID: "sample-u1", Email: "lars@bergtech.io", FullName: "Lars Berg", Role: "applicant", Status: models.UserPending,
			Profile:   &models.BusinessProfile{BusinessName: "Berg Tech Corp", BusinessType: models.BusinessCorporation},
			CreatedAt: now.Add(-5 * 24 * time.Hour)},
		{ID: "sample-u2", Email: "john@okaforfoods.com", FullName: "John Okafor", Role: "applicant", Status: models.UserPending,
			Profile:      &models.BusinessProfile{BusinessName: "Okafor Foods", BusinessType: models.BusinessSoleProprietorship},
			Applications: []models.ApplicationSummary{{ID: "APP-2024-002", Status: models.StatusInReview, SubmittedAt: now.Add(-6 * 24 * time.Hour)}},
			CreatedAt:    now.Add(-2 * 24 * time.Hour)},
		{ID: "sample-u3", Email: "kim@kimco.com", FullName: "Kim Park", Role: "applicant", Status: models.UserPending,
			CreatedAt: now.Add(-3 * time.Hour)},
	}
	for i := range users {
		users[i].DaysWaiting = models.DaysBetween(users[i].CreatedAt, now)
	}
	return users
}

// SeedMemory fills an in-memory datastore with the sample data set and
// the collections the repositories expect
func SeedMemory(m *datastore.MemoryClient, now time.Time) {
	for _, app := range SampleApplications(now) {
		m.Seed(repositories.ApplicationsTable, datastore.Row{
			"id":              app.ID,
			"applicant_name":  app.ApplicantName,
			"applicant_email": app.ApplicantEmail,
			"applicant_phone": app.ApplicantPhone,
			"business_name":   app.BusinessName,
			"business_type":   app.BusinessType,
			"status":          app.Status,
			"notes":           app.Notes,
			"assignee_name":   nullableString(app.Assignee),
			"submitted_at":    app.SubmittedAt.UTC(),
			"last_action_at":  timeOrNil(app.LastActionAt),
			"created_by":      "sample",
		})
	}
	m.Alias(repositories.ApplicationsView, repositories.ApplicationsTable)

	for _, e := range SampleAuditEntries(now) {
		m.Seed(repositories.AuditTable, datastore.Row{
			"id":             e.ID,
			"application_id": nullableString(e.ApplicationID),
			"business_name":  e.BusinessName,
			"action_type":    e.ActionType,
			"actor_name":     e.ActorName,
			"actor_email":    e.ActorEmail,
			"details":        e.Details,
			"metadata":       "{}",
			"created_at":     e.CreatedAt.UTC(),
		})
	}

	for _, u := range SamplePendingUsers(now) {
		row := datastore.Row{
			"id":         u.ID,
			"email":      u.Email,
			"full_name":  u.FullName,
			"role":       u.Role,
			"status":     u.Status,
			"created_at": u.CreatedAt.UTC(),
		}
		if u.Profile != nil {
			row["business_name"] = u.Profile.BusinessName
			row["business_type"] = u.Profile.BusinessType
		}
		m.Seed(repositories.UsersTable, row)
	}
	m.Seed(repositories.UsersTable, datastore.Row{
		"id": "sample-u4", "email": "rita@regdesk.local", "full_name": "Reviewer Rita", "role": "reviewer",
		"status": models.UserActive, "created_at": now.AddDate(0, -3, 0).UTC(),
	})

	m.Seed(repositories.MessagesTable)

	s := models.DefaultSettings()
	m.Seed(repositories.SettingsTable, datastore.Row{
		"id":                      "default",
		"system_name":             s.SystemName,
		"admin_email":             s.AdminEmail,
		"timezone":                s.Timezone,
		"sla_hours":               s.SLAHours,
		"auto_assignment":         s.AutoAssignment,
		"email_notifications":     s.EmailNotifications,
		"session_timeout_minutes": s.SessionTimeoutMinutes,
		"updated_at":              now.UTC(),
	})
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

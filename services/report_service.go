package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/blogem/regdesk/cache"
	"github.com/blogem/regdesk/export"
	"github.com/blogem/regdesk/metrics"
	"github.com/blogem/regdesk/models"
	"github.com/blogem/regdesk/repositories"
)

const reportCachePrefix = "report:"

func reportCacheKeys() []string {
	keys := make([]string, len(models.ReportRanges))
	for i, r := range models.ReportRanges {
		keys[i] = reportCachePrefix + r.Key
	}
	return keys
}

// ReportService interface defines reporting business logic
type ReportService interface {
	Summary(ctx context.Context, rangeKey string) (*models.Report, error)
	ExportCSV(ctx context.Context, rangeKey string) (string, []byte, error)
}

// reportService implements ReportService interface
type reportService struct {
	appRepo  repositories.ApplicationRepository
	settings SettingsService
	cache    cache.Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	appRepo repositories.ApplicationRepository,
	settings SettingsService,
	c cache.Cache,
	ttl time.Duration,
	logger *zap.Logger,
) ReportService {
	return &reportService{appRepo: appRepo, settings: settings, cache: c, ttl: ttl, logger: logger}
}

// Summary returns the report for a range, from cache when available
func (s *reportService) Summary(ctx context.Context, rangeKey string) (*models.Report, error) {
	rangeKey = models.NormalizeReportRange(rangeKey)
	key := reportCachePrefix + rangeKey

	var cached models.Report
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.RecordReportCache(hit)
	if hit {
		return &cached, nil
	}

	now := timeNow()
	start := models.ReportRangeStart(rangeKey, now)
	apps, err := s.appRepo.List(ctx, repositories.ApplicationQuery{SubmittedGte: &start})
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	slaHours := settingsOrDefault(ctx, s.settings, s.logger).SLAHours
	report := BuildReport(apps, rangeKey, slaHours, now)

	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, report, s.ttl); err != nil {
			s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return report, nil
}

// ExportCSV renders the report as Metric,Value rows
func (s *reportService) ExportCSV(ctx context.Context, rangeKey string) (string, []byte, error) {
	rangeKey = models.NormalizeReportRange(rangeKey)
	report, err := s.Summary(ctx, rangeKey)
	if err != nil {
		return "", nil, err
	}

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Applications", strconv.Itoa(report.Counts.Total)},
		{"Pending Applications", strconv.Itoa(report.Counts.Pending)},
		{"Approved Applications", strconv.Itoa(report.Counts.Approved)},
		{"Rejected Applications", strconv.Itoa(report.Counts.Rejected)},
		{"Applications in Review", strconv.Itoa(report.Counts.InReview)},
		{"Average Processing Time (days)", strconv.FormatFloat(report.AvgProcessingDays, 'f', 1, 64)},
		{"SLA Compliance (%)", strconv.Itoa(report.SLACompliance)},
		{"Approval Rate (%)", strconv.Itoa(report.ApprovalRate)},
		{"Rejection Rate (%)", strconv.Itoa(report.RejectionRate)},
	}
	for _, bt := range report.BusinessTypes {
		rows = append(rows, []string{models.BusinessTypeLabel(bt.Type) + " (%)", strconv.Itoa(bt.Percentage)})
	}

	metrics.RecordExport("report")
	return export.Filename("report_"+rangeKey, timeNow()), export.Rows(rows), nil
}

// BuildReport computes the summary of apps submitted within the range
func BuildReport(apps []models.Application, rangeKey string, slaHours int, now time.Time) *models.Report {
	report := &models.Report{
		Range:         rangeKey,
		GeneratedAt:   now.UTC(),
		SLAHours:      slaHours,
		BusinessTypes: []models.BusinessTypeShare{},
		Monthly:       []models.MonthlyPoint{},
	}

	types := map[string]int{}
	months := map[string]*models.MonthlyPoint{}
	var decided, withinSLA int
	var processing time.Duration

	for _, a := range apps {
		report.Counts.Total++
		status := models.NormalizeStatus(a.Status)
		switch status {
		case models.StatusPending:
			report.Counts.Pending++
		case models.StatusInReview:
			report.Counts.InReview++
		case models.StatusApproved:
			report.Counts.Approved++
		case models.StatusRejected:
			report.Counts.Rejected++
		}

		types[models.NormalizeBusinessType(a.BusinessType)]++

		month := a.SubmittedAt.Format("2006-01")
		point, ok := months[month]
		if !ok {
			point = &models.MonthlyPoint{Month: month}
			months[month] = point
		}
		point.Applications++
		if status == models.StatusApproved {
			point.Approved++
		}
		if status == models.StatusRejected {
			point.Rejected++
		}

		if (status == models.StatusApproved || status == models.StatusRejected) && a.LastActionAt != nil {
			took := a.LastActionAt.Sub(a.SubmittedAt)
			if took < 0 {
				took = 0
			}
			decided++
			processing += took
			if took <= time.Duration(slaHours)*time.Hour {
				withinSLA++
			}
		}
	}

	report.ApprovalRate = percent(report.Counts.Approved, report.Counts.Total)
	report.RejectionRate = percent(report.Counts.Rejected, report.Counts.Total)
	if decided > 0 {
		days := processing.Hours() / 24 / float64(decided)
		report.AvgProcessingDays = math.Round(days*10) / 10
		report.SLACompliance = percent(withinSLA, decided)
	}

	for t, n := range types {
		report.BusinessTypes = append(report.BusinessTypes, models.BusinessTypeShare{
			Type:       t,
			Count:      n,
			Percentage: percent(n, report.Counts.Total),
		})
	}
	sort.Slice(report.BusinessTypes, func(i, j int) bool {
		a, b := report.BusinessTypes[i], report.BusinessTypes[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})

	for _, p := range months {
		report.Monthly = append(report.Monthly, *p)
	}
	sort.Slice(report.Monthly, func(i, j int) bool { return report.Monthly[i].Month < report.Monthly[j].Month })

	return report
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}

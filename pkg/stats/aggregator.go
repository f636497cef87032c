// Package stats aggregates platform-wide moderation counters into a single
// snapshot with an overall risk level for the operations dashboard.
package stats

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/SentraLabs/Sentra/pkg/domain/post"
	"github.com/SentraLabs/Sentra/pkg/domain/report"
	"github.com/SentraLabs/Sentra/pkg/domain/user"
	"github.com/SentraLabs/Sentra/pkg/infra/prometheus"
	"github.com/SentraLabs/Sentra/pkg/risk"
)

// highRiskThreshold is the minimum risk score for a user to count as high
// risk in the snapshot.
const highRiskThreshold = 6.0

// Snapshot is a point-in-time view of the platform's moderation load.
type Snapshot struct {
	PendingReports    int64      `json:"pending_reports"`
	ReportsToday      int64      `json:"reports_today"`
	ReportsThisWeek   int64      `json:"reports_this_week"`
	ReportsThisMonth  int64      `json:"reports_this_month"`
	FlaggedPosts      int64      `json:"flagged_posts"`
	ApprovedPosts     int64      `json:"approved_posts"`
	BannedUsers       int64      `json:"banned_users"`
	WarnedUsers       int64      `json:"warned_users"`
	HighRiskUsers     int64      `json:"high_risk_users"`
	WeeklyReportTrend float64    `json:"weekly_report_trend"`
	OverallRiskLevel  risk.Level `json:"overall_risk_level"`
	GeneratedAt       time.Time  `json:"generated_at"`
}

// Aggregator fans out the counter queries and assembles snapshots.
type Aggregator struct {
	users   user.Repository
	posts   post.Repository
	reports report.Repository
	logger  *logrus.Logger
}

func NewAggregator(users user.Repository, posts post.Repository, reports report.Repository, logger *logrus.Logger) *Aggregator {
	return &Aggregator{users: users, posts: posts, reports: reports, logger: logger}
}

// Collect builds a fresh snapshot. All counters are fetched concurrently;
// any store failure fails the whole snapshot.
func (a *Aggregator) Collect(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	defer func() {
		prometheus.ModerationLatency.WithLabelValues("stats_snapshot").
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	now := time.Now()
	dayAgo := now.AddDate(0, 0, -1)
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	monthAgo := now.AddDate(0, 0, -30)

	snap := &Snapshot{GeneratedAt: now}
	var previousWeek int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.PendingReports, err = a.reports.CountPending(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.ReportsToday, err = a.reports.CountSince(gctx, dayAgo)
		return
	})
	g.Go(func() (err error) {
		snap.ReportsThisWeek, err = a.reports.CountSince(gctx, weekAgo)
		return
	})
	g.Go(func() (err error) {
		snap.ReportsThisMonth, err = a.reports.CountSince(gctx, monthAgo)
		return
	})
	g.Go(func() (err error) {
		previousWeek, err = a.reports.CountBetween(gctx, twoWeeksAgo, weekAgo)
		return
	})
	g.Go(func() (err error) {
		snap.FlaggedPosts, err = a.posts.CountFlagged(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.ApprovedPosts, err = a.posts.CountApproved(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.BannedUsers, err = a.users.CountBanned(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.WarnedUsers, err = a.users.CountWarned(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.HighRiskUsers, err = a.users.CountHighRisk(gctx, highRiskThreshold)
		return
	})

	if err := g.Wait(); err != nil {
		a.logger.WithError(err).Error("failed to collect moderation stats")
		return nil, err
	}

	snap.WeeklyReportTrend = weeklyTrend(snap.ReportsThisWeek, previousWeek)
	snap.OverallRiskLevel = overallLevel(snap.PendingReports + snap.FlaggedPosts + snap.HighRiskUsers)

	prometheus.StatsSnapshotsTotal.Inc()
	return snap, nil
}

// weeklyTrend is the percentage change of this week's report volume against
// the week before. A previously silent platform reports a flat trend.
func weeklyTrend(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

func overallLevel(load int64) risk.Level {
	switch {
	case load >= 100:
		return risk.LevelCritical
	case load >= 50:
		return risk.LevelHigh
	case load >= 20:
		return risk.LevelMedium
	case load >= 5:
		return risk.LevelLow
	default:
		return risk.LevelMinimal
	}
}

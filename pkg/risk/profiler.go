// Package risk scores a user's historical behavior for trust-and-safety
// risk from a weighted multi-factor statistical model.
package risk

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/SentraLabs/Sentra/pkg/domain/errors"
	"github.com/SentraLabs/Sentra/pkg/domain/post"
	"github.com/SentraLabs/Sentra/pkg/domain/report"
	"github.com/SentraLabs/Sentra/pkg/domain/user"
	"github.com/SentraLabs/Sentra/pkg/infra/prometheus"
)

// Factor weights for the total score.
const (
	weightAccountAge           = 1.2
	weightPostFrequency        = 1.0
	weightReportHistory        = 1.5
	weightContentViolations    = 2.0
	weightEngagement           = 0.8
	weightBehaviorConsistency  = 1.3
	weightCommunityInteraction = 1.1
)

const recentPostWindow = 100

// Profiler computes behavioral risk profiles from the collaborator stores.
// It performs no writes; account mutations belong to the caller.
type Profiler struct {
	users   user.Repository
	posts   post.Repository
	reports report.Repository
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewProfiler(users user.Repository, posts post.Repository, reports report.Repository, logger *logrus.Logger) *Profiler {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "risk-store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &Profiler{
		users:   users,
		posts:   posts,
		reports: reports,
		breaker: breaker,
		logger:  logger,
	}
}

// AnalyzeUser builds a fresh risk profile. It returns (nil, nil) when the
// user does not exist or a store fetch fails: callers treat nil as "skip".
func (p *Profiler) AnalyzeUser(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	start := time.Now()
	defer func() {
		prometheus.ModerationLatency.WithLabelValues("risk_analysis").
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	now := time.Now()
	var (
		u           *user.User
		recentPosts []post.Post
		lastPosts   []post.Post
		against     []report.Report
		filed       []report.Report
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(p.guarded(func() error {
		var err error
		u, err = p.users.FindByID(gctx, userID)
		return err
	}))
	g.Go(p.guarded(func() error {
		var err error
		recentPosts, err = p.posts.FindByAuthorSince(gctx, userID, now.AddDate(0, 0, -7))
		return err
	}))
	g.Go(p.guarded(func() error {
		var err error
		lastPosts, err = p.posts.FindRecentByAuthor(gctx, userID, recentPostWindow)
		return err
	}))
	g.Go(p.guarded(func() error {
		var err error
		against, err = p.reports.FindAgainstUserSince(gctx, userID, now.AddDate(0, 0, -30))
		return err
	}))
	g.Go(p.guarded(func() error {
		var err error
		filed, err = p.reports.FindByReporterSince(gctx, userID, now.AddDate(0, 0, -30))
		return err
	}))

	if err := g.Wait(); err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, nil
		}
		p.logger.WithError(err).WithField("user_id", userID).
			Warn("risk analysis degraded: store fetch failed")
		return nil, nil
	}
	if u == nil {
		return nil, nil
	}

	factors := Factors{
		AccountAge:           accountAgeFactor(u.CreatedAt, now),
		PostFrequency:        postFrequencyFactor(recentPosts),
		ReportHistory:        reportHistoryFactor(against, now),
		ContentViolations:    contentViolationsFactor(lastPosts),
		EngagementScore:      engagementFactor(lastPosts),
		BehaviorConsistency:  behaviorConsistencyFactor(lastPosts),
		CommunityInteraction: communityInteractionFactor(filed),
	}

	total := math.Min(10,
		weightAccountAge*factors.AccountAge+
			weightPostFrequency*factors.PostFrequency+
			weightReportHistory*factors.ReportHistory+
			weightContentViolations*factors.ContentViolations+
			weightEngagement*factors.EngagementScore+
			weightBehaviorConsistency*factors.BehaviorConsistency+
			weightCommunityInteraction*factors.CommunityInteraction)

	dupRatio := duplicateContentRatio(lastPosts)
	bot := botLikeTiming(lastPosts)
	level := LevelForScore(total)

	profile := &Profile{
		UserID:                userID,
		RiskScore:             total,
		RiskLevel:             level,
		Factors:               factors,
		DuplicateContentRatio: dupRatio,
		BotLikeTiming:         bot,
		Recommendations:       recommendations(total, factors, contentQualityScore(lastPosts, dupRatio), dupRatio, bot),
		NextReviewDate:        now.Add(reviewInterval(total)),
	}

	prometheus.RiskProfilesTotal.WithLabelValues(string(level)).Inc()
	return profile, nil
}

// guarded wraps a store fetch in the shared circuit breaker so a dying
// store degrades analysis instead of being hammered.
func (p *Profiler) guarded(fn func() error) func() error {
	return func() error {
		_, err := p.breaker.Execute(func() (interface{}, error) {
			return nil, fn()
		})
		return err
	}
}

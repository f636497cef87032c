package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SentraLabs/Sentra/pkg/domain/post"
	"github.com/SentraLabs/Sentra/pkg/domain/report"
)

func TestAccountAgeFactor(t *testing.T) {
	now := time.Now()
	tests := []struct {
		age  time.Duration
		want float64
	}{
		{12 * time.Hour, 5},
		{3 * 24 * time.Hour, 3},
		{15 * 24 * time.Hour, 2},
		{60 * 24 * time.Hour, 1},
		{365 * 24 * time.Hour, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, accountAgeFactor(now.Add(-tt.age), now), "age %v", tt.age)
	}
}

func TestPostFrequencyFactorBurst(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	// 12 posts inside a single hour: low volume but a clear burst
	var posts []post.Post
	for i := 0; i < 12; i++ {
		posts = append(posts, post.Post{CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	assert.Equal(t, 3.0, postFrequencyFactor(posts))

	// spread the same posts over separate hours and the burst bonus vanishes
	var spread []post.Post
	for i := 0; i < 12; i++ {
		spread = append(spread, post.Post{CreatedAt: base.Add(time.Duration(i) * 2 * time.Hour)})
	}
	assert.Equal(t, 0.0, postFrequencyFactor(spread))
}

func TestPostFrequencyFactorVolume(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var posts []post.Post
	for i := 0; i < 55; i++ {
		posts = append(posts, post.Post{CreatedAt: base.Add(time.Duration(i) * 3 * time.Hour)})
	}
	// 55 posts in the window, never more than one per hour
	assert.Equal(t, 4.0, postFrequencyFactor(posts))
}

func TestReportHistoryFactor(t *testing.T) {
	now := time.Now()

	old := []report.Report{
		{CreatedAt: now.AddDate(0, 0, -20)},
		{CreatedAt: now.AddDate(0, 0, -25)},
	}
	assert.Equal(t, 4.0, reportHistoryFactor(old, now))

	withRecent := append(old, report.Report{CreatedAt: now.Add(-time.Hour)})
	// 3 reports doubled plus the recency bonus
	assert.Equal(t, 9.0, reportHistoryFactor(withRecent, now))

	assert.Equal(t, 0.0, reportHistoryFactor(nil, now))
}

func TestContentViolationsFactor(t *testing.T) {
	posts := []post.Post{
		{ModerationSeverity: 10},
		{ModerationSeverity: 10},
		{ModerationSeverity: 5},
	}
	assert.Equal(t, 5.0, contentViolationsFactor(posts))
	assert.Equal(t, 0.0, contentViolationsFactor(nil))

	// caps at 10
	var heavy []post.Post
	for i := 0; i < 10; i++ {
		heavy = append(heavy, post.Post{ModerationSeverity: 10})
	}
	assert.Equal(t, 10.0, contentViolationsFactor(heavy))
}

func TestEngagementFactor(t *testing.T) {
	var ignored []post.Post
	for i := 0; i < 11; i++ {
		ignored = append(ignored, post.Post{})
	}
	assert.Equal(t, 3.0, engagementFactor(ignored))

	var popular []post.Post
	for i := 0; i < 11; i++ {
		popular = append(popular, post.Post{LikeCount: 5, CommentCount: 2})
	}
	assert.Equal(t, 0.0, engagementFactor(popular))

	// too few posts to judge
	assert.Equal(t, 0.0, engagementFactor(ignored[:5]))
}

func TestCommunityInteractionFactor(t *testing.T) {
	var dismissed []report.Report
	for i := 0; i < 6; i++ {
		dismissed = append(dismissed, report.Report{Status: report.StatusDismissed})
	}
	// 6 filed, all dismissed: over the dismissal-rate threshold
	assert.Equal(t, 3.0, communityInteractionFactor(dismissed))

	var many []report.Report
	for i := 0; i < 25; i++ {
		many = append(many, report.Report{Status: report.StatusActioned})
	}
	assert.Equal(t, 5.0, communityInteractionFactor(many))

	assert.Equal(t, 0.0, communityInteractionFactor(nil))
}

func TestDuplicateContentRatio(t *testing.T) {
	identical := []post.Post{
		{Content: "buy my product now"},
		{Content: "buy my product now"},
		{Content: "BUY MY PRODUCT NOW"},
	}
	assert.Equal(t, 1.0, duplicateContentRatio(identical))

	distinct := []post.Post{
		{Content: "thoughts on the game last night"},
		{Content: "recipe for sourdough bread"},
	}
	assert.Equal(t, 0.0, duplicateContentRatio(distinct))

	assert.Equal(t, 0.0, duplicateContentRatio(nil))
	assert.Equal(t, 0.0, duplicateContentRatio(identical[:1]))
}

func TestBotLikeTiming(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var metronomic []post.Post
	for i := 0; i < 12; i++ {
		metronomic = append(metronomic, post.Post{CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	assert.True(t, botLikeTiming(metronomic))

	var organic []post.Post
	intervals := []time.Duration{0, 3, 40, 45, 300, 305, 500, 1000, 1100, 2000, 2500, 4000}
	for _, m := range intervals {
		organic = append(organic, post.Post{CreatedAt: base.Add(m * time.Minute)})
	}
	assert.False(t, botLikeTiming(organic))

	// too few posts to judge
	assert.False(t, botLikeTiming(metronomic[:5]))
}

func TestContentQualityScore(t *testing.T) {
	assert.Equal(t, 10.0, contentQualityScore(nil, 0))

	bad := []post.Post{{ModerationSeverity: 8}, {ModerationSeverity: 8}}
	assert.Equal(t, 0.0, contentQualityScore(bad, 1.0))

	mixed := []post.Post{{ModerationSeverity: 2}, {ModerationSeverity: 0}}
	assert.InDelta(t, 9.0-1.0, contentQualityScore(mixed, 0.2), 0.001)
}

func TestRecommendationTiers(t *testing.T) {
	critical := recommendations(9, Factors{ReportHistory: 9}, 10, 0, false)
	assert.Equal(t, []Action{ActionImmediateReview, ActionTemporarySuspension}, critical)

	high := recommendations(7, Factors{ContentViolations: 7}, 10, 0, false)
	assert.Equal(t, []Action{ActionEnhancedMonitoring, ActionContentRestriction}, high)

	medium := recommendations(5, Factors{}, 10, 0, false)
	assert.Equal(t, []Action{ActionIncreasedMonitoring}, medium)

	spammy := recommendations(1, Factors{}, 2, 0.6, true)
	assert.Equal(t, []Action{ActionContentReview, ActionSpamFilter, ActionBotVerification}, spammy)

	assert.Empty(t, recommendations(1, Factors{}, 10, 0, false))
}

func TestReviewInterval(t *testing.T) {
	assert.Equal(t, 24*time.Hour, reviewInterval(9))
	assert.Equal(t, 3*24*time.Hour, reviewInterval(6.5))
	assert.Equal(t, 7*24*time.Hour, reviewInterval(4))
	assert.Equal(t, 14*24*time.Hour, reviewInterval(2.2))
	assert.Equal(t, 30*24*time.Hour, reviewInterval(0.5))
}

func TestLevelForScore(t *testing.T) {
	assert.Equal(t, LevelCritical, LevelForScore(8))
	assert.Equal(t, LevelHigh, LevelForScore(6.1))
	assert.Equal(t, LevelMedium, LevelForScore(4))
	assert.Equal(t, LevelLow, LevelForScore(2))
	assert.Equal(t, LevelMinimal, LevelForScore(1.9))
}

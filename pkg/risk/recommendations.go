package risk

import (
	"math"
	"time"

	"github.com/SentraLabs/Sentra/pkg/domain/post"
)

// contentQualityScore grades recent output on a 0-10 scale: heavy duplication
// and a high average moderation severity both drag it down.
func contentQualityScore(posts []post.Post, dupRatio float64) float64 {
	avgSeverity := 0.0
	if len(posts) > 0 {
		sum := 0
		for _, p := range posts {
			sum += p.ModerationSeverity
		}
		avgSeverity = float64(sum) / float64(len(posts))
	}
	return clamp10(10 - 5*dupRatio - math.Min(avgSeverity, 5))
}

// recommendations derives the ordered follow-up actions. Higher score tiers
// are cumulative with the content and account signals below them.
func recommendations(total float64, factors Factors, contentQuality, dupRatio float64, botTiming bool) []Action {
	var actions []Action

	switch {
	case total >= 8:
		actions = append(actions, ActionImmediateReview)
		if factors.ReportHistory >= 8 {
			actions = append(actions, ActionTemporarySuspension)
		}
	case total >= 6:
		actions = append(actions, ActionEnhancedMonitoring)
		if factors.ContentViolations >= 6 {
			actions = append(actions, ActionContentRestriction)
		}
	case total >= 4:
		actions = append(actions, ActionIncreasedMonitoring)
	}

	if contentQuality < 3 {
		actions = append(actions, ActionContentReview)
		if dupRatio > 0.5 {
			actions = append(actions, ActionSpamFilter)
		}
	}
	if factors.AccountAge >= 3 {
		actions = append(actions, ActionNewUserMonitoring)
	}
	if botTiming {
		actions = append(actions, ActionBotVerification)
	}

	return actions
}

// reviewInterval shortens the re-analysis horizon as risk grows.
func reviewInterval(total float64) time.Duration {
	const day = 24 * time.Hour
	switch {
	case total >= 8:
		return 1 * day
	case total >= 6:
		return 3 * day
	case total >= 4:
		return 7 * day
	case total >= 2:
		return 14 * day
	default:
		return 30 * day
	}
}

package risk

import (
	"time"

	"github.com/google/uuid"
)

// Level buckets the numeric behavioral risk score.
type Level string

const (
	LevelMinimal  Level = "MINIMAL"
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// LevelForScore maps a 0-10 score onto its bucket.
func LevelForScore(score float64) Level {
	switch {
	case score >= 8:
		return LevelCritical
	case score >= 6:
		return LevelHigh
	case score >= 4:
		return LevelMedium
	case score >= 2:
		return LevelLow
	default:
		return LevelMinimal
	}
}

// Action is a recommended moderation follow-up. The engine only recommends;
// applying account mutations is the caller's job.
type Action string

const (
	ActionImmediateReview     Action = "IMMEDIATE_REVIEW"
	ActionTemporarySuspension Action = "TEMPORARY_SUSPENSION"
	ActionEnhancedMonitoring  Action = "ENHANCED_MONITORING"
	ActionContentRestriction  Action = "CONTENT_RESTRICTION"
	ActionIncreasedMonitoring Action = "INCREASED_MONITORING"
	ActionContentReview       Action = "CONTENT_REVIEW"
	ActionSpamFilter          Action = "SPAM_FILTER"
	ActionNewUserMonitoring   Action = "NEW_USER_MONITORING"
	ActionBotVerification     Action = "BOT_VERIFICATION"
)

// Factors are the per-dimension scores, each clamped to [0,10].
type Factors struct {
	AccountAge           float64 `json:"account_age"`
	PostFrequency        float64 `json:"post_frequency"`
	ReportHistory        float64 `json:"report_history"`
	ContentViolations    float64 `json:"content_violations"`
	EngagementScore      float64 `json:"engagement_score"`
	BehaviorConsistency  float64 `json:"behavior_consistency"`
	CommunityInteraction float64 `json:"community_interaction"`
}

// Profile is the result of one behavioral analysis. It is computed fresh on
// every call and never persisted by this engine.
type Profile struct {
	UserID                uuid.UUID `json:"user_id"`
	RiskScore             float64   `json:"risk_score"`
	RiskLevel             Level     `json:"risk_level"`
	Factors               Factors   `json:"factors"`
	DuplicateContentRatio float64   `json:"duplicate_content_ratio"`
	BotLikeTiming         bool      `json:"bot_like_timing"`
	Recommendations       []Action  `json:"recommendations"`
	NextReviewDate        time.Time `json:"next_review_date"`
}

package moderation

import (
	"github.com/SentraLabs/Sentra/pkg/moderation/patterns"
)

// Config controls a single moderation call. It is a value type: callers get
// compile-time checked option names and the engine never mutates it.
type Config struct {
	StrictMode         bool `json:"strict_mode" mapstructure:"strict_mode"`
	AllowMildProfanity bool `json:"allow_mild_profanity" mapstructure:"allow_mild_profanity"`
	ContextAware       bool `json:"context_aware" mapstructure:"context_aware"`
	PersonalInfoCheck  bool `json:"personal_info_check" mapstructure:"personal_info_check"`
	SpamCheck          bool `json:"spam_check" mapstructure:"spam_check"`
}

// DefaultConfig enables every detector with context awareness on.
func DefaultConfig() Config {
	return Config{
		ContextAware:      true,
		PersonalInfoCheck: true,
		SpamCheck:         true,
	}
}

// MatchInfo records one rule hit.
type MatchInfo struct {
	Word     string            `json:"word"`
	Category patterns.Category `json:"category"`
	Pattern  string            `json:"pattern"`
}

// CategoryResult is the outcome of one detector.
type CategoryResult struct {
	Detected bool        `json:"detected"`
	Severity int         `json:"severity"`
	Matches  []MatchInfo `json:"matches,omitempty"`
}

// Result is the decision returned to the caller. Severity is additive across
// categories; Confidence is a 0-100 heuristic, not a calibrated probability.
// ShouldBlock implies ShouldFlag.
type Result struct {
	IsClean        bool                                 `json:"is_clean"`
	ShouldBlock    bool                                 `json:"should_block"`
	ShouldFlag     bool                                 `json:"should_flag"`
	ShouldWarn     bool                                 `json:"should_warn"`
	Severity       int                                  `json:"severity"`
	Confidence     int                                  `json:"confidence"`
	Flags          map[patterns.Category]CategoryResult `json:"flags"`
	Issues         []string                             `json:"issues"`
	CleanedContent string                               `json:"cleaned_content"`
}

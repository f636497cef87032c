package moderation

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SentraLabs/Sentra/pkg/infra/cache"
	"github.com/SentraLabs/Sentra/pkg/moderation/patterns"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(opts ...Option) *Service {
	return NewService(patterns.Builtin(), testLogger(), opts...)
}

func TestModerateEmptyInput(t *testing.T) {
	svc := newTestService()

	for _, text := range []string{"", "   ", "\n\t"} {
		res := svc.Moderate(context.Background(), text, DefaultConfig())
		assert.True(t, res.IsClean)
		assert.False(t, res.ShouldBlock)
		assert.False(t, res.ShouldFlag)
		assert.Zero(t, res.Severity)
		assert.Empty(t, res.CleanedContent)
	}
}

func TestModerateCleanText(t *testing.T) {
	svc := newTestService()

	res := svc.Moderate(context.Background(), "have a wonderful day", DefaultConfig())
	assert.True(t, res.IsClean)
	assert.False(t, res.ShouldBlock)
	assert.False(t, res.ShouldFlag)
	assert.False(t, res.ShouldWarn)
	assert.Zero(t, res.Severity)
	assert.Equal(t, "have a wonderful day", res.CleanedContent)
}

func TestModerateWhitelistShortCircuit(t *testing.T) {
	svc := newTestService()

	// place names containing profane substrings must never be penalized
	for _, text := range []string{
		"greetings from Scunthorpe",
		"the CSS className attribute",
		"Penistone is in Yorkshire",
	} {
		res := svc.Moderate(context.Background(), text, DefaultConfig())
		assert.True(t, res.IsClean, "expected clean for %q", text)
		assert.Equal(t, text, res.CleanedContent)
	}
}

func TestModerateProfanity(t *testing.T) {
	svc := newTestService()

	res := svc.Moderate(context.Background(), "what the fuck", DefaultConfig())
	assert.False(t, res.IsClean)
	assert.False(t, res.ShouldBlock)
	assert.True(t, res.ShouldFlag)
	assert.Equal(t, 3, res.Severity)
	assert.True(t, res.Flags[patterns.CategoryProfanity].Detected)
	assert.Equal(t, "what the ****", res.CleanedContent)
	assert.NotEmpty(t, res.Issues)
}

func TestModerateObfuscatedProfanity(t *testing.T) {
	svc := newTestService()

	tests := []string{"f.u.c.k you", "fuuuck this", "b1tch please", "you a$$hole"}
	for _, text := range tests {
		res := svc.Moderate(context.Background(), text, DefaultConfig())
		assert.False(t, res.IsClean, "expected detection for %q", text)
		assert.True(t, res.Flags[patterns.CategoryProfanity].Detected, "expected profanity flag for %q", text)
		assert.GreaterOrEqual(t, res.Severity, 2, "severity too low for %q", text)
	}
}

func TestModerateObfuscationRedaction(t *testing.T) {
	svc := newTestService()

	res := svc.Moderate(context.Background(), "f.u.c.k you", DefaultConfig())
	assert.Equal(t, "******* you", res.CleanedContent)
}

func TestModerateDiacriticRedaction(t *testing.T) {
	svc := newTestService()

	// detected through the folded form, so the stars must land on the
	// original spelling too
	res := svc.Moderate(context.Background(), "what the fück", DefaultConfig())
	assert.True(t, res.Flags[patterns.CategoryProfanity].Detected)
	assert.Equal(t, "what the ****", res.CleanedContent)
}

func TestModerateMildProfanityConfig(t *testing.T) {
	svc := newTestService()

	cfg := DefaultConfig()
	res := svc.Moderate(context.Background(), "damn traffic", cfg)
	assert.False(t, res.IsClean)
	assert.Equal(t, patterns.SeverityMild, res.Severity)
	assert.False(t, res.ShouldFlag)

	cfg.AllowMildProfanity = true
	res = svc.Moderate(context.Background(), "damn traffic", cfg)
	assert.True(t, res.IsClean)
}

func TestModerateContextExemption(t *testing.T) {
	svc := newTestService()

	cfg := DefaultConfig()
	res := svc.Moderate(context.Background(), "damn good coffee", cfg)
	assert.True(t, res.IsClean)

	cfg.ContextAware = false
	res = svc.Moderate(context.Background(), "damn good coffee", cfg)
	assert.False(t, res.IsClean)
}

func TestModerateHateSpeechBlocks(t *testing.T) {
	svc := newTestService()

	res := svc.Moderate(context.Background(), "those people deserve to die", DefaultConfig())
	assert.True(t, res.ShouldBlock)
	assert.True(t, res.ShouldFlag)
	assert.Equal(t, patterns.SeverityViolence, res.Severity)
	assert.Empty(t, res.CleanedContent, "blocked content is never returned cleaned")
}

func TestModerateHateSpeechContextGate(t *testing.T) {
	svc := newTestService()

	// fragments shorter than the context window are not judged as hate
	res := svc.Moderate(context.Background(), "deserve to die", DefaultConfig())
	assert.False(t, res.Flags[patterns.CategoryHateSpeech].Detected)
	assert.False(t, res.ShouldBlock)

	// the word-count gate belongs to the phrase group; disabling context
	// awareness only drops the allowed-context exemptions
	cfg := DefaultConfig()
	cfg.ContextAware = false
	res = svc.Moderate(context.Background(), "deserve to die", cfg)
	assert.False(t, res.Flags[patterns.CategoryHateSpeech].Detected)
	assert.False(t, res.ShouldBlock)
}

func TestModerateBullying(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		text     string
		severity int
		block    bool
	}{
		{"you are worthless", patterns.SeverityDirectAttack, true},
		{"i will find you", patterns.SeverityThreat, true},
		{"shut up", patterns.SeverityHarassment, false},
	}

	for _, tt := range tests {
		res := svc.Moderate(context.Background(), tt.text, DefaultConfig())
		assert.Equal(t, tt.severity, res.Flags[patterns.CategoryBullying].Severity, tt.text)
		assert.Equal(t, tt.block, res.ShouldBlock, tt.text)
		assert.True(t, res.ShouldFlag, tt.text)
	}
}

func TestModerateSpamScoring(t *testing.T) {
	svc := newTestService()

	// two phrases score below the blocking threshold
	res := svc.Moderate(context.Background(), "buy now and click here", DefaultConfig())
	assert.True(t, res.Flags[patterns.CategorySpam].Detected)
	assert.Equal(t, 4, res.Flags[patterns.CategorySpam].Severity)
	assert.False(t, res.ShouldBlock)
	assert.True(t, res.ShouldFlag)

	// four phrases cross it
	res = svc.Moderate(context.Background(), "buy now click here free money act now", DefaultConfig())
	assert.Equal(t, 8, res.Flags[patterns.CategorySpam].Severity)
	assert.True(t, res.ShouldBlock)

	cfg := DefaultConfig()
	cfg.SpamCheck = false
	res = svc.Moderate(context.Background(), "buy now click here free money act now", cfg)
	assert.False(t, res.Flags[patterns.CategorySpam].Detected)
}

func TestModerateSpamRepetition(t *testing.T) {
	svc := newTestService()

	res := svc.Moderate(context.Background(), "spam spam spam spam spam", DefaultConfig())
	assert.True(t, res.Flags[patterns.CategorySpam].Detected)
	assert.Equal(t, 3, res.Flags[patterns.CategorySpam].Severity)
}

func TestModerateQualityCapsNeedPredominance(t *testing.T) {
	svc := newTestService()

	// a long acronym inside ordinary prose is not shouting
	res := svc.Moderate(context.Background(), "the HTTPSERVERAPI handler was rewritten for clarity", DefaultConfig())
	assert.False(t, res.Flags[patterns.CategoryQuality].Detected)

	res = svc.Moderate(context.Background(), "STOP SHOUTING AT EVERYONE RIGHT NOW OK", DefaultConfig())
	assert.True(t, res.Flags[patterns.CategoryQuality].Detected)
}

func TestModeratePersonalInfo(t *testing.T) {
	svc := newTestService()

	res := svc.Moderate(context.Background(), "call me at 555-123-4567", DefaultConfig())
	assert.True(t, res.Flags[patterns.CategoryPersonalInfo].Detected)
	assert.Equal(t, 3, res.Flags[patterns.CategoryPersonalInfo].Severity)
	assert.True(t, res.ShouldFlag)
	assert.Equal(t, "call me at [PHONE]", res.CleanedContent)

	cfg := DefaultConfig()
	cfg.PersonalInfoCheck = false
	res = svc.Moderate(context.Background(), "call me at 555-123-4567", cfg)
	assert.False(t, res.Flags[patterns.CategoryPersonalInfo].Detected)
}

func TestModerateInvalidCardNotDetected(t *testing.T) {
	svc := newTestService()

	// structurally card-shaped but fails the checksum
	res := svc.Moderate(context.Background(), "my card 4111111111111112", DefaultConfig())
	assert.False(t, res.Flags[patterns.CategoryPersonalInfo].Detected)
}

func TestModerateStrictMode(t *testing.T) {
	svc := newTestService()

	cfg := DefaultConfig()
	cfg.StrictMode = true
	res := svc.Moderate(context.Background(), "good morning everyone", cfg)
	assert.True(t, res.IsClean)
	assert.True(t, res.ShouldWarn)
}

func TestModerateCleanedContentIsStable(t *testing.T) {
	svc := newTestService()

	first := svc.Moderate(context.Background(), "what the fuck", DefaultConfig())
	second := svc.Moderate(context.Background(), first.CleanedContent, DefaultConfig())
	assert.True(t, second.IsClean)
	assert.Equal(t, first.CleanedContent, second.CleanedContent)
}

func TestModerateBatchAlignment(t *testing.T) {
	svc := newTestService()

	texts := []string{
		"what the fuck",
		"have a nice day",
		"you are worthless",
		"",
	}

	for _, batchSize := range []int{1, 2, 0} {
		results := svc.ModerateBatch(context.Background(), texts, DefaultConfig(), batchSize)
		require.Len(t, results, len(texts))
		assert.False(t, results[0].IsClean, "batchSize=%d", batchSize)
		assert.True(t, results[1].IsClean, "batchSize=%d", batchSize)
		assert.True(t, results[2].ShouldBlock, "batchSize=%d", batchSize)
		assert.True(t, results[3].IsClean, "batchSize=%d", batchSize)
	}
}

func TestModerateResultCache(t *testing.T) {
	c := cache.NewMemoryClient(time.Minute)
	svc := newTestService(WithResultCache(c, time.Minute))

	first := svc.Moderate(context.Background(), "what the fuck", DefaultConfig())
	second := svc.Moderate(context.Background(), "what the fuck", DefaultConfig())
	assert.Equal(t, first.Severity, second.Severity)
	assert.Equal(t, first.CleanedContent, second.CleanedContent)

	// differing config must not share cache entries
	cfg := DefaultConfig()
	cfg.StrictMode = true
	strict := svc.Moderate(context.Background(), "what the fuck", cfg)
	assert.True(t, strict.ShouldWarn)
	assert.False(t, second.ShouldWarn)
}

func TestDetectorFailureDegradesToClean(t *testing.T) {
	lib := patterns.Builtin()
	// a nil pattern makes the slur detector panic; the pipeline must absorb it
	lib.SlurRules = append(lib.SlurRules, patterns.Rule{
		Canonical: "broken",
		Category:  patterns.CategorySlur,
		Severity:  patterns.SeveritySlur,
	})
	svc := NewService(lib, testLogger())

	res := svc.Moderate(context.Background(), "have a nice day", DefaultConfig())
	assert.False(t, res.Flags[patterns.CategorySlur].Detected)
	assert.True(t, res.IsClean)
}

func TestCustomSlurDetection(t *testing.T) {
	lib := patterns.Builtin()
	lib.Merge(patterns.ExternalConfig{CustomSlurs: []string{"zorblat"}}, testLogger())
	svc := NewService(lib, testLogger())

	res := svc.Moderate(context.Background(), "you z0rblat", DefaultConfig())
	assert.True(t, res.Flags[patterns.CategorySlur].Detected)
	assert.True(t, res.ShouldBlock)
	assert.Empty(t, res.CleanedContent)
}

func TestFilterPersonalInfo(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "phone",
			input: "call me at 555-123-4567",
			want:  "call me at [PHONE]",
		},
		{
			name:  "email",
			input: "write to user@example.com",
			want:  "write to [EMAIL]",
		},
		{
			name:  "ssn",
			input: "ssn is 856-45-6789",
			want:  "ssn is [SSN]",
		},
		{
			name:  "card",
			input: "card: 4111111111111111",
			want:  "card: [CARD]",
		},
		{
			name:  "invalid card left intact",
			input: "number 4111111111111112",
			want:  "number 4111111111111112",
		},
		{
			name:  "mixed entities",
			input: "user@example.com or 555-123-4567",
			want:  "[EMAIL] or [PHONE]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.FilterPersonalInfo(tt.input))
		})
	}
}

func TestConfidenceBounds(t *testing.T) {
	svc := newTestService()

	texts := []string{
		"",
		"have a nice day",
		"what the fuck",
		"those people deserve to die",
		"buy now click here free money act now you worthless fuck",
	}
	for _, text := range texts {
		res := svc.Moderate(context.Background(), text, DefaultConfig())
		assert.GreaterOrEqual(t, res.Confidence, 0, text)
		assert.LessOrEqual(t, res.Confidence, 100, text)
	}
}

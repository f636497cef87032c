// Package moderation implements the deterministic, rule-based content
// moderation engine: detector pipeline, decision aggregation and redaction.
package moderation

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/SentraLabs/Sentra/pkg/infra/cache"
	"github.com/SentraLabs/Sentra/pkg/infra/prometheus"
	"github.com/SentraLabs/Sentra/pkg/moderation/normalizer"
	"github.com/SentraLabs/Sentra/pkg/moderation/patterns"
)

const DefaultBatchSize = 10

// Service runs the moderation pipeline against an immutable pattern library.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	library  *patterns.Library
	logger   *logrus.Logger
	cache    cache.Client
	cacheTTL time.Duration
}

type Option func(*Service)

// WithResultCache fronts Moderate with a cache keyed by content and config.
// Purely a performance layer; behavior is identical without it.
func WithResultCache(c cache.Client, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func NewService(library *patterns.Library, logger *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		library: library,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Moderate classifies a single text. It never fails: malformed or empty
// input yields the zero clean result, and an internal detector fault
// degrades to "not detected" for that category only.
func (s *Service) Moderate(ctx context.Context, text string, cfg Config) Result {
	start := time.Now()
	defer func() {
		prometheus.ModerationLatency.WithLabelValues("moderate").
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	if strings.TrimSpace(text) == "" {
		return zeroResult()
	}

	cacheKey := s.cacheKey(text, cfg)
	if cached, ok := s.cachedResult(ctx, cacheKey); ok {
		return cached
	}

	n := normalizer.Normalize(text)
	in := input{
		original: text,
		lower:    strings.ToLower(text),
		norm:     n.Normalized,
		compact:  n.Compact,
		words:    len(strings.Fields(text)),
	}

	var res Result
	if s.whitelisted(in.norm) {
		res = cleanResult(text)
	} else {
		flags := make(map[patterns.Category]CategoryResult, len(pipeline))
		for _, d := range pipeline {
			flags[d.category] = s.runDetector(d, in, cfg)
		}
		res = s.aggregate(text, cfg, flags)
	}

	s.observe(res)
	s.storeResult(ctx, cacheKey, res)
	return res
}

// ModerateBatch moderates texts on a bounded worker pool. Results are
// index-aligned with the input regardless of pool size.
func (s *Service) ModerateBatch(ctx context.Context, texts []string, cfg Config, batchSize int) []Result {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	results := make([]Result, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchSize)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			results[i] = s.Moderate(gctx, text, cfg)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FilterPersonalInfo replaces validated personal information with typed
// placeholders. Structural matches failing their validator are left intact.
func (s *Service) FilterPersonalInfo(text string) string {
	out := text
	for _, entity := range patterns.EntityDetectionOrder {
		re := patterns.EntityPatterns[entity]
		validate := patterns.EntityValidators[entity]
		placeholder := patterns.EntityPlaceholders[entity]
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			if validate(m) {
				return placeholder
			}
			return m
		})
	}
	return out
}

func (s *Service) whitelisted(norm string) bool {
	for _, term := range s.library.Whitelist {
		if strings.Contains(norm, term) {
			return true
		}
	}
	return false
}

// runDetector fails open: a panicking detector logs and reports "not
// detected" so a classifier bug can never block legitimate content.
func (s *Service) runDetector(d detector, in input, cfg Config) (out CategoryResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithFields(logrus.Fields{
				"category": d.category,
				"panic":    r,
			}).Warn("detector fault, category treated as not detected")
			out = CategoryResult{}
		}
	}()
	return d.run(s, in, cfg)
}

func (s *Service) aggregate(text string, cfg Config, flags map[patterns.Category]CategoryResult) Result {
	severity := 0
	categoriesFlagged := 0
	for _, r := range flags {
		severity += r.Severity
		if r.Detected {
			categoriesFlagged++
		}
	}

	qualityIssues := len(flags[patterns.CategoryQuality].Matches)

	shouldBlock := flags[patterns.CategoryHateSpeech].Detected ||
		flags[patterns.CategorySlur].Detected ||
		flags[patterns.CategoryBullying].Severity >= 6 ||
		flags[patterns.CategorySpam].Severity >= 7

	shouldFlag := shouldBlock || qualityIssues >= 2
	for _, r := range flags {
		if r.Detected && r.Severity >= 3 {
			shouldFlag = true
			break
		}
	}

	shouldWarn := flags[patterns.CategoryProfanity].Severity >= 5 || cfg.StrictMode

	confidence := 50 + 15*categoriesFlagged
	if bump := severity * 5; bump < 30 {
		confidence += bump
	} else {
		confidence += 30
	}
	if severity <= 2 {
		confidence -= 20
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	cleaned := ""
	if !shouldBlock {
		cleaned = s.redact(text, flags)
	}

	return Result{
		IsClean:        severity == 0,
		ShouldBlock:    shouldBlock,
		ShouldFlag:     shouldFlag,
		ShouldWarn:     shouldWarn,
		Severity:       severity,
		Confidence:     confidence,
		Flags:          flags,
		Issues:         buildIssues(flags),
		CleanedContent: cleaned,
	}
}

// buildIssues walks categories in pipeline order so the list is deterministic.
func buildIssues(flags map[patterns.Category]CategoryResult) []string {
	var issues []string
	for _, cat := range patterns.Categories {
		r := flags[cat]
		if !r.Detected {
			continue
		}
		for _, m := range r.Matches {
			issues = append(issues, fmt.Sprintf("%s: %s (severity %d)", cat, m.Word, r.Severity))
		}
	}
	return issues
}

func (s *Service) redact(text string, flags map[patterns.Category]CategoryResult) string {
	out := text

	for _, cat := range []patterns.Category{patterns.CategoryProfanity, patterns.CategorySlur} {
		for _, m := range flags[cat].Matches {
			var src string
			switch {
			case strings.HasPrefix(m.Pattern, "literal:"):
				src = `\b` + regexp.QuoteMeta(m.Word) + `\b`
			case strings.HasPrefix(m.Pattern, "obfuscation:"):
				src = patterns.TolerantPattern(m.Word)
			default:
				src = regexp.QuoteMeta(m.Word)
			}
			re, err := regexp.Compile(`(?i)` + src)
			if err != nil {
				continue
			}
			next := re.ReplaceAllStringFunc(out, func(hit string) string {
				return strings.Repeat("*", utf8.RuneCountInString(hit))
			})
			if next == out {
				// surface forms like "fück" only match after folding
				next = redactFolded(out, re)
			}
			out = next
		}
	}

	if flags[patterns.CategoryPersonalInfo].Detected {
		out = s.FilterPersonalInfo(out)
	}
	return out
}

// redactFolded stars original runes whose folded forms produce a match.
// Each rune is folded independently so every folded rune maps back to the
// original rune it came from; a match span in the folded text then marks the
// originating runes for starring.
func redactFolded(text string, re *regexp.Regexp) string {
	orig := []rune(text)
	var folded []rune
	var source []int
	for i, r := range orig {
		for _, fr := range normalizer.Normalize(string(r)).Normalized {
			folded = append(folded, fr)
			source = append(source, i)
		}
	}

	foldedText := string(folded)
	locs := re.FindAllStringIndex(foldedText, -1)
	if len(locs) == 0 {
		return text
	}

	runeAt := make(map[int]int, len(folded)+1)
	idx := 0
	for off := range foldedText {
		runeAt[off] = idx
		idx++
	}
	runeAt[len(foldedText)] = idx

	hit := make([]bool, len(orig))
	for _, loc := range locs {
		for j := runeAt[loc[0]]; j < runeAt[loc[1]]; j++ {
			hit[source[j]] = true
		}
	}
	for i := range orig {
		if hit[i] {
			orig[i] = '*'
		}
	}
	return string(orig)
}

func zeroResult() Result {
	return Result{
		IsClean: true,
		Flags:   map[patterns.Category]CategoryResult{},
	}
}

func cleanResult(text string) Result {
	r := zeroResult()
	// same formula as aggregate with nothing detected
	r.Confidence = 30
	r.CleanedContent = text
	return r
}

func (s *Service) observe(res Result) {
	decision := "clean"
	switch {
	case res.ShouldBlock:
		decision = "block"
	case res.ShouldFlag:
		decision = "flag"
	case res.ShouldWarn:
		decision = "warn"
	}
	prometheus.ModerationTotal.WithLabelValues(decision).Inc()
	for cat, r := range res.Flags {
		if r.Detected {
			prometheus.CategoryHits.WithLabelValues(string(cat)).Inc()
		}
	}
}

func (s *Service) cacheKey(text string, cfg Config) string {
	if s.cache == nil {
		return ""
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%t|%t|%t|%t|%t",
		text, cfg.StrictMode, cfg.AllowMildProfanity, cfg.ContextAware,
		cfg.PersonalInfoCheck, cfg.SpamCheck)))
	return fmt.Sprintf("moderation:result:%x", sum)
}

func (s *Service) cachedResult(ctx context.Context, key string) (Result, bool) {
	if s.cache == nil || key == "" {
		return Result{}, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return Result{}, false
	}
	return res, true
}

func (s *Service) storeResult(ctx context.Context, key string, res Result) {
	if s.cache == nil || key == "" {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.WithError(err).Debug("moderation result cache write failed")
	}
}

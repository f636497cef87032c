package moderation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/SentraLabs/Sentra/pkg/moderation/patterns"
)

// input carries the three text representations every detector runs against.
type input struct {
	original string
	lower    string
	norm     string
	compact  string
	words    int
}

type detector struct {
	category patterns.Category
	run      func(*Service, input, Config) CategoryResult
}

// pipeline fixes detector order; every category is evaluated, the whitelist
// short-circuit in Moderate is the only early exit.
var pipeline = []detector{
	{patterns.CategoryProfanity, (*Service).detectProfanity},
	{patterns.CategoryHateSpeech, (*Service).detectHateSpeech},
	{patterns.CategorySlur, (*Service).detectSlurs},
	{patterns.CategoryBullying, (*Service).detectBullying},
	{patterns.CategorySpam, (*Service).detectSpam},
	{patterns.CategoryPersonalInfo, (*Service).detectPersonalInfo},
	{patterns.CategoryQuality, (*Service).detectQuality},
}

func firstMatch(re *regexp.Regexp, texts ...string) string {
	for _, t := range texts {
		if m := re.FindString(t); m != "" {
			return m
		}
	}
	return ""
}

func inAllowedContext(in input, contexts []string) bool {
	for _, c := range contexts {
		if strings.Contains(in.lower, c) || strings.Contains(in.norm, c) {
			return true
		}
	}
	return false
}

func (s *Service) detectProfanity(in input, cfg Config) CategoryResult {
	var res CategoryResult
	seen := make(map[string]struct{})

	for i := range s.library.Profanity {
		w := &s.library.Profanity[i]
		if cfg.AllowMildProfanity && w.Severity == patterns.SeverityMild {
			continue
		}
		matched := w.Boundary().MatchString(in.original) || w.Boundary().MatchString(in.norm)
		if !matched && w.Severity == patterns.SeveritySevere && len(w.Text) >= 4 {
			// compact has no word boundaries; only severe words are worth the
			// false-positive risk, the whitelist catches the Scunthorpe class
			matched = strings.Contains(in.compact, w.Text)
		}
		if !matched {
			continue
		}
		if cfg.ContextAware && inAllowedContext(in, w.AllowedContexts) {
			continue
		}
		key := "literal:" + w.Text
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		res.Detected = true
		if w.Severity > res.Severity {
			res.Severity = w.Severity
		}
		res.Matches = append(res.Matches, MatchInfo{
			Word:     w.Text,
			Category: patterns.CategoryProfanity,
			Pattern:  key,
		})
	}

	for _, rule := range s.library.Obfuscation {
		if firstMatch(rule.Pattern, in.lower, in.norm, in.compact) == "" {
			continue
		}
		key := "obfuscation:" + rule.Canonical
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		res.Detected = true
		if rule.Severity > res.Severity {
			res.Severity = rule.Severity
		}
		res.Matches = append(res.Matches, MatchInfo{
			Word:     rule.Canonical,
			Category: patterns.CategoryProfanity,
			Pattern:  key,
		})
	}

	return res
}

func (s *Service) detectHateSpeech(in input, cfg Config) CategoryResult {
	return s.detectPhraseGroups(in, s.library.HateGroups, patterns.CategoryHateSpeech)
}

func (s *Service) detectBullying(in input, cfg Config) CategoryResult {
	return s.detectPhraseGroups(in, s.library.BullyingGroups, patterns.CategoryBullying)
}

// detectPhraseGroups honors each group's MinContextWords unconditionally: the
// word-count gate is a property of the group, not a per-call option.
func (s *Service) detectPhraseGroups(in input, groups []patterns.PhraseGroup, cat patterns.Category) CategoryResult {
	var res CategoryResult
	for _, g := range groups {
		if g.MinContextWords > 0 && in.words < g.MinContextWords {
			continue
		}
		for _, p := range g.Phrases {
			if !strings.Contains(in.lower, p) && !strings.Contains(in.norm, p) {
				continue
			}
			res.Detected = true
			if g.Severity > res.Severity {
				res.Severity = g.Severity
			}
			res.Matches = append(res.Matches, MatchInfo{
				Word:     p,
				Category: cat,
				Pattern:  "phrase:" + g.Name,
			})
		}
	}
	return res
}

func (s *Service) detectSlurs(in input, cfg Config) CategoryResult {
	var res CategoryResult
	for _, rule := range s.library.SlurRules {
		m := firstMatch(rule.Pattern, in.lower, in.norm, in.compact)
		if m == "" {
			continue
		}
		if s.whitelistedToken(m) {
			continue
		}
		res.Detected = true
		if rule.Severity > res.Severity {
			res.Severity = rule.Severity
		}
		res.Matches = append(res.Matches, MatchInfo{
			Word:     m,
			Category: patterns.CategorySlur,
			Pattern:  "slur:" + rule.Canonical,
		})
	}
	return res
}

// whitelistedToken suppresses slur matches sitting inside curated benign terms.
func (s *Service) whitelistedToken(token string) bool {
	for _, term := range s.library.Whitelist {
		if strings.Contains(term, token) {
			return true
		}
	}
	return false
}

func (s *Service) detectSpam(in input, cfg Config) CategoryResult {
	var res CategoryResult
	if !cfg.SpamCheck {
		return res
	}

	score := 0
	for _, g := range s.library.SpamGroups {
		for _, p := range g.Phrases {
			if !strings.Contains(in.lower, p) && !strings.Contains(in.norm, p) {
				continue
			}
			score += g.Severity
			res.Matches = append(res.Matches, MatchInfo{
				Word:     p,
				Category: patterns.CategorySpam,
				Pattern:  "phrase:" + g.Name,
			})
		}
	}

	if hasRepeatedRun(in.original, 3, 4) {
		score += 3
		res.Matches = append(res.Matches, MatchInfo{
			Word:     "repeated content",
			Category: patterns.CategorySpam,
			Pattern:  "heuristic:repetition",
		})
	}

	if n := emojiCount(in.original); n > 10 {
		bonus := n - 10
		if bonus > 5 {
			bonus = 5
		}
		score += bonus
		res.Matches = append(res.Matches, MatchInfo{
			Word:     "excessive emoji",
			Category: patterns.CategorySpam,
			Pattern:  "heuristic:emoji",
		})
	}

	letters, uppers := letterCounts(in.original)
	if letters > 10 && float64(uppers) > 0.7*float64(letters) {
		score += 2
		res.Matches = append(res.Matches, MatchInfo{
			Word:     "excessive capitalization",
			Category: patterns.CategorySpam,
			Pattern:  "heuristic:uppercase",
		})
	}

	res.Severity = score
	res.Detected = score > 0
	return res
}

func (s *Service) detectPersonalInfo(in input, cfg Config) CategoryResult {
	var res CategoryResult
	if !cfg.PersonalInfoCheck {
		return res
	}

	for _, entity := range patterns.EntityDetectionOrder {
		re := patterns.EntityPatterns[entity]
		validate := patterns.EntityValidators[entity]
		for _, m := range re.FindAllString(in.original, -1) {
			if !validate(m) {
				// structural match failing its checksum is "not detected"
				continue
			}
			res.Detected = true
			res.Severity += 3
			res.Matches = append(res.Matches, MatchInfo{
				Word:     m,
				Category: patterns.CategoryPersonalInfo,
				Pattern:  string(entity),
			})
		}
	}
	return res
}

func (s *Service) detectQuality(in input, cfg Config) CategoryResult {
	var res CategoryResult

	if longestCharRun(in.original) >= 10 {
		res.Severity++
		res.Matches = append(res.Matches, MatchInfo{
			Word:     "repeated character",
			Category: patterns.CategoryQuality,
			Pattern:  "heuristic:char_run",
		})
	}

	letters, uppers := letterCounts(in.original)
	if len(in.original) > 20 && uppers*2 > letters && longestUpperRun(in.original) >= 10 {
		res.Severity++
		res.Matches = append(res.Matches, MatchInfo{
			Word:     "excessive capitalization",
			Category: patterns.CategoryQuality,
			Pattern:  "heuristic:caps_run",
		})
	}

	if longestPunctRun(in.original) >= 5 {
		res.Severity++
		res.Matches = append(res.Matches, MatchInfo{
			Word:     "excessive punctuation",
			Category: patterns.CategoryQuality,
			Pattern:  "heuristic:punct_run",
		})
	}

	res.Detected = res.Severity > 0
	return res
}

const repeatScanLimit = 2048

// hasRepeatedRun reports whether some substring of at least minLen bytes
// occurs at least minRepeats times back to back.
func hasRepeatedRun(s string, minLen, minRepeats int) bool {
	if len(s) > repeatScanLimit {
		s = s[:repeatScanLimit]
	}
	n := len(s)
	const maxSegment = 64
	for l := minLen; l <= maxSegment && l*minRepeats <= n; l++ {
		for i := 0; i+l*minRepeats <= n; i++ {
			seg := s[i : i+l]
			count := 1
			for j := i + l; j+l <= n && s[j:j+l] == seg; j += l {
				count++
			}
			if count >= minRepeats {
				return true
			}
		}
	}
	return false
}

func emojiCount(s string) int {
	count := 0
	for _, r := range s {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF:
			count++
		case r >= 0x2600 && r <= 0x27BF:
			count++
		case r >= 0x1F1E6 && r <= 0x1F1FF:
			count++
		}
	}
	return count
}

func letterCounts(s string) (letters, uppers int) {
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	return letters, uppers
}

func longestCharRun(s string) int {
	var prev rune
	run, best := 0, 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > best {
			best = run
		}
	}
	return best
}

// longestUpperRun counts consecutive uppercase letters; separators do not
// break the run, lowercase letters and digits do.
func longestUpperRun(s string) int {
	run, best := 0, 0
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			run++
			if run > best {
				best = run
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			run = 0
		}
	}
	return best
}

func longestPunctRun(s string) int {
	run, best := 0, 0
	for _, r := range s {
		if r == '!' || r == '?' {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

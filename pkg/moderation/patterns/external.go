package patterns

import (
	"os"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// PatternsFileEnv names the environment variable pointing at the overlay file.
	PatternsFileEnv = "SENTRA_PATTERNS_FILE"
	// DefaultPatternsFile is used when the environment variable is unset.
	DefaultPatternsFile = "config/patterns.json"
)

// ExternalConfig is the optional operator overlay merged into the built-in
// tables once at process start. Absence of the file is not an error.
type ExternalConfig struct {
	CustomProfanity  []string        `json:"customProfanity" mapstructure:"customProfanity"`
	CustomSlurs      []string        `json:"customSlurs" mapstructure:"customSlurs"`
	WhitelistedTerms []string        `json:"whitelistedTerms" mapstructure:"whitelistedTerms"`
	CustomPatterns   []CustomPattern `json:"customPatterns" mapstructure:"customPatterns"`
}

// CustomPattern is a raw rule entry from the overlay file.
type CustomPattern struct {
	Category  string `json:"category" mapstructure:"category"`
	Pattern   string `json:"pattern" mapstructure:"pattern"`
	Severity  int    `json:"severity" mapstructure:"severity"`
	Canonical string `json:"canonical" mapstructure:"canonical"`
}

// externalFile mirrors the overlay file with customPatterns left loosely
// typed, so a bad entry fails the section instead of the whole file.
type externalFile struct {
	CustomProfanity  []string                 `mapstructure:"customProfanity"`
	CustomSlurs      []string                 `mapstructure:"customSlurs"`
	WhitelistedTerms []string                 `mapstructure:"whitelistedTerms"`
	CustomPatterns   []map[string]interface{} `mapstructure:"customPatterns"`
}

// Load builds the process-wide Library: built-in tables extended by the
// overlay file at path (or the env/default path when empty). A missing or
// malformed file logs a warning and falls back to the built-ins, never fatal.
func Load(path string, logger *logrus.Logger) *Library {
	lib := Builtin()

	if path == "" {
		path = os.Getenv(PatternsFileEnv)
	}
	if path == "" {
		path = DefaultPatternsFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		logger.WithError(err).WithField("path", path).
			Warn("custom pattern file not loaded, using built-in tables")
		return lib
	}

	var raw externalFile
	if err := v.Unmarshal(&raw); err != nil {
		logger.WithError(err).WithField("path", path).
			Warn("custom pattern file is malformed, using built-in tables")
		return lib
	}

	ext := ExternalConfig{
		CustomProfanity:  raw.CustomProfanity,
		CustomSlurs:      raw.CustomSlurs,
		WhitelistedTerms: raw.WhitelistedTerms,
	}
	decoded, err := DecodeCustomPatterns(raw.CustomPatterns)
	if err != nil {
		logger.WithError(err).WithField("path", path).
			Warn("skipping customPatterns section of the overlay")
	} else {
		ext.CustomPatterns = decoded
	}

	lib.Merge(ext, logger)
	logger.WithFields(logrus.Fields{
		"path":        path,
		"profanity":   len(ext.CustomProfanity),
		"slurs":       len(ext.CustomSlurs),
		"whitelisted": len(ext.WhitelistedTerms),
		"patterns":    len(ext.CustomPatterns),
	}).Info("custom pattern overlay merged")
	return lib
}

// Merge folds an overlay into the library. Individual invalid entries are
// skipped with a warning; they never poison the rest of the overlay.
func (l *Library) Merge(ext ExternalConfig, logger *logrus.Logger) {
	for _, word := range ext.CustomProfanity {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		l.Profanity = append(l.Profanity, compileWord(Word{Text: word, Severity: SeverityModerate}))
	}

	for _, slur := range ext.CustomSlurs {
		slur = strings.ToLower(strings.TrimSpace(slur))
		if slur == "" {
			continue
		}
		re, err := regexp.Compile(TolerantPattern(slur))
		if err != nil {
			logger.WithError(err).WithField("entry", "customSlurs").
				Warn("skipping invalid slur entry")
			continue
		}
		l.SlurRules = append(l.SlurRules, Rule{
			Canonical: slur,
			Category:  CategorySlur,
			Severity:  SeveritySlur,
			Pattern:   re,
		})
	}

	for _, term := range ext.WhitelistedTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		l.Whitelist = append(l.Whitelist, term)
	}

	for _, cp := range ext.CustomPatterns {
		rule, err := compileCustomPattern(cp)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"pattern":  cp.Pattern,
				"category": cp.Category,
			}).Warn("skipping invalid custom pattern")
			continue
		}
		switch rule.Category {
		case CategorySlur:
			l.SlurRules = append(l.SlurRules, rule)
		default:
			l.Obfuscation = append(l.Obfuscation, rule)
		}
	}
}

// DecodeCustomPatterns converts loosely-typed overlay entries (as produced by
// a JSON decode into interface{}) into CustomPattern values.
func DecodeCustomPatterns(raw []map[string]interface{}) ([]CustomPattern, error) {
	out := make([]CustomPattern, 0, len(raw))
	for _, entry := range raw {
		var cp CustomPattern
		if err := mapstructure.Decode(entry, &cp); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

var validCustomCategories = map[Category]bool{
	CategoryProfanity:  true,
	CategoryHateSpeech: true,
	CategorySlur:       true,
	CategoryBullying:   true,
	CategorySpam:       true,
}

func compileCustomPattern(cp CustomPattern) (Rule, error) {
	category := Category(cp.Category)
	if !validCustomCategories[category] {
		category = CategoryProfanity
	}
	re, err := regexp.Compile(cp.Pattern)
	if err != nil {
		return Rule{}, err
	}
	severity := cp.Severity
	if severity <= 0 {
		severity = SeverityModerate
	}
	canonical := cp.Canonical
	if canonical == "" {
		canonical = cp.Pattern
	}
	return Rule{
		Canonical: canonical,
		Category:  category,
		Severity:  severity,
		Pattern:   re,
	}, nil
}

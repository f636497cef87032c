// Package patterns holds the categorized detection rule tables used by the
// moderation pipeline: literal profanity tiers, obfuscation-tolerant regexes,
// hate/bullying/spam phrase groups, personal-info entities and the
// false-positive whitelist. The built-in tables plus an optional external
// overlay are compiled once at startup into an immutable Library snapshot.
package patterns

import (
	"regexp"
	"strings"
	"unicode"
)

// Category identifies a detection category in the moderation pipeline.
type Category string

const (
	CategoryProfanity    Category = "profanity"
	CategoryHateSpeech   Category = "hate_speech"
	CategorySlur         Category = "slur"
	CategoryBullying     Category = "bullying"
	CategorySpam         Category = "spam"
	CategoryPersonalInfo Category = "personal_info"
	CategoryQuality      Category = "quality"
)

// Categories fixes the evaluation order of the pipeline.
var Categories = []Category{
	CategoryProfanity,
	CategoryHateSpeech,
	CategorySlur,
	CategoryBullying,
	CategorySpam,
	CategoryPersonalInfo,
	CategoryQuality,
}

// Profanity tier severities.
const (
	SeverityMild     = 1
	SeverityModerate = 2
	SeveritySevere   = 3
)

// Group severities and context gates.
const (
	SeverityViolence        = 10
	SeveritySlur            = 9
	SeverityDehumanization  = 8
	SeverityThreat          = 8
	SeverityDirectAttack    = 6
	SeverityHarassment      = 4
	SpamScorePerMatch       = 2
	HateContextMinimumWords = 5
)

// Word is a literal profanity entry. AllowedContexts lists phrases that
// exempt the word when they appear in the surrounding text.
type Word struct {
	Text            string
	Severity        int
	AllowedContexts []string
	boundary        *regexp.Regexp
}

// Boundary returns the compiled word-boundary matcher for the entry.
func (w *Word) Boundary() *regexp.Regexp {
	return w.boundary
}

// Rule is a compiled regex detection rule mapped to a canonical word.
type Rule struct {
	Canonical string
	Category  Category
	Severity  int
	Pattern   *regexp.Regexp
}

// PhraseGroup is a named set of phrases sharing one severity. A non-zero
// MinContextWords suppresses matches in inputs shorter than that many words,
// reducing false positives on short fragments.
type PhraseGroup struct {
	Name            string
	Severity        int
	MinContextWords int
	Phrases         []string
}

// Library is the immutable rule snapshot injected into the detection engine.
type Library struct {
	Profanity      []Word
	Obfuscation    []Rule
	HateGroups     []PhraseGroup
	SlurRules      []Rule
	BullyingGroups []PhraseGroup
	SpamGroups     []PhraseGroup
	Whitelist      []string
}

var mildWords = []Word{
	{Text: "damn", Severity: SeverityMild, AllowedContexts: []string{"damn good", "damn fine", "damn right"}},
	{Text: "hell", Severity: SeverityMild, AllowedContexts: []string{"hell of a", "what the hell", "hello"}},
	{Text: "crap", Severity: SeverityMild},
	{Text: "suck", Severity: SeverityMild, AllowedContexts: []string{"sucks to be"}},
	{Text: "jerk", Severity: SeverityMild, AllowedContexts: []string{"jerk chicken", "knee jerk"}},
}

var moderateWords = []Word{
	{Text: "ass", Severity: SeverityModerate, AllowedContexts: []string{"kick ass", "bad ass"}},
	{Text: "bastard", Severity: SeverityModerate},
	{Text: "piss", Severity: SeverityModerate, AllowedContexts: []string{"piss off work"}},
	{Text: "douche", Severity: SeverityModerate},
	{Text: "prick", Severity: SeverityModerate, AllowedContexts: []string{"prick of a needle"}},
}

var severeWords = []Word{
	{Text: "fuck", Severity: SeveritySevere},
	{Text: "shit", Severity: SeveritySevere},
	{Text: "bitch", Severity: SeveritySevere},
	{Text: "asshole", Severity: SeveritySevere},
	{Text: "cunt", Severity: SeveritySevere},
	{Text: "dickhead", Severity: SeveritySevere},
}

// obfuscationSeeds map a canonical profanity to the severity its disguised
// forms carry. Patterns are derived with TolerantPattern so "f.u.c.k",
// "fuuuck" and "b1tch" all resolve to their canonical word.
var obfuscationSeeds = []struct {
	canonical string
	severity  int
}{
	{"fuck", SeveritySevere},
	{"shit", SeveritySevere},
	{"bitch", SeveritySevere},
	{"asshole", SeveritySevere},
	{"cunt", SeveritySevere},
}

var hateGroups = []PhraseGroup{
	{
		Name:            "violence",
		Severity:        SeverityViolence,
		MinContextWords: HateContextMinimumWords,
		Phrases: []string{
			"kill all", "death to", "exterminate the", "should all die",
			"deserve to die", "wipe them out", "burn them all",
		},
	},
	{
		Name:            "dehumanization",
		Severity:        SeverityDehumanization,
		MinContextWords: HateContextMinimumWords,
		Phrases: []string{
			"are subhuman", "are vermin", "are parasites", "are cockroaches",
			"less than human", "are a plague", "are animals not people",
		},
	},
}

var bullyingGroups = []PhraseGroup{
	{
		Name:     "direct_attacks",
		Severity: SeverityDirectAttack,
		Phrases: []string{
			"you are worthless", "you're worthless", "nobody likes you",
			"kill yourself", "you are pathetic", "you're pathetic",
			"everyone hates you", "you are a loser", "you're a loser",
		},
	},
	{
		Name:     "harassment",
		Severity: SeverityHarassment,
		Phrases: []string{
			"shut up", "go away loser", "you suck at everything",
			"stop posting", "no one asked you",
		},
	},
	{
		Name:     "threats",
		Severity: SeverityThreat,
		Phrases: []string{
			"i will find you", "i'll find you", "i will hurt you",
			"i'll hurt you", "watch your back", "i know where you live",
			"you will regret this", "you'll regret this",
		},
	},
}

var spamGroups = []PhraseGroup{
	{
		Name:     "promotional",
		Severity: SpamScorePerMatch,
		Phrases: []string{
			"buy now", "limited offer", "limited time offer", "click here",
			"act now", "free money", "make money fast", "work from home",
			"100% free", "no credit check", "earn cash",
		},
	},
	{
		Name:     "suspicious_links",
		Severity: SpamScorePerMatch,
		Phrases: []string{
			"bit.ly/", "tinyurl.com/", "goo.gl/", "t.co/",
			"click this link", "follow this link",
		},
	},
	{
		Name:     "crypto_scam",
		Severity: SpamScorePerMatch,
		Phrases: []string{
			"double your bitcoin", "crypto giveaway", "send btc",
			"guaranteed returns", "investment opportunity", "get rich quick",
			"airdrop claim",
		},
	},
}

// whitelistTerms are benign terms that superficially resemble violations
// (place names, technical jargon). A whitelist hit short-circuits the whole
// pipeline to a clean result for that input.
var whitelistTerms = []string{
	"scunthorpe",
	"penistone",
	"clitheroe",
	"class",
	"classic",
	"classname",
	"assassin",
	"assessment",
	"association",
	"async",
	"passive",
	"cassette",
	"grass",
	"bass",
	"dickens",
	"hancock",
	"shiitake",
	"analysis",
	"arsenal",
}

// obfuscationClasses widens a letter into the character class its common
// leet substitutes occupy.
var obfuscationClasses = map[rune]string{
	'a': "[a@4]",
	'b': "[b8]",
	'e': "[e3]",
	'i': "[i1!]",
	'l': "[l1]",
	'o': "[o0]",
	's': "[s$5]",
	't': "[t7]",
}

// TolerantPattern derives a regex source tolerant of character substitution
// and insertion from a canonical word: each letter is widened to its leet
// class, may repeat, and arbitrary separators may sit between letters.
func TolerantPattern(word string) string {
	parts := make([]string, 0, len(word))
	for _, r := range strings.ToLower(word) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		class, ok := obfuscationClasses[r]
		if !ok {
			class = regexp.QuoteMeta(string(r))
		}
		parts = append(parts, class+"+")
	}
	return strings.Join(parts, `[\W_]*`)
}

func compileWord(w Word) Word {
	w.Text = strings.ToLower(w.Text)
	w.boundary = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w.Text) + `\b`)
	return w
}

// Builtin assembles the Library from the static tables. The built-in slur
// set is intentionally empty: literal slur strings are never stored in code,
// operators supply curated patterns through the external overlay.
func Builtin() *Library {
	lib := &Library{
		HateGroups:     hateGroups,
		BullyingGroups: bullyingGroups,
		SpamGroups:     spamGroups,
		Whitelist:      append([]string(nil), whitelistTerms...),
	}

	for _, tier := range [][]Word{mildWords, moderateWords, severeWords} {
		for _, w := range tier {
			lib.Profanity = append(lib.Profanity, compileWord(w))
		}
	}

	for _, seed := range obfuscationSeeds {
		lib.Obfuscation = append(lib.Obfuscation, Rule{
			Canonical: seed.canonical,
			Category:  CategoryProfanity,
			Severity:  seed.severity,
			Pattern:   regexp.MustCompile(TolerantPattern(seed.canonical)),
		})
	}

	return lib
}

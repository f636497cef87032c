package patterns

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTolerantPattern(t *testing.T) {
	re := regexp.MustCompile(TolerantPattern("fuck"))

	matching := []string{"fuck", "f.u.c.k", "f u c k", "fuuuck", "f--u--c--k", "f_u_c_k"}
	for _, s := range matching {
		assert.True(t, re.MatchString(s), "expected match for %q", s)
	}

	assert.False(t, re.MatchString("duck"))
	assert.False(t, re.MatchString("fork"))
}

func TestTolerantPatternLeetClasses(t *testing.T) {
	re := regexp.MustCompile(TolerantPattern("bitch"))

	assert.True(t, re.MatchString("b1tch"))
	assert.True(t, re.MatchString("b!tch"))
	assert.True(t, re.MatchString("8itch"))
	assert.False(t, re.MatchString("botch"))
}

func TestTolerantPatternSkipsNonAlphanumeric(t *testing.T) {
	// punctuation in the canonical form contributes nothing to the pattern
	assert.Equal(t, TolerantPattern("a-b"), TolerantPattern("ab"))
}

func TestBuiltinLibrary(t *testing.T) {
	lib := Builtin()

	require.NotEmpty(t, lib.Profanity)
	require.NotEmpty(t, lib.Obfuscation)
	require.NotEmpty(t, lib.HateGroups)
	require.NotEmpty(t, lib.BullyingGroups)
	require.NotEmpty(t, lib.SpamGroups)
	require.NotEmpty(t, lib.Whitelist)

	// slurs ship empty on purpose; operators provide them via the overlay
	assert.Empty(t, lib.SlurRules)

	for i := range lib.Profanity {
		w := &lib.Profanity[i]
		require.NotNil(t, w.Boundary(), "word %q has no compiled boundary", w.Text)
		assert.True(t, w.Severity >= SeverityMild && w.Severity <= SeveritySevere)
	}

	for _, g := range lib.HateGroups {
		assert.Equal(t, HateContextMinimumWords, g.MinContextWords)
	}

	assert.Contains(t, lib.Whitelist, "scunthorpe")
}

func TestWordBoundaryMatching(t *testing.T) {
	w := compileWord(Word{Text: "ass", Severity: SeverityModerate})

	assert.True(t, w.Boundary().MatchString("what an ass"))
	assert.True(t, w.Boundary().MatchString("ASS"))
	assert.False(t, w.Boundary().MatchString("passing grade"))
	assert.False(t, w.Boundary().MatchString("assassin"))
}

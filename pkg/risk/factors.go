package risk

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/SentraLabs/Sentra/pkg/domain/post"
	"github.com/SentraLabs/Sentra/pkg/domain/report"
)

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func accountAgeFactor(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	switch {
	case days < 1:
		return 5
	case days < 7:
		return 3
	case days < 30:
		return 2
	case days < 90:
		return 1
	default:
		return 0
	}
}

func postFrequencyFactor(recent []post.Post) float64 {
	score := 0.0
	switch n := len(recent); {
	case n > 50:
		score = 4
	case n > 30:
		score = 3
	case n > 20:
		score = 2
	case n > 15:
		score = 1
	}

	// burst bonus: many posts landing inside a single hour
	byHour := make(map[time.Time]int)
	maxPerHour := 0
	for _, p := range recent {
		h := p.CreatedAt.Truncate(time.Hour)
		byHour[h]++
		if byHour[h] > maxPerHour {
			maxPerHour = byHour[h]
		}
	}
	if maxPerHour > 10 {
		score += 3
	} else if maxPerHour > 5 {
		score += 1
	}

	return clamp10(score)
}

func reportHistoryFactor(against []report.Report, now time.Time) float64 {
	count := len(against)
	recent := 0
	cutoff := now.AddDate(0, 0, -7)
	for _, r := range against {
		if r.CreatedAt.After(cutoff) {
			recent++
		}
	}
	return clamp10(math.Min(float64(2*count), 10) + float64(3*recent))
}

func contentViolationsFactor(posts []post.Post) float64 {
	sum := 0
	for _, p := range posts {
		sum += p.ModerationSeverity
	}
	return clamp10(float64(sum) / 5)
}

func engagementFactor(posts []post.Post) float64 {
	if len(posts) <= 10 {
		return 0
	}
	total := 0
	for _, p := range posts {
		total += p.Engagement()
	}
	avg := float64(total) / float64(len(posts))
	switch {
	case avg < 0.5:
		return 3
	case avg < 1:
		return 2
	case avg < 2:
		return 1
	default:
		return 0
	}
}

func behaviorConsistencyFactor(posts []post.Post) float64 {
	if len(posts) < 2 {
		return 0
	}
	score := 0.0

	lengths := make([]float64, len(posts))
	hours := make([]float64, len(posts))
	for i, p := range posts {
		lengths[i] = float64(len(p.Content))
		hours[i] = float64(p.CreatedAt.Hour())
	}

	m := mean(lengths)
	if variance(lengths) > m*m {
		score += 2
	}

	hv := variance(hours)
	if hv < 2 {
		// posting at the same hour every time looks automated
		score += 1
	}
	if hv > 10 {
		score += 1
	}

	return clamp10(score)
}

func communityInteractionFactor(filed []report.Report) float64 {
	n := len(filed)
	score := 0.0
	if n > 10 {
		score += 2
		if n > 20 {
			score += 3
		}
	}
	if n >= 5 {
		dismissed := 0
		for _, r := range filed {
			if r.Status == report.StatusDismissed {
				dismissed++
			}
		}
		if float64(dismissed)/float64(n) > 0.7 {
			score += 3
		}
	}
	return clamp10(score)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}

const duplicateSimilarityThreshold = 0.8

// duplicateContentRatio is the share of post pairs whose word sets exceed
// the Jaccard similarity threshold. Bounded to the newest posts to keep the
// pairwise comparison cheap.
func duplicateContentRatio(posts []post.Post) float64 {
	const maxCompared = 20
	if len(posts) > maxCompared {
		posts = posts[:maxCompared]
	}
	if len(posts) < 2 {
		return 0
	}

	sets := make([]map[string]struct{}, len(posts))
	for i, p := range posts {
		set := make(map[string]struct{})
		for _, w := range strings.Fields(strings.ToLower(p.Content)) {
			set[w] = struct{}{}
		}
		sets[i] = set
	}

	pairs, duplicates := 0, 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			pairs++
			if jaccard(sets[i], sets[j]) > duplicateSimilarityThreshold {
				duplicates++
			}
		}
	}
	return float64(duplicates) / float64(pairs)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// botLikeTiming reports suspiciously regular posting: over 10 posts whose
// inter-post interval variance sits far below the mean interval.
func botLikeTiming(posts []post.Post) bool {
	if len(posts) <= 10 {
		return false
	}

	times := make([]time.Time, len(posts))
	for i, p := range posts {
		times[i] = p.CreatedAt
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	intervals := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		intervals = append(intervals, times[i].Sub(times[i-1]).Seconds())
	}

	m := mean(intervals)
	return m > 0 && variance(intervals) < 0.1*m
}

package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/csab-tools/csab-match-api/internal/models"
)

// matchCategory buckets a candidate relative to the user's rank. Lower
// values sort first.
type matchCategory int

const (
	categorySweetSpot matchCategory = iota + 1
	categoryAchievable
	categoryAspirational
	categoryUnreachable
)

// sweetSpotOffset and sweetSpotWindow define the target band: cutoffs
// within ±window of (rank − offset) are the most relevant matches.
const (
	sweetSpotOffset = 1000
	sweetSpotWindow = 500
)

// sanitizeRank strips non-digit characters from a stored rank value and
// parses the remainder. ok is false for empty or unparseable input. Every
// numeric comparison of stored ranks goes through here so the filter
// predicate and the comparator can never disagree.
func sanitizeRank(raw string) (int, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		// Digits only but out of int range; treat as unreachable.
		return 0, false
	}
	return n, true
}

// rankedCandidate caches the parsed closing rank and category so the
// comparator never re-derives them mid-sort.
type rankedCandidate struct {
	cutoff   models.Cutoff
	closing  int
	category matchCategory
}

func classify(c models.Cutoff, rank, anchor int) rankedCandidate {
	closing, ok := sanitizeRank(c.ClosingRank.String)
	if !ok || !c.ClosingRank.Valid {
		return rankedCandidate{cutoff: c, category: categoryUnreachable}
	}
	cand := rankedCandidate{cutoff: c, closing: closing}
	switch {
	case closing > rank:
		cand.category = categoryAspirational
	case abs(closing-anchor) <= sweetSpotWindow:
		cand.category = categorySweetSpot
	default:
		cand.category = categoryAchievable
	}
	return cand
}

// compareCandidates is the authoritative three-way relevance order.
// Returns <0 when a sorts before b.
func compareCandidates(a, b rankedCandidate, anchor int) int {
	if a.category == categoryUnreachable || b.category == categoryUnreachable {
		if a.category == categoryUnreachable && b.category == categoryUnreachable {
			return compareIdentity(a.cutoff, b.cutoff)
		}
		if a.category == categoryUnreachable {
			return 1
		}
		return -1
	}

	if a.category != b.category {
		return int(a.category) - int(b.category)
	}

	if a.category == categorySweetSpot {
		if d := abs(a.closing-anchor) - abs(b.closing-anchor); d != 0 {
			return d
		}
		// Distance tie falls through to the achievable rule rather than a
		// distinct tertiary key.
	}

	if a.closing != b.closing {
		return a.closing - b.closing
	}

	return compareIdentity(a.cutoff, b.cutoff)
}

func compareIdentity(a, b models.Cutoff) int {
	if c := strings.Compare(a.Institute, b.Institute); c != 0 {
		return c
	}
	return strings.Compare(a.ProgramName, b.ProgramName)
}

// rankByRelevance re-sorts candidates around the user's rank. The SQL
// ORDER BY is only a coarse pre-sort; this ordering is authoritative.
func rankByRelevance(cutoffs []models.Cutoff, rank int) {
	anchor := rank - sweetSpotOffset
	if anchor < 1 {
		anchor = 1
	}

	candidates := make([]rankedCandidate, len(cutoffs))
	for i, c := range cutoffs {
		candidates[i] = classify(c, rank, anchor)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return compareCandidates(candidates[i], candidates[j], anchor) < 0
	})

	for i, cand := range candidates {
		cutoffs[i] = cand.cutoff
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

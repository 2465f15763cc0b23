package matcher

import "sort"

// Thresholds used when ranking
const (
	AcceptanceThreshold = 30
	HighThreshold       = 100
	MediumThreshold     = 60
	AlternativeMinScore = 50
	DiagnosticLimit     = 3
)

// Confidence is a coarse bucket derived from the winning score
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceVeryLow Confidence = "very_low"
)

// Classify maps a score to its confidence tier
func Classify(score int) Confidence {
	switch {
	case score >= HighThreshold:
		return ConfidenceHigh
	case score >= MediumThreshold:
		return ConfidenceMedium
	case score >= AcceptanceThreshold:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// Rank returns a copy of scored sorted by descending score. Equal scores keep
// their snapshot order.
func Rank(scored []ScoredCandidate) []ScoredCandidate {
	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// alternatives returns every ranked entry after the first that scores above
// AlternativeMinScore.
func alternatives(ranked []ScoredCandidate) []ScoredCandidate {
	var alts []ScoredCandidate
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > AlternativeMinScore {
			alts = append(alts, ranked[i])
		}
	}
	return alts
}

func topN(ranked []ScoredCandidate, n int) []ScoredCandidate {
	if len(ranked) < n {
		n = len(ranked)
	}
	top := make([]ScoredCandidate, n)
	copy(top, ranked[:n])
	return top
}

package matcher

// InactiveScore marks a candidate that can never be selected
const InactiveScore = -999

// Evaluate scores one candidate against a parsed query. It reads nothing but
// its arguments, so candidates can be evaluated in any order or concurrently.
func Evaluate(q Query, c Candidate, referenceYear int) ScoredCandidate {
	var reasons []string
	add := func(reason string) {
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	tokenPts, tokenReasons := scoreTokens(q.Tokens, Tokenize(c.Name))
	reasons = append(reasons, tokenReasons...)

	segmentPts, reason := scoreSegment(c.Segment, q.Segment)
	add(reason)

	yearPts, reason := scoreYear(c.Year, q, referenceYear)
	add(reason)

	stockPts, reason := scoreStock(c.Stock)
	add(reason)

	extrasPts, reason := scoreExtras(c.TestDriveAvailable)
	add(reason)

	score := tokenPts + segmentPts + yearPts + stockPts + extrasPts
	if !c.Active {
		score = InactiveScore
		add("inactive model, not eligible")
	}

	return ScoredCandidate{
		Candidate: c,
		Score:     score,
		Eligible:  c.Active,
		Reasons:   reasons,
	}
}

// Package matcher resolves a customer's free-text request to the best model
// in a catalog snapshot.
//
// Every candidate is scored on four independent criteria (name tokens,
// segment, model year, stock and extras), the scores are ranked, and the
// winner is accepted only if it clears AcceptanceThreshold. The package does
// no I/O and keeps no state between calls.
package matcher

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQuery is returned when the query is blank
	ErrEmptyQuery = errors.New("query is empty")
	// ErrEmptyCatalog is returned when there are no candidates to score
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrNoConfidentMatch is returned together with a rejected MatchResult
	ErrNoConfidentMatch = errors.New("no confident match")
)

// Candidate is one catalog model considered for a query
type Candidate struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"name"`
	Segment            string `json:"segment,omitempty"`
	Year               *int   `json:"year,omitempty"`
	Stock              int    `json:"stock"`
	TestDriveAvailable bool   `json:"test_drive_available"`
	Active             bool   `json:"active"`
}

// ScoredCandidate pairs a candidate with its score and the reasons behind it.
// Reasons are diagnostic text only.
type ScoredCandidate struct {
	Candidate Candidate `json:"candidate"`
	Score     int       `json:"score"`
	Eligible  bool      `json:"eligible"`
	Reasons   []string  `json:"reasons,omitempty"`
}

// MatchResult is the outcome of a search. Found separates an accepted match
// from a rejection carrying diagnostics.
type MatchResult struct {
	Found bool   `json:"found"`
	Query string `json:"query"`

	// Accepted
	Match            *ScoredCandidate  `json:"match,omitempty"`
	Confidence       Confidence        `json:"confidence,omitempty"`
	AlternativeCount int               `json:"alternative_count"`
	Alternatives     []ScoredCandidate `json:"alternatives,omitempty"`

	// Rejected
	Reason        string            `json:"reason,omitempty"`
	TopCandidates []ScoredCandidate `json:"top_candidates,omitempty"`
}

// Match scores every candidate against query and picks the best one.
//
// referenceYear stands in for "now" when rewarding recent models. Blank
// queries and empty catalogs fail before any scoring. When the best score is
// below AcceptanceThreshold, Match returns a rejected result holding the top
// three candidates together with ErrNoConfidentMatch.
func Match(query string, referenceYear int, candidates []Candidate) (*MatchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyCatalog
	}

	q := ParseQuery(query)

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, Evaluate(q, c, referenceYear))
	}

	return decide(query, Rank(scored))
}

// decide applies the acceptance threshold to an already ranked list
func decide(query string, ranked []ScoredCandidate) (*MatchResult, error) {
	best := ranked[0]

	if best.Score < AcceptanceThreshold {
		return &MatchResult{
			Found:         false,
			Query:         query,
			Reason:        fmt.Sprintf("best score %d is below the acceptance threshold of %d", best.Score, AcceptanceThreshold),
			TopCandidates: topN(ranked, DiagnosticLimit),
		}, ErrNoConfidentMatch
	}

	alts := alternatives(ranked)
	return &MatchResult{
		Found:            true,
		Query:            query,
		Match:            &best,
		Confidence:       Classify(best.Score),
		AlternativeCount: len(alts),
		Alternatives:     alts,
	}, nil
}

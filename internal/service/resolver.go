// Package service resolves customer queries against the stored catalog.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/vijay-prabhu/motomatch/internal/config"
	"github.com/vijay-prabhu/motomatch/internal/matcher"
)

// CandidateSource provides the catalog snapshot a query is matched against
type CandidateSource interface {
	Candidates(ctx context.Context) ([]matcher.Candidate, error)
}

// Resolver runs the matcher over a fresh catalog snapshot for every query
type Resolver struct {
	source CandidateSource
	config config.MatcherConfig
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a Resolver
type Option func(*Resolver)

// WithClock replaces the clock used when no reference year is configured
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithLogger sets the logger for resolution outcomes
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New creates a new Resolver
func New(source CandidateSource, cfg config.MatcherConfig, opts ...Option) *Resolver {
	r := &Resolver{
		source: source,
		config: cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReferenceYear returns the year recency is measured against
func (r *Resolver) ReferenceYear() int {
	if r.config.ReferenceYear != 0 {
		return r.config.ReferenceYear
	}
	return r.now().Year()
}

// Resolve matches query against the current catalog.
// A rejected search returns its diagnostic result together with
// matcher.ErrNoConfidentMatch.
func (r *Resolver) Resolve(ctx context.Context, query string) (*matcher.MatchResult, error) {
	return r.ResolveWithYear(ctx, query, r.ReferenceYear())
}

// ResolveWithYear is Resolve with an explicit reference year
func (r *Resolver) ResolveWithYear(ctx context.Context, query string, referenceYear int) (*matcher.MatchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, matcher.ErrEmptyQuery
	}

	candidates, err := r.source.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	prepared := query
	if r.config.FoldAccents {
		prepared = FoldAccents(query)
	}

	start := time.Now()
	result, err := matcher.Match(prepared, referenceYear, candidates)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, matcher.ErrNoConfidentMatch):
		result.Query = query
		r.logger.Info().
			Str("query", query).
			Int("candidates", len(candidates)).
			Int("best_score", bestScore(result.TopCandidates)).
			Dur("elapsed", elapsed).
			Msg("no confident match")
		return result, err
	case err != nil:
		r.logger.Warn().Err(err).Str("query", query).Int("candidates", len(candidates)).Msg("match failed")
		return nil, err
	}

	result.Query = query
	if limit := r.config.MaxAlternatives; limit > 0 && len(result.Alternatives) > limit {
		result.Alternatives = result.Alternatives[:limit]
	}

	r.logger.Info().
		Str("query", query).
		Str("match", result.Match.Candidate.Name).
		Int("score", result.Match.Score).
		Str("confidence", string(result.Confidence)).
		Int("alternatives", result.AlternativeCount).
		Int("candidates", len(candidates)).
		Dur("elapsed", elapsed).
		Msg("query resolved")

	return result, nil
}

func bestScore(top []matcher.ScoredCandidate) int {
	if len(top) == 0 {
		return 0
	}
	return top[0].Score
}

// FoldAccents strips combining marks so "PROPÓSITO" reads as "PROPOSITO"
func FoldAccents(text string) string {
	decomposed := norm.NFD.String(text)
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, decomposed)
	return norm.NFC.String(stripped)
}

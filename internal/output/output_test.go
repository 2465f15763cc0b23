package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/motomatch/internal/catalog"
	"github.com/vijay-prabhu/motomatch/internal/matcher"
)

func intPtr(v int) *int { return &v }

func acceptedResult() *matcher.MatchResult {
	best := matcher.ScoredCandidate{
		Candidate: matcher.Candidate{Name: "MT-07", Segment: "NAKED", Year: intPtr(2024), Stock: 5, Active: true},
		Score:     230,
		Eligible:  true,
		Reasons:   []string{`token "MT" exact match (+40)`, "exact segment match NAKED (+100)"},
	}
	return &matcher.MatchResult{
		Found:            true,
		Query:            "mt 07 naked",
		Match:            &best,
		Confidence:       matcher.ConfidenceHigh,
		AlternativeCount: 2,
		Alternatives: []matcher.ScoredCandidate{
			{Candidate: matcher.Candidate{Name: "MT-09", Segment: "NAKED", Stock: 2}, Score: 165, Eligible: true},
		},
	}
}

func TestMatchResult_Accepted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MatchResult(&buf, acceptedResult(), false))

	out := buf.String()
	assert.Contains(t, out, "MT-07")
	assert.Contains(t, out, "230 (high)")
	assert.Contains(t, out, "Alternatives (1 of 2)")
	assert.Contains(t, out, "MT-09")
	assert.NotContains(t, out, "exact segment match")
}

func TestMatchResult_Explain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MatchResult(&buf, acceptedResult(), true))
	assert.Contains(t, buf.String(), "exact segment match NAKED (+100)")
}

func TestMatchResult_Rejected(t *testing.T) {
	r := &matcher.MatchResult{
		Query:  "deportiva",
		Reason: "best score -80 is below the acceptance threshold of 30",
		TopCandidates: []matcher.ScoredCandidate{
			{Candidate: matcher.Candidate{Name: "NMAX", Segment: "SCOOTER"}, Score: -80, Eligible: true},
			{Candidate: matcher.Candidate{Name: "R3"}, Score: matcher.InactiveScore},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, r))

	out := buf.String()
	assert.Contains(t, out, `No confident match for "deportiva"`)
	assert.Contains(t, out, "NMAX")
	assert.Contains(t, out, "-999 (inactive)")
}

func TestModelsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, []catalog.Model{}))
	assert.Contains(t, buf.String(), "No models found.")

	buf.Reset()
	models := []catalog.Model{
		{ID: "0123456789abcdef", Name: "Tenere 700", Segment: "ADVENTURE", Stock: 3, Active: true},
	}
	require.NoError(t, TableTo(&buf, models))
	out := buf.String()
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "active, unpublished")
}

func TestStatsTable(t *testing.T) {
	stats := &catalog.Stats{
		TotalModels: 3, Active: 2, Published: 2, InStock: 2, TotalUnits: 7,
		BySegment: []catalog.SegmentCount{{Segment: "NAKED", Models: 2, Units: 7}, {Segment: "", Models: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, TableTo(&buf, stats))
	assert.Contains(t, buf.String(), "In stock:    2 (7 units)")
	assert.Contains(t, buf.String(), "(none)")
}

func TestOutputTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputTo(&buf, FormatJSON, acceptedResult()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["found"])
	assert.Equal(t, "high", decoded["confidence"])

	assert.Error(t, OutputTo(&buf, "xml", acceptedResult()))
	assert.Error(t, TableTo(&buf, 42))
}

func TestTruncate_Runes(t *testing.T) {
	name := "Ténéré 700 World Raid Édition Spéciale"

	got := truncate(name, 30)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 30, utf8.RuneCountInString(got))
	assert.Equal(t, "Ténéré 700 World Raid Éditi...", got)

	assert.Equal(t, "Ténéré", truncate("Ténéré", 6))
	assert.Equal(t, "éééééééé", shortID("éééééééééé"))
}

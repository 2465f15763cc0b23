package matcher

import (
	"fmt"
	"strings"
)

// Point values for each criterion
const (
	exactTokenPoints   = 40
	partialTokenPoints = 20

	fullRatioBonus  = 50
	highRatioBonus  = 30
	halfRatioBonus  = 15
	highRatioCutoff = 0.75
	halfRatioCutoff = 0.5

	exactSegmentPoints        = 100
	relatedSegmentPoints      = 40
	incompatibleSegmentPoints = -80

	stockHighPoints = 15
	stockLowPoints  = 10
	stockHighMin    = 3
	testDrivePoints = 5
)

// queryYearPoints and recencyPoints are indexed by the year difference
var (
	queryYearPoints = []int{50, 15, 5}
	recencyPoints   = []int{15, 10, 5}
)

// scoreTokens compares query tokens against the candidate's name tokens.
// Repeated query tokens are scored each time they appear.
func scoreTokens(queryTokens, nameTokens []string) (int, []string) {
	var (
		points  int
		matched int
		reasons []string
	)

	for _, qt := range queryTokens {
		switch {
		case containsToken(nameTokens, qt):
			points += exactTokenPoints
			matched++
			reasons = append(reasons, fmt.Sprintf("token %q exact match (+%d)", qt, exactTokenPoints))
		case partialToken(nameTokens, qt):
			points += partialTokenPoints
			matched++
			reasons = append(reasons, fmt.Sprintf("token %q partial match (+%d)", qt, partialTokenPoints))
		}
	}

	ratio := 0.0
	if len(queryTokens) > 0 {
		ratio = float64(matched) / float64(len(queryTokens))
	}

	bonus := ratioBonus(ratio, len(queryTokens))
	if bonus > 0 {
		reasons = append(reasons, fmt.Sprintf("matched %d/%d query tokens (+%d)", matched, len(queryTokens), bonus))
	}

	return points + bonus, reasons
}

func ratioBonus(ratio float64, total int) int {
	switch {
	case total > 0 && ratio == 1.0:
		return fullRatioBonus
	case ratio >= highRatioCutoff:
		return highRatioBonus
	case ratio >= halfRatioCutoff:
		return halfRatioBonus
	default:
		return 0
	}
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

// partialToken reports whether token and any of tokens contain one another
func partialToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if strings.Contains(t, token) || strings.Contains(token, t) {
			return true
		}
	}
	return false
}

// scoreSegment compares the catalog segment with the keyword found in the
// query. An empty keyword means the query named no segment.
func scoreSegment(segment, keyword string) (int, string) {
	seg := strings.ToUpper(strings.TrimSpace(segment))
	if seg == "" {
		return 0, ""
	}
	if keyword == "" {
		return 0, "no segment requested"
	}

	kw := strings.ToUpper(keyword)
	if strings.Contains(seg, kw) || strings.Contains(kw, seg) {
		return exactSegmentPoints, fmt.Sprintf("exact segment match %s (+%d)", kw, exactSegmentPoints)
	}

	if family, ok := relatedFamily(seg, kw); ok {
		return relatedSegmentPoints, fmt.Sprintf("related segment %s~%s via %s (+%d)", seg, kw, family, relatedSegmentPoints)
	}

	return incompatibleSegmentPoints, fmt.Sprintf("incompatible segment %s for %s (%d)", seg, kw, incompatibleSegmentPoints)
}

// relatedFamily finds the first family whose name overlaps keyword and whose
// related labels appear in segment. Both arguments must already be uppercase.
func relatedFamily(segment, keyword string) (string, bool) {
	for _, f := range RelatedSegments {
		if !strings.Contains(keyword, f.Family) && !strings.Contains(f.Family, keyword) {
			continue
		}
		for _, rel := range f.Related {
			if strings.Contains(segment, rel) {
				return f.Family, true
			}
		}
	}
	return "", false
}

// scoreYear rewards a requested model year, or recent models when the query
// names no year.
func scoreYear(candidateYear *int, q Query, referenceYear int) (int, string) {
	if candidateYear == nil {
		return 0, ""
	}
	year := *candidateYear

	if q.HasYear {
		diff := absInt(year - q.Year)
		if diff < len(queryYearPoints) {
			pts := queryYearPoints[diff]
			if diff == 0 {
				return pts, fmt.Sprintf("requested year %d (+%d)", year, pts)
			}
			return pts, fmt.Sprintf("year %d near requested %d (+%d)", year, q.Year, pts)
		}
		return 0, fmt.Sprintf("year %d far from requested %d", year, q.Year)
	}

	// Models dated after the reference year earn nothing here.
	diff := referenceYear - year
	if diff >= 0 && diff < len(recencyPoints) {
		pts := recencyPoints[diff]
		return pts, fmt.Sprintf("recent model %d (+%d)", year, pts)
	}
	return 0, ""
}

func scoreStock(stock int) (int, string) {
	switch {
	case stock > stockHighMin:
		return stockHighPoints, fmt.Sprintf("%d units in stock (+%d)", stock, stockHighPoints)
	case stock > 0:
		return stockLowPoints, fmt.Sprintf("low stock %d (+%d)", stock, stockLowPoints)
	default:
		return 0, "out of stock"
	}
}

func scoreExtras(testDrive bool) (int, string) {
	if testDrive {
		return testDrivePoints, fmt.Sprintf("test drive available (+%d)", testDrivePoints)
	}
	return 0, ""
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package matcher

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonTokenChars = regexp.MustCompile(`[^A-Z0-9]`)
	yearPattern   = regexp.MustCompile(`(?:^|\D)(20\d{2})(?:\D|$)`)
)

// Tokenize uppercases text and splits it into runs of A-Z and 0-9.
// Token order follows the input.
func Tokenize(text string) []string {
	cleaned := nonTokenChars.ReplaceAllString(strings.ToUpper(text), " ")
	return strings.Fields(cleaned)
}

// ExtractYear returns the first standalone "20xx" year in text
func ExtractYear(text string) (int, bool) {
	m := yearPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// ExtractSegmentKeyword returns the first SegmentVocabulary entry contained in
// the uppercased text. Vocabulary order decides between several candidates.
func ExtractSegmentKeyword(text string) (string, bool) {
	upper := strings.ToUpper(text)
	for _, kw := range SegmentVocabulary {
		if strings.Contains(upper, kw) {
			return kw, true
		}
	}
	return "", false
}

// Query holds the signals extracted from a customer's message
type Query struct {
	Text       string   `json:"text"`
	Tokens     []string `json:"tokens"`
	Year       int      `json:"year,omitempty"`
	HasYear    bool     `json:"has_year"`
	Segment    string   `json:"segment,omitempty"`
	HasSegment bool     `json:"has_segment"`
}

// ParseQuery runs the tokenizer over text once so every candidate is scored
// against the same signals.
func ParseQuery(text string) Query {
	q := Query{
		Text:   text,
		Tokens: Tokenize(text),
	}
	q.Year, q.HasYear = ExtractYear(text)
	q.Segment, q.HasSegment = ExtractSegmentKeyword(text)
	return q
}

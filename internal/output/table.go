package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/motomatch/internal/catalog"
	"github.com/vijay-prabhu/motomatch/internal/matcher"
)

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *matcher.MatchResult:
		return MatchResult(w, v, false)
	case []catalog.Model:
		return modelsTable(w, v)
	case *catalog.Model:
		return modelDetail(w, v)
	case *catalog.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

// MatchResult prints a search outcome. With explain set, every listed
// candidate is followed by the reasons behind its score.
func MatchResult(w io.Writer, r *matcher.MatchResult, explain bool) error {
	if !r.Found {
		fmt.Fprintf(w, "No confident match for %q\n", r.Query)
		fmt.Fprintf(w, "Reason:      %s\n", r.Reason)
		if len(r.TopCandidates) == 0 {
			return nil
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Closest candidates:")
		return scoredTable(w, r.TopCandidates, explain)
	}

	m := r.Match
	fmt.Fprintf(w, "Match:       %s\n", m.Candidate.Name)
	if m.Candidate.Segment != "" {
		fmt.Fprintf(w, "Segment:     %s\n", m.Candidate.Segment)
	}
	if m.Candidate.Year != nil {
		fmt.Fprintf(w, "Year:        %d\n", *m.Candidate.Year)
	}
	fmt.Fprintf(w, "Stock:       %d\n", m.Candidate.Stock)
	fmt.Fprintf(w, "Score:       %d (%s)\n", m.Score, r.Confidence)
	if explain {
		writeReasons(w, m.Reasons)
	}

	if r.AlternativeCount == 0 {
		return nil
	}

	fmt.Fprintln(w)
	if len(r.Alternatives) < r.AlternativeCount {
		fmt.Fprintf(w, "Alternatives (%d of %d):\n", len(r.Alternatives), r.AlternativeCount)
	} else {
		fmt.Fprintf(w, "Alternatives (%d):\n", r.AlternativeCount)
	}
	return scoredTable(w, r.Alternatives, explain)
}

func writeReasons(w io.Writer, reasons []string) {
	for _, reason := range reasons {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
}

func scoredTable(w io.Writer, scored []matcher.ScoredCandidate, explain bool) error {
	table := tablewriter.NewWriter(w)
	table.Header("Model", "Segment", "Year", "Stock", "Score")

	for _, s := range scored {
		score := strconv.Itoa(s.Score)
		if !s.Eligible {
			score += " (inactive)"
		}
		if err := table.Append([]string{
			truncate(s.Candidate.Name, 30),
			s.Candidate.Segment,
			formatYear(s.Candidate.Year),
			strconv.Itoa(s.Candidate.Stock),
			score,
		}); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	if explain {
		for _, s := range scored {
			fmt.Fprintf(w, "%s:\n", s.Candidate.Name)
			writeReasons(w, s.Reasons)
		}
	}
	return nil
}

func modelsTable(w io.Writer, models []catalog.Model) error {
	if len(models) == 0 {
		fmt.Fprintln(w, "No models found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Model", "Segment", "Year", "Stock", "Test drive", "Status")

	for _, m := range models {
		if err := table.Append([]string{
			shortID(m.ID),
			truncate(m.Name, 30),
			m.Segment,
			formatYear(m.Year),
			strconv.Itoa(m.Stock),
			yesNo(m.TestDriveAvailable),
			formatStatus(&m),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func modelDetail(w io.Writer, m *catalog.Model) error {
	fmt.Fprintf(w, "ID:          %s\n", m.ID)
	fmt.Fprintf(w, "Model:       %s\n", m.Name)
	if m.Segment != "" {
		fmt.Fprintf(w, "Segment:     %s\n", m.Segment)
	}
	fmt.Fprintf(w, "Year:        %s\n", formatYear(m.Year))
	fmt.Fprintf(w, "Stock:       %d\n", m.Stock)
	fmt.Fprintf(w, "Test drive:  %s\n", yesNo(m.TestDriveAvailable))
	fmt.Fprintf(w, "Status:      %s\n", formatStatus(m))
	fmt.Fprintf(w, "Created:     %s\n", m.CreatedAt.Format("Jan 02, 2006"))
	fmt.Fprintf(w, "Updated:     %s\n", m.UpdatedAt.Format("Jan 02, 2006"))
	return nil
}

func statsTable(w io.Writer, s *catalog.Stats) error {
	fmt.Fprintf(w, "Models:      %d\n", s.TotalModels)
	fmt.Fprintf(w, "Active:      %d\n", s.Active)
	fmt.Fprintf(w, "Published:   %d\n", s.Published)
	fmt.Fprintf(w, "In stock:    %d (%d units)\n", s.InStock, s.TotalUnits)
	fmt.Fprintf(w, "Test drive:  %d\n", s.TestDrive)

	if len(s.BySegment) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.Header("Segment", "Models", "Units")
	for _, sc := range s.BySegment {
		segment := sc.Segment
		if segment == "" {
			segment = "(none)"
		}
		if err := table.Append([]string{segment, strconv.Itoa(sc.Models), strconv.Itoa(sc.Units)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatStatus(m *catalog.Model) string {
	var parts []string
	if m.Active {
		parts = append(parts, "active")
	} else {
		parts = append(parts, "inactive")
	}
	if !m.Published {
		parts = append(parts, "unpublished")
	}
	return strings.Join(parts, ", ")
}

func formatYear(year *int) string {
	if year == nil {
		return "-"
	}
	return strconv.Itoa(*year)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func shortID(id string) string {
	r := []rune(id)
	if len(r) <= 8 {
		return id
	}
	return string(r[:8])
}

// truncate shortens s to at most max runes
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

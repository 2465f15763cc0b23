package catalog

import (
	"database/sql"
	"time"

	"github.com/vijay-prabhu/motomatch/internal/matcher"
)

// Model is one motorcycle model in the catalog
type Model struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Segment            string    `json:"segment,omitempty"`
	Year               *int      `json:"year,omitempty"`
	Stock              int       `json:"stock"`
	TestDriveAvailable bool      `json:"test_drive_available"`
	Active             bool      `json:"active"`
	Published          bool      `json:"published"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Candidate converts the model into the matcher's input type
func (m *Model) Candidate() matcher.Candidate {
	return matcher.Candidate{
		ID:                 m.ID,
		Name:               m.Name,
		Segment:            m.Segment,
		Year:               m.Year,
		Stock:              m.Stock,
		TestDriveAvailable: m.TestDriveAvailable,
		Active:             m.Active,
	}
}

// Stats represents aggregate catalog statistics
type Stats struct {
	TotalModels int            `json:"total_models"`
	Active      int            `json:"active"`
	Published   int            `json:"published"`
	InStock     int            `json:"in_stock"`
	TotalUnits  int            `json:"total_units"`
	TestDrive   int            `json:"test_drive"`
	BySegment   []SegmentCount `json:"by_segment"`
}

// SegmentCount is the number of models in one segment
type SegmentCount struct {
	Segment string `json:"segment"`
	Models  int    `json:"models"`
	Units   int    `json:"units"`
}

// ListOptions contains options for listing models
type ListOptions struct {
	Segment       *string
	ActiveOnly    bool
	PublishedOnly bool
	Limit         int
	Offset        int
}

// NullInt is a helper to convert *int to sql.NullInt64
func NullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// IntPtr converts sql.NullInt64 to *int
func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

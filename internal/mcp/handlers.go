package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vijay-prabhu/motomatch/internal/catalog"
	"github.com/vijay-prabhu/motomatch/internal/matcher"
)

const defaultListLimit = 50

func (s *Server) registerHandlers() {
	s.handlers["match_model"] = s.handleMatchModel
	s.handlers["list_models"] = s.handleListModels
	s.handlers["get_model"] = s.handleGetModel
	s.handlers["get_catalog_stats"] = s.handleGetCatalogStats
}

type matchModelParams struct {
	Query         string `json:"query"`
	ReferenceYear int    `json:"reference_year"`
}

func (s *Server) handleMatchModel(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p matchModelParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	year := p.ReferenceYear
	if year == 0 {
		year = s.resolver.ReferenceYear()
	}

	result, err := s.resolver.ResolveWithYear(ctx, p.Query, year)
	if err != nil && !errors.Is(err, matcher.ErrNoConfidentMatch) {
		return nil, err
	}

	// A rejection is a normal answer; the result explains it
	return result, nil
}

type listModelsParams struct {
	Segment    string `json:"segment"`
	ActiveOnly bool   `json:"active_only"`
	Limit      int    `json:"limit"`
}

func (s *Server) handleListModels(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listModelsParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := catalog.ListOptions{
		ActiveOnly: p.ActiveOnly,
		Limit:      defaultListLimit,
	}
	if p.Segment != "" {
		opts.Segment = &p.Segment
	}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}

	models, err := s.db.ListModels(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if models == nil {
		models = []catalog.Model{}
	}
	return models, nil
}

type getModelParams struct {
	Identifier string `json:"identifier"`
}

func (s *Server) handleGetModel(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getModelParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if strings.TrimSpace(p.Identifier) == "" {
		return nil, fmt.Errorf("identifier is required")
	}

	// Try by name first
	m, err := s.db.GetModelByName(ctx, p.Identifier)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if m == nil {
		m, err = s.db.GetModel(ctx, p.Identifier)
		if err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}
	if m == nil {
		return nil, fmt.Errorf("model not found: %s", p.Identifier)
	}

	return m, nil
}

func (s *Server) handleGetCatalogStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriCatalog:
		return s.getResourceCatalog(ctx)
	case uriSegments:
		return getResourceSegments(), nil
	case uriStats:
		return s.getResourceStats(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceCatalog(ctx context.Context) (string, error) {
	models, err := s.db.ListModels(ctx, catalog.ListOptions{PublishedOnly: true})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Catalog\n=======\n\n")

	if len(models) == 0 {
		b.WriteString("No published models. Run 'motomatch import sheets' or 'motomatch models add'.\n")
		return b.String(), nil
	}

	for _, m := range models {
		year := "-"
		if m.Year != nil {
			year = fmt.Sprintf("%d", *m.Year)
		}
		status := "active"
		if !m.Active {
			status = "inactive"
		}
		fmt.Fprintf(&b, "- %s | %s | %s | stock %d | test drive %t | %s\n",
			m.Name, m.Segment, year, m.Stock, m.TestDriveAvailable, status)
	}

	return b.String(), nil
}

func getResourceSegments() string {
	var b strings.Builder
	b.WriteString("Segments\n========\n\n")

	b.WriteString("Keywords recognised in queries (first found wins):\n")
	for _, kw := range matcher.SegmentVocabulary {
		fmt.Fprintf(&b, "  - %s\n", kw)
	}

	b.WriteString("\nRelated segments:\n")
	for _, f := range matcher.RelatedSegments {
		fmt.Fprintf(&b, "  - %s: %s\n", f.Family, strings.Join(f.Related, ", "))
	}

	return b.String()
}

func (s *Server) getResourceStats(ctx context.Context) (string, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Catalog Statistics
==================
Models:     %d
  - Active:    %d
  - Published: %d
In stock:   %d (%d units)
Test drive: %d
`, stats.TotalModels, stats.Active, stats.Published, stats.InStock, stats.TotalUnits, stats.TestDrive)

	if len(stats.BySegment) > 0 {
		b.WriteString("\nBy segment:\n")
		for _, sc := range stats.BySegment {
			segment := sc.Segment
			if segment == "" {
				segment = "(none)"
			}
			fmt.Fprintf(&b, "  - %s: %d model(s), %d unit(s)\n", segment, sc.Models, sc.Units)
		}
	}

	return b.String(), nil
}

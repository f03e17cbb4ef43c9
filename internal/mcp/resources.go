// ABOUTME: MCP resource implementations for vitals.
// ABOUTME: Provides vitals://dashboard, vitals://recent, and vitals://reports resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dashboardURI = "vitals://dashboard"
	recentURI    = "vitals://recent"
	reportsURI   = "vitals://reports"
)

func (s *Server) registerResources() {
	// vitals://dashboard - latest value and badge per vital, plus trends
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Vitals Dashboard",
		Description: "Latest value, classification and reference range for each vital, plus BMI and heart rate trends",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// vitals://recent - last 20 readings across all kinds
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Readings",
		Description: "Last 20 vital sign readings with their classification",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// vitals://reports - analyzed reports
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         reportsURI,
		Name:        "Analyzed Reports",
		Description: "Recently analyzed medical reports with status and conclusion",
		MIMEType:    "application/json",
	}, s.handleReportsResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	d, err := storage.BuildDashboard(s.repo, storage.DefaultTrendLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"dashboard":    dashboardView(d),
	}
	return jsonResource(dashboardURI, result)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	readings, err := s.repo.ListReadings(nil, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}

	views := make([]readingOutput, 0, len(readings))
	for _, r := range readings {
		views = append(views, readingView(r))
	}

	result := map[string]interface{}{
		"readings": views,
		"count":    len(views),
	}
	return jsonResource(recentURI, result)
}

func (s *Server) handleReportsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	reports, err := s.repo.ListReports(defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	result := map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	}
	return jsonResource(reportsURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

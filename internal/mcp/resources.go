// ABOUTME: MCP resource implementations for fitness sessions.
// ABOUTME: Provides fitlog://today, fitlog://month, and fitlog://exercises.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// fitlog://today - today's sessions
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlog://today",
		Name:        "Today's Sessions",
		Description: "All sessions logged today, newest first",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// fitlog://month - current month calendar and KPIs
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlog://month",
		Name:        "Current Month Overview",
		Description: "Calendar markers, session counts, and minute totals for the current month",
		MIMEType:    "application/json",
	}, s.handleMonthResource)

	// fitlog://exercises - the full exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitlog://exercises",
		Name:        "Exercise Catalog",
		Description: "Every catalog exercise, built-in and custom",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	dateISO := time.Now().Format("2006-01-02")
	sessions, err := s.engine.DaySessions(dateISO)
	if err != nil {
		return nil, fmt.Errorf("failed to list day: %w", err)
	}

	result := map[string]interface{}{
		"date":     dateISO,
		"sessions": sessions,
		"count":    len(sessions),
	}
	return jsonResource("fitlog://today", result)
}

func (s *Server) handleMonthResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	monthKey := time.Now().Format("2006-01")

	summary, err := s.engine.MonthSummary(monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}
	markers, err := s.engine.CalendarMarkers(monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}
	rollup, err := s.engine.MonthlyDurationRollup(monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to roll up month: %w", err)
	}

	result := map[string]interface{}{
		"month":           monthKey,
		"total_sessions":  summary.Total,
		"counts_by_type":  summary.CountsByType,
		"minutes_by_type": rollup.MinutesByType,
		"markers":         markers,
	}
	return jsonResource("fitlog://month", result)
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.repo.ListExercises("")
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	result := map[string]interface{}{
		"exercises": exercises,
		"count":     len(exercises),
	}
	return jsonResource("fitlog://exercises", result)
}

// jsonResource marshals a result into a single-content resource response.
func jsonResource(uri string, result interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(result, "", "  ")
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

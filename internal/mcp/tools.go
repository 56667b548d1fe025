// ABOUTME: MCP tool implementations for fitness sessions.
// ABOUTME: Provides session logging, lookup, deletion, and catalog operations.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_session",
		Description: "Log a workout session (gym, basketball, or other), optionally with gym exercise rows",
	}, s.handleLogSession)

	// get_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session",
		Description: "Get a session with its full exercise detail",
	}, s.handleGetSession)

	// delete_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session and all of its exercise detail",
	}, s.handleDeleteSession)

	// list_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_day",
		Description: "List the sessions on a calendar date, newest first",
	}, s.handleListDay)

	// month_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "month_summary",
		Description: "Get session counts and per-type minute totals for a month",
	}, s.handleMonthSummary)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add a custom exercise to the catalog",
	}, s.handleAddExercise)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List catalog exercises, optionally filtered by muscle group",
	}, s.handleListExercises)
}

// Tool input/output types

type setInput struct {
	Reps     int     `json:"reps" jsonschema:"description=Repetitions,required"`
	WeightKg float64 `json:"weight_kg" jsonschema:"description=Weight in kilograms,required"`
}

type rowInput struct {
	ExerciseName  string     `json:"exercise_name" jsonschema:"description=Catalog exercise name (exact match),required"`
	NotDone       bool       `json:"not_done,omitempty" jsonschema:"description=Mark the exercise as not completed"`
	Sets          []setInput `json:"sets,omitempty" jsonschema:"description=Strength sets in order"`
	CardioMinutes float64    `json:"cardio_minutes,omitempty" jsonschema:"description=Cardio duration in minutes"`
	CardioKm      float64    `json:"cardio_km,omitempty" jsonschema:"description=Cardio distance in kilometers"`
}

type logSessionInput struct {
	ID          uint64     `json:"id,omitempty" jsonschema:"description=Session ID to edit in place; omit to create"`
	Type        string     `json:"type" jsonschema:"description=Session type (gym, basketball, other),required"`
	Date        string     `json:"date,omitempty" jsonschema:"description=Date (YYYY-MM-DD), defaults to today"`
	DurationMin int        `json:"duration_min,omitempty" jsonschema:"description=Duration in minutes"`
	Notes       string     `json:"notes,omitempty" jsonschema:"description=Session notes"`
	Intensity   string     `json:"intensity,omitempty" jsonschema:"description=Intensity label (basketball only)"`
	OtherName   string     `json:"other_name,omitempty" jsonschema:"description=Activity name (type other only)"`
	Rows        []rowInput `json:"rows,omitempty" jsonschema:"description=Gym exercise rows in display order"`
}

type sessionOutput struct {
	ID      uint64 `json:"id"`
	Type    string `json:"type"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type sessionIDInput struct {
	ID uint64 `json:"id" jsonschema:"description=Session ID,required"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"description=Date (YYYY-MM-DD), defaults to today"`
}

type monthSummaryInput struct {
	Month string `json:"month,omitempty" jsonschema:"description=Month key (YYYY-MM), defaults to the current month"`
}

type addExerciseInput struct {
	Name      string `json:"name" jsonschema:"description=Exercise name,required"`
	Group     string `json:"group" jsonschema:"description=Muscle group (Chest, Biceps, Triceps, Shoulders, Back, Legs, Core, Cardio),required"`
	Kind      string `json:"kind,omitempty" jsonschema:"description=Exercise kind (strength, cardio), defaults to strength"`
	Primary   string `json:"primary,omitempty" jsonschema:"description=Primary muscle"`
	Emphasis  string `json:"emphasis,omitempty" jsonschema:"description=Emphasized muscle"`
	Secondary string `json:"secondary,omitempty" jsonschema:"description=Secondary muscles"`
}

type listExercisesInput struct {
	Group string `json:"group,omitempty" jsonschema:"description=Filter by muscle group"`
}

// Tool handlers

func (s *Server) handleLogSession(ctx context.Context, req *mcp.CallToolRequest, input logSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	if !models.IsValidSessionType(input.Type) {
		return nil, sessionOutput{}, fmt.Errorf("unknown session type: %s", input.Type)
	}

	dateISO := input.Date
	if dateISO == "" {
		dateISO = time.Now().Format("2006-01-02")
	}

	draft := models.NewSession(dateISO, models.SessionType(input.Type)).
		WithDuration(input.DurationMin).
		WithNotes(input.Notes).
		WithIntensity(input.Intensity).
		WithOtherName(input.OtherName)
	draft.ID = input.ID

	rows, err := s.buildRows(input.Rows)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	saved, err := s.repo.SaveSession(draft, rows)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to save session: %w", err)
	}

	verb := "Logged"
	if input.ID != 0 {
		verb = "Updated"
	}
	return nil, sessionOutput{
		ID:      saved.ID,
		Type:    string(saved.Type),
		Date:    saved.DateISO,
		Message: fmt.Sprintf("%s %s session #%d on %s", verb, saved.Type, saved.ID, saved.DateISO),
	}, nil
}

// buildRows resolves row inputs against the catalog. Unresolved names are
// passed through as nil exercises, which the repository skips.
func (s *Server) buildRows(inputs []rowInput) ([]models.ExerciseRow, error) {
	var rows []models.ExerciseRow
	for _, in := range inputs {
		matches, err := s.repo.ExercisesByName(in.ExerciseName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve exercise %q: %w", in.ExerciseName, err)
		}
		var exercise *models.Exercise
		if len(matches) > 0 {
			exercise = matches[0]
		}

		row := models.ExerciseRow{Exercise: exercise, Done: !in.NotDone}
		for i, set := range in.Sets {
			row.Sets = append(row.Sets, models.SetDraft{
				SetNumber: i + 1,
				Reps:      set.Reps,
				WeightKg:  set.WeightKg,
			})
		}
		if in.CardioMinutes > 0 || in.CardioKm > 0 {
			row.Cardio = &models.CardioDraft{Minutes: in.CardioMinutes, Km: in.CardioKm}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcp.CallToolRequest, input sessionIDInput) (*mcp.CallToolResult, any, error) {
	detail, err := s.repo.LoadSessionDetail(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if detail == nil {
		return nil, nil, fmt.Errorf("session not found: %d", input.ID)
	}
	return nil, detail, nil
}

func (s *Server) handleDeleteSession(ctx context.Context, req *mcp.CallToolRequest, input sessionIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteSessionCascade(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete session: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted session: %d", input.ID),
	}, nil
}

func (s *Server) handleListDay(ctx context.Context, req *mcp.CallToolRequest, input listDayInput) (*mcp.CallToolResult, any, error) {
	dateISO := input.Date
	if dateISO == "" {
		dateISO = time.Now().Format("2006-01-02")
	}
	if !models.ValidDateISO(dateISO) {
		return nil, nil, fmt.Errorf("invalid date: %s", dateISO)
	}

	sessions, err := s.engine.DaySessions(dateISO)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list day: %w", err)
	}
	if len(sessions) == 0 {
		return nil, map[string]interface{}{"message": "No sessions found."}, nil
	}
	return nil, sessions, nil
}

func (s *Server) handleMonthSummary(ctx context.Context, req *mcp.CallToolRequest, input monthSummaryInput) (*mcp.CallToolResult, any, error) {
	monthKey := input.Month
	if monthKey == "" {
		monthKey = time.Now().Format("2006-01")
	}
	if !models.ValidMonthKey(monthKey) {
		return nil, nil, fmt.Errorf("invalid month: %s", monthKey)
	}

	summary, err := s.engine.MonthSummary(monthKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to summarize month: %w", err)
	}
	rollup, err := s.engine.MonthlyDurationRollup(monthKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to roll up month: %w", err)
	}

	return nil, map[string]interface{}{
		"month":           monthKey,
		"total_sessions":  summary.Total,
		"counts_by_type":  summary.CountsByType,
		"minutes_by_type": rollup.MinutesByType,
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	kind := input.Kind
	if kind == "" {
		kind = string(models.KindStrength)
	}

	e := models.NewExercise(input.Name, input.Group, models.ExerciseKind(kind)).
		WithMuscles(input.Primary, input.Emphasis, input.Secondary)

	saved, err := s.repo.AddExercise(e)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Added %s (%s, %s)", saved.Name, saved.Group, saved.Kind),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	exercises, err := s.repo.ListExercises(input.Group)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}
	return nil, exercises, nil
}

// ABOUTME: MCP tool implementations for vitals.
// ABOUTME: Provides classification, reading CRUD, dashboard, report analysis, diet goal, and workouts.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/report"
	"github.com/harperreed/vitals/internal/storage"
	"github.com/harperreed/vitals/internal/vitals"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	// classify_vital
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "classify_vital",
		Description: "Classify a vital sign value (bmi, blood_pressure, heart_rate, respiratory_rate) without storing it",
	}, s.handleClassifyVital)

	// add_reading
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_reading",
		Description: "Record a vital sign reading and return its classification",
	}, s.handleAddReading)

	// list_readings
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_readings",
		Description: "List recent readings, optionally filtered by kind",
	}, s.handleListReadings)

	// delete_reading
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_reading",
		Description: "Delete a reading by ID or ID prefix",
	}, s.handleDeleteReading)

	// get_dashboard
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the latest value and status badge for every vital plus BMI and heart rate trends",
	}, s.handleGetDashboard)

	// analyze_report
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_report",
		Description: "Analyze the text of a medical report against normal ranges",
	}, s.handleAnalyzeReport)

	// list_reports
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_reports",
		Description: "List analyzed reports, most recent first",
	}, s.handleListReports)

	// diet_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "diet_goal",
		Description: "Suggest a diet goal for a BMI value, or for the latest stored BMI when none is given",
	}, s.handleDietGoal)

	// workout_suggestion
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_suggestion",
		Description: "Suggest exercises for a difficulty level (beginner, intermediate, expert), optionally narrowed to cardio, strength or stretching",
	}, s.handleWorkoutSuggestion)
}

// Tool input/output types

type classifyInput struct {
	Kind  string `json:"kind" jsonschema:"vital kind: bmi, blood_pressure (bp), heart_rate (hr), respiratory_rate (rr)"`
	Value string `json:"value" jsonschema:"raw value, e.g. 24.1 or 120/80"`
}

type classificationOutput struct {
	Kind           string `json:"kind"`
	Value          string `json:"value"`
	Label          string `json:"label"`
	Severity       string `json:"severity"`
	Badge          string `json:"badge"`
	ReferenceRange string `json:"reference_range"`
}

type addReadingInput struct {
	Kind       string `json:"kind" jsonschema:"vital kind: bmi, blood_pressure (bp), heart_rate (hr), respiratory_rate (rr)"`
	Value      string `json:"value" jsonschema:"raw value, e.g. 24.1 or 120/80"`
	RecordedAt string `json:"recorded_at,omitempty" jsonschema:"timestamp (ISO 8601), defaults to now"`
	Notes      string `json:"notes,omitempty" jsonschema:"optional notes"`
}

type readingOutput struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Value      string `json:"value"`
	Unit       string `json:"unit,omitempty"`
	Label      string `json:"label"`
	Severity   string `json:"severity"`
	RecordedAt string `json:"recorded_at"`
	Notes      string `json:"notes,omitempty"`
	Message    string `json:"message,omitempty"`
}

type listReadingsInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"filter by vital kind"`
	Limit int    `json:"limit,omitempty" jsonschema:"max results (default 20)"`
}

type listReadingsOutput struct {
	Readings []readingOutput `json:"readings"`
	Message  string          `json:"message,omitempty"`
}

type deleteInput struct {
	ID string `json:"id" jsonschema:"reading ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type trendPoint struct {
	Value      float64 `json:"value"`
	RecordedAt string  `json:"recorded_at"`
}

type dashboardOutput struct {
	Vitals         []classificationOutput `json:"vitals"`
	BMITrend       []trendPoint           `json:"bmi_trend"`
	HeartRateTrend []trendPoint           `json:"heart_rate_trend"`
	LatestReport   *reportSummary         `json:"latest_report,omitempty"`
}

type analyzeReportInput struct {
	Text   string `json:"text" jsonschema:"full text of the medical report"`
	Source string `json:"source,omitempty" jsonschema:"name of the report, e.g. the file name"`
	Gender string `json:"gender,omitempty" jsonschema:"Male or Female, used for gender-based ranges"`
	Save   bool   `json:"save,omitempty" jsonschema:"store the report and its readings"`
}

type reportOutput struct {
	ID           string              `json:"id"`
	Source       string              `json:"source"`
	Status       string              `json:"status"`
	Patient      map[string]string   `json:"patient,omitempty"`
	Vitals       map[string]string   `json:"vitals"`
	Comparisons  []models.Comparison `json:"comparisons"`
	Observations []string            `json:"observations"`
	Conclusion   string              `json:"conclusion"`
	Saved        bool                `json:"saved"`
	Pruned       int                 `json:"pruned,omitempty"`
}

type reportSummary struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	AnalyzedAt string `json:"analyzed_at"`
}

type listReportsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max results (default 20)"`
}

type listReportsOutput struct {
	Reports []reportSummary `json:"reports"`
	Message string          `json:"message,omitempty"`
}

type dietGoalInput struct {
	BMI *float64 `json:"bmi,omitempty" jsonschema:"BMI value; defaults to the latest stored BMI"`
}

type dietGoalOutput struct {
	BMI   float64 `json:"bmi"`
	Label string  `json:"label"`
	Goal  string  `json:"goal"`
	Query string  `json:"query"`
}

type workoutInput struct {
	Level string `json:"level" jsonschema:"difficulty level: beginner, intermediate or expert"`
	Type  string `json:"type,omitempty" jsonschema:"exercise type: cardio, strength or stretching; all types when empty"`
}

type exerciseOutput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Muscle    string `json:"muscle"`
	Equipment string `json:"equipment"`
}

type workoutOutput struct {
	Level     string           `json:"level"`
	Type      string           `json:"type,omitempty"`
	Exercises []exerciseOutput `json:"exercises"`
}

// Tool handlers

func (s *Server) handleClassifyVital(ctx context.Context, req *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classificationOutput, error) {
	kind, ok := vitals.ParseKind(input.Kind)
	if !ok {
		return nil, classificationOutput{}, fmt.Errorf("unknown vital kind: %s", input.Kind)
	}
	return nil, classificationView(kind, input.Value, vitals.Classify(kind, input.Value)), nil
}

func (s *Server) handleAddReading(ctx context.Context, req *mcp.CallToolRequest, input addReadingInput) (*mcp.CallToolResult, readingOutput, error) {
	kind, ok := vitals.ParseKind(input.Kind)
	if !ok {
		return nil, readingOutput{}, fmt.Errorf("unknown vital kind: %s", input.Kind)
	}

	r := models.NewReading(kind, strings.TrimSpace(input.Value))

	if input.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, input.RecordedAt)
		if err != nil {
			t, err = time.ParseInLocation("2006-01-02 15:04", input.RecordedAt, time.Local)
		}
		if err == nil {
			r.WithRecordedAt(t)
		}
	}

	if input.Notes != "" {
		r.WithNotes(input.Notes)
	}

	if err := s.repo.CreateReading(r); err != nil {
		return nil, readingOutput{}, fmt.Errorf("failed to create reading: %w", err)
	}

	if err := s.notifier.Notify(ctx, r); err != nil {
		s.logger.Warn("alert not published", "id", r.ID.String()[:8], "err", err)
	}

	out := readingView(r)
	out.Message = fmt.Sprintf("Added %s: %s (%s, ID: %s)", kind, out.Value, out.Label, out.ID)
	return nil, out, nil
}

func (s *Server) handleListReadings(ctx context.Context, req *mcp.CallToolRequest, input listReadingsInput) (*mcp.CallToolResult, listReadingsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	var kind *vitals.Kind
	if input.Kind != "" {
		k, ok := vitals.ParseKind(input.Kind)
		if !ok {
			return nil, listReadingsOutput{}, fmt.Errorf("unknown vital kind: %s", input.Kind)
		}
		kind = &k
	}

	readings, err := s.repo.ListReadings(kind, input.Limit)
	if err != nil {
		return nil, listReadingsOutput{}, fmt.Errorf("failed to list readings: %w", err)
	}

	out := listReadingsOutput{Readings: make([]readingOutput, 0, len(readings))}
	for _, r := range readings {
		out.Readings = append(out.Readings, readingView(r))
	}
	if len(readings) == 0 {
		out.Message = "No readings found."
	}
	return nil, out, nil
}

func (s *Server) handleDeleteReading(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteReading(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete reading: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted reading: %s", input.ID),
	}, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, dashboardOutput, error) {
	d, err := storage.BuildDashboard(s.repo, storage.DefaultTrendLimit)
	if err != nil {
		return nil, dashboardOutput{}, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return nil, dashboardView(d), nil
}

func (s *Server) handleAnalyzeReport(ctx context.Context, req *mcp.CallToolRequest, input analyzeReportInput) (*mcp.CallToolResult, reportOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, reportOutput{}, fmt.Errorf("report text is empty")
	}
	source := input.Source
	if source == "" {
		source = "mcp"
	}

	rep := report.Analyze(source, input.Text, input.Gender)

	pruned := 0
	if input.Save {
		if err := s.repo.SaveReport(rep); err != nil {
			return nil, reportOutput{}, fmt.Errorf("failed to save report: %w", err)
		}
		for _, r := range rep.Readings {
			if err := s.notifier.Notify(ctx, r); err != nil {
				s.logger.Warn("alert not published", "id", r.ID.String()[:8], "err", err)
			}
		}
		n, err := s.repo.PruneReports(s.reportKeep)
		if err != nil {
			s.logger.Warn("report cleanup failed", "err", err)
		}
		pruned = n
	}

	out := reportOutput{
		ID:           rep.ID.String()[:8],
		Source:       rep.Source,
		Status:       string(rep.Status),
		Patient:      rep.Patient,
		Vitals:       rep.Vitals,
		Comparisons:  rep.Comparisons,
		Observations: rep.Observations,
		Conclusion:   rep.Conclusion,
		Saved:        input.Save,
		Pruned:       pruned,
	}
	// structured output must match the array/object schema, never null
	if out.Vitals == nil {
		out.Vitals = map[string]string{}
	}
	if out.Comparisons == nil {
		out.Comparisons = []models.Comparison{}
	}
	if out.Observations == nil {
		out.Observations = []string{}
	}
	return nil, out, nil
}

func (s *Server) handleListReports(ctx context.Context, req *mcp.CallToolRequest, input listReportsInput) (*mcp.CallToolResult, listReportsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	reports, err := s.repo.ListReports(input.Limit)
	if err != nil {
		return nil, listReportsOutput{}, fmt.Errorf("failed to list reports: %w", err)
	}

	out := listReportsOutput{Reports: make([]reportSummary, 0, len(reports))}
	for _, r := range reports {
		out.Reports = append(out.Reports, *reportSummaryView(r))
	}
	if len(reports) == 0 {
		out.Message = "No reports found."
	}
	return nil, out, nil
}

func (s *Server) handleDietGoal(ctx context.Context, req *mcp.CallToolRequest, input dietGoalInput) (*mcp.CallToolResult, dietGoalOutput, error) {
	bmi := input.BMI
	if bmi == nil {
		latest, err := s.repo.GetLatestReading(vitals.KindBMI)
		if err != nil {
			return nil, dietGoalOutput{}, fmt.Errorf("no BMI given and none stored: %w", err)
		}
		bmi = latest.Number()
	}

	diet, ok := vitals.DietGoal(bmi)
	if !ok {
		return nil, dietGoalOutput{}, fmt.Errorf("BMI is not a number")
	}

	return nil, dietGoalOutput{
		BMI:   diet.BMI,
		Label: string(vitals.ClassifyBMI(bmi).Label),
		Goal:  diet.Goal,
		Query: diet.Query,
	}, nil
}

func (s *Server) handleWorkoutSuggestion(ctx context.Context, req *mcp.CallToolRequest, input workoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	exercises, err := vitals.WorkoutSuggestion(input.Level, input.Type)
	if err != nil {
		return nil, workoutOutput{}, err
	}

	out := workoutOutput{
		Level:     strings.ToLower(strings.TrimSpace(input.Level)),
		Type:      strings.ToLower(strings.TrimSpace(input.Type)),
		Exercises: make([]exerciseOutput, 0, len(exercises)),
	}
	for _, e := range exercises {
		out.Exercises = append(out.Exercises, exerciseOutput{
			Name:      e.Name,
			Type:      e.Type,
			Muscle:    e.Muscle,
			Equipment: e.Equipment,
		})
	}
	return nil, out, nil
}

// View helpers

func classificationView(kind vitals.Kind, value string, c vitals.Classification) classificationOutput {
	return classificationOutput{
		Kind:           string(kind),
		Value:          value,
		Label:          string(c.Label),
		Severity:       c.Severity.String(),
		Badge:          c.Severity.Badge(),
		ReferenceRange: vitals.ReferenceRanges[kind],
	}
}

func readingView(r *models.Reading) readingOutput {
	c := r.Classification()
	out := readingOutput{
		ID:         r.ID.String()[:8],
		Kind:       string(r.Kind),
		Value:      r.Value,
		Unit:       r.Unit,
		Label:      string(c.Label),
		Severity:   c.Severity.String(),
		RecordedAt: r.RecordedAt.Format(time.RFC3339),
	}
	if r.Notes != nil {
		out.Notes = *r.Notes
	}
	return out
}

func dashboardView(d *storage.Dashboard) dashboardOutput {
	out := dashboardOutput{
		Vitals:         make([]classificationOutput, 0, len(vitals.AllKinds)),
		BMITrend:       trendView(d.BMITrend),
		HeartRateTrend: trendView(d.HeartRateTrend),
	}
	for _, k := range vitals.AllKinds {
		out.Vitals = append(out.Vitals, classificationView(k, d.Latest.Raw(k), d.Status[k]))
	}
	if d.LatestReport != nil {
		out.LatestReport = reportSummaryView(d.LatestReport)
	}
	return out
}

func trendView(points []storage.TrendPoint) []trendPoint {
	out := make([]trendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, trendPoint{Value: p.Value, RecordedAt: p.RecordedAt.Format(time.RFC3339)})
	}
	return out
}

func reportSummaryView(r *models.Report) *reportSummary {
	return &reportSummary{
		ID:         r.ID.String()[:8],
		Source:     r.Source,
		Status:     string(r.Status),
		Conclusion: r.Conclusion,
		AnalyzedAt: r.AnalyzedAt.Format(time.RFC3339),
	}
}

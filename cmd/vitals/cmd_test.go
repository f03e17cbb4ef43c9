// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests parseTime, truncate, padRight, flags, and commands against a temp database.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/vitals/internal/config"
	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/storage"
	"github.com/harperreed/vitals/internal/vitals"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "date and time with space", input: "2025-01-31 08:30"},
		{name: "date and time with T", input: "2025-01-31T08:30"},
		{name: "date only", input: "2025-01-31"},
		{name: "RFC3339", input: "2025-01-31T08:30:00Z"},
		{name: "RFC3339 with offset", input: "2025-01-31T08:30:00+05:00"},
		{name: "invalid format", input: "31-01-2025", wantErr: true},
		{name: "invalid random string", input: "not a date", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}

			if err != nil {
				t.Errorf("parseTime(%q) unexpected error: %v", tt.input, err)
				return
			}

			if result.IsZero() {
				t.Errorf("parseTime(%q) returned zero time", tt.input)
			}
		})
	}
}

func TestParseTimeValues(t *testing.T) {
	result, err := parseTime("2025-06-15")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}

	if result.Year() != 2025 || result.Month() != time.June || result.Day() != 15 {
		t.Errorf("parseTime returned wrong date: got %v", result)
	}
}

// setLocal swaps time.Local for the duration of the test.
func setLocal(t *testing.T, loc *time.Location) {
	t.Helper()

	orig := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = orig })
}

func TestParseTimeUsesLocalZone(t *testing.T) {
	setLocal(t, time.FixedZone("EST", -5*60*60))

	for _, input := range []string{"2024-12-14 07:00", "2024-12-14T07:00"} {
		got, err := parseTime(input)
		if err != nil {
			t.Fatalf("parseTime(%q) failed: %v", input, err)
		}
		if got.Location() != time.Local {
			t.Errorf("parseTime(%q) location = %v, want local", input, got.Location())
		}
		if got.Hour() != 7 {
			t.Errorf("parseTime(%q) hour = %d, want 7", input, got.Hour())
		}
	}

	got, err := parseTime("2024-12-14T07:00:00Z")
	if err != nil {
		t.Fatalf("parseTime RFC3339 failed: %v", err)
	}
	if got.UTC().Hour() != 7 {
		t.Errorf("RFC3339 input should keep its own zone, got %v", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world this is a long string", 10, "hello w..."},
		{"empty string", "", 5, ""},
		{"multi-byte runes kept whole", "fever 38.5°C°C°C", 10, "fever 3..."},
		{"multi-byte at cut point", "µL µL µL µL", 6, "µL ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"bmi", 6, "bmi   "},
		{"heart_rate", 5, "heart_rate"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestParseKindArg(t *testing.T) {
	tests := []struct {
		input   string
		want    vitals.Kind
		wantErr bool
	}{
		{"bp", vitals.KindBloodPressure, false},
		{"BP", vitals.KindBloodPressure, false},
		{"heart_rate", vitals.KindHeartRate, false},
		{"rr", vitals.KindRespiratoryRate, false},
		{"bmi", vitals.KindBMI, false},
		{"weight", "", true},
	}

	for _, tt := range tests {
		got, err := parseKindArg(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseKindArg(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseKindArg(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseKindArg(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReadingValue(t *testing.T) {
	tests := []struct {
		name    string
		kind    vitals.Kind
		args    []string
		want    string
		wantErr bool
	}{
		{"bp slash form", vitals.KindBloodPressure, []string{"118/79"}, "118/79", false},
		{"bp two values", vitals.KindBloodPressure, []string{"140", "90"}, "140/90", false},
		{"bp missing half", vitals.KindBloodPressure, []string{"140/"}, "", true},
		{"bp single number", vitals.KindBloodPressure, []string{"140"}, "", true},
		{"numeric", vitals.KindHeartRate, []string{"72"}, "72", false},
		{"numeric normalized", vitals.KindBMI, []string{"24.50"}, "24.5", false},
		{"numeric invalid", vitals.KindBMI, []string{"heavy"}, "", true},
		{"numeric extra value", vitals.KindHeartRate, []string{"72", "80"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readingValue(tt.kind, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Errorf("readingValue(%v) expected error, got %q", tt.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("readingValue(%v) unexpected error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("readingValue(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestBadgeContainsLabel(t *testing.T) {
	for _, c := range []vitals.Classification{
		vitals.NotAvailable,
		{Label: vitals.LabelNormal, Severity: vitals.Safe},
		{Label: vitals.LabelElevated, Severity: vitals.Warning},
		{Label: vitals.LabelHigh, Severity: vitals.Alert},
	} {
		if got := badge(c); !strings.Contains(got, "["+string(c.Label)+"]") {
			t.Errorf("badge(%v) = %q, want label inside brackets", c, got)
		}
		if badgeEscapeLen(c) < 0 {
			t.Errorf("badgeEscapeLen(%v) is negative", c)
		}
	}
}

func TestKindTitle(t *testing.T) {
	for _, k := range vitals.AllKinds {
		if kindTitle(k) == string(k) {
			t.Errorf("kindTitle(%q) has no display name", k)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "vitals" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "vitals")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	for _, name := range []string{"db", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestAddCmdFlags(t *testing.T) {
	if addCmd.Flags().Lookup("at") == nil {
		t.Error("Expected --at flag on add command")
	}
	if addCmd.Flags().Lookup("notes") == nil {
		t.Error("Expected --notes flag on add command")
	}
}

func TestListCmdFlags(t *testing.T) {
	if listCmd.Flags().Lookup("kind") == nil {
		t.Error("Expected --kind flag on list command")
	}

	limitFlag := listCmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("Expected --limit flag on list command")
	}
	if limitFlag.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limitFlag.DefValue)
	}
}

func TestCmdAliases(t *testing.T) {
	tests := []struct {
		name    string
		aliases []string
		want    []string
	}{
		{"add", addCmd.Aliases, []string{"a"}},
		{"list", listCmd.Aliases, []string{"ls", "l"}},
		{"delete", deleteCmd.Aliases, []string{"del", "rm"}},
		{"dashboard", dashboardCmd.Aliases, []string{"dash", "d"}},
	}

	for _, tt := range tests {
		have := make(map[string]bool)
		for _, a := range tt.aliases {
			have[a] = true
		}
		for _, w := range tt.want {
			if !have[w] {
				t.Errorf("Expected %s command to have alias %q", tt.name, w)
			}
		}
	}
}

func TestReportCmdSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range reportCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"analyze", "list", "show", "delete"} {
		if !names[want] {
			t.Errorf("Expected report subcommand %q", want)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	want := map[string]bool{"json": true, "yaml": true, "markdown": true}
	for _, a := range exportCmd.ValidArgs {
		delete(want, a)
	}
	if len(want) != 0 {
		t.Errorf("Missing export formats: %v", want)
	}
}

func TestLongDescriptions(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		if cmd.Long == "" {
			t.Errorf("Expected %s command to have a long description", cmd.Name())
		}
	}
}

func TestClassifyHelpExamples(t *testing.T) {
	checked := 0
	for _, line := range strings.Split(classifyCmd.Long, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "vitals classify ") {
			continue
		}
		cmdPart, want, ok := strings.Cut(line, "#")
		if !ok {
			continue
		}
		fields := strings.Fields(cmdPart)
		kind, err := parseKindArg(fields[2])
		if err != nil {
			t.Fatalf("bad kind in example %q: %v", line, err)
		}
		got := vitals.Classify(kind, fields[3]).Label
		if string(got) != strings.TrimSpace(want) {
			t.Errorf("example %q classifies as %s", line, got)
		}
		checked++
	}
	if checked == 0 {
		t.Error("Expected classify help to carry examples")
	}
}

func TestMcpCmdListsTools(t *testing.T) {
	for _, tool := range []string{"classify_vital", "add_reading", "get_dashboard", "analyze_report", "diet_goal", "workout_suggestion"} {
		if !strings.Contains(mcpCmd.Long, tool) {
			t.Errorf("Expected mcp help to mention %s", tool)
		}
	}
}

// setupTestCLI points config and storage at a temp directory and returns
// the database path passed through --db.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv(config.EnvAMQPURL, "")

	return filepath.Join(tmpDir, "vitals.db")
}

// runCLI resets flag state and executes the root command against path.
func runCLI(t *testing.T, path string, args ...string) error {
	t.Helper()

	addAt, addNotes = "", ""
	listKind, listLimit = "", 20
	exportOutput, exportKind, exportSince = "", "", ""
	reportGender, reportSave, reportLimit = "", false, 20
	dashboardTrend = storage.DefaultTrendLimit
	workoutLevel, workoutType = "beginner", ""
	verbose = false

	rootCmd.SetArgs(append([]string{"--db", path}, args...))
	err := rootCmd.Execute()
	_ = closeResources()
	return err
}

func openTestDB(t *testing.T, path string) *storage.DB {
	t.Helper()

	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestClassifyCmd(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "classify", "bp", "135/85"); err != nil {
		t.Errorf("classify failed: %v", err)
	}
	if err := runCLI(t, path, "classify", "weight", "80"); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("classify should not create a database")
	}
}

func TestAddCmdWithDB(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "add", "hr", "72"); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	readings, err := openTestDB(t, path).ListReadings(nil, 0)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("Expected 1 reading, got %d", len(readings))
	}
	if readings[0].Kind != vitals.KindHeartRate || readings[0].Value != "72" {
		t.Errorf("Unexpected reading: %s %s", readings[0].Kind, readings[0].Value)
	}
	if readings[0].Unit != "bpm" {
		t.Errorf("Expected unit bpm, got %q", readings[0].Unit)
	}
}

func TestAddCmdBloodPressure(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "add", "bp", "140", "90", "--notes", "after stairs", "--at", "2025-01-31 08:30"); err != nil {
		t.Fatalf("add bp failed: %v", err)
	}

	r, err := openTestDB(t, path).GetLatestReading(vitals.KindBloodPressure)
	if err != nil {
		t.Fatalf("GetLatestReading failed: %v", err)
	}
	if r.Value != "140/90" {
		t.Errorf("Expected 140/90, got %q", r.Value)
	}
	if r.Notes == nil || *r.Notes != "after stairs" {
		t.Error("Notes not set correctly")
	}
	if !r.RecordedAt.Equal(time.Date(2025, 1, 31, 8, 30, 0, 0, time.Local)) {
		t.Errorf("Unexpected recorded_at: %v", r.RecordedAt)
	}
	if r.Classification().Label != vitals.LabelHigh {
		t.Errorf("Expected High, got %s", r.Classification().Label)
	}
}

func TestAddCmdAtRoundTripsInLocalTime(t *testing.T) {
	path := setupTestCLI(t)
	setLocal(t, time.FixedZone("EST", -5*60*60))

	if err := runCLI(t, path, "add", "hr", "72", "--at", "2024-12-14 07:00"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	r, err := openTestDB(t, path).GetLatestReading(vitals.KindHeartRate)
	if err != nil {
		t.Fatalf("GetLatestReading failed: %v", err)
	}
	if got := r.RecordedAt.Local().Format("2006-01-02 15:04"); got != "2024-12-14 07:00" {
		t.Errorf("Displayed time = %s, want 2024-12-14 07:00", got)
	}
	if got := r.RecordedAt.UTC().Hour(); got != 12 {
		t.Errorf("Stored UTC hour = %d, want 12", got)
	}
}

func TestAddCmdErrors(t *testing.T) {
	path := setupTestCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown kind", []string{"add", "weight", "80"}},
		{"invalid value", []string{"add", "bmi", "heavy"}},
		{"invalid bp", []string{"add", "bp", "120"}},
		{"invalid timestamp", []string{"add", "hr", "72", "--at", "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runCLI(t, path, tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}

	readings, err := openTestDB(t, path).ListReadings(nil, 0)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 0 {
		t.Errorf("Expected no readings after failed adds, got %d", len(readings))
	}
}

func TestListCmdWithDB(t *testing.T) {
	path := setupTestCLI(t)

	for _, args := range [][]string{
		{"add", "hr", "72", "--notes", "a very long note that will be truncated in list output"},
		{"add", "bmi", "24.5"},
	} {
		if err := runCLI(t, path, args...); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	if err := runCLI(t, path, "list"); err != nil {
		t.Errorf("list failed: %v", err)
	}
	if err := runCLI(t, path, "list", "--kind", "hr", "-n", "1"); err != nil {
		t.Errorf("list with filter failed: %v", err)
	}
	if err := runCLI(t, path, "list", "--kind", "weight"); err == nil {
		t.Error("Expected error for unknown kind filter")
	}
}

func TestListCmdEmptyDB(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "list"); err != nil {
		t.Errorf("list on empty database failed: %v", err)
	}
}

func TestDeleteCmdWithDB(t *testing.T) {
	path := setupTestCLI(t)

	db := openTestDB(t, path)
	r := models.NewReading(vitals.KindBMI, "31.2")
	if err := db.CreateReading(r); err != nil {
		t.Fatalf("CreateReading failed: %v", err)
	}

	if err := runCLI(t, path, "delete", r.ID.String()[:8]); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := db.GetReading(r.ID.String()); err == nil {
		t.Error("Expected reading to be deleted")
	}
}

func TestDeleteCmdNotFound(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "delete", "deadbeef"); err == nil {
		t.Error("Expected error deleting missing reading")
	}
}

func TestDashboardCmd(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "dashboard"); err != nil {
		t.Errorf("dashboard on empty database failed: %v", err)
	}

	for _, args := range [][]string{
		{"add", "bp", "118/79"},
		{"add", "bmi", "24.5"},
		{"add", "bmi", "25.1"},
		{"add", "hr", "58"},
	} {
		if err := runCLI(t, path, args...); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	if err := runCLI(t, path, "dashboard", "--trend", "5"); err != nil {
		t.Errorf("dashboard failed: %v", err)
	}
}

func TestDietCmd(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "diet", "17"); err != nil {
		t.Errorf("diet with BMI failed: %v", err)
	}
	if err := runCLI(t, path, "diet", "abc"); err == nil {
		t.Error("Expected error for non-numeric BMI")
	}
	if err := runCLI(t, path, "diet"); err == nil {
		t.Error("Expected error with no BMI stored")
	}

	if err := runCLI(t, path, "add", "bmi", "27.3"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := runCLI(t, path, "diet"); err != nil {
		t.Errorf("diet from stored BMI failed: %v", err)
	}
}

const testReport = `CITY DIAGNOSTICS
Patient Name: Jane Roe
Age: 41 Years
Gender: Female
Blood Pressure: 150/95 mmHg
Heart Rate: 110 bpm
Respiratory Rate: 18
BMI: 27.5
`

func writeTestReport(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lab.txt")
	if err := os.WriteFile(path, []byte(testReport), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestReportAnalyzeWithoutSave(t *testing.T) {
	path := setupTestCLI(t)
	file := writeTestReport(t)

	if err := runCLI(t, path, "report", "analyze", file); err != nil {
		t.Fatalf("report analyze failed: %v", err)
	}

	reports, err := openTestDB(t, path).ListReports(0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("Expected no saved reports without --save, got %d", len(reports))
	}
}

func TestReportLifecycle(t *testing.T) {
	path := setupTestCLI(t)
	file := writeTestReport(t)

	if err := runCLI(t, path, "report", "analyze", file, "--save"); err != nil {
		t.Fatalf("report analyze --save failed: %v", err)
	}

	db := openTestDB(t, path)
	reports, err := db.ListReports(0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	if reports[0].Source != "lab.txt" {
		t.Errorf("Expected source lab.txt, got %q", reports[0].Source)
	}

	readings, err := db.ListReadings(nil, 0)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 4 {
		t.Errorf("Expected 4 readings from report, got %d", len(readings))
	}

	id := reports[0].ID.String()[:8]
	if err := runCLI(t, path, "report", "list"); err != nil {
		t.Errorf("report list failed: %v", err)
	}
	if err := runCLI(t, path, "report", "show", id); err != nil {
		t.Errorf("report show failed: %v", err)
	}
	if err := runCLI(t, path, "report", "delete", id); err != nil {
		t.Fatalf("report delete failed: %v", err)
	}

	readings, err = db.ListReadings(nil, 0)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 0 {
		t.Errorf("Expected report readings to be deleted, got %d", len(readings))
	}
	if err := runCLI(t, path, "report", "show", id); err == nil {
		t.Error("Expected error showing deleted report")
	}
}

func TestReportAnalyzeSaveKeepsConfiguredCount(t *testing.T) {
	path := setupTestCLI(t)
	file := writeTestReport(t)

	if err := (&config.Config{ReportKeep: 2}).Save(); err != nil {
		t.Fatalf("config Save failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := runCLI(t, path, "report", "analyze", file, "--save"); err != nil {
			t.Fatalf("report analyze --save failed: %v", err)
		}
	}

	db := openTestDB(t, path)
	reports, err := db.ListReports(0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("Expected 2 retained reports, got %d", len(reports))
	}
	readings, err := db.ListReadings(nil, 0)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 8 {
		t.Errorf("Expected readings of 2 reports (8), got %d", len(readings))
	}
}

func TestReportAnalyzeSaveDefaultRetention(t *testing.T) {
	path := setupTestCLI(t)
	file := writeTestReport(t)

	for i := 0; i < storage.DefaultReportKeep+2; i++ {
		if err := runCLI(t, path, "report", "analyze", file, "--save"); err != nil {
			t.Fatalf("report analyze --save failed: %v", err)
		}
	}

	reports, err := openTestDB(t, path).ListReports(0)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != storage.DefaultReportKeep {
		t.Errorf("Expected %d retained reports, got %d", storage.DefaultReportKeep, len(reports))
	}
}

func TestWorkoutCmd(t *testing.T) {
	path := setupTestCLI(t)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "default level", args: []string{"workout"}},
		{name: "level and type", args: []string{"workout", "--level", "expert", "--type", "cardio"}},
		{name: "short flags", args: []string{"workout", "-l", "Intermediate", "-t", "stretching"}},
		{name: "unknown level", args: []string{"workout", "--level", "olympian"}, wantErr: true},
		{name: "unknown type", args: []string{"workout", "--type", "yoga"}, wantErr: true},
		{name: "empty level", args: []string{"workout", "--level", ""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, path, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("workout error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("workout should not create the database")
	}
}

func TestReportAnalyzeMissingFile(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "report", "analyze", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing report file")
	}
}

func TestExportFormats(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "add", "bp", "118/79", "--at", "2025-01-31"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, args := range [][]string{
		{"export", "json"},
		{"export", "yaml"},
		{"export", "markdown"},
		{"export", "markdown", "--kind", "bp", "--since", "2025-01-01"},
	} {
		if err := runCLI(t, path, args...); err != nil {
			t.Errorf("%v failed: %v", args, err)
		}
	}
}

func TestExportErrors(t *testing.T) {
	path := setupTestCLI(t)

	tests := [][]string{
		{"export", "csv"},
		{"export", "markdown", "--since", "01/01/2025"},
		{"export", "markdown", "--kind", "weight"},
	}

	for _, args := range tests {
		if err := runCLI(t, path, args...); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	path := setupTestCLI(t)
	out := filepath.Join(t.TempDir(), "backup.json")

	if err := runCLI(t, path, "add", "hr", "104"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := runCLI(t, path, "export", "json", "-o", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"heart_rate"`) {
		t.Errorf("Expected heart_rate in export, got %s", data)
	}

	fresh := filepath.Join(t.TempDir(), "fresh.db")
	if err := runCLI(t, fresh, "import", out); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	readings, err := openTestDB(t, fresh).ListReadings(nil, 0)
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(readings) != 1 || readings[0].Value != "104" {
		t.Errorf("Unexpected imported readings: %+v", readings)
	}
}

func TestImportCmdErrors(t *testing.T) {
	path := setupTestCLI(t)

	if err := runCLI(t, path, "import", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := runCLI(t, path, "import", bad); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestDBFlagExpandsTilde(t *testing.T) {
	setupTestCLI(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := runCLI(t, "~/custom/vitals.db", "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "custom", "vitals.db")); err != nil {
		t.Errorf("Expected database under HOME: %v", err)
	}
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/tatianab/rover-rescue/internal/history"
	"github.com/tatianab/rover-rescue/internal/models"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ROVER_SAVE_DIR", dir)
	t.Setenv("ROVER_HISTORY_BACKEND", "yaml")
	return dir
}

func seed(t *testing.T, dir string, recs ...models.RunRecord) {
	t.Helper()
	store, err := history.Open(history.NewFileMedium(dir), history.WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for _, r := range recs {
		if _, err := store.Append(r, "Ada"); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
}

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func retrieval(collisions int) models.RunRecord {
	return models.NewRetrievalRecord(models.RetrievalRun{
		Time: 70, Distance: 200, DistanceUnit: models.DistanceUnit,
		Collisions: collisions, Reached: models.ArrivedYes, Conditionals: models.Yes, Attempts: 1,
	})
}

func TestHistoryCommand(t *testing.T) {
	dir := setupEnv(t)
	seed(t, dir, retrieval(3), retrieval(0))

	out, err := run(t, HistoryCmd(), "")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	for _, want := range []string{
		"MISSION 1: HAB PERIMETER SURVEY",
		"No runs recorded yet.",
		"MISSION 2: PATHFINDER RETRIEVAL",
		"Collisions",
		"#2",
		"💥 Collisions: first 3 → latest 0 (fewest 0)",
		"📊 2 runs recorded (Mission 1: 0, Mission 2: 2, Mission 3: 0)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output is missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryCommandOneMission(t *testing.T) {
	dir := setupEnv(t)
	seed(t, dir, retrieval(1))

	out, err := run(t, HistoryCmd(), "", "--mission", "2")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if strings.Contains(out, "MISSION 1") {
		t.Errorf("Expected only mission 2:\n%s", out)
	}

	if _, err := run(t, HistoryCmd(), "", "--mission", "4"); err == nil {
		t.Error("Expected an error for mission 4")
	}
}

func TestHistoryClear(t *testing.T) {
	dir := setupEnv(t)
	seed(t, dir, retrieval(1))

	_, err := run(t, HistoryCmd(), "", "clear")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("clear without --yes error = %v", err)
	}
	if h, _ := history.Load(history.NewFileMedium(dir)); h.Total() != 1 {
		t.Fatal("History was cleared without confirmation")
	}

	out, err := run(t, HistoryCmd(), "", "clear", "--yes")
	if err != nil {
		t.Fatalf("clear --yes error = %v", err)
	}
	if !strings.Contains(out, "Run history cleared.") {
		t.Errorf("Output = %q", out)
	}
	if h, _ := history.Load(history.NewFileMedium(dir)); h.Total() != 0 {
		t.Errorf("Expected an empty history, got %d runs", h.Total())
	}
}

func TestHistoryCorruptFile(t *testing.T) {
	dir := setupEnv(t)
	if err := os.WriteFile(filepath.Join(dir, "history.yaml"), []byte("mission1: [not: {valid"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, HistoryCmd(), "")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "could not be loaded") || !strings.Contains(out, "📊 0 runs recorded") {
		t.Errorf("Expected a warning and an empty history:\n%s", out)
	}
}

func TestPractice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		score   string
		verdict string
	}{
		{"all correct", "b\nb\nb\nb\nb\n", "Score: 5/5", "🌟 PERFECT SCORE! You're ready for Mars!"},
		{"three correct", "b\n2\nB\na\na\n", "Score: 3/5", "⭐ Great job! Keep practicing!"},
		{"retry bad input", "z\nb\na\na\na\na\n", "Score: 1/5", "🔧 Good effort! Review and try again!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, PracticeCmd(), tt.input)
			if err != nil {
				t.Fatalf("practice error = %v", err)
			}
			if !strings.Contains(out, tt.score) || !strings.Contains(out, tt.verdict) {
				t.Errorf("Expected %q and %q in:\n%s", tt.score, tt.verdict, out)
			}
			if !strings.Contains(out, "Question 5 of 5: ") {
				t.Errorf("Expected five questions:\n%s", out)
			}
		})
	}
}

func TestPracticeEndsEarly(t *testing.T) {
	_, err := run(t, PracticeCmd(), "b\n")
	if err == nil || !strings.Contains(err.Error(), "question 2") {
		t.Errorf("practice error = %v, want it to stop at question 2", err)
	}
}

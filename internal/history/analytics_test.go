package history

import (
	"reflect"
	"testing"

	"github.com/tatianab/rover-rescue/internal/models"
)

func numbered(recs ...models.RunRecord) []models.RunRecord {
	for i := range recs {
		recs[i].RunNumber = i + 1
	}
	return recs
}

func survey(time, angle float64, attempts int, notes string) models.RunRecord {
	return models.NewSurveyRecord(models.SurveyRun{
		Time: time, TargetAngle: 60, ActualAngle: angle, Sides: 6,
		Returned: models.ArrivedYes, Attempts: attempts, AngleNotes: notes,
	})
}

func final(loops, conds models.YesNo, reached models.Arrival, bugs int) models.RunRecord {
	return models.NewFinalRecord(models.FinalRun{Loops: loops, Conditionals: conds, Reached: reached, Bugs: bugs})
}

func TestRetrievalComparisonImprovement(t *testing.T) {
	runs := numbered(retrieval(3), retrieval(0))

	if got := Min(runs, Collisions); got != 0 {
		t.Errorf("Min(collisions) = %d, want 0", got)
	}
	if got := Collisions(First(runs)); got != 3 {
		t.Errorf("first collisions = %d, want 3", got)
	}
	if got := Collisions(Last(runs)); got != 0 {
		t.Errorf("last collisions = %d, want 0", got)
	}

	c, ok := CompareRetrieval(runs)
	if !ok {
		t.Fatal("CompareRetrieval() ok = false with two runs")
	}
	want := RetrievalComparison{FirstCollisions: 3, LatestCollisions: 0, FewestCollisions: 0, Successful: 2, Runs: 2}
	if c != want {
		t.Errorf("CompareRetrieval() = %+v, want %+v", c, want)
	}
}

func TestComparisonsNeedTwoRuns(t *testing.T) {
	one := numbered(retrieval(1))
	if _, ok := CompareRetrieval(one); ok {
		t.Error("CompareRetrieval() ok with one run")
	}
	if _, ok := CompareSurvey(nil); ok {
		t.Error("CompareSurvey() ok with no runs")
	}
	if _, ok := CompareFinal(numbered(final(models.Yes, models.Yes, models.ArrivedYes, 0))); ok {
		t.Error("CompareFinal() ok with one run")
	}
}

func TestCompareSurvey(t *testing.T) {
	runs := numbered(survey(80, 70, 4, ""), survey(45, 62, 1, ""), survey(52.5, 60, 2, ""))
	c, ok := CompareSurvey(runs)
	if !ok {
		t.Fatal("CompareSurvey() ok = false")
	}
	want := SurveyComparison{FirstTime: 80, LatestTime: 52.5, BestTime: 45, MeanAttempts: 7.0 / 3}
	if c != want {
		t.Errorf("CompareSurvey() = %+v, want %+v", c, want)
	}
}

func TestCompareFinal(t *testing.T) {
	runs := numbered(
		final(models.Yes, models.No, models.ArrivedNo, 3),
		final(models.Yes, models.Yes, models.ArrivedClose, 1),
		final(models.Yes, models.Yes, models.ArrivedYes, 0),
	)
	c, ok := CompareFinal(runs)
	if !ok {
		t.Fatal("CompareFinal() ok = false")
	}
	want := FinalComparison{TotalBugs: 4, Successful: 2, UsedBothConcepts: 2, Runs: 3}
	if c != want {
		t.Errorf("CompareFinal() = %+v, want %+v", c, want)
	}
}

func TestAnalyseAngles(t *testing.T) {
	runs := numbered(
		survey(60, 70, 3, "overshot"),
		survey(50, 62, 1, ""),
		survey(48, 62, 1, "drifted left, kept 62"),
		survey(47, 55, 1, ""),
	)
	a, ok := AnalyseAngles(runs)
	if !ok {
		t.Fatal("AnalyseAngles() ok = false")
	}
	if want := []float64{70, 62, 55}; !reflect.DeepEqual(a.Angles, want) {
		t.Errorf("Angles = %v, want %v", a.Angles, want)
	}
	if a.WithinTolerance != 3 || a.Runs != 4 {
		t.Errorf("WithinTolerance/Runs = %d/%d, want 3/4", a.WithinTolerance, a.Runs)
	}
	wantNotes := []AngleNote{{RunNumber: 1, Note: "overshot"}, {RunNumber: 3, Note: "drifted left, kept 62"}}
	if !reflect.DeepEqual(a.Notes, wantNotes) {
		t.Errorf("Notes = %+v, want %+v", a.Notes, wantNotes)
	}

	if _, ok := AnalyseAngles(nil); ok {
		t.Error("AnalyseAngles(nil) ok = true")
	}
}

func TestMeanAndCount(t *testing.T) {
	runs := numbered(retrieval(1), retrieval(2), retrieval(6))
	if got := Mean(runs, Collisions); got != 3 {
		t.Errorf("Mean(collisions) = %v, want 3", got)
	}
	if got := Count(runs, func(r models.RunRecord) bool { return Collisions(r) <= 2 }); got != 2 {
		t.Errorf("Count(collisions <= 2) = %d, want 2", got)
	}
	if got := Sum[int](nil, Collisions); got != 0 {
		t.Errorf("Sum(nil) = %d, want 0", got)
	}
}

func TestAggregatesPanicOnEmpty(t *testing.T) {
	tests := map[string]func(){
		"First": func() { First(nil) },
		"Last":  func() { Last(nil) },
		"Min":   func() { Min(nil, Collisions) },
		"Mean":  func() { Mean(nil, models.RunRecord.Time) },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s(nil) did not panic", name)
				}
			}()
			fn()
		})
	}
}

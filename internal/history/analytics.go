package history

import (
	"github.com/tatianab/rover-rescue/internal/models"
	"github.com/tatianab/rover-rescue/internal/runs"
)

// Aggregates are defined on non-empty run slices only. Like slices.Min they
// panic when given none; callers check for runs first.

type number interface {
	~int | ~float64
}

// First is the earliest run.
func First(runs []models.RunRecord) models.RunRecord {
	mustHaveRuns(runs, "First")
	return runs[0]
}

// Last is the latest run.
func Last(runs []models.RunRecord) models.RunRecord {
	mustHaveRuns(runs, "Last")
	return runs[len(runs)-1]
}

// Min is the smallest value of field across runs.
func Min[N number](runs []models.RunRecord, field func(models.RunRecord) N) N {
	mustHaveRuns(runs, "Min")
	best := field(runs[0])
	for _, r := range runs[1:] {
		if v := field(r); v < best {
			best = v
		}
	}
	return best
}

// Mean is the arithmetic mean of field across runs.
func Mean[N number](runs []models.RunRecord, field func(models.RunRecord) N) float64 {
	mustHaveRuns(runs, "Mean")
	return float64(Sum(runs, field)) / float64(len(runs))
}

// Sum adds field across runs. It is zero for no runs.
func Sum[N number](runs []models.RunRecord, field func(models.RunRecord) N) N {
	var total N
	for _, r := range runs {
		total += field(r)
	}
	return total
}

// Count is the number of runs matching pred.
func Count(runs []models.RunRecord, pred func(models.RunRecord) bool) int {
	n := 0
	for _, r := range runs {
		if pred(r) {
			n++
		}
	}
	return n
}

func mustHaveRuns(runs []models.RunRecord, op string) {
	if len(runs) == 0 {
		panic("history." + op + ": no runs")
	}
}

// Field selectors for the aggregates.

func Collisions(r models.RunRecord) int {
	if r.Retrieval == nil {
		return 0
	}
	return r.Retrieval.Collisions
}

func Bugs(r models.RunRecord) int {
	if r.Final == nil {
		return 0
	}
	return r.Final.Bugs
}

func ActualAngle(r models.RunRecord) float64 {
	if r.Survey == nil {
		return 0
	}
	return r.Survey.ActualAngle
}

// Reached matches runs that fully reached their goal.
func Reached(r models.RunRecord) bool {
	return r.Arrival() == models.ArrivedYes
}

// ReachedOrClose matches runs that reached or nearly reached their goal.
func ReachedOrClose(r models.RunRecord) bool {
	a := r.Arrival()
	return a == models.ArrivedYes || a == models.ArrivedClose
}

// UsedBothConcepts matches final runs that used loops and conditionals.
func UsedBothConcepts(r models.RunRecord) bool {
	return r.Final != nil && r.Final.Loops == models.Yes && r.Final.Conditionals == models.Yes
}

// AngleTolerance is how far from a perfect hexagon turn still counts as
// perfect in the angle analysis.
const AngleTolerance = 5.0

// WithinAngleTolerance matches survey runs turning within AngleTolerance of
// a perfect hexagon turn.
func WithinAngleTolerance(r models.RunRecord) bool {
	return r.Survey != nil && runs.AngleDeviation(r.Survey.ActualAngle) <= AngleTolerance
}

// SurveyComparison compares mission 1 runs.
type SurveyComparison struct {
	FirstTime    float64
	LatestTime   float64
	BestTime     float64
	MeanAttempts float64
}

// RetrievalComparison compares mission 2 runs.
type RetrievalComparison struct {
	FirstCollisions  int
	LatestCollisions int
	FewestCollisions int
	Successful       int
	Runs             int
}

// FinalComparison compares mission 3 runs.
type FinalComparison struct {
	TotalBugs        int
	Successful       int
	UsedBothConcepts int
	Runs             int
}

// CompareSurvey needs at least two runs; ok is false otherwise.
func CompareSurvey(runs []models.RunRecord) (c SurveyComparison, ok bool) {
	if len(runs) < 2 {
		return c, false
	}
	return SurveyComparison{
		FirstTime:    First(runs).Time(),
		LatestTime:   Last(runs).Time(),
		BestTime:     Min(runs, models.RunRecord.Time),
		MeanAttempts: Mean(runs, models.RunRecord.Attempts),
	}, true
}

// CompareRetrieval needs at least two runs; ok is false otherwise.
func CompareRetrieval(runs []models.RunRecord) (c RetrievalComparison, ok bool) {
	if len(runs) < 2 {
		return c, false
	}
	return RetrievalComparison{
		FirstCollisions:  Collisions(First(runs)),
		LatestCollisions: Collisions(Last(runs)),
		FewestCollisions: Min(runs, Collisions),
		Successful:       Count(runs, Reached),
		Runs:             len(runs),
	}, true
}

// CompareFinal needs at least two runs; ok is false otherwise. A close
// arrival counts as a success here.
func CompareFinal(runs []models.RunRecord) (c FinalComparison, ok bool) {
	if len(runs) < 2 {
		return c, false
	}
	return FinalComparison{
		TotalBugs:        Sum(runs, Bugs),
		Successful:       Count(runs, ReachedOrClose),
		UsedBothConcepts: Count(runs, UsedBothConcepts),
		Runs:             len(runs),
	}, true
}

// AngleNote is an engineer's note on one mission 1 run.
type AngleNote struct {
	RunNumber int
	Note      string
}

// AngleAnalysis summarises the turn angles used across mission 1 runs.
type AngleAnalysis struct {
	// Angles lists each distinct angle once, in order of first use.
	Angles          []float64
	WithinTolerance int
	Runs            int
	Notes           []AngleNote
}

// AnalyseAngles needs at least one run; ok is false otherwise.
func AnalyseAngles(runs []models.RunRecord) (a AngleAnalysis, ok bool) {
	if len(runs) == 0 {
		return a, false
	}
	seen := make(map[float64]bool)
	for _, r := range runs {
		angle := ActualAngle(r)
		if !seen[angle] {
			seen[angle] = true
			a.Angles = append(a.Angles, angle)
		}
		if r.Survey != nil && r.Survey.AngleNotes != "" {
			a.Notes = append(a.Notes, AngleNote{RunNumber: r.RunNumber, Note: r.Survey.AngleNotes})
		}
	}
	a.WithinTolerance = Count(runs, WithinAngleTolerance)
	a.Runs = len(runs)
	return a, true
}

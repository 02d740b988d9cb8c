package engine

import (
	"strconv"

	"github.com/tatianab/rover-rescue/internal/models"
	"github.com/tatianab/rover-rescue/internal/runs"
)

// Summary is the content of a mission complete or game complete step.
type Summary struct {
	Mission models.MissionID
	Title   string
	Message string
	Tip     string
	Player  models.Player

	// Record is the run just submitted, with Details listing it for display.
	Record  *models.RunRecord
	Details []Detail

	// Rank and Letter are set when the whole unit is complete.
	Rank   *models.Rank
	Letter []string
}

// Detail is one labelled value of a run summary.
type Detail struct {
	Label string
	Value string
}

func (e *Engine) summary(m models.MissionID) Summary {
	c := e.scripts[m].Complete
	s := Summary{
		Mission: m,
		Title:   c.Title,
		Message: c.Message,
		Tip:     c.Tip,
		Player:  e.player,
	}
	if rec, ok := e.last.Get(m); ok {
		s.Record = &rec
		s.Details = RunDetails(rec)
	}
	if m == models.MissionFinal {
		rank := models.RankFor(e.player.CodingSkill)
		s.Rank = &rank
		s.Letter = render(e.story.Letter, e.data())
	}
	return s
}

// RunDetails lists a run's recorded values with display labels.
func RunDetails(rec models.RunRecord) []Detail {
	seconds := func(v float64) string { return runs.FormatNumber(v) + " seconds" }
	degrees := func(v float64) string { return runs.FormatNumber(v) + "°" }
	length := func(v float64, unit string) string {
		if unit == "" {
			unit = models.DistanceUnit
		}
		return runs.FormatNumber(v) + " " + unit
	}
	switch {
	case rec.Survey != nil:
		r := rec.Survey
		return []Detail{
			{"Time", seconds(r.Time)},
			{"Target Angle", degrees(r.TargetAngle)},
			{"Actual Angle", degrees(r.ActualAngle)},
			{"Sides Completed", strconv.Itoa(r.Sides)},
			{"Distance/Side", length(r.Distance, r.DistanceUnit)},
			{"Returned to Start", string(r.Returned)},
			{"Attempts", strconv.Itoa(r.Attempts)},
		}
	case rec.Retrieval != nil:
		r := rec.Retrieval
		return []Detail{
			{"Time", seconds(r.Time)},
			{"Distance", length(r.Distance, r.DistanceUnit)},
			{"Obstacles Navigated", strconv.Itoa(r.Obstacles)},
			{"Collisions", strconv.Itoa(r.Collisions)},
			{"Target Reached", string(r.Reached)},
			{"Attempts", strconv.Itoa(r.Attempts)},
		}
	case rec.Final != nil:
		r := rec.Final
		return []Detail{
			{"Time", seconds(r.Time)},
			{"Distance", length(r.Distance, r.DistanceUnit)},
			{"Used Loops", string(r.Loops)},
			{"Used Conditionals", string(r.Conditionals)},
			{"Bugs Fixed", strconv.Itoa(r.Bugs)},
			{"Attempts", strconv.Itoa(r.Attempts)},
		}
	}
	return nil
}

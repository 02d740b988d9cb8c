package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tatianab/rover-rescue/internal/models"
	"github.com/tatianab/rover-rescue/internal/runs"
)

// Columns are the headings of a mission's run table.
func Columns(m models.MissionID) []string {
	switch m {
	case models.MissionSurvey:
		return []string{"Run", "Engineer", "Time", "Angle", "Sides", "Returned", "Attempts"}
	case models.MissionRetrieval:
		return []string{"Run", "Engineer", "Time", "Distance", "Collisions", "Reached", "Attempts"}
	case models.MissionFinal:
		return []string{"Run", "Engineer", "Time", "Distance", "Concepts", "Reached", "Bugs"}
	}
	return nil
}

// Row is rec laid out under Columns(rec.Mission).
func Row(rec models.RunRecord) []string {
	head := []string{"#" + strconv.Itoa(rec.RunNumber), rec.EngineerName, runs.FormatNumber(rec.Time()) + "s"}
	switch {
	case rec.Survey != nil:
		r := rec.Survey
		return append(head, runs.FormatNumber(r.ActualAngle)+"°", strconv.Itoa(r.Sides), string(r.Returned), strconv.Itoa(r.Attempts))
	case rec.Retrieval != nil:
		r := rec.Retrieval
		return append(head, distance(rec), strconv.Itoa(r.Collisions), string(r.Reached), strconv.Itoa(r.Attempts))
	case rec.Final != nil:
		r := rec.Final
		return append(head, distance(rec), concepts(*r), string(r.Reached), strconv.Itoa(r.Bugs))
	}
	return head
}

func distance(rec models.RunRecord) string {
	return runs.FormatNumber(rec.Distance()) + " " + models.DistanceUnit
}

func concepts(r models.FinalRun) string {
	var used []string
	if r.Loops == models.Yes {
		used = append(used, "loops")
	}
	if r.Conditionals == models.Yes {
		used = append(used, "ifs")
	}
	if len(used) == 0 {
		return "-"
	}
	return strings.Join(used, "+")
}

// Comparison describes how a mission's runs changed over time, one line per
// statistic. Statistics that compare runs are left out until there are two.
func Comparison(m models.MissionID, rs []models.RunRecord) []string {
	var lines []string
	switch m {
	case models.MissionSurvey:
		if c, ok := CompareSurvey(rs); ok {
			lines = append(lines,
				fmt.Sprintf("⏱️  Time: first %ss → latest %ss (best %ss)", runs.FormatNumber(c.FirstTime), runs.FormatNumber(c.LatestTime), runs.FormatNumber(c.BestTime)),
				fmt.Sprintf("🔁 Average attempts: %.1f", c.MeanAttempts),
			)
		}
		if a, ok := AnalyseAngles(rs); ok {
			angles := make([]string, len(a.Angles))
			for i, v := range a.Angles {
				angles[i] = runs.FormatNumber(v) + "°"
			}
			lines = append(lines,
				"📐 Angles used: "+strings.Join(angles, ", "),
				fmt.Sprintf("🎯 Within ±%s° of 60°: %d of %d runs", runs.FormatNumber(AngleTolerance), a.WithinTolerance, a.Runs),
			)
			for _, n := range a.Notes {
				lines = append(lines, fmt.Sprintf("📝 Run #%d: %s", n.RunNumber, n.Note))
			}
		}
	case models.MissionRetrieval:
		if c, ok := CompareRetrieval(rs); ok {
			lines = append(lines,
				fmt.Sprintf("💥 Collisions: first %d → latest %d (fewest %d)", c.FirstCollisions, c.LatestCollisions, c.FewestCollisions),
				fmt.Sprintf("✅ Pathfinder reached: %d of %d runs", c.Successful, c.Runs),
			)
		}
	case models.MissionFinal:
		if c, ok := CompareFinal(rs); ok {
			lines = append(lines,
				fmt.Sprintf("🔧 Bugs fixed: %d in total", c.TotalBugs),
				fmt.Sprintf("✅ Schiaparelli reached (or close): %d of %d runs", c.Successful, c.Runs),
				fmt.Sprintf("🌟 Used loops AND conditionals: %d of %d runs", c.UsedBothConcepts, c.Runs),
			)
		}
	}
	return lines
}

// Totals is the run count per mission and overall.
func Totals(h models.RunHistory) string {
	parts := make([]string, 0, len(models.Missions))
	for _, m := range models.Missions {
		parts = append(parts, fmt.Sprintf("Mission %d: %d", int(m), h.Len(m)))
	}
	return fmt.Sprintf("📊 %d runs recorded (%s)", h.Total(), strings.Join(parts, ", "))
}

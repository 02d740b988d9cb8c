// Package runs turns submitted robot run forms into typed records and
// scores them.
package runs

import "github.com/tatianab/rover-rescue/internal/models"

// Kind says how a raw form value is interpreted.
type Kind int

const (
	KindNumber  Kind = iota // floating point
	KindInteger             // whole number, fractional part dropped
	KindArrival             // yes | close | no
	KindYesNo               // yes | no
	KindText                // free text
)

// Field describes one input on a mission's run form. Min and Max are hints
// for the person filling the form in; they are never enforced.
type Field struct {
	Key      string
	Label    string
	Kind     Kind
	Required bool
	Default  string
	Hint     string
	Min      float64
	Max      float64
}

// Choices lists the accepted values for enum fields.
func (f Field) Choices() []string {
	switch f.Kind {
	case KindArrival:
		return []string{string(models.ArrivedYes), string(models.ArrivedClose), string(models.ArrivedNo)}
	case KindYesNo:
		return []string{string(models.Yes), string(models.No)}
	}
	return nil
}

var forms = map[models.MissionID][]Field{
	models.MissionSurvey: {
		{Key: "time", Label: "Total time to complete (seconds)", Kind: KindNumber, Required: true, Min: 1, Max: 300,
			Hint: "How long did your robot take to complete the hexagon?"},
		{Key: "targetAngle", Label: "Target angle (what you planned)", Kind: KindNumber, Default: "60", Min: 1, Max: 180,
			Hint: "60° is mathematically correct"},
		{Key: "actualAngle", Label: "Actual angle used (what worked best)", Kind: KindNumber, Required: true, Min: 1, Max: 180,
			Hint: "Robots sometimes need slight adjustments"},
		{Key: "angleNotes", Label: "Angle adjustment notes", Kind: KindText,
			Hint: "Why did you adjust? What did you learn about angles?"},
		{Key: "sides", Label: "Number of sides completed", Kind: KindInteger, Required: true, Min: 1, Max: 10},
		{Key: "distance", Label: "Distance per side (cm)", Kind: KindNumber, Required: true, Min: 1, Max: 500},
		{Key: "returned", Label: "Returned to the starting position?", Kind: KindArrival, Required: true,
			Hint: "yes / close / no"},
		{Key: "attempts", Label: "Number of attempts", Kind: KindInteger, Required: true, Min: 1, Max: 20},
		{Key: "challenges", Label: "What was the hardest part?", Kind: KindText},
	},
	models.MissionRetrieval: {
		{Key: "time", Label: "Total time to complete (seconds)", Kind: KindNumber, Required: true, Min: 1, Max: 600},
		{Key: "distance", Label: "Total distance traveled (cm)", Kind: KindNumber, Required: true, Min: 1, Max: 1000},
		{Key: "obstacles", Label: "Obstacles navigated", Kind: KindInteger, Min: 0, Max: 20,
			Hint: "How many obstacles did your robot avoid or go around?"},
		{Key: "collisions", Label: "Number of collisions", Kind: KindInteger, Min: 0, Max: 20,
			Hint: "How many times did the robot hit an obstacle?"},
		{Key: "reached", Label: "Reached the Pathfinder target?", Kind: KindArrival, Required: true,
			Hint: "yes / close / no"},
		{Key: "conditionals", Label: "Used IF/THEN conditionals?", Kind: KindYesNo, Hint: "yes / no"},
		{Key: "attempts", Label: "Number of attempts", Kind: KindInteger, Required: true, Min: 1, Max: 20},
		{Key: "strategy", Label: "Navigation strategy", Kind: KindText},
	},
	models.MissionFinal: {
		{Key: "time", Label: "Total time to complete (seconds)", Kind: KindNumber, Required: true, Min: 1, Max: 900},
		{Key: "distance", Label: "Total distance traveled (cm)", Kind: KindNumber, Required: true, Min: 1, Max: 2000},
		{Key: "segments", Label: "Number of path segments", Kind: KindInteger, Min: 1, Max: 30,
			Hint: "How many distinct movements/turns did your program have?"},
		{Key: "loops", Label: "Used LOOPS?", Kind: KindYesNo, Required: true, Hint: "yes / no"},
		{Key: "conditionals", Label: "Used IF/THEN conditionals?", Kind: KindYesNo, Required: true, Hint: "yes / no"},
		{Key: "reached", Label: "Reached Schiaparelli Crater?", Kind: KindArrival, Required: true,
			Hint: "yes / close / no"},
		{Key: "bugs", Label: "Bugs fixed during testing", Kind: KindInteger, Min: 0, Max: 50,
			Hint: "Debugging is part of the process!"},
		{Key: "attempts", Label: "Number of attempts", Kind: KindInteger, Required: true, Min: 1, Max: 30},
		{Key: "learned", Label: "Most important thing you learned", Kind: KindText},
	},
}

// Fields returns the run form for m in display order, or nil for an
// unknown mission.
func Fields(m models.MissionID) []Field {
	f := forms[m]
	if f == nil {
		return nil
	}
	out := make([]Field, len(f))
	copy(out, f)
	return out
}

func lookup(m models.MissionID, key string) (Field, bool) {
	for _, f := range forms[m] {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

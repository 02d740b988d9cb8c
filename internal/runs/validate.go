package runs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/fuzzy"
	"github.com/tatianab/rover-rescue/internal/models"
)

// Validate builds a run record for mission m from raw form values keyed by
// Field.Key. Either every required field is present and parses, and a record
// is returned, or a CodeMissingRequiredField error names the failing keys and
// no record is produced.
//
// A required value that does not parse for its kind counts as absent. An
// optional one that does not parse takes its default. Range hints are not
// checked.
func Validate(m models.MissionID, raw map[string]string) (models.RunRecord, error) {
	if forms[m] == nil {
		return models.RunRecord{}, errs.New(errs.CodeUnknownMission, fmt.Sprintf("unknown mission %d", int(m)))
	}
	r := &reader{mission: m, raw: raw, missing: map[string]bool{}}

	var rec models.RunRecord
	switch m {
	case models.MissionSurvey:
		target, targetGiven := r.supplied("targetAngle")
		rec = models.NewSurveyRecord(models.SurveyRun{
			Time:             r.number("time"),
			TargetAngle:      target,
			TargetAngleGiven: targetGiven,
			ActualAngle:      r.number("actualAngle"),
			Sides:            r.integer("sides"),
			Distance:         r.number("distance"),
			DistanceUnit:     models.DistanceUnit,
			Returned:         r.arrival("returned"),
			Attempts:         r.integer("attempts"),
			AngleNotes:       r.text("angleNotes"),
			Challenges:       r.text("challenges"),
		})
	case models.MissionRetrieval:
		rec = models.NewRetrievalRecord(models.RetrievalRun{
			Time:         r.number("time"),
			Distance:     r.number("distance"),
			DistanceUnit: models.DistanceUnit,
			Obstacles:    r.integer("obstacles"),
			Collisions:   r.integer("collisions"),
			Reached:      r.arrival("reached"),
			Conditionals: r.yesNo("conditionals"),
			Attempts:     r.integer("attempts"),
			Strategy:     r.text("strategy"),
		})
	case models.MissionFinal:
		rec = models.NewFinalRecord(models.FinalRun{
			Time:         r.number("time"),
			Distance:     r.number("distance"),
			DistanceUnit: models.DistanceUnit,
			Segments:     r.integer("segments"),
			Loops:        r.yesNo("loops"),
			Conditionals: r.yesNo("conditionals"),
			Reached:      r.arrival("reached"),
			Bugs:         r.integer("bugs"),
			Attempts:     r.integer("attempts"),
			Learned:      r.text("learned"),
		})
	}

	if missing := r.missingKeys(); len(missing) > 0 {
		return models.RunRecord{}, errs.WithMetadata(errs.CodeMissingRequiredField,
			"please fill in all required fields before transmitting",
			map[string]string{
				"mission": strconv.Itoa(int(m)),
				"fields":  strings.Join(missing, ","),
			})
	}
	return rec, nil
}

// MissingFields returns the field keys a validation error reports missing.
func MissingFields(err error) []string {
	var e *errs.Error
	if !errors.As(err, &e) || e.Code != errs.CodeMissingRequiredField || e.Metadata["fields"] == "" {
		return nil
	}
	return strings.Split(e.Metadata["fields"], ",")
}

type reader struct {
	mission models.MissionID
	raw     map[string]string
	missing map[string]bool
}

// value returns the trimmed raw value, or the field default when blank.
// A blank required field is recorded as missing.
func (r *reader) value(key string) (Field, string, bool) {
	f, _ := lookup(r.mission, key)
	v := strings.TrimSpace(r.raw[key])
	if v != "" {
		return f, v, true
	}
	if f.Required {
		r.missing[key] = true
	}
	return f, f.Default, false
}

func (r *reader) parsed(key string) (float64, bool) {
	f, v, given := r.value(key)
	if !given && v == "" {
		return 0, false
	}
	n, ok := parseNumber(v)
	if !ok {
		if given && f.Required {
			r.missing[key] = true
		}
		if given && f.Default != "" {
			n, _ = strconv.ParseFloat(f.Default, 64)
			return n, true
		}
		return 0, false
	}
	return n, true
}

// supplied reads an optional number and reports whether the engineer typed
// one that parses, as opposed to the default filling in.
func (r *reader) supplied(key string) (float64, bool) {
	n, _ := r.parsed(key)
	_, typed := parseNumber(strings.TrimSpace(r.raw[key]))
	return n, typed
}

func parseNumber(v string) (float64, bool) {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func (r *reader) number(key string) float64 {
	n, _ := r.parsed(key)
	return n
}

func (r *reader) integer(key string) int {
	n, _ := r.parsed(key)
	return int(math.Trunc(n))
}

func (r *reader) choice(key string) string {
	f, v, given := r.value(key)
	if !given {
		return v
	}
	c, ok := fuzzy.Match(v, f.Choices())
	if !ok {
		if f.Required {
			r.missing[key] = true
		}
		return f.Default
	}
	return c
}

func (r *reader) arrival(key string) models.Arrival {
	return models.Arrival(r.choice(key))
}

// yesNo reads a yes/no field. An optional one left blank reads as no.
func (r *reader) yesNo(key string) models.YesNo {
	if c := r.choice(key); c != "" {
		return models.YesNo(c)
	}
	return models.No
}

func (r *reader) text(key string) string {
	return strings.TrimSpace(r.raw[key])
}

func (r *reader) missingKeys() []string {
	var out []string
	for _, f := range forms[r.mission] {
		if r.missing[f.Key] {
			out = append(out, f.Key)
		}
	}
	return out
}

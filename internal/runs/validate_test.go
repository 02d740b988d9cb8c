package runs

import (
	"reflect"
	"testing"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/models"
)

func surveyForm() map[string]string {
	return map[string]string{
		"time":        "45",
		"actualAngle": "62",
		"sides":       "6",
		"distance":    "30",
		"returned":    "yes",
		"attempts":    "1",
	}
}

func TestValidateSurvey(t *testing.T) {
	rec, err := Validate(models.MissionSurvey, surveyForm())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := models.SurveyRun{
		Time:         45,
		TargetAngle:  60,
		ActualAngle:  62,
		Sides:        6,
		Distance:     30,
		DistanceUnit: "cm",
		Returned:     models.ArrivedYes,
		Attempts:     1,
	}
	if !rec.Valid() || rec.Mission != models.MissionSurvey {
		t.Fatalf("Validate() = %+v, want a survey record", rec)
	}
	if *rec.Survey != want {
		t.Errorf("Validate() survey = %+v, want %+v", *rec.Survey, want)
	}
	if rec.RunNumber != 0 || rec.EngineerName != "" || !rec.Timestamp.IsZero() {
		t.Errorf("Validate() must leave history stamps unset, got %+v", rec)
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	form := surveyForm()
	delete(form, "distance")
	form["attempts"] = "   "

	rec, err := Validate(models.MissionSurvey, form)
	if !errs.IsCode(err, errs.CodeMissingRequiredField) {
		t.Fatalf("Validate() error = %v, want %s", err, errs.CodeMissingRequiredField)
	}
	if rec.Valid() {
		t.Errorf("Validate() returned a record alongside an error: %+v", rec)
	}
	if got, want := MissingFields(err), []string{"distance", "attempts"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}
}

func TestValidateNonNumericCountsAsMissing(t *testing.T) {
	form := surveyForm()
	form["time"] = "fast"
	form["sides"] = "six"

	_, err := Validate(models.MissionSurvey, form)
	if got, want := MissingFields(err), []string{"time", "sides"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}
}

func TestValidateDefaults(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{"target angle defaults to 60 when blank", func(t *testing.T) {
			form := surveyForm()
			form["targetAngle"] = ""
			rec, err := Validate(models.MissionSurvey, form)
			if err != nil {
				t.Fatal(err)
			}
			if rec.Survey.TargetAngle != 60 || rec.Survey.TargetAngleGiven {
				t.Errorf("TargetAngle = %v (given %v), want default 60", rec.Survey.TargetAngle, rec.Survey.TargetAngleGiven)
			}
		}},
		{"target angle defaults to 60 when not numeric", func(t *testing.T) {
			form := surveyForm()
			form["targetAngle"] = "sixty"
			rec, err := Validate(models.MissionSurvey, form)
			if err != nil {
				t.Fatal(err)
			}
			if rec.Survey.TargetAngle != 60 || rec.Survey.TargetAngleGiven {
				t.Errorf("TargetAngle = %v (given %v), want default 60", rec.Survey.TargetAngle, rec.Survey.TargetAngleGiven)
			}
		}},
		{"typed target angle is kept", func(t *testing.T) {
			form := surveyForm()
			form["targetAngle"] = "65"
			rec, err := Validate(models.MissionSurvey, form)
			if err != nil {
				t.Fatal(err)
			}
			if rec.Survey.TargetAngle != 65 || !rec.Survey.TargetAngleGiven {
				t.Errorf("TargetAngle = %v (given %v), want 65 given", rec.Survey.TargetAngle, rec.Survey.TargetAngleGiven)
			}
		}},
		{"optional counts default to zero", func(t *testing.T) {
			rec, err := Validate(models.MissionRetrieval, map[string]string{
				"time": "90", "distance": "200", "reached": "close", "attempts": "4",
			})
			if err != nil {
				t.Fatal(err)
			}
			r := rec.Retrieval
			if r.Obstacles != 0 || r.Collisions != 0 {
				t.Errorf("Obstacles/Collisions = %d/%d, want 0/0", r.Obstacles, r.Collisions)
			}
			if r.Conditionals != models.No {
				t.Errorf("Conditionals = %q, want %q", r.Conditionals, models.No)
			}
		}},
		{"final optional counts default to zero", func(t *testing.T) {
			rec, err := Validate(models.MissionFinal, map[string]string{
				"time": "120", "distance": "300", "loops": "yes", "conditionals": "no",
				"reached": "no", "attempts": "6", "segments": "lots",
			})
			if err != nil {
				t.Fatal(err)
			}
			if rec.Final.Segments != 0 || rec.Final.Bugs != 0 {
				t.Errorf("Segments/Bugs = %d/%d, want 0/0", rec.Final.Segments, rec.Final.Bugs)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.check)
	}
}

func TestValidateFinalRequiresTechniques(t *testing.T) {
	_, err := Validate(models.MissionFinal, map[string]string{
		"time": "120", "distance": "300", "reached": "yes", "attempts": "6",
	})
	if got, want := MissingFields(err), []string{"loops", "conditionals"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}
}

func TestValidateAcceptsOutOfRangeValues(t *testing.T) {
	form := surveyForm()
	form["time"] = "9000"
	form["sides"] = "40"
	form["attempts"] = "0"
	rec, err := Validate(models.MissionSurvey, form)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if rec.Survey.Time != 9000 || rec.Survey.Sides != 40 || rec.Survey.Attempts != 0 {
		t.Errorf("Validate() altered out-of-range values: %+v", *rec.Survey)
	}
}

func TestValidateCoercion(t *testing.T) {
	form := surveyForm()
	form["sides"] = "6.7"
	form["actualAngle"] = " 61.5 "
	form["returned"] = "Close"
	rec, err := Validate(models.MissionSurvey, form)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if rec.Survey.Sides != 6 {
		t.Errorf("Sides = %d, want 6", rec.Survey.Sides)
	}
	if rec.Survey.ActualAngle != 61.5 {
		t.Errorf("ActualAngle = %v, want 61.5", rec.Survey.ActualAngle)
	}
	if rec.Survey.Returned != models.ArrivedClose {
		t.Errorf("Returned = %q, want %q", rec.Survey.Returned, models.ArrivedClose)
	}
}

func TestValidateUnrecognisedEnumIsMissing(t *testing.T) {
	form := surveyForm()
	form["returned"] = "perhaps"
	_, err := Validate(models.MissionSurvey, form)
	if got, want := MissingFields(err), []string{"returned"}; !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}
}

func TestValidateUnknownMission(t *testing.T) {
	_, err := Validate(models.MissionID(4), surveyForm())
	if !errs.IsCode(err, errs.CodeUnknownMission) {
		t.Errorf("Validate() error = %v, want %s", err, errs.CodeUnknownMission)
	}
}

func TestFieldsRequiredSets(t *testing.T) {
	want := map[models.MissionID][]string{
		models.MissionSurvey:    {"time", "actualAngle", "sides", "distance", "returned", "attempts"},
		models.MissionRetrieval: {"time", "distance", "reached", "attempts"},
		models.MissionFinal:     {"time", "distance", "loops", "conditionals", "reached", "attempts"},
	}
	for m, keys := range want {
		var got []string
		for _, f := range Fields(m) {
			if f.Required {
				got = append(got, f.Key)
			}
		}
		if !reflect.DeepEqual(got, keys) {
			t.Errorf("required fields for mission %d = %v, want %v", m, got, keys)
		}
	}
	if Fields(models.MissionID(0)) != nil {
		t.Error("Fields(0) should be nil")
	}
}

func TestValidateThenScoreWithoutTargetAngle(t *testing.T) {
	rec, err := Validate(models.MissionSurvey, surveyForm())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := []string{
		"✅ Excellent! Your actual angle is correct for a hexagon!",
		"✅ Perfect! A hexagon has exactly 6 sides!",
		"✅ Great precision! Your robot returned to start!",
		"🌟 First try success! Outstanding!",
	}
	got := Score(rec)
	if !reflect.DeepEqual(got.Feedback, want) {
		t.Errorf("Feedback =\n%q\nwant\n%q", got.Feedback, want)
	}
	if got.SkillDelta != 1 {
		t.Errorf("SkillDelta = %d, want 1", got.SkillDelta)
	}
}

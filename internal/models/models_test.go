package models

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestRunHistoryYAML(t *testing.T) {
	history := EmptyHistory()
	rec := NewSurveyRecord(SurveyRun{
		Time:         45,
		TargetAngle:  60,
		ActualAngle:  62.5,
		Sides:        6,
		Distance:     30,
		DistanceUnit: DistanceUnit,
		Returned:     ArrivedYes,
		Attempts:     1,
		AngleNotes:   "drifted left",
	})
	rec.RunNumber = 1
	rec.EngineerName = "Ada"
	rec.Timestamp = time.Date(2035, 3, 1, 12, 0, 0, 0, time.UTC)
	history.Push(rec)

	data, err := yaml.Marshal(history)
	if err != nil {
		t.Fatalf("Failed to marshal history: %v", err)
	}

	var history2 RunHistory
	if err := yaml.Unmarshal(data, &history2); err != nil {
		t.Fatalf("Failed to unmarshal history: %v", err)
	}

	if len(history2.Mission1) != 1 {
		t.Fatalf("Expected 1 mission 1 run, got %d", len(history2.Mission1))
	}
	got := history2.Mission1[0]
	if !got.Valid() {
		t.Fatalf("Expected a valid survey record, got %+v", got)
	}
	if got.Survey.ActualAngle != 62.5 {
		t.Errorf("Expected actual angle 62.5, got %v", got.Survey.ActualAngle)
	}
	if !got.Timestamp.Equal(rec.Timestamp) {
		t.Errorf("Expected timestamp %v, got %v", rec.Timestamp, got.Timestamp)
	}
	if history2.Mission2 == nil || history2.Mission3 == nil {
		t.Errorf("Expected empty sequences for missions 2 and 3 to survive, got %+v", history2)
	}
}

func TestAddSkillClamps(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		delta     int
		wantSkill int
		wantDelta int
	}{
		{"increment", 1, 1, 2, 1},
		{"two at once", 2, 2, 4, 2},
		{"clamped at max", 4, 3, 5, 1},
		{"already max", 5, 1, 5, 0},
		{"negative ignored", 3, -2, 3, 0},
		{"zero", 3, 0, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Ada")
			p.CodingSkill = tt.start
			applied := p.AddSkill(tt.delta)
			if p.CodingSkill != tt.wantSkill {
				t.Errorf("CodingSkill = %d, want %d", p.CodingSkill, tt.wantSkill)
			}
			if applied != tt.wantDelta {
				t.Errorf("AddSkill() = %d, want %d", applied, tt.wantDelta)
			}
		})
	}
}

func TestAddSkillNeverExceedsBounds(t *testing.T) {
	p := NewPlayer("Ada")
	for i := 0; i < 50; i++ {
		p.AddSkill(1)
		if p.CodingSkill < MinCodingSkill || p.CodingSkill > MaxCodingSkill {
			t.Fatalf("CodingSkill = %d after %d increments", p.CodingSkill, i+1)
		}
	}
	if p.CodingSkill != MaxCodingSkill {
		t.Errorf("CodingSkill = %d, want %d", p.CodingSkill, MaxCodingSkill)
	}
}

func TestPlayerResetKeepsName(t *testing.T) {
	p := Player{Name: "Ada", CodingSkill: 4, RoverPower: 85, CommsOnline: true, MissionsCompleted: 3}
	p.Reset()
	want := Player{Name: "Ada", CodingSkill: 1, RoverPower: 100}
	if p != want {
		t.Errorf("Reset() = %+v, want %+v", p, want)
	}
}

func TestPlayerForMission(t *testing.T) {
	tests := []struct {
		mission   MissionID
		completed int
		comms     bool
	}{
		{MissionSurvey, 0, false},
		{MissionRetrieval, 1, true},
		{MissionFinal, 2, true},
		{MissionID(9), 0, false},
	}
	for _, tt := range tests {
		p := PlayerForMission("Ada", tt.mission)
		if p.MissionsCompleted != tt.completed || p.CommsOnline != tt.comms {
			t.Errorf("PlayerForMission(%d) = %+v, want completed=%d comms=%v", tt.mission, p, tt.completed, tt.comms)
		}
	}
}

func TestRankFor(t *testing.T) {
	tests := map[int]string{
		1: "JUNIOR ROVER ENGINEER",
		2: "JUNIOR ROVER ENGINEER",
		3: "SENIOR ROVER ENGINEER",
		4: "SENIOR ROVER ENGINEER",
		5: "MASTER ROVER ENGINEER",
	}
	for skill, want := range tests {
		if got := RankFor(skill).Title; got != want {
			t.Errorf("RankFor(%d) = %q, want %q", skill, got, want)
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	rec := NewRetrievalRecord(RetrievalRun{Collisions: 3})
	c := rec.Clone()
	c.Retrieval.Collisions = 0
	if rec.Retrieval.Collisions != 3 {
		t.Errorf("Clone aliased the variant: original collisions = %d", rec.Retrieval.Collisions)
	}

	var s MissionSession
	s.Set(rec)
	got, ok := s.Get(MissionRetrieval)
	if !ok {
		t.Fatal("Expected a mission 2 record in the session")
	}
	got.Retrieval.Collisions = 9
	again, _ := s.Get(MissionRetrieval)
	if again.Retrieval.Collisions != 3 {
		t.Errorf("MissionSession leaked a mutable record: collisions = %d", again.Retrieval.Collisions)
	}
	s.Clear()
	if _, ok := s.Get(MissionRetrieval); ok {
		t.Error("Expected no record after Clear")
	}
}

func TestValid(t *testing.T) {
	if (RunRecord{Mission: MissionFinal, Survey: &SurveyRun{}}).Valid() {
		t.Error("Expected mismatched variant to be invalid")
	}
	if !NewFinalRecord(FinalRun{}).Valid() {
		t.Error("Expected NewFinalRecord to be valid")
	}
}

package models

import (
	"fmt"
	"time"
)

// MissionID identifies one of the three missions. Values double as the
// mission's position in play order.
type MissionID int

const (
	MissionSurvey    MissionID = 1 // Hab Perimeter Survey
	MissionRetrieval MissionID = 2 // Pathfinder Retrieval
	MissionFinal     MissionID = 3 // Schiaparelli Supply Run
)

// Missions lists every mission in play order.
var Missions = []MissionID{MissionSurvey, MissionRetrieval, MissionFinal}

// Valid reports whether m names a known mission.
func (m MissionID) Valid() bool {
	return m >= MissionSurvey && m <= MissionFinal
}

// Key is the storage key used for the mission's run history.
func (m MissionID) Key() string {
	return fmt.Sprintf("mission%d", int(m))
}

func (m MissionID) String() string {
	switch m {
	case MissionSurvey:
		return "Hab Perimeter Survey"
	case MissionRetrieval:
		return "Pathfinder Retrieval"
	case MissionFinal:
		return "Schiaparelli Supply Run"
	}
	return fmt.Sprintf("Mission %d", int(m))
}

// DistanceUnit is the only unit runs are recorded in.
const DistanceUnit = "cm"

// Arrival grades how close the robot got to its target.
type Arrival string

const (
	ArrivedYes   Arrival = "yes"
	ArrivedClose Arrival = "close"
	ArrivedNo    Arrival = "no"
)

// YesNo is a two-valued answer on a run form.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

// SurveyRun is the mission 1 run: a hexagon driven around the Hab.
type SurveyRun struct {
	Time        float64 `yaml:"time"`
	TargetAngle float64 `yaml:"target_angle"`
	// TargetAngleGiven is false when TargetAngle holds the form default.
	TargetAngleGiven bool    `yaml:"target_angle_given,omitempty"`
	ActualAngle      float64 `yaml:"actual_angle"`
	Sides            int     `yaml:"sides"`
	Distance         float64 `yaml:"distance"`
	DistanceUnit     string  `yaml:"distance_unit"`
	Returned         Arrival `yaml:"returned"`
	Attempts         int     `yaml:"attempts"`
	AngleNotes       string  `yaml:"angle_notes,omitempty"`
	Challenges       string  `yaml:"challenges,omitempty"`
}

// RetrievalRun is the mission 2 run: an obstacle course to the Pathfinder probe.
type RetrievalRun struct {
	Time         float64 `yaml:"time"`
	Distance     float64 `yaml:"distance"`
	DistanceUnit string  `yaml:"distance_unit"`
	Obstacles    int     `yaml:"obstacles"`
	Collisions   int     `yaml:"collisions"`
	Reached      Arrival `yaml:"reached"`
	Conditionals YesNo   `yaml:"conditionals"`
	Attempts     int     `yaml:"attempts"`
	Strategy     string  `yaml:"strategy,omitempty"`
}

// FinalRun is the mission 3 run: the full course to Schiaparelli Crater.
type FinalRun struct {
	Time         float64 `yaml:"time"`
	Distance     float64 `yaml:"distance"`
	DistanceUnit string  `yaml:"distance_unit"`
	Segments     int     `yaml:"segments"`
	Loops        YesNo   `yaml:"loops"`
	Conditionals YesNo   `yaml:"conditionals"`
	Reached      Arrival `yaml:"reached"`
	Bugs         int     `yaml:"bugs"`
	Attempts     int     `yaml:"attempts"`
	Learned      string  `yaml:"learned,omitempty"`
}

// RunRecord is one submitted run. Exactly one of Survey, Retrieval or Final
// is set, matching Mission.
type RunRecord struct {
	Mission      MissionID `yaml:"mission"`
	RunNumber    int       `yaml:"run_number"`
	EngineerName string    `yaml:"engineer_name"`
	Timestamp    time.Time `yaml:"timestamp"`

	Survey    *SurveyRun    `yaml:"survey,omitempty"`
	Retrieval *RetrievalRun `yaml:"retrieval,omitempty"`
	Final     *FinalRun     `yaml:"final,omitempty"`
}

func NewSurveyRecord(run SurveyRun) RunRecord {
	return RunRecord{Mission: MissionSurvey, Survey: &run}
}

func NewRetrievalRecord(run RetrievalRun) RunRecord {
	return RunRecord{Mission: MissionRetrieval, Retrieval: &run}
}

func NewFinalRecord(run FinalRun) RunRecord {
	return RunRecord{Mission: MissionFinal, Final: &run}
}

// Valid reports whether the record carries exactly the variant its mission
// calls for.
func (r RunRecord) Valid() bool {
	switch r.Mission {
	case MissionSurvey:
		return r.Survey != nil && r.Retrieval == nil && r.Final == nil
	case MissionRetrieval:
		return r.Retrieval != nil && r.Survey == nil && r.Final == nil
	case MissionFinal:
		return r.Final != nil && r.Survey == nil && r.Retrieval == nil
	}
	return false
}

// Clone returns a copy that shares no memory with r.
func (r RunRecord) Clone() RunRecord {
	if r.Survey != nil {
		s := *r.Survey
		r.Survey = &s
	}
	if r.Retrieval != nil {
		s := *r.Retrieval
		r.Retrieval = &s
	}
	if r.Final != nil {
		s := *r.Final
		r.Final = &s
	}
	return r
}

// Time is the run duration in seconds.
func (r RunRecord) Time() float64 {
	switch {
	case r.Survey != nil:
		return r.Survey.Time
	case r.Retrieval != nil:
		return r.Retrieval.Time
	case r.Final != nil:
		return r.Final.Time
	}
	return 0
}

// Distance is in DistanceUnit. For mission 1 it is the length of one side.
func (r RunRecord) Distance() float64 {
	switch {
	case r.Survey != nil:
		return r.Survey.Distance
	case r.Retrieval != nil:
		return r.Retrieval.Distance
	case r.Final != nil:
		return r.Final.Distance
	}
	return 0
}

func (r RunRecord) Attempts() int {
	switch {
	case r.Survey != nil:
		return r.Survey.Attempts
	case r.Retrieval != nil:
		return r.Retrieval.Attempts
	case r.Final != nil:
		return r.Final.Attempts
	}
	return 0
}

// Arrival is how close the run got to its goal (returned to start for
// mission 1, reached the target otherwise).
func (r RunRecord) Arrival() Arrival {
	switch {
	case r.Survey != nil:
		return r.Survey.Returned
	case r.Retrieval != nil:
		return r.Retrieval.Reached
	case r.Final != nil:
		return r.Final.Reached
	}
	return ""
}

// RunHistory holds every submitted run, per mission, in submission order.
type RunHistory struct {
	Mission1 []RunRecord `yaml:"mission1"`
	Mission2 []RunRecord `yaml:"mission2"`
	Mission3 []RunRecord `yaml:"mission3"`
}

// EmptyHistory returns a history with three empty sequences.
func EmptyHistory() RunHistory {
	return RunHistory{
		Mission1: []RunRecord{},
		Mission2: []RunRecord{},
		Mission3: []RunRecord{},
	}
}

func (h *RunHistory) slot(m MissionID) *[]RunRecord {
	switch m {
	case MissionSurvey:
		return &h.Mission1
	case MissionRetrieval:
		return &h.Mission2
	case MissionFinal:
		return &h.Mission3
	}
	return nil
}

// Runs returns the runs recorded for m. The slice aliases h.
func (h RunHistory) Runs(m MissionID) []RunRecord {
	if s := h.slot(m); s != nil {
		return *s
	}
	return nil
}

// Len is the number of runs recorded for m.
func (h RunHistory) Len(m MissionID) int {
	return len(h.Runs(m))
}

// Total is the number of runs across all missions.
func (h RunHistory) Total() int {
	return len(h.Mission1) + len(h.Mission2) + len(h.Mission3)
}

// Push appends r to its mission's sequence as-is.
func (h *RunHistory) Push(r RunRecord) {
	if s := h.slot(r.Mission); s != nil {
		*s = append(*s, r)
	}
}

// Clone deep-copies the history.
func (h RunHistory) Clone() RunHistory {
	out := EmptyHistory()
	for _, m := range Missions {
		for _, r := range h.Runs(m) {
			out.Push(r.Clone())
		}
	}
	return out
}

// MissionSession keeps the most recent submission per mission for the
// post-mission summary. Unlike RunHistory it is overwritten on every
// attempt and dropped on reset.
type MissionSession struct {
	last map[MissionID]RunRecord
}

func (s *MissionSession) Set(r RunRecord) {
	if s.last == nil {
		s.last = make(map[MissionID]RunRecord)
	}
	s.last[r.Mission] = r.Clone()
}

func (s MissionSession) Get(m MissionID) (RunRecord, bool) {
	r, ok := s.last[m]
	if !ok {
		return RunRecord{}, false
	}
	return r.Clone(), true
}

func (s *MissionSession) Clear() {
	s.last = nil
}

// Package engine sequences the three missions: narrative beats, choices and
// knowledge checks, then the hand-off to run data entry. It owns the player
// and the unlock state between missions.
//
// The engine never blocks. The live step waits until the presentation layer
// sends the signal that resolves it, tagged with the step's Seq; signals
// carrying any other Seq are ignored.
package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/tatianab/rover-rescue/internal/challenge"
	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/history"
	"github.com/tatianab/rover-rescue/internal/models"
	"github.com/tatianab/rover-rescue/internal/runs"
)

// StepKind is the kind of step awaiting a signal.
type StepKind int

const (
	StepIdle StepKind = iota // mission select
	StepNarrative
	StepChoice
	StepChallenge
	StepDataEntry
	StepMissionComplete
	StepGameComplete
)

func (k StepKind) String() string {
	switch k {
	case StepIdle:
		return "idle"
	case StepNarrative:
		return "narrative"
	case StepChoice:
		return "choice"
	case StepChallenge:
		return "challenge"
	case StepDataEntry:
		return "data entry"
	case StepMissionComplete:
		return "mission complete"
	case StepGameComplete:
		return "game complete"
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Step is the structured content of the live step.
type Step struct {
	Seq      uint64
	Kind     StepKind
	Mission  models.MissionID
	Location string
	Lines    []string

	// Options are the choices of a choice step.
	Options []string
	// Challenge is set on challenge steps.
	Challenge *ChallengeView
	// Fields is the run form of a data entry step.
	Fields []runs.Field
	// Summary is set on complete steps.
	Summary *Summary
}

// ChallengeView is a challenge step as shown to the player. Result is set
// once the challenge has been answered.
type ChallengeView struct {
	ID      string
	Title   string
	Prompt  []string
	Options []string
	Result  *challenge.Result
}

// Submission is the outcome of accepted run data.
type Submission struct {
	Record       models.RunRecord
	Feedback     []string
	SkillDelta   int
	Player       models.Player
	Transmission Transmission
	// PersistErr is set when the run could not be saved. The run is kept in
	// memory for the rest of the session.
	PersistErr error
}

// RecordedLine confirms the run's place in the history.
func (s Submission) RecordedLine() string {
	return fmt.Sprintf("📊 Run #%d recorded in your history!", s.Record.RunNumber)
}

// Engine is the mission flow orchestrator for one session.
type Engine struct {
	store   *history.Store
	scripts map[models.MissionID]*script
	story   *story
	intn    func(int) int

	player  models.Player
	nameSet bool
	last    models.MissionSession

	seq  uint64
	step Step

	// In-flight mission state.
	mission *script
	pos     int
	pres    *challenge.Presentation
}

type Option func(*Engine)

// WithPlayer starts the session with p instead of a new player, as a
// classroom session does when it begins partway through the unit.
func WithPlayer(p models.Player) Option {
	return func(e *Engine) {
		e.player = p
		e.nameSet = strings.TrimSpace(p.Name) != ""
	}
}

// WithRand sets the random source used to pick Mars facts.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.intn = r.IntN
	}
}

// New builds an engine recording runs into store. A nil store keeps runs in
// memory only.
func New(store *history.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		s, err := history.Open(history.NewMemoryMedium())
		if err != nil {
			return nil, err
		}
		store = s
	}
	scripts, err := loadScripts()
	if err != nil {
		return nil, err
	}
	st, err := loadStory()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:   store,
		scripts: scripts,
		story:   st,
		intn:    rand.IntN,
		player:  models.NewPlayer(""),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.idle()
	return e, nil
}

// SetName names the engineer. It can be set once.
func (e *Engine) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.New(errs.CodeNameRequired, "please enter a name")
	}
	if e.nameSet {
		return errs.New(errs.CodeNameAlreadySet, "engineer name is already set")
	}
	e.player.Name = name
	e.nameSet = true
	return nil
}

// Player returns a snapshot of the player.
func (e *Engine) Player() models.Player {
	return e.player
}

// History is the session's run history store.
func (e *Engine) History() *history.Store {
	return e.store
}

// LastRun is the most recent run submitted for m this session.
func (e *Engine) LastRun(m models.MissionID) (models.RunRecord, bool) {
	return e.last.Get(m)
}

// Introduction is the opening story, addressed to the engineer.
func (e *Engine) Introduction() []string {
	return render(e.story.Introduction, e.data())
}

// MarsFact returns a random Mars fact.
func (e *Engine) MarsFact() string {
	return e.story.Facts[e.intn(len(e.story.Facts))]
}

// MissionInfo describes a mission on mission select.
type MissionInfo struct {
	ID       models.MissionID
	Name     string
	Location string
	Status   MissionStatus
}

// Missions lists every mission with its status for the current player.
func (e *Engine) Missions() []MissionInfo {
	out := make([]MissionInfo, 0, len(models.Missions))
	for _, m := range models.Missions {
		out = append(out, MissionInfo{
			ID:       m,
			Name:     m.String(),
			Location: e.scripts[m].Location,
			Status:   StatusOf(m, e.player.MissionsCompleted),
		})
	}
	return out
}

// CanStart evaluates whether mission m can be started now.
func (e *Engine) CanStart(m models.MissionID) GuardResult {
	return CanStartMission(StartMissionContext{Mission: m, MissionsCompleted: e.player.MissionsCompleted})
}

// StartMission begins mission m from its first step, discarding any mission
// in flight. It does nothing and returns false when m is locked.
func (e *Engine) StartMission(m models.MissionID) bool {
	if !e.CanStart(m).Allowed {
		return false
	}
	e.mission = e.scripts[m]
	e.pos = 0
	e.activate()
	return true
}

// ResetProgress starts the unit over with the same engineer. Run history is
// kept.
func (e *Engine) ResetProgress() {
	e.player.Reset()
	e.last.Clear()
	e.idle()
}

// Current returns the live step.
func (e *Engine) Current() Step {
	s := e.step
	s.Lines = append([]string(nil), s.Lines...)
	s.Options = append([]string(nil), s.Options...)
	s.Fields = append([]runs.Field(nil), s.Fields...)
	if s.Challenge != nil {
		c := *s.Challenge
		c.Options = append([]string(nil), c.Options...)
		c.Prompt = append([]string(nil), c.Prompt...)
		if c.Result != nil {
			r := *c.Result
			c.Result = &r
		}
		s.Challenge = &c
	}
	if s.Summary != nil {
		sum := *s.Summary
		sum.Details = append([]Detail(nil), sum.Details...)
		sum.Letter = append([]string(nil), sum.Letter...)
		s.Summary = &sum
	}
	return s
}

func (e *Engine) live(seq uint64, kinds ...StepKind) bool {
	if seq != e.step.Seq {
		return false
	}
	for _, k := range kinds {
		if e.step.Kind == k {
			return true
		}
	}
	return false
}

// Continue resolves a narrative step, an answered challenge or a complete
// step. It returns false when seq is stale or the live step needs a
// different signal.
func (e *Engine) Continue(seq uint64) bool {
	if !e.live(seq, StepNarrative, StepChallenge, StepMissionComplete, StepGameComplete) {
		return false
	}
	switch e.step.Kind {
	case StepNarrative:
		e.advance()
	case StepChallenge:
		if !e.pres.Answered() {
			return false
		}
		e.advance()
	default:
		e.idle()
	}
	return true
}

// Choose resolves a choice step with the option at index. An option may
// grant coding skill and may be followed by a response from the supervisor
// before the mission moves on.
func (e *Engine) Choose(seq uint64, index int) bool {
	if !e.live(seq, StepChoice) {
		return false
	}
	options := e.mission.Steps[e.pos].Options
	if index < 0 || index >= len(options) {
		return false
	}
	opt := options[index]
	e.player.AddSkill(opt.Skill)
	if opt.Response == "" {
		e.advance()
		return true
	}
	e.show(Step{
		Kind:  StepNarrative,
		Lines: render(opt.Response, e.data()),
	})
	return true
}

// Answer grades the live challenge. Only the first answer counts; the step
// then waits for Continue.
func (e *Engine) Answer(seq uint64, index int) (challenge.Result, bool) {
	if !e.live(seq, StepChallenge) {
		return challenge.Result{}, false
	}
	res, ok := e.pres.Answer(index, &e.player)
	if ok {
		e.step.Challenge.Result = &res
	}
	return res, ok
}

// Submit validates, scores and records run data for the live data entry
// step. Invalid data leaves the step live so it can be corrected and sent
// again. Accepted data completes the mission; if the run could not be
// saved the Submission carries PersistErr and play continues.
func (e *Engine) Submit(seq uint64, raw map[string]string) (Submission, error) {
	if !e.live(seq, StepDataEntry) {
		return Submission{}, errs.New(errs.CodeStaleSignal, "no run data is expected right now")
	}
	m := e.mission.Mission
	rec, err := runs.Validate(m, raw)
	if err != nil {
		return Submission{}, err
	}
	card := runs.Score(rec)
	e.player.AddSkill(card.SkillDelta)

	stored, persistErr := e.store.Append(rec, e.player.Name)
	if stored.Mission == 0 {
		// Append refuses only malformed records, which Validate never returns.
		return Submission{}, persistErr
	}
	e.last.Set(stored)
	e.completeMission(m)

	sub := Submission{
		Record:       stored,
		Feedback:     card.Feedback,
		SkillDelta:   card.SkillDelta,
		Player:       e.player,
		Transmission: e.mission.Transmission,
		PersistErr:   persistErr,
	}
	e.finish()
	return sub, nil
}

// completeMission applies a mission's completion side effects.
func (e *Engine) completeMission(m models.MissionID) {
	switch m {
	case models.MissionSurvey:
		e.player.MissionsCompleted = max(e.player.MissionsCompleted, 1)
		e.player.RoverPower = 85
	case models.MissionRetrieval:
		e.player.MissionsCompleted = max(e.player.MissionsCompleted, 2)
		e.player.CommsOnline = true
	case models.MissionFinal:
		e.player.MissionsCompleted = models.TotalMissions
	}
}

func (e *Engine) finish() {
	m := e.mission.Mission
	kind := StepMissionComplete
	if m == models.MissionFinal {
		kind = StepGameComplete
	}
	summary := e.summary(m)
	e.show(Step{Kind: kind, Summary: &summary})
	e.mission = nil
	e.pres = nil
}

func (e *Engine) advance() {
	e.pos++
	e.activate()
}

// activate makes the mission step at pos live.
func (e *Engine) activate() {
	st := e.mission.Steps[e.pos]
	step := Step{Lines: render(st.Text, e.data())}
	switch st.Kind {
	case kindNarrative:
		step.Kind = StepNarrative
	case kindChoice:
		step.Kind = StepChoice
		for _, o := range st.Options {
			step.Options = append(step.Options, o.Label)
		}
	case kindChallenge:
		spec, _ := challenge.Lookup(st.Challenge)
		pres, err := challenge.Present(spec)
		if err != nil {
			// The bank is checked when loaded.
			panic(err)
		}
		e.pres = pres
		step.Kind = StepChallenge
		step.Challenge = &ChallengeView{
			ID:      spec.ID,
			Title:   spec.Title,
			Prompt:  splitLines(spec.Prompt),
			Options: spec.Options,
		}
	case kindDataEntry:
		step.Kind = StepDataEntry
		step.Fields = runs.Fields(e.mission.Mission)
	}
	e.show(step)
}

// show makes step live under a fresh sequence number, retiring the last one.
func (e *Engine) show(step Step) {
	e.seq++
	step.Seq = e.seq
	if e.mission != nil {
		step.Mission = e.mission.Mission
		step.Location = e.mission.Location
	}
	e.step = step
}

func (e *Engine) idle() {
	e.mission = nil
	e.pres = nil
	e.show(Step{Kind: StepIdle})
}

func (e *Engine) data() templateData {
	return templateData{Name: e.player.Name}
}

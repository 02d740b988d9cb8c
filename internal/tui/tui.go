// Package tui is the terminal front end of the game. It renders the engine's
// live step and turns key presses into the signal that step expects.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/rover-rescue/internal/challenge"
	"github.com/tatianab/rover-rescue/internal/engine"
	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/fuzzy"
	"github.com/tatianab/rover-rescue/internal/models"
	"github.com/tatianab/rover-rescue/internal/runs"
)

type sessionState int

const (
	stateName sessionState = iota
	stateIntro
	statePlaying
	stateHistory
	stateConfirmClear
	stateConfirmReset
)

const debriefTimeout = 30 * time.Second

// Debriefer writes a short Mission Control debrief for a submitted run.
type Debriefer interface {
	Debrief(ctx context.Context, rec models.RunRecord, feedback []string, previous *models.RunRecord) (string, error)
}

type Options struct {
	// TypingSpeed is the delay between revealed characters. Zero shows
	// text at once.
	TypingSpeed time.Duration
	// Coach is optional.
	Coach Debriefer
}

type model struct {
	state    sessionState
	back     sessionState
	engine   *engine.Engine
	opts     Options
	input    textinput.Model
	viewport viewport.Model
	form     *runForm
	history  *historyView
	width    int
	height   int

	step     engine.Step
	revealed int
	total    int
	fact     string
	notice   string
	sub      *engine.Submission
	debrief  string
}

func NewModel(eng *engine.Engine, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Enter your name, engineer..."
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40

	m := model{
		state:    stateName,
		engine:   eng,
		opts:     opts,
		input:    ti,
		viewport: viewport.New(75, 20),
		width:    100,
		height:   26,
	}
	if eng.Player().Name != "" {
		m.state = stateIntro
		m.input.Placeholder = ""
	}
	m.step = eng.Current()
	m.fact = eng.MarsFact()
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type typeTickMsg struct {
	seq uint64
}

type debriefMsg struct {
	mission models.MissionID
	run     int
	text    string
	err     error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = max(msg.Height-8, 5)

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)

	case typeTickMsg:
		cmd = m.tick(msg)

	case debriefMsg:
		m.receiveDebrief(msg)
	}

	m.refresh()
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state {
	case stateName:
		return m.nameKey(msg)
	case stateIntro:
		switch msg.Type {
		case tea.KeyEnter:
			m.state = statePlaying
			m.notice = ""
			m.input.Placeholder = "Mission number, or /help"
			return m.sync()
		case tea.KeyEsc:
			return tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case statePlaying:
		return m.playKey(msg)
	case stateHistory:
		return m.historyKey(msg)
	case stateConfirmClear, stateConfirmReset:
		return m.confirmKey(msg)
	}
	return nil
}

func (m *model) nameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyEnter:
		if err := m.engine.SetName(m.input.Value()); err != nil {
			m.notice = "⚠️ " + message(err)
			return nil
		}
		m.input.Reset()
		m.input.Placeholder = ""
		m.notice = ""
		m.state = stateIntro
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) playKey(msg tea.KeyMsg) tea.Cmd {
	if m.typing() {
		m.revealed = m.total
		return nil
	}

	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case tea.KeyEsc:
		if m.step.Kind == engine.StepIdle {
			return tea.Quit
		}
		return nil
	}

	if m.step.Kind == engine.StepDataEntry && m.form != nil {
		return m.formKey(msg)
	}

	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.notice = ""
	if strings.HasPrefix(text, "/") {
		return m.command(text)
	}
	return m.signal(text)
}

// signal sends the live step the signal text stands for.
func (m *model) signal(text string) tea.Cmd {
	step := m.step
	switch step.Kind {
	case engine.StepIdle:
		n, err := strconv.Atoi(text)
		if err != nil {
			m.notice = "Type a mission number (1-3), or /help for commands."
			return nil
		}
		id := models.MissionID(n)
		if g := m.engine.CanStart(id); !g.Allowed {
			m.notice = "🔒 " + g.Reason
			return nil
		}
		m.engine.StartMission(id)
		m.sub = nil
		m.debrief = ""

	case engine.StepNarrative, engine.StepMissionComplete, engine.StepGameComplete:
		m.engine.Continue(step.Seq)

	case engine.StepChoice:
		idx, ok := challenge.ParseAnswer(text, len(step.Options))
		if !ok {
			m.notice = fmt.Sprintf("Choose an option from 1 to %d.", len(step.Options))
			return nil
		}
		m.engine.Choose(step.Seq, idx)

	case engine.StepChallenge:
		if step.Challenge.Result != nil {
			m.engine.Continue(step.Seq)
			break
		}
		idx, ok := challenge.ParseAnswer(text, len(step.Challenge.Options))
		if !ok {
			m.notice = fmt.Sprintf("Answer with a letter from A to %c.", 'A'+rune(len(step.Challenge.Options)-1))
			return nil
		}
		m.engine.Answer(step.Seq, idx)
	}
	return m.sync()
}

var commands = []string{"history", "reset", "clear", "help", "quit"}

const helpText = "Commands: /history, /reset (start the unit over), /clear (erase run history), /quit"

func (m *model) command(text string) tea.Cmd {
	name, ok := fuzzy.Match(strings.TrimPrefix(text, "/"), commands)
	if !ok {
		m.notice = fmt.Sprintf("Unknown command %q. %s", text, helpText)
		return nil
	}
	switch name {
	case "history":
		m.history = newHistoryView(m.engine.History())
		m.state = stateHistory
	case "reset":
		m.back = statePlaying
		m.state = stateConfirmReset
	case "clear":
		m.back = statePlaying
		m.state = stateConfirmClear
	case "help":
		m.notice = helpText
	case "quit":
		return tea.Quit
	}
	return nil
}

func (m *model) formKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.form.next()
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.prev()
	case tea.KeyCtrlS:
		return m.submit()
	case tea.KeyEnter:
		if m.form.last() {
			return m.submit()
		}
		m.form.next()
	default:
		return m.form.update(msg)
	}
	return nil
}

func (m *model) submit() tea.Cmd {
	sub, err := m.engine.Submit(m.step.Seq, m.form.values())
	if err != nil {
		switch {
		case errs.IsCode(err, errs.CodeMissingRequiredField):
			missing := runs.MissingFields(err)
			m.form.markMissing(missing)
			m.notice = "⚠️ Please fill in: " + strings.Join(m.form.labels(missing), ", ")
		case errs.IsCode(err, errs.CodeStaleSignal):
			return m.sync()
		default:
			m.notice = "⚠️ " + message(err)
		}
		return nil
	}

	m.sub = &sub
	m.debrief = ""
	m.notice = ""
	if sub.PersistErr != nil {
		log.Printf("history: %v", sub.PersistErr)
		m.notice = "⚠️ Your run could not be saved to disk. It is kept until you quit."
	}
	return tea.Batch(m.sync(), m.requestDebrief(sub))
}

func (m *model) requestDebrief(sub engine.Submission) tea.Cmd {
	if m.opts.Coach == nil {
		return nil
	}
	var prev *models.RunRecord
	if rs := m.engine.History().Runs(sub.Record.Mission); len(rs) >= 2 {
		p := rs[len(rs)-2]
		prev = &p
	}
	coach := m.opts.Coach
	rec, feedback := sub.Record, sub.Feedback
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), debriefTimeout)
		defer cancel()
		text, err := coach.Debrief(ctx, rec, feedback, prev)
		return debriefMsg{mission: rec.Mission, run: rec.RunNumber, text: text, err: err}
	}
}

func (m *model) receiveDebrief(msg debriefMsg) {
	if msg.err != nil {
		log.Printf("coach: %v", msg.err)
		return
	}
	if m.sub != nil && m.sub.Record.Mission == msg.mission && m.sub.Record.RunNumber == msg.run {
		m.debrief = msg.text
	}
}

func (m *model) historyKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.state = statePlaying
		m.history = nil
	case "left", "shift+tab":
		m.history.shift(-1)
	case "right", "tab":
		m.history.shift(1)
	case "c":
		m.back = stateHistory
		m.state = stateConfirmClear
	default:
		return m.history.update(msg)
	}
	return nil
}

func (m *model) confirmKey(msg tea.KeyMsg) tea.Cmd {
	switch strings.ToLower(msg.String()) {
	case "y":
		if m.state == stateConfirmClear {
			if err := m.engine.History().Clear(); err != nil {
				log.Printf("history: %v", err)
				m.notice = "⚠️ History cleared for this session, but the change could not be saved."
			} else {
				m.notice = "🗑️ Run history cleared."
			}
		} else {
			m.engine.ResetProgress()
			m.sub = nil
			m.debrief = ""
			m.notice = "🔄 Progress reset. Mission 1 awaits!"
		}
	case "n", "esc":
		m.notice = ""
	default:
		return nil
	}

	m.state = m.back
	if m.state == stateHistory {
		m.history.load()
		return nil
	}
	return m.sync()
}

// sync picks up the engine's live step after a signal.
func (m *model) sync() tea.Cmd {
	cur := m.engine.Current()
	changed := cur.Seq != m.step.Seq
	m.step = cur
	if !changed {
		return nil
	}

	m.viewport.GotoTop()
	m.form = nil
	switch cur.Kind {
	case engine.StepIdle:
		m.fact = m.engine.MarsFact()
		m.input.Placeholder = "Mission number, or /help"
	case engine.StepDataEntry:
		m.form = newRunForm(cur.Fields)
	case engine.StepChoice:
		m.input.Placeholder = "Option number"
	case engine.StepChallenge:
		m.input.Placeholder = "Answer letter"
	default:
		m.input.Placeholder = "Press Enter to continue"
	}
	return m.startTyping()
}

func (m *model) startTyping() tea.Cmd {
	m.total = 0
	for _, l := range m.step.Lines {
		m.total += utf8.RuneCountInString(l)
	}
	m.revealed = 0
	if m.opts.TypingSpeed <= 0 || m.total == 0 {
		m.revealed = m.total
		return nil
	}
	return m.nextTick()
}

func (m *model) nextTick() tea.Cmd {
	seq := m.step.Seq
	return tea.Tick(m.opts.TypingSpeed, func(time.Time) tea.Msg {
		return typeTickMsg{seq: seq}
	})
}

func (m *model) tick(msg typeTickMsg) tea.Cmd {
	if msg.seq != m.step.Seq || !m.typing() {
		return nil
	}
	m.revealed++
	if !m.typing() {
		return nil
	}
	return m.nextTick()
}

func (m *model) typing() bool {
	return m.revealed < m.total
}

// reveal returns lines cut off after n characters.
func reveal(lines []string, n int) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		c := utf8.RuneCountInString(l)
		if n >= c {
			out = append(out, l)
			n -= c
			continue
		}
		out = append(out, string([]rune(l)[:n]))
		break
	}
	return out
}

func (m *model) refresh() {
	switch m.state {
	case stateIntro:
		m.viewport.SetContent(m.introContent())
	case statePlaying:
		m.viewport.SetContent(m.stepContent())
		if m.typing() {
			m.viewport.GotoBottom()
		}
	}
}

func message(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func Run(eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(NewModel(eng, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/rover-rescue/internal/engine"
	"github.com/tatianab/rover-rescue/internal/models"
)

const banner = "🚀 MARS ROVER RESCUE"

func (m model) View() string {
	var s string

	switch m.state {
	case stateName:
		s = fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			bannerStyle.Render(banner),
			"NASA needs a rover engineer. What is your name?",
			m.input.View(),
		)

	case stateIntro:
		s = lipgloss.JoinVertical(lipgloss.Left,
			bannerStyle.Render(banner),
			"",
			m.viewport.View(),
			"",
			helpStyle.Render("Press Enter to report for duty."),
		)

	case statePlaying:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		parts := []string{mainView}
		if m.step.Kind != engine.StepDataEntry {
			parts = append(parts, "\n"+m.input.View())
		}
		parts = append(parts, "\n"+helpStyle.Render(m.help()))
		s = lipgloss.JoinVertical(lipgloss.Left, parts...)

	case stateHistory:
		s = m.history.view() + "\n" + helpStyle.Render("←/→ switch mission   ↑/↓ scroll   c clear history   Esc back")

	case stateConfirmClear:
		s = "🗑️  Clear ALL run history for every mission? This cannot be undone. (y/n)"

	case stateConfirmReset:
		s = "🔄 Reset your progress and start the unit over? Your run history is kept. (y/n)"
	}

	if m.notice != "" {
		s += "\n\n" + noticeStyle.Render(m.notice)
	}
	return "\n" + s + "\n"
}

func (m model) help() string {
	switch m.step.Kind {
	case engine.StepIdle:
		return "Type a mission number and press Enter.   " + helpText
	case engine.StepChoice:
		return "Type an option number and press Enter."
	case engine.StepChallenge:
		if m.step.Challenge != nil && m.step.Challenge.Result != nil {
			return "Press Enter to continue."
		}
		return "Type the letter of your answer and press Enter."
	case engine.StepDataEntry:
		return "Enter the data from your Sphero run."
	}
	return "Press Enter to continue.   PgUp/PgDn scroll."
}

func (m model) introContent() string {
	return gameStyle.Width(m.viewport.Width).Render(strings.Join(m.engine.Introduction(), "\n"))
}

func (m model) stepContent() string {
	var b strings.Builder
	if m.step.Location != "" {
		b.WriteString(locationStyle.Render(m.step.Location) + "\n\n")
	}
	if len(m.step.Lines) > 0 {
		b.WriteString(strings.Join(reveal(m.step.Lines, m.revealed), "\n"))
		b.WriteString("\n")
	}
	if m.typing() {
		return b.String()
	}

	switch m.step.Kind {
	case engine.StepIdle:
		b.WriteString(m.selectContent())
	case engine.StepChoice:
		b.WriteString("\n")
		for i, o := range m.step.Options {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, o)
		}
	case engine.StepChallenge:
		b.WriteString(challengeContent(m.step.Challenge))
	case engine.StepDataEntry:
		if m.form != nil {
			b.WriteString("\n" + m.form.view())
		}
	case engine.StepMissionComplete, engine.StepGameComplete:
		b.WriteString(m.completeContent())
	}
	return b.String()
}

func (m model) selectContent() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌍 MISSION SELECT") + "\n\n")
	for _, info := range m.engine.Missions() {
		line := fmt.Sprintf("%d. %s  %s  [%s]", int(info.ID), info.Name, info.Location, info.Status)
		if info.Status == engine.StatusLocked {
			line = lockedStyle.Render("🔒 " + line)
		}
		b.WriteString(line + "\n")
	}
	if m.fact != "" {
		b.WriteString("\n💡 MARS FACT: " + m.fact + "\n")
	}
	return b.String()
}

func challengeContent(c *engine.ChallengeView) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧠 KNOWLEDGE CHECK: "+c.Title) + "\n\n")
	b.WriteString(strings.Join(c.Prompt, "\n") + "\n\n")
	for i, o := range c.Options {
		mark := "  "
		if c.Result != nil && i == c.Result.Correct {
			mark = "✓ "
		}
		fmt.Fprintf(&b, "%s%c) %s\n", mark, 'A'+rune(i), o)
	}
	if r := c.Result; r != nil {
		b.WriteString("\n" + r.Feedback + "\n")
		if r.SkillDelta > 0 {
			b.WriteString("⭐ Your coding skill increased!\n")
		}
	}
	return b.String()
}

func (m model) completeContent() string {
	sum := m.step.Summary
	if sum == nil {
		return ""
	}
	var b strings.Builder

	if sub := m.sub; sub != nil && sub.Record.Mission == sum.Mission {
		b.WriteString(sub.Transmission.Heading + "\n")
		b.WriteString(helpStyle.Render(sub.Transmission.Status) + "\n\n")
		for _, f := range sub.Feedback {
			b.WriteString(f + "\n")
		}
		if sub.SkillDelta > 0 {
			fmt.Fprintf(&b, "⭐ +%d coding skill!\n", sub.SkillDelta)
		}
		b.WriteString("\n" + sub.RecordedLine() + "\n\n")
	}

	b.WriteString(titleStyle.Render("🎉 "+sum.Title) + "\n\n")
	b.WriteString(sum.Message + "\n\n")
	for _, d := range sum.Details {
		fmt.Fprintf(&b, "  %-20s %s\n", d.Label+":", d.Value)
	}
	if sum.Tip != "" {
		b.WriteString("\n🤖 ROBOT TIP: " + sum.Tip + "\n")
	}
	if m.debrief != "" {
		b.WriteString("\n📡 MISSION CONTROL: " + m.debrief + "\n")
	}

	if sum.Rank != nil {
		b.WriteString("\n" + bannerStyle.Render("🏆 "+sum.Rank.Title) + "\n")
		b.WriteString(sum.Rank.Message + "\n")
	}
	if len(sum.Letter) > 0 {
		b.WriteString("\n📨 A MESSAGE FROM MARS\n")
		b.WriteString(letterStyle.Render(strings.Join(sum.Letter, "\n")) + "\n")
	}
	return b.String()
}

func (m model) renderState() string {
	p := m.engine.Player()

	engineer := titleStyle.Render("ENGINEER") + "\n" + p.Name + "\n\n"

	skill := strings.Repeat("★", p.CodingSkill) + strings.Repeat("☆", models.MaxCodingSkill-p.CodingSkill)
	comms := "OFFLINE"
	if p.CommsOnline {
		comms = "ONLINE"
	}
	statusTitle := titleStyle.Render("STATUS") + "\n"
	status := fmt.Sprintf("Coding skill: %s\nRover power: %d%%\nComms: %s\nMissions: %d/%d\n\n",
		skill, p.RoverPower, comms, p.MissionsCompleted, models.TotalMissions)

	content := engineer + statusTitle + status
	if m.step.Mission != 0 {
		content += titleStyle.Render("MISSION") + "\n" + fmt.Sprintf("%d. %s", int(m.step.Mission), m.step.Mission) + "\n"
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/rover-rescue/internal/history"
	"github.com/tatianab/rover-rescue/internal/models"
)

const maxTableRows = 10

// historyView shows one mission's runs at a time, with the statistics
// comparing them.
type historyView struct {
	store   *history.Store
	mission models.MissionID
	table   table.Model
	empty   bool
}

func newHistoryView(store *history.Store) *historyView {
	v := &historyView{store: store, mission: models.MissionSurvey}
	v.load()
	return v
}

func (v *historyView) load() {
	recs := v.store.Runs(v.mission)
	titles := history.Columns(v.mission)

	rows := make([]table.Row, 0, len(recs))
	widths := make([]int, len(titles))
	for i, t := range titles {
		widths[i] = lipgloss.Width(t)
	}
	for _, r := range recs {
		row := history.Row(r)
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
		rows = append(rows, row)
	}

	cols := make([]table.Column, len(titles))
	for i, t := range titles {
		cols[i] = table.Column{Title: t, Width: widths[i] + 1}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), maxTableRows)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#3C3C3C")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(marsRed)
	t.SetStyles(s)
	if len(rows) > 0 {
		t.GotoBottom()
	}

	v.table = t
	v.empty = len(rows) == 0
}

// shift moves to the next (d > 0) or previous mission tab.
func (v *historyView) shift(d int) {
	n := len(models.Missions)
	idx := (int(v.mission) - 1 + d + n) % n
	v.mission = models.Missions[idx]
	v.load()
}

func (v *historyView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return cmd
}

func (v *historyView) view() string {
	var tabs []string
	for _, m := range models.Missions {
		label := fmt.Sprintf("%d. %s (%d)", int(m), m, v.store.Len(m))
		if m == v.mission {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📊 RUN HISTORY") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")
	if v.empty {
		b.WriteString(helpStyle.Render("No runs recorded for this mission yet.") + "\n")
	} else {
		b.WriteString(v.table.View() + "\n")
	}

	if lines := history.Comparison(v.mission, v.store.Runs(v.mission)); len(lines) > 0 {
		b.WriteString("\n" + strings.Join(lines, "\n") + "\n")
	}
	b.WriteString("\n" + history.Totals(v.store.Snapshot()) + "\n")
	return b.String()
}

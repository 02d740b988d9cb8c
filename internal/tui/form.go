package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/rover-rescue/internal/runs"
)

// runForm is the data entry form of a mission run, one input per field.
type runForm struct {
	fields  []runs.Field
	inputs  []textinput.Model
	focus   int
	missing map[string]bool
}

func newRunForm(fields []runs.Field) *runForm {
	f := &runForm{
		fields:  fields,
		inputs:  make([]textinput.Model, len(fields)),
		missing: make(map[string]bool),
	}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 12
		ti.Width = 20
		switch fd.Kind {
		case runs.KindText:
			ti.CharLimit = 200
			ti.Width = 50
		case runs.KindArrival, runs.KindYesNo:
			ti.Placeholder = strings.Join(fd.Choices(), " / ")
		}
		if fd.Default != "" {
			ti.Placeholder = fd.Default
		}
		f.inputs[i] = ti
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// values are the non-blank answers keyed by field.
func (f *runForm) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, fd := range f.fields {
		if v := strings.TrimSpace(f.inputs[i].Value()); v != "" {
			out[fd.Key] = v
		}
	}
	return out
}

func (f *runForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *runForm) next() { f.setFocus(f.focus + 1) }
func (f *runForm) prev() { f.setFocus(f.focus - 1) }

func (f *runForm) last() bool {
	return f.focus == len(f.inputs)-1
}

func (f *runForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	delete(f.missing, f.fields[f.focus].Key)
	return cmd
}

// markMissing flags keys and moves focus to the first of them.
func (f *runForm) markMissing(keys []string) {
	first := -1
	for _, k := range keys {
		f.missing[k] = true
		if i := f.index(k); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	if first >= 0 {
		f.setFocus(first)
	}
}

func (f *runForm) index(key string) int {
	for i, fd := range f.fields {
		if fd.Key == key {
			return i
		}
	}
	return -1
}

func (f *runForm) labels(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if i := f.index(k); i >= 0 {
			out = append(out, f.fields[i].Label)
		}
	}
	return out
}

func (f *runForm) view() string {
	var b strings.Builder
	for i, fd := range f.fields {
		label := fd.Label
		if fd.Required {
			label += " *"
		}
		if f.missing[fd.Key] {
			label = missingStyle.Render(label + "  ← required")
		} else if i == f.focus {
			label = gameStyle.Bold(true).Render(label)
		}
		b.WriteString(label + "\n")
		if fd.Hint != "" && i == f.focus {
			b.WriteString(helpStyle.Render("  "+fd.Hint) + "\n")
		}
		b.WriteString(f.inputs[i].View() + "\n\n")
	}
	b.WriteString(helpStyle.Render("* required   Tab/↓ next field   Shift+Tab/↑ previous   Enter on the last field or Ctrl+S to transmit"))
	return b.String()
}

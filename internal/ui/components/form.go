package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"skidlogg/internal/ui/theme"
)

// SessionFields is the raw text of the session form.
type SessionFields struct {
	Style    string
	Date     string
	Distance string
	Duration string
	Climb    string
}

type StyleOption struct {
	Key         string
	Label       string
	Color       string
	TracksClimb bool
}

// FormSubmitMsg is sent on enter. The form stays open until the caller
// closes it, so a rejected input can be corrected in place.
type FormSubmitMsg struct {
	EditingID string
	Fields    SessionFields
}

type FormCancelMsg struct{ EditingID string }

const (
	fieldStyle = iota
	fieldDate
	fieldDistance
	fieldDuration
	fieldClimb
	fieldCount
)

var fieldLabels = [fieldCount]string{"Stil", "Datum", "Distans (km)", "Tid", "Höjdmeter"}

// Form edits one session. The style row is a selector; the other rows are
// text inputs. The climb row is hidden for styles without climb.
type Form struct {
	styles    []StyleOption
	styleIdx  int
	inputs    [fieldCount]textinput.Model
	focus     int
	editingID string
	visible   bool
	err       string
	width     int
}

func NewForm() Form {
	f := Form{}
	placeholders := [fieldCount]string{"", "ÅÅÅÅ-MM-DD", "12,5", "mm:ss eller hh:mm:ss", "0"}
	for i := fieldDate; i < fieldCount; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 32
		f.inputs[i] = ti
	}
	return f
}

func (f *Form) SetStyles(styles []StyleOption) { f.styles = styles }

func (f *Form) SetWidth(w int) { f.width = w }

func (f Form) Visible() bool { return f.visible }

func (f Form) EditingID() string { return f.editingID }

func (f *Form) SetError(msg string) { f.err = msg }

// Open shows the form filled with fields. An empty editingID means a new
// session.
func (f *Form) Open(editingID string, fields SessionFields) tea.Cmd {
	f.visible = true
	f.editingID = editingID
	f.err = ""
	f.styleIdx = 0
	for i, option := range f.styles {
		if option.Key == fields.Style {
			f.styleIdx = i
		}
	}
	f.inputs[fieldDate].SetValue(fields.Date)
	f.inputs[fieldDistance].SetValue(fields.Distance)
	f.inputs[fieldDuration].SetValue(fields.Duration)
	f.inputs[fieldClimb].SetValue(fields.Climb)
	return f.focusField(fieldStyle)
}

func (f *Form) Close() {
	f.visible = false
	f.editingID = ""
	f.err = ""
	for i := fieldDate; i < fieldCount; i++ {
		f.inputs[i].Blur()
	}
}

func (f Form) Fields() SessionFields {
	out := SessionFields{
		Date:     strings.TrimSpace(f.inputs[fieldDate].Value()),
		Distance: strings.TrimSpace(f.inputs[fieldDistance].Value()),
		Duration: strings.TrimSpace(f.inputs[fieldDuration].Value()),
		Climb:    strings.TrimSpace(f.inputs[fieldClimb].Value()),
	}
	if option, ok := f.style(); ok {
		out.Style = option.Key
	}
	return out
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if !f.visible {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			id := f.editingID
			f.Close()
			return f, func() tea.Msg { return FormCancelMsg{EditingID: id} }
		case "enter":
			submit := FormSubmitMsg{EditingID: f.editingID, Fields: f.Fields()}
			return f, func() tea.Msg { return submit }
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "left", "right":
			if f.focus == fieldStyle && len(f.styles) > 0 {
				step := 1
				if key.String() == "left" {
					step = len(f.styles) - 1
				}
				f.styleIdx = (f.styleIdx + step) % len(f.styles)
				return f, nil
			}
		}
	}
	if f.focus == fieldStyle {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f Form) View() string {
	if !f.visible {
		return ""
	}
	title := "Nytt pass"
	if f.editingID != "" {
		title = "Redigera pass"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	for i := 0; i < fieldCount; i++ {
		if i == fieldClimb && !f.tracksClimb() {
			continue
		}
		marker := "  "
		if i == f.focus {
			marker = theme.Hot.Render("› ")
		}
		value := ""
		if i == fieldStyle {
			if option, ok := f.style(); ok {
				value = "‹ " + theme.Swatch(option.Color, option.Key) + " ›"
			}
		} else {
			value = f.inputs[i].View()
		}
		sb.WriteString(fmt.Sprintf("%s%-14s %s\n", marker, fieldLabels[i], value))
	}
	if f.err != "" {
		sb.WriteString("\n" + theme.Error.Render(f.err) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: spara  esc: avbryt  tab: nästa fält  ←/→: stil"))
	w := f.width
	if w < 30 {
		w = 60
	}
	return theme.Overlay.Width(w - 2).Render(sb.String())
}

func (f Form) style() (StyleOption, bool) {
	if f.styleIdx < 0 || f.styleIdx >= len(f.styles) {
		return StyleOption{}, false
	}
	return f.styles[f.styleIdx], true
}

func (f Form) tracksClimb() bool {
	option, ok := f.style()
	return !ok || option.TracksClimb
}

func (f *Form) move(step int) tea.Cmd {
	next := f.focus
	for {
		next = (next + step + fieldCount) % fieldCount
		if next != fieldClimb || f.tracksClimb() {
			break
		}
	}
	return f.focusField(next)
}

func (f *Form) focusField(field int) tea.Cmd {
	f.focus = field
	for i := fieldDate; i < fieldCount; i++ {
		f.inputs[i].Blur()
	}
	if field == fieldStyle {
		return nil
	}
	return f.inputs[field].Focus()
}

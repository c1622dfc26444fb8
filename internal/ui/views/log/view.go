package log

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skidlogg/internal/modules/training/dto"
	"skidlogg/internal/platform/format"
	"skidlogg/internal/ui/theme"
)

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session dto.SessionOutput
	format  format.Formatter
}

func (i sessionItem) Title() string {
	return i.session.Date + "  " + theme.Swatch(i.session.Color, i.session.Style)
}

func (i sessionItem) Description() string {
	s := i.session
	parts := []string{
		i.format.Number(s.DistanceKM, 1) + " km",
		s.Duration,
		i.format.Pace(s.PaceSecPerKM),
	}
	if s.TracksClimb {
		parts = append(parts, i.format.Number(s.ClimbMeters, 0)+" hm", "stifa "+i.format.Ratio(s.Stifa, 1))
	}
	return strings.Join(parts, " · ")
}

func (i sessionItem) FilterValue() string { return i.session.Date + " " + i.session.Style }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	list    list.Model
	format  format.Formatter
	confirm string
	width   int
	height  int
}

func New(formatter format.Formatter) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Träningslogg"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("pass", "pass")
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{list: l, format: formatter}
}

// SetRows replaces the list. Rows arrive sorted newest first.
func (m *Model) SetRows(rows []dto.SessionOutput, label string) tea.Cmd {
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = sessionItem{session: row, format: m.format}
	}
	m.list.Title = "Träningslogg · " + label
	return m.list.SetItems(items)
}

// ConfirmDelete asks before removing id; an empty id clears the prompt.
func (m *Model) ConfirmDelete(id string) { m.confirm = id }

func (m Model) Confirming() string { return m.confirm }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.list.SetSize(m.width, m.height-2)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render(m.list.Title),
			"",
			theme.Muted.Render("Inga pass ännu. Tryck n för att lägga till."),
		)
	}
	footer := theme.Muted.Render("n: nytt  e: redigera  d: ta bort  [/]: säsong  /: sök")
	if m.confirm != "" {
		if row, ok := m.Selected(); ok && row.ID == m.confirm {
			footer = theme.Hot.Render(fmt.Sprintf("Ta bort passet %s (%s)? y/n", row.Date, row.Style))
		} else {
			footer = theme.Hot.Render("Ta bort passet? y/n")
		}
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(body + "\n" + footer)
}

func (m Model) Selected() (dto.SessionOutput, bool) {
	if item, ok := m.list.SelectedItem().(sessionItem); ok {
		return item.session, true
	}
	return dto.SessionOutput{}, false
}

// Filtering reports whether the search prompt has the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

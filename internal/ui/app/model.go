package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "skidlogg/internal/modules/report/dto"
	"skidlogg/internal/modules/training/dto"
	"skidlogg/internal/platform/clock"
	apperrors "skidlogg/internal/platform/errors"
	"skidlogg/internal/platform/format"
	"skidlogg/internal/ui/components"
	"skidlogg/internal/ui/theme"
	logview "skidlogg/internal/ui/views/log"
	summaryview "skidlogg/internal/ui/views/summary"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type trainingPort interface {
	View(ctx context.Context, state dto.ViewState) (dto.ViewOutput, error)
	Add(ctx context.Context, style, date, distance, duration, climb string) (dto.SessionOutput, error)
	Edit(ctx context.Context, id, style, date, distance, duration, climb string) (dto.SessionOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type reportPort interface {
	Export(ctx context.Context, season string) (reportdto.ExportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLog tabID = iota
	tabSummary
	tabCount
)

var tabLabels = [tabCount]string{"Logg", "Sammanfattning"}

// ─── async messages ──────────────────────────────────────────────────────────

type viewLoadedMsg struct {
	requested dto.ViewState
	out       dto.ViewOutput
	err       error
}

type savedMsg struct {
	session dto.SessionOutput
	edited  bool
	err     error
}

type deletedMsg struct {
	id      string
	removed bool
	err     error
}

type exportedMsg struct {
	out reportdto.ExportOutput
	err error
}

type blobChangedMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Prev    key.Binding
	Next    key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "byt flik")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nytt pass")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "redigera")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "ta bort")),
		Prev:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "föregående säsong")),
		Next:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "nästa säsong")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hjälp")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "kommando")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "avsluta")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.New, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.New, k.Edit, k.Delete},
		{k.Prev, k.Next},
		{k.Help, k.Palette, k.Quit},
	}
}

// hints follow the switch in executePalette.
var paletteHints = []string{
	"season <label>",
	"log <current|all|label>",
	"export [season]",
	"new",
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It holds the selection state and
// passes it to every render; the training port resolves it against the
// stored sessions and hands back what to show.
type Model struct {
	training trainingPort
	report   reportPort
	changes  <-chan struct{}
	clock    clock.Clock

	logView     logview.Model
	summaryView summaryview.Model
	form        components.Form
	palette     components.Palette

	state     dto.ViewState
	view      dto.ViewOutput
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds the app. report and changes may be nil.
func NewModel(training trainingPort, report reportPort, changes <-chan struct{}, formatter format.Formatter, clk clock.Clock) Model {
	return Model{
		training:    training,
		report:      report,
		changes:     changes,
		clock:       clk,
		logView:     logview.New(formatter),
		summaryView: summaryview.New(formatter),
		form:        components.NewForm(),
		palette:     components.NewPalette(paletteHints),
		state:       dto.ViewState{LogFilter: "__current__"},
		activeTab:   tabLog,
		keys:        defaultKeys(),
		help:        help.New(),
		status:      "redo",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.renderCmd(), m.waitForChangeCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Overlays own the keyboard while open; async results still land below.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		switch {
		case m.palette.Visible():
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		case m.form.Visible():
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 72))
		m.form.SetWidth(min(m.width-4, 72))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case viewLoadedMsg:
		if msg.err != nil {
			m.status = "kunde inte läsa passen: " + msg.err.Error()
			return m, nil
		}
		return m, m.apply(msg.requested, msg.out)

	case savedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrInvalidInput) {
				m.form.SetError(msg.err.Error())
			} else {
				m.form.Close()
				m.state.EditingID = ""
				m.status = "kunde inte spara: " + msg.err.Error()
			}
			return m, nil
		}
		m.form.Close()
		m.state.EditingID = ""
		m.status = "sparade pass " + msg.session.Date
		if msg.edited {
			m.status = "uppdaterade pass " + msg.session.Date
		}
		return m, m.renderCmd()

	case deletedMsg:
		switch {
		case msg.err != nil:
			m.status = "kunde inte ta bort: " + msg.err.Error()
		case msg.removed:
			m.status = "passet togs bort"
		default:
			m.status = "passet fanns inte"
		}
		return m, m.renderCmd()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export misslyckades: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("rapport %s (%d pass): %s", msg.out.Season, msg.out.Sessions, msg.out.Path)
		}
		return m, nil

	case blobChangedMsg:
		m.status = "passfilen ändrades, läste om"
		return m, tea.Batch(m.renderCmd(), m.waitForChangeCmd())

	case components.FormSubmitMsg:
		return m, m.saveCmd(msg.EditingID, msg.Fields)

	case components.FormCancelMsg:
		m.state.EditingID = ""
		m.status = "avbrutet"
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "redo"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if id := m.logView.Confirming(); id != "" {
			m.logView.ConfirmDelete("")
			if msg.String() == "y" {
				return m, m.deleteCmd(id)
			}
			m.status = "borttagning avbruten"
			return m, nil
		}
		if m.activeTab == tabLog && m.logView.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "n":
			return m, m.openNewForm()
		case "e":
			if row, ok := m.logView.Selected(); ok && m.activeTab == tabLog {
				m.state.EditingID = row.ID
				return m, m.form.Open(row.ID, fieldsFromRow(row))
			}
		case "d":
			if row, ok := m.logView.Selected(); ok && m.activeTab == tabLog {
				m.logView.ConfirmDelete(row.ID)
				return m, nil
			}
		case "[", "]":
			step := 1
			if msg.String() == "[" {
				step = -1
			}
			m.cycleSeason(step)
			return m, m.renderCmd()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLog:
		m.logView, tabCmd = m.logView.Update(msg)
	case tabSummary:
		m.summaryView, tabCmd = m.summaryView.Update(msg)
	}
	return m, tabCmd
}

// apply takes a render result. The resolved state replaces ours, so a
// season that vanished falls back to the current one here.
func (m *Model) apply(requested dto.ViewState, out dto.ViewOutput) tea.Cmd {
	m.view = out
	m.state.SummarySeason = out.State.SummarySeason
	m.state.LogFilter = out.State.LogFilter
	if requested.EditingID != "" && out.State.EditingID == "" && m.form.EditingID() == requested.EditingID {
		m.form.Close()
		m.state.EditingID = ""
		m.status = "passet som redigerades finns inte längre"
	}
	options := make([]components.StyleOption, 0, len(out.Styles))
	for _, style := range out.Styles {
		options = append(options, components.StyleOption{Key: style.Style, Label: style.Label, Color: style.Color, TracksClimb: style.TracksClimb})
	}
	m.form.SetStyles(options)
	m.summaryView.SetSummary(out.Summary)
	return m.logView.SetRows(out.Log, logFilterLabel(out.State.LogFilter, out.Seasons.Current))
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.form.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.form.View())
	case m.activeTab == tabSummary:
		content = m.summaryView.View()
	default:
		content = m.logView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "skidlogg  " + strings.Join(parts, theme.Muted.Render(" │ "))
	if m.view.Seasons.Current != "" {
		bar += theme.Muted.Render("   säsong " + m.view.Seasons.Current)
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:hjälp  tab:flik  :::kommando  q:avsluta")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "season":
		if len(parts) < 2 {
			m.status = "användning: season <label>"
			return m, nil
		}
		m.state.SummarySeason = parts[1]
		m.activeTab = tabSummary
		return m, m.renderCmd()

	case "log":
		if len(parts) < 2 {
			m.status = "användning: log <current|all|label>"
			return m, nil
		}
		m.state.LogFilter = parts[1]
		m.activeTab = tabLog
		return m, m.renderCmd()

	case "export":
		season := m.state.SummarySeason
		if len(parts) >= 2 {
			season = parts[1]
		}
		return m, m.exportCmd(season)

	case "new":
		return m, m.openNewForm()

	default:
		m.status = "okänt kommando: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) openNewForm() tea.Cmd {
	m.state.EditingID = ""
	style := ""
	if len(m.view.Styles) > 0 {
		style = m.view.Styles[0].Style
	}
	return m.form.Open("", components.SessionFields{Style: style, Date: m.clock.Now().Format("2006-01-02")})
}

// cycleSeason steps the selector of the active tab. The log selector also
// offers "current" and "all" ahead of the concrete seasons.
func (m *Model) cycleSeason(step int) {
	options := m.view.Seasons.Options
	selected := m.state.SummarySeason
	if m.activeTab == tabLog {
		options = append([]string{"__current__", "__all__"}, options...)
		selected = m.state.LogFilter
	}
	if len(options) == 0 {
		return
	}
	pos := 0
	for i, option := range options {
		if option == selected {
			pos = i
			break
		}
	}
	next := options[((pos+step)%len(options)+len(options))%len(options)]
	if m.activeTab == tabLog {
		m.state.LogFilter = next
	} else {
		m.state.SummarySeason = next
	}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.logView, _ = m.logView.Update(sz)
	m.summaryView, _ = m.summaryView.Update(sz)
}

func logFilterLabel(filter, current string) string {
	switch filter {
	case "__all__":
		return "alla säsonger"
	case "__current__", "":
		return "innevarande säsong (" + current + ")"
	default:
		return "säsong " + filter
	}
}

func fieldsFromRow(row dto.SessionOutput) components.SessionFields {
	fields := components.SessionFields{
		Style:    row.Style,
		Date:     row.Date,
		Distance: format.Plain(row.DistanceKM),
		Duration: row.Duration,
	}
	if row.TracksClimb {
		fields.Climb = format.Plain(row.ClimbMeters)
	}
	return fields
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) renderCmd() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		out, err := m.training.View(context.Background(), state)
		return viewLoadedMsg{requested: state, out: out, err: err}
	}
}

func (m Model) saveCmd(editingID string, fields components.SessionFields) tea.Cmd {
	return func() tea.Msg {
		if editingID == "" {
			out, err := m.training.Add(context.Background(), fields.Style, fields.Date, fields.Distance, fields.Duration, fields.Climb)
			return savedMsg{session: out, err: err}
		}
		out, err := m.training.Edit(context.Background(), editingID, fields.Style, fields.Date, fields.Distance, fields.Duration, fields.Climb)
		return savedMsg{session: out, edited: true, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.training.Delete(context.Background(), id)
		return deletedMsg{id: id, removed: removed, err: err}
	}
}

func (m Model) exportCmd(season string) tea.Cmd {
	return func() tea.Msg {
		if m.report == nil {
			return exportedMsg{err: fmt.Errorf("report export not configured")}
		}
		out, err := m.report.Export(context.Background(), season)
		return exportedMsg{out: out, err: err}
	}
}

// waitForChangeCmd blocks until the watcher reports a change. A closed or
// missing channel ends the wait for good.
func (m Model) waitForChangeCmd() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return blobChangedMsg{}
	}
}

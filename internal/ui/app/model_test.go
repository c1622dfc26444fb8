package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skidlogg/internal/modules/training/domain"
	"skidlogg/internal/modules/training/dto"
	"skidlogg/internal/platform/clock"
	"skidlogg/internal/platform/format"
)

type fakeTraining struct {
	views   []dto.ViewState
	out     dto.ViewOutput
	addErr  error
	added   []string
	deleted []string
}

func (f *fakeTraining) View(_ context.Context, state dto.ViewState) (dto.ViewOutput, error) {
	f.views = append(f.views, state)
	out := f.out
	out.State = state
	// The real usecase resolves filter aliases such as "all" before echoing the state.
	out.State.LogFilter = string(domain.ParseLogFilter(state.LogFilter))
	return out, nil
}

func (f *fakeTraining) Add(_ context.Context, style, date, distance, duration, climb string) (dto.SessionOutput, error) {
	if f.addErr != nil {
		return dto.SessionOutput{}, f.addErr
	}
	f.added = append(f.added, strings.Join([]string{style, date, distance, duration, climb}, "|"))
	return dto.SessionOutput{ID: "new", Style: style, Date: date}, nil
}

func (f *fakeTraining) Edit(_ context.Context, id, style, date, _, _, _ string) (dto.SessionOutput, error) {
	return dto.SessionOutput{ID: id, Style: style, Date: date}, nil
}

func (f *fakeTraining) Delete(_ context.Context, id string) (bool, error) {
	f.deleted = append(f.deleted, id)
	return true, nil
}

func newTestModel(t *testing.T, training *fakeTraining, changes <-chan struct{}) Model {
	t.Helper()
	clk := clock.Fixed(time.Date(2025, time.October, 16, 12, 0, 0, 0, time.UTC))
	training.out = dto.ViewOutput{
		Styles: []dto.StyleOutput{
			{Style: "Klassiskt", Label: "Classic", Color: "#1f6bff", TracksClimb: true},
			{Style: "Stakmaskin", Label: "Double-pole machine", Color: "#e0bd00"},
		},
		Seasons: dto.SeasonsOutput{Current: "25/26", Options: []string{"25/26", "24/25"}},
		Log: []dto.SessionOutput{
			{ID: "s1", Style: "Klassiskt", Date: "2025-10-01", DistanceKM: 12.5, Duration: "1:02:00", ClimbMeters: 150, TracksClimb: true},
		},
	}
	m := NewModel(training, nil, changes, format.New("sv-SE"), clk)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestRenderAppliesResolvedState(t *testing.T) {
	t.Parallel()
	training := &fakeTraining{}
	m := newTestModel(t, training, nil)

	m = run(t, m, m.renderCmd())
	require.Len(t, training.views, 1)
	assert.Equal(t, "__current__", training.views[0].LogFilter)
	row, ok := m.logView.Selected()
	require.True(t, ok)
	assert.Equal(t, "s1", row.ID)
	assert.Contains(t, m.View(), "25/26")
}

func TestInvalidInputKeepsFormOpen(t *testing.T) {
	t.Parallel()
	training := &fakeTraining{addErr: &domain.ValidationError{Code: domain.CodeInvalidDistance, Message: "Distans måste vara ett positivt tal."}}
	m := newTestModel(t, training, nil)
	m = run(t, m, m.renderCmd())

	next, _ := m.Update(runes("n"))
	m = next.(Model)
	require.True(t, m.form.Visible())
	assert.Equal(t, "2025-10-16", m.form.Fields().Date)

	m = run(t, m, m.saveCmd("", m.form.Fields()))
	assert.True(t, m.form.Visible())
	assert.Contains(t, m.form.View(), "Distans måste vara ett positivt tal.")
}

func TestSaveClosesFormAndRerenders(t *testing.T) {
	t.Parallel()
	training := &fakeTraining{}
	m := newTestModel(t, training, nil)
	m = run(t, m, m.renderCmd())

	next, _ := m.Update(runes("e"))
	m = next.(Model)
	require.True(t, m.form.Visible())
	assert.Equal(t, "s1", m.state.EditingID)
	assert.Equal(t, "12.5", m.form.Fields().Distance)

	next, cmd := m.Update(savedMsg{session: dto.SessionOutput{ID: "s1", Date: "2025-10-01"}, edited: true})
	m = next.(Model)
	assert.False(t, m.form.Visible())
	assert.Empty(t, m.state.EditingID)
	m = run(t, m, cmd)
	assert.Len(t, training.views, 2)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	t.Parallel()
	training := &fakeTraining{}
	m := newTestModel(t, training, nil)
	m = run(t, m, m.renderCmd())

	next, _ := m.Update(runes("d"))
	m = next.(Model)
	assert.Equal(t, "s1", m.logView.Confirming())

	next, _ = m.Update(runes("n"))
	m = next.(Model)
	assert.Empty(t, m.logView.Confirming())
	assert.False(t, m.form.Visible())

	next, _ = m.Update(runes("d"))
	m = next.(Model)
	next, cmd := m.Update(runes("y"))
	m = next.(Model)
	_ = run(t, m, cmd)
	assert.Equal(t, []string{"s1"}, training.deleted)
}

func TestCycleSeasonWrapsOnLogTab(t *testing.T) {
	t.Parallel()
	training := &fakeTraining{}
	m := newTestModel(t, training, nil)
	m = run(t, m, m.renderCmd())

	var filters []string
	for range 4 {
		next, cmd := m.Update(runes("]"))
		m = run(t, next.(Model), cmd)
		filters = append(filters, m.state.LogFilter)
	}
	assert.Equal(t, []string{"__all__", "25/26", "24/25", "__current__"}, filters)

	next, cmd := m.Update(runes("["))
	m = run(t, next.(Model), cmd)
	assert.Equal(t, "24/25", m.state.LogFilter)
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	training := &fakeTraining{}
	m := newTestModel(t, training, nil)

	tests := []struct {
		input string
		tab   tabID
		check func(Model) string
		want  string
	}{
		{input: "season 24/25", tab: tabSummary, check: func(m Model) string { return m.state.SummarySeason }, want: "24/25"},
		{input: "log all", tab: tabLog, check: func(m Model) string { return m.state.LogFilter }, want: "__all__"},
		{input: "log current", tab: tabLog, check: func(m Model) string { return m.state.LogFilter }, want: "__current__"},
		{input: "log 24/25", tab: tabLog, check: func(m Model) string { return m.state.LogFilter }, want: "24/25"},
	}
	for _, tt := range tests {
		next, cmd := m.executePalette(tt.input)
		got := run(t, next.(Model), cmd)
		assert.Equal(t, tt.tab, got.activeTab, tt.input)
		assert.Equal(t, tt.want, tt.check(got), tt.input)
	}

	next, _ := m.executePalette("bogus")
	assert.Contains(t, next.(Model).status, "bogus")

	next, cmd := m.executePalette("export")
	got := run(t, next.(Model), cmd)
	assert.Contains(t, got.status, "export")
}

func TestWaitForChange(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &fakeTraining{}, nil)
	assert.Nil(t, m.waitForChangeCmd())

	changes := make(chan struct{}, 1)
	m = newTestModel(t, &fakeTraining{}, changes)
	changes <- struct{}{}
	assert.Equal(t, blobChangedMsg{}, m.waitForChangeCmd()())

	close(changes)
	assert.Nil(t, m.waitForChangeCmd()())
}

func TestLogFilterLabel(t *testing.T) {
	t.Parallel()
	for filter, want := range map[string]string{
		"__all__":     "alla säsonger",
		"__current__": "innevarande säsong (25/26)",
		"24/25":       "säsong 24/25",
	} {
		assert.Equal(t, want, logFilterLabel(filter, "25/26"), fmt.Sprintf("filter %q", filter))
	}
}

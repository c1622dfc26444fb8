package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skidlogg/internal/modules/training/dto"
	"skidlogg/internal/platform/format"
	"skidlogg/internal/ui/theme"
)

// Placeholder stands in for the chart when nothing has been logged.
const Placeholder = "Ingen distans"

type Model struct {
	summary dto.SummaryOutput
	format  format.Formatter
	width   int
	height  int
}

func New(formatter format.Formatter) Model {
	return Model{format: formatter}
}

func (m *Model) SetSummary(summary dto.SummaryOutput) { m.summary = summary }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}
	return m, nil
}

func (m Model) View() string {
	s := m.summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Säsong "+s.Season) + "\n\n")
	sb.WriteString(m.renderCards() + "\n\n")
	sb.WriteString(m.renderTable() + "\n")
	sb.WriteString(m.renderChart() + "\n\n")
	sb.WriteString(theme.Muted.Render("[/]: byt säsong  :export: skriv rapport"))
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderCards() string {
	t := m.summary.Totals
	cards := []struct{ label, value string }{
		{"Pass", fmt.Sprintf("%d", t.Count)},
		{"Distans", m.format.Number(t.TotalDistanceKM, 1) + " km"},
		{"Tid", t.Duration},
		{"Höjdmeter", m.format.Number(t.TotalClimbMeters, 0)},
		{"Snittempo", m.format.Pace(t.AvgPaceSecPerKM)},
		{"Stifa", m.format.Number(t.AvgStifa, 1)},
	}
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, theme.Card.Render(theme.Muted.Render(card.label)+"\n"+theme.Hot.Render(card.value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	var sb strings.Builder
	header := fmt.Sprintf("%-12s %5s %10s %9s %7s %12s %6s", "Stil", "Pass", "Distans", "Tid", "Hm", "Tempo", "Stifa")
	sb.WriteString(theme.Muted.Render(header) + "\n")
	for _, row := range m.summary.ByStyle {
		climb := format.Unavailable
		if row.Stifa != nil {
			climb = m.format.Number(row.ClimbMeters, 0)
		}
		line := fmt.Sprintf("%-12s %5d %10s %9s %7s %12s %6s",
			row.Style,
			row.Count,
			m.format.Number(row.DistanceKM, 1),
			row.Duration,
			climb,
			m.format.Pace(row.PaceSecPerKM),
			m.format.Ratio(row.Stifa, 1),
		)
		sb.WriteString(theme.Swatch(row.Color, "■ ") + line + "\n")
	}
	return sb.String()
}

func (m Model) renderChart() string {
	width := m.width - 4
	if width < 10 {
		width = 40
	}
	shares := m.summary.Shares
	if len(shares) == 0 {
		return theme.Muted.Render(strings.Repeat("░", width)) + "\n" + theme.Muted.Render(Placeholder)
	}
	var bar, legend strings.Builder
	for i, cells := range Segments(shares, width) {
		bar.WriteString(theme.Swatch(shares[i].Color, strings.Repeat("█", cells)))
		legend.WriteString(theme.Swatch(shares[i].Color, "■ ") + fmt.Sprintf("%s %s %%  ", shares[i].Style, m.format.Number(shares[i].Fraction*100, 0)))
	}
	return bar.String() + "\n" + legend.String()
}

// Segments splits width cells between shares in proportion to their
// fractions. The cells always add up to width; leftovers go to the largest
// remainders.
func Segments(shares []dto.ShareOutput, width int) []int {
	out := make([]int, len(shares))
	if width <= 0 || len(shares) == 0 {
		return out
	}
	type remainder struct {
		index int
		rest  float64
	}
	rests := make([]remainder, len(shares))
	used := 0
	for i, share := range shares {
		exact := share.Fraction * float64(width)
		out[i] = int(math.Floor(exact))
		used += out[i]
		rests[i] = remainder{index: i, rest: exact - float64(out[i])}
	}
	sort.SliceStable(rests, func(a, b int) bool { return rests[a].rest > rests[b].rest })
	for i := 0; used < width && i < len(rests); i++ {
		out[rests[i].index]++
		used++
	}
	return out
}

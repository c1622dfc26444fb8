package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skidlogg/internal/modules/training/domain"
)

func TestViewStateResolveResetsStaleSelections(t *testing.T) {
	t.Parallel()
	options := []domain.Season{"25/26", "24/25"}
	state := domain.ViewState{SummarySeason: "10/11", LogFilter: "10/11", EditingID: "gone"}
	got := state.Resolve(options, "25/26", func(string) bool { return false })
	assert.Equal(t, domain.ViewState{SummarySeason: "25/26", LogFilter: domain.LogCurrent}, got)
}

func TestViewStateResolveKeepsValidSelections(t *testing.T) {
	t.Parallel()
	options := []domain.Season{"25/26", "24/25"}
	state := domain.ViewState{SummarySeason: "24/25", LogFilter: "24/25", EditingID: "a"}
	got := state.Resolve(options, "25/26", func(id string) bool { return id == "a" })
	assert.Equal(t, state, got)

	all := domain.ViewState{SummarySeason: "24/25", LogFilter: domain.LogAll}
	assert.Equal(t, all, all.Resolve(options, "25/26", nil))
}

func TestViewStateLogSeason(t *testing.T) {
	t.Parallel()
	season, ok := domain.ViewState{LogFilter: domain.LogCurrent}.LogSeason("25/26")
	assert.True(t, ok)
	assert.Equal(t, domain.Season("25/26"), season)
	_, ok = domain.ViewState{LogFilter: domain.LogAll}.LogSeason("25/26")
	assert.False(t, ok)
	season, _ = domain.ViewState{LogFilter: "23/24"}.LogSeason("25/26")
	assert.Equal(t, domain.Season("23/24"), season)
}

func TestParseLogFilter(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.LogCurrent, domain.ParseLogFilter("current"))
	assert.Equal(t, domain.LogCurrent, domain.ParseLogFilter(""))
	assert.Equal(t, domain.LogAll, domain.ParseLogFilter("all"))
	assert.Equal(t, domain.LogFilter("23/24"), domain.ParseLogFilter("23/24"))
}

func TestSortByDateDescAndFilter(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{
		{ID: "old", Date: date(2024, time.December, 1), Season: "24/25"},
		{ID: "new", Date: date(2025, time.March, 1), Season: "24/25"},
		{ID: "prev", Date: date(2024, time.April, 1), Season: "23/24"},
	}
	sorted := domain.SortByDateDesc(sessions)
	assert.Equal(t, "new", sorted[0].ID)
	assert.Equal(t, "old", sorted[1].ID)
	assert.Equal(t, "prev", sorted[2].ID)
	assert.Equal(t, "old", sessions[0].ID)

	filtered := domain.FilterSeason(sessions, "24/25")
	assert.Len(t, filtered, 2)
}

func TestCycleSeason(t *testing.T) {
	t.Parallel()
	options := []domain.Season{"25/26", "24/25", "23/24"}
	assert.Equal(t, domain.Season("24/25"), domain.CycleSeason(options, "25/26", 1))
	assert.Equal(t, domain.Season("23/24"), domain.CycleSeason(options, "25/26", -1))
	assert.Equal(t, domain.Season("25/26"), domain.CycleSeason(options, "23/24", 1))
	assert.Equal(t, domain.Season("x"), domain.CycleSeason(nil, "x", 1))
}

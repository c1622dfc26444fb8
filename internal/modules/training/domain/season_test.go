package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skidlogg/internal/modules/training/domain"
	"skidlogg/internal/platform/clock"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.Season("23/24"), domain.Classify(date(2024, time.May, 31)))
	assert.Equal(t, domain.Season("24/25"), domain.Classify(date(2024, time.June, 1)))
	assert.Equal(t, domain.Season("24/25"), domain.Classify(date(2025, time.January, 15)))
	assert.Equal(t, domain.Season("99/00"), domain.Classify(date(1999, time.July, 1)))
	assert.Equal(t, domain.Season("99/00"), domain.Classify(date(2000, time.March, 3)))
	assert.Equal(t, domain.Season("09/10"), domain.Classify(date(2009, time.December, 24)))
}

func TestClassifyStartYearMatchesMonth(t *testing.T) {
	t.Parallel()
	for year := 1990; year < 2060; year++ {
		for month := time.January; month <= time.December; month++ {
			season := domain.Classify(date(year, month, 10))
			start, ok := season.StartYear()
			assert.True(t, ok)
			want := year
			if month < time.June {
				want--
			}
			if year >= 1970 && want < 2070 {
				assert.Equal(t, want, start, "%d-%02d", year, month)
			}
		}
	}
}

func TestSeasonStartYear(t *testing.T) {
	t.Parallel()
	cases := map[domain.Season]int{"24/25": 2024, "99/00": 1999, "70/71": 1970, "69/70": 2069, "00/01": 2000}
	for season, want := range cases {
		got, ok := season.StartYear()
		assert.True(t, ok, season)
		assert.Equal(t, want, got, season)
	}
	for _, season := range []domain.Season{"", "bogus", "ab/cd", "123/124"} {
		_, ok := season.StartYear()
		assert.False(t, ok, season)
	}
}

func TestEnumerateSeasons(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{
		{Season: "22/23"},
		{Season: "bogus"},
		{Season: "24/25"},
		{Season: "99/00"},
		{Season: "22/23"},
		{Season: "aaa"},
	}
	got := domain.EnumerateSeasons(sessions, "25/26")
	assert.Equal(t, []domain.Season{"25/26", "24/25", "22/23", "99/00", "aaa", "bogus"}, got)
}

func TestEnumerateSeasonsAlwaysHasCurrent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []domain.Season{"25/26"}, domain.EnumerateSeasons(nil, "25/26"))
}

func TestCurrentSeason(t *testing.T) {
	t.Parallel()
	c := clock.Fixed(time.Date(2025, time.October, 16, 23, 30, 0, 0, time.Local))
	assert.Equal(t, domain.Season("25/26"), domain.CurrentSeason(c))
}

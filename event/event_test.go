package event

import (
	"testing"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoliday(t *testing.T) {
	testData := map[string]struct {
		hol        *cal.Holiday
		start      time.Time
		end        time.Time
		daysBefore int
		daysAfter  int
		expected   []Event
	}{
		"simple": {
			hol:   us.ChristmasDay,
			start: time.Date(2024, 12, 8, 1, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 12, 8, 1, 0, 0, 0, time.UTC),
			expected: []Event{
				{
					"Christmas_Day_2024",
					time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
				},
				{
					"Christmas_Day_2025",
					time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"non utc input is reduced to its date": {
			hol:   us.ChristmasDay,
			start: time.Date(2024, 12, 8, 1, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
			end:   time.Date(2024, 12, 31, 23, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
			expected: []Event{
				{
					"Christmas_Day_2024",
					time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"with buffer": {
			hol:        us.ChristmasDay,
			start:      time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:        time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			daysBefore: 1,
			daysAfter:  2,
			expected: []Event{
				{
					"Christmas_Day_2024",
					time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"observed on a weekday": {
			// July 4th 2026 is a Saturday
			hol:   us.IndependenceDay,
			start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
			expected: []Event{
				{
					"Independence_Day_2026",
					time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC),
					time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"outside range": {
			hol:      us.ThanksgivingDay,
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			expected: []Event{},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := Holiday(td.hol, td.start, td.end, td.daysBefore, td.daysAfter)
			assert.Equal(t, td.expected, res)
			for _, e := range res {
				assert.Nil(t, e.Valid())
			}
		})
	}
}

func TestChristmasAndThanksgiving(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	christmas := Christmas(start, end, 0, 0)
	require.Len(t, christmas, 1)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), christmas[0].Start)

	thanksgiving := Thanksgiving(start, end, 0, 0)
	require.Len(t, thanksgiving, 1)
	assert.Equal(t, time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC), thanksgiving[0].Start)
}

func TestEventValid(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	testData := map[string]struct {
		event Event
		err   error
	}{
		"valid":          {event: NewEvent("launch", t0, t0.AddDate(0, 0, 1))},
		"unset start":    {event: NewEvent("launch", time.Time{}, t0), err: ErrUnsetTime},
		"start past end": {event: NewEvent("launch", t0.AddDate(0, 0, 1), t0), err: ErrStartAfterEnd},
		"no name":        {event: NewEvent("", t0, t0), err: ErrNoEventName},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, td.event.Valid(), td.err)
		})
	}
}

func TestTable(t *testing.T) {
	start := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	testData := map[string]struct {
		country    string
		start      time.Time
		end        time.Time
		daysBefore int
		daysAfter  int
		expected   []Row
		err        error
	}{
		"us end of year": {
			country: "us",
			start:   start,
			end:     end,
			expected: []Row{
				{Holiday: us.VeteransDay.Name, DS: "2024-11-11"},
				{Holiday: us.ThanksgivingDay.Name, DS: "2024-11-28"},
				{Holiday: us.ChristmasDay.Name, DS: "2024-12-25"},
			},
		},
		"windows": {
			country:    "US",
			start:      time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:        end,
			daysBefore: 2,
			daysAfter:  1,
			expected: []Row{
				{Holiday: us.ChristmasDay.Name, DS: "2024-12-25", LowerWindow: -2, UpperWindow: 1},
			},
		},
		"unknown country": {
			country: "XX",
			start:   start,
			end:     end,
			err:     ErrUnknownCountry,
		},
		"negative window": {
			country:    "US",
			start:      start,
			end:        end,
			daysBefore: -1,
			err:        ErrNegativeWindow,
		},
		"inverted range": {
			country: "US",
			start:   end,
			end:     start,
			err:     ErrStartAfterEnd,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := Table(td.country, td.start, td.end, td.daysBefore, td.daysAfter)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestCountries(t *testing.T) {
	assert.Equal(t, []string{"US"}, Countries())
}

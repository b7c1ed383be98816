// Package event builds holiday calendars for the date range of a series
package event

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	ErrStartAfterEnd  = errors.New("event start time is after end time")
	ErrUnsetTime      = errors.New("unset event start or end time")
	ErrNoEventName    = errors.New("no event name")
	ErrUnknownCountry = errors.New("no holiday calendar for country")
	ErrNegativeWindow = errors.New("holiday window must be non-negative")
)

const dateLayout = "2006-01-02"

var calendars = map[string][]*cal.Holiday{
	"US": {
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	},
}

// Countries lists the country codes with a built-in calendar
func Countries() []string {
	codes := make([]string, 0, len(calendars))
	for code := range calendars {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Calendar returns the holidays of a country code such as "US". Matching ignores case.
func Calendar(country string) ([]*cal.Holiday, error) {
	hols, ok := calendars[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return nil, fmt.Errorf("%q, %w", country, ErrUnknownCountry)
	}
	return hols, nil
}

// Event represents a span of days to model separately
type Event struct {
	Name  string
	Start time.Time
	End   time.Time
}

func NewEvent(name string, start, end time.Time) Event {
	return Event{
		Name:  name,
		Start: start,
		End:   end,
	}
}

func (e *Event) Valid() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrUnsetTime
	}
	if e.Start.After(e.End) {
		return ErrStartAfterEnd
	}
	if e.Name == "" {
		return ErrNoEventName
	}
	return nil
}

func Christmas(start, end time.Time, daysBefore, daysAfter int) []Event {
	return Holiday(us.ChristmasDay, start, end, daysBefore, daysAfter)
}

func Thanksgiving(start, end time.Time, daysBefore, daysAfter int) []Event {
	return Holiday(us.ThanksgivingDay, start, end, daysBefore, daysAfter)
}

// Holiday returns one event per year in which the observed holiday falls within [start, end]. The
// event spans the observed date widened by the given number of days on either side and ends at
// midnight after its last day.
func Holiday(hol *cal.Holiday, start, end time.Time, daysBefore, daysAfter int) []Event {
	start, end = toDate(start), toDate(end)

	events := []Event{}
	for i := start.Year(); i <= end.Year(); i++ {
		_, observed := hol.Calc(i)
		if observed.IsZero() {
			continue
		}
		observed = toDate(observed)

		if observed.Before(start) || observed.After(end) {
			continue
		}
		events = append(events, Event{
			Name:  strings.ReplaceAll(fmt.Sprintf("%s_%d", hol.Name, i), " ", "_"),
			Start: observed.AddDate(0, 0, -daysBefore),
			End:   observed.AddDate(0, 0, 1+daysAfter),
		})
	}
	return events
}

// Row is a single holiday in the tabular form consumed by Prophet
type Row struct {
	Holiday     string `json:"holiday"`
	DS          string `json:"ds"`
	LowerWindow int    `json:"lower_window"`
	UpperWindow int    `json:"upper_window"`
}

// Table returns every holiday of the country observed within [start, end]. Windows follow Prophet's
// convention of a non-positive lower and non-negative upper day offset.
func Table(country string, start, end time.Time, daysBefore, daysAfter int) ([]Row, error) {
	if daysBefore < 0 || daysAfter < 0 {
		return nil, ErrNegativeWindow
	}
	if start.After(end) {
		return nil, ErrStartAfterEnd
	}
	hols, err := Calendar(country)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, hol := range hols {
		for _, e := range Holiday(hol, start, end, daysBefore, daysAfter) {
			rows = append(rows, Row{
				Holiday:     hol.Name,
				DS:          e.Start.AddDate(0, 0, daysBefore).Format(dateLayout),
				LowerWindow: -daysBefore,
				UpperWindow: daysAfter,
			})
		}
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		return strings.Compare(a.DS, b.DS)
	})
	return rows, nil
}

func toDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package timedataset

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedTimestamp = errors.New("malformed timestamp")

// DateLayout is the canonical calendar date representation used on the wire
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"20060102",
}

// RawPoint is an unvalidated observation as supplied by a caller or an ingestion adapter. Value
// may be any numeric type, a numeric string, or nil for a missing observation.
type RawPoint struct {
	Timestamp string
	Value     any
}

// Normalize parses, filters, sorts and de-duplicates raw observations into a daily TimeDataset.
// Points with a missing or non-numeric value are dropped. Timestamps that cannot be parsed fail
// the whole series. Equal dates keep their input order and only the first occurrence survives.
func Normalize(raw []RawPoint) (*TimeDataset, error) {
	type obs struct {
		t time.Time
		y float64
	}

	valid := make([]obs, 0, len(raw))
	for i, p := range raw {
		t, err := ParseDate(p.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("point %d, %w", i, err)
		}
		y, ok := ParseValue(p.Value)
		if !ok {
			continue
		}
		valid = append(valid, obs{t: t, y: y})
	}
	if len(valid) == 0 {
		return nil, ErrEmptySeries
	}

	slices.SortStableFunc(valid, func(a, b obs) int {
		return a.t.Compare(b.t)
	})

	t := make([]time.Time, 0, len(valid))
	y := make([]float64, 0, len(valid))
	for _, o := range valid {
		if n := len(t); n > 0 && t[n-1].Equal(o.t) {
			continue
		}
		t = append(t, o.t)
		y = append(y, o.y)
	}
	return &TimeDataset{T: t, Y: y}, nil
}

// ParseDate parses a timestamp string and truncates it to its calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp, %w", ErrMalformedTimestamp)
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		year, month, day := t.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unable to parse %q, %w", s, ErrMalformedTimestamp)
}

// ParseValue converts a raw value into a finite float64. The boolean is false for missing,
// non-numeric, NaN or infinite values.
func ParseValue(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int8:
		f = float64(val)
	case int16:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint:
		f = float64(val)
	case uint8:
		f = float64(val)
	case uint16:
		f = float64(val)
	case uint32:
		f = float64(val)
	case uint64:
		f = float64(val)
	case *float64:
		if val == nil {
			return 0, false
		}
		f = *val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case interface{ Float64() (float64, error) }:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

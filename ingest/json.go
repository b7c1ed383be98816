package ingest

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

// ReadJSON parses an array of {"ds": ..., "y": ...} objects. Values may be numbers or numeric
// strings.
func ReadJSON(r io.Reader) (*Result, error) {
	var points []Point
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&points); err != nil {
		return nil, fmt.Errorf("unable to decode json points, %w", err)
	}
	if len(points) == 0 {
		return nil, ErrNoRows
	}

	res := &Result{Points: make([]Point, 0, len(points))}
	for i, p := range points {
		t, err := timedataset.ParseDate(p.DS)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Row: i + 1, Reason: err.Error()})
			continue
		}
		y, ok := timedataset.ParseValue(p.Y)
		if !ok {
			res.Skipped = append(res.Skipped, SkippedRow{Row: i + 1, Reason: fmt.Sprintf("invalid value %v", p.Y)})
			continue
		}
		res.Points = append(res.Points, Point{DS: t.Format(timedataset.DateLayout), Y: y})
	}
	return res, nil
}

// Package ingest reads (ds, y) observations from uploaded files and request bodies into raw points
// ready for normalization. Rows that cannot be used are skipped and reported rather than failing
// the whole file.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrNoRows            = errors.New("no rows in file")
)

const (
	// DateColumn and ValueColumn are the header names every tabular upload must carry
	DateColumn  = "ds"
	ValueColumn = "y"
)

type Format uint8

const (
	JSON Format = iota
	CSV
	Excel
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CSV:
		return "csv"
	case Excel:
		return "excel"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// FormatFromName picks the format from a file name extension
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON, nil
	case ".csv":
		return CSV, nil
	case ".xlsx", ".xlsm", ".xls":
		return Excel, nil
	}
	return 0, fmt.Errorf("%q, %w", name, ErrUnsupportedFormat)
}

// Point is a single observation on the wire
type Point struct {
	DS string `json:"ds" yaml:"ds"`
	Y  any    `json:"y" yaml:"y"`
}

// SkippedRow records a row that was left out of the result. Row counts from 1 and includes the
// header row for tabular formats.
type SkippedRow struct {
	Row    int    `json:"row" yaml:"row"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result holds the usable observations of a file along with the rows that were skipped
type Result struct {
	Points  []Point      `json:"data"`
	Skipped []SkippedRow `json:"skipped,omitempty"`
}

// Raw converts the points into the normalizer's input
func (r *Result) Raw() []timedataset.RawPoint {
	return ToRaw(r.Points)
}

// ToRaw converts wire points into raw points without validating them
func ToRaw(points []Point) []timedataset.RawPoint {
	raw := make([]timedataset.RawPoint, 0, len(points))
	for _, p := range points {
		raw = append(raw, timedataset.RawPoint{Timestamp: p.DS, Value: p.Y})
	}
	return raw
}

// FromDataset converts a normalized series back into wire points with canonical dates
func FromDataset(td *timedataset.TimeDataset) []Point {
	if td == nil {
		return []Point{}
	}
	points := make([]Point, 0, td.Len())
	for i := range td.T {
		points = append(points, Point{DS: td.T[i].Format(timedataset.DateLayout), Y: td.Y[i]})
	}
	return points
}

// Read parses the content in the given format
func Read(r io.Reader, format Format) (*Result, error) {
	switch format {
	case JSON:
		return ReadJSON(r)
	case CSV:
		return ReadCSV(r)
	case Excel:
		return ReadExcel(r)
	}
	return nil, fmt.Errorf("%s, %w", format, ErrUnsupportedFormat)
}

// ReadFile picks the format from the file name and parses the content
func ReadFile(name string, r io.Reader) (*Result, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}
	return Read(r, format)
}

// fromRows validates tabular rows where the first row is the header. Dates and values are checked
// here so a single bad row cannot fail normalization of the whole upload.
func fromRows(rows [][]string, dateCell func(string) string) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	dsIdx, yIdx, err := columns(rows[0])
	if err != nil {
		return nil, err
	}

	res := &Result{Points: make([]Point, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}
		if dsIdx >= len(row) || yIdx >= len(row) {
			res.Skipped = append(res.Skipped, SkippedRow{Row: rowNum, Reason: "missing cells"})
			continue
		}
		ds := strings.TrimSpace(row[dsIdx])
		if dateCell != nil {
			ds = dateCell(ds)
		}
		t, err := timedataset.ParseDate(ds)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		y, ok := timedataset.ParseValue(row[yIdx])
		if !ok {
			res.Skipped = append(res.Skipped, SkippedRow{Row: rowNum, Reason: fmt.Sprintf("invalid value %q", row[yIdx])})
			continue
		}
		res.Points = append(res.Points, Point{DS: t.Format(timedataset.DateLayout), Y: y})
	}
	return res, nil
}

func columns(header []string) (int, int, error) {
	dsIdx, yIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case DateColumn:
			if dsIdx < 0 {
				dsIdx = i
			}
		case ValueColumn:
			if yIdx < 0 {
				yIdx = i
			}
		}
	}
	if dsIdx < 0 {
		return 0, 0, fmt.Errorf("%q, %w", DateColumn, ErrMissingColumn)
	}
	if yIdx < 0 {
		return 0, 0, fmt.Errorf("%q, %w", ValueColumn, ErrMissingColumn)
	}
	return dsIdx, yIdx, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

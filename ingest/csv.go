package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV parses comma separated rows with a header naming the ds and y columns
func ReadCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv, %w", err)
	}
	return fromRows(rows, nil)
}

package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
	"github.com/xuri/excelize/v2"
)

// ReadExcel parses the first worksheet of a workbook. Date cells may hold text or Excel serial
// dates.
func ReadExcel(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook, %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q, %w", sheets[0], err)
	}
	return fromRows(rows, serialDate)
}

// maxSerialDate is 9999-12-31, larger numbers such as 20240131 are compact text dates
const maxSerialDate = 2958465

// serialDate converts an Excel serial day number into a calendar date and leaves anything else
// untouched
func serialDate(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || serial <= 0 || serial > maxSerialDate {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	return t.Format(timedataset.DateLayout)
}

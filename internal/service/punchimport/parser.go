package punchimport

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/astrahr/payroll-backend-go/internal/domain/importjob"
)

// punchRow is one data row of the device export, cells kept raw so parse
// failures can be reported per row instead of failing the whole file.
type punchRow struct {
	Number   int // 1-based spreadsheet row number, for diagnostics
	Machine  string
	DateCell string
	TimeCell string
}

// parseWorkbook reads the first sheet of an xlsx export and extracts the
// machine id, date and time cells of every data row. The header row is
// located by case-insensitive column names; raw cell values are requested so
// native date and time cells arrive as day serials rather than display text.
func parseWorkbook(data []byte) ([]punchRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, importjob.ErrEmptyFile
	}

	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, importjob.ErrEmptyFile
	}

	midCol, dateCol, timeCol := -1, -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "mid":
			midCol = i
		case "date":
			dateCol = i
		case "time":
			timeCol = i
		}
	}
	if midCol < 0 || dateCol < 0 || timeCol < 0 {
		return nil, importjob.ErrMissingColumn
	}

	result := make([]punchRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		result = append(result, punchRow{
			Number:   i + 2,
			Machine:  cellAt(row, midCol),
			DateCell: cellAt(row, dateCol),
			TimeCell: cellAt(row, timeCol),
		})
	}
	if len(result) == 0 {
		return nil, importjob.ErrEmptyFile
	}
	return result, nil
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Device exports arrive in whatever regional format the operator configured.
// Day-first layouts are tried before month-first, first successful parse wins.
// Go's time.Parse accepts one- and two-digit values for a two-digit layout
// element, so the single- and double-digit variants collapse into one entry.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
}

// parseDateCell accepts a numeric day serial (the raw form of a native date
// cell) or text in one of the known layouts, falling back to a generic
// date-time parse. The result is truncated to midnight UTC.
func parseDateCell(cell string) (time.Time, bool) {
	if cell == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return dateOf(t), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return dateOf(t), true
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return dateOf(t), true
		}
	}
	return time.Time{}, false
}

// parseTimeCell accepts a numeric day fraction (the raw form of a native time
// cell, values >= 1 carrying a date part that is discarded), an HH:mm[:ss]
// string, or a full date-time whose time of day is extracted.
func parseTimeCell(cell string) (time.Duration, bool) {
	if cell == "" {
		return 0, false
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if serial < 0 {
			return 0, false
		}
		if serial < 1 {
			return time.Duration(serial * float64(24*time.Hour)).Round(time.Second), true
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return 0, false
		}
		return timeOfDay(t), true
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, cell); err == nil {
			return timeOfDay(t), true
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return timeOfDay(t), true
		}
	}
	return 0, false
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

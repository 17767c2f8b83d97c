// Package export renders the persisted attendance history as an xlsx
// workbook for offline review.
package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/cexutoire/wibiz-attendance-bot/internal/attendance"
	"github.com/cexutoire/wibiz-attendance-bot/internal/task"
)

const (
	attendanceSheet = "Attendance"
	tasksSheet      = "Tasks"
)

var attendanceHeader = []string{
	"Date", "Name", "Time In", "Time Out",
	"Break Start", "Break End", "Break Hours", "Hours Worked", "Status",
}

var tasksHeader = []string{"Date", "Name", "Task", "Link"}

// Workbook builds a two-sheet workbook from the full record history.
// The caller owns the returned file and must Close it.
func Workbook(records []attendance.Record, tasks []task.Entry) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName(f.GetSheetName(0), attendanceSheet)
	if _, err := f.NewSheet(tasksSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRow(f, attendanceSheet, 1, toAny(attendanceHeader)); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range records {
		row := []any{
			r.Date, r.Name, deref(r.TimeIn), deref(r.TimeOut),
			deref(r.BreakStart), deref(r.BreakEnd),
			r.BreakDuration, r.HoursWorked, string(r.Status),
		}
		if err := writeRow(f, attendanceSheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeRow(f, tasksSheet, 1, toAny(tasksHeader)); err != nil {
		f.Close()
		return nil, err
	}
	for i, t := range tasks {
		row := []any{t.Date, t.Name, t.Description, deref(t.URL)}
		if err := writeRow(f, tasksSheet, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

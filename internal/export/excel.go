// Package export serializes attendance data into downloadable report
// files.
package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/attendify/attendify/internal/services/reporting"
)

var recordHeaders = []string{"Student Name", "Student ID", "Class", "Date", "Time", "Status", "Method"}

// RecordsExcel renders ledger entries as an Excel workbook with one
// row per record, in the order given.
func RecordsExcel(views []*reporting.RecordView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance Records"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, toCells(recordHeaders)); err != nil {
		return nil, err
	}

	for i, view := range views {
		if view == nil || view.Record == nil {
			return nil, errors.New("record view cannot be nil")
		}

		cells := []interface{}{
			view.StudentName,
			view.StudentNumber,
			view.ClassName,
			view.Record.Date,
			markedAtLabel(view),
			string(view.Record.Status),
			string(view.Record.Method),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// StudentSummariesExcel renders per-student aggregates as an Excel
// workbook
func StudentSummariesExcel(rows []*reporting.StudentSummaryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Student Name", "Student ID", "Sessions", "Present", "Absent", "Late", "Attendance Rate"}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return nil, err
	}

	for i, row := range rows {
		if row == nil {
			return nil, errors.New("summary row cannot be nil")
		}

		cells := []interface{}{
			row.StudentName,
			row.StudentNumber,
			row.TotalSessions,
			row.PresentCount,
			row.AbsentCount,
			row.LateCount,
			fmt.Sprintf("%.1f%%", row.AttendanceRate),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// ClassSummariesExcel renders per-class aggregates as an Excel workbook
func ClassSummariesExcel(rows []*reporting.ClassSummaryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Classes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Class", "Subject", "Sessions", "Present", "Absent", "Late", "Attendance Rate"}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return nil, err
	}

	for i, row := range rows {
		if row == nil {
			return nil, errors.New("summary row cannot be nil")
		}

		cells := []interface{}{
			row.ClassName,
			row.Subject,
			row.TotalSessions,
			row.PresentCount,
			row.AbsentCount,
			row.LateCount,
			fmt.Sprintf("%.1f%%", row.AttendanceRate),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// markedAtLabel formats the check-in time, using a dash for absent
// records that never had one
func markedAtLabel(view *reporting.RecordView) string {
	if view.Record.MarkedAt.IsZero() {
		return "-"
	}
	return view.Record.MarkedAt.Format("15:04:05")
}

package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/attendify/attendify/internal/services/reporting"
)

var recordColumnWidths = []float64{40, 25, 30, 25, 20, 20, 20}

// RecordsPDF renders ledger entries as a printable PDF table
func RecordsPDF(title string, views []*reporting.RecordView) ([]byte, error) {
	if title == "" {
		title = "Attendance Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range recordHeaders {
		pdf.CellFormat(recordColumnWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, view := range views {
		if view == nil || view.Record == nil {
			return nil, errors.New("record view cannot be nil")
		}

		cells := []string{
			view.StudentName,
			view.StudentNumber,
			view.ClassName,
			view.Record.Date,
			markedAtLabel(view),
			string(view.Record.Status),
			string(view.Record.Method),
		}
		for i, cell := range cells {
			pdf.CellFormat(recordColumnWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// Package report renders attendance exports.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/hongminglow/attendance-be/internal/models"
)

// ContentType is the MIME type of the workbook written by WriteAttendance.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Attendance"

var header = []any{"Employee ID", "Email", "Date", "In", "Out", "Working Hours"}

// WriteAttendance writes rows as a single-sheet workbook to w.
// Open records leave the Out and Working Hours cells empty.
func WriteAttendance(w io.Writer, rows []models.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, row := range rows {
		values := []any{row.EmployeeID, row.Email, row.Date.String(), row.InTime.String()}
		if row.Closed() && row.WorkingHours != nil {
			values = append(values, row.OutTime.String(), row.WorkingHours.Float())
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(sheetName, "B", "B", 32); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

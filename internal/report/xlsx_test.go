package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hongminglow/attendance-be/internal/models"
)

func TestWriteAttendance(t *testing.T) {
	out := models.TimeOfDay(17*3600 + 1800)
	hours := models.Hours(850)
	day := models.Date{Year: 2026, Month: time.October, Day: 16}
	rows := []models.ExportRow{
		{
			AttendanceRecord: models.AttendanceRecord{EmployeeID: 1, Date: day, InTime: 9 * 3600, OutTime: &out, WorkingHours: &hours},
			Email:            "a@x.com",
		},
		{
			AttendanceRecord: models.AttendanceRecord{EmployeeID: 2, Date: day, InTime: 8 * 3600},
			Email:            "b@x.com",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAttendance(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Employee ID", "Email", "Date", "In", "Out", "Working Hours"}, got[0])
	assert.Equal(t, []string{"1", "a@x.com", "2026-10-16", "09:00:00", "17:30:00", "8.5"}, got[1])
	assert.Equal(t, []string{"2", "b@x.com", "2026-10-16", "08:00:00"}, got[2])
}

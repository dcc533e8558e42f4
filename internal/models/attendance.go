package models

import "time"

// AttendanceRecord is one employee's clock-in/clock-out row for a calendar day.
// OutTime and WorkingHours stay nil until the first clock-out.
type AttendanceRecord struct {
	EmployeeID   int64      `json:"employee_id"`
	Date         Date       `json:"attendance_date"`
	InTime       TimeOfDay  `json:"in_time"`
	OutTime      *TimeOfDay `json:"out_time"`
	WorkingHours *Hours     `json:"working_hours"`
}

// Closed reports whether a clock-out has been recorded.
func (r AttendanceRecord) Closed() bool {
	return r.OutTime != nil
}

// AttendanceFilter narrows a record listing. Zero values mean unbounded.
type AttendanceFilter struct {
	EmployeeID int64
	From       Date
	To         Date
}

// ExportRow is a record joined with the owning user's email for reports.
type ExportRow struct {
	AttendanceRecord
	Email string `json:"email"`
}

// DayOf returns the calendar day of t in loc.
func DayOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/attendance-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrUnknownEmployee indicates an attendance write for an employee id with no employee row.
var ErrUnknownEmployee = errors.New("unknown employee")

// UserStore captures account persistence: users and their linked employee rows.
type UserStore interface {
	// CreateEmployeeUser inserts a user and its employee row as one atomic unit.
	CreateEmployeeUser(ctx context.Context, user models.User) (models.User, error)
	// EnsureUser inserts user unless the email is already taken; it reports whether a row was created.
	EnsureUser(ctx context.Context, user models.User) (bool, error)
	// FindByEmail returns the user with its employee id joined in when one exists.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// ListPending returns unapproved employees in insertion order.
	ListPending(ctx context.Context) ([]models.PendingUser, error)
	// Approve marks the user approved and reports whether a row changed.
	Approve(ctx context.Context, userID int64) (bool, error)
}

// CloseFunc derives the working hours for a clock-out from the stored record.
type CloseFunc func(rec models.AttendanceRecord) models.Hours

// AttendanceStore captures the attendance ledger.
type AttendanceStore interface {
	// CreateAttendance inserts a day's record; a second record for the same employee and day fails with ErrAlreadyExists,
	// and an employee id with no employee row fails with ErrUnknownEmployee.
	CreateAttendance(ctx context.Context, rec models.AttendanceRecord) error
	// CloseAttendance locks the day's record, sets the out time and the hours computed by calc, and returns the updated row.
	CloseAttendance(ctx context.Context, employeeID int64, day models.Date, out models.TimeOfDay, calc CloseFunc) (models.AttendanceRecord, error)
	// ListAttendance returns records matching filter, newest day first.
	ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	// ExportAttendance returns records in the date range joined with user emails, oldest day first.
	ExportAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.ExportRow, error)
}

// Store is the full persistence surface the server needs.
type Store interface {
	UserStore
	AttendanceStore
	Close()
}

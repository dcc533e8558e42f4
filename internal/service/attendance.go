package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/storage"
)

// AttendanceService records clock-ins and clock-outs.
//
// Per employee and calendar day the record moves NoRecord -> ClockedIn -> ClockedOut.
// A second clock-in on the same day is a conflict; a repeated clock-out
// overwrites the out time and hours using the new instant.
type AttendanceService struct {
	store   storage.AttendanceStore
	loc     *time.Location
	timeout time.Duration
	logger  *slog.Logger
}

func NewAttendanceService(store storage.AttendanceStore, loc *time.Location, timeout time.Duration, logger *slog.Logger) *AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceService{
		store:   store,
		loc:     loc,
		timeout: timeout,
		logger:  logger,
	}
}

// ClockIn opens today's record for employeeID with now's time-of-day.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID int64, now time.Time) (models.AttendanceRecord, error) {
	if employeeID <= 0 {
		return models.AttendanceRecord{}, newError(ErrValidation, "employee_id is required")
	}
	rec := models.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       models.DayOf(now, s.loc),
		InTime:     models.ClockOf(now, s.loc),
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.CreateAttendance(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.AttendanceRecord{}, newError(ErrConflict, "attendance IN already marked today")
		}
		if errors.Is(err, storage.ErrUnknownEmployee) {
			s.logger.Warn("clock-in for unknown employee", "employee_id", employeeID)
			return models.AttendanceRecord{}, newError(ErrNotFound, "employee not found")
		}
		s.logger.Error("clock-in failed", "employee_id", employeeID, "error", err)
		return models.AttendanceRecord{}, storageError("failed to mark attendance IN", err)
	}

	s.logger.Info("attendance IN marked", "employee_id", employeeID, "date", rec.Date.String(), "in_time", rec.InTime.String())
	return rec, nil
}

// ClockOut closes today's record for employeeID and returns it with the computed working hours.
// An out time earlier than the in time yields negative hours, stored as is.
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID int64, now time.Time) (models.AttendanceRecord, error) {
	if employeeID <= 0 {
		return models.AttendanceRecord{}, newError(ErrValidation, "employee_id is required")
	}
	day := models.DayOf(now, s.loc)
	out := models.ClockOf(now, s.loc)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var reclosed bool
	rec, err := s.store.CloseAttendance(ctx, employeeID, day, out, func(rec models.AttendanceRecord) models.Hours {
		reclosed = rec.Closed()
		return models.HoursBetween(rec.InTime, out)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.AttendanceRecord{}, newError(ErrNotFound, "attendance IN not found")
		}
		s.logger.Error("clock-out failed", "employee_id", employeeID, "error", err)
		return models.AttendanceRecord{}, storageError("failed to mark attendance OUT", err)
	}

	if reclosed {
		s.logger.Warn("attendance OUT overwritten", "employee_id", employeeID, "date", day.String())
	}
	if *rec.WorkingHours < 0 {
		s.logger.Warn("negative working hours recorded", "employee_id", employeeID, "in_time", rec.InTime.String(), "out_time", out.String())
	}
	s.logger.Info("attendance OUT marked", "employee_id", employeeID, "date", day.String(), "working_hours", rec.WorkingHours.String())
	return rec, nil
}

// History lists employeeID's records between from and to inclusive, newest first.
func (s *AttendanceService) History(ctx context.Context, employeeID int64, from, to models.Date) ([]models.AttendanceRecord, error) {
	if employeeID <= 0 {
		return nil, newError(ErrValidation, "employee_id is required")
	}
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	recs, err := s.store.ListAttendance(ctx, models.AttendanceFilter{EmployeeID: employeeID, From: from, To: to})
	if err != nil {
		s.logger.Error("attendance history failed", "employee_id", employeeID, "error", err)
		return nil, storageError("failed to load attendance", err)
	}
	return recs, nil
}

// Export returns every record between from and to, oldest first, with the employee's email.
func (s *AttendanceService) Export(ctx context.Context, from, to models.Date) ([]models.ExportRow, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.store.ExportAttendance(ctx, models.AttendanceFilter{From: from, To: to})
	if err != nil {
		s.logger.Error("attendance export failed", "error", err)
		return nil, storageError("failed to export attendance", err)
	}
	return rows, nil
}

func checkRange(from, to models.Date) error {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return newError(ErrValidation, "from must not be after to")
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CreateAttendance inserts the clock-in row; the unique (employee_id, attendance_date) index rejects a second one.
func (s *Store) CreateAttendance(ctx context.Context, rec models.AttendanceRecord) error {
	const query = `
		INSERT INTO attendance (employee_id, attendance_date, in_time)
		VALUES ($1, $2, $3);`
	_, err := s.pool.Exec(ctx, query, rec.EmployeeID, rec.Date.Time(), pgTime(rec.InTime))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return storage.ErrUnknownEmployee
		}
		return err
	}
	return nil
}

// CloseAttendance runs the clock-out read-compute-write under a row lock so overlapping clock-outs serialize.
func (s *Store) CloseAttendance(ctx context.Context, employeeID int64, day models.Date, out models.TimeOfDay, calc storage.CloseFunc) (models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		const selectQuery = `
		SELECT employee_id, attendance_date, in_time, out_time, working_hours::text
		FROM attendance
		WHERE employee_id = $1 AND attendance_date = $2
		FOR UPDATE;`
		var err error
		rec, err = scanAttendance(tx.QueryRow(ctx, selectQuery, employeeID, day.Time()))
		if err != nil {
			return err
		}

		rec.OutTime = &out
		hours := calc(rec)
		rec.WorkingHours = &hours

		const updateQuery = `
		UPDATE attendance
		SET out_time = $1, working_hours = $2::numeric
		WHERE employee_id = $3 AND attendance_date = $4;`
		_, err = tx.Exec(ctx, updateQuery, pgTime(out), hours.String(), employeeID, day.Time())
		return err
	})
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return rec, nil
}

// ListAttendance returns matching records, newest day first.
func (s *Store) ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	where, args := filterClause(filter, "")
	query := fmt.Sprintf(`
	SELECT employee_id, attendance_date, in_time, out_time, working_hours::text
	FROM attendance
	%s
	ORDER BY attendance_date DESC, employee_id;`, where)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AttendanceRecord, error) {
		return scanAttendance(row)
	})
}

// ExportAttendance returns records joined with the owning user's email, oldest day first.
func (s *Store) ExportAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.ExportRow, error) {
	where, args := filterClause(filter, "a.")
	query := fmt.Sprintf(`
	SELECT a.employee_id, a.attendance_date, a.in_time, a.out_time, a.working_hours::text, u.email
	FROM attendance a
	JOIN employees e ON e.id = a.employee_id
	JOIN users u ON u.id = e.user_id
	%s
	ORDER BY a.attendance_date, a.employee_id;`, where)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExportRow, error) {
		var out models.ExportRow
		var email string
		rec, err := scanAttendance(scanTail{row: row, extra: []any{&email}})
		out.AttendanceRecord = rec
		out.Email = email
		return out, err
	})
}

// filterClause builds a WHERE clause over the attendance columns, qualified by prefix.
func filterClause(filter models.AttendanceFilter, prefix string) (string, []any) {
	var conds []string
	var args []any
	if filter.EmployeeID != 0 {
		args = append(args, filter.EmployeeID)
		conds = append(conds, fmt.Sprintf("%semployee_id = $%d", prefix, len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From.Time())
		conds = append(conds, fmt.Sprintf("%sattendance_date >= $%d", prefix, len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To.Time())
		conds = append(conds, fmt.Sprintf("%sattendance_date <= $%d", prefix, len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// scanTail appends extra destinations after the attendance columns.
type scanTail struct {
	row   pgx.Row
	extra []any
}

func (t scanTail) Scan(dest ...any) error {
	return t.row.Scan(append(dest, t.extra...)...)
}

func scanAttendance(row pgx.Row) (models.AttendanceRecord, error) {
	var (
		rec   models.AttendanceRecord
		day   time.Time
		in    pgtype.Time
		out   pgtype.Time
		hours *string
	)
	if err := row.Scan(&rec.EmployeeID, &day, &in, &out, &hours); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AttendanceRecord{}, storage.ErrNotFound
		}
		return models.AttendanceRecord{}, err
	}
	rec.Date = models.DateFromTime(day)
	rec.InTime = fromPGTime(in)
	if out.Valid {
		t := fromPGTime(out)
		rec.OutTime = &t
	}
	if hours != nil {
		h, err := models.ParseHours(*hours)
		if err != nil {
			return models.AttendanceRecord{}, err
		}
		rec.WorkingHours = &h
	}
	return rec, nil
}

func pgTime(t models.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Seconds()) * int64(time.Second/time.Microsecond), Valid: true}
}

func fromPGTime(t pgtype.Time) models.TimeOfDay {
	return models.TimeOfDay(t.Microseconds / int64(time.Second/time.Microsecond))
}

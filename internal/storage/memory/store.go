// Package memory keeps users and attendance in process memory. It backs
// STORAGE_DRIVER=memory and the handler and service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type dayKey struct {
	employeeID int64
	day        models.Date
}

// Store is a mutex-guarded implementation of storage.Store.
type Store struct {
	mu         sync.RWMutex
	users      []models.User
	byEmail    map[string]int
	nextUser   int64
	nextEmp    int64
	attendance map[dayKey]models.AttendanceRecord
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		byEmail:    make(map[string]int),
		attendance: make(map[dayKey]models.AttendanceRecord),
	}
}

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) CreateEmployeeUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[user.Email]; exists {
		return models.User{}, storage.ErrAlreadyExists
	}
	s.nextUser++
	s.nextEmp++
	user.ID = s.nextUser
	empID := s.nextEmp
	user.EmployeeID = &empID
	user.CreatedAt = time.Now().UTC()
	s.byEmail[user.Email] = len(s.users)
	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) EnsureUser(ctx context.Context, user models.User) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[user.Email]; exists {
		return false, nil
	}
	s.nextUser++
	user.ID = s.nextUser
	user.EmployeeID = nil
	user.CreatedAt = time.Now().UTC()
	s.byEmail[user.Email] = len(s.users)
	s.users = append(s.users, user)
	return true, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byEmail[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.users[idx], nil
}

func (s *Store) ListPending(ctx context.Context) ([]models.PendingUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.PendingUser{}
	for _, u := range s.users {
		if u.Pending() {
			out = append(out, models.PendingUser{ID: u.ID, Email: u.Email})
		}
	}
	return out, nil
}

func (s *Store) Approve(ctx context.Context, userID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == userID {
			changed := !s.users[i].Approved
			s.users[i].Approved = true
			return changed, nil
		}
	}
	return false, nil
}

func (s *Store) CreateAttendance(ctx context.Context, rec models.AttendanceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasEmployee(rec.EmployeeID) {
		return storage.ErrUnknownEmployee
	}
	key := dayKey{employeeID: rec.EmployeeID, day: rec.Date}
	if _, exists := s.attendance[key]; exists {
		return storage.ErrAlreadyExists
	}
	rec.OutTime = nil
	rec.WorkingHours = nil
	s.attendance[key] = rec
	return nil
}

func (s *Store) CloseAttendance(ctx context.Context, employeeID int64, day models.Date, out models.TimeOfDay, calc storage.CloseFunc) (models.AttendanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.AttendanceRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey{employeeID: employeeID, day: day}
	rec, ok := s.attendance[key]
	if !ok {
		return models.AttendanceRecord{}, storage.ErrNotFound
	}
	rec.OutTime = &out
	hours := calc(rec)
	rec.WorkingHours = &hours
	s.attendance[key] = rec
	return rec, nil
}

func (s *Store) ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.AttendanceRecord{}
	for _, rec := range s.attendance {
		if matches(filter, rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[j].Date.Before(out[i].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (s *Store) ExportAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.ExportRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	emails := make(map[int64]string, len(s.users))
	for _, u := range s.users {
		if u.EmployeeID != nil {
			emails[*u.EmployeeID] = u.Email
		}
	}
	out := []models.ExportRow{}
	for _, rec := range s.attendance {
		email, ok := emails[rec.EmployeeID]
		if !ok || !matches(filter, rec) {
			continue
		}
		out = append(out, models.ExportRow{AttendanceRecord: rec, Email: email})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

// hasEmployee must be called with mu held.
func (s *Store) hasEmployee(employeeID int64) bool {
	for _, u := range s.users {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

func matches(filter models.AttendanceFilter, rec models.AttendanceRecord) bool {
	if filter.EmployeeID != 0 && rec.EmployeeID != filter.EmployeeID {
		return false
	}
	if !filter.From.IsZero() && rec.Date.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && filter.To.Before(rec.Date) {
		return false
	}
	return true
}

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestHoursBetween(t *testing.T) {
	cases := []struct {
		in, out string
		want    string
	}{
		{"09:00:00", "17:30:00", "8.50"},
		{"09:00:00", "09:00:00", "0.00"},
		{"08:15:00", "16:45:30", "8.51"},
		{"09:00:00", "09:00:17", "0.00"},
		{"09:00:00", "09:00:18", "0.01"},
		{"09:00:00", "10:20:00", "1.33"},
		{"00:00:00", "23:59:59", "24.00"},
		// clock-out earlier than clock-in is kept negative
		{"22:00:00", "06:00:00", "-16.00"},
		{"09:00:18", "09:00:00", "-0.01"},
	}
	for _, tc := range cases {
		got := HoursBetween(tod(t, tc.in), tod(t, tc.out))
		assert.Equal(t, tc.want, got.String(), "%s -> %s", tc.in, tc.out)
	}
}

func TestHoursBetweenMatchesRoundedSeconds(t *testing.T) {
	for in := 0; in < 86400; in += 3607 {
		for out := in; out < 86400; out += 1111 {
			got := HoursBetween(TimeOfDay(in), TimeOfDay(out))
			secs := out - in
			want := Hours((secs*100 + 1800) / 3600)
			require.Equal(t, want, got, "in=%d out=%d", in, out)
		}
	}
}

func TestHoursText(t *testing.T) {
	h, err := ParseHours("8.5")
	require.NoError(t, err)
	assert.Equal(t, Hours(850), h)

	h, err = ParseHours("-16.00")
	require.NoError(t, err)
	assert.Equal(t, Hours(-1600), h)
	assert.InDelta(t, -16.0, h.Float(), 1e-9)

	_, err = ParseHours("abc")
	require.Error(t, err)

	b, err := json.Marshal(struct {
		H Hours `json:"h"`
	}{H: 1234})
	require.NoError(t, err)
	assert.JSONEq(t, `{"h":"12.34"}`, string(b))
}

func TestDateAndClockOf(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2026, 3, 1, 20, 30, 5, 0, time.UTC)

	assert.Equal(t, Date{Year: 2026, Month: time.March, Day: 2}, DayOf(now, loc))
	assert.Equal(t, "03:30:05", ClockOf(now, loc).String())

	d, err := ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", d.String())
	assert.True(t, Date{Year: 2026, Month: time.March, Day: 1}.Before(d))
	assert.False(t, d.IsZero())

	_, err = ParseDate("02/03/2026")
	require.Error(t, err)
}

func TestRecordJSON(t *testing.T) {
	out := tod(t, "17:30:00")
	hours := Hours(850)
	rec := AttendanceRecord{
		EmployeeID:   7,
		Date:         Date{Year: 2026, Month: time.October, Day: 16},
		InTime:       tod(t, "09:00:00"),
		OutTime:      &out,
		WorkingHours: &hours,
	}
	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"employee_id":7,"attendance_date":"2026-10-16","in_time":"09:00:00","out_time":"17:30:00","working_hours":"8.50"}`, string(b))
	assert.True(t, rec.Closed())
}

func TestUserPending(t *testing.T) {
	assert.True(t, User{Role: RoleEmployee}.Pending())
	assert.False(t, User{Role: RoleEmployee, Approved: true}.Pending())
	assert.False(t, User{Role: RoleAdmin}.Pending())
}

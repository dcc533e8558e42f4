package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}, nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of d, which is how the date travels to storage.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// DateFromTime drops the clock portion of t without converting zones.
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time with whole-second precision, stored as seconds after midnight.
type TimeOfDay int

// ClockOf returns the time-of-day of t in loc.
func ClockOf(t time.Time, loc *time.Location) TimeOfDay {
	h, m, s := t.In(loc).Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

// ParseTimeOfDay parses HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(time.TimeOnly, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	h, m, sec := t.Clock()
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// Seconds returns the number of seconds after midnight.
func (t TimeOfDay) Seconds() int {
	return int(t)
}

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Hours is a fixed-point decimal number of hours with two fractional digits,
// held as hundredths of an hour. It may be negative.
type Hours int64

// HoursBetween returns (to - from) in hours, rounded half away from zero to two places.
// A to earlier than from yields a negative value; it is not wrapped to the next day.
func HoursBetween(from, to TimeOfDay) Hours {
	secs := int64(to - from)
	// one hundredth of an hour is 36 seconds
	if secs >= 0 {
		return Hours((2*secs + 36) / 72)
	}
	return -Hours((-2*secs + 36) / 72)
}

// ParseHours parses a decimal string such as "8.50" or "-1.25".
func ParseHours(s string) (Hours, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q: %w", s, err)
	}
	h := Hours(w*100 + f)
	if neg {
		h = -h
	}
	return h, nil
}

// Float returns h as a float64, for reports.
func (h Hours) Float() float64 {
	return float64(h) / 100
}

func (h Hours) String() string {
	v := int64(h)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (h Hours) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hours) UnmarshalText(b []byte) error {
	parsed, err := ParseHours(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

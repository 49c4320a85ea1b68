package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// ISODateLayout is the wire and storage form of a Date.
	ISODateLayout = "2006-01-02"
	// DisplayDateLayout is the day-first form used by the web frontend.
	DisplayDateLayout = "02.01.2006"

	day = 24 * time.Hour
)

var dateLayouts = []string{ISODateLayout, DisplayDateLayout}

// Date is a calendar date without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes the given components, so NewDate(2024, 1, 32) is 1 Feb 2024.
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	return DateOf(time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate accepts ISO (2006-01-02) and day-first (02.01.2006) dates.
func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Date{}, &InvalidDateError{Value: value, Err: fmt.Errorf("empty date")}
	}

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return DateOf(t), nil
		}
		lastErr = err
	}
	return Date{}, &InvalidDateError{Value: value, Err: lastErr}
}

// MustParseDate is ParseDate for constants in tests and seed data.
func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// DaysUntil returns the number of whole calendar days from d to other.
// It is negative when other lies before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / day)
}

// Before reports whether d lies strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d lies strictly after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(ISODateLayout)
}

// MarshalJSON encodes the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an ISO or day-first date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

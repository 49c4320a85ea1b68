package service

import (
	"time"

	"github.com/DaDevFox/fridgemate/internal/domain"
)

// Clock supplies the current time. Services never read the wall clock directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in the local time zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

func today(clock Clock) domain.Date {
	return domain.DateOf(clock.Now())
}

// startOfDay is local midnight of the clock's current day.
func startOfDay(clock Clock) time.Time {
	now := clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

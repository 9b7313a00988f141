package calendar

import (
	"time"

	"treedash/internal/models"
	"treedash/pkg/response"
)

type Status string

const (
	StatusFullDayJob       Status = "full-day-job"
	StatusBlocked          Status = "blocked"
	StatusWeekendBlocked   Status = "weekend-blocked"
	StatusUnblockedWeekend Status = "unblocked-weekend"
	StatusAvailable        Status = "available"
)

// BlockIndex is the blocked-dates collection keyed by date.
type BlockIndex map[string]models.BlockedDate

func NewBlockIndex(rows []models.BlockedDate) BlockIndex {
	ix := make(BlockIndex, len(rows))
	for _, row := range rows {
		ix[row.Date] = row
	}
	return ix
}

// StatusOn derives the availability of a date. The first matching rule wins:
// full-day job, manual block, default weekend block, opened weekend, available.
func (ix BlockIndex) StatusOn(date time.Time) Status {
	row, ok := ix[date.Format(DateLayout)]

	if ok && row.Reason == models.ReasonFullDayJob {
		return StatusFullDayJob
	}
	if ok && row.Reason != models.ReasonUnblockedWeekend {
		return StatusBlocked
	}

	if IsWeekend(date) {
		if ok {
			return StatusUnblockedWeekend
		}
		return StatusWeekendBlocked
	}

	return StatusAvailable
}

// Bookable reports whether new bookings may land on a date with this status.
func (s Status) Bookable() bool {
	return s == StatusAvailable || s == StatusUnblockedWeekend
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Booked is the overlay flag: any active booking on the date.
func Booked(date string, bookings []models.Booking) bool {
	for _, b := range bookings {
		if b.Status.IsActive() && b.OnDate(date) {
			return true
		}
	}
	return false
}

type Toggle string

const (
	ToggleBlock          Toggle = "block"
	ToggleUnblock        Toggle = "unblock"
	ToggleUnblockWeekend Toggle = "unblock-weekend"
	ToggleReblockWeekend Toggle = "reblock-weekend"
)

// ToggleFor maps the current status of a day to the single write that flips it.
func ToggleFor(status Status) (Toggle, error) {
	switch status {
	case StatusAvailable:
		return ToggleBlock, nil
	case StatusBlocked:
		return ToggleUnblock, nil
	case StatusWeekendBlocked:
		return ToggleUnblockWeekend, nil
	case StatusUnblockedWeekend:
		return ToggleReblockWeekend, nil
	case StatusFullDayJob:
		return "", response.ErrFullDayJobLocked
	}
	return "", response.ErrBadRequest
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

package trash

import (
	"strings"
	"time"

	"treedash/internal/models"
)

const (
	RetentionDays    = 30
	ExpiringSoonDays = 3
)

// DaysRemaining is the whole days left before the cleanup pass purges an
// item trashed at trashedAt. It never goes below zero or above the retention.
func DaysRemaining(trashedAt, now time.Time) int {
	elapsed := now.Sub(trashedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	days := int(elapsed / (24 * time.Hour))
	return max(0, RetentionDays-days)
}

func ExpiringSoon(remaining int) bool {
	return remaining <= ExpiringSoonDays
}

type Item struct {
	models.Booking
	DaysRemaining int  `json:"days_remaining"`
	ExpiringSoon  bool `json:"expiring_soon"`
}

// Annotate attaches lifetime fields. Items without trashed_at are treated as
// trashed now.
func Annotate(bookings []models.Booking, now time.Time) []Item {
	items := make([]Item, 0, len(bookings))
	for _, b := range bookings {
		at := now
		if b.TrashedAt != nil {
			at = *b.TrashedAt
		}
		left := DaysRemaining(at, now)
		items = append(items, Item{
			Booking:       b,
			DaysRemaining: left,
			ExpiringSoon:  ExpiringSoon(left),
		})
	}
	return items
}

// Filter matches query case-insensitively against name, email and booking id.
func Filter(bookings []models.Booking, query string) []models.Booking {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return bookings
	}

	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if strings.Contains(strings.ToLower(b.Name), q) ||
			strings.Contains(strings.ToLower(b.Email), q) ||
			strings.Contains(strings.ToLower(b.BookingID), q) {
			out = append(out, b)
		}
	}
	return out
}

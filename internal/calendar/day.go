package calendar

import "treedash/internal/models"

// Card limits for a day cell before the "+N more" badge takes over.
const (
	GridCellLimit    = 5
	DesktopCellLimit = 3
)

type DayItems struct {
	Date     string
	Events   []models.CalendarEvent
	Bookings []models.Booking
}

// ItemsOn collects the events and active bookings that fall on date.
func ItemsOn(date string, events []models.CalendarEvent, bookings []models.Booking) DayItems {
	items := DayItems{Date: date}

	for _, ev := range events {
		if ev.Date == date {
			items.Events = append(items.Events, ev)
		}
	}

	for _, b := range bookings {
		if b.OnDate(date) && b.Status.IsActive() {
			items.Bookings = append(items.Bookings, b)
		}
	}

	return items
}

func (d DayItems) Total() int {
	return len(d.Events) + len(d.Bookings)
}

type CappedItems struct {
	Events   []models.CalendarEvent
	Bookings []models.Booking
	More     int
}

// Capped keeps at most limit cards, events first, and counts the rest.
func (d DayItems) Capped(limit int) CappedItems {
	var out CappedItems
	if limit < 0 {
		limit = 0
	}

	n := min(len(d.Events), limit)
	out.Events = d.Events[:n]

	m := min(len(d.Bookings), limit-n)
	out.Bookings = d.Bookings[:m]

	out.More = d.Total() - n - m
	return out
}

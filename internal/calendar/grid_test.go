package calendar

import (
	"testing"
	"time"

	"treedash/internal/models"
)

func TestItemsOnConfirmedBooking(t *testing.T) {
	bookings := []models.Booking{
		{BookingID: "b1", Date: "2025-09-01", Time: "9:00", Status: models.BookingConfirmed},
		{BookingID: "b2", Date: "2025-09-01", Status: models.BookingCancelled},
		{BookingID: "b3", Date: "2025-09-02", JobDate: "2025-09-01", Status: models.BookingPending},
	}
	events := []models.CalendarEvent{
		{ID: "e1", Date: "2025-09-01", StartTime: "13:00"},
		{ID: "e2", Date: "2025-09-02", StartTime: "13:00"},
	}

	items := ItemsOn("2025-09-01", events, bookings)
	if len(items.Events) != 1 || items.Events[0].ID != "e1" {
		t.Fatalf("events = %+v", items.Events)
	}
	if len(items.Bookings) != 2 || items.Bookings[0].BookingID != "b1" || items.Bookings[1].BookingID != "b3" {
		t.Fatalf("bookings = %+v", items.Bookings)
	}
	if items.Total() != 3 {
		t.Fatalf("total = %d", items.Total())
	}

	agenda := BuildAgenda(items)
	var nine bool
	for _, g := range agenda.Groups {
		if g.HasItems && g.Hours[0] == 9 {
			nine = g.Cards[0].ID == "b1"
		}
	}
	if !nine {
		t.Fatal("confirmed booking not placed in its 9 AM slot")
	}
}

func TestCapped(t *testing.T) {
	items := DayItems{Date: "2025-09-01"}
	for range 4 {
		items.Events = append(items.Events, models.CalendarEvent{Date: "2025-09-01"})
	}
	for range 3 {
		items.Bookings = append(items.Bookings, models.Booking{Date: "2025-09-01", Status: models.BookingPending})
	}

	c := items.Capped(DesktopCellLimit)
	if len(c.Events) != 3 || len(c.Bookings) != 0 || c.More != 4 {
		t.Fatalf("desktop cap = %d/%d/+%d", len(c.Events), len(c.Bookings), c.More)
	}

	c = items.Capped(GridCellLimit)
	if len(c.Events) != 4 || len(c.Bookings) != 1 || c.More != 2 {
		t.Fatalf("grid cap = %d/%d/+%d", len(c.Events), len(c.Bookings), c.More)
	}

	c = items.Capped(10)
	if c.More != 0 {
		t.Fatalf("uncapped more = %d", c.More)
	}
}

func TestMonthGrid(t *testing.T) {
	src := Source{
		Blocks: NewBlockIndex([]models.BlockedDate{{Date: "2025-09-06", Reason: models.ReasonUnblockedWeekend}}),
		Bookings: []models.Booking{
			{BookingID: "b1", Date: "2025-09-01", Status: models.BookingConfirmed},
		},
		Today:    "2025-09-02",
		Selected: "2025-09-01",
	}

	weeks := src.MonthGrid(2025, time.September, GridCellLimit)
	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Fatalf("week %d has %d days", i, len(w))
		}
	}

	// September 2025 starts on a Monday, so the grid opens with Aug 31.
	first := weeks[0][0]
	if first.Date != "2025-08-31" || first.InMonth {
		t.Fatalf("first cell = %+v", first)
	}

	mon := weeks[0][1]
	if mon.Date != "2025-09-01" || !mon.Booked || !mon.Selected || mon.Status != StatusAvailable {
		t.Fatalf("Sept 1 cell = %+v", mon)
	}
	if !weeks[0][2].Today {
		t.Fatal("Sept 2 not flagged today")
	}
	if weeks[0][6].Status != StatusUnblockedWeekend {
		t.Fatalf("Sept 6 status = %s", weeks[0][6].Status)
	}
	if weeks[1][0].Status != StatusWeekendBlocked {
		t.Fatalf("Sept 7 status = %s", weeks[1][0].Status)
	}

	last := weeks[4][6]
	if last.Date != "2025-10-04" || last.InMonth {
		t.Fatalf("last cell = %+v", last)
	}
}

func TestWeekGridAndScroller(t *testing.T) {
	src := Source{Blocks: NewBlockIndex(nil)}
	day := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)

	week := src.WeekGrid(day, DesktopCellLimit)
	if len(week) != 7 || week[0].Date != "2025-08-31" || week[6].Date != "2025-09-06" {
		t.Fatalf("week = %s..%s", week[0].Date, week[len(week)-1].Date)
	}

	strip := src.Scroller(day, 3)
	if len(strip) != 7 || !strip[3].Selected || strip[3].Date != "2025-09-03" || strip[3].Weekday != "Wed" {
		t.Fatalf("scroller = %+v", strip)
	}
}

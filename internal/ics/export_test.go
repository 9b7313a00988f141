package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"treedash/internal/models"
)

func TestExport(t *testing.T) {
	loc := time.UTC
	r := Range{
		From: time.Date(2025, 9, 1, 0, 0, 0, 0, loc),
		To:   time.Date(2025, 9, 30, 0, 0, 0, 0, loc),
	}
	events := []models.CalendarEvent{
		{ID: "e1", Title: "Crew meeting", Date: "2025-09-02", StartTime: "09:00", EndTime: "10:00", Type: models.EventMeeting, Color: "#3b82f6"},
		{ID: "e2", Title: "Out of range", Date: "2025-10-02", StartTime: "09:00", EndTime: "10:00"},
	}
	bookings := []models.Booking{
		{BookingID: "b1", Date: "2025-09-06", Time: "Full-day (Weekend)", Status: models.BookingConfirmed, Service: "Removal", Name: "Ann"},
		{BookingID: "b2", Date: "2025-09-03", Time: "1:30 PM", Status: models.BookingPending, Service: "Pruning"},
		{BookingID: "b3", Date: "2025-09-03", Time: "8:00", Status: models.BookingCancelled},
	}

	out := Export(events, bookings, r, loc, time.Date(2025, 9, 1, 12, 0, 0, 0, loc))

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse exported feed: %v", err)
	}

	summaries := map[string]string{}
	for _, ev := range cal.Events() {
		uid := ev.GetProperty(ical.ComponentPropertyUniqueId).Value
		summaries[uid] = ev.GetProperty(ical.ComponentPropertySummary).Value
	}

	if len(summaries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(summaries), summaries)
	}
	if summaries["event-e1@treedash"] != "Crew meeting" {
		t.Fatalf("event summary = %q", summaries["event-e1@treedash"])
	}
	if summaries["booking-b1@treedash"] != "Removal: Ann" {
		t.Fatalf("booking summary = %q", summaries["booking-b1@treedash"])
	}
	if _, ok := summaries["booking-b3@treedash"]; ok {
		t.Fatal("cancelled booking exported")
	}

	if !strings.Contains(out, "DTSTART;VALUE=DATE:20250906") {
		t.Fatalf("full-day booking not exported as all-day:\n%s", out)
	}
	if !strings.Contains(out, "DTSTART:20250903T133000Z") {
		t.Fatalf("timed booking start missing:\n%s", out)
	}
}

package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"treedash/internal/calendar"
	"treedash/internal/models"
)

const productID = "-//treedash//admin calendar//EN"

// Range is an inclusive span of calendar dates.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) contains(date string) bool {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return false
	}
	return !d.Before(r.From) && !d.After(r.To)
}

// Export renders the admin events and active bookings in r as an iCalendar
// feed. Clock times are read in loc.
func Export(events []models.CalendarEvent, bookings []models.Booking, r Range, loc *time.Location, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Tree service schedule")
	cal.SetXWRTimezone(loc.String())

	for _, ev := range events {
		if !r.contains(ev.Date) {
			continue
		}
		addEvent(cal, ev, loc, now)
	}

	for _, b := range bookings {
		date := b.ScheduledDate()
		if !b.Status.IsActive() || !r.contains(date) {
			continue
		}
		addBooking(cal, b, date, loc, now)
	}

	return cal.Serialize()
}

func at(date string, minutes int, loc *time.Location) (time.Time, bool) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, loc), true
}

func addEvent(cal *ical.Calendar, ev models.CalendarEvent, loc *time.Location, now time.Time) {
	e := cal.AddEvent(fmt.Sprintf("event-%s@treedash", ev.ID))
	e.SetDtStampTime(now)
	e.SetSummary(ev.Title)
	if ev.Location != "" {
		e.SetLocation(ev.Location)
	}
	if ev.Description != "" {
		e.SetDescription(ev.Description)
	}
	if ev.Type != "" {
		e.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(ev.Type)))
	}
	if ev.Color != "" {
		e.SetProperty(ical.ComponentPropertyColor, ev.Color)
	}

	startMin, okStart := calendar.ParseClock(ev.StartTime)
	start, okDate := at(ev.Date, startMin, loc)
	if !okStart || !okDate {
		setAllDay(e, ev.Date)
		return
	}
	e.SetStartAt(start)

	// an end at or before the start is left open rather than guessed
	if endMin, ok := calendar.ParseClock(ev.EndTime); ok && endMin > startMin {
		end, _ := at(ev.Date, endMin, loc)
		e.SetEndAt(end)
	}
}

func addBooking(cal *ical.Calendar, b models.Booking, date string, loc *time.Location, now time.Time) {
	e := cal.AddEvent(fmt.Sprintf("booking-%s@treedash", b.BookingID))
	e.SetDtStampTime(now)

	summary := b.Service
	if summary == "" {
		summary = "Booking"
	}
	if b.Name != "" {
		summary += ": " + b.Name
	}
	e.SetSummary(summary)
	if b.Address != "" {
		e.SetLocation(b.Address)
	}
	e.SetDescription(fmt.Sprintf("Booking %s (%s)", b.BookingID, b.Status))
	e.SetProperty(ical.ComponentPropertyCategories, "BOOKING")

	if minutes, ok := calendar.ParseClock(b.SlotTime()); ok {
		if start, ok := at(date, minutes, loc); ok {
			e.SetStartAt(start)
			return
		}
	}
	setAllDay(e, date)
}

func setAllDay(e *ical.VEvent, date string) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return
	}
	e.SetAllDayStartAt(d)
	e.SetAllDayEndAt(d.AddDate(0, 0, 1))
}

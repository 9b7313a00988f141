package calendar

import (
	"time"

	"treedash/internal/models"
)

type CardKind string

const (
	CardEvent   CardKind = "event"
	CardBooking CardKind = "booking"
)

// Card is one item painted inside a day cell or agenda row.
type Card struct {
	Kind     CardKind             `json:"kind"`
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Time     string               `json:"time,omitempty"`
	Detail   string               `json:"detail,omitempty"`
	Color    string               `json:"color,omitempty"`
	Status   models.BookingStatus `json:"status,omitempty"`
	FullDay  bool                 `json:"full_day,omitempty"`
	Customer string               `json:"customer,omitempty"`
}

func EventCard(ev models.CalendarEvent) Card {
	t := ev.StartTime
	if ev.EndTime != "" {
		t += " - " + ev.EndTime
	}
	return Card{
		Kind:   CardEvent,
		ID:     ev.ID,
		Title:  ev.Title,
		Time:   t,
		Detail: string(ev.Type),
		Color:  ev.Color,
	}
}

func BookingCard(b models.Booking) Card {
	title := b.Service
	if title == "" {
		title = "Booking"
	}
	_, timed := ParseHour(b.SlotTime())
	return Card{
		Kind:     CardBooking,
		ID:       b.BookingID,
		Title:    title,
		Time:     b.SlotTime(),
		Status:   b.Status,
		FullDay:  !timed && b.SlotTime() != "",
		Customer: b.Name,
	}
}

func Cards(events []models.CalendarEvent, bookings []models.Booking) []Card {
	cards := make([]Card, 0, len(events)+len(bookings))
	for _, ev := range events {
		cards = append(cards, EventCard(ev))
	}
	for _, b := range bookings {
		cards = append(cards, BookingCard(b))
	}
	return cards
}

type DayCell struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	InMonth  bool   `json:"in_month"`
	Today    bool   `json:"today"`
	Selected bool   `json:"selected"`
	Status   Status `json:"status"`
	Booked   bool   `json:"booked"`
	Cards    []Card `json:"cards"`
	More     int    `json:"more"`
	Total    int    `json:"total"`
}

// Source is the already-loaded data a grid is computed from.
type Source struct {
	Blocks   BlockIndex
	Events   []models.CalendarEvent
	Bookings []models.Booking
	Today    string
	Selected string
}

func (src Source) Cell(day time.Time, limit int) DayCell {
	date := day.Format(DateLayout)
	items := ItemsOn(date, src.Events, src.Bookings)
	capped := items.Capped(limit)

	return DayCell{
		Date:     date,
		Day:      day.Day(),
		InMonth:  true,
		Today:    date == src.Today,
		Selected: date == src.Selected,
		Status:   src.Blocks.StatusOn(day),
		Booked:   len(items.Bookings) > 0,
		Cards:    Cards(capped.Events, capped.Bookings),
		More:     capped.More,
		Total:    items.Total(),
	}
}

// MonthGrid lays a month out in Sunday-first weeks, padding with the
// neighbouring months so every week has seven cells.
func (src Source) MonthGrid(year int, month time.Month, limit int) [][]DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var weeks [][]DayCell
	var week []DayCell
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		cell := src.Cell(d, limit)
		cell.InMonth = d.Month() == month
		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}

	return weeks
}

// WeekGrid returns the Sunday..Saturday week containing day.
func (src Source) WeekGrid(day time.Time, limit int) []DayCell {
	start := day.AddDate(0, 0, -int(day.Weekday()))
	cells := make([]DayCell, 0, 7)
	for i := 0; i < 7; i++ {
		cells = append(cells, src.Cell(start.AddDate(0, 0, i), limit))
	}
	return cells
}

type ScrollerDay struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Day      int    `json:"day"`
	Status   Status `json:"status"`
	Booked   bool   `json:"booked"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
	Today    bool   `json:"today"`
}

// Scroller is the mobile date strip: span days either side of the selection.
func (src Source) Scroller(selected time.Time, span int) []ScrollerDay {
	if span < 0 {
		span = 0
	}
	days := make([]ScrollerDay, 0, 2*span+1)
	for i := -span; i <= span; i++ {
		d := selected.AddDate(0, 0, i)
		date := d.Format(DateLayout)
		items := ItemsOn(date, src.Events, src.Bookings)
		days = append(days, ScrollerDay{
			Date:     date,
			Weekday:  d.Weekday().String()[:3],
			Day:      d.Day(),
			Status:   src.Blocks.StatusOn(d),
			Booked:   len(items.Bookings) > 0,
			Count:    items.Total(),
			Selected: i == 0,
			Today:    date == src.Today,
		})
	}
	return days
}

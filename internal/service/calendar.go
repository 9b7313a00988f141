package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"treedash/api"
	"treedash/internal/booking"
	"treedash/internal/calendar"
	"treedash/internal/ics"
	"treedash/internal/lock"
	"treedash/internal/models"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

const (
	LayoutDesktop = "desktop"
	LayoutMobile  = "mobile"
)

func cellLimit(layout string) int {
	if layout == LayoutDesktop {
		return calendar.DesktopCellLimit
	}
	return calendar.GridCellLimit
}

// MonthView loads the calendar inputs and lays out one month.
func (s *Service) MonthView(ctx context.Context, year int, month time.Month, layout string) (api.MonthView, error) {
	const op = "service.MonthView"

	if month < time.January || month > time.December || year < 1 {
		return api.MonthView{}, fmt.Errorf("%s: invalid month %d-%d: %w", op, year, month, response.ErrBadRequest)
	}
	if layout != LayoutDesktop {
		layout = LayoutMobile
	}

	if err := s.refreshCalendar(ctx); err != nil {
		return api.MonthView{}, fmt.Errorf("%s: %w", op, err)
	}

	src := s.state.Source(s.today(), s.SelectedDate(ctx))

	return api.MonthView{
		Year:     year,
		Month:    int(month),
		Layout:   layout,
		Today:    src.Today,
		Selected: src.Selected,
		Weeks:    src.MonthGrid(year, month, cellLimit(layout)),
	}, nil
}

func (s *Service) WeekView(ctx context.Context, date string) (api.WeekView, error) {
	const op = "service.WeekView"

	if date == "" {
		date = s.SelectedDate(ctx)
	}
	day, err := parseDate(op, date)
	if err != nil {
		return api.WeekView{}, err
	}

	if err := s.refreshCalendar(ctx); err != nil {
		return api.WeekView{}, fmt.Errorf("%s: %w", op, err)
	}

	src := s.state.Source(s.today(), date)
	days := src.WeekGrid(day, calendar.DesktopCellLimit)

	return api.WeekView{
		Start:    days[0].Date,
		Today:    src.Today,
		Selected: src.Selected,
		Days:     days,
	}, nil
}

// DayView is the day-management panel. It is computed from the loaded state
// and lists every item of the date.
func (s *Service) DayView(ctx context.Context, date string) (api.DayView, error) {
	const op = "service.DayView"

	day, err := parseDate(op, date)
	if err != nil {
		return api.DayView{}, err
	}

	if err := s.refreshCalendar(ctx); err != nil {
		return api.DayView{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.dayView(day), nil
}

func (s *Service) dayView(day time.Time) api.DayView {
	date := day.Format(calendar.DateLayout)
	src := s.state.Source(s.today(), date)
	items := calendar.ItemsOn(date, src.Events, src.Bookings)
	status := src.Blocks.StatusOn(day)

	view := api.DayView{
		Date:     date,
		Status:   status,
		Booked:   len(items.Bookings) > 0,
		Events:   items.Events,
		Bookings: make([]api.BookingView, 0, len(items.Bookings)),
		Total:    items.Total(),
	}
	if view.Events == nil {
		view.Events = []models.CalendarEvent{}
	}

	if toggle, err := calendar.ToggleFor(status); err == nil {
		view.Toggle = toggle
	} else {
		view.Locked = true
	}

	for _, b := range items.Bookings {
		view.Bookings = append(view.Bookings, api.BookingView{
			Booking: b,
			Actions: booking.Allowed(b.Status),
		})
	}

	return view
}

// Agenda groups a date into hourly rows and remembers it as the selection.
func (s *Service) Agenda(ctx context.Context, date string) (api.AgendaView, error) {
	const op = "service.Agenda"

	if date == "" {
		date = s.SelectedDate(ctx)
	}
	day, err := parseDate(op, date)
	if err != nil {
		return api.AgendaView{}, err
	}

	if err := s.refreshCalendar(ctx); err != nil {
		return api.AgendaView{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.SelectDate(ctx, date); err != nil {
		s.log.Warn("Failed to persist selected date", slog.String("date", date), sl.Err(err))
	}

	src := s.state.Source(s.today(), date)
	items := calendar.ItemsOn(date, src.Events, src.Bookings)

	return api.AgendaView{
		Agenda:   calendar.BuildAgenda(items),
		Status:   src.Blocks.StatusOn(day),
		Scroller: src.Scroller(day, s.opts.ScrollerSpan),
	}, nil
}

// ToggleDay flips the availability of a date with the one write its current
// status calls for, then reloads the blocked dates.
func (s *Service) ToggleDay(ctx context.Context, date string) (api.ToggleResult, error) {
	const op = "service.ToggleDay"

	day, err := parseDate(op, date)
	if err != nil {
		return api.ToggleResult{}, err
	}

	// the status read and the write it picks must not interleave with another toggle
	key := lock.ToggleKey(date)
	ok, err := s.locker.Lock(ctx, key, s.opts.SubmitTimeout)
	if err != nil {
		return api.ToggleResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return api.ToggleResult{}, fmt.Errorf("%s: %s is being updated: %w", op, date, response.ErrLocked)
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn("Failed to release toggle guard", slog.String("key", key), sl.Err(err))
		}
	}()

	if err := s.reloadBlocked(ctx); err != nil {
		return api.ToggleResult{}, fmt.Errorf("%s: %w", op, err)
	}

	status := calendar.NewBlockIndex(s.state.BlockedDates()).StatusOn(day)
	action, err := calendar.ToggleFor(status)
	if err != nil {
		return api.ToggleResult{}, fmt.Errorf("%s: %s: %w", op, date, err)
	}

	var writeErr error
	switch action {
	case calendar.ToggleBlock:
		writeErr = s.backend.BlockDate(ctx, date, false)
	case calendar.ToggleUnblockWeekend:
		writeErr = s.backend.BlockDate(ctx, date, true)
	case calendar.ToggleUnblock, calendar.ToggleReblockWeekend:
		writeErr = s.backend.DeleteBlockedDate(ctx, date)
	}

	// the blocked list is reloaded whether or not the write went through
	if err := s.reloadBlocked(ctx); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		return api.ToggleResult{}, fmt.Errorf("%s: %w", op, writeErr)
	}

	s.log.Info("Day availability toggled",
		slog.String("date", date),
		slog.String("action", string(action)),
	)

	return api.ToggleResult{
		Date:   date,
		Action: action,
		Status: calendar.NewBlockIndex(s.state.BlockedDates()).StatusOn(day),
	}, nil
}

// ReleaseFullDayJob frees a date held by a full-day job: the blocked row is
// deleted and the tied booking is put back to quote-sent.
func (s *Service) ReleaseFullDayJob(ctx context.Context, date string) (api.DayView, error) {
	const op = "service.ReleaseFullDayJob"

	day, err := parseDate(op, date)
	if err != nil {
		return api.DayView{}, err
	}

	if err := s.reloadBlocked(ctx); err != nil {
		return api.DayView{}, fmt.Errorf("%s: %w", op, err)
	}

	row, ok := calendar.NewBlockIndex(s.state.BlockedDates())[date]
	if !ok || row.Reason != models.ReasonFullDayJob {
		return api.DayView{}, fmt.Errorf("%s: %s holds no full-day job: %w", op, date, response.ErrConflict)
	}

	if err := s.backend.DeleteBlockedDate(ctx, date); err != nil {
		return api.DayView{}, fmt.Errorf("%s: %w", op, err)
	}

	if row.JobBookingID != "" {
		// TODO: revert to the booking's prior status once the upstream records it.
		// quote-sent is a legacy status that only this path writes.
		if err := s.backend.UpdateBookingStatus(ctx, row.JobBookingID, models.BookingQuoteSent); err != nil {
			// the row is gone upstream either way
			if rerr := s.reloadBlocked(ctx); rerr != nil {
				s.log.Warn("Failed to reload blocked dates", sl.Err(rerr))
			}
			return api.DayView{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.log.Info("Full-day job released",
		slog.String("date", date),
		slog.String("booking_id", row.JobBookingID),
	)

	if err := s.refreshCalendar(ctx); err != nil {
		return api.DayView{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.dayView(day), nil
}

// ExportICS renders events and active bookings between from and to
// (inclusive). Empty bounds default to the current month.
func (s *Service) ExportICS(ctx context.Context, from, to string) (string, error) {
	const op = "service.ExportICS"

	now := s.now()
	r := ics.Range{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
	r.To = r.From.AddDate(0, 1, -1)

	if from != "" {
		d, err := parseDate(op, from)
		if err != nil {
			return "", err
		}
		r.From = d
	}
	if to != "" {
		d, err := parseDate(op, to)
		if err != nil {
			return "", err
		}
		r.To = d
	}
	if r.To.Before(r.From) {
		return "", fmt.Errorf("%s: range ends before it starts: %w", op, response.ErrBadRequest)
	}

	if err := s.ReloadBookings(ctx); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.reloadEvents(ctx); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return ics.Export(s.state.Events(), s.state.Bookings(), r, s.opts.Location, now), nil
}

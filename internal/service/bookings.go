package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"treedash/api"
	"treedash/internal/booking"
	"treedash/internal/calendar"
	"treedash/internal/models"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

// ListBookings reloads the active list. Newest entries stay first, as the
// upstream orders them.
func (s *Service) ListBookings(ctx context.Context) ([]api.BookingView, error) {
	const op = "service.ListBookings"

	if err := s.ReloadBookings(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings := s.state.Bookings()
	views := make([]api.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, api.BookingView{Booking: b, Actions: booking.Allowed(b.Status)})
	}
	return views, nil
}

// ChangeBookingStatus applies one workflow move to a booking.
func (s *Service) ChangeBookingStatus(ctx context.Context, id string, to models.BookingStatus) (api.BookingView, error) {
	const op = "service.ChangeBookingStatus"

	if strings.TrimSpace(id) == "" {
		return api.BookingView{}, fmt.Errorf("%s: %w", op, response.ErrInvalidId)
	}

	if err := s.ReloadBookings(ctx); err != nil {
		return api.BookingView{}, fmt.Errorf("%s: %w", op, err)
	}
	current, ok := s.state.Booking(id)
	if !ok {
		return api.BookingView{}, fmt.Errorf("%s: booking %s: %w", op, id, response.ErrNotFound)
	}

	if err := booking.Validate(current.Status, to); err != nil {
		return api.BookingView{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.backend.UpdateBookingStatus(ctx, id, to); err != nil {
		return api.BookingView{}, fmt.Errorf("%s: %w", op, err)
	}
	s.state.PatchBookingStatus(id, to)

	s.log.Info("Booking status changed",
		slog.String("booking_id", id),
		slog.String("from", string(current.Status)),
		slog.String("to", string(to)),
	)

	if err := s.ReloadBookings(ctx); err != nil {
		s.log.Warn("Failed to reload bookings after status change", slog.String("booking_id", id), sl.Err(err))
	}

	updated, ok := s.state.Booking(id)
	if !ok {
		updated = current
		updated.Status = to
	}
	return api.BookingView{Booking: updated, Actions: booking.Allowed(updated.Status)}, nil
}

// MoveBookings moves several bookings to a new date at once and reloads the
// list when every move has landed. With no ids it moves every active booking
// on FromDate.
func (s *Service) MoveBookings(ctx context.Context, req api.MoveRequest) (api.MoveResult, error) {
	const op = "service.MoveBookings"

	target, err := parseDate(op, req.NewDate)
	if err != nil {
		return api.MoveResult{}, err
	}

	if err := s.refreshCalendar(ctx); err != nil {
		return api.MoveResult{}, fmt.Errorf("%s: %w", op, err)
	}

	ids := slices.Compact(slices.Sorted(slices.Values(req.BookingIDs)))
	ids = slices.DeleteFunc(ids, func(id string) bool { return strings.TrimSpace(id) == "" })
	if len(ids) == 0 {
		if _, err := parseDate(op, req.FromDate); err != nil {
			return api.MoveResult{}, err
		}
		for _, b := range calendar.ItemsOn(req.FromDate, nil, s.state.Bookings()).Bookings {
			ids = append(ids, b.BookingID)
		}
	}
	if len(ids) == 0 {
		return api.MoveResult{}, fmt.Errorf("%s: nothing to move: %w", op, response.ErrBadRequest)
	}

	status := calendar.NewBlockIndex(s.state.BlockedDates()).StatusOn(target)
	if status == calendar.StatusFullDayJob {
		return api.MoveResult{}, fmt.Errorf("%s: %s: %w", op, req.NewDate, response.ErrFullDayJobLocked)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			return s.backend.MoveBooking(gctx, id, req.NewDate)
		})
	}
	moveErr := g.Wait()

	// some moves may have landed before the failure
	if err := s.ReloadBookings(ctx); err != nil && moveErr == nil {
		moveErr = err
	}
	if moveErr != nil {
		return api.MoveResult{}, fmt.Errorf("%s: %w", op, moveErr)
	}

	s.log.Info("Bookings moved",
		slog.Int("count", len(ids)),
		slog.String("new_date", req.NewDate),
	)

	return api.MoveResult{
		Moved:        len(ids),
		NewDate:      req.NewDate,
		TargetStatus: status,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"treedash/api"
	"treedash/internal/auth"
	"treedash/internal/lock"
	"treedash/internal/models"
	"treedash/internal/trash"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

// ListTrash loads the trash tab. The first view in an admin session also runs
// the upstream cleanup and reloads the list if it purged anything.
func (s *Service) ListTrash(ctx context.Context, query string) (api.TrashView, error) {
	const op = "service.ListTrash"

	if err := s.reloadTrash(ctx); err != nil {
		return api.TrashView{}, fmt.Errorf("%s: %w", op, err)
	}

	cleaned := s.cleanupOncePerSession(ctx)

	items := trash.Filter(s.state.Trash(), query)

	return api.TrashView{
		Items:     trash.Annotate(items, s.now()),
		Query:     strings.TrimSpace(query),
		CleanedUp: cleaned,
	}, nil
}

func (s *Service) cleanupOncePerSession(ctx context.Context) int {
	key := lock.CleanupKey(auth.Subject(ctx))

	first, err := s.locker.Lock(ctx, key, s.opts.SessionTTL)
	if err != nil {
		s.log.Warn("Failed to check trash cleanup marker", sl.Err(err))
		return 0
	}
	if !first {
		return 0
	}

	count, err := s.CleanupTrash(ctx)
	if err != nil {
		s.log.Warn("Trash cleanup failed", sl.Err(err))
		// let the next view of the tab try again
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn("Failed to clear trash cleanup marker", sl.Err(err))
		}
		return 0
	}
	return count
}

// CleanupTrash asks the upstream to purge everything past the retention
// window and reloads the trash list when something went.
func (s *Service) CleanupTrash(ctx context.Context) (int, error) {
	const op = "service.CleanupTrash"

	count, err := s.backend.CleanupTrash(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("Trash cleanup finished", slog.Int("deleted", count))

	if count > 0 {
		if err := s.reloadTrash(ctx); err != nil {
			return count, fmt.Errorf("%s: %w", op, err)
		}
	}
	return count, nil
}

// TrashBooking moves an active booking to the trash.
func (s *Service) TrashBooking(ctx context.Context, id string) error {
	const op = "service.TrashBooking"

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidId)
	}

	if err := s.backend.TrashBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state.RemoveBooking(id)

	if err := s.reloadTrash(ctx); err != nil {
		s.log.Warn("Failed to reload trash", sl.Err(err))
	}

	s.log.Info("Booking trashed", slog.String("booking_id", id))
	return nil
}

// RestoreBooking puts a trashed booking back at the front of the active list
// without reloading it.
func (s *Service) RestoreBooking(ctx context.Context, id string) (models.Booking, error) {
	const op = "service.RestoreBooking"

	if strings.TrimSpace(id) == "" {
		return models.Booking{}, fmt.Errorf("%s: %w", op, response.ErrInvalidId)
	}

	echoed, err := s.backend.RestoreBooking(ctx, id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	trashed, found := s.state.RemoveTrashed(id)

	var restored models.Booking
	switch {
	case echoed != nil:
		restored = *echoed
	case found:
		restored = trashed
	default:
		// nothing local to show; the next booking load will bring it in
		s.log.Info("Booking restored", slog.String("booking_id", id))
		return models.Booking{BookingID: id}, nil
	}
	restored.TrashedAt = nil

	s.state.UnshiftBooking(restored)

	s.log.Info("Booking restored", slog.String("booking_id", id))
	return restored, nil
}

// PurgeBooking deletes a trashed booking for good.
func (s *Service) PurgeBooking(ctx context.Context, id string) error {
	const op = "service.PurgeBooking"

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidId)
	}

	if err := s.backend.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state.RemoveTrashed(id)

	s.log.Info("Booking deleted permanently", slog.String("booking_id", id))
	return nil
}

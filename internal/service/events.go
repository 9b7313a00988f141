package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"treedash/api"
	"treedash/internal/auth"
	"treedash/internal/events"
	"treedash/internal/lock"
	"treedash/internal/models"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

func (s *Service) ListEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	const op = "service.ListEvents"

	if err := s.reloadEvents(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.state.Events(), nil
}

// SaveEvent runs one pass of the event form: open (create when id is empty,
// edit prefilled from the stored event otherwise), fill, submit. Fields left
// blank in form keep the prefilled value. Only one submit per admin and event may be in
// flight; a second one gets ErrLocked.
func (s *Service) SaveEvent(ctx context.Context, id string, form events.Form) (api.EventResult, error) {
	const op = "service.SaveEvent"

	key := lock.SubmitKey(auth.Subject(ctx), id)
	ok, err := s.locker.Lock(ctx, key, s.opts.SubmitTimeout)
	if err != nil {
		return api.EventResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return api.EventResult{}, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn("Failed to release submit guard", slog.String("key", key), sl.Err(err))
		}
	}()

	modal := events.NewModal()
	if id == "" {
		err = modal.OpenCreate(form.Date)
	} else {
		var current models.CalendarEvent
		current, err = s.findEvent(ctx, id)
		if err != nil {
			return api.EventResult{}, fmt.Errorf("%s: %w", op, err)
		}
		err = modal.OpenEdit(current)
	}
	if err != nil {
		return api.EventResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := modal.Fill(form); err != nil {
		return api.EventResult{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := modal.Submit(ctx, s.writeEvent)
	if err != nil {
		return api.EventResult{}, fmt.Errorf("%s: %w", op, err)
	}

	warnings := events.FormFromEvent(saved).Warnings()
	if len(warnings) > 0 {
		s.log.Debug("Event saved with warnings", slog.String("event_id", saved.ID), slog.Any("warnings", warnings))
	}

	if err := s.reloadEvents(ctx); err != nil {
		s.log.Warn("Failed to reload events after save", sl.Err(err))
	}
	s.changed(ctx)

	s.log.Info("Event saved",
		slog.String("event_id", saved.ID),
		slog.Bool("created", id == ""),
	)

	return api.EventResult{Event: saved, Warnings: warnings}, nil
}

func (s *Service) writeEvent(ctx context.Context, id string, f events.Form) (models.CalendarEvent, error) {
	if id == "" {
		return s.backend.CreateEvent(ctx, f.Event(""))
	}
	return s.backend.UpdateEvent(ctx, f.Event(id))
}

func (s *Service) findEvent(ctx context.Context, id string) (models.CalendarEvent, error) {
	if ev, ok := s.state.Event(id); ok {
		return ev, nil
	}
	if err := s.reloadEvents(ctx); err != nil {
		return models.CalendarEvent{}, err
	}
	if ev, ok := s.state.Event(id); ok {
		return ev, nil
	}
	return models.CalendarEvent{}, fmt.Errorf("event %s: %w", id, response.ErrNotFound)
}

// DeleteEvent removes an event once the admin has confirmed it.
func (s *Service) DeleteEvent(ctx context.Context, id string, confirmed bool) error {
	const op = "service.DeleteEvent"

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: %w", op, response.ErrInvalidId)
	}
	if !confirmed {
		return fmt.Errorf("%s: %w", op, response.ErrConfirmRequired)
	}

	if err := s.backend.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.reloadEvents(ctx); err != nil {
		s.log.Warn("Failed to reload events after delete", sl.Err(err))
	}
	s.changed(ctx)

	s.log.Info("Event deleted", slog.String("event_id", id))
	return nil
}

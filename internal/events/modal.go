package events

import (
	"context"
	"errors"
	"fmt"

	"treedash/internal/models"
)

type Mode string

const (
	ModeClosed Mode = "closed"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	ErrModalState = errors.New("event form is not in a state that allows this")
	ErrSubmitting = errors.New("event form is already submitting")
)

// Modal is the create/edit event form. It moves closed -> open -> submitting
// -> closed; a failed submit leaves it open with the error.
type Modal struct {
	mode       Mode
	editingID  string
	form       Form
	submitting bool
	lastErr    error
}

func NewModal() *Modal {
	return &Modal{mode: ModeClosed}
}

func (m *Modal) Mode() Mode { return m.mode }
func (m *Modal) EditingID() string { return m.editingID }
func (m *Modal) Form() Form { return m.form }
func (m *Modal) Submitting() bool { return m.submitting }
func (m *Modal) LastError() error { return m.lastErr }

// OpenCreate opens an empty form, optionally on a preselected date.
func (m *Modal) OpenCreate(date string) error {
	if m.mode != ModeClosed {
		return ErrModalState
	}
	m.mode = ModeCreate
	m.editingID = ""
	m.form = Form{Date: date, Color: DefaultColor, Type: string(models.EventOther)}
	m.lastErr = nil
	return nil
}

// OpenEdit opens the form prefilled with ev.
func (m *Modal) OpenEdit(ev models.CalendarEvent) error {
	if m.mode != ModeClosed {
		return ErrModalState
	}
	if ev.ID == "" {
		return fmt.Errorf("edit without id: %w", ErrModalState)
	}
	m.mode = ModeEdit
	m.editingID = ev.ID
	m.form = FormFromEvent(ev)
	m.lastErr = nil
	return nil
}

// Fill writes the submitted fields over the open form, so an edit only has
// to carry what changed.
func (m *Modal) Fill(f Form) error {
	if m.mode == ModeClosed || m.submitting {
		return ErrModalState
	}
	m.form = m.form.Overlay(f)
	return nil
}

// SaveFunc performs the write for the current mode. id is empty for create.
type SaveFunc func(ctx context.Context, id string, f Form) (models.CalendarEvent, error)

// Submit normalizes and validates the form, then calls save. The modal closes
// on success and stays open with the error otherwise.
func (m *Modal) Submit(ctx context.Context, save SaveFunc) (models.CalendarEvent, error) {
	if m.mode == ModeClosed {
		return models.CalendarEvent{}, ErrModalState
	}
	if m.submitting {
		return models.CalendarEvent{}, ErrSubmitting
	}

	m.form.Normalize()
	if err := m.form.Validate(); err != nil {
		m.lastErr = err
		return models.CalendarEvent{}, err
	}

	m.submitting = true
	ev, err := save(ctx, m.editingID, m.form)
	m.submitting = false

	if err != nil {
		m.lastErr = err
		return models.CalendarEvent{}, err
	}

	m.Close()
	return ev, nil
}

func (m *Modal) Close() {
	m.mode = ModeClosed
	m.editingID = ""
	m.form = Form{}
	m.submitting = false
	m.lastErr = nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"treedash/internal/auth"
	"treedash/internal/models"
	"treedash/pkg/response"
)

type fakeBackend struct {
	mu sync.Mutex

	bookings []models.Booking
	trash    []models.Booking
	events   []models.CalendarEvent
	blocked  []models.BlockedDate
	projects []models.Project

	cleanupCount int
	cleanupCalls int
	restoreEcho  bool
	failWith     map[string]error

	calls []string
}

func (f *fakeBackend) record(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	for prefix, err := range f.failWith {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeBackend) ListBookings(ctx context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListBookings"); err != nil {
		return nil, err
	}
	return slices.Clone(f.bookings), nil
}

func (f *fakeBackend) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateBookingStatus %s %s", id, status); err != nil {
		return err
	}
	for i := range f.bookings {
		if f.bookings[i].BookingID == id {
			f.bookings[i].Status = status
		}
	}
	return nil
}

func (f *fakeBackend) MoveBooking(ctx context.Context, id, newDate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("MoveBooking %s %s", id, newDate); err != nil {
		return err
	}
	for i := range f.bookings {
		if f.bookings[i].BookingID == id {
			f.bookings[i].Date = newDate
			f.bookings[i].JobDate = ""
		}
	}
	return nil
}

func (f *fakeBackend) DeleteBooking(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteBooking %s", id); err != nil {
		return err
	}
	f.trash = slices.DeleteFunc(f.trash, func(b models.Booking) bool { return b.BookingID == id })
	return nil
}

func (f *fakeBackend) TrashBooking(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("TrashBooking %s", id); err != nil {
		return err
	}
	i := slices.IndexFunc(f.bookings, func(b models.Booking) bool { return b.BookingID == id })
	if i < 0 {
		return response.ErrNotFound
	}
	b := f.bookings[i]
	now := time.Now()
	b.TrashedAt = &now
	f.bookings = slices.Delete(f.bookings, i, i+1)
	f.trash = append(f.trash, b)
	return nil
}

func (f *fakeBackend) RestoreBooking(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RestoreBooking %s", id); err != nil {
		return nil, err
	}
	i := slices.IndexFunc(f.trash, func(b models.Booking) bool { return b.BookingID == id })
	if i < 0 {
		return nil, response.ErrNotFound
	}
	b := f.trash[i]
	b.TrashedAt = nil
	f.trash = slices.Delete(f.trash, i, i+1)
	f.bookings = append(f.bookings, b)
	if f.restoreEcho {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeBackend) ListTrash(ctx context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListTrash"); err != nil {
		return nil, err
	}
	return slices.Clone(f.trash), nil
}

func (f *fakeBackend) CleanupTrash(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CleanupTrash"); err != nil {
		return 0, err
	}
	f.cleanupCalls++
	return f.cleanupCount, nil
}

func (f *fakeBackend) ListEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListEvents"); err != nil {
		return nil, err
	}
	return slices.Clone(f.events), nil
}

func (f *fakeBackend) CreateEvent(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateEvent %s", ev.Title); err != nil {
		return models.CalendarEvent{}, err
	}
	ev.ID = fmt.Sprintf("ev-%d", len(f.events)+1)
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeBackend) UpdateEvent(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateEvent %s", ev.ID); err != nil {
		return models.CalendarEvent{}, err
	}
	for i := range f.events {
		if f.events[i].ID == ev.ID {
			f.events[i] = ev
			return ev, nil
		}
	}
	return models.CalendarEvent{}, response.ErrNotFound
}

func (f *fakeBackend) DeleteEvent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteEvent %s", id); err != nil {
		return err
	}
	f.events = slices.DeleteFunc(f.events, func(ev models.CalendarEvent) bool { return ev.ID == id })
	return nil
}

func (f *fakeBackend) ListBlockedDates(ctx context.Context) ([]models.BlockedDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListBlockedDates"); err != nil {
		return nil, err
	}
	return slices.Clone(f.blocked), nil
}

func (f *fakeBackend) BlockDate(ctx context.Context, date string, unblockWeekend bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BlockDate %s %v", date, unblockWeekend); err != nil {
		return err
	}
	reason := models.ReasonManual
	if unblockWeekend {
		reason = models.ReasonUnblockedWeekend
	}
	f.blocked = append(f.blocked, models.BlockedDate{Date: date, Reason: reason})
	return nil
}

func (f *fakeBackend) DeleteBlockedDate(ctx context.Context, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteBlockedDate %s", date); err != nil {
		return err
	}
	f.blocked = slices.DeleteFunc(f.blocked, func(b models.BlockedDate) bool { return b.Date == date })
	return nil
}

func (f *fakeBackend) ListProjects(ctx context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListProjects"); err != nil {
		return nil, err
	}
	return slices.Clone(f.projects), nil
}

func (f *fakeBackend) GetProject(ctx context.Context, id string) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetProject %s", id); err != nil {
		return models.Project{}, err
	}
	for _, p := range f.projects {
		if p.ProjectID == id {
			return p, nil
		}
	}
	return models.Project{}, response.ErrNotFound
}

func (f *fakeBackend) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateProject %s", p.Title); err != nil {
		return models.Project{}, err
	}
	p.ProjectID = fmt.Sprintf("p-%d", len(f.projects)+1)
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeBackend) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateProject %s", p.ProjectID); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (f *fakeBackend) DeleteProject(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("DeleteProject %s", id)
}

func (f *fakeBackend) ReorderProject(ctx context.Context, id string, order int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("ReorderProject %s %d", id, order)
}

func (f *fakeBackend) ImageURL(projectID string, index int) string {
	return fmt.Sprintf("/api/projects/images/%s/%d", projectID, index)
}

func (f *fakeBackend) BillingGet(ctx context.Context, resource string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BillingGet %s", resource); err != nil {
		return nil, err
	}
	return json.RawMessage(`{"ok":true}`), nil
}

func (f *fakeBackend) BillingPost(ctx context.Context, action string, body json.RawMessage) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BillingPost %s", action); err != nil {
		return nil, err
	}
	return body, nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func (l *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = make(map[string]bool)
	}
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

type fakePrefs struct {
	mu    sync.Mutex
	dates map[string]string
}

func (p *fakePrefs) GetSelectedDate(ctx context.Context, subject string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.dates[subject]
	if !ok {
		return "", response.ErrNotFound
	}
	return d, nil
}

func (p *fakePrefs) SetSelectedDate(ctx context.Context, subject, date string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dates == nil {
		p.dates = make(map[string]string)
	}
	p.dates[subject] = date
	return nil
}

// 2025-09-10 is a Wednesday.
var fixedNow = time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, backend *fakeBackend) (*Service, *fakeLocker, *fakePrefs) {
	t.Helper()

	locker := &fakeLocker{}
	prefs := &fakePrefs{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	s := NewService(log, backend, prefs, locker, Options{
		Location:        time.UTC,
		ReorderDebounce: time.Hour,
		Now:             func() time.Time { return fixedNow },
	})
	return s, locker, prefs
}

func adminCtx() context.Context {
	return auth.WithSession(context.Background(), auth.Session{
		Header:  "Bearer test",
		Subject: "admin@example.com",
	})
}

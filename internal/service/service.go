package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"treedash/internal/auth"
	"treedash/internal/calendar"
	"treedash/internal/lock"
	"treedash/internal/models"
	"treedash/internal/projects"
	"treedash/internal/state"
	"treedash/pkg/response"
	"treedash/pkg/sl"
)

// Backend is the upstream booking API.
type Backend interface {
	// Bookings
	ListBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
	MoveBooking(ctx context.Context, id, newDate string) error
	DeleteBooking(ctx context.Context, id string) error

	// Trash
	TrashBooking(ctx context.Context, id string) error
	RestoreBooking(ctx context.Context, id string) (*models.Booking, error)
	ListTrash(ctx context.Context) ([]models.Booking, error)
	CleanupTrash(ctx context.Context) (int, error)

	// Calendar events
	ListEvents(ctx context.Context) ([]models.CalendarEvent, error)
	CreateEvent(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error

	// Blocked dates
	ListBlockedDates(ctx context.Context) ([]models.BlockedDate, error)
	BlockDate(ctx context.Context, date string, unblockWeekend bool) error
	DeleteBlockedDate(ctx context.Context, date string) error

	// Projects
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, p models.Project) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ReorderProject(ctx context.Context, id string, order int) error
	ImageURL(projectID string, index int) string

	// Billing
	BillingGet(ctx context.Context, resource string) (json.RawMessage, error)
	BillingPost(ctx context.Context, action string, body json.RawMessage) (json.RawMessage, error)
}

// Prefs stores per-admin dashboard preferences.
type Prefs interface {
	GetSelectedDate(ctx context.Context, subject string) (string, error)
	SetSelectedDate(ctx context.Context, subject, date string) error
}

type Options struct {
	Location        *time.Location
	SessionTTL      time.Duration
	SubmitTimeout   time.Duration
	ReorderDebounce time.Duration
	ScrollerSpan    int
	Now             func() time.Time
}

type Service struct {
	log      *slog.Logger
	backend  Backend
	prefs    Prefs
	locker   lock.Locker
	state    *state.AppState
	reorder  *projects.Reorderer
	opts     Options
	onChange func(ctx context.Context) error
}

func NewService(log *slog.Logger, backend Backend, prefs Prefs, locker lock.Locker, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = 30 * time.Second
	}
	if opts.ReorderDebounce <= 0 {
		opts.ReorderDebounce = 300 * time.Millisecond
	}
	if opts.ScrollerSpan <= 0 {
		opts.ScrollerSpan = 7
	}

	log = log.With(slog.String("component", "service"))

	return &Service{
		log:     log,
		backend: backend,
		prefs:   prefs,
		locker:  locker,
		state:   state.New(),
		reorder: projects.NewReorderer(log, backend, opts.ReorderDebounce),
		opts:    opts,
	}
}

// OnChange registers a hook run after calendar events change, the way the
// event form refreshes the booking list it shares a page with.
func (s *Service) OnChange(fn func(ctx context.Context) error) {
	s.onChange = fn
}

func (s *Service) State() *state.AppState {
	return s.state
}

func (s *Service) now() time.Time {
	return s.opts.Now().In(s.opts.Location)
}

func (s *Service) today() string {
	return s.now().Format(calendar.DateLayout)
}

func (s *Service) changed(ctx context.Context) {
	if s.onChange == nil {
		return
	}
	if err := s.onChange(ctx); err != nil {
		s.log.Warn("Refresh hook failed", sl.Err(err))
	}
}

// #### reloads ####

func (s *Service) ReloadBookings(ctx context.Context) error {
	const op = "service.ReloadBookings"

	bookings, err := s.backend.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state.SetBookings(bookings)
	return nil
}

func (s *Service) reloadEvents(ctx context.Context) error {
	const op = "service.reloadEvents"

	events, err := s.backend.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state.SetEvents(events)
	return nil
}

func (s *Service) reloadBlocked(ctx context.Context) error {
	const op = "service.reloadBlocked"

	rows, err := s.backend.ListBlockedDates(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state.SetBlockedDates(rows)
	return nil
}

func (s *Service) reloadTrash(ctx context.Context) error {
	const op = "service.reloadTrash"

	items, err := s.backend.ListTrash(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state.SetTrash(items)
	return nil
}

// refreshCalendar loads the three calendar inputs one after another.
func (s *Service) refreshCalendar(ctx context.Context) error {
	if err := s.ReloadBookings(ctx); err != nil {
		return err
	}
	if err := s.reloadEvents(ctx); err != nil {
		return err
	}
	return s.reloadBlocked(ctx)
}

func parseDate(op, date string) (time.Time, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date %q: %w", op, date, response.ErrBadRequest)
	}
	return d, nil
}

// #### preferences ####

// SelectedDate is the admin's remembered calendar date, today by default.
func (s *Service) SelectedDate(ctx context.Context) string {
	date, err := s.prefs.GetSelectedDate(ctx, auth.Subject(ctx))
	if err != nil {
		if !errors.Is(err, response.ErrNotFound) {
			s.log.Warn("Failed to read selected date", sl.Err(err))
		}
		return s.today()
	}
	return date
}

func (s *Service) SelectDate(ctx context.Context, date string) error {
	const op = "service.SelectDate"

	if _, err := parseDate(op, date); err != nil {
		return err
	}
	if err := s.prefs.SetSelectedDate(ctx, auth.Subject(ctx), date); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

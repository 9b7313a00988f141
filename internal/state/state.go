package state

import (
	"slices"
	"sync"

	"treedash/internal/calendar"
	"treedash/internal/models"
)

// AppState is the dashboard's single copy of what it last loaded from the
// upstream API. Every writer goes through the methods below.
type AppState struct {
	mu       sync.RWMutex
	bookings []models.Booking
	events   []models.CalendarEvent
	blocked  []models.BlockedDate
	trash    []models.Booking
	projects []models.Project
}

func New() *AppState {
	return &AppState{}
}

func (s *AppState) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bookings)
}

func (s *AppState) Events() []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

func (s *AppState) BlockedDates() []models.BlockedDate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.blocked)
}

func (s *AppState) Trash() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trash)
}

func (s *AppState) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

func (s *AppState) Booking(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.BookingID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

func (s *AppState) Event(id string) (models.CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.CalendarEvent{}, false
}

// Source snapshots the calendar inputs in one read.
func (s *AppState) Source(today, selected string) calendar.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calendar.Source{
		Blocks:   calendar.NewBlockIndex(s.blocked),
		Events:   slices.Clone(s.events),
		Bookings: slices.Clone(s.bookings),
		Today:    today,
		Selected: selected,
	}
}

func (s *AppState) SetBookings(bookings []models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = slices.Clone(bookings)
}

func (s *AppState) SetEvents(events []models.CalendarEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = slices.Clone(events)
}

func (s *AppState) SetBlockedDates(rows []models.BlockedDate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = slices.Clone(rows)
}

func (s *AppState) SetTrash(bookings []models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trash = slices.Clone(bookings)
}

func (s *AppState) SetProjects(projects []models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = slices.Clone(projects)
}

// PatchBookingStatus records a status the upstream has already accepted.
func (s *AppState) PatchBookingStatus(id string, status models.BookingStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].BookingID == id {
			s.bookings[i].Status = status
			return true
		}
	}
	return false
}

// UnshiftBooking puts a booking at the front of the active list, replacing
// any stale copy.
func (s *AppState) UnshiftBooking(b models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = slices.DeleteFunc(s.bookings, func(x models.Booking) bool { return x.BookingID == b.BookingID })
	s.bookings = slices.Insert(s.bookings, 0, b)
}

func (s *AppState) RemoveBooking(id string) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.bookings, func(b models.Booking) bool { return b.BookingID == id })
	if i < 0 {
		return models.Booking{}, false
	}
	b := s.bookings[i]
	s.bookings = slices.Delete(s.bookings, i, i+1)
	return b, true
}

func (s *AppState) RemoveTrashed(id string) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.trash, func(b models.Booking) bool { return b.BookingID == id })
	if i < 0 {
		return models.Booking{}, false
	}
	b := s.trash[i]
	s.trash = slices.Delete(s.trash, i, i+1)
	return b, true
}

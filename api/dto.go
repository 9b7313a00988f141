package api

import (
	"treedash/internal/booking"
	"treedash/internal/calendar"
	"treedash/internal/models"
	"treedash/internal/trash"
)

type MonthView struct {
	Year     int                  `json:"year"`
	Month    int                  `json:"month"`
	Layout   string               `json:"layout"`
	Today    string               `json:"today"`
	Selected string               `json:"selected"`
	Weeks    [][]calendar.DayCell `json:"weeks"`
}

type WeekView struct {
	Start    string             `json:"start"`
	Today    string             `json:"today"`
	Selected string             `json:"selected"`
	Days     []calendar.DayCell `json:"days"`
}

type BookingView struct {
	models.Booking
	Actions booking.Moves `json:"actions"`
}

// DayView is the day-management panel: every item of the day, uncapped.
type DayView struct {
	Date     string                 `json:"date"`
	Status   calendar.Status        `json:"status"`
	Booked   bool                   `json:"booked"`
	Toggle   calendar.Toggle        `json:"toggle,omitempty"`
	Locked   bool                   `json:"locked"`
	Events   []models.CalendarEvent `json:"events"`
	Bookings []BookingView          `json:"bookings"`
	Total    int                    `json:"total"`
}

type AgendaView struct {
	calendar.Agenda
	Status   calendar.Status        `json:"status"`
	Scroller []calendar.ScrollerDay `json:"scroller"`
}

type ToggleResult struct {
	Date   string          `json:"date"`
	Action calendar.Toggle `json:"action"`
	Status calendar.Status `json:"status"`
}

type SelectedDate struct {
	Date string `json:"date"`
}

type EventResult struct {
	Event    models.CalendarEvent `json:"event"`
	Warnings []string             `json:"warnings,omitempty"`
}

type StatusChangeRequest struct {
	Status string `json:"status"`
}

// MoveRequest moves the listed bookings, or every active booking on
// FromDate when BookingIDs is empty, to NewDate.
type MoveRequest struct {
	BookingIDs []string `json:"booking_ids"`
	FromDate   string   `json:"from_date"`
	NewDate    string   `json:"new_date"`
}

type MoveResult struct {
	Moved        int             `json:"moved"`
	NewDate      string          `json:"new_date"`
	TargetStatus calendar.Status `json:"target_status"`
}

type TrashView struct {
	Items     []trash.Item `json:"items"`
	Query     string       `json:"query,omitempty"`
	CleanedUp int          `json:"cleaned_up"`
}

type ProjectView struct {
	ProjectID     string       `json:"project_id"`
	Title         string       `json:"title"`
	Duration      string       `json:"duration,omitempty"`
	Location      string       `json:"location,omitempty"`
	Description   string       `json:"description,omitempty"`
	Tags          []models.Tag `json:"tags"`
	TagsRepaired  bool         `json:"tags_repaired,omitempty"`
	TagsError     string       `json:"tags_error,omitempty"`
	ImagePreviews []string     `json:"image_previews"`
	ImageURLs     []string     `json:"image_urls"`
	Published     bool         `json:"published"`
	Order         int          `json:"order"`
}

type ProjectRequest struct {
	Title         string       `json:"title" validate:"required,max=200"`
	Duration      string       `json:"duration" validate:"max=100"`
	Location      string       `json:"location" validate:"max=200"`
	Description   string       `json:"description" validate:"max=5000"`
	Tags          []models.Tag `json:"tags" validate:"dive"`
	ImagePreviews []string     `json:"image_previews"`
	Published     bool         `json:"published"`
	Order         int          `json:"order" validate:"min=0"`
}

type ReorderRequest struct {
	ProjectIDs []string `json:"project_ids" validate:"required,min=1,dive,required"`
}

type ReorderResult struct {
	Scheduled int `json:"scheduled"`
}

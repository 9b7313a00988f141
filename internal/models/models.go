package models

import (
	"encoding/json"
	"time"
)

type BookingStatus string

const (
	BookingPending        BookingStatus = "pending"
	BookingQuoteReady     BookingStatus = "quote-ready"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingPendingBooking BookingStatus = "pending-booking"
	BookingInvoiceReady   BookingStatus = "invoice-ready"
	BookingInvoiceSent    BookingStatus = "invoice-sent"
	BookingCompleted      BookingStatus = "completed"
	BookingCancelled      BookingStatus = "cancelled"

	// BookingQuoteSent is only written when a full-day job is released.
	BookingQuoteSent BookingStatus = "quote-sent"
)

// IsActive reports whether a booking in this status occupies its date.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingQuoteReady, BookingPendingBooking,
		BookingInvoiceReady, BookingInvoiceSent, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	BookingID string        `json:"booking_id"`
	Date      string        `json:"date,omitempty"`
	JobDate   string        `json:"job_date,omitempty"`
	Time      string        `json:"time,omitempty"`
	JobTime   string        `json:"job_time,omitempty"`
	Status    BookingStatus `json:"status"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Address   string        `json:"address,omitempty"`
	Service   string        `json:"service,omitempty"`
	TrashedAt *time.Time    `json:"trashed_at,omitempty"`
}

// OnDate reports whether either date field of the booking equals date.
func (b Booking) OnDate(date string) bool {
	return date != "" && (b.Date == date || b.JobDate == date)
}

// SlotTime is the time string used for hour matching, time before job_time.
func (b Booking) SlotTime() string {
	if b.Time != "" {
		return b.Time
	}
	return b.JobTime
}

// ScheduledDate prefers the job date over the requested date.
func (b Booking) ScheduledDate() string {
	if b.JobDate != "" {
		return b.JobDate
	}
	return b.Date
}

type EventType string

const (
	EventMechanical  EventType = "mechanical"
	EventQuote       EventType = "quote"
	EventMaintenance EventType = "maintenance"
	EventPersonal    EventType = "personal"
	EventMeeting     EventType = "meeting"
	EventTraining    EventType = "training"
	EventOther       EventType = "other"
)

type CalendarEvent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Type         EventType `json:"type"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
	Color        string    `json:"color,omitempty"`
	SendToMyself bool      `json:"sendToMyself"`
}

// UnmarshalJSON accepts both "id" and the mongo-style "_id".
func (e *CalendarEvent) UnmarshalJSON(data []byte) error {
	type alias CalendarEvent
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = aux.MongoID
	}
	return nil
}

type BlockReason string

const (
	ReasonManual           BlockReason = "manual"
	ReasonUnblockedWeekend BlockReason = "unblocked_weekend"
	ReasonFullDayJob       BlockReason = "full_day_job"
)

type BlockedDate struct {
	Date         string      `json:"date"`
	Reason       BlockReason `json:"reason"`
	JobBookingID string      `json:"job_booking_id,omitempty"`
}

type Tag struct {
	Icon  string `json:"icon"`
	Label string `json:"label" validate:"required,max=100"`
}

type Project struct {
	ProjectID     string          `json:"project_id"`
	Title         string          `json:"title"`
	Duration      string          `json:"duration,omitempty"`
	Location      string          `json:"location,omitempty"`
	Description   string          `json:"description,omitempty"`
	RawTags       json.RawMessage `json:"tags,omitempty"`
	ImagePreviews []string        `json:"image_previews,omitempty"`
	Published     bool            `json:"published"`
	Order         int             `json:"order"`
}

package booking

import (
	"fmt"

	"treedash/internal/models"
	"treedash/pkg/response"
)

// Moves lists what the workflow allows from one status.
type Moves struct {
	Forward   models.BookingStatus `json:"forward,omitempty"`
	Revert    models.BookingStatus `json:"revert,omitempty"`
	CanCancel bool                 `json:"can_cancel"`
}

var workflow = []models.BookingStatus{
	models.BookingPending,
	models.BookingQuoteReady,
	models.BookingConfirmed,
	models.BookingPendingBooking,
	models.BookingInvoiceReady,
	models.BookingInvoiceSent,
	models.BookingCompleted,
}

var transitions = buildTransitions()

func buildTransitions() map[models.BookingStatus]Moves {
	t := make(map[models.BookingStatus]Moves, len(workflow)+2)

	for i, st := range workflow {
		var m Moves
		if i+1 < len(workflow) {
			m.Forward = workflow[i+1]
		}
		if i > 0 {
			m.Revert = workflow[i-1]
		}
		m.CanCancel = st != models.BookingCompleted
		t[st] = m
	}

	// a released full-day job lands here; it rejoins the workflow as a quote
	t[models.BookingQuoteSent] = Moves{
		Forward:   models.BookingConfirmed,
		Revert:    models.BookingQuoteReady,
		CanCancel: true,
	}
	t[models.BookingCancelled] = Moves{}

	return t
}

// Allowed returns the moves for a status; unknown statuses have none.
func Allowed(status models.BookingStatus) Moves {
	return transitions[status]
}

// Validate rejects any status change the workflow does not list.
func Validate(from, to models.BookingStatus) error {
	m, ok := transitions[from]
	if !ok {
		return fmt.Errorf("unknown status %q: %w", from, response.ErrIllegalTransition)
	}

	switch {
	case to == "":
	case to == m.Forward, to == m.Revert:
		return nil
	case to == models.BookingCancelled && m.CanCancel:
		return nil
	}

	return fmt.Errorf("%s -> %s: %w", from, to, response.ErrIllegalTransition)
}

package state

import (
	"testing"

	"treedash/internal/calendar"
	"treedash/internal/models"
)

func TestBookingWriters(t *testing.T) {
	s := New()
	s.SetBookings([]models.Booking{
		{BookingID: "a", Status: models.BookingPending},
		{BookingID: "b", Status: models.BookingConfirmed},
	})

	if !s.PatchBookingStatus("a", models.BookingQuoteReady) {
		t.Fatal("patch missed existing booking")
	}
	if s.PatchBookingStatus("zzz", models.BookingQuoteReady) {
		t.Fatal("patch hit unknown booking")
	}
	if b, _ := s.Booking("a"); b.Status != models.BookingQuoteReady {
		t.Fatalf("status = %s", b.Status)
	}

	s.UnshiftBooking(models.Booking{BookingID: "c"})
	s.UnshiftBooking(models.Booking{BookingID: "b", Status: models.BookingCompleted})
	got := s.Bookings()
	if len(got) != 3 || got[0].BookingID != "b" || got[1].BookingID != "c" || got[2].BookingID != "a" {
		t.Fatalf("order = %+v", got)
	}

	if _, ok := s.RemoveBooking("c"); !ok {
		t.Fatal("remove missed")
	}
	if len(s.Bookings()) != 2 {
		t.Fatal("remove did not shrink the list")
	}
}

func TestReadersReturnCopies(t *testing.T) {
	s := New()
	s.SetBookings([]models.Booking{{BookingID: "a", Status: models.BookingPending}})

	got := s.Bookings()
	got[0].Status = models.BookingCancelled

	if b, _ := s.Booking("a"); b.Status != models.BookingPending {
		t.Fatal("caller mutated state through a reader")
	}
}

func TestSourceAvailability(t *testing.T) {
	s := New()
	s.SetBlockedDates([]models.BlockedDate{{Date: "2025-09-06", Reason: models.ReasonUnblockedWeekend}})

	src := s.Source("2025-09-01", "2025-09-01")
	sat, _ := calendar.ParseDate("2025-09-06")
	if st := src.Blocks.StatusOn(sat); st != calendar.StatusUnblockedWeekend {
		t.Fatalf("status = %s", st)
	}
}

func TestTrashWriters(t *testing.T) {
	s := New()
	s.SetTrash([]models.Booking{{BookingID: "t1"}, {BookingID: "t2"}})

	if _, ok := s.RemoveTrashed("t1"); !ok {
		t.Fatal("remove missed")
	}
	if tr := s.Trash(); len(tr) != 1 || tr[0].BookingID != "t2" {
		t.Fatalf("trash = %+v", tr)
	}
}

package trash

import (
	"testing"
	"time"

	"treedash/internal/models"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"just now", now, 30},
		{"23 hours", now.Add(-23 * time.Hour), 30},
		{"one day", now.Add(-24 * time.Hour), 29},
		{"27 days", now.AddDate(0, 0, -27), 3},
		{"30 days", now.AddDate(0, 0, -30), 0},
		{"90 days", now.AddDate(0, 0, -90), 0},
		{"future", now.Add(48 * time.Hour), 30},
	}

	for _, tt := range tests {
		if got := DaysRemaining(tt.at, now); got != tt.want {
			t.Errorf("%s: DaysRemaining = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDaysRemainingNonIncreasing(t *testing.T) {
	at := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	prev := DaysRemaining(at, at)

	for h := 1; h <= 40*24; h += 7 {
		cur := DaysRemaining(at, at.Add(time.Duration(h)*time.Hour))
		if cur > prev {
			t.Fatalf("remaining went up at +%dh: %d > %d", h, cur, prev)
		}
		if cur < 0 {
			t.Fatalf("remaining negative at +%dh", h)
		}
		prev = cur
	}
}

func TestAnnotate(t *testing.T) {
	now := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -28)

	items := Annotate([]models.Booking{
		{BookingID: "a", TrashedAt: &old},
		{BookingID: "b"},
	}, now)

	if items[0].DaysRemaining != 2 || !items[0].ExpiringSoon {
		t.Fatalf("item a = %+v", items[0])
	}
	if items[1].DaysRemaining != 30 || items[1].ExpiringSoon {
		t.Fatalf("item b = %+v", items[1])
	}
}

func TestFilter(t *testing.T) {
	bookings := []models.Booking{
		{BookingID: "BK-100", Name: "Maria Lopez", Email: "maria@example.com"},
		{BookingID: "BK-200", Name: "Tom Oak", Email: "tom@trees.io"},
	}

	if got := Filter(bookings, "  "); len(got) != 2 {
		t.Fatalf("blank query returned %d", len(got))
	}
	if got := Filter(bookings, "LOPEZ"); len(got) != 1 || got[0].BookingID != "BK-100" {
		t.Fatalf("name match = %+v", got)
	}
	if got := Filter(bookings, "trees.IO"); len(got) != 1 || got[0].BookingID != "BK-200" {
		t.Fatalf("email match = %+v", got)
	}
	if got := Filter(bookings, "bk-"); len(got) != 2 {
		t.Fatalf("id match = %d", len(got))
	}
	if got := Filter(bookings, "pine"); len(got) != 0 {
		t.Fatalf("unexpected match %+v", got)
	}
}

package get

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"treedash/api"
	"treedash/internal/backend"
	"treedash/internal/models"
)

type listerFunc func(ctx context.Context) ([]api.BookingView, error)

func (f listerFunc) ListBookings(ctx context.Context) ([]api.BookingView, error) {
	return f(ctx)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListBookings(t *testing.T) {
	lister := listerFunc(func(ctx context.Context) ([]api.BookingView, error) {
		return []api.BookingView{{Booking: models.Booking{BookingID: "b1", Status: models.BookingPending}}}, nil
	})

	rec := httptest.NewRecorder()
	New(discard(), lister).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/bookings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Bookings) != 1 || resp.Bookings[0].BookingID != "b1" || resp.Logout {
		t.Fatalf("response = %+v", resp)
	}
}

func TestListBookingsSessionExpired(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		lister := listerFunc(func(ctx context.Context) ([]api.BookingView, error) {
			return nil, fmt.Errorf("service.ListBookings: %w", &backend.Error{Status: status, Message: "Unauthorized"})
		})

		rec := httptest.NewRecorder()
		New(discard(), lister).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/bookings", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("upstream %d: status = %d", status, rec.Code)
		}

		var resp Response
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Code != "SESSION_EXPIRED" || !resp.Logout || resp.LogoutAfterMs != 2000 {
			t.Fatalf("upstream %d: response = %+v", status, resp)
		}
	}
}

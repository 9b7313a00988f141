package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"treedash/internal/models"
)

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	const op = "backend.ListBookings"

	var bookings []models.Booking
	if err := c.getList(ctx, "/api/bookings", &bookings, "bookings", "data"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bookings, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	const op = "backend.UpdateBookingStatus"

	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id)+"/status", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) MoveBooking(ctx context.Context, id, newDate string) error {
	const op = "backend.MoveBooking"

	body := map[string]string{"newDate": newDate}
	if err := c.do(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id)+"/move", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	const op = "backend.DeleteBooking"

	if err := c.do(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) TrashBooking(ctx context.Context, id string) error {
	const op = "backend.TrashBooking"

	if err := c.do(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(id)+"/trash", nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RestoreBooking returns the restored booking when the upstream echoes it.
func (c *Client) RestoreBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "backend.RestoreBooking"

	var env envelope
	if err := c.do(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(id)+"/restore", nil, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var b models.Booking
	if err := env.decode(&b, "booking"); err != nil || b.BookingID == "" {
		return nil, nil
	}
	return &b, nil
}

func (c *Client) ListTrash(ctx context.Context) ([]models.Booking, error) {
	const op = "backend.ListTrash"

	var bookings []models.Booking
	if err := c.getList(ctx, "/api/bookings/trash", &bookings, "bookings", "trash", "data"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bookings, nil
}

// CleanupTrash purges everything past the retention window upstream and
// returns how many bookings went.
func (c *Client) CleanupTrash(ctx context.Context) (int, error) {
	const op = "backend.CleanupTrash"

	var out struct {
		DeletedCount *int `json:"deletedCount"`
		Deleted      *int `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/bookings/trash/cleanup", nil, &out); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case out.DeletedCount != nil:
		return *out.DeletedCount, nil
	case out.Deleted != nil:
		return *out.Deleted, nil
	}
	return 0, nil
}

package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"treedash/internal/models"
)

func (c *Client) ListEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	const op = "backend.ListEvents"

	var events []models.CalendarEvent
	if err := c.getList(ctx, "/api/calendar-events", &events, "events", "data"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error) {
	const op = "backend.CreateEvent"

	saved, err := c.saveEvent(ctx, http.MethodPost, "/api/calendar-events", ev)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

func (c *Client) UpdateEvent(ctx context.Context, ev models.CalendarEvent) (models.CalendarEvent, error) {
	const op = "backend.UpdateEvent"

	saved, err := c.saveEvent(ctx, http.MethodPut, "/api/calendar-events/"+url.PathEscape(ev.ID), ev)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

type eventBody struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	SendToMyself bool   `json:"sendToMyself"`
}

func (c *Client) saveEvent(ctx context.Context, method, path string, ev models.CalendarEvent) (models.CalendarEvent, error) {
	body := eventBody{
		Title:        ev.Title,
		Type:         string(ev.Type),
		Date:         ev.Date,
		StartTime:    ev.StartTime,
		EndTime:      ev.EndTime,
		Location:     ev.Location,
		Description:  ev.Description,
		Color:        ev.Color,
		SendToMyself: ev.SendToMyself,
	}

	var env envelope
	if err := c.do(ctx, method, path, body, &env); err != nil {
		return models.CalendarEvent{}, err
	}

	saved := ev
	var echoed models.CalendarEvent
	if err := env.decode(&echoed, "event", "data"); err == nil && echoed.ID != "" {
		saved = echoed
	}
	return saved, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	const op = "backend.DeleteEvent"

	if err := c.do(ctx, http.MethodDelete, "/api/calendar-events/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) ListBlockedDates(ctx context.Context) ([]models.BlockedDate, error) {
	const op = "backend.ListBlockedDates"

	var rows []models.BlockedDate
	if err := c.getList(ctx, "/api/blocked-dates", &rows, "blockedDates", "blocked_dates", "data"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

// BlockDate creates a manual block, or with unblockWeekend an override that
// opens a weekend date.
func (c *Client) BlockDate(ctx context.Context, date string, unblockWeekend bool) error {
	const op = "backend.BlockDate"

	body := map[string]any{"date": date}
	if unblockWeekend {
		body["unblockWeekend"] = true
	}
	if err := c.do(ctx, http.MethodPost, "/api/blocked-dates", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) DeleteBlockedDate(ctx context.Context, date string) error {
	const op = "backend.DeleteBlockedDate"

	if err := c.do(ctx, http.MethodDelete, "/api/blocked-dates/"+url.PathEscape(date), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

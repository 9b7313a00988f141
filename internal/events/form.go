package events

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"treedash/internal/calendar"
	"treedash/internal/models"
)

// Color swatches offered by the event form.
var Swatches = []string{
	"#3b82f6", // blue
	"#10b981", // green
	"#ef4444", // red
	"#f59e0b", // amber
	"#8b5cf6", // purple
	"#ec4899", // pink
}

const DefaultColor = "#3b82f6"

type Form struct {
	Title        string `json:"title" validate:"required,max=200"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Type         string `json:"type" validate:"required,oneof=mechanical quote maintenance personal meeting training other"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	Location     string `json:"location,omitempty" validate:"max=500"`
	Description  string `json:"description,omitempty" validate:"max=5000"`
	Color        string `json:"color,omitempty" validate:"omitempty,oneof=#3b82f6 #10b981 #ef4444 #f59e0b #8b5cf6 #ec4899"`
	// nil leaves the prefilled value alone
	SendToMyself *bool `json:"sendToMyself,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormFromEvent prefills the form for editing.
func FormFromEvent(ev models.CalendarEvent) Form {
	send := ev.SendToMyself
	return Form{
		Title:        ev.Title,
		Date:         ev.Date,
		Type:         string(ev.Type),
		StartTime:    ev.StartTime,
		EndTime:      ev.EndTime,
		Location:     ev.Location,
		Description:  ev.Description,
		Color:        ev.Color,
		SendToMyself: &send,
	}
}

// Overlay returns f with every field set in patch written over it. Blank
// text fields in patch keep the value from f.
func (f Form) Overlay(patch Form) Form {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&f.Title, patch.Title)
	set(&f.Date, patch.Date)
	set(&f.Type, patch.Type)
	set(&f.StartTime, patch.StartTime)
	set(&f.EndTime, patch.EndTime)
	set(&f.Location, patch.Location)
	set(&f.Description, patch.Description)
	set(&f.Color, patch.Color)
	if patch.SendToMyself != nil {
		send := *patch.SendToMyself
		f.SendToMyself = &send
	}
	return f
}

// Normalize trims text fields and applies the default color.
func (f *Form) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Date = strings.TrimSpace(f.Date)
	f.Type = strings.TrimSpace(f.Type)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Location = strings.TrimSpace(f.Location)
	f.Description = strings.TrimSpace(f.Description)
	f.Color = strings.ToLower(strings.TrimSpace(f.Color))
	if f.Color == "" {
		f.Color = DefaultColor
	}
}

// Validate returns validator.ValidationErrors for missing or bad fields.
func (f Form) Validate() error {
	return validate.Struct(f)
}

// Warnings lists problems that do not block saving. An end time at or
// before the start is not rejected, only reported.
func (f Form) Warnings() []string {
	var warnings []string

	start, okStart := calendar.ParseClock(f.StartTime)
	end, okEnd := calendar.ParseClock(f.EndTime)
	if okStart && okEnd && end <= start {
		warnings = append(warnings, "end time is not after start time")
	}
	if f.StartTime != "" && !okStart {
		warnings = append(warnings, "start time is not a recognised clock time")
	}
	if f.EndTime != "" && !okEnd {
		warnings = append(warnings, "end time is not a recognised clock time")
	}

	return warnings
}

func (f Form) Event(id string) models.CalendarEvent {
	return models.CalendarEvent{
		ID:           id,
		Title:        f.Title,
		Date:         f.Date,
		StartTime:    f.StartTime,
		EndTime:      f.EndTime,
		Type:         models.EventType(f.Type),
		Location:     f.Location,
		Description:  f.Description,
		Color:        f.Color,
		SendToMyself: f.SendToMyself != nil && *f.SendToMyself,
	}
}

package calendar

const HoursPerDay = 24

// HourSlots returns the fixed agenda labels "12:00 AM" .. "11:00 PM".
func HourSlots() []string {
	slots := make([]string, HoursPerDay)
	for h := range HoursPerDay {
		slots[h] = HourLabel(h)
	}
	return slots
}

// SlotGroup is one agenda row. Empty rows cover a run of consecutive hours;
// occupied rows always cover exactly one hour.
type SlotGroup struct {
	Label    string   `json:"label"`
	Slots    []string `json:"slots"`
	Hours    []int    `json:"hours"`
	HasItems bool     `json:"has_items"`
	Muted    bool     `json:"muted"`
	Cards    []Card   `json:"cards,omitempty"`
}

// Agenda is the hour-slot view of one day. Unscheduled holds the items that
// match no slot, such as full-day weekend jobs or free-form times.
type Agenda struct {
	Date        string      `json:"date"`
	Groups      []SlotGroup `json:"groups"`
	Unscheduled []Card      `json:"unscheduled,omitempty"`
}

// BuildAgenda buckets a day's items into hour slots and coalesces runs of
// empty slots into a single row.
func BuildAgenda(items DayItems) Agenda {
	byHour := make([][]Card, HoursPerDay)
	agenda := Agenda{Date: items.Date}

	for _, ev := range items.Events {
		if h, ok := ParseHour(ev.StartTime); ok {
			byHour[h] = append(byHour[h], EventCard(ev))
			continue
		}
		agenda.Unscheduled = append(agenda.Unscheduled, EventCard(ev))
	}
	for _, b := range items.Bookings {
		if h, ok := ParseHour(b.SlotTime()); ok {
			byHour[h] = append(byHour[h], BookingCard(b))
			continue
		}
		agenda.Unscheduled = append(agenda.Unscheduled, BookingCard(b))
	}

	agenda.Groups = GroupSlots(HourSlots(), func(h int) bool { return len(byHour[h]) > 0 })
	for i := range agenda.Groups {
		if agenda.Groups[i].HasItems {
			agenda.Groups[i].Cards = byHour[agenda.Groups[i].Hours[0]]
		}
	}

	return agenda
}

// GroupSlots run-length encodes slots by occupied(hour). Occupied hours are
// never merged with each other.
func GroupSlots(slots []string, occupied func(hour int) bool) []SlotGroup {
	var groups []SlotGroup

	for h, label := range slots {
		if occupied(h) {
			groups = append(groups, SlotGroup{
				Label:    label,
				Slots:    []string{label},
				Hours:    []int{h},
				HasItems: true,
			})
			continue
		}

		if n := len(groups); n > 0 && !groups[n-1].HasItems {
			g := &groups[n-1]
			g.Slots = append(g.Slots, label)
			g.Hours = append(g.Hours, h)
			g.Label = g.Slots[0] + " - " + label
			continue
		}

		groups = append(groups, SlotGroup{
			Label: label,
			Slots: []string{label},
			Hours: []int{h},
			Muted: true,
		})
	}

	return groups
}

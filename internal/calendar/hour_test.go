package calendar

import "testing"

func TestParseHour(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"9:00", 9, true},
		{"09:30", 9, true},
		{"17:45", 17, true},
		{"17:45:00", 17, true},
		{"0:15", 0, true},
		{"9:00 AM", 9, true},
		{"9:00am", 9, true},
		{"12:00 AM", 0, true},
		{"12:30 pm", 12, true},
		{"5:00 PM", 17, true},
		{"5 pm", 17, true},
		{"11:00 p.m.", 23, true},
		{"  8:00  ", 8, true},
		{"Full-day (Weekend)", 0, false},
		{"full-day", 0, false},
		{"", 0, false},
		{"9", 0, false},
		{"24:00", 0, false},
		{"13:00 PM", 0, false},
		{"0:00 AM", 0, false},
		{"9:75", 0, false},
		{"morning", 0, false},
		{"9a", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseHour(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseHour(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHourSlots(t *testing.T) {
	slots := HourSlots()
	if len(slots) != 24 {
		t.Fatalf("expected 24 slots, got %d", len(slots))
	}
	if slots[0] != "12:00 AM" || slots[12] != "12:00 PM" || slots[23] != "11:00 PM" {
		t.Fatalf("unexpected labels: %q %q %q", slots[0], slots[12], slots[23])
	}

	for h, label := range slots {
		got, ok := ParseHour(label)
		if !ok || got != h {
			t.Errorf("label %q parses to %d, %v; want %d", label, got, ok, h)
		}
	}
}

func TestParseClockMinutes(t *testing.T) {
	tests := map[string]int{
		"9:30":     9*60 + 30,
		"9:30 PM":  21*60 + 30,
		"12:15 am": 15,
		"23:59":    23*60 + 59,
	}
	for in, want := range tests {
		got, ok := ParseClock(in)
		if !ok || got != want {
			t.Errorf("ParseClock(%q) = %d, %v; want %d", in, got, ok, want)
		}
	}
}

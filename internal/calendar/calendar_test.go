package calendar_test

import (
	"testing"
	"time"

	"pact/internal/calendar"
)

func TestDayKey(t *testing.T) {
	got := calendar.DayKey(time.Date(2024, 1, 10, 23, 15, 0, 0, time.UTC))
	if got != "2024-01-10" {
		t.Fatalf("expected 2024-01-10, got %s", got)
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2024-01-10", "2024-01-08"}, // Wednesday -> preceding Monday
		{"2024-01-08", "2024-01-08"}, // Monday -> itself
		{"2024-01-14", "2024-01-08"}, // Sunday belongs to the week before
		{"2024-03-01", "2024-02-26"}, // month boundary
		{"2024-01-01", "2024-01-01"}, // year starts on a Monday
	}
	for _, c := range cases {
		if got := calendar.WeekStart(c.day); got != c.want {
			t.Fatalf("WeekStart(%s): expected %s, got %s", c.day, c.want, got)
		}
	}
}

func TestShiftDays(t *testing.T) {
	if got := calendar.ShiftDays("2024-02-28", 2); got != "2024-03-01" {
		t.Fatalf("leap-year shift: expected 2024-03-01, got %s", got)
	}
	if got := calendar.ShiftDays("2024-01-01", -1); got != "2023-12-31" {
		t.Fatalf("negative shift: expected 2023-12-31, got %s", got)
	}
	if got := calendar.ShiftDays("2024-01-10", 0); got != "2024-01-10" {
		t.Fatalf("zero shift: expected identity, got %s", got)
	}
}

func TestWeekDays(t *testing.T) {
	days := calendar.WeekDays("2024-01-08")
	want := [7]string{
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11",
		"2024-01-12", "2024-01-13", "2024-01-14",
	}
	if days != want {
		t.Fatalf("expected %v, got %v", want, days)
	}
}

func TestWeekdayIndex(t *testing.T) {
	if got := calendar.WeekdayIndex("2024-01-08"); got != 0 {
		t.Fatalf("Monday: expected index 0, got %d", got)
	}
	if got := calendar.WeekdayIndex("2024-01-14"); got != 6 {
		t.Fatalf("Sunday: expected index 6, got %d", got)
	}
}

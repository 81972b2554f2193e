package timeutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{"sunday belongs to previous iso year", date(2023, 1, 1), 52},
		{"first monday", date(2023, 1, 2), 1},
		{"mid year", date(2023, 6, 15), 24},
		{"week 53", date(2020, 12, 31), 53},
		{"jan 1 in week 53", date(2021, 1, 1), 53},
		{"dec 31 in week 1", date(2024, 12, 30), 1},
		{"thursday jan 1", date(2015, 1, 1), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekNumber(tc.in); got != tc.want {
				t.Fatalf("WeekNumber(%s) = %d, want %d", FormatDate(tc.in), got, tc.want)
			}
		})
	}
}

func TestWeekNumberMatchesISOWeek(t *testing.T) {
	d := date(2019, 12, 1)
	for i := 0; i < 800; i++ {
		_, want := d.ISOWeek()
		if got := WeekNumber(d); got != want {
			t.Fatalf("WeekNumber(%s) = %d, want %d", FormatDate(d), got, want)
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		unit Unit
		in   time.Time
		want time.Time
	}{
		{UnitDay, date(2023, 12, 31), date(2024, 1, 1)},
		{UnitWeek, date(2023, 12, 31), date(2024, 1, 7)},
		{UnitMonth, date(2023, 11, 1), date(2023, 12, 1)},
		{UnitMonth, date(2023, 12, 15), date(2024, 1, 15)},
		{UnitYear, date(2023, 1, 1), date(2024, 1, 1)},
	}
	for _, tc := range tests {
		if got := Step(tc.in, tc.unit); !got.Equal(tc.want) {
			t.Errorf("Step(%s, %d) = %s, want %s", FormatDate(tc.in), tc.unit, FormatDate(got), FormatDate(tc.want))
		}
	}
}

func TestStartOf(t *testing.T) {
	tests := []struct {
		unit Unit
		in   time.Time
		want time.Time
	}{
		{UnitDay, date(2023, 11, 15), date(2023, 11, 15)},
		{UnitWeek, date(2023, 11, 15), date(2023, 11, 12)},
		{UnitWeek, date(2023, 11, 12), date(2023, 11, 12)},
		{UnitWeek, date(2024, 1, 3), date(2023, 12, 31)},
		{UnitMonth, date(2023, 11, 15), date(2023, 11, 1)},
		{UnitYear, date(2023, 11, 15), date(2023, 1, 1)},
	}
	for _, tc := range tests {
		if got := StartOf(tc.in, tc.unit); !got.Equal(tc.want) {
			t.Errorf("StartOf(%s, %d) = %s, want %s", FormatDate(tc.in), tc.unit, FormatDate(got), FormatDate(tc.want))
		}
	}
}

func TestDayDropsClock(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	in := time.Date(2023, 11, 1, 3, 30, 0, 0, loc)
	if got := Day(in); !got.Equal(date(2023, 11, 1)) {
		t.Fatalf("Day() = %v", got)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2023-11-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(2023, 11, 5)) {
		t.Fatalf("ParseDate() = %v", got)
	}
	if _, err := ParseDate("11/05/2023"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

package schedule

import (
	"testing"
	"time"

	"shift-leave-bot/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCalendar() *Calendar {
	anchor := date(2024, 1, 4)
	return NewCalendar(anchor, anchor)
}

func TestRedWorkdaysAroundAnchor(t *testing.T) {
	cal := testCalendar()

	for d := 4; d <= 7; d++ {
		if !cal.IsWorkday(models.ShiftRed, date(2024, 1, d)) {
			t.Errorf("expected 2024-01-%02d to be a Red workday", d)
		}
	}
	for d := 8; d <= 11; d++ {
		if cal.IsWorkday(models.ShiftRed, date(2024, 1, d)) {
			t.Errorf("expected 2024-01-%02d to be a Red day off", d)
		}
	}
}

func TestBlueYellowComplementsRedGreenOnSharedAnchor(t *testing.T) {
	cal := testCalendar()

	start := date(2023, 11, 1)
	for i := 0; i < 120; i++ {
		d := start.AddDate(0, 0, i)
		if cal.IsWorkday(models.ShiftRed, d) == cal.IsWorkday(models.ShiftBlue, d) {
			t.Fatalf("%s: Red and Blue should not work the same day", d.Format(models.DateLayout))
		}
	}
}

func TestCyclePeriodicity(t *testing.T) {
	cal := NewCalendar(date(2024, 1, 4), date(2024, 1, 6))

	start := date(2019, 3, 10)
	for i := 0; i < 3000; i += 7 {
		d := start.AddDate(0, 0, i)
		for _, shift := range models.AllShifts() {
			if cal.IsWorkday(shift, d) != cal.IsWorkday(shift, d.AddDate(0, 0, CycleLength)) {
				t.Fatalf("%s %s: workday differs after one cycle", shift, d.Format(models.DateLayout))
			}
		}
	}
}

func TestShiftsInGroupAgree(t *testing.T) {
	cal := NewCalendar(date(2024, 1, 4), date(2024, 2, 1))

	start := date(2023, 12, 1)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		if cal.IsWorkday(models.ShiftRed, d) != cal.IsWorkday(models.ShiftGreen, d) {
			t.Fatalf("%s: Red and Green disagree", d.Format(models.DateLayout))
		}
		if cal.IsWorkday(models.ShiftBlue, d) != cal.IsWorkday(models.ShiftYellow, d) {
			t.Fatalf("%s: Blue and Yellow disagree", d.Format(models.DateLayout))
		}
	}
}

func TestFourWorkdaysPerCycle(t *testing.T) {
	cal := NewCalendar(date(2024, 1, 4), date(2024, 1, 9))

	for _, shift := range models.AllShifts() {
		dates, err := ExpandRange(date(2025, 6, 3), date(2025, 6, 10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cal.CountWorkdays(shift, dates); got != WorkdaysPerCycle {
			t.Errorf("%s: expected %d workdays per cycle, got %d", shift, WorkdaysPerCycle, got)
		}
	}
}

func TestCycleDayBeforeAnchorIsFloored(t *testing.T) {
	anchor := date(2024, 1, 4)

	tests := []struct {
		day  time.Time
		want int
	}{
		{date(2024, 1, 3), 7},
		{date(2023, 12, 31), 4},
		{date(2023, 12, 27), 0},
		{date(2024, 1, 12), 0},
	}

	for _, tt := range tests {
		if got := CycleDay(anchor, tt.day); got != tt.want {
			t.Errorf("CycleDay(%s) = %d, want %d", tt.day.Format(models.DateLayout), got, tt.want)
		}
	}

	cal := testCalendar()
	if cal.IsWorkday(models.ShiftRed, date(2024, 1, 3)) {
		t.Error("expected 2024-01-03 (cycle day 7) to be a Red day off")
	}
	if !cal.IsWorkday(models.ShiftRed, date(2023, 12, 27)) {
		t.Error("expected 2023-12-27 (cycle day 0) to be a Red workday")
	}
}

func TestUnknownShiftNeverWorks(t *testing.T) {
	cal := testCalendar()

	for i := 0; i < CycleLength; i++ {
		if cal.IsWorkday(models.ParseShift("purple"), date(2024, 1, 4).AddDate(0, 0, i)) {
			t.Fatal("unknown shift must not have workdays")
		}
	}
}

func TestIsWorkdayIgnoresTimeOfDayAndZone(t *testing.T) {
	cal := testCalendar()

	loc := time.FixedZone("UTC+11", 11*60*60)
	lateEvening := time.Date(2024, 1, 7, 23, 30, 0, 0, loc)
	if !cal.IsWorkday(models.ShiftRed, lateEvening) {
		t.Error("expected the calendar date 2024-01-07 to be a Red workday regardless of zone")
	}
}

func TestFarDatesKeepCycle(t *testing.T) {
	cal := testCalendar()

	// 400 григорианских лет - ровно 146097 дней
	if got := DaysBetween(date(2024, 1, 4), date(2424, 1, 4)); got != 146097 {
		t.Errorf("DaysBetween over 400 years = %d, want 146097", got)
	}
	if got := DaysBetween(date(2024, 1, 4), date(1624, 1, 4)); got != -146097 {
		t.Errorf("DaysBetween 400 years back = %d, want -146097", got)
	}

	for _, start := range []time.Time{date(1700, 3, 1), date(2400, 3, 1), date(9000, 7, 15)} {
		dates, err := ExpandRange(start, start.AddDate(0, 0, CycleLength-1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, shift := range models.AllShifts() {
			if got := cal.CountWorkdays(shift, dates); got != WorkdaysPerCycle {
				t.Errorf("%s from %d: expected %d workdays in a cycle, got %d", shift, start.Year(), WorkdaysPerCycle, got)
			}
			if cal.IsWorkday(shift, start) != cal.IsWorkday(shift, start.AddDate(0, 0, CycleLength)) {
				t.Errorf("%s from %d: workday differs after one cycle", shift, start.Year())
			}
		}
	}
}

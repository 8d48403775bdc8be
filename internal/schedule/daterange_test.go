package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestExpandRange(t *testing.T) {
	start := date(2024, 2, 27)
	end := date(2024, 3, 2)

	dates, err := ExpandRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DaysBetween(start, end) + 1
	if len(dates) != want {
		t.Fatalf("expected %d dates, got %d", want, len(dates))
	}
	if len(dates) != 5 {
		t.Fatalf("expected 5 dates across the leap day, got %d", len(dates))
	}
	if !dates[0].Equal(start) || !dates[len(dates)-1].Equal(end) {
		t.Fatalf("range must include both ends, got %v..%v", dates[0], dates[len(dates)-1])
	}
	for i := 1; i < len(dates); i++ {
		if DaysBetween(dates[i-1], dates[i]) != 1 {
			t.Fatalf("gap between %v and %v", dates[i-1], dates[i])
		}
	}
}

func TestExpandRangeSingleDay(t *testing.T) {
	dates, err := ExpandRange(date(2024, 5, 1), date(2024, 5, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
}

func TestExpandRangeInvalid(t *testing.T) {
	_, err := ExpandRange(date(2024, 5, 2), date(2024, 5, 1))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestExpandRangeIsRestartable(t *testing.T) {
	start := time.Date(2024, 3, 30, 15, 0, 0, 0, time.Local)
	end := time.Date(2024, 4, 2, 8, 0, 0, 0, time.Local)

	first, err := ExpandRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ExpandRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) || len(first) != 4 {
		t.Fatalf("expected two identical 4-day ranges, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("date %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

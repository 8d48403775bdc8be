package handler

import (
	"strings"
	"testing"
	"time"

	"shift-leave-bot/internal/models"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"2024-01-04", "04.01.2024", "04-01-2024", "04.01", "04-01"} {
		got, err := parseDate(value, 2024)
		if err != nil {
			t.Fatalf("parseDate(%q): unexpected error: %v", value, err)
		}
		if !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", value, got, want)
		}
	}

	leap, err := parseDate("29.02", 2024)
	if err != nil || leap.Month() != time.February || leap.Day() != 29 {
		t.Errorf("expected 29 Feb 2024, got %v %v", leap, err)
	}

	if _, err := parseDate("4 Jan", 2024); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseLeaveArgs(t *testing.T) {
	shift, start, end, err := parseLeaveArgs("Red 04.01 11.01", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shift != "Red" || start.Day() != 4 || end.Day() != 11 {
		t.Errorf("unexpected result: %s %v %v", shift, start, end)
	}

	_, start, end, err = parseLeaveArgs("blue 2024-03-05", 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(end) {
		t.Errorf("single date must give a one-day range, got %v..%v", start, end)
	}

	for _, args := range []string{"", "Red", "Red 01.01 02.01 03.01", "Red 99.99"} {
		if _, _, _, err := parseLeaveArgs(args, 2024); err == nil {
			t.Errorf("parseLeaveArgs(%q): expected error", args)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	parts, err := splitArgs(" Jane Doe ; Red ", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parts[0] != "Jane Doe" || parts[1] != "Red" {
		t.Errorf("unexpected parts: %q", parts)
	}

	if _, err := splitArgs("Jane Doe", 2); err == nil {
		t.Error("expected error for missing value")
	}
	if _, err := splitArgs("Jane Doe; ", 2); err == nil {
		t.Error("expected error for blank value")
	}
}

func TestCancelCallbackRoundTrip(t *testing.T) {
	start := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC)

	data, err := cancelCallbackData(models.ShiftYellow, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) > 64 {
		t.Fatalf("callback data too long for Telegram: %d", len(data))
	}

	shift, gotStart, gotEnd, err := parseCancelCallback(strings.TrimPrefix(data, confirmCancelPrefix))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shift != models.ShiftYellow || !gotStart.Equal(start) || !gotEnd.Equal(end) {
		t.Errorf("unexpected round trip: %s %v %v", shift, gotStart, gotEnd)
	}

	if _, _, _, err := parseCancelCallback("Red_2024-01-04"); err == nil {
		t.Error("expected error for short callback")
	}
}

func TestCancelCallbackRejectsUnknownShift(t *testing.T) {
	start := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		shift string
	}{
		{"underscore", "Red_Team"},
		{"long junk", strings.Repeat("x", 80)},
		{"blank", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cancelCallbackData(models.ParseShift(tt.shift), start, start); err == nil {
				t.Error("expected error for unknown shift")
			}
		})
	}

	for _, shift := range models.AllShifts() {
		data, err := cancelCallbackData(shift, start, start)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", shift, err)
		}
		if len(data) > 64 {
			t.Errorf("%s: callback data too long: %d", shift, len(data))
		}
	}

	if _, _, _, err := parseCancelCallback("Purple_2024-01-04_2024-01-05"); err == nil {
		t.Error("expected error for unknown shift in callback")
	}
}

func TestFormatDecision(t *testing.T) {
	conflict := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	denied := &models.Decision{
		Outcome:      models.OutcomeDenied,
		Reason:       models.ReasonExceedsConcurrentLeaveCap,
		ConflictDate: &conflict,
	}
	if got := formatDecision(denied); !strings.Contains(got, "05.01.2024") {
		t.Errorf("expected conflict date in %q", got)
	}

	approved := &models.Decision{
		RequestID:   "req-1",
		Outcome:     models.OutcomeApproved,
		MarkedDates: []time.Time{conflict},
	}
	got := formatDecision(approved)
	if !strings.Contains(got, "Отмечено рабочих дней: 1") || !strings.Contains(got, "05.01") {
		t.Errorf("unexpected approval text: %q", got)
	}
}

func TestFormatCancelResult(t *testing.T) {
	if got := formatCancelResult(&models.CancelResult{}); !strings.Contains(got, "отменять нечего") {
		t.Errorf("unexpected text: %q", got)
	}

	denied := &models.CancelResult{Decision: &models.Decision{Reason: models.ReasonEmployeeNotFound}}
	if got := formatCancelResult(denied); !strings.Contains(got, "не найден") {
		t.Errorf("unexpected text: %q", got)
	}
}

package services

import (
	"testing"
	"time"
)

func TestNormalizeViewModeFallsBackToWeek(t *testing.T) {
	cases := []struct {
		raw  string
		want ViewMode
	}{
		{"day", ViewDay},
		{"WEEK", ViewWeek},
		{" month ", ViewMonth},
		{"list", ViewList},
		{"agenda", ViewWeek},
		{"", ViewWeek},
	}

	for _, testCase := range cases {
		if got := NormalizeViewMode(testCase.raw); got != testCase.want {
			t.Fatalf("NormalizeViewMode(%q) = %s, want %s", testCase.raw, got, testCase.want)
		}
	}
}

func TestRangeForWeekSpansMonthBoundary(t *testing.T) {
	// 2024-03-01 is a Friday; the Sunday-start week reaches back into February.
	anchor := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	window := RangeFor(ViewWeek, anchor, time.Sunday, time.UTC)

	if window.FromKey != "2024-02-25" {
		t.Fatalf("week FromKey = %s, want 2024-02-25", window.FromKey)
	}
	if window.ToKey != "2024-03-03" {
		t.Fatalf("week ToKey = %s, want 2024-03-03", window.ToKey)
	}
}

func TestRangeForDayIsSingleDay(t *testing.T) {
	anchor := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	window := RangeFor(ViewDay, anchor, time.Sunday, time.UTC)

	if window.FromKey != "2024-06-10" || window.ToKey != "2024-06-11" {
		t.Fatalf("day window = [%s, %s), want [2024-06-10, 2024-06-11)", window.FromKey, window.ToKey)
	}
}

func TestRangeForMonthAlwaysCoversSixWeeks(t *testing.T) {
	anchor := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)
	window := RangeFor(ViewMonth, anchor, time.Sunday, time.UTC)

	if window.FromKey != "2024-01-28" {
		t.Fatalf("month FromKey = %s, want 2024-01-28", window.FromKey)
	}
	if window.ToKey != "2024-03-10" {
		t.Fatalf("month ToKey = %s, want 2024-03-10", window.ToKey)
	}
	if days := int(window.To.Sub(window.From).Hours() / 24); days != 42 {
		t.Fatalf("month window spans %d days, want 42", days)
	}
}

func TestRangeForListCoversOneYearFromFirstOfMonth(t *testing.T) {
	anchor := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	window := RangeFor(ViewList, anchor, time.Sunday, time.UTC)

	if window.FromKey != "2024-06-01" || window.ToKey != "2025-06-01" {
		t.Fatalf("list window = [%s, %s), want [2024-06-01, 2025-06-01)", window.FromKey, window.ToKey)
	}
}

func TestViewRangeContainsIsHalfOpen(t *testing.T) {
	window := RangeFor(ViewWeek, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), time.Sunday, time.UTC)

	if !window.Contains("2024-02-25") {
		t.Fatalf("expected lower bound 2024-02-25 to be inside the window")
	}
	if !window.Contains("2024-03-02") {
		t.Fatalf("expected 2024-03-02 to be inside the window")
	}
	if window.Contains("2024-03-03") {
		t.Fatalf("expected upper bound 2024-03-03 to be excluded")
	}
	if window.Contains("2024-02-24") {
		t.Fatalf("expected 2024-02-24 to be outside the window")
	}
}

func TestAdjacentRangesAreContiguous(t *testing.T) {
	anchor := time.Date(2024, time.October, 26, 12, 0, 0, 0, time.UTC)

	for _, mode := range []ViewMode{ViewDay, ViewWeek} {
		current := RangeFor(mode, anchor, time.Sunday, time.UTC)
		next := RangeFor(mode, ShiftAnchor(mode, anchor, 1, time.UTC), time.Sunday, time.UTC)

		if current.ToKey != next.FromKey {
			t.Fatalf("%s windows leave a gap: current ends %s, next starts %s", mode, current.ToKey, next.FromKey)
		}
	}
}

func TestShiftAnchorRoundTripRestoresWindow(t *testing.T) {
	// Jan 31 is the day-of-month overflow trap for naive month arithmetic.
	anchor := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)

	for _, mode := range []ViewMode{ViewDay, ViewWeek, ViewMonth, ViewList} {
		forward := ShiftAnchor(mode, anchor, 1, time.UTC)
		back := ShiftAnchor(mode, forward, -1, time.UTC)

		original := RangeFor(mode, anchor, time.Sunday, time.UTC)
		restored := RangeFor(mode, back, time.Sunday, time.UTC)

		if original.FromKey != restored.FromKey || original.ToKey != restored.ToKey {
			t.Fatalf("%s shift round trip changed window: [%s, %s) became [%s, %s)",
				mode, original.FromKey, original.ToKey, restored.FromKey, restored.ToKey)
		}
	}
}

func TestShiftAnchorMonthFromJanThirtyFirstLandsInFebruary(t *testing.T) {
	anchor := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	shifted := ShiftAnchor(ViewMonth, anchor, 1, time.UTC)

	if got := shifted.Format(DateKeyLayout); got != "2024-02-01" {
		t.Fatalf("ShiftAnchor month +1 from Jan 31 = %s, want 2024-02-01", got)
	}
}

func TestShiftAnchorWeekMovesSevenDays(t *testing.T) {
	anchor := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	shifted := ShiftAnchor(ViewWeek, anchor, -1, time.UTC)

	if got := shifted.Format(DateKeyLayout); got != "2024-06-03" {
		t.Fatalf("ShiftAnchor week -1 = %s, want 2024-06-03", got)
	}
}

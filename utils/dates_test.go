package utils

import (
	"testing"
	"time"
)

func TestDateOnlyDropsClockAndZone(t *testing.T) {
	colombo := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2026, 6, 2, 23, 45, 12, 999, colombo)

	got := DateOnly(in)
	want := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}

func TestNightsBetween(t *testing.T) {
	checkIn := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		checkOut time.Time
		want     int
	}{
		{checkIn.AddDate(0, 0, 1), 1},
		{checkIn.AddDate(0, 0, 7), 7},
		{checkIn, 0},
		{checkIn.AddDate(0, 0, -1), 0},
	}
	for _, c := range cases {
		if got := NightsBetween(checkIn, c.checkOut); got != c.want {
			t.Errorf("NightsBetween(%v, %v) = %d, want %d", checkIn, c.checkOut, got, c.want)
		}
	}
}

func TestEachNightExcludesCheckout(t *testing.T) {
	checkIn := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)

	nights := EachNight(checkIn, checkOut)
	if len(nights) != 3 {
		t.Fatalf("expected 3 nights, got %d", len(nights))
	}
	if !nights[0].Equal(checkIn) {
		t.Errorf("first night = %v, want %v", nights[0], checkIn)
	}
	last := checkOut.AddDate(0, 0, -1)
	if !nights[2].Equal(last) {
		t.Errorf("last night = %v, want %v", nights[2], last)
	}
}

func TestEachDayInclusiveKeepsEndDay(t *testing.T) {
	start := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	days := EachDayInclusive(start, end)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if !days[2].Equal(end) {
		t.Errorf("last day = %v, want %v", days[2], end)
	}

	if got := EachDayInclusive(start, start); len(got) != 1 {
		t.Errorf("single-day range should yield 1 day, got %d", len(got))
	}
}

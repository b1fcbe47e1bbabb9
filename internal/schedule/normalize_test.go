package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_FixedOffset(t *testing.T) {
	// 14:00 локального при UTC+5 — это 09:00 UTC того же дня.
	got, err := Normalize(date(2024, time.January, 1), "14:00", 5)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ожидали %v, получили %v", want, got)
	}
}

func TestNormalize_RollsToPreviousUTCDay(t *testing.T) {
	// 02:00 локального уходит в 21:00 предыдущих суток UTC — так и задумано.
	got, err := Normalize(date(2024, time.January, 1), "02:00", 5)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2023, time.December, 31, 21, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ожидали %v, получили %v", want, got)
	}
}

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{"09:00", 9, 0, false},
		{"23:59", 23, 59, false},
		{"0:5", 0, 5, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"-1:00", 0, 0, true},
		{"12", 0, 0, true},
		{"ab:cd", 0, 0, true},
	}
	for _, c := range cases {
		h, m, err := ParseHHMM(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("%q: ожидали ошибку", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if h != c.h || m != c.m {
			t.Errorf("%q: получили %d:%d", c.in, h, m)
		}
	}
}

func TestWeekBounds_MondayStart(t *testing.T) {
	// Среда 2024-01-10 → неделя 2024-01-08 … 2024-01-14.
	from, to := WeekBounds(time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC))
	if !from.Equal(date(2024, time.January, 8)) {
		t.Fatalf("начало недели: %v", from)
	}
	if to.Before(time.Date(2024, time.January, 14, 23, 59, 0, 0, time.UTC)) || !to.Before(date(2024, time.January, 15)) {
		t.Fatalf("конец недели: %v", to)
	}

	// Воскресенье относится к уходящей неделе, а не открывает новую.
	from2, _ := WeekBounds(date(2024, time.January, 14))
	if !from2.Equal(date(2024, time.January, 8)) {
		t.Fatalf("начало недели для воскресенья: %v", from2)
	}
}

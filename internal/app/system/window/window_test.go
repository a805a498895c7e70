package window_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"go.mongodb.org/mongo-driver/bson"
)

var now = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func assertStart(t *testing.T, w window.Window, want time.Time) {
	t.Helper()
	if w.Start == nil {
		t.Fatalf("Start: got nil, want %v", want)
	}
	if !w.Start.Equal(want) {
		t.Errorf("Start: got %v, want %v", *w.Start, want)
	}
}

func assertEnd(t *testing.T, w window.Window, want time.Time) {
	t.Helper()
	if w.End == nil {
		t.Fatalf("End: got nil, want %v", want)
	}
	if !w.End.Equal(want) {
		t.Errorf("End: got %v, want %v", *w.End, want)
	}
}

func TestFull_IsUnbounded(t *testing.T) {
	w := window.Full()
	if !w.IsFull() {
		t.Error("expected Full() to be unbounded")
	}
	if !w.Contains(time.Time{}) || !w.Contains(now.AddDate(100, 0, 0)) {
		t.Error("expected Full() to contain every instant")
	}
}

func TestContains_BoundsInclusive(t *testing.T) {
	start := now.AddDate(0, -1, 0)
	w := window.Between(start, now)

	tests := []struct {
		at   time.Time
		want bool
	}{
		{start, true},
		{now, true},
		{start.Add(-time.Millisecond), false},
		{now.Add(time.Millisecond), false},
	}
	for _, tt := range tests {
		if got := w.Contains(tt.at); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestTrailingMonths(t *testing.T) {
	w := window.TrailingMonths(now, 6)
	assertStart(t, w, time.Date(2023, time.December, 15, 10, 30, 0, 0, time.UTC))
	assertEnd(t, w, now)
}

func TestFromTimeline(t *testing.T) {
	tests := []struct {
		in        string
		full      bool
		wantStart time.Time
	}{
		{"", true, time.Time{}},
		{"full", true, time.Time{}},
		{"FULL", true, time.Time{}},
		{"6months", false, now.AddDate(0, -6, 0)},
		{"amonth", false, now.AddDate(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, err := window.FromTimeline(tt.in, now)
			if err != nil {
				t.Fatalf("FromTimeline(%q) failed: %v", tt.in, err)
			}
			if w.IsFull() != tt.full {
				t.Fatalf("IsFull: got %v, want %v", w.IsFull(), tt.full)
			}
			if !tt.full {
				assertStart(t, w, tt.wantStart)
				assertEnd(t, w, now)
			}
		})
	}
}

func TestFromTimeline_Invalid(t *testing.T) {
	if _, err := window.FromTimeline("fortnight", now); !errors.Is(err, window.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
}

func TestFromPeriod(t *testing.T) {
	for _, s := range []string{"all_time", "all", ""} {
		w, err := window.FromPeriod(s, now)
		if err != nil {
			t.Fatalf("FromPeriod(%q) failed: %v", s, err)
		}
		if !w.IsFull() {
			t.Errorf("FromPeriod(%q): expected full window", s)
		}
	}

	w, err := window.FromPeriod("year", now)
	if err != nil {
		t.Fatalf("FromPeriod(year) failed: %v", err)
	}
	assertStart(t, w, now.AddDate(-1, 0, 0))

	w, err = window.FromPeriod("week", now)
	if err != nil {
		t.Fatalf("FromPeriod(week) failed: %v", err)
	}
	assertStart(t, w, now.AddDate(0, 0, -7))

	if _, err := window.FromPeriod("decade", now); !errors.Is(err, window.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
}

func TestFromDates_EndOfDayNormalization(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	w, err := window.FromDates("2024-02-01", "2024-02-29", loc)
	if err != nil {
		t.Fatalf("FromDates failed: %v", err)
	}

	lastMilli := time.Date(2024, time.February, 29, 23, 59, 59, 999000000, loc)
	assertStart(t, w, time.Date(2024, time.February, 1, 0, 0, 0, 0, loc))
	assertEnd(t, w, lastMilli)
	if !w.Contains(lastMilli) {
		t.Error("expected the last millisecond of the end day to be inside the window")
	}
}

func TestFromDates_OpenBounds(t *testing.T) {
	w, err := window.FromDates("", "2024-03-01", time.UTC)
	if err != nil {
		t.Fatalf("FromDates failed: %v", err)
	}
	if w.Start != nil || w.End == nil {
		t.Errorf("expected only an end bound, got %s", w)
	}

	w, err = window.FromDates("2024-03-01", "", time.UTC)
	if err != nil {
		t.Fatalf("FromDates failed: %v", err)
	}
	if w.Start == nil || w.End != nil {
		t.Errorf("expected only a start bound, got %s", w)
	}
}

func TestFromDates_Invalid(t *testing.T) {
	tests := []struct{ start, end string }{
		{"03/01/2024", ""},
		{"2024-03-02", "2024-03-01"},
	}
	for _, tt := range tests {
		if _, err := window.FromDates(tt.start, tt.end, time.UTC); !errors.Is(err, window.ErrInvalidParam) {
			t.Errorf("FromDates(%q, %q): expected ErrInvalidParam, got %v", tt.start, tt.end, err)
		}
	}
}

func TestFromParams_Precedence(t *testing.T) {
	w, err := window.FromParams(window.Params{Timeline: "6months", Period: "week", StartDate: "2024-01-01"}, now, time.UTC)
	if err != nil {
		t.Fatalf("FromParams failed: %v", err)
	}
	assertStart(t, w, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if w.End != nil {
		t.Errorf("expected open end, got %v", *w.End)
	}

	w, err = window.FromParams(window.Params{Timeline: "6months", Period: "week"}, now, time.UTC)
	if err != nil {
		t.Fatalf("FromParams failed: %v", err)
	}
	assertStart(t, w, now.AddDate(0, 0, -7))

	w, err = window.FromParams(window.Params{Timeline: "amonth"}, now, time.UTC)
	if err != nil {
		t.Fatalf("FromParams failed: %v", err)
	}
	assertStart(t, w, now.AddDate(0, -1, 0))
}

func TestApply(t *testing.T) {
	f := window.Full().Apply(bson.M{"referrer_id": 1}, "created_at")
	if _, ok := f["created_at"]; ok {
		t.Error("full window should not add a created_at condition")
	}

	start := now.AddDate(0, -1, 0)
	f = window.Between(start, now).Apply(bson.M{}, "created_at")
	if want := (bson.M{"$gte": start, "$lte": now}); !reflect.DeepEqual(f["created_at"], want) {
		t.Errorf("bounded: got %v, want %v", f["created_at"], want)
	}

	f = window.Since(start).Apply(bson.M{}, "created_at")
	if want := (bson.M{"$gte": start}); !reflect.DeepEqual(f["created_at"], want) {
		t.Errorf("since: got %v, want %v", f["created_at"], want)
	}
}

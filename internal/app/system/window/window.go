// Package window models the optional, inclusive time ranges used to scope
// activity queries, and parses them from request parameters.
//
// A Window has an optional start and an optional end. Both bounds are
// inclusive. The zero Window is "full history".
package window

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrInvalidParam is wrapped by every parse error in this package.
var ErrInvalidParam = errors.New("invalid window parameter")

// Window is an inclusive [Start, End] range; a nil bound is open.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Full is the unbounded window.
func Full() Window { return Window{} }

// Between returns the closed window [start, end].
func Between(start, end time.Time) Window {
	return Window{Start: &start, End: &end}
}

// Since returns [start, +inf).
func Since(start time.Time) Window { return Window{Start: &start} }

// TrailingMonths returns [now - n months, now].
func TrailingMonths(now time.Time, n int) Window {
	return Between(now.AddDate(0, -n, 0), now)
}

// IsFull reports whether neither bound is set.
func (w Window) IsFull() bool { return w.Start == nil && w.End == nil }

// Contains reports whether t falls inside w (bounds inclusive).
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Apply adds a range condition on field to filter when w is bounded.
// The filter is modified in place and returned for chaining.
func (w Window) Apply(filter bson.M, field string) bson.M {
	if w.IsFull() {
		return filter
	}
	cond := bson.M{}
	if w.Start != nil {
		cond["$gte"] = *w.Start
	}
	if w.End != nil {
		cond["$lte"] = *w.End
	}
	filter[field] = cond
	return filter
}

func (w Window) String() string {
	f := func(t *time.Time) string {
		if t == nil {
			return "*"
		}
		return t.Format(time.RFC3339)
	}
	return "[" + f(w.Start) + ", " + f(w.End) + "]"
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59.999 of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

// Timeline values accepted by FromTimeline.
const (
	TimelineFull     = "full"
	TimelineSixMonth = "6months"
	TimelineMonth    = "amonth"
)

// FromTimeline maps the "timeline" parameter. Empty means full.
func FromTimeline(s string, now time.Time) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", TimelineFull:
		return Full(), nil
	case TimelineSixMonth:
		return TrailingMonths(now, 6), nil
	case TimelineMonth:
		return TrailingMonths(now, 1), nil
	}
	return Window{}, fmt.Errorf("%w: timeline %q", ErrInvalidParam, s)
}

// FromPeriod maps the "time" parameter (all_time|all|year|month|week).
// Periods are trailing: "year" is the last 12 months up to now.
func FromPeriod(s string, now time.Time) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all_time", "all":
		return Full(), nil
	case "year":
		return Between(now.AddDate(-1, 0, 0), now), nil
	case "month":
		return TrailingMonths(now, 1), nil
	case "week":
		return Between(now.AddDate(0, 0, -7), now), nil
	}
	return Window{}, fmt.Errorf("%w: time %q", ErrInvalidParam, s)
}

// FromDates builds a window from ISO date strings (YYYY-MM-DD or RFC 3339).
// Either may be empty. The start snaps to the beginning of its day and the
// end to 23:59:59.999 of its day, both in loc.
func FromDates(start, end string, loc *time.Location) (Window, error) {
	var w Window
	if s := strings.TrimSpace(start); s != "" {
		t, err := parseDate(s, loc)
		if err != nil {
			return Window{}, fmt.Errorf("%w: startDate %q", ErrInvalidParam, start)
		}
		t = StartOfDay(t, loc)
		w.Start = &t
	}
	if e := strings.TrimSpace(end); e != "" {
		t, err := parseDate(e, loc)
		if err != nil {
			return Window{}, fmt.Errorf("%w: endDate %q", ErrInvalidParam, end)
		}
		t = EndOfDay(t, loc)
		w.End = &t
	}
	if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return Window{}, fmt.Errorf("%w: startDate after endDate", ErrInvalidParam)
	}
	return w, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Params are the raw window-related query parameters of a request.
type Params struct {
	Timeline  string
	Period    string
	StartDate string
	EndDate   string
}

// FromParams picks the most specific window the parameters describe:
// explicit dates, then period, then timeline.
func FromParams(p Params, now time.Time, loc *time.Location) (Window, error) {
	if strings.TrimSpace(p.StartDate) != "" || strings.TrimSpace(p.EndDate) != "" {
		return FromDates(p.StartDate, p.EndDate, loc)
	}
	if strings.TrimSpace(p.Period) != "" {
		return FromPeriod(p.Period, now)
	}
	return FromTimeline(p.Timeline, now)
}

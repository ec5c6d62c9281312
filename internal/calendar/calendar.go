// Package calendar computes half-open time windows ([Start, End)) for
// calendar days, weeks and months in a business timezone. Bounds are
// returned in that timezone; callers convert to UTC before querying.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DateLayout is the wire format of calendar dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// UTC returns the window with both bounds in UTC.
func (w Window) UTC() Window {
	return Window{Start: w.Start.UTC(), End: w.End.UTC()}
}

// Calendar binds window arithmetic to one location.
type Calendar struct {
	loc *time.Location
	cfg *now.Config
}

func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{
		loc: loc,
		cfg: &now.Config{WeekStartDay: time.Sunday, TimeLocation: loc},
	}
}

func (c *Calendar) Location() *time.Location { return c.loc }

// ParseDate parses YYYY-MM-DD as a calendar date in the business timezone.
func (c *Calendar) ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}

// ParseDateTime accepts RFC 3339 timestamps or a bare YYYY-MM-DD, which is
// taken as the start of that day in the business timezone.
func (c *Calendar) ParseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	d, err := c.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q, expected RFC 3339 or YYYY-MM-DD", raw)
	}
	return c.dayStart(d), nil
}

// Day returns the window of the calendar day containing t.
func (c *Calendar) Day(t time.Time) Window {
	start := c.dayStart(t)
	y, m, d := start.Date()
	return Window{Start: start, End: time.Date(y, m, d+1, 0, 0, 0, 0, c.loc)}
}

// DayOf parses a YYYY-MM-DD string and returns that day's window.
func (c *Calendar) DayOf(raw string) (Window, error) {
	d, err := c.ParseDate(raw)
	if err != nil {
		return Window{}, err
	}
	return c.Day(d), nil
}

// PreviousWeek returns the Sunday-to-Sunday week before the one containing t.
func (c *Calendar) PreviousWeek(t time.Time) Window {
	current := c.cfg.With(t.In(c.loc)).BeginningOfWeek()
	y, m, d := current.Date()
	return Window{Start: time.Date(y, m, d-7, 0, 0, 0, 0, c.loc), End: current}
}

// Month returns the calendar month containing t.
func (c *Calendar) Month(t time.Time) Window {
	start := c.cfg.With(t.In(c.loc)).BeginningOfMonth()
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// DateKey formats t as YYYY-MM-DD in the business timezone.
func (c *Calendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

func (c *Calendar) dayStart(t time.Time) time.Time {
	return c.cfg.With(t.In(c.loc)).BeginningOfDay()
}

// Package clock isolates wall-clock and timezone handling so services
// can be tested against a fixed instant. Dates are civil dates in the
// home timezone, formatted as YYYY-MM-DD.
package clock

import "time"

const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
	Today() string
	DateOf(t time.Time) string
}

type realClock struct {
	loc *time.Location
}

// New builds a clock pinned to the given IANA timezone name.
func New(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &realClock{loc: loc}, nil
}

func (c *realClock) Now() time.Time { return time.Now().In(c.loc) }

func (c *realClock) Today() string { return c.Now().Format(DateLayout) }

func (c *realClock) DateOf(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock frozen at the given instant, for tests.
func NewFixed(now time.Time) Clock {
	return &fixedClock{now: now}
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Today() string { return c.now.Format(DateLayout) }

func (c *fixedClock) DateOf(t time.Time) string {
	return t.In(c.now.Location()).Format(DateLayout)
}

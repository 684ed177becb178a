// Package clock supplies the relay's notion of "now" and the wire format of
// its timestamps.
package clock

import "time"

// Layout is ISO-8601 in UTC with microsecond precision and an explicit Z.
const Layout = "2006-01-02T15:04:05.000000Z"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Func adapts a plain function, mostly for tests that need a fixed instant.
type Func func() time.Time

func (f Func) Now() time.Time { return f().UTC() }

// Format renders t in UTC using Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Stamp is Format(c.Now()).
func Stamp(c Clock) string {
	return Format(c.Now())
}

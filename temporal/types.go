package temporal

import (
	"encoding"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-sql/civil"
)

// Text layouts used by the value types below.
const (
	OffsetDateTimeLayout = time.RFC3339Nano
	OffsetDateLayout     = "2006-01-02Z07:00"
	OffsetTimeLayout     = "15:04:05.999999999Z07:00"
	OffsetLayout         = "Z07:00"
)

// OffsetDateTime is a date and time with a fixed offset from UTC but no
// time zone rules.
type OffsetDateTime struct {
	time.Time
}

func (t OffsetDateTime) MarshalText() ([]byte, error) {
	return []byte(t.Format(OffsetDateTimeLayout)), nil
}

// MarshalJSON shadows the promoted time.Time method.
func (t OffsetDateTime) MarshalJSON() ([]byte, error) {
	return textJSON(t)
}

// OffsetDate returns the date part with its offset.
func (t OffsetDateTime) OffsetDate() OffsetDate {
	return OffsetDate{Date: civil.DateOf(t.Time), Offset: t.Offset()}
}

// OffsetTime returns the time of day with its offset.
func (t OffsetDateTime) OffsetTime() OffsetTime {
	return OffsetTime{Time: civil.TimeOf(t.Time), Offset: t.Offset()}
}

// Offset returns the offset from UTC.
func (t OffsetDateTime) Offset() Offset {
	_, sec := t.Zone()
	return Offset{Seconds: sec}
}

// OffsetDate is a calendar date with an offset from UTC.
type OffsetDate struct {
	Date   civil.Date
	Offset Offset
}

func (d OffsetDate) MarshalText() ([]byte, error) {
	return []byte(d.Date.In(d.Offset.Location()).Format(OffsetDateLayout)), nil
}

// OffsetTime is a time of day with an offset from UTC.
type OffsetTime struct {
	Time   civil.Time
	Offset Offset
}

func (t OffsetTime) MarshalText() ([]byte, error) {
	at := time.Date(2000, time.January, 1, t.Time.Hour, t.Time.Minute, t.Time.Second, t.Time.Nanosecond, t.Offset.Location())
	return []byte(at.Format(OffsetTimeLayout)), nil
}

// Offset is a fixed difference from UTC, in seconds.
type Offset struct {
	Seconds int
}

// Location returns a fixed zone for the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone("", o.Seconds)
}

func (o Offset) MarshalText() ([]byte, error) {
	return []byte(time.Unix(0, 0).In(o.Location()).Format(OffsetLayout)), nil
}

// ZonedDateTime is a date and time in a named time zone.
type ZonedDateTime struct {
	time.Time
}

func (t ZonedDateTime) MarshalText() ([]byte, error) {
	return []byte(t.Format(OffsetDateTimeLayout) + " " + t.Location().String()), nil
}

// MarshalJSON shadows the promoted time.Time method.
func (t ZonedDateTime) MarshalJSON() ([]byte, error) {
	return textJSON(t)
}

// OffsetDateTime drops the zone rules and keeps the current offset.
func (t ZonedDateTime) OffsetDateTime() OffsetDateTime {
	_, sec := t.Zone()
	return OffsetDateTime{Time: t.In(time.FixedZone("", sec))}
}

// Zone is a named time zone.
type Zone struct {
	*time.Location
}

func (z Zone) MarshalText() ([]byte, error) {
	if z.Location == nil {
		return []byte(time.UTC.String()), nil
	}
	return []byte(z.Location.String()), nil
}

func textJSON(m encoding.TextMarshaler) ([]byte, error) {
	b, err := m.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(b))
}

// Interval is the span between two instants. It serializes as an object
// with Start and End members.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns the interval [start, end). It panics if end is before
// start.
func NewInterval(start, end time.Time) Interval {
	if end.Before(start) {
		panic(fmt.Sprintf("temporal: interval end %s before start %s", end, start))
	}
	return Interval{Start: start, End: end}
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// DateInterval is an inclusive range of calendar dates. It serializes as an
// object with Start and End members.
type DateInterval struct {
	Start civil.Date
	End   civil.Date
}

// NewDateInterval returns the range [start, end]. It panics if end is
// before start.
func NewDateInterval(start, end civil.Date) DateInterval {
	if end.Before(start) {
		panic(fmt.Sprintf("temporal: date interval end %s before start %s", end, start))
	}
	return DateInterval{Start: start, End: end}
}

// Days returns the number of dates in the range.
func (d DateInterval) Days() int {
	return d.End.DaysSince(d.Start) + 1
}

package temporal

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-sql/civil"
	"github.com/rickb777/date/period"

	"github.com/Gobd/openapix"
)

// ErrNilDependency is returned when a required collaborator is nil.
var ErrNilDependency = errors.New("temporal: required dependency is nil")

// Formats used for temporal schemas.
const (
	FormatDate     = "date"
	FormatTime     = "time"
	FormatDateTime = "date-time"
	FormatInt64    = "int64"
)

// Option configures [Configure].
type Option func(*config)

type config struct {
	zones     ZoneProvider
	marshaler openapix.Marshaler
	now       func() time.Time
}

// WithZoneProvider sets the zone source. The default is [TZDB].
func WithZoneProvider(z ZoneProvider) Option {
	return func(c *config) { c.zones = z }
}

// WithMarshaler sets the serializer for example values. The default is the
// marshaler of the Options being configured.
func WithMarshaler(m openapix.Marshaler) Option {
	return func(c *config) { c.marshaler = m }
}

// WithClock sets the source of the sample instant. The default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Configure registers schema shapes for the date and time types on o:
// time.Time, civil.Date, civil.Time, civil.DateTime, time.Duration,
// period.Period and the value types of this package. Every example is
// derived from a single sample instant.
func Configure(o *openapix.Options, opts ...Option) error {
	cfg := config{
		zones:     TZDB,
		marshaler: o.Marshaler(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch {
	case cfg.zones == nil:
		return fmt.Errorf("%w: zone provider", ErrNilDependency)
	case cfg.marshaler == nil:
		return fmt.Errorf("%w: marshaler", ErrNilDependency)
	case cfg.now == nil:
		return fmt.Errorf("%w: clock", ErrNilDependency)
	}
	zone := cfg.zones.SystemDefault()
	if zone == nil {
		return fmt.Errorf("%w: system default zone", ErrNilDependency)
	}

	s := newSamples(cfg.now(), zone)
	logger := o.Logger().With("component", "temporal")

	regs := []func() error{
		func() error {
			return full[time.Time](o, FormatDateTime, s.instant, "Represents an instant in time (UTC) without time zone information.")
		},
		func() error {
			return full[civil.Date](o, FormatDate, civil.DateOf(s.zoned.Time), "A date without a time component or time zone.")
		},
		func() error {
			return full[civil.Time](o, FormatTime, civil.TimeOf(s.zoned.Time), "A time without a date or time zone.")
		},
		func() error {
			return full[civil.DateTime](o, FormatDateTime, civil.DateTimeOf(s.zoned.Time), "A date and time without a time zone.")
		},
		func() error {
			return full[OffsetTime](o, FormatTime, s.offset.OffsetTime(), "A time with an offset from UTC, but without a specific date.")
		},
		func() error {
			return full[OffsetDate](o, FormatDate, s.offset.OffsetDate(), "")
		},
		func() error {
			return full[OffsetDateTime](o, FormatDateTime, s.offset, "A date and time with an offset from UTC, but without a specific time zone.")
		},
		func() error {
			return full[ZonedDateTime](o, FormatDateTime, s.zoned, "A date and time with a time zone. Often used for scheduling and calendaring.")
		},
		func() error {
			iv, err := NewIntervalTransformer(s.instant, cfg.marshaler)
			if err != nil {
				return err
			}
			o.AddSchemaTransformer(iv)
			return nil
		},
		func() error {
			div, err := NewDateIntervalTransformer(s.instant, zone, cfg.marshaler)
			if err != nil {
				return err
			}
			o.AddSchemaTransformer(div)
			return nil
		},
		func() error { return sample[Offset](o, s.offset.Offset()) },
		func() error { return sample[period.Period](o, s.period) },
		func() error {
			return openapix.AddType[time.Duration](o,
				openapix.WithTypeName("integer"),
				openapix.WithFormat(FormatInt64),
				openapix.WithExample(s.interval.Duration()),
				openapix.WithDescription("An elapsed time measured in nanoseconds."),
				openapix.WithProperties(nil),
			)
		},
		func() error { return sample[Zone](o, Zone{Location: zone}) },
	}
	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}

	logger.Debug("temporal schemas configured", "zone", zone.String(), "instant", s.instant)
	return nil
}

// full registers T declared as a string with format, example, description
// and an empty property map.
func full[T any](o *openapix.Options, format string, example T, desc string) error {
	return openapix.AddTypeAs[T, string](o,
		openapix.WithFormat(format),
		openapix.WithExample(example),
		openapix.WithDescription(desc),
		openapix.WithProperties(nil),
	)
}

// sample registers T declared as a string with an example and an empty
// property map.
func sample[T any](o *openapix.Options, example T) error {
	return openapix.AddTypeAs[T, string](o,
		openapix.WithExample(example),
		openapix.WithProperties(nil),
	)
}

// samples are the example values shared by every registration.
type samples struct {
	instant  time.Time
	zoned    ZonedDateTime
	offset   OffsetDateTime
	interval Interval
	period   period.Period
}

func newSamples(now time.Time, zone *time.Location) samples {
	instant := now.UTC()
	zoned := ZonedDateTime{Time: instant.In(zone)}
	interval := NewInterval(instant, instant.Add(sampleSpan))
	return samples{
		instant:  instant,
		zoned:    zoned,
		offset:   zoned.OffsetDateTime(),
		interval: interval,
		period:   period.Between(zoned.Time, interval.End.In(zone)),
	}
}

package temporal

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/golang-sql/civil"

	"github.com/Gobd/openapix"
)

var (
	intervalType     = reflect.TypeFor[Interval]()
	dateIntervalType = reflect.TypeFor[DateInterval]()
)

// sampleSpan is the length of the example interval: one of each unit from
// a day down to a millisecond.
const sampleSpan = 24*time.Hour + time.Hour + time.Minute + time.Second + time.Millisecond

// IntervalDescription is set on every Interval schema.
const IntervalDescription = "Represents a time interval between two instants, expressed with start and end."

// IntervalTransformer describes [Interval] as an object with Start and End
// date-time members.
type IntervalTransformer struct {
	instant   time.Time
	marshaler openapix.Marshaler
}

// NewIntervalTransformer builds example values around instant.
func NewIntervalTransformer(instant time.Time, m openapix.Marshaler) (*IntervalTransformer, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: marshaler", ErrNilDependency)
	}
	return &IntervalTransformer{instant: instant, marshaler: m}, nil
}

func (t *IntervalTransformer) TransformSchema(_ context.Context, schema *openapi3.Schema, sc *openapix.SchemaContext) error {
	if sc.Type != intervalType {
		return nil
	}

	iv := NewInterval(t.instant, t.instant.Add(sampleSpan))
	props, err := startEnd("date-time", iv.Start, iv.End, t.marshaler)
	if err != nil {
		return err
	}

	schema.Type = &openapi3.Types{openapi3.TypeObject}
	schema.Description = IntervalDescription
	schema.Properties = props
	return nil
}

// DateIntervalTransformer describes [DateInterval] as an object with Start
// and End date members.
type DateIntervalTransformer struct {
	instant   time.Time
	zone      *time.Location
	marshaler openapix.Marshaler
}

// NewDateIntervalTransformer builds example values from the date of instant
// in zone.
func NewDateIntervalTransformer(instant time.Time, zone *time.Location, m openapix.Marshaler) (*DateIntervalTransformer, error) {
	if zone == nil {
		return nil, fmt.Errorf("%w: zone", ErrNilDependency)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: marshaler", ErrNilDependency)
	}
	return &DateIntervalTransformer{instant: instant, zone: zone, marshaler: m}, nil
}

func (t *DateIntervalTransformer) TransformSchema(_ context.Context, schema *openapi3.Schema, sc *openapix.SchemaContext) error {
	if sc.Type != dateIntervalType {
		return nil
	}

	date := civil.DateOf(t.instant.In(t.zone))
	di := NewDateInterval(date, date.AddDays(1))
	props, err := startEnd("date", di.Start, di.End, t.marshaler)
	if err != nil {
		return err
	}

	schema.Type = &openapi3.Types{openapi3.TypeObject}
	schema.Properties = props
	return nil
}

func startEnd(format string, start, end any, m openapix.Marshaler) (openapi3.Schemas, error) {
	s, err := openapix.FormatExample(start, m)
	if err != nil {
		return nil, err
	}
	e, err := openapix.FormatExample(end, m)
	if err != nil {
		return nil, err
	}
	return openapi3.Schemas{
		"Start": openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, Format: format, Example: s}),
		"End":   openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, Format: format, Example: e}),
	}, nil
}

// Package temporal registers OpenAPI shapes for date and time values:
// time.Time, time.Duration, the civil date and time types, period.Period
// and the offset and zoned types declared here.
//
//	o := openapix.New()
//	if err := temporal.Configure(o); err != nil {
//		return err
//	}
//
// Every example in the generated schemas is derived from one sample instant
// taken when Configure runs.
package temporal

package temporal

import "time"

// ZoneProvider resolves time zones.
type ZoneProvider interface {
	// SystemDefault returns the zone of the host.
	SystemDefault() *time.Location
	// Zone looks up a zone by its IANA identifier.
	Zone(id string) (*time.Location, error)
}

type tzdb struct{}

// TZDB resolves zones from the IANA database the Go runtime loads.
var TZDB ZoneProvider = tzdb{}

func (tzdb) SystemDefault() *time.Location {
	return time.Local
}

func (tzdb) Zone(id string) (*time.Location, error) {
	return time.LoadLocation(id)
}

// FixedZones is a ZoneProvider with a pinned default zone. Zone falls back
// to the IANA database.
type FixedZones struct {
	Default *time.Location
}

func (z FixedZones) SystemDefault() *time.Location {
	return z.Default
}

func (z FixedZones) Zone(id string) (*time.Location, error) {
	return time.LoadLocation(id)
}

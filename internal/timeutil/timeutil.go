// Package timeutil normalizes timestamps between the configured display
// timezone and UTC. Storage always holds UTC; API responses always carry the
// display zone. Both conversions are applied explicitly at the HTTP boundary,
// never inside domain constructors.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoTimezone is returned when a timestamp without offset information is
// parsed and no timezone is configured.
var ErrNoTimezone = errors.New("timestamp without offset requires a configured timezone")

// Layouts accepted for timestamps without offset information. The fraction
// part is optional in both.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseISO parses an ISO-8601 timestamp and returns it in UTC. Values that
// carry an offset are converted directly; values without one are interpreted
// as wall-clock time in zone, which must then be non-empty.
func ParseISO(value, zone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	if zone == "" {
		return time.Time{}, ErrNoTimezone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// ToUTC re-expresses t in UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FromUTC re-expresses a UTC timestamp as wall-clock time in zone.
func FromUTC(t time.Time, zone string) (time.Time, error) {
	if zone == "" {
		return time.Time{}, ErrNoTimezone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return t.In(loc), nil
}

package models

import (
	"fmt"
	"time"

	"github.com/stwalsh4118/neowatch/internal/dates"
)

// ApproachRecord carries the raw string fields of a single close-approach
// row exactly as they appear in the source file. An empty string means the
// field was absent.
type ApproachRecord struct {
	Designation string // des, the owning NEO's primary designation
	Calendar    string // cd, calendar date of closest approach
	Distance    string // dist, nominal approach distance in au
	Velocity    string // v_rel, relative velocity in km/s
}

// CloseApproach represents a single close approach to Earth by an NEO: the
// date and time (UTC) of closest approach, the nominal approach distance in
// astronomical units, and the relative velocity in kilometers per second.
//
// Designation holds the raw foreign key referencing the owning NEO and is
// only meaningful until linkage; Neo starts nil and is set exactly once by
// the database constructor.
type CloseApproach struct {
	Designation *string
	Time        *time.Time // nil when the source omitted the calendar date
	Distance    float64    // astronomical units; NaN when unknown
	Velocity    float64    // km/s; NaN when unknown
	Neo         *NearEarthObject
}

// NewCloseApproach builds a close approach from a raw record. An absent
// calendar date yields a nil time with no parse attempted; a present but
// malformed date or numeric field is an error.
func NewCloseApproach(rec ApproachRecord) (*CloseApproach, error) {
	var approachTime *time.Time
	if rec.Calendar != "" {
		t, err := dates.Parse(rec.Calendar)
		if err != nil {
			return nil, err
		}
		approachTime = &t
	}

	distance, err := parseOptionalFloat(rec.Distance, "distance")
	if err != nil {
		return nil, err
	}
	velocity, err := parseOptionalFloat(rec.Velocity, "velocity")
	if err != nil {
		return nil, err
	}

	return &CloseApproach{
		Designation: optionalString(rec.Designation),
		Time:        approachTime,
		Distance:    distance,
		Velocity:    velocity,
	}, nil
}

// TimeStr returns the minute-precision rendering of the approach time, or
// the literal "Undefined" when the time is unknown. The input data carries
// no seconds, so neither does the output.
func (ca *CloseApproach) TimeStr() string {
	if ca.Time == nil {
		return "Undefined"
	}
	return dates.Format(*ca.Time)
}

// FullName returns the owning NEO's fullname once linked, falling back to
// the raw foreign designation before linkage, or "None" when even that is
// missing.
func (ca *CloseApproach) FullName() string {
	if ca.Neo != nil {
		return ca.Neo.Fullname()
	}
	if ca.Designation != nil {
		return *ca.Designation
	}
	return "None"
}

// String returns the human-readable description of this close approach.
func (ca *CloseApproach) String() string {
	return fmt.Sprintf("At %s, '%s' approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		ca.TimeStr(), ca.FullName(), ca.Distance, ca.Velocity)
}

// GoString returns an unambiguous representation including all fields,
// suitable for debugging and logging.
func (ca *CloseApproach) GoString() string {
	return fmt.Sprintf("CloseApproach{Time: %q, Distance: %.2f, Velocity: %.2f, Neo: %s}",
		ca.TimeStr(), ca.Distance, ca.Velocity, stringOr(ca.Designation, "None"))
}

// Serialize returns the flat export mapping for this close approach.
func (ca *CloseApproach) Serialize() map[string]any {
	return map[string]any{
		"datetime_utc":  ca.TimeStr(),
		"distance_au":   ca.Distance,
		"velocity_km_s": ca.Velocity,
	}
}

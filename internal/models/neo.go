package models

import (
	"fmt"
	"math"
	"strconv"
)

// RawFlagMissing is the retained raw value used when the source data omitted
// the hazardous flag entirely. It distinguishes "explicitly not hazardous"
// from "never stated" in display output.
const RawFlagMissing = "None"

// NeoRecord carries the raw string fields of a single NEO row exactly as
// they appear in the source file. An empty string means the field was absent.
type NeoRecord struct {
	Designation string // pdes
	Name        string // name
	Diameter    string // diameter, in kilometers
	Hazardous   string // pha flag, "Y" / "N" or absent
}

// NearEarthObject represents a near-Earth object: a unique primary
// designation, an optional IAU name, an optional diameter, and a flag for
// whether it is marked potentially hazardous.
// Nullable string fields use pointers to distinguish unset from empty,
// unknown numeric values are NaN.
//
// Approaches starts empty and is populated exactly once by the database
// constructor during linkage; the struct is read-only afterwards.
type NearEarthObject struct {
	Designation *string
	Name        *string
	Diameter    float64 // kilometers; NaN when unknown
	Hazardous   bool
	RawHazard   string // raw pha value; RawFlagMissing when the source omitted it
	Approaches  []*CloseApproach
}

// NewNearEarthObject builds an NEO from a raw record, coercing each field
// per the dataset's conventions. Empty numeric strings become NaN; a
// non-empty string that fails to parse is an error, not an unknown value.
func NewNearEarthObject(rec NeoRecord) (*NearEarthObject, error) {
	diameter, err := parseOptionalFloat(rec.Diameter, "diameter")
	if err != nil {
		return nil, err
	}

	rawHazard := rec.Hazardous
	if rawHazard == "" {
		rawHazard = RawFlagMissing
	}

	return &NearEarthObject{
		Designation: optionalString(rec.Designation),
		Name:        optionalString(rec.Name),
		Diameter:    diameter,
		Hazardous:   rec.Hazardous == "Y",
		RawHazard:   rawHazard,
	}, nil
}

// Fullname returns "designation (name)" when both are set, the bare
// designation when the name is unset, and the literal "None" when even the
// designation is missing.
func (n *NearEarthObject) Fullname() string {
	switch {
	case n.Designation == nil:
		return "None"
	case n.Name == nil:
		return *n.Designation
	default:
		return fmt.Sprintf("%s (%s)", *n.Designation, *n.Name)
	}
}

// String returns the human-readable description of this NEO.
// The hazard phrase is three-way: "is" when flagged hazardous, "is not" when
// the raw flag was present but not "Y", and the placeholder "[is/is not]"
// when the source never stated a flag at all.
func (n *NearEarthObject) String() string {
	diameter := "undefined"
	if !math.IsNaN(n.Diameter) {
		diameter = fmt.Sprintf("%.3f", n.Diameter)
	}

	var hazard string
	switch {
	case n.RawHazard == RawFlagMissing:
		hazard = "[is/is not]"
	case n.Hazardous:
		hazard = "is"
	default:
		hazard = "is not"
	}

	return fmt.Sprintf("NEO %s has a diameter of %s km and %s potentially hazardous",
		n.Fullname(), diameter, hazard)
}

// GoString returns an unambiguous representation including all fields,
// suitable for debugging and logging.
func (n *NearEarthObject) GoString() string {
	return fmt.Sprintf("NearEarthObject{Designation: %q, Name: %q, Diameter: %.3f, Hazardous: %t}",
		stringOr(n.Designation, "None"), stringOr(n.Name, "None"), n.Diameter, n.Hazardous)
}

// Serialize returns the flat export mapping for this NEO. The "name" key
// intentionally carries the fullname (designation plus parenthetical name),
// not the bare name - external consumers expect that denormalization.
func (n *NearEarthObject) Serialize() map[string]any {
	return map[string]any{
		"designation":           stringOr(n.Designation, "None"),
		"name":                  n.Fullname(),
		"diameter_km":           n.Diameter,
		"potentially_hazardous": n.Hazardous,
	}
}

// optionalString maps an empty raw field to nil, never storing the empty
// string itself.
func optionalString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// stringOr dereferences an optional string, substituting a fallback for nil.
func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// parseOptionalFloat coerces a raw numeric field: absent means unknown
// (NaN), while a malformed non-empty value propagates as an error.
func parseOptionalFloat(raw, field string) (float64, error) {
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", field, raw, err)
	}
	return v, nil
}

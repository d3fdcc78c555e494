package filters

import (
	"time"

	"github.com/stwalsh4118/neowatch/internal/models"
)

// Filter is a predicate evaluated against a close approach and, through its
// back-reference, the linked NEO. A query matches a close approach only when
// every filter passes.
//
// Approaches with unknown values never match a bounded filter: NaN compares
// false against any bound, and a nil time or unlinked NEO fails the
// corresponding predicates outright.
type Filter func(*models.CloseApproach) bool

// DateOn matches approaches occurring on the given calendar date (UTC).
func DateOn(date time.Time) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Time != nil && sameDay(*ca.Time, date)
	}
}

// StartDate matches approaches occurring on or after the given date.
func StartDate(date time.Time) Filter {
	start := dayStart(date)
	return func(ca *models.CloseApproach) bool {
		return ca.Time != nil && !ca.Time.Before(start)
	}
}

// EndDate matches approaches occurring on or before the given date
// (inclusive of the whole day).
func EndDate(date time.Time) Filter {
	end := dayStart(date).Add(24 * time.Hour)
	return func(ca *models.CloseApproach) bool {
		return ca.Time != nil && ca.Time.Before(end)
	}
}

// MinDistance matches approaches at or beyond the given distance in au.
func MinDistance(au float64) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Distance >= au
	}
}

// MaxDistance matches approaches at or within the given distance in au.
func MaxDistance(au float64) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Distance <= au
	}
}

// MinVelocity matches approaches at or above the given velocity in km/s.
func MinVelocity(kms float64) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Velocity >= kms
	}
}

// MaxVelocity matches approaches at or below the given velocity in km/s.
func MaxVelocity(kms float64) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Velocity <= kms
	}
}

// MinDiameter matches approaches whose NEO has a diameter at or above the
// given size in kilometers.
func MinDiameter(km float64) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Neo != nil && ca.Neo.Diameter >= km
	}
}

// MaxDiameter matches approaches whose NEO has a diameter at or below the
// given size in kilometers.
func MaxDiameter(km float64) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Neo != nil && ca.Neo.Diameter <= km
	}
}

// Hazardous matches approaches whose NEO's hazardous flag equals want.
func Hazardous(want bool) Filter {
	return func(ca *models.CloseApproach) bool {
		return ca.Neo != nil && ca.Neo.Hazardous == want
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

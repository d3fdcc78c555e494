package filters

import (
	"iter"
	"time"
)

// Criteria is the explicit set of optional query bounds a caller may
// combine. Nil fields contribute no filter; set fields are independent and
// combined with logical AND.
type Criteria struct {
	Date        *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
	MinDistance *float64
	MaxDistance *float64
	MinVelocity *float64
	MaxVelocity *float64
	MinDiameter *float64
	MaxDiameter *float64
	Hazardous   *bool
}

// Build translates the criteria into the corresponding filter slice.
func (c Criteria) Build() []Filter {
	var fs []Filter

	if c.Date != nil {
		fs = append(fs, DateOn(*c.Date))
	}
	if c.StartDate != nil {
		fs = append(fs, StartDate(*c.StartDate))
	}
	if c.EndDate != nil {
		fs = append(fs, EndDate(*c.EndDate))
	}
	if c.MinDistance != nil {
		fs = append(fs, MinDistance(*c.MinDistance))
	}
	if c.MaxDistance != nil {
		fs = append(fs, MaxDistance(*c.MaxDistance))
	}
	if c.MinVelocity != nil {
		fs = append(fs, MinVelocity(*c.MinVelocity))
	}
	if c.MaxVelocity != nil {
		fs = append(fs, MaxVelocity(*c.MaxVelocity))
	}
	if c.MinDiameter != nil {
		fs = append(fs, MinDiameter(*c.MinDiameter))
	}
	if c.MaxDiameter != nil {
		fs = append(fs, MaxDiameter(*c.MaxDiameter))
	}
	if c.Hazardous != nil {
		fs = append(fs, Hazardous(*c.Hazardous))
	}

	return fs
}

// Limit caps a lazy sequence at n values. A non-positive n means no limit.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n <= 0 {
		return seq
	}
	return func(yield func(T) bool) {
		remaining := n
		for v := range seq {
			if !yield(v) {
				return
			}
			remaining--
			if remaining == 0 {
				return
			}
		}
	}
}

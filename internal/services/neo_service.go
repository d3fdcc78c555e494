package services

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/stwalsh4118/neowatch/internal/filters"
	"github.com/stwalsh4118/neowatch/internal/logger"
	"github.com/stwalsh4118/neowatch/internal/models"
)

// Service-level errors
var (
	ErrNEONotFound     = errors.New("near-Earth object not found")
	ErrInvalidCriteria = errors.New("invalid query criteria")
	ErrInvalidLimit    = errors.New("invalid result limit")
)

// DataStore is the slice of the NEO database the service consumes. A miss
// is a nil result, never an error.
type DataStore interface {
	GetByDesignation(designation string) *models.NearEarthObject
	GetByName(name string) *models.NearEarthObject
	Query(fs ...filters.Filter) iter.Seq[*models.CloseApproach]
}

// NeoService defines the interface for NEO query business logic.
type NeoService interface {
	// LookupByDesignation retrieves the NEO with the given primary
	// designation. Returns ErrInvalidCriteria for an empty designation and
	// ErrNEONotFound when the designation is absent from the dataset.
	LookupByDesignation(ctx context.Context, designation string) (*models.NearEarthObject, error)

	// LookupByName retrieves the NEO with the given IAU name. Returns
	// ErrInvalidCriteria for an empty name and ErrNEONotFound when no NEO
	// carries the name.
	LookupByName(ctx context.Context, name string) (*models.NearEarthObject, error)

	// QueryApproaches retrieves the close approaches matching all given
	// criteria, capped at limit results (0 means the configured maximum).
	// Returns ErrInvalidCriteria for contradictory bounds and
	// ErrInvalidLimit for a limit outside [0, max]. An empty result is not
	// an error.
	QueryApproaches(ctx context.Context, criteria filters.Criteria, limit int) ([]*models.CloseApproach, error)
}

// neoService is the concrete implementation of NeoService.
type neoService struct {
	store    DataStore
	log      *logger.Logger
	maxLimit int
}

// NewNeoService creates a new instance of NeoService.
func NewNeoService(store DataStore, log *logger.Logger, maxLimit int) NeoService {
	return &neoService{
		store:    store,
		log:      log,
		maxLimit: maxLimit,
	}
}

// LookupByDesignation retrieves an NEO by primary designation, transforming
// a store miss into the business-level not-found error.
func (s *neoService) LookupByDesignation(_ context.Context, designation string) (*models.NearEarthObject, error) {
	if designation == "" {
		return nil, fmt.Errorf("%w: designation must not be empty", ErrInvalidCriteria)
	}

	s.log.Debug("Looking up NEO by designation", map[string]interface{}{
		"designation": designation,
	})

	neo := s.store.GetByDesignation(designation)
	if neo == nil {
		s.log.Debug("No NEO with designation", map[string]interface{}{
			"designation": designation,
		})
		return nil, ErrNEONotFound
	}

	return neo, nil
}

// LookupByName retrieves an NEO by IAU name, transforming a store miss into
// the business-level not-found error.
func (s *neoService) LookupByName(_ context.Context, name string) (*models.NearEarthObject, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidCriteria)
	}

	s.log.Debug("Looking up NEO by name", map[string]interface{}{
		"name": name,
	})

	neo := s.store.GetByName(name)
	if neo == nil {
		s.log.Debug("No NEO with name", map[string]interface{}{
			"name": name,
		})
		return nil, ErrNEONotFound
	}

	return neo, nil
}

// QueryApproaches validates the criteria and limit, then materializes the
// matching close approaches in ingestion order.
func (s *neoService) QueryApproaches(_ context.Context, criteria filters.Criteria, limit int) ([]*models.CloseApproach, error) {
	if err := validateCriteria(criteria); err != nil {
		s.log.Warn("Rejected query criteria", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if limit < 0 || limit > s.maxLimit {
		s.log.Warn("Rejected query limit", map[string]interface{}{
			"limit": limit,
			"max":   s.maxLimit,
		})
		return nil, fmt.Errorf("%w: limit must be between 0 and %d, got %d", ErrInvalidLimit, s.maxLimit, limit)
	}
	if limit == 0 {
		limit = s.maxLimit
	}

	results := make([]*models.CloseApproach, 0)
	for ca := range filters.Limit(s.store.Query(criteria.Build()...), limit) {
		results = append(results, ca)
	}

	s.log.Info("Query completed", map[string]interface{}{
		"count": len(results),
		"limit": limit,
	})

	return results, nil
}

// validateCriteria rejects bound pairs that can never match anything.
func validateCriteria(c filters.Criteria) error {
	if c.StartDate != nil && c.EndDate != nil && c.StartDate.After(*c.EndDate) {
		return fmt.Errorf("%w: start date is after end date", ErrInvalidCriteria)
	}
	if bothSetAndInverted(c.MinDistance, c.MaxDistance) {
		return fmt.Errorf("%w: minimum distance exceeds maximum distance", ErrInvalidCriteria)
	}
	if bothSetAndInverted(c.MinVelocity, c.MaxVelocity) {
		return fmt.Errorf("%w: minimum velocity exceeds maximum velocity", ErrInvalidCriteria)
	}
	if bothSetAndInverted(c.MinDiameter, c.MaxDiameter) {
		return fmt.Errorf("%w: minimum diameter exceeds maximum diameter", ErrInvalidCriteria)
	}
	return nil
}

func bothSetAndInverted(min, max *float64) bool {
	return min != nil && max != nil && *min > *max
}

package database

import (
	"fmt"
	"iter"

	"github.com/stwalsh4118/neowatch/internal/filters"
	"github.com/stwalsh4118/neowatch/internal/logger"
	"github.com/stwalsh4118/neowatch/internal/models"
)

// Database owns the full NEO and close-approach collections after linkage
// and serves lookups over them. It is built once per run and read-only
// afterwards, so concurrent readers need no locking.
type Database struct {
	neos          []*models.NearEarthObject
	approaches    []*models.CloseApproach
	byDesignation map[string]*models.NearEarthObject
	byName        map[string]*models.NearEarthObject
}

// New links each close approach to its owning NEO and builds the lookup
// indexes.
//
// Linkage policy: an approach whose foreign designation resolves to no known
// NEO is dropped from the database; the total dropped is logged as a single
// warning so nothing disappears silently. A duplicate NEO designation is an
// error - designations are the primary key and the data set is assumed
// consistent.
func New(neos []*models.NearEarthObject, approaches []*models.CloseApproach, log *logger.Logger) (*Database, error) {
	db := &Database{
		neos:          neos,
		byDesignation: make(map[string]*models.NearEarthObject, len(neos)),
		byName:        make(map[string]*models.NearEarthObject),
	}

	for _, neo := range neos {
		if neo.Designation == nil {
			// No primary key to index on; the NEO stays in the collection
			// but is unreachable by lookup.
			continue
		}
		des := *neo.Designation
		if _, exists := db.byDesignation[des]; exists {
			return nil, fmt.Errorf("duplicate NEO designation %q", des)
		}
		db.byDesignation[des] = neo

		// Names need not be unique; the first constructed NEO wins so name
		// lookups are deterministic for a given data set.
		if neo.Name != nil {
			if _, exists := db.byName[*neo.Name]; !exists {
				db.byName[*neo.Name] = neo
			}
		}
	}

	dropped := 0
	db.approaches = make([]*models.CloseApproach, 0, len(approaches))
	for _, ca := range approaches {
		var neo *models.NearEarthObject
		if ca.Designation != nil {
			neo = db.byDesignation[*ca.Designation]
		}
		if neo == nil {
			dropped++
			continue
		}
		ca.Neo = neo
		neo.Approaches = append(neo.Approaches, ca)
		db.approaches = append(db.approaches, ca)
	}

	if dropped > 0 && log != nil {
		log.Warn("Dropped close approaches with unresolvable designations", map[string]interface{}{
			"dropped": dropped,
			"linked":  len(db.approaches),
		})
	}

	return db, nil
}

// GetByDesignation returns the NEO with the given primary designation, or
// nil when absent. A miss is an expected case, not an error.
func (d *Database) GetByDesignation(designation string) *models.NearEarthObject {
	return d.byDesignation[designation]
}

// GetByName returns the NEO with the given IAU name, or nil when absent or
// when the name is empty. If several NEOs share the name, the first
// constructed one is returned.
func (d *Database) GetByName(name string) *models.NearEarthObject {
	if name == "" {
		return nil
	}
	return d.byName[name]
}

// Query returns a lazy sequence of the close approaches matching every
// given filter, in original ingestion order. Consumers may stop early
// without forcing full evaluation, and each call re-scans from the start.
func (d *Database) Query(fs ...filters.Filter) iter.Seq[*models.CloseApproach] {
	return func(yield func(*models.CloseApproach) bool) {
	next:
		for _, ca := range d.approaches {
			for _, f := range fs {
				if !f(ca) {
					continue next
				}
			}
			if !yield(ca) {
				return
			}
		}
	}
}

// NeoCount returns the number of NEOs in the database.
func (d *Database) NeoCount() int {
	return len(d.neos)
}

// ApproachCount returns the number of linked close approaches.
func (d *Database) ApproachCount() int {
	return len(d.approaches)
}

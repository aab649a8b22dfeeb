package domain

import (
	"errors"
	"math/rand"
)

var (
	// ErrCatalogEmpty is returned when sampling before any catalog snapshot exists.
	ErrCatalogEmpty = errors.New("catalog is empty")
	// ErrPoolEmpty is returned when the filter excludes every catalog problem.
	ErrPoolEmpty = errors.New("no problem matches the filter")
)

// Sample returns one problem chosen with uniform probability from the
// catalog problems that satisfy the filter and are not in excludeIDs.
//
// The two failure modes are distinguishable: an empty catalog yields
// ErrCatalogEmpty, a non-empty catalog fully excluded by the filter
// yields ErrPoolEmpty.
func Sample(filter SearchFilter, catalog []Problem, excludeIDs map[string]bool) (Problem, error) {
	if len(catalog) == 0 {
		return Problem{}, ErrCatalogEmpty
	}

	pool := make([]Problem, 0, len(catalog))
	for i := range catalog {
		p := catalog[i]
		if excludeIDs[p.ID] {
			continue
		}
		if !filter.Match(&p) {
			continue
		}
		pool = append(pool, p)
	}

	if len(pool) == 0 {
		return Problem{}, ErrPoolEmpty
	}
	return pool[rand.Intn(len(pool))], nil
}

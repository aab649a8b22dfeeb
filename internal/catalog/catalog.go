package catalog

import (
	"sync"
	"time"

	"cfdesk/internal/domain"
)

// DefaultTTL is the single staleness policy applied to the catalog
// snapshot. A snapshot older than this is eligible for refresh.
const DefaultTTL = 24 * time.Hour

// Catalog holds the normalized remote problem snapshot together with
// the system folders derived from it. The snapshot is only ever
// replaced wholesale; there are no partial updates.
type Catalog struct {
	mu        sync.RWMutex
	problems  []domain.Problem
	byID      map[string]int // id -> index into problems
	system    []*domain.Folder
	fetchedAt time.Time
}

func New() *Catalog {
	return &Catalog{
		byID: make(map[string]int),
	}
}

// Replace swaps in a new snapshot atomically and stamps its fetch time.
// On ingestion failure the caller simply never calls Replace, so the
// previous snapshot stays authoritative.
func (c *Catalog) Replace(problems []domain.Problem, fetchedAt time.Time) {
	byID := make(map[string]int, len(problems))
	for i := range problems {
		byID[problems[i].ID] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.problems = problems
	c.byID = byID
	c.fetchedAt = fetchedAt
}

// All returns a copy of the snapshot.
func (c *Catalog) All() []domain.Problem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Problem, len(c.problems))
	copy(out, c.problems)
	return out
}

// Get retrieves a problem by its catalog id.
func (c *Catalog) Get(id string) (domain.Problem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return domain.Problem{}, false
	}
	return c.problems[i], true
}

// Count returns the snapshot size.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.problems)
}

// FetchedAt returns when the current snapshot was fetched.
// Zero when no snapshot has ever been loaded.
func (c *Catalog) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// IsStale reports whether the snapshot is older than ttl.
// A catalog with no snapshot at all is always stale.
func (c *Catalog) IsStale(ttl time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fetchedAt.IsZero() {
		return true
	}
	return time.Since(c.fetchedAt) > ttl
}

// SetSystemFolders replaces the derived per-tag folders.
// Called after every successful refresh with the classifier output.
func (c *Catalog) SetSystemFolders(folders []*domain.Folder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.system = folders
}

// SystemFolders returns the current derived folders.
func (c *Catalog) SystemFolders() []*domain.Folder {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Folder, len(c.system))
	copy(out, c.system)
	return out
}

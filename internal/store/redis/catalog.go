package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cfdesk/internal/domain"
)

// catalogSnapshot is the persisted catalog shape: the normalized
// problem list plus the timestamp the staleness policy runs on.
type catalogSnapshot struct {
	Problems  []domain.Problem `json:"problems"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// SaveCatalog persists the snapshot wholesale, replacing any previous one.
func (s *Store) SaveCatalog(ctx context.Context, problems []domain.Problem, fetchedAt time.Time) error {
	data, err := json.Marshal(catalogSnapshot{Problems: problems, FetchedAt: fetchedAt})
	if err != nil {
		return fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}
	if err := s.client.Set(ctx, KeyCatalogSnapshot, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}
	return nil
}

// LoadCatalog retrieves the persisted snapshot. A missing snapshot is
// not an error: it returns no problems and a zero fetch time.
func (s *Store) LoadCatalog(ctx context.Context) ([]domain.Problem, time.Time, error) {
	data, err := s.client.Get(ctx, KeyCatalogSnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	var snap catalogSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal catalog snapshot: %w", err)
	}
	return snap.Problems, snap.FetchedAt, nil
}

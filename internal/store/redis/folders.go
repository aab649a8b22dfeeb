package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"cfdesk/internal/domain"
)

// ErrFolderNotFound is returned when no custom folder has the given id.
var ErrFolderNotFound = errors.New("folder not found")

// SaveFolder stores a custom folder, overwriting any previous version.
func (s *Store) SaveFolder(ctx context.Context, folder *domain.Folder) error {
	data, err := json.Marshal(folder)
	if err != nil {
		return fmt.Errorf("failed to marshal folder: %w", err)
	}

	if err := s.client.Set(ctx, FolderKey(folder.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save folder: %w", err)
	}
	if err := s.client.SAdd(ctx, KeyAllFolders, folder.ID).Err(); err != nil {
		return fmt.Errorf("failed to add folder to set: %w", err)
	}
	return nil
}

// GetFolder retrieves a custom folder by id.
func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	data, err := s.client.Get(ctx, FolderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, id)
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	var folder domain.Folder
	if err := json.Unmarshal(data, &folder); err != nil {
		return nil, fmt.Errorf("failed to unmarshal folder: %w", err)
	}
	return &folder, nil
}

// GetAllFolders retrieves every custom folder, ordered by title for a
// stable listing.
func (s *Store) GetAllFolders(ctx context.Context) ([]*domain.Folder, error) {
	ids, err := s.client.SMembers(ctx, KeyAllFolders).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder ids: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Folder{}, nil
	}

	folders := make([]*domain.Folder, 0, len(ids))
	for _, id := range ids {
		folder, err := s.GetFolder(ctx, id)
		if err != nil {
			// Skip folders that couldn't be retrieved.
			continue
		}
		folders = append(folders, folder)
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Title < folders[j].Title })
	return folders, nil
}

// DeleteFolder removes a custom folder.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, FolderKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if err := s.client.SRem(ctx, KeyAllFolders, id).Err(); err != nil {
		return fmt.Errorf("failed to remove folder from set: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"cfdesk/internal/domain"
)

// Store handles redis persistence for submissions, the catalog
// snapshot and custom folders.
type Store struct {
	client *redis.Client
}

// NewStore creates a new redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func submissionField(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Merge upserts a batch of submission records and returns how many
// were written. Records without a resolvable problem reference are
// skipped silently. The code field is sticky: when an incoming record
// omits it, the previously stored value is carried forward verbatim.
//
// All writes go through one MULTI/EXEC pipeline so a partially applied
// batch is never observable.
func (s *Store) Merge(ctx context.Context, records []domain.SubmissionRecord) (int, error) {
	keep := make([]domain.SubmissionRecord, 0, len(records))
	for _, r := range records {
		if r.ID == 0 || r.ContestID == 0 || r.Index == "" {
			continue
		}
		keep = append(keep, r)
	}
	if len(keep) == 0 {
		return 0, nil
	}

	fields := make([]string, 0, len(keep))
	for _, r := range keep {
		fields = append(fields, submissionField(r.ID))
	}

	existing, err := s.client.HMGet(ctx, KeySubmissions, fields...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read existing submissions: %w", err)
	}

	pipe := s.client.TxPipeline()
	for i, r := range keep {
		if r.Code == "" && existing[i] != nil {
			var prev domain.SubmissionRecord
			if raw, ok := existing[i].(string); ok {
				if err := json.Unmarshal([]byte(raw), &prev); err == nil {
					r.Code = prev.Code
				}
			}
		}

		data, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal submission %d: %w", r.ID, err)
		}
		pipe.HSet(ctx, KeySubmissions, fields[i], data)
		pipe.ZAdd(ctx, KeySubmissionsByTime, redis.Z{
			Score:  float64(r.CreationTimeSeconds),
			Member: fields[i],
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit submission batch: %w", err)
	}
	return len(keep), nil
}

// Count returns the number of stored submissions via the index
// cardinality, not a scan.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.client.ZCard(ctx, KeySubmissionsByTime).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return n, nil
}

// Recent returns up to limit records ordered by creation time
// descending, walking the time index from its newest end.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.SubmissionRecord, error) {
	if limit <= 0 {
		return []domain.SubmissionRecord{}, nil
	}

	ids, err := s.client.ZRevRange(ctx, KeySubmissionsByTime, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to walk submission index: %w", err)
	}
	return s.fetchRecords(ctx, ids)
}

// Query returns all records in ascending creation-time order,
// optionally restricted to accepted verdicts. A full scan is fine at
// the scale of one user's history.
func (s *Store) Query(ctx context.Context, onlyAccepted bool) ([]domain.SubmissionRecord, error) {
	ids, err := s.client.ZRange(ctx, KeySubmissionsByTime, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to walk submission index: %w", err)
	}

	records, err := s.fetchRecords(ctx, ids)
	if err != nil {
		return nil, err
	}
	if !onlyAccepted {
		return records, nil
	}

	accepted := make([]domain.SubmissionRecord, 0, len(records))
	for _, r := range records {
		if r.Accepted() {
			accepted = append(accepted, r)
		}
	}
	return accepted, nil
}

// Clear removes all submissions; Count drops to zero.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, KeySubmissions, KeySubmissionsByTime).Err(); err != nil {
		return fmt.Errorf("failed to clear submissions: %w", err)
	}
	return nil
}

func (s *Store) fetchRecords(ctx context.Context, ids []string) ([]domain.SubmissionRecord, error) {
	if len(ids) == 0 {
		return []domain.SubmissionRecord{}, nil
	}

	raw, err := s.client.HMGet(ctx, KeySubmissions, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	records := make([]domain.SubmissionRecord, 0, len(raw))
	for _, v := range raw {
		data, ok := v.(string)
		if !ok {
			// Index entry without a record; skip rather than fail the read.
			continue
		}
		var r domain.SubmissionRecord
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

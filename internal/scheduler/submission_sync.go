package scheduler

import (
	"context"
	"time"

	"cfdesk/internal/logger"
	"cfdesk/internal/sources/codeforces"
	redisstore "cfdesk/internal/store/redis"
)

// SubmissionSyncer periodically pulls the user's submission history and
// merges it into the store. Merges are idempotent, so overlapping data
// across syncs is harmless.
type SubmissionSyncer struct {
	client        *codeforces.Client
	store         *redisstore.Store
	handle        string
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSubmissionSyncer creates a new submission syncer.
func NewSubmissionSyncer(
	client *codeforces.Client,
	store *redisstore.Store,
	handle string,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SubmissionSyncer {
	return &SubmissionSyncer{
		client:        client,
		store:         store,
		handle:        handle,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start syncs once, then keeps syncing on the interval or on manual
// trigger. Failures are logged and retried on the next tick.
func (ss *SubmissionSyncer) Start(ctx context.Context) {
	if err := ss.Sync(ctx); err != nil {
		ss.logger.Warn("initial submission sync failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(ss.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := ss.Sync(ctx); err != nil {
					ss.logger.Error("failed to sync submissions",
						logger.Error(err))
				}
			case <-ss.manualTrigger:
				ss.logger.Info("manual submission sync triggered")
				if err := ss.Sync(ctx); err != nil {
					ss.logger.Error("failed to sync submissions",
						logger.Error(err))
				}
			case <-ss.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the syncer.
func (ss *SubmissionSyncer) Stop() {
	close(ss.stopCh)
}

// Sync fetches the remote submission history and merges it into the
// store. Records already present are overwritten in place; stored code
// survives code-less re-syncs.
func (ss *SubmissionSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("syncing submissions",
		logger.String("handle", ss.handle))

	wire, err := ss.client.FetchUserStatus(ctx, ss.handle)
	if err != nil {
		return err
	}

	records := codeforces.MapSubmissions(wire)
	written, err := ss.store.Merge(ctx, records)
	if err != nil {
		return err
	}

	ss.logger.Info("submissions synced",
		logger.Int("fetched", len(records)),
		logger.Int("upserted", written))

	return nil
}

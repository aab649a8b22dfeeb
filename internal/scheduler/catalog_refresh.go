package scheduler

import (
	"context"
	"time"

	"cfdesk/internal/catalog"
	"cfdesk/internal/logger"
	"cfdesk/internal/sources/codeforces"
	redisstore "cfdesk/internal/store/redis"
)

// CatalogRefresher keeps the in-memory catalog aligned with the remote
// problem set. Periodic and manual refreshes run on the same goroutine,
// so only one refresh is ever in flight.
type CatalogRefresher struct {
	client        *codeforces.Client
	classifier    *catalog.Classifier
	catalog       *catalog.Catalog
	store         *redisstore.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogRefresher creates a new catalog refresher.
func NewCatalogRefresher(
	client *codeforces.Client,
	classifier *catalog.Classifier,
	cat *catalog.Catalog,
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogRefresher {
	return &CatalogRefresher{
		client:        client,
		classifier:    classifier,
		catalog:       cat,
		store:         store,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start refreshes once if the snapshot is stale, then keeps refreshing
// on the interval or on manual trigger. An initial failure is logged
// but not fatal: a snapshot restored from redis keeps the app usable
// offline.
func (cr *CatalogRefresher) Start(ctx context.Context) {
	if cr.catalog.IsStale(catalog.DefaultTTL) {
		if err := cr.Refresh(ctx); err != nil {
			cr.logger.Warn("initial catalog refresh failed, serving last known snapshot",
				logger.Error(err))
		}
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Refresh(ctx); err != nil {
					cr.logger.Error("failed to refresh catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog refresh triggered")
				if err := cr.Refresh(ctx); err != nil {
					cr.logger.Error("failed to refresh catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the refresher.
func (cr *CatalogRefresher) Stop() {
	close(cr.stopCh)
}

// Refresh fetches the remote problem set, swaps the snapshot in
// wholesale, recomputes the system folders, and persists the snapshot
// best effort. On any ingestion failure the previous snapshot stays
// untouched.
func (cr *CatalogRefresher) Refresh(ctx context.Context) error {
	cr.logger.Info("refreshing problem catalog")

	wire, err := cr.client.FetchProblems(ctx)
	if err != nil {
		return err
	}

	problems := codeforces.MapProblems(wire)
	fetchedAt := time.Now()

	cr.catalog.Replace(problems, fetchedAt)
	cr.catalog.SetSystemFolders(cr.classifier.Classify(problems))

	cr.logger.Info("catalog refreshed",
		logger.Int("problems", len(problems)),
		logger.Int("system_folders", len(cr.classifier.Tags())))

	if cr.store != nil {
		if err := cr.store.SaveCatalog(ctx, problems, fetchedAt); err != nil {
			cr.logger.Warn("failed to save catalog snapshot to redis",
				logger.Error(err))
			// Don't fail - the memory catalog is the primary source
		}
	}

	return nil
}

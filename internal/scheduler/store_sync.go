package scheduler

import (
	"context"

	"cfdesk/internal/catalog"
	"cfdesk/internal/logger"
	redisstore "cfdesk/internal/store/redis"
)

// StoreSyncer restores the last persisted catalog snapshot into memory
// on startup, so the app is usable before (or without) the first
// remote refresh.
type StoreSyncer struct {
	store      *redisstore.Store
	catalog    *catalog.Catalog
	classifier *catalog.Classifier
	logger     logger.Logger
}

// NewStoreSyncer creates a new store syncer.
func NewStoreSyncer(
	store *redisstore.Store,
	cat *catalog.Catalog,
	classifier *catalog.Classifier,
	log logger.Logger,
) *StoreSyncer {
	return &StoreSyncer{
		store:      store,
		catalog:    cat,
		classifier: classifier,
		logger:     log,
	}
}

// Sync loads the persisted snapshot and rebuilds the system folders.
// The original fetch time is kept so staleness is judged against the
// real fetch, not the restart.
func (st *StoreSyncer) Sync(ctx context.Context) error {
	st.logger.Info("restoring catalog snapshot from redis")

	problems, fetchedAt, err := st.store.LoadCatalog(ctx)
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		st.logger.Info("no catalog snapshot found in redis")
		return nil
	}

	st.catalog.Replace(problems, fetchedAt)
	st.catalog.SetSystemFolders(st.classifier.Classify(problems))

	st.logger.Info("catalog snapshot restored",
		logger.Int("problems", len(problems)))

	return nil
}

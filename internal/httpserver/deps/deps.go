package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"cfdesk/internal/catalog"
	"cfdesk/internal/logger"
	redisstore "cfdesk/internal/store/redis"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Handle         string            // handle whose submissions this instance tracks
	RedisClient    *redis.Client     // redis client connection
	Catalog        *catalog.Catalog  // in-memory problem snapshot + system folders
	Store          *redisstore.Store // submissions, custom folders, catalog snapshot
	RefreshTrigger chan struct{}     // channel to trigger a manual catalog refresh
	SyncTrigger    chan struct{}     // channel to trigger a manual submission sync
	CORSOrigins    []string          // allowed browser origins (empty = any)
}

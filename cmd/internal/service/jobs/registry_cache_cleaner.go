package jobs

import (
	"context"
	"time"

	"hotelrp/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const (
	DefaultCacheTTL      = 10 * time.Hour
	DefaultCleanInterval = 1 * time.Hour
)

type RegistryCacheRepository interface {
	DeleteExpired(before int64) error
}

// RegistryCacheCleaner periodically drops registry lookups older than the TTL,
// positive and negative alike.
type RegistryCacheCleaner struct {
	repo     RegistryCacheRepository
	ttl      time.Duration
	interval time.Duration
}

func NewRegistryCacheCleaner(repo RegistryCacheRepository, ttl, interval time.Duration) *RegistryCacheCleaner {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if interval <= 0 {
		interval = DefaultCleanInterval
	}
	return &RegistryCacheCleaner{repo: repo, ttl: ttl, interval: interval}
}

func (c *RegistryCacheCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Infof("Registry cache cleaner started (ttl=%s, interval=%s)", c.ttl, c.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping registry cache cleaner...")
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Sweep deletes every cache entry older than the TTL.
func (c *RegistryCacheCleaner) Sweep() {
	cutoff := utils.NowUTC() - c.ttl.Milliseconds()

	err := c.repo.DeleteExpired(cutoff)
	if err != nil {
		log.Errorf("Cleaner: failed to delete expired registry cache: %v", err)
		return
	}

	log.Debugf("Cleaner: successfully swept registry caches older than %d", cutoff)
}

package cache

import (
	"fmt"
	"time"

	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// BreakdownTTL is short because the breakdown changes with every
	// tracked activity; the cache only absorbs read bursts.
	BreakdownTTL = 2 * time.Minute
)

// ContributionCache caches computed attribution breakdowns per project.
type ContributionCache struct {
	redis *RedisCache
}

// NewContributionCache creates a new contribution cache
func NewContributionCache(redis *RedisCache) *ContributionCache {
	return &ContributionCache{redis: redis}
}

func breakdownKey(projectID uint) string {
	return fmt.Sprintf("contrib:breakdown:%d", projectID)
}

// GetBreakdown retrieves a cached breakdown for a project
func (cc *ContributionCache) GetBreakdown(projectID uint) ([]models.MemberContribution, bool) {
	if cc == nil || cc.redis == nil {
		return nil, false
	}
	data, err := cc.redis.Get(breakdownKey(projectID))
	if err != nil || data == nil {
		return nil, false
	}

	var breakdown []models.MemberContribution
	if err := msgpack.Unmarshal(data, &breakdown); err != nil {
		return nil, false
	}
	return breakdown, true
}

// SetBreakdown caches a computed breakdown for a project
func (cc *ContributionCache) SetBreakdown(projectID uint, breakdown []models.MemberContribution) error {
	if cc == nil || cc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(breakdown)
	if err != nil {
		return err
	}
	return cc.redis.Set(breakdownKey(projectID), data, BreakdownTTL)
}

// InvalidateBreakdown drops the cached breakdown after new activity
func (cc *ContributionCache) InvalidateBreakdown(projectID uint) error {
	if cc == nil || cc.redis == nil {
		return nil
	}
	return cc.redis.Delete(breakdownKey(projectID))
}

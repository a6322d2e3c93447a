package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/pkg/helpers"
)

func houseKey(id string) string {
	return "house:detail:" + id
}

// HouseCache stores listing details in Redis as JSON.
type HouseCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewHouseCache(rdb redis.Cmdable, ttl time.Duration) *HouseCache {
	return &HouseCache{rdb: rdb, ttl: ttl}
}

func (c *HouseCache) Get(ctx context.Context, id string) (*entity.House, bool, error) {
	var h entity.House
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, houseKey(id), &h)
	if err != nil || !ok {
		return nil, false, err
	}
	return &h, true, nil
}

func (c *HouseCache) Set(ctx context.Context, h *entity.House) error {
	return helpers.RedisSetJSON(ctx, c.rdb, houseKey(h.ID), h, c.ttl)
}

func (c *HouseCache) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, c.rdb, houseKey(id))
}

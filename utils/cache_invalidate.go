package utils

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges event response-cache entries after writes.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) PurgeEventsList(ctx context.Context) {
	iter := ci.rdb.Scan(ctx, 0, "cache:events:list:*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

// PurgeEventItem drops every item key. Keys hold a sha1 of the request, not
// the raw id, so a precise per-id purge is not possible here.
func (ci *CacheInvalidator) PurgeEventItem(ctx context.Context, id int64) {
	iter := ci.rdb.Scan(ctx, 0, "cache:events:item:*", 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if strings.HasPrefix(k, "cache:events:item:") {
			_ = ci.rdb.Del(ctx, k).Err()
		}
	}
}

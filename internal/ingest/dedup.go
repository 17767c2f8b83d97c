package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper guards against duplicate delivery of the same chat message,
// e.g. a webhook retry or an overlapping consumer rebalance.
type Deduper interface {
	// Seen marks the message and reports whether it was already marked.
	Seen(ctx context.Context, msg Message) (bool, error)
}

const dedupTTL = 24 * time.Hour

type redisDeduper struct {
	rdb *redis.Client
}

func NewRedisDeduper(rdb *redis.Client) Deduper {
	return &redisDeduper{rdb: rdb}
}

func (d *redisDeduper) Seen(ctx context.Context, msg Message) (bool, error) {
	key := fmt.Sprintf("msg:%s:%s", msg.ChannelID, msg.ID)
	isNew, err := d.rdb.SetNX(ctx, key, "seen", dedupTTL).Result()
	if err != nil {
		return false, err
	}
	return !isNew, nil
}

type noopDeduper struct{}

// NewNoopDeduper is used when redis is not configured; every message is
// treated as first delivery.
func NewNoopDeduper() Deduper {
	return noopDeduper{}
}

func (noopDeduper) Seen(ctx context.Context, msg Message) (bool, error) {
	return false, nil
}

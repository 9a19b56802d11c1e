package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
)

const (
	approvedSnapshotKey   = "listings:approved"
	approvedGenerationKey = "listings:approved:gen"
)

// ListingCache stores the approved snapshot as one JSON document. A generation
// counter, bumped on every invalidation, keeps a slow miss from re-caching data
// that an approval made stale while the store was being read.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

func (c *ListingCache) GetApproved(ctx context.Context) (domain.ApprovedSnapshot, error) {
	vals, err := c.client.MGet(ctx, approvedSnapshotKey, approvedGenerationKey).Result()
	if err != nil {
		return domain.ApprovedSnapshot{}, fmt.Errorf("get approved snapshot: %w", err)
	}

	var snap domain.ApprovedSnapshot
	if gen, ok := vals[1].(string); ok {
		snap.Generation, err = strconv.ParseInt(gen, 10, 64)
		if err != nil {
			return domain.ApprovedSnapshot{}, fmt.Errorf("parse snapshot generation: %w", err)
		}
	}
	data, ok := vals[0].(string)
	if !ok {
		return snap, nil
	}
	if err := json.Unmarshal([]byte(data), &snap.Products); err != nil {
		return domain.ApprovedSnapshot{Generation: snap.Generation}, fmt.Errorf("decode approved snapshot: %w", err)
	}
	snap.Found = true
	return snap, nil
}

func (c *ListingCache) SetApproved(ctx context.Context, products []*domain.Product, generation int64, ttl time.Duration) error {
	if products == nil {
		products = []*domain.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode approved snapshot: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, approvedGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, approvedSnapshotKey, data, ttl)
			return nil
		})
		return err
	}, approvedGenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		// Invalidated while we were writing.
		return nil
	}
	return err
}

func (c *ListingCache) InvalidateApproved(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, approvedGenerationKey)
		pipe.Del(ctx, approvedSnapshotKey)
		return nil
	})
	return err
}

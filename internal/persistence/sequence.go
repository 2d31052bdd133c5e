package persistence

import (
	"context"

	"go.uber.org/zap"
)

const orderSeqKeyPrefix = "orders:seq:"

// OrderSequence allocates per-month order sequence numbers through an atomic
// Redis INCR, so concurrent order creations within the same month can never
// observe the same value. When the counter key is absent it is seeded from
// the store's count of orders already created that month; when Redis is
// unreachable the allocator degrades to seed+1, leaving the order_number
// unique constraint as the backstop.
type OrderSequence struct {
	redis  *Redis
	logger *zap.Logger
}

// NewOrderSequence builds the allocator.
func NewOrderSequence(redis *Redis, logger *zap.Logger) *OrderSequence {
	return &OrderSequence{redis: redis, logger: logger}
}

// Next returns the next sequence number for the given month bucket
// (e.g. "202403"). seed is the number of orders already created in that
// month, used only when the counter does not exist yet.
func (s *OrderSequence) Next(ctx context.Context, bucket string, seed int64) (int64, error) {
	if s.redis == nil || s.redis.Client == nil {
		return seed + 1, nil
	}

	key := orderSeqKeyPrefix + bucket
	if err := s.redis.Client.SetNX(ctx, key, seed, 0).Err(); err != nil {
		s.logger.Warn("order sequence fallback", zap.String("bucket", bucket), zap.Error(err))
		return seed + 1, nil
	}

	seq, err := s.redis.Client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn("order sequence fallback", zap.String("bucket", bucket), zap.Error(err))
		return seed + 1, nil
	}
	return seq, nil
}

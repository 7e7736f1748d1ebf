package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// ProcessedMessageRepository deduplicates webhook deliveries with SETNX.
// Keys expire after the dedup window, so the set stays bounded.
type ProcessedMessageRepository struct {
	client *redis.Client
	window time.Duration
}

var _ contract.ProcessedMessageRepository = &ProcessedMessageRepository{}

func NewProcessedMessageRepository(client *redis.Client, window time.Duration) *ProcessedMessageRepository {
	return &ProcessedMessageRepository{
		client: client,
		window: window,
	}
}

func (r *ProcessedMessageRepository) MarkProcessed(ctx context.Context, messageId string) (bool, error) {
	key := fmt.Sprintf("processed_msg:%s", messageId)
	ok, err := r.client.SetNX(ctx, key, 1, r.window).Result()
	if err != nil {
		return false, fmt.Errorf("setnx %s: %w", key, err)
	}
	return ok, nil
}

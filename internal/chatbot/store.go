package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrConversationNotFound = errors.New("conversation not found")

type Message struct {
	Role string `json:"role"` // "visitor" or "bot"
	Text string `json:"text"`
}

// ConversationStore keeps short-lived chat transcripts between requests.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) ([]Message, error)
	Set(ctx context.Context, conversationID string, messages []Message) error
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: 30 * time.Minute,
	}
}

type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisStore) Get(ctx context.Context, conversationID string) ([]Message, error) {
	data, err := r.client.Get(ctx, conversationKey(conversationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var messages []Message
	if err2 := json.Unmarshal(data, &messages); err2 != nil {
		return nil, fmt.Errorf("unmarshal conversation failed: %w", err2)
	}
	return messages, nil
}

func (r *RedisStore) Set(ctx context.Context, conversationID string, messages []Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal conversation failed: %w", err)
	}

	if err := r.client.Set(ctx, conversationKey(conversationID), data, r.baseTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func conversationKey(conversationID string) string {
	return fmt.Sprintf("chat:%s", conversationID)
}

// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/kinoteka/internal/platform/constants"
)

// RedisStore implements [Store] using Redis strings for session data and
// Redis lists for flash queues.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Load retrieves the session data stored under id.

Returns:
  - *Data: Decoded session state
  - error: ErrNotFound or connectivity errors
*/
func (store *RedisStore) Load(context context.Context, id string) (*Data, error) {
	raw, err := store.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis_session_load_failed: %w", err)
	}

	data := &Data{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return data, nil
}

// Save stores the session data under id with the given TTL.
func (store *RedisStore) Save(context context.Context, id string, data *Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := store.client.Set(context, sessionKey(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

// Delete removes the session and its flash queue in one round-trip.
func (store *RedisStore) Delete(context context.Context, id string) error {
	if err := store.client.Del(context, sessionKey(id), flashKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

/*
PushFlash appends a message to the flash list and refreshes its expiry.

The list expires on its own so that messages for visitors who never come
back do not accumulate.
*/
func (store *RedisStore) PushFlash(context context.Context, id string, message Message) error {
	raw, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("redis_flash_encode_failed: %w", err)
	}

	key := flashKey(id)
	_, err = store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.RPush(context, key, raw)
		pipe.Expire(context, key, constants.FlashQueueTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_flash_push_failed: %w", err)
	}

	return nil
}

// PopFlashes atomically reads and clears the flash list.
func (store *RedisStore) PopFlashes(context context.Context, id string) ([]Message, error) {
	key := flashKey(id)

	var rangeCmd *redis.StringSliceCmd
	_, err := store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		rangeCmd = pipe.LRange(context, key, 0, -1)
		pipe.Del(context, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis_flash_pop_failed: %w", err)
	}

	items := rangeCmd.Val()
	messages := make([]Message, 0, len(items))
	for _, item := range items {
		var message Message
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			continue
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func sessionKey(id string) string {
	return constants.RedisPrefixSession + id
}

func flashKey(id string) string {
	return constants.RedisPrefixFlash + id
}

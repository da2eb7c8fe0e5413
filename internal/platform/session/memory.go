// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local [Store] used by tests and single-node development setups.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Data
	flashes  map[string][]Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Data),
		flashes:  make(map[string][]Message),
	}
}

func (store *MemoryStore) Load(_ context.Context, id string) (*Data, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, ok := store.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &data, nil
}

func (store *MemoryStore) Save(_ context.Context, id string, data *Data, _ time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sessions[id] = *data
	return nil
}

func (store *MemoryStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.sessions, id)
	delete(store.flashes, id)
	return nil
}

func (store *MemoryStore) PushFlash(_ context.Context, id string, message Message) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.flashes[id] = append(store.flashes[id], message)
	return nil
}

func (store *MemoryStore) PopFlashes(_ context.Context, id string) ([]Message, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	messages := store.flashes[id]
	delete(store.flashes, id)
	return messages, nil
}

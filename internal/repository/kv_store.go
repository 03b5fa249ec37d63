package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"SignalDash/internal/domain/repository"
	"SignalDash/pkg/cache"
)

type envelope struct {
	State json.RawMessage `json:"state"`
}

// KVStateStore implements StateStore over a cache.Service. Records are
// written without a TTL.
type KVStateStore struct {
	kv cache.Service
}

// NewKVStateStore creates a state store.
func NewKVStateStore(kv cache.Service) repository.StateStore {
	return &KVStateStore{kv: kv}
}

// StateKey builds the persisted key for a client namespace.
func StateKey(namespace, client string) string {
	return cache.GenerateKey(namespace, client)
}

func (s *KVStateStore) Load(ctx context.Context, namespace, client string, dest interface{}) error {
	var raw string
	if err := s.kv.Get(ctx, StateKey(namespace, client), &raw); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("load %s: %w", namespace, err)
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return fmt.Errorf("decode %s: %w", namespace, err)
	}
	if len(env.State) == 0 || string(env.State) == "null" {
		return repository.ErrNotFound
	}
	if err := json.Unmarshal(env.State, dest); err != nil {
		return fmt.Errorf("decode %s state: %w", namespace, err)
	}
	return nil
}

func (s *KVStateStore) Save(ctx context.Context, namespace, client string, state interface{}) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}
	out, err := json.Marshal(envelope{State: b})
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}
	if err := s.kv.Set(ctx, StateKey(namespace, client), string(out), 0); err != nil {
		return fmt.Errorf("save %s: %w", namespace, err)
	}
	return nil
}

func (s *KVStateStore) Clear(ctx context.Context, namespace, client string) error {
	if err := s.kv.Delete(ctx, StateKey(namespace, client)); err != nil {
		return fmt.Errorf("clear %s: %w", namespace, err)
	}
	return nil
}

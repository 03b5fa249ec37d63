package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/domain/repository"
	"SignalDash/pkg/cache"
)

const exportPrefix = "export-storage"

// KVExportStore keeps export jobs in the key-value store with a TTL.
type KVExportStore struct {
	kv  cache.Service
	ttl time.Duration
}

func NewKVExportStore(kv cache.Service, ttl time.Duration) repository.ExportStore {
	return &KVExportStore{kv: kv, ttl: ttl}
}

func (s *KVExportStore) Save(ctx context.Context, job *models.ExportJob) error {
	if err := s.kv.Set(ctx, cache.GenerateKey(exportPrefix, job.ID), job, s.ttl); err != nil {
		return fmt.Errorf("save export %s: %w", job.ID, err)
	}
	return nil
}

func (s *KVExportStore) Get(ctx context.Context, id string) (*models.ExportJob, error) {
	var job models.ExportJob
	if err := s.kv.Get(ctx, cache.GenerateKey(exportPrefix, id), &job); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load export %s: %w", id, err)
	}
	return &job, nil
}

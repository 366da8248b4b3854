package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

// RecordStore is the single writer for one persisted record collection.
// It deduplicates by a caller-supplied key and replaces the backing blob
// wholesale on every merge. The read-modify-write cycle is guarded by a
// mutex so concurrent merges cannot lose records.
type RecordStore[T any] struct {
	blob  BlobStore
	key   string
	keyFn func(T) string

	mu      sync.Mutex
	records []T
	loaded  bool
}

func NewRecordStore[T any](blob BlobStore, key string, keyFn func(T) string) *RecordStore[T] {
	return &RecordStore[T]{blob: blob, key: key, keyFn: keyFn}
}

// Merge appends the incoming records whose dedup key is not already
// present and persists the new collection. The returned counts are exact;
// merging the same batch twice is a no-op on the second pass.
//
// A persistence failure is returned alongside valid counts: the in-memory
// collection stays consistent even when durability failed.
func (s *RecordStore[T]) Merge(ctx context.Context, incoming []T) (domain.MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)

	existing := make(map[string]struct{}, len(s.records))
	for _, rec := range s.records {
		existing[s.keyFn(rec)] = struct{}{}
	}

	var result domain.MergeResult
	for _, rec := range incoming {
		key := s.keyFn(rec)
		if _, dup := existing[key]; dup {
			result.Duplicates++
			continue
		}
		// Claim the key immediately so a batch with internal duplicates
		// cannot break uniqueness of the persisted set.
		existing[key] = struct{}{}
		s.records = append(s.records, rec)
		result.Added++
	}

	if result.Added > 0 {
		if err := s.persist(ctx); err != nil {
			return result, fmt.Errorf("merge into %s: %w", s.key, err)
		}
	}

	return result, nil
}

// Snapshot returns a copy of the current collection.
func (s *RecordStore[T]) Snapshot(ctx context.Context) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)

	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Clear empties the persisted collection unconditionally.
func (s *RecordStore[T]) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.loaded = true
	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	return nil
}

// load reads the backing blob once. A missing or malformed blob reads as
// an empty collection; ingestion must keep working when persisted state
// is unavailable.
func (s *RecordStore[T]) load(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.blob.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("store", s.key).Msg("unreadable persisted store, treating as empty")
		return
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Err(err).Str("store", s.key).Msg("malformed persisted store, treating as empty")
		return
	}
	s.records = records
}

func (s *RecordStore[T]) persist(ctx context.Context) error {
	records := s.records
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	return s.blob.Put(ctx, s.key, data)
}

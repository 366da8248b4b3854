package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

type item struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func itemKey(i item) string { return i.ID }

func newTestStore() (*RecordStore[item], *MemoryBlobStore) {
	blob := NewMemoryBlobStore()
	return NewRecordStore(blob, "items", itemKey), blob
}

func TestMergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	batch := []item{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	result, err := s.Merge(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 3, Duplicates: 0}, result)

	result, err = s.Merge(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 0, Duplicates: 3}, result)

	assert.Len(t, s.Snapshot(ctx), 3)
}

func TestMergeDedupArithmetic(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	_, err := s.Merge(ctx, []item{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)

	result, err := s.Merge(ctx, []item{{ID: "b"}, {ID: "c"}, {ID: "d"}})
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 2, Duplicates: 1}, result)
	assert.Len(t, s.Snapshot(ctx), 4)
}

func TestMergeDeduplicatesWithinBatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	result, err := s.Merge(ctx, []item{{ID: "a"}, {ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 2, Duplicates: 1}, result)
}

func TestMergeKeepsExistingRecordOnDuplicate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	_, err := s.Merge(ctx, []item{{ID: "a", Value: 1}})
	require.NoError(t, err)
	_, err = s.Merge(ctx, []item{{ID: "a", Value: 2}})
	require.NoError(t, err)

	snapshot := s.Snapshot(ctx)
	require.Len(t, snapshot, 1)
	assert.Equal(t, 1, snapshot[0].Value)
}

func TestMergePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlobStore()

	first := NewRecordStore(blob, "items", itemKey)
	_, err := first.Merge(ctx, []item{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)

	second := NewRecordStore(blob, "items", itemKey)
	result, err := second.Merge(ctx, []item{{ID: "b"}, {ID: "c"}})
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 1, Duplicates: 1}, result)
}

func TestMalformedBlobReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlobStore()
	require.NoError(t, blob.Put(ctx, "items", []byte("{not json")))

	s := NewRecordStore(blob, "items", itemKey)
	assert.Empty(t, s.Snapshot(ctx))

	result, err := s.Merge(ctx, []item{{ID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 1, Duplicates: 0}, result)
}

func TestClearEmptiesCollection(t *testing.T) {
	ctx := context.Background()
	s, blob := newTestStore()

	_, err := s.Merge(ctx, []item{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Snapshot(ctx))

	data, err := blob.Get(ctx, "items")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestClearOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Snapshot(ctx))
}

// failingBlobStore accepts reads but rejects writes.
type failingBlobStore struct {
	BlobStore
}

var errDiskFull = errors.New("disk full")

func (f failingBlobStore) Put(context.Context, string, []byte) error { return errDiskFull }

func TestMergeSurfacesWriteFailureWithValidCounts(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore[item](failingBlobStore{NewMemoryBlobStore()}, "items", itemKey)

	result, err := s.Merge(ctx, []item{{ID: "a"}, {ID: "b"}})
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, domain.MergeResult{Added: 2, Duplicates: 0}, result)

	// The in-memory collection stays consistent even though durability failed.
	assert.Len(t, s.Snapshot(ctx), 2)
	result, err = s.Merge(ctx, []item{{ID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 0, Duplicates: 1}, result)
}

func TestMergeWithOnlyDuplicatesSkipsPersist(t *testing.T) {
	ctx := context.Background()
	blob := NewMemoryBlobStore()
	s := NewRecordStore(blob, "items", itemKey)

	_, err := s.Merge(ctx, []item{{ID: "a"}})
	require.NoError(t, err)

	// Swap in a failing backend: a merge that adds nothing must not write.
	s.blob = failingBlobStore{blob}
	result, err := s.Merge(ctx, []item{{ID: "a"}})
	require.NoError(t, err)
	assert.Equal(t, domain.MergeResult{Added: 0, Duplicates: 1}, result)
}

func TestSnapshotReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	_, err := s.Merge(ctx, []item{{ID: "a", Value: 1}})
	require.NoError(t, err)

	snapshot := s.Snapshot(ctx)
	snapshot[0].Value = 99
	assert.Equal(t, 1, s.Snapshot(ctx)[0].Value)
}

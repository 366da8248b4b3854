// internal/service/ingest_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/cache"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/parser"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/storage"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/store"
)

// ErrNothingToImport distinguishes a well-formed file with zero usable
// rows from a mid-file error. Nothing is merged in that case.
var ErrNothingToImport = errors.New("service: no usable rows in file")

// ImportResult is the operator-facing ingestion feedback. The counts are
// exact: reimporting the same file reports every record as a duplicate.
type ImportResult struct {
	Records     int `json:"records"`
	Added       int `json:"added"`
	Duplicates  int `json:"duplicates"`
	ParseErrors int `json:"parse_errors"`
}

// IngestService orchestrates parse, merge, archival and cache
// invalidation for uploaded export files.
type IngestService struct {
	items     *store.RecordStore[domain.OrderRecord]
	summaries *store.RecordStore[domain.SaleSummaryRecord]
	archive   storage.ObjectStorage // nil disables archival
	cache     cache.AnalyticsCache
}

func NewIngestService(
	items *store.RecordStore[domain.OrderRecord],
	summaries *store.RecordStore[domain.SaleSummaryRecord],
	archive storage.ObjectStorage,
	analyticsCache cache.AnalyticsCache,
) *IngestService {
	if analyticsCache == nil {
		analyticsCache = cache.NewNoopAnalyticsCache()
	}
	return &IngestService{
		items:     items,
		summaries: summaries,
		archive:   archive,
		cache:     analyticsCache,
	}
}

// ImportOrderItems parses an order-items export and merges the line items
// into the persisted set, deduplicating by transaction identifier.
func (s *IngestService) ImportOrderItems(ctx context.Context, filename, text string) (*ImportResult, error) {
	records, parseErrors := parser.ParseOrderItems(text)
	if len(records) == 0 {
		return nil, ErrNothingToImport
	}

	merge, err := s.items.Merge(ctx, records)
	s.finishImport(ctx, "order items", filename, text, err)

	return &ImportResult{
		Records:     len(records),
		Added:       merge.Added,
		Duplicates:  merge.Duplicates,
		ParseErrors: parseErrors,
	}, nil
}

// ImportSoldOrders parses a sold-orders export and merges the per-order
// summaries, deduplicating by order identifier.
func (s *IngestService) ImportSoldOrders(ctx context.Context, filename, text string) (*ImportResult, error) {
	records, parseErrors := parser.ParseSoldOrders(text)
	if len(records) == 0 {
		return nil, ErrNothingToImport
	}

	merge, err := s.summaries.Merge(ctx, records)
	s.finishImport(ctx, "sold orders", filename, text, err)

	return &ImportResult{
		Records:     len(records),
		Added:       merge.Added,
		Duplicates:  merge.Duplicates,
		ParseErrors: parseErrors,
	}, nil
}

// finishImport handles the shared tail of an import: a durability failure
// is logged but never aborts the flow (the in-memory set stays
// consistent), the raw file is archived best-effort, and derived caches
// are invalidated.
func (s *IngestService) finishImport(ctx context.Context, kind, filename, text string, mergeErr error) {
	if mergeErr != nil {
		log.Warn().Err(mergeErr).Str("file", filename).Msgf("%s merge persisted with errors", kind)
	}

	if s.archive != nil {
		key := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102T150405"), filepath.Base(filename))
		if err := s.archive.UploadObject(ctx, key, []byte(text)); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to archive raw export")
		}
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}

	log.Info().Str("file", filename).Msgf("%s imported", kind)
}

// ClearOrders empties both persisted collections unconditionally.
// Confirmation is a UI concern, not handled here.
func (s *IngestService) ClearOrders(ctx context.Context) error {
	var errs []error
	if err := s.items.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.summaries.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}
	return errors.Join(errs...)
}

// OrderItems returns a snapshot of the persisted line items.
func (s *IngestService) OrderItems(ctx context.Context) []domain.OrderRecord {
	return s.items.Snapshot(ctx)
}

// SoldOrders returns a snapshot of the persisted order summaries.
func (s *IngestService) SoldOrders(ctx context.Context) []domain.SaleSummaryRecord {
	return s.summaries.Snapshot(ctx)
}

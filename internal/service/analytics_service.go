package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/cache"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/forecast"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/region"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/store"
)

// AnalyticsService serves the derived views: reorder forecasts from
// caller-supplied catalog data, and regional stats from the persisted
// order summaries.
type AnalyticsService struct {
	summaries *store.RecordStore[domain.SaleSummaryRecord]
	cache     cache.AnalyticsCache
}

func NewAnalyticsService(summaries *store.RecordStore[domain.SaleSummaryRecord], analyticsCache cache.AnalyticsCache) *AnalyticsService {
	if analyticsCache == nil {
		analyticsCache = cache.NewNoopAnalyticsCache()
	}
	return &AnalyticsService{summaries: summaries, cache: analyticsCache}
}

// Forecast recomputes reorder forecasts for the supplied catalog.
// A zero asOf defaults to today.
func (s *AnalyticsService) Forecast(ctx context.Context, components []domain.Component, events []domain.ConsumptionEvent, asOf time.Time) ([]domain.ForecastResult, error) {
	return forecast.Run(ctx, components, events, asOf)
}

// RegionalStats aggregates the persisted summaries by shipping region,
// with a short-lived cache in front since the view only changes on
// ingestion.
func (s *AnalyticsService) RegionalStats(ctx context.Context) (*domain.RegionalStats, error) {
	if stats, ok, err := s.cache.GetRegionalStats(ctx); err == nil && ok {
		return stats, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("regional stats: cache get failed")
	}

	orders := s.summaries.Snapshot(ctx)
	stats := region.Stats(orders)

	if err := s.cache.SetRegionalStats(ctx, &stats); err != nil {
		log.Warn().Err(err).Msg("regional stats: cache set failed")
	}

	return &stats, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/forecast"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/store"
)

func newTestAnalyticsService(t *testing.T, orders []domain.SaleSummaryRecord) *AnalyticsService {
	t.Helper()
	summaries := store.NewRecordStore(store.NewMemoryBlobStore(), "sold_orders", func(r domain.SaleSummaryRecord) string {
		return r.OrderID
	})
	if len(orders) > 0 {
		_, err := summaries.Merge(context.Background(), orders)
		require.NoError(t, err)
	}
	return NewAnalyticsService(summaries, nil)
}

func TestRegionalStats(t *testing.T) {
	svc := newTestAnalyticsService(t, []domain.SaleSummaryRecord{
		{OrderID: "1", ShipState: "CA", ShipCountry: "United States", OrderValue: 10},
		{OrderID: "2", ShipState: "CA", ShipCountry: "United States", OrderValue: 20},
		{OrderID: "3", ShipState: "ON", ShipCountry: "Canada", OrderValue: 5},
	})

	stats, err := svc.RegionalStats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.ByState, 1)
	assert.Equal(t, "CA", stats.ByState[0].Code)
	assert.Equal(t, 2, stats.ByState[0].Count)

	require.Len(t, stats.ByCountry, 2)
	assert.Equal(t, "United States", stats.ByCountry[0].Code)
}

func TestForecastRejectsNilCatalog(t *testing.T) {
	svc := newTestAnalyticsService(t, nil)
	_, err := svc.Forecast(context.Background(), nil, nil, time.Now())
	assert.ErrorIs(t, err, forecast.ErrNilComponents)
}

func TestForecastDelegates(t *testing.T) {
	svc := newTestAnalyticsService(t, nil)

	results, err := svc.Forecast(context.Background(), []domain.Component{{ID: "c1"}}, nil, time.Time{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.RiskOK, results[0].RiskStatus)
}

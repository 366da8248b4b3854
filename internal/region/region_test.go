package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

func order(id, state, country string, value float64) domain.SaleSummaryRecord {
	return domain.SaleSummaryRecord{
		OrderID:     id,
		ShipState:   state,
		ShipCountry: country,
		OrderValue:  value,
	}
}

func TestStats(t *testing.T) {
	orders := []domain.SaleSummaryRecord{
		order("1", "ca", "United States", 10),
		order("2", "CA", "United States", 20),
		order("3", "Ca", "United States", 30),
		order("4", "NY", "United States", 5),
		order("5", "ny", "United States", 5),
		order("6", "ON", "Canada", 40),
	}

	stats := Stats(orders)

	require.Len(t, stats.ByState, 2)
	assert.Equal(t, domain.RegionStat{Code: "CA", Label: "CA", Count: 3, Revenue: 60}, stats.ByState[0])
	assert.Equal(t, domain.RegionStat{Code: "NY", Label: "NY", Count: 2, Revenue: 10}, stats.ByState[1])

	require.Len(t, stats.ByCountry, 2)
	assert.Equal(t, "United States", stats.ByCountry[0].Code)
	assert.Equal(t, 5, stats.ByCountry[0].Count)
	assert.Equal(t, 70.0, stats.ByCountry[0].Revenue)
	assert.Equal(t, domain.RegionStat{Code: "Canada", Label: "Canada", Count: 1, Revenue: 40}, stats.ByCountry[1])
}

func TestStatsExcludesBlankRegions(t *testing.T) {
	orders := []domain.SaleSummaryRecord{
		order("1", "", "United States", 10), // counts toward country, not state
		order("2", "TX", "  ", 20),          // blank country dropped entirely
		order("3", "CA", "United States", 30),
	}

	stats := Stats(orders)

	require.Len(t, stats.ByState, 1)
	assert.Equal(t, "CA", stats.ByState[0].Code)

	require.Len(t, stats.ByCountry, 1)
	assert.Equal(t, 2, stats.ByCountry[0].Count)
	assert.Equal(t, 40.0, stats.ByCountry[0].Revenue)
}

func TestStatsNonUSStatesIgnored(t *testing.T) {
	orders := []domain.SaleSummaryRecord{
		order("1", "ON", "Canada", 10),
	}

	stats := Stats(orders)
	assert.Empty(t, stats.ByState)
	require.Len(t, stats.ByCountry, 1)
}

func TestStatsEmptyInput(t *testing.T) {
	stats := Stats(nil)
	assert.Empty(t, stats.ByState)
	assert.Empty(t, stats.ByCountry)
}

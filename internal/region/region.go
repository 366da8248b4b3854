// Package region aggregates persisted order summaries by shipping region.
// Revenue is added once per order, which is why the aggregator consumes
// order-level summary records rather than line items.
package region

import (
	"sort"
	"strings"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

const countryUnitedStates = "United States"

// Stats groups orders into a US-state view and a country view.
// The state view covers only United States orders with a non-blank state
// code; those orders still count toward the country view. Both views are
// sorted descending by order count; tie order is unspecified.
func Stats(orders []domain.SaleSummaryRecord) domain.RegionalStats {
	byState := make(map[string]*domain.RegionStat)
	byCountry := make(map[string]*domain.RegionStat)

	for _, o := range orders {
		country := strings.TrimSpace(o.ShipCountry)
		if country == "" {
			continue
		}
		accumulate(byCountry, country, country, o.OrderValue)

		if country == countryUnitedStates {
			state := strings.ToUpper(strings.TrimSpace(o.ShipState))
			if state != "" {
				accumulate(byState, state, state, o.OrderValue)
			}
		}
	}

	return domain.RegionalStats{
		ByState:   sortedStats(byState),
		ByCountry: sortedStats(byCountry),
	}
}

func accumulate(stats map[string]*domain.RegionStat, code, label string, revenue float64) {
	stat, ok := stats[code]
	if !ok {
		stat = &domain.RegionStat{Code: code, Label: label}
		stats[code] = stat
	}
	stat.Count++
	stat.Revenue += revenue
}

func sortedStats(stats map[string]*domain.RegionStat) []domain.RegionStat {
	out := make([]domain.RegionStat, 0, len(stats))
	for _, stat := range stats {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

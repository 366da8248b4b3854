package forecast

import (
	"context"
	"errors"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

// ErrNilComponents flags programmer-error misuse. Data-quality problems
// never error; a nil catalog is not a data-quality problem.
var ErrNilComponents = errors.New("forecast: nil component list")

// Risk boundaries in days-until-reorder. Boundaries are inclusive on the
// stricter side: exactly 3 is critical, exactly 7 is warning.
const (
	criticalDays = 3
	warningDays  = 7
)

// RiskFromDays classifies days-until-reorder. A component with no recent
// consumption (infinite days) is never due to reorder, so it reads OK
// regardless of stock level.
func RiskFromDays(daysUntilReorder float64) domain.RiskStatus {
	switch {
	case math.IsInf(daysUntilReorder, 1):
		return domain.RiskOK
	case daysUntilReorder <= criticalDays:
		return domain.RiskCritical
	case daysUntilReorder <= warningDays:
		return domain.RiskWarning
	default:
		return domain.RiskOK
	}
}

// Build computes the forecast for one component from its average daily
// consumption. Zero consumption yields the +Inf sentinel for both day
// counts and a nil predicted date. A negative days-until-reorder (already
// past the reorder point) predicts a reorder today, never in the past.
func Build(c domain.Component, avgDaily float64, asOf time.Time) domain.ForecastResult {
	reorderPoint := avgDaily*c.LeadTimeDays + c.SafetyStock

	daysUntilReorder := math.Inf(1)
	daysOfStock := math.Inf(1)
	if avgDaily > 0 {
		daysUntilReorder = (c.CurrentStock - reorderPoint) / avgDaily
		daysOfStock = c.CurrentStock / avgDaily
	}

	var predicted *time.Time
	if !math.IsInf(daysUntilReorder, 1) {
		d := day(asOf).AddDate(0, 0, int(math.Floor(math.Max(0, daysUntilReorder))))
		predicted = &d
	}

	return domain.ForecastResult{
		ComponentID:          c.ID,
		AvgDailyConsumption:  avgDaily,
		ReorderPoint:         reorderPoint,
		DaysUntilReorder:     daysUntilReorder,
		DaysOfStockRemaining: daysOfStock,
		RiskStatus:           RiskFromDays(daysUntilReorder),
		PredictedReorderDate: predicted,
		TotalInventoryValue:  c.CurrentStock * c.UnitCost,
	}
}

// Run forecasts every component in the catalog. Each component depends
// only on its own consumption slice, so the work fans out across CPUs.
// Results keep catalog order.
func Run(ctx context.Context, components []domain.Component, events []domain.ConsumptionEvent, asOf time.Time) ([]domain.ForecastResult, error) {
	if components == nil {
		return nil, ErrNilComponents
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	// Slice the log per component once instead of rescanning it per item.
	byComponent := make(map[string][]domain.ConsumptionEvent)
	for _, ev := range events {
		byComponent[ev.ComponentID] = append(byComponent[ev.ComponentID], ev)
	}

	results := make([]domain.ForecastResult, len(components))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range components {
		g.Go(func() error {
			avg := AverageDailyConsumption(byComponent[c.ID], c.ID, asOf)
			results[i] = Build(c, avg, asOf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// internal/domain/models.go
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Component is a catalog item that inventory forecasting runs against.
// The catalog collaborator owns it; it is immutable within a forecast run.
type Component struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock"`
	UnitCost     float64 `json:"unit_cost"`
	Supplier     string  `json:"supplier"`
	LeadTimeDays float64 `json:"lead_time_days"`
	SafetyStock  float64 `json:"safety_stock"`
	ReorderQty   float64 `json:"reorder_qty"`
}

// ConsumptionEvent records units of a component consumed on a calendar day.
// The log is append-only; duplicate (component, date) entries simply sum.
type ConsumptionEvent struct {
	ComponentID string    `json:"component_id"`
	Date        time.Time `json:"date"`
	Units       float64   `json:"units"`
}

// ForecastResult is derived on demand and never persisted.
// DaysUntilReorder and DaysOfStockRemaining are +Inf when the component has
// no recent consumption; PredictedReorderDate is nil in that case.
type ForecastResult struct {
	ComponentID          string     `json:"component_id"`
	AvgDailyConsumption  float64    `json:"avg_daily_consumption"`
	ReorderPoint         float64    `json:"reorder_point"`
	DaysUntilReorder     float64    `json:"-"`
	DaysOfStockRemaining float64    `json:"-"`
	RiskStatus           RiskStatus `json:"risk_status"`
	PredictedReorderDate *time.Time `json:"-"`
	TotalInventoryValue  float64    `json:"total_inventory_value"`
}

// MarshalJSON emits null for the non-finite day counts so payloads stay
// valid JSON, and formats the predicted date at day granularity.
func (r ForecastResult) MarshalJSON() ([]byte, error) {
	type alias ForecastResult
	return json.Marshal(struct {
		alias
		DaysUntilReorder     *float64 `json:"days_until_reorder"`
		DaysOfStockRemaining *float64 `json:"days_of_stock_remaining"`
		PredictedReorderDate *string  `json:"predicted_reorder_date"`
	}{
		alias:                alias(r),
		DaysUntilReorder:     finiteOrNil(r.DaysUntilReorder),
		DaysOfStockRemaining: finiteOrNil(r.DaysOfStockRemaining),
		PredictedReorderDate: dateOrNil(r.PredictedReorderDate),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func dateOrNil(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// OrderRecord is one transaction line item from the order-items export.
// TransactionID is the dedup key; several line items share one OrderID.
type OrderRecord struct {
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	SaleDate      time.Time `json:"sale_date"`
	ItemName      string    `json:"item_name"`
	ShipName      string    `json:"ship_name"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	Discount      float64   `json:"discount"`
	Shipping      float64   `json:"shipping"`
	LineTotal     float64   `json:"line_total"`
	ShippedDate   time.Time `json:"shipped_date"` // zero value means unshipped
	ShipCity      string    `json:"ship_city"`
	ShipState     string    `json:"ship_state"`
	ShipCountry   string    `json:"ship_country"`
}

// SaleSummaryRecord is one row per order from the sold-orders export,
// used for regional mapping. OrderID is the dedup key.
type SaleSummaryRecord struct {
	OrderID     string    `json:"order_id"`
	SaleDate    time.Time `json:"sale_date"`
	BuyerName   string    `json:"buyer_name"`
	ShipCity    string    `json:"ship_city"`
	ShipState   string    `json:"ship_state"`
	ShipCountry string    `json:"ship_country"`
	OrderValue  float64   `json:"order_value"`
	ItemCount   int       `json:"item_count"`
}

// Listing is one row from the listings export. The tag-generation and SEO
// collaborators consume these; the core only parses them.
type Listing struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Tags        []string `json:"tags"`
	Materials   string   `json:"materials"`
	ImageURLs   []string `json:"image_urls"`
	SKU         string   `json:"sku"`
}

// RegionStat is a derived aggregate keyed by region code. Not persisted.
type RegionStat struct {
	Code    string  `json:"code"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// RegionalStats groups order summaries by US state and by country.
type RegionalStats struct {
	ByState   []RegionStat `json:"by_state"`
	ByCountry []RegionStat `json:"by_country"`
}

// MergeResult reports exact ingestion feedback for an idempotent merge.
type MergeResult struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
}

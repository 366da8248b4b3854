package parser

import (
	"github.com/mojavemfg/mfgdashboard-sub000/internal/domain"
)

// Column positions for the sold-orders export (one row per order).
// The layout is fixed by the storefront's export flow, not auto-detected.
const (
	soldOrderColSaleDate    = 0
	soldOrderColOrderID     = 1
	soldOrderColBuyerUserID = 2
	soldOrderColFullName    = 3
	soldOrderColItemCount   = 4
	soldOrderColPayment     = 5
	soldOrderColDateShipped = 6
	soldOrderColShipCity    = 7
	soldOrderColShipState   = 8
	soldOrderColShipZip     = 9
	soldOrderColShipCountry = 10
	soldOrderColCurrency    = 11
	soldOrderColOrderValue  = 12
)

// Column positions for the order-items export (one row per line item).
// A superset schema from a separate export flow.
const (
	orderItemColSaleDate      = 0
	orderItemColItemName      = 1
	orderItemColBuyer         = 2
	orderItemColQuantity      = 3
	orderItemColPrice         = 4
	orderItemColDiscount      = 5
	orderItemColShipping      = 6
	orderItemColItemTotal     = 7
	orderItemColCurrency      = 8
	orderItemColTransactionID = 9
	orderItemColListingID     = 10
	orderItemColDateShipped   = 11
	orderItemColShipName      = 12
	orderItemColShipCity      = 13
	orderItemColShipState     = 14
	orderItemColShipCountry   = 15
	orderItemColOrderID       = 16
)

// ParseSoldOrders maps a sold-orders export into summary records.
// The returned count is the number of rows skipped for a missing key
// field; malformed rows never abort the file.
func ParseSoldOrders(text string) ([]domain.SaleSummaryRecord, int) {
	records := SplitRecords(text)
	if len(records) <= 1 {
		return nil, 0
	}

	out := make([]domain.SaleSummaryRecord, 0, len(records)-1)
	parseErrors := 0
	for _, rec := range records[1:] {
		summary, ok := mapSoldOrder(row{DecodeFields(rec)})
		if !ok {
			parseErrors++
			continue
		}
		out = append(out, summary)
	}

	return out, parseErrors
}

func mapSoldOrder(r row) (domain.SaleSummaryRecord, bool) {
	orderID := r.get(soldOrderColOrderID)
	if orderID == "" {
		return domain.SaleSummaryRecord{}, false
	}

	return domain.SaleSummaryRecord{
		OrderID:     orderID,
		SaleDate:    r.date(soldOrderColSaleDate),
		BuyerName:   r.get(soldOrderColFullName),
		ShipCity:    r.get(soldOrderColShipCity),
		ShipState:   r.get(soldOrderColShipState),
		ShipCountry: r.get(soldOrderColShipCountry),
		OrderValue:  r.float(soldOrderColOrderValue),
		ItemCount:   r.int(soldOrderColItemCount),
	}, true
}

// ParseOrderItems maps an order-items export into line-item records.
func ParseOrderItems(text string) ([]domain.OrderRecord, int) {
	records := SplitRecords(text)
	if len(records) <= 1 {
		return nil, 0
	}

	out := make([]domain.OrderRecord, 0, len(records)-1)
	parseErrors := 0
	for _, rec := range records[1:] {
		item, ok := mapOrderItem(row{DecodeFields(rec)})
		if !ok {
			parseErrors++
			continue
		}
		out = append(out, item)
	}

	return out, parseErrors
}

func mapOrderItem(r row) (domain.OrderRecord, bool) {
	transactionID := r.get(orderItemColTransactionID)
	if transactionID == "" {
		return domain.OrderRecord{}, false
	}

	item := domain.OrderRecord{
		TransactionID: transactionID,
		OrderID:       r.get(orderItemColOrderID),
		SaleDate:      r.date(orderItemColSaleDate),
		ItemName:      r.get(orderItemColItemName),
		ShipName:      r.get(orderItemColShipName),
		Quantity:      r.int(orderItemColQuantity),
		UnitPrice:     r.float(orderItemColPrice),
		Discount:      r.float(orderItemColDiscount),
		Shipping:      r.float(orderItemColShipping),
		LineTotal:     r.float(orderItemColItemTotal),
		ShippedDate:   r.date(orderItemColDateShipped),
		ShipCity:      r.get(orderItemColShipCity),
		ShipState:     r.get(orderItemColShipState),
		ShipCountry:   r.get(orderItemColShipCountry),
	}

	// Older exports leave the item-total column blank; recompute it from
	// the priced columns so the line total is always populated.
	if item.LineTotal == 0 {
		item.LineTotal = float64(item.Quantity)*item.UnitPrice - item.Discount + item.Shipping
	}

	return item, true
}

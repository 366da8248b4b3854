package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soldOrdersHeader = "Sale Date,Order ID,Buyer User ID,Full Name,Number of Items,Payment Method,Date Shipped,Ship City,Ship State,Ship Zipcode,Ship Country,Currency,Order Value\n"

const orderItemsHeader = "Sale Date,Item Name,Buyer,Quantity,Price,Discount Amount,Order Shipping,Item Total,Currency,Transaction ID,Listing ID,Date Shipped,Ship Name,Ship City,Ship State,Ship Country,Order ID\n"

func TestParseSoldOrders(t *testing.T) {
	text := soldOrdersHeader +
		"2026-03-01,1001,buyer1,Ada Lovelace,2,card,2026-03-03,Portland,or,97201,United States,USD,\"1,250.00\"\n" +
		"03/04/2026,1002,buyer2,Grace Hopper,1,paypal,,Toronto,ON,M5H,Canada,CAD,80\n"

	orders, parseErrors := ParseSoldOrders(text)
	require.Len(t, orders, 2)
	assert.Zero(t, parseErrors)

	first := orders[0]
	assert.Equal(t, "1001", first.OrderID)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), first.SaleDate)
	assert.Equal(t, "Ada Lovelace", first.BuyerName)
	assert.Equal(t, "or", first.ShipState)
	assert.Equal(t, "United States", first.ShipCountry)
	assert.Equal(t, 1250.0, first.OrderValue)
	assert.Equal(t, 2, first.ItemCount)

	// US-style date fallback
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), orders[1].SaleDate)
}

func TestParseSoldOrdersSkipsRowsWithoutOrderID(t *testing.T) {
	text := soldOrdersHeader +
		"2026-03-01,,buyer1,No Key,1,card,,Nowhere,XX,0,United States,USD,10\n" +
		"2026-03-02,1003,buyer2,Has Key,1,card,,Austin,TX,73301,United States,USD,20\n"

	orders, parseErrors := ParseSoldOrders(text)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, parseErrors)
	assert.Equal(t, "1003", orders[0].OrderID)
}

func TestParseSoldOrdersHeaderOnly(t *testing.T) {
	orders, parseErrors := ParseSoldOrders(soldOrdersHeader)
	assert.Nil(t, orders)
	assert.Zero(t, parseErrors)
}

func TestParseSoldOrdersEmptyInput(t *testing.T) {
	orders, parseErrors := ParseSoldOrders("")
	assert.Nil(t, orders)
	assert.Zero(t, parseErrors)
}

func TestParseOrderItems(t *testing.T) {
	text := orderItemsHeader +
		"2026-03-01,Ceramic Mug,buyer1,2,15.00,1.00,4.50,33.50,USD,tx-1,li-9,2026-03-02,Ada Lovelace,Portland,OR,United States,1001\n"

	items, parseErrors := ParseOrderItems(text)
	require.Len(t, items, 1)
	assert.Zero(t, parseErrors)

	item := items[0]
	assert.Equal(t, "tx-1", item.TransactionID)
	assert.Equal(t, "1001", item.OrderID)
	assert.Equal(t, "Ceramic Mug", item.ItemName)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 15.0, item.UnitPrice)
	assert.Equal(t, 1.0, item.Discount)
	assert.Equal(t, 4.5, item.Shipping)
	assert.Equal(t, 33.5, item.LineTotal)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), item.ShippedDate)
}

func TestParseOrderItemsRecomputesBlankLineTotal(t *testing.T) {
	text := orderItemsHeader +
		"2026-03-01,Ceramic Mug,buyer1,2,15.00,1.00,4.50,,USD,tx-2,li-9,,Ada Lovelace,Portland,OR,United States,1001\n"

	items, parseErrors := ParseOrderItems(text)
	require.Len(t, items, 1)
	assert.Zero(t, parseErrors)

	// 2*15.00 - 1.00 + 4.50
	assert.Equal(t, 33.5, items[0].LineTotal)
	assert.True(t, items[0].ShippedDate.IsZero())
}

func TestParseOrderItemsSkipsRowsWithoutTransactionID(t *testing.T) {
	text := orderItemsHeader +
		"2026-03-01,Mug,buyer1,1,10,0,0,10,USD,,li-1,,A,Portland,OR,United States,1001\n" +
		"not,really,a,row\n"

	items, parseErrors := ParseOrderItems(text)
	assert.Empty(t, items)
	assert.Equal(t, 2, parseErrors)
}

func TestParseOrderItemsShortRowReadsMissingColumnsAsZero(t *testing.T) {
	// Row truncated after the transaction ID column.
	text := orderItemsHeader +
		"2026-03-01,Mug,buyer1,1,10,0,0,10,USD,tx-3\n"

	items, parseErrors := ParseOrderItems(text)
	require.Len(t, items, 1)
	assert.Zero(t, parseErrors)
	assert.Equal(t, "tx-3", items[0].TransactionID)
	assert.Empty(t, items[0].OrderID)
	assert.Empty(t, items[0].ShipCountry)
}

func TestRowNumericCoercion(t *testing.T) {
	r := row{fields: []string{"3.0", "1,204.50", "not a number", " 7 "}}

	assert.Equal(t, 3, r.int(0))
	assert.Equal(t, 1204.5, r.float(1))
	assert.Equal(t, 0.0, r.float(2))
	assert.Equal(t, 7.0, r.float(3))
	assert.Equal(t, 0.0, r.float(99))
}

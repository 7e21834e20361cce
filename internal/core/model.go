package core

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog item read from product.product.
type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	ListPrice       decimal.Decimal `json:"list_price"`
	SaleDescription string          `json:"description_sale,omitempty"`
}

// Partner is a customer/contact record from res.partner.
type Partner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Journal is an accounting journal from account.journal, carrying the
// inbound payment method lines used to route incoming payments.
type Journal struct {
	ID             int64
	Name           string
	Type           string
	InboundLineIDs []int64
}

// Order is a sales order as read back from sale.order.
type Order struct {
	ID           int64
	Name         string
	DateOrder    string // naive UTC timestamp, "2006-01-02 15:04:05"
	State        string
	OrderLineIDs []int64
	AmountTotal  decimal.Decimal
	CurrencyName string
}

// OrderLine is a single sale.order.line used when rendering order items.
type OrderLine struct {
	ProductName string
	Description string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	Subtotal    decimal.Decimal
}

// PaymentRoute is the journal and payment method line a payment
// registration is routed through.
type PaymentRoute struct {
	JournalID    int64
	MethodLineID int64
}

// Odoo's XML-RPC layer hands every record back as map[string]any with
// loosely typed values: ints arrive as int64, unset fields as boolean
// false, and many2one references as [id, display_name] pairs. The helpers
// below absorb those conventions in one place.

func fieldInt64(rec map[string]any, key string) int64 {
	v, _ := asInt64(rec[key])
	return v
}

func fieldString(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

func fieldDecimal(rec map[string]any, key string) decimal.Decimal {
	switch v := rec[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	default:
		return decimal.Zero
	}
}

// fieldMany2One decodes an [id, display_name] pair. Odoo sends boolean
// false when the reference is unset.
func fieldMany2One(rec map[string]any, key string) (int64, string, bool) {
	pair, ok := rec[key].([]any)
	if !ok || len(pair) < 2 {
		return 0, "", false
	}
	id, ok := asInt64(pair[0])
	if !ok {
		return 0, "", false
	}
	name, _ := pair[1].(string)
	return id, name, true
}

// fieldIDList decodes a one2many/many2many id list.
func fieldIDList(rec map[string]any, key string) []int64 {
	list, ok := rec[key].([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(list))
	for _, item := range list {
		if id, ok := asInt64(item); ok {
			out = append(out, id)
		}
	}
	return out
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func productFromRecord(rec map[string]any) Product {
	return Product{
		ID:              fieldInt64(rec, "id"),
		Name:            fieldString(rec, "name"),
		ListPrice:       fieldDecimal(rec, "list_price"),
		SaleDescription: fieldString(rec, "description_sale"),
	}
}

func journalFromRecord(rec map[string]any) Journal {
	return Journal{
		ID:             fieldInt64(rec, "id"),
		Name:           fieldString(rec, "name"),
		Type:           fieldString(rec, "type"),
		InboundLineIDs: fieldIDList(rec, "inbound_payment_method_line_ids"),
	}
}

func orderFromRecord(rec map[string]any) Order {
	_, currency, _ := fieldMany2One(rec, "currency_id")
	return Order{
		ID:           fieldInt64(rec, "id"),
		Name:         fieldString(rec, "name"),
		DateOrder:    fieldString(rec, "date_order"),
		State:        fieldString(rec, "state"),
		OrderLineIDs: fieldIDList(rec, "order_line"),
		AmountTotal:  fieldDecimal(rec, "amount_total"),
		CurrencyName: currency,
	}
}

func orderLineFromRecord(rec map[string]any) OrderLine {
	_, productName, _ := fieldMany2One(rec, "product_id")
	return OrderLine{
		ProductName: productName,
		Description: fieldString(rec, "name"),
		UnitPrice:   fieldDecimal(rec, "price_unit"),
		Quantity:    fieldDecimal(rec, "product_uom_qty"),
		Subtotal:    fieldDecimal(rec, "price_subtotal"),
	}
}

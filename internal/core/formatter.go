package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"odoo-agent/internal/odoo"
)

const wireTimeLayout = "2006-01-02 15:04:05"

// localZone is the fixed rendering zone for timestamps. Odoo hands naive
// UTC timestamps over the wire; Riyadh has no daylight saving, so a fixed
// offset is exact year-round.
var localZone = time.FixedZone("Asia/Riyadh", 3*60*60)

// DefaultOrderFields is the field list used when a caller does not pick
// its own.
var DefaultOrderFields = []string{"name", "date_order", "state", "order_line", "amount_total", "currency_id"}

// Formatter renders raw remote records as human-readable text. It is used
// by the read-only tools; the fulfillment workflow returns structured
// data and never formats.
type Formatter struct {
	exec odoo.Executor
}

func NewFormatter(exec odoo.Executor) *Formatter {
	return &Formatter{exec: exec}
}

// FormatTimestamp converts a naive UTC timestamp into local time, keeping
// the same layout. Unparseable input is returned verbatim.
func (f *Formatter) FormatTimestamp(utc string) string {
	t, err := time.ParseInLocation(wireTimeLayout, utc, time.UTC)
	if err != nil {
		return utc
	}
	return t.In(localZone).Format(wireTimeLayout)
}

// FormatOrderLines fetches the given order lines and renders one text
// line per item.
func (f *Formatter) FormatOrderLines(ctx context.Context, lineIDs []int64) string {
	var lines []OrderLine
	if len(lineIDs) > 0 {
		res := odoo.Call(ctx, f.exec, "sale.order.line", "read",
			[]any{lineIDs},
			&odoo.CallOptions{
				Fields:  []string{"product_id", "name", "price_unit", "product_uom_qty", "price_subtotal"},
				Context: map[string]any{"lang": "en_US"},
			})
		for _, rec := range res.Records() {
			lines = append(lines, orderLineFromRecord(rec))
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("- No order items found for %v", lineIDs)
	}

	rendered := make([]string, 0, len(lines))
	for _, item := range lines {
		rendered = append(rendered, fmt.Sprintf("- %s, Qty: %s, Price: %s each",
			item.ProductName, item.Quantity.String(), item.UnitPrice.String()))
	}
	return strings.Join(rendered, "\n")
}

// orderFieldRenderers maps a requested field name to its formatter.
// Unknown names are a no-op by contract, not an error.
var orderFieldRenderers = map[string]func(f *Formatter, ctx context.Context, order Order) string{
	"name": func(_ *Formatter, _ context.Context, order Order) string {
		return fmt.Sprintf("Order ID: %s", order.Name)
	},
	"date_order": func(f *Formatter, _ context.Context, order Order) string {
		return fmt.Sprintf("Date: %s", f.FormatTimestamp(order.DateOrder))
	},
	"state": func(_ *Formatter, _ context.Context, order Order) string {
		return fmt.Sprintf("State: %s", order.State)
	},
	"order_line": func(f *Formatter, ctx context.Context, order Order) string {
		return fmt.Sprintf("Order Items:\n%s", f.FormatOrderLines(ctx, order.OrderLineIDs))
	},
	"amount_total": func(_ *Formatter, _ context.Context, order Order) string {
		return fmt.Sprintf("Total Amount: %s %s", order.AmountTotal.String(), order.CurrencyName)
	},
	"currency_id": func(_ *Formatter, _ context.Context, order Order) string {
		return fmt.Sprintf("Currency: %s", order.CurrencyName)
	},
}

// FormatOrder renders one order as a text block, emitting the requested
// fields in caller order. The currency line is suppressed when the total
// is also requested, since the total already carries the currency name.
func (f *Formatter) FormatOrder(ctx context.Context, order Order, fields []string) string {
	if len(fields) == 0 {
		fields = DefaultOrderFields
	}

	wantsTotal := false
	for _, field := range fields {
		if field == "amount_total" {
			wantsTotal = true
		}
	}

	var blocks []string
	for _, field := range fields {
		if field == "currency_id" && wantsTotal {
			continue
		}
		render, ok := orderFieldRenderers[field]
		if !ok {
			continue
		}
		blocks = append(blocks, render(f, ctx, order))
	}
	return strings.Join(blocks, "\n")
}

// FormatProduct renders a product details block.
func FormatProduct(p Product) string {
	description := p.SaleDescription
	if description == "" {
		description = "No description available."
	}
	return fmt.Sprintf("Product Name: %s\nPrice: $%s\nDescription: %s",
		p.Name, p.ListPrice.String(), description)
}

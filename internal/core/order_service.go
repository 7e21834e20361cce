package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"odoo-agent/internal/odoo"

	"github.com/shopspring/decimal"
)

// Step identifies how far a fulfillment run progressed. The workflow is
// linear; a failed run reports the last step that completed so operators
// can reconcile remote state that was already mutated (there is no
// compensation across the remote system).
type Step int

const (
	StepStart Step = iota
	StepInputValidated
	StepProductVerified
	StepPartnerResolved
	StepOrderCreated
	StepOrderConfirmed
	StepOrderLineCreated
	StepInvoiceCreated
	StepInvoicePosted
	StepPaymentRegistered
	StepDone
)

var stepNames = map[Step]string{
	StepStart:             "start",
	StepInputValidated:    "input_validated",
	StepProductVerified:   "product_verified",
	StepPartnerResolved:   "partner_resolved",
	StepOrderCreated:      "order_created",
	StepOrderConfirmed:    "order_confirmed",
	StepOrderLineCreated:  "order_line_created",
	StepInvoiceCreated:    "invoice_created",
	StepInvoicePosted:     "invoice_posted",
	StepPaymentRegistered: "payment_registered",
	StepDone:              "done",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// FulfillmentRequest is the input for one order fulfillment run.
type FulfillmentRequest struct {
	CustomerName  string
	ProductID     int64
	CreateInvoice bool
	FinishPayment bool
}

// FulfillmentResult is the structured outcome of a fulfillment run. All
// failure is expressed here; Fulfill never returns an error or panics.
type FulfillmentResult struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	StepReached string           `json:"step_reached,omitempty"`
	OrderID     *int64           `json:"order_id,omitempty"`
	InvoiceID   *int64           `json:"invoice_id,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}

// OrderService runs the order fulfillment workflow and serves sales-order
// reads.
type OrderService struct {
	exec     odoo.Executor
	catalog  *CatalogService
	partners *PartnerService
	payments *PaymentService
}

func NewOrderService(exec odoo.Executor, catalog *CatalogService, partners *PartnerService, payments *PaymentService) *OrderService {
	return &OrderService{exec: exec, catalog: catalog, partners: partners, payments: payments}
}

// GetOrders reads sales orders, either the given ids or up to limit
// records in remote order.
func (s *OrderService) GetOrders(ctx context.Context, orderIDs []int64, limit int) []Order {
	domain := []any{}
	if len(orderIDs) > 0 {
		domain = append(domain, []any{"id", "in", orderIDs})
	}

	opts := &odoo.CallOptions{
		Fields: []string{"name", "date_order", "state", "order_line", "amount_total", "currency_id"},
	}
	if limit > 0 {
		opts.Limit = limit
	}

	res := odoo.Call(ctx, s.exec, "sale.order", "search_read", []any{domain}, opts)

	records := res.Records()
	orders := make([]Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, orderFromRecord(rec))
	}
	return orders
}

// Fulfill runs the order workflow: validate inputs, verify the product,
// resolve the customer, create and confirm a draft order, and optionally
// create+post an invoice and register a payment against it. Each step
// blocks on its remote call; a failing step ends the run with the step
// already reached recorded in the result. Earlier steps are not rolled
// back.
func (s *OrderService) Fulfill(ctx context.Context, req FulfillmentRequest) (result *FulfillmentResult) {
	step := StepStart

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Exception] fulfillment panicked at %s: %v", step, r)
			result = failure(step, fmt.Sprintf("Unexpected error: %v", r))
		}
	}()

	// --- Validate inputs (no remote calls before this passes) ---
	if req.ProductID <= 0 {
		return failure(step, "Product ID is required to create an order.")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return failure(step, "Customer name is required to create an order.")
	}
	step = StepInputValidated

	// --- Verify the product exists ---
	if _, ok := s.catalog.VerifyProduct(ctx, req.ProductID); !ok {
		return failure(step, fmt.Sprintf("No product found with the ID: %d", req.ProductID))
	}
	step = StepProductVerified

	// --- Resolve the customer ---
	partnerID, ok := s.partners.ResolveByName(ctx, req.CustomerName)
	if !ok {
		return failure(step, fmt.Sprintf("No customer found with the name: %s", req.CustomerName))
	}
	step = StepPartnerResolved

	// --- Create the draft order ---
	orderID, err := s.createRecord(ctx, "sale.order", map[string]any{
		"partner_id": partnerID,
		"state":      "draft",
	}, nil)
	if err != nil {
		return remoteFailure(step, err)
	}
	step = StepOrderCreated

	// --- Confirm it, invoice or not ---
	if _, err := s.exec.ExecuteKw(ctx, "sale.order", "action_confirm", []any{orderID}, nil); err != nil {
		return remoteFailure(step, err)
	}
	step = StepOrderConfirmed

	if !req.CreateInvoice {
		return &FulfillmentResult{
			Success:     true,
			Message:     "Order created successfully.",
			StepReached: StepDone.String(),
			OrderID:     &orderID,
		}
	}

	// --- Attach the order line (quantity fixed at 1) ---
	lineID, err := s.createRecord(ctx, "sale.order.line", map[string]any{
		"order_id":        orderID,
		"product_id":      req.ProductID,
		"product_uom_qty": 1,
	}, nil)
	if err != nil {
		return remoteFailure(step, err)
	}
	step = StepOrderLineCreated

	// --- Create the invoice, its single line linked back to the order line ---
	invoiceID, err := s.createRecord(ctx, "account.move", map[string]any{
		"move_type":  "out_invoice",
		"partner_id": partnerID,
		"invoice_line_ids": odoo.Commands(
			odoo.CreateInline(map[string]any{
				"product_id":    req.ProductID,
				"quantity":      1,
				"sale_line_ids": odoo.Commands(odoo.ReplaceWith(lineID)),
			}),
		),
	}, nil)
	if err != nil {
		return remoteFailure(step, err)
	}
	step = StepInvoiceCreated

	// --- Post the invoice ---
	if _, err := s.exec.ExecuteKw(ctx, "account.move", "action_post", []any{invoiceID}, nil); err != nil {
		return remoteFailure(step, err)
	}
	step = StepInvoicePosted

	totalAmount := s.readInvoiceTotal(ctx, invoiceID)

	// --- Register the payment ---
	if req.FinishPayment {
		if err := s.registerPayment(ctx, invoiceID); err != nil {
			return remoteFailure(step, err)
		}
		step = StepPaymentRegistered
	}

	return &FulfillmentResult{
		Success:     true,
		Message:     "Order and invoice created successfully.",
		StepReached: StepDone.String(),
		OrderID:     &orderID,
		InvoiceID:   &invoiceID,
		TotalAmount: &totalAmount,
	}
}

// createRecord issues a create call and decodes the new record id.
func (s *OrderService) createRecord(ctx context.Context, model string, values map[string]any, opts *odoo.CallOptions) (int64, error) {
	raw, err := s.exec.ExecuteKw(ctx, model, "create", []any{values}, opts)
	if err != nil {
		return 0, err
	}
	id, ok := asInt64(raw)
	if !ok {
		return 0, fmt.Errorf("%s.create returned %T instead of an id", model, raw)
	}
	return id, nil
}

// readInvoiceTotal reads the posted invoice's total, defaulting to zero
// when the read comes back empty or fails.
func (s *OrderService) readInvoiceTotal(ctx context.Context, invoiceID int64) decimal.Decimal {
	res := odoo.Call(ctx, s.exec, "account.move", "read",
		[]any{[]int64{invoiceID}, []string{"amount_total"}}, nil)
	rec, ok := res.First()
	if !ok {
		return decimal.Zero
	}
	return fieldDecimal(rec, "amount_total")
}

// registerPayment creates a payment registration scoped to the invoice
// and triggers the action that materializes the payment. When no default
// journal qualifies the step is skipped without surfacing an error; only
// a warning is logged.
func (s *OrderService) registerPayment(ctx context.Context, invoiceID int64) error {
	route, ok := s.payments.DefaultRoute(ctx)
	if !ok {
		log.Printf("[Warning] no Bank or Cash journal with inbound payment methods; payment skipped for invoice %d", invoiceID)
		return nil
	}

	registerID, err := s.createRecord(ctx, "account.payment.register", map[string]any{
		"journal_id":             route.JournalID,
		"payment_method_line_id": route.MethodLineID,
	}, &odoo.CallOptions{
		Context: map[string]any{
			"active_model": "account.move",
			"active_ids":   []int64{invoiceID},
		},
	})
	if err != nil {
		return err
	}

	_, err = s.exec.ExecuteKw(ctx, "account.payment.register", "action_create_payments",
		[]any{[]int64{registerID}}, nil)
	return err
}

func failure(step Step, message string) *FulfillmentResult {
	return &FulfillmentResult{
		Success:     false,
		Message:     message,
		StepReached: step.String(),
	}
}

// remoteFailure translates a remote error into the workflow's failure
// vocabulary: known missing-record faults name the product, other faults
// surface the server's fault text, and everything else is generic.
func remoteFailure(step Step, err error) *FulfillmentResult {
	if odoo.IsFault(err) {
		text := odoo.FaultString(err)
		if strings.Contains(text, "Record does not exist or has been deleted") {
			log.Printf("[Error] missing product record: %s", text)
			return failure(step, "One of the products does not exist in Odoo.")
		}
		log.Printf("[XML-RPC Fault] %s", text)
		return failure(step, fmt.Sprintf("Odoo fault: %s", text))
	}
	log.Printf("[Exception] %v", err)
	return failure(step, fmt.Sprintf("Unexpected error: %v", err))
}

package core_test

import (
	"context"
	"reflect"
	"testing"

	"odoo-agent/internal/core"
	"odoo-agent/internal/odoo"

	"github.com/kolo/xmlrpc"
	"github.com/shopspring/decimal"
)

func newOrderService(exec *fakeExec) *core.OrderService {
	return core.NewOrderService(exec,
		core.NewCatalogService(exec),
		core.NewPartnerService(exec),
		core.NewPaymentService(exec))
}

// scriptHappyPath scripts every remote call of a full fulfillment run.
func scriptHappyPath(exec *fakeExec) {
	exec.onRecords("product.product", "search_read", []map[string]any{
		{"id": int64(3), "name": "Office Chair", "list_price": 120.5},
	})
	exec.onRecords("res.partner", "search_read", []map[string]any{
		{"id": int64(14), "name": "Azure Interior"},
	})
	exec.onCreate("sale.order", 100)
	exec.on("sale.order", "action_confirm", func([]any, *odoo.CallOptions) (any, error) {
		return true, nil
	})
	exec.onCreate("sale.order.line", 200)
	exec.onCreate("account.move", 300)
	exec.on("account.move", "action_post", func([]any, *odoo.CallOptions) (any, error) {
		return true, nil
	})
	exec.onRecords("account.move", "read", []map[string]any{
		{"id": int64(300), "amount_total": 120.5},
	})
	exec.onRecords("account.journal", "search_read", []map[string]any{
		journalRec(7, "Bank", 71),
	})
	exec.onCreate("account.payment.register", 400)
	exec.on("account.payment.register", "action_create_payments", func([]any, *odoo.CallOptions) (any, error) {
		return nil, nil
	})
}

func TestFulfill_InputValidationMakesNoRemoteCalls(t *testing.T) {
	tests := []struct {
		name    string
		req     core.FulfillmentRequest
		wantMsg string
	}{
		{
			name:    "missing product id",
			req:     core.FulfillmentRequest{CustomerName: "Azure"},
			wantMsg: "Product ID is required to create an order.",
		},
		{
			name:    "blank customer name",
			req:     core.FulfillmentRequest{ProductID: 3, CustomerName: "   "},
			wantMsg: "Customer name is required to create an order.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newFakeExec()
			svc := newOrderService(exec)

			result := svc.Fulfill(context.Background(), tt.req)
			if result.Success {
				t.Fatal("expected failure")
			}
			if result.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", result.Message, tt.wantMsg)
			}
			if len(exec.calls) != 0 {
				t.Errorf("expected no remote calls, got %v", exec.callKeys())
			}
		})
	}
}

func TestFulfill_UnknownProduct(t *testing.T) {
	exec := newFakeExec()
	exec.onRecords("product.product", "search_read", nil)
	svc := newOrderService(exec)

	result := svc.Fulfill(context.Background(), core.FulfillmentRequest{ProductID: 99, CustomerName: "Azure"})
	if result.Success || result.Message != "No product found with the ID: 99" {
		t.Errorf("result = %+v", result)
	}
}

func TestFulfill_UnknownCustomer(t *testing.T) {
	exec := newFakeExec()
	exec.onRecords("product.product", "search_read", []map[string]any{{"id": int64(3), "name": "Office Chair"}})
	exec.onRecords("res.partner", "search_read", nil)
	svc := newOrderService(exec)

	result := svc.Fulfill(context.Background(), core.FulfillmentRequest{ProductID: 3, CustomerName: "Ghost Corp"})
	if result.Success || result.Message != "No customer found with the name: Ghost Corp" {
		t.Errorf("result = %+v", result)
	}
	if result.StepReached != "product_verified" {
		t.Errorf("step reached = %q", result.StepReached)
	}
}

func TestFulfill_OrderOnly(t *testing.T) {
	exec := newFakeExec()
	scriptHappyPath(exec)
	svc := newOrderService(exec)

	result := svc.Fulfill(context.Background(), core.FulfillmentRequest{ProductID: 3, CustomerName: "Azure"})
	if !result.Success || result.Message != "Order created successfully." {
		t.Fatalf("result = %+v", result)
	}
	if result.OrderID == nil || *result.OrderID != 100 {
		t.Errorf("order id = %v", result.OrderID)
	}
	if result.InvoiceID != nil || result.TotalAmount != nil {
		t.Errorf("invoice fields present on order-only run: %+v", result)
	}

	// The order is confirmed even without an invoice, and no invoice
	// models are touched.
	wantCalls := []string{
		"product.product.search_read",
		"res.partner.search_read",
		"sale.order.create",
		"sale.order.action_confirm",
	}
	if got := exec.callKeys(); !reflect.DeepEqual(got, wantCalls) {
		t.Errorf("calls = %v, want %v", got, wantCalls)
	}
}

func TestFulfill_InvoiceAndPayment(t *testing.T) {
	exec := newFakeExec()
	scriptHappyPath(exec)
	svc := newOrderService(exec)

	result := svc.Fulfill(context.Background(), core.FulfillmentRequest{
		ProductID: 3, CustomerName: "Azure", CreateInvoice: true, FinishPayment: true,
	})
	if !result.Success || result.Message != "Order and invoice created successfully." {
		t.Fatalf("result = %+v", result)
	}
	if result.OrderID == nil || *result.OrderID != 100 {
		t.Errorf("order id = %v", result.OrderID)
	}
	if result.InvoiceID == nil || *result.InvoiceID != 300 {
		t.Errorf("invoice id = %v", result.InvoiceID)
	}
	if result.TotalAmount == nil || !result.TotalAmount.Equal(decimal.NewFromFloat(120.5)) {
		t.Errorf("total = %v", result.TotalAmount)
	}

	wantCalls := []string{
		"product.product.search_read",
		"res.partner.search_read",
		"sale.order.create",
		"sale.order.action_confirm",
		"sale.order.line.create",
		"account.move.create",
		"account.move.action_post",
		"account.move.read",
		"account.journal.search_read",
		"account.payment.register.create",
		"account.payment.register.action_create_payments",
	}
	if got := exec.callKeys(); !reflect.DeepEqual(got, wantCalls) {
		t.Errorf("calls = %v, want %v", got, wantCalls)
	}
}

func TestFulfill_InvoiceLineLinksBackToOrderLine(t *testing.T) {
	exec := newFakeExec()
	scriptHappyPath(exec)
	svc := newOrderService(exec)

	svc.Fulfill(context.Background(), core.FulfillmentRequest{
		ProductID: 3, CustomerName: "Azure", CreateInvoice: true,
	})

	var moveValues map[string]any
	for _, c := range exec.calls {
		if c.Model == "account.move" && c.Method == "create" {
			moveValues = c.Args[0].(map[string]any)
		}
	}
	if moveValues == nil {
		t.Fatal("account.move.create not issued")
	}
	if moveValues["move_type"] != "out_invoice" {
		t.Errorf("move_type = %v", moveValues["move_type"])
	}

	lineCmds := moveValues["invoice_line_ids"].([]any)
	if len(lineCmds) != 1 {
		t.Fatalf("invoice_line_ids = %v", lineCmds)
	}
	createTuple := lineCmds[0].([]any)
	if createTuple[0] != 0 || createTuple[1] != 0 {
		t.Errorf("invoice line not a create-inline tuple: %v", createTuple)
	}
	lineValues := createTuple[2].(map[string]any)
	saleCmds := lineValues["sale_line_ids"].([]any)
	replaceTuple := saleCmds[0].([]any)
	if replaceTuple[0] != 6 || replaceTuple[1] != 0 {
		t.Errorf("sale_line_ids not a replace tuple: %v", replaceTuple)
	}
	if ids := replaceTuple[2].([]int64); len(ids) != 1 || ids[0] != 200 {
		t.Errorf("sale_line_ids = %v, want the created order line", ids)
	}
}

func TestFulfill_PaymentRegistrationScopedToInvoice(t *testing.T) {
	exec := newFakeExec()
	scriptHappyPath(exec)
	svc := newOrderService(exec)

	svc.Fulfill(context.Background(), core.FulfillmentRequest{
		ProductID: 3, CustomerName: "Azure", CreateInvoice: true, FinishPayment: true,
	})

	for _, c := range exec.calls {
		if c.Model == "account.payment.register" && c.Method == "create" {
			if c.Opts == nil || c.Opts.Context["active_model"] != "account.move" {
				t.Fatalf("payment registration context = %+v", c.Opts)
			}
			ids := c.Opts.Context["active_ids"].([]int64)
			if len(ids) != 1 || ids[0] != 300 {
				t.Errorf("active_ids = %v, want the invoice", ids)
			}
			return
		}
	}
	t.Fatal("account.payment.register.create not issued")
}

func TestFulfill_PaymentSkippedWhenNoJournalQualifies(t *testing.T) {
	exec := newFakeExec()
	scriptHappyPath(exec)
	exec.onRecords("account.journal", "search_read", []map[string]any{
		journalRec(9, "Miscellaneous", 91),
	})
	svc := newOrderService(exec)

	result := svc.Fulfill(context.Background(), core.FulfillmentRequest{
		ProductID: 3, CustomerName: "Azure", CreateInvoice: true, FinishPayment: true,
	})
	// The gap is deliberate: a missing default journal skips the payment
	// without failing the run.
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	for _, key := range exec.callKeys() {
		if key == "account.payment.register.create" {
			t.Error("payment registration issued despite missing journal")
		}
	}
}

func TestFulfill_FaultMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "deleted record fault names the product",
			err:     xmlrpc.FaultError{Code: 2, String: "Record does not exist or has been deleted: product.product(3,)"},
			wantMsg: "One of the products does not exist in Odoo.",
		},
		{
			name:    "other faults surface the fault text",
			err:     xmlrpc.FaultError{Code: 1, String: "Access Denied"},
			wantMsg: "Odoo fault: Access Denied",
		},
		{
			name:    "transport errors are generic",
			err:     context.DeadlineExceeded,
			wantMsg: "Unexpected error: context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newFakeExec()
			scriptHappyPath(exec)
			exec.on("account.move", "action_post", func([]any, *odoo.CallOptions) (any, error) {
				return nil, tt.err
			})
			svc := newOrderService(exec)

			result := svc.Fulfill(context.Background(), core.FulfillmentRequest{
				ProductID: 3, CustomerName: "Azure", CreateInvoice: true,
			})
			if result.Success {
				t.Fatal("expected failure")
			}
			if result.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", result.Message, tt.wantMsg)
			}
			// The invoice existed before posting failed; operators need
			// to know that.
			if result.StepReached != "invoice_created" {
				t.Errorf("step reached = %q, want invoice_created", result.StepReached)
			}
		})
	}
}

func TestFulfill_ConfirmFailureReportsOrderCreated(t *testing.T) {
	exec := newFakeExec()
	scriptHappyPath(exec)
	exec.on("sale.order", "action_confirm", func([]any, *odoo.CallOptions) (any, error) {
		return nil, xmlrpc.FaultError{Code: 1, String: "ValidationError"}
	})
	svc := newOrderService(exec)

	result := svc.Fulfill(context.Background(), core.FulfillmentRequest{ProductID: 3, CustomerName: "Azure"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.StepReached != "order_created" {
		t.Errorf("step reached = %q, want order_created", result.StepReached)
	}
}

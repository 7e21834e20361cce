package app

import (
	"context"

	"odoo-agent/internal/ai"
	"odoo-agent/internal/core"
)

// ApplicationService is the single interface all tool transports (MCP
// server, agent CLI) call. Business failure is always expressed in the
// return value, never as an error or panic, so no tool invocation can
// raise past its own boundary.
type ApplicationService interface {
	// GetProducts lists catalog products with names in the requested
	// language.
	GetProducts(ctx context.Context, req GetProductsRequest) *ProductsResult

	// GetProductDetails renders a product details block for the first
	// product whose name matches.
	GetProductDetails(ctx context.Context, productName string) string

	// GetOrderDetails renders sales orders as human-readable text, with
	// caller-selectable fields.
	GetOrderDetails(ctx context.Context, req GetOrderDetailsRequest) string

	// CreateOrder runs the order fulfillment workflow.
	CreateOrder(ctx context.Context, req CreateOrderRequest) *core.FulfillmentResult

	// Tools returns the registry of agent-callable tools backed by this
	// service.
	Tools() *ai.ToolRegistry
}

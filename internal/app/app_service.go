package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"odoo-agent/internal/ai"
	"odoo-agent/internal/core"
	"odoo-agent/internal/odoo"
)

type appService struct {
	catalog   *core.CatalogService
	orders    *core.OrderService
	formatter *core.Formatter
	registry  *ai.ToolRegistry
}

// NewAppService wires the domain services around one Odoo executor and
// builds the tool registry over them. The executor is the only shared
// state; everything else is stateless per call.
func NewAppService(exec odoo.Executor) ApplicationService {
	catalog := core.NewCatalogService(exec)
	partners := core.NewPartnerService(exec)
	payments := core.NewPaymentService(exec)

	s := &appService{
		catalog:   catalog,
		orders:    core.NewOrderService(exec, catalog, partners, payments),
		formatter: core.NewFormatter(exec),
	}
	s.registry = s.buildTools()
	return s
}

// GetProducts lists catalog products with names in the requested language.
func (s *appService) GetProducts(ctx context.Context, req GetProductsRequest) *ProductsResult {
	return &ProductsResult{
		Products: s.catalog.ListProducts(ctx, req.ProductNamesLang, req.Limits),
	}
}

// GetProductDetails renders a details block for the first product whose
// name matches, trying English then Arabic names.
func (s *appService) GetProductDetails(ctx context.Context, productName string) string {
	if strings.TrimSpace(productName) == "" {
		return "Product name is required."
	}
	product, ok := s.catalog.FindProductByName(ctx, productName)
	if !ok {
		return fmt.Sprintf("No product found with the name: %s", productName)
	}
	return core.FormatProduct(product)
}

// GetOrderDetails renders sales orders as text blocks, one per order,
// with the caller's field selection applied in the caller's order.
func (s *appService) GetOrderDetails(ctx context.Context, req GetOrderDetailsRequest) string {
	limit := req.Limits
	if limit <= 0 && len(req.OrderIDs) == 0 {
		limit = 1
	}

	orders := s.orders.GetOrders(ctx, req.OrderIDs, limit)
	if len(orders) == 0 {
		return "No orders available."
	}

	blocks := make([]string, 0, len(orders))
	for _, order := range orders {
		blocks = append(blocks, s.formatter.FormatOrder(ctx, order, req.Fields))
	}
	return strings.Join(blocks, "\n\n")
}

// CreateOrder runs the fulfillment workflow.
func (s *appService) CreateOrder(ctx context.Context, req CreateOrderRequest) *core.FulfillmentResult {
	return s.orders.Fulfill(ctx, core.FulfillmentRequest{
		CustomerName:  req.CustomerName,
		ProductID:     req.ProductID,
		CreateInvoice: req.CreateInvoice,
		FinishPayment: req.FinishPayment,
	})
}

// Tools returns the registry of agent-callable tools backed by this
// service.
func (s *appService) Tools() *ai.ToolRegistry {
	return s.registry
}

func (s *appService) buildTools() *ai.ToolRegistry {
	registry := ai.NewToolRegistry()

	registry.Register(ai.ToolDefinition{
		Name:        "get_products",
		Description: "List products from the catalog with their list prices.",
		InputSchema: ai.MustSchemaOf(GetProductsRequest{}),
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			req, err := decodeParams[GetProductsRequest](params)
			if err != nil {
				return "", err
			}
			result := s.GetProducts(ctx, req)
			if len(result.Products) == 0 {
				return "No products available.", nil
			}
			return encodeJSON(result)
		},
	})

	registry.Register(ai.ToolDefinition{
		Name:        "get_product_details",
		Description: "Get name, price and sale description for a product by name.",
		InputSchema: ai.MustSchemaOf(GetProductDetailsRequest{}),
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			req, err := decodeParams[GetProductDetailsRequest](params)
			if err != nil {
				return "", err
			}
			return s.GetProductDetails(ctx, req.ProductName), nil
		},
	})

	registry.Register(ai.ToolDefinition{
		Name:        "get_order_details",
		Description: "Retrieve sales orders as readable text, with selectable fields.",
		InputSchema: ai.MustSchemaOf(GetOrderDetailsRequest{}),
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			req, err := decodeParams[GetOrderDetailsRequest](params)
			if err != nil {
				return "", err
			}
			return s.GetOrderDetails(ctx, req), nil
		},
	})

	registry.Register(ai.ToolDefinition{
		Name:        "create_order",
		Description: "Create a sales order for a customer, optionally creating and posting an invoice and registering its payment.",
		InputSchema: ai.MustSchemaOf(CreateOrderRequest{}),
		Handler: func(ctx context.Context, params map[string]any) (string, error) {
			req, err := decodeParams[CreateOrderRequest](params)
			if err != nil {
				return "", err
			}
			return encodeJSON(s.CreateOrder(ctx, req))
		},
	})

	return registry
}

// decodeParams maps loosely typed tool parameters onto a request struct
// through a JSON round trip.
func decodeParams[T any](params map[string]any) (T, error) {
	var req T
	raw, err := json.Marshal(params)
	if err != nil {
		return req, fmt.Errorf("invalid parameters: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("invalid parameters: %w", err)
	}
	return req, nil
}

func encodeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(raw), nil
}

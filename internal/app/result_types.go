package app

import "odoo-agent/internal/core"

// ProductsResult is returned by GetProducts.
type ProductsResult struct {
	Products []core.Product `json:"products"`
}

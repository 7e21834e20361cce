package core

import (
	"context"
	"strings"

	"odoo-agent/internal/odoo"
)

// CatalogService reads the product catalog.
type CatalogService struct {
	exec odoo.Executor
}

func NewCatalogService(exec odoo.Executor) *CatalogService {
	return &CatalogService{exec: exec}
}

// supportedLanguages maps the short language codes accepted by the tools
// to Odoo locale identifiers.
var supportedLanguages = map[string]string{
	"en": "en_US",
	"ar": "ar_001",
	"fr": "fr_FR",
	"es": "es_ES",
}

// ResolveLanguage maps a short language code to an Odoo locale, falling
// back to en_US for empty or unknown codes.
func ResolveLanguage(code string) string {
	if lang, ok := supportedLanguages[strings.ToLower(strings.TrimSpace(code))]; ok {
		return lang
	}
	return "en_US"
}

// ListProducts returns catalog products with names rendered in the given
// language. limit <= 0 returns all products.
func (s *CatalogService) ListProducts(ctx context.Context, langCode string, limit int) []Product {
	opts := &odoo.CallOptions{
		Fields:  []string{"name", "list_price"},
		Context: map[string]any{"lang": ResolveLanguage(langCode)},
	}
	if limit > 0 {
		opts.Limit = limit
	}

	res := odoo.Call(ctx, s.exec, "product.product", "search_read",
		[]any{[]any{}}, opts)

	records := res.Records()
	products := make([]Product, 0, len(records))
	for _, rec := range records {
		products = append(products, productFromRecord(rec))
	}
	return products
}

// FindProductByName looks a product up by case-insensitive name match,
// trying en_US first and falling back to ar_001 for catalogs whose names
// were only translated into Arabic.
func (s *CatalogService) FindProductByName(ctx context.Context, name string) (Product, bool) {
	for _, lang := range []string{"en_US", "ar_001"} {
		res := odoo.Call(ctx, s.exec, "product.product", "search_read",
			[]any{[]any{[]any{"name", "ilike", name}}},
			&odoo.CallOptions{
				Fields:  []string{"id", "name", "list_price", "description_sale"},
				Limit:   1,
				Context: map[string]any{"lang": lang},
			})
		if rec, ok := res.First(); ok {
			return productFromRecord(rec), true
		}
	}
	return Product{}, false
}

// VerifyProduct checks that a product with the given id exists, returning
// it when found. The remote system does not enforce referential integrity
// synchronously for the id path the workflow uses, so the workflow calls
// this before creating anything.
func (s *CatalogService) VerifyProduct(ctx context.Context, productID int64) (Product, bool) {
	res := odoo.Call(ctx, s.exec, "product.product", "search_read",
		[]any{[]any{[]any{"id", "ilike", productID}}},
		&odoo.CallOptions{
			Fields: []string{"id", "name", "list_price", "description_sale"},
			Limit:  1,
		})
	rec, ok := res.First()
	if !ok {
		return Product{}, false
	}
	return productFromRecord(rec), true
}

package app

// GetProductsRequest is the input for the get_products tool.
type GetProductsRequest struct {
	ProductNamesLang string `json:"product_names_lang,omitempty" jsonschema_description:"Language for product names: en, ar, fr or es. Defaults to en."`
	Limits           int    `json:"limits,omitempty" jsonschema_description:"Maximum number of products to return. Omit to return all."`
}

// GetProductDetailsRequest is the input for the get_product_details tool.
type GetProductDetailsRequest struct {
	ProductName string `json:"product_name" jsonschema_description:"Name of the product to search for."`
}

// GetOrderDetailsRequest is the input for the get_order_details tool.
type GetOrderDetailsRequest struct {
	Limits   int      `json:"limits,omitempty" jsonschema_description:"Maximum number of orders to retrieve when order_ids is not given. Defaults to 1."`
	OrderIDs []int64  `json:"order_ids,omitempty" jsonschema_description:"Specific order ids to fetch."`
	Fields   []string `json:"fields,omitempty" jsonschema_description:"Fields to include, in display order: name, date_order, state, order_line, amount_total, currency_id. Omit for all."`
}

// CreateOrderRequest is the input for the create_order tool.
type CreateOrderRequest struct {
	CustomerName  string `json:"customer_name" jsonschema_description:"Name of the customer the order is for."`
	ProductID     int64  `json:"product_id" jsonschema_description:"Id of the product to order."`
	CreateInvoice bool   `json:"create_invoice,omitempty" jsonschema_description:"Also create and post an invoice for the order."`
	FinishPayment bool   `json:"finish_payment,omitempty" jsonschema_description:"Also register a payment against the invoice. Only meaningful with create_invoice."`
}

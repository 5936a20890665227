package odoo

import (
	"context"
	"fmt"
)

// Operation identifiers form the fixed catalog the query router selects from.
const (
	OpCRM              = "crm"
	OpSales            = "sales"
	OpPurchase         = "purchase"
	OpInventory        = "inventory"
	OpStockMoves       = "stock_moves"
	OpManufacturing    = "manufacturing"
	OpWebsite          = "website"
	OpEcommerce        = "ecommerce"
	OpCustomerInvoices = "customer_invoices"
	OpVendorBills      = "vendor_bills"
	OpEmployees        = "employee"
)

const defaultLimit = 10

// Invoke dispatches an operation identifier to its accessor. Remote failures
// come back as error-status results, never as a Go error; the error return
// only reports identifiers outside the catalog.
func (c *Client) Invoke(_ context.Context, operationID string) (*QueryResult, error) {
	switch operationID {
	case OpCRM:
		return c.CRMLeads(), nil
	case OpSales:
		return c.SalesOrders(), nil
	case OpPurchase:
		return c.PurchaseOrders(), nil
	case OpInventory:
		return c.InventoryStatus(), nil
	case OpStockMoves:
		return c.StockMoves(), nil
	case OpManufacturing:
		return c.ManufacturingOrders(), nil
	case OpWebsite:
		return c.WebsitePages(), nil
	case OpEcommerce:
		return c.EcommerceProducts(), nil
	case OpCustomerInvoices:
		return c.CustomerInvoices(), nil
	case OpVendorBills:
		return c.VendorBills(), nil
	case OpEmployees:
		return c.Employees(), nil
	default:
		return nil, fmt.Errorf("unknown operation %q", operationID)
	}
}

func (c *Client) CRMLeads() *QueryResult {
	fields := []string{"name", "partner_id", "email_from", "phone", "type", "stage_id", "create_date"}

	leads, err := c.searchRead("crm.lead", nil, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	return successResult(leads)
}

func (c *Client) SalesOrders() *QueryResult {
	fields := []string{"name", "partner_id", "amount_total", "state", "date_order"}

	orders, err := c.searchRead("sale.order", nil, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	lineFields := []string{
		"product_id",
		"product_uom_qty",
		"price_unit",
		"price_subtotal",
		"tax_id",
		"name",
		"order_id",
	}

	for _, order := range orders {
		domain := []any{[]any{"order_id", "=", order["id"]}}

		lines, err := c.searchRead("sale.order.line", domain, lineFields, 0)
		if err != nil {
			return errorResult(err)
		}
		order["order_lines"] = lines
	}

	return successResult(orders)
}

func (c *Client) PurchaseOrders() *QueryResult {
	fields := []string{"name", "partner_id", "amount_total", "state", "date_order", "date_planned"}

	orders, err := c.searchRead("purchase.order", nil, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	lineFields := []string{
		"product_id",
		"product_qty",
		"price_unit",
		"price_subtotal",
		"taxes_id",
		"name",
		"order_id",
	}

	for _, order := range orders {
		domain := []any{[]any{"order_id", "=", order["id"]}}

		lines, err := c.searchRead("purchase.order.line", domain, lineFields, 0)
		if err != nil {
			return errorResult(err)
		}
		order["order_lines"] = lines
	}

	return successResult(orders)
}

func (c *Client) InventoryStatus() *QueryResult {
	fields := []string{"name", "qty_available", "virtual_available", "incoming_qty", "outgoing_qty"}
	domain := []any{[]any{"type", "=", "product"}}

	products, err := c.searchRead("product.product", domain, fields, 0)
	if err != nil {
		return errorResult(err)
	}

	return successResult(products)
}

func (c *Client) StockMoves() *QueryResult {
	fields := []string{"name", "product_id", "product_uom_qty", "location_id", "location_dest_id", "state"}

	moves, err := c.searchRead("stock.move", nil, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	return successResult(moves)
}

func (c *Client) ManufacturingOrders() *QueryResult {
	fields := []string{
		"name",
		"product_id",
		"product_qty",
		"state",
		"date_deadline",
		"date_start",
		"date_finished",
		"production_capacity",
		"components_availability_state",
	}

	orders, err := c.searchRead("mrp.production", nil, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	return successResult(orders)
}

func (c *Client) WebsitePages() *QueryResult {
	fields := []string{"name", "url", "website_published", "create_date"}

	pages, err := c.searchRead("website.page", nil, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	return successResult(pages)
}

func (c *Client) EcommerceProducts() *QueryResult {
	fields := []string{"name", "list_price", "website_published", "website_url", "website_sequence"}
	domain := []any{[]any{"website_published", "=", true}}

	products, err := c.searchRead("product.template", domain, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	return successResult(products)
}

func (c *Client) CustomerInvoices() *QueryResult {
	return c.invoices("out_invoice")
}

func (c *Client) VendorBills() *QueryResult {
	return c.invoices("in_invoice")
}

func (c *Client) invoices(moveType string) *QueryResult {
	fields := []string{
		"name",
		"partner_id",
		"amount_total",
		"state",
		"invoice_date",
		"payment_state",
		"currency_id",
		"move_type",
	}
	domain := []any{
		[]any{"move_type", "=", moveType},
		[]any{"state", "!=", "draft"},
	}

	invoices, err := c.searchRead("account.move", domain, fields, defaultLimit)
	if err != nil {
		return errorResult(err)
	}

	return successResult(invoices)
}

func (c *Client) Employees() *QueryResult {
	fields := []string{
		"name",
		"job_title",
		"department_id",
		"work_email",
		"work_phone",
		"mobile_phone",
		"parent_id",
		"company_id",
		"resource_calendar_id",
		"employee_type",
	}

	employees, err := c.searchRead("hr.employee", nil, fields, 0)
	if err != nil {
		return errorResult(err)
	}

	return successResult(employees)
}

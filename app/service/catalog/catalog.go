package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"odoosense/app/client/odoo"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/tools"
)

// DataService is the slice of the Odoo client the catalog needs.
type DataService interface {
	Invoke(ctx context.Context, operationID string) (*odoo.QueryResult, error)
}

type operationTool struct {
	name        string
	description string
	operationID string
	dataSvc     DataService
}

func (t *operationTool) Name() string {
	return t.name
}

func (t *operationTool) Description() string {
	return t.description
}

func (t *operationTool) Call(ctx context.Context, _ string) (string, error) {
	result, err := t.dataSvc.Invoke(ctx, t.operationID)
	if err != nil {
		return "", fmt.Errorf("invoke %s: %w", t.operationID, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s result: %w", t.operationID, err)
	}

	return string(data), nil
}

// Service exposes every catalog operation as a named tool for agent-style
// consumers (the MCP server, or any langchaingo agent).
type Service struct {
	tools []tools.Tool
}

func New(di *do.Injector) (*Service, error) {
	return NewWith(do.MustInvoke[*odoo.Client](di)), nil
}

func NewWith(dataSvc DataService) *Service {
	entries := []struct {
		name        string
		operationID string
		description string
	}{
		{"get_crm_data", odoo.OpCRM,
			"Get CRM leads and opportunities. Returns lead details including contact information, status, and creation date."},
		{"get_sales_data", odoo.OpSales,
			"Get sales orders with detailed line items. Returns order information including customer details, products, quantities, and amounts."},
		{"get_inventory_data", odoo.OpInventory,
			"Get inventory status for products. Returns current stock levels, forecasted quantity, incoming and outgoing quantities."},
		{"get_stock_moves", odoo.OpStockMoves,
			"Get stock movement information. Returns details about product movements between locations."},
		{"get_manufacturing_data", odoo.OpManufacturing,
			"Get manufacturing orders information. Returns production orders with product details, quantities, and status."},
		{"get_website_data", odoo.OpWebsite,
			"Get website pages information. Returns published pages, URLs, and creation dates."},
		{"get_ecommerce_data", odoo.OpEcommerce,
			"Get published eCommerce products. Returns product details including prices and website information."},
		{"get_customer_invoices", odoo.OpCustomerInvoices,
			"Get customer invoices information. Returns invoice details including amounts, status, and payment state."},
		{"get_vendor_bills", odoo.OpVendorBills,
			"Get vendor bills information. Returns bill details including amounts, status, and payment state."},
		{"get_purchase_data", odoo.OpPurchase,
			"Get purchase orders with detailed line items. Returns order information including supplier details, products, quantities, and amounts."},
		{"get_employee_data", odoo.OpEmployees,
			"Get employee information including names, job titles, departments, and contact details."},
	}

	result := make([]tools.Tool, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &operationTool{
			name:        entry.name,
			description: entry.description,
			operationID: entry.operationID,
			dataSvc:     dataSvc,
		})
	}

	return &Service{tools: result}
}

func (s *Service) Tools() []tools.Tool {
	return s.tools
}

package conversation

import (
	"strings"

	"odoosense/app/client/odoo"

	"github.com/elliotchance/pie/v2"
)

type DecisionKind int

const (
	// KindConversational skips data retrieval entirely.
	KindConversational DecisionKind = iota
	// KindInstall requests a module installation; ModuleHint may be empty.
	KindInstall
	// KindData selects one operation from the fixed catalog.
	KindData
)

// Decision is the router's verdict for a single query. Exactly one variant
// applies: OperationID is set only for KindData, ModuleHint only for
// KindInstall.
type Decision struct {
	Kind        DecisionKind
	OperationID string
	ModuleHint  string
}

var conversationalKeywords = []string{
	"hello", "hi", "hey", "how are you",
	"good morning", "good afternoon", "good evening",
	"thanks", "thank you",
}

type category struct {
	operationID string
	keywords    []string
}

// categories is the fixed routing catalog. Order matters only as the
// tie-break when two categories score equally.
var categories = []category{
	{odoo.OpEmployees, []string{"employee", "staff", "worker", "personnel", "hr", "human resource"}},
	{odoo.OpManufacturing, []string{"manufacturing", "production", "mo", "manufacture"}},
	{odoo.OpSales, []string{"sales", "sale order", "customer order", "quotation"}},
	{odoo.OpPurchase, []string{"purchase", "po", "purchase order", "supplier order", "vendor order"}},
	{odoo.OpCRM, []string{"crm", "lead", "opportunity", "pipeline"}},
	{odoo.OpInventory, []string{"inventory", "stock level", "product quantity", "on hand"}},
	{odoo.OpStockMoves, []string{"stock move", "movement", "transfer", "location"}},
	{odoo.OpWebsite, []string{"website", "page", "web content", "web page"}},
	{odoo.OpEcommerce, []string{"ecommerce", "online product", "web shop", "online store"}},
	{odoo.OpCustomerInvoices, []string{"invoice", "customer invoice", "customer payment", "customer bill"}},
	{odoo.OpVendorBills, []string{"vendor bill", "supplier invoice", "supplier payment", "purchase invoice"}},
}

// Route classifies a free-text query. It is pure and never fails: queries
// that match nothing fall back to the CRM operation.
//
// Conversational and install checks take precedence. The remaining
// categories are scored by total matched-keyword length, so a longer, more
// specific phrase ("vendor bill") outweighs a shorter overlapping one
// ("invoice") regardless of catalog order; catalog order only breaks ties.
func Route(query string) Decision {
	q := strings.ToLower(query)

	if pie.Any(conversationalKeywords, func(kw string) bool { return strings.Contains(q, kw) }) {
		return Decision{Kind: KindConversational}
	}

	if strings.Contains(q, "install") {
		hint := ""
		if strings.Contains(q, "inventory") || strings.Contains(q, "stock") {
			hint = "inventory"
		}
		return Decision{Kind: KindInstall, ModuleHint: hint}
	}

	bestID := odoo.OpCRM
	bestScore := 0

	for _, cat := range categories {
		score := 0
		for _, kw := range cat.keywords {
			if strings.Contains(q, kw) {
				score += len(kw)
			}
		}

		if score > bestScore {
			bestScore = score
			bestID = cat.operationID
		}
	}

	return Decision{Kind: KindData, OperationID: bestID}
}

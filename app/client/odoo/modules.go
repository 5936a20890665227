package odoo

import "fmt"

// moduleChains maps an install hint to the modules it requires, installed in
// order with the chain aborting at the first failure.
var moduleChains = map[string][]string{
	"inventory": {"stock", "product"},
}

// ModuleChain returns the ordered module list for an install hint.
func ModuleChain(hint string) ([]string, bool) {
	chain, ok := moduleChains[hint]
	return chain, ok
}

// CheckModule reports whether a module is installed.
func (c *Client) CheckModule(name string) (bool, error) {
	domain := []any{
		[]any{"name", "=", name},
		[]any{"state", "=", "installed"},
	}

	modules, err := c.searchRead("ir.module.module", domain, []string{"name", "state"}, 0)
	if err != nil {
		return false, err
	}

	return len(modules) > 0, nil
}

// InstallModule installs a single module. Already-installed modules report
// success without touching the server state.
func (c *Client) InstallModule(name string) *QueryResult {
	domain := []any{[]any{"name", "=", name}}

	raw, err := c.executeKw("ir.module.module", "search", []any{domain}, nil)
	if err != nil {
		return errorResult(err)
	}

	ids, _ := raw.([]any)
	if len(ids) == 0 {
		return errorResultf("Module %s not found", name)
	}

	states, err := c.executeKw("ir.module.module", "read", []any{ids}, map[string]any{
		"fields": []string{"state"},
	})
	if err != nil {
		return errorResult(err)
	}

	records := coerceRecords(states)
	if len(records) > 0 && records[0]["state"] == "installed" {
		return &QueryResult{
			Status:  StatusSuccess,
			Message: fmt.Sprintf("Module %s is already installed", name),
		}
	}

	if _, err = c.executeKw("ir.module.module", "button_immediate_install", []any{ids}, nil); err != nil {
		return errorResult(err)
	}

	return &QueryResult{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Module %s has been installed successfully", name),
	}
}

// InstallChain installs every module behind an install hint, stopping at the
// first failure. The per-module outcomes come back as generic records so the
// composer can render them like any other data result.
func (c *Client) InstallChain(hint string) *QueryResult {
	chain, ok := ModuleChain(hint)
	if !ok {
		return errorResultf("no install chain registered for %q", hint)
	}

	details := make([]map[string]any, 0, len(chain))

	for _, module := range chain {
		result := c.InstallModule(module)

		details = append(details, map[string]any{
			"module":  module,
			"status":  result.Status,
			"message": result.Message,
		})

		if result.Status == StatusError {
			return &QueryResult{
				Status:      StatusError,
				Message:     fmt.Sprintf("Failed to install %s: %s", module, result.Message),
				RecordCount: len(details),
				Data:        details,
			}
		}
	}

	return &QueryResult{
		Status:      StatusSuccess,
		Message:     fmt.Sprintf("%s modules installed successfully", hint),
		RecordCount: len(details),
		Data:        details,
	}
}

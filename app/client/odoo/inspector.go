package odoo

import (
	"fmt"
	"strings"
)

type ServerInfo struct {
	ServerVersion   string `json:"server_version"`
	ProtocolVersion int64  `json:"protocol_version"`
	UserID          int64  `json:"user_id"`
}

func (c *Client) ServerInfo() ServerInfo {
	info := ServerInfo{
		ServerVersion: "Unknown",
		UserID:        c.uid,
	}

	if v, ok := c.versionInfo["server_version"].(string); ok {
		info.ServerVersion = v
	}
	if p, ok := c.versionInfo["protocol_version"].(int64); ok {
		info.ProtocolVersion = p
	}

	return info
}

func (c *Client) InstalledModules() *QueryResult {
	fields := []string{"name", "state", "latest_version", "shortdesc", "summary"}
	domain := []any{[]any{"state", "=", "installed"}}

	modules, err := c.searchRead("ir.module.module", domain, fields, 0)
	if err != nil {
		return errorResult(err)
	}

	return successResult(modules)
}

// ModelAccess lists access rights, optionally narrowed to models whose
// technical name starts with the given prefix.
func (c *Client) ModelAccess(modelPrefix string) *QueryResult {
	fields := []string{"name", "model_id", "perm_read", "perm_write", "perm_create", "perm_unlink"}

	var domain []any
	if modelPrefix != "" {
		domain = []any{[]any{"model_id.model", "like", modelPrefix + "%"}}
	}

	rights, err := c.searchRead("ir.model.access", domain, fields, 0)
	if err != nil {
		return errorResult(err)
	}

	return successResult(rights)
}

// InspectionReport renders a plain-text summary of the server for the
// interactive "inspect" command.
func (c *Client) InspectionReport() string {
	var b strings.Builder

	info := c.ServerInfo()
	fmt.Fprintf(&b, "Server version: %s\n", info.ServerVersion)
	fmt.Fprintf(&b, "Protocol version: %d\n", info.ProtocolVersion)
	fmt.Fprintf(&b, "Authenticated user id: %d\n", info.UserID)

	modules := c.InstalledModules()
	if modules.Status == StatusError {
		fmt.Fprintf(&b, "Installed modules: unavailable (%s)\n", modules.Message)
		return b.String()
	}

	fmt.Fprintf(&b, "Installed modules: %d\n", modules.RecordCount)
	for _, m := range modules.Data {
		name, _ := m["name"].(string)
		version, _ := m["latest_version"].(string)
		fmt.Fprintf(&b, "  %s %s\n", name, version)
	}

	return b.String()
}

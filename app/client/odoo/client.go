package odoo

import (
	"fmt"
	"log/slog"

	"odoosense/app/config"

	"github.com/kolo/xmlrpc"
	"github.com/samber/do"
)

// rpcCaller is the slice of *xmlrpc.Client the package actually uses, kept
// as an interface so tests can stub the wire.
type rpcCaller interface {
	Call(serviceMethod string, args any, reply any) error
}

type Client struct {
	cfg *config.Config

	common rpcCaller
	object rpcCaller

	uid         int64
	versionInfo map[string]any
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	common, err := xmlrpc.NewClient(cfg.Odoo.URL+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create common endpoint client: %w", err)
	}

	object, err := xmlrpc.NewClient(cfg.Odoo.URL+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create object endpoint client: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		common: common,
		object: object,
	}

	if err = c.connect(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) connect() error {
	var version any
	if err := c.common.Call("version", nil, &version); err != nil {
		return fmt.Errorf("failed to query server version: %w", err)
	}
	c.versionInfo, _ = version.(map[string]any)

	// Odoo returns the user id on success and boolean false on bad
	// credentials, so decode into any first.
	var rawUID any
	err := c.common.Call("authenticate", []any{
		c.cfg.Odoo.Database,
		c.cfg.Odoo.Username,
		c.cfg.Odoo.Password,
		map[string]any{},
	}, &rawUID)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	uid, ok := rawUID.(int64)
	if !ok || uid == 0 {
		return fmt.Errorf("authentication failed for user %q on database %q",
			c.cfg.Odoo.Username, c.cfg.Odoo.Database)
	}

	c.uid = uid

	slog.Info("Connected to Odoo server",
		"url", c.cfg.Odoo.URL,
		"database", c.cfg.Odoo.Database,
		"uid", uid,
	)

	return nil
}

func (c *Client) executeKw(model, method string, args []any, kwargs map[string]any) (any, error) {
	params := []any{
		c.cfg.Odoo.Database,
		c.uid,
		c.cfg.Odoo.Password,
		model,
		method,
		args,
	}
	if kwargs != nil {
		params = append(params, kwargs)
	}

	var result any
	if err := c.object.Call("execute_kw", params, &result); err != nil {
		return nil, fmt.Errorf("execute_kw %s.%s: %w", model, method, err)
	}

	return result, nil
}

func (c *Client) searchRead(model string, domain []any, fields []string, limit int) ([]map[string]any, error) {
	if domain == nil {
		domain = []any{}
	}

	kwargs := map[string]any{
		"fields":  fields,
		"context": map[string]any{"lang": c.cfg.Odoo.Language},
	}
	if limit > 0 {
		kwargs["limit"] = limit
	}

	raw, err := c.executeKw(model, "search_read", []any{domain}, kwargs)
	if err != nil {
		return nil, err
	}

	return coerceRecords(raw), nil
}

func (c *Client) Close() error {
	return nil
}

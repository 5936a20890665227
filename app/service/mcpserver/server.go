package mcpserver

import (
	"context"
	"log/slog"

	"odoosense/app/service/catalog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
	"github.com/tmc/langchaingo/tools"
)

// Service publishes the operation catalog over stdio MCP, so external
// agents can query the same data operations the assistant uses.
type Service struct {
	catalogSvc *catalog.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		catalogSvc: do.MustInvoke[*catalog.Service](di),
	}, nil
}

func (s *Service) Serve() error {
	srv := server.NewMCPServer("odoosense", "1.0.0")

	for _, tool := range s.catalogSvc.Tools() {
		srv.AddTool(
			mcp.NewTool(tool.Name(), mcp.WithDescription(tool.Description())),
			makeHandler(tool),
		)
	}

	slog.Info("Serving tool catalog over stdio MCP")

	return server.ServeStdio(srv)
}

func makeHandler(tool tools.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := tool.Call(ctx, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(out), nil
	}
}

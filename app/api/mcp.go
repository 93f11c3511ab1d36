package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"ariatravel/app/model"
	"ariatravel/app/service/agent"
	"ariatravel/app/service/catalog"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

const (
	mcpServerName    = "aria-travel"
	mcpServerVersion = "1.0.0"
	mcpSessionID     = "mcp"
)

// ToolServer exposes the assistant as MCP tools over stdio.
type ToolServer struct {
	agentSvc   *agent.Service
	catalogSvc *catalog.Service
	mcp        *server.MCPServer
}

func NewToolServer(di *do.Injector) (*ToolServer, error) {
	return NewTools(do.MustInvoke[*agent.Service](di), do.MustInvoke[*catalog.Service](di)), nil
}

func NewTools(agentSvc *agent.Service, catalogSvc *catalog.Service) *ToolServer {
	t := &ToolServer{
		agentSvc:   agentSvc,
		catalogSvc: catalogSvc,
		mcp:        server.NewMCPServer(mcpServerName, mcpServerVersion, server.WithToolCapabilities(false)),
	}

	t.mcp.AddTool(
		mcp.NewTool("ask_travel_assistant",
			mcp.WithDescription("Ask ARIA, the India travel assistant, about destinations, budgets, itineraries and the best time to visit"),
			mcp.WithString("message",
				mcp.Required(),
				mcp.Description("The traveller's message"),
			),
			mcp.WithString("session_id",
				mcp.Description("Conversation id, reuse it for follow-up questions"),
			),
		),
		t.handleAsk,
	)

	t.mcp.AddTool(
		mcp.NewTool("list_destinations",
			mcp.WithDescription("List destinations from the travel catalog"),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of destinations"),
			),
			mcp.WithBoolean("featured",
				mcp.Description("Only featured destinations"),
			),
			mcp.WithString("category",
				mcp.Description("Category such as Historical, Nature, Beach, Religious or Adventure"),
			),
		),
		t.handleList,
	)

	return t
}

func (t *ToolServer) Run(ctx context.Context) error {
	slog.Info("MCP server listening on stdio")

	if err := server.NewStdioServer(t.mcp).Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio server: %w", err)
	}

	return nil
}

func (t *ToolServer) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return mcp.NewToolResultError("message is required"), nil
	}

	sessionID := request.GetString("session_id", mcpSessionID)

	return mcp.NewToolResultText(t.agentSvc.ProcessMessage(ctx, sessionID, message, nil)), nil
}

func (t *ToolServer) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := model.DestinationQuery{
		Limit:    request.GetInt("limit", catalog.DefaultLimit),
		Category: request.GetString("category", ""),
	}
	if query.Limit <= 0 || query.Limit > maxListLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxListLimit)), nil
	}

	if args := request.GetArguments(); args != nil {
		if _, ok := args["featured"]; ok {
			featured := request.GetBool("featured", false)
			query.Featured = &featured
		}
	}

	data, err := sonic.MarshalString(t.catalogSvc.Destinations(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal destinations: %w", err)
	}

	return mcp.NewToolResultText(data), nil
}

package mcpserver

import (
	"context"

	apppublic "holdem-server/internal/app/public"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTableTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_tables",
			mcp.WithDescription("List live tables with pagination"),
			mcp.WithNumber("limit", mcp.Description("Page size, default 50, max 500")),
			mcp.WithNumber("offset", mcp.Description("Page offset, default 0")),
		),
		s.handleListTables,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_table",
			mcp.WithDescription("Public state of one table: phase, board, pot and seated players"),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("Table id")),
		),
		s.handleGetTable,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"create_table",
			mcp.WithDescription("Create an empty table. Players join it over the websocket with game:join:<table_id>"),
			mcp.WithString("table_id", mcp.Description("Optional table id; a random numeric id is picked when empty")),
			mcp.WithString("variant", mcp.Description("Game variant, only holdem is supported")),
		),
		s.handleCreateTable,
	)
}

func (s *Server) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", apppublic.DefaultPageLimit)
	offset := request.GetInt("offset", 0)
	resp, err := s.publicSvc.Tables(ctx, limit, offset)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleGetTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tableID, err := request.RequireString("table_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	resp, err := s.publicSvc.Table(ctx, tableID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleCreateTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.publicSvc.CreateTable(ctx, request.GetString("table_id", ""), request.GetString("variant", ""))
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

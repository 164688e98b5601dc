// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the archive for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dhcraft/m3gim/internal/archiveservice"
)

// Server wraps the MCP server with archive tools.
type Server struct {
	mcp *server.MCPServer
	svc *archiveservice.Service
}

// New creates a new MCP server with all archive tools registered.
func New(svc *archiveservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"M3GIM",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_records",
		mcp.WithDescription("Full-text search through archival record titles, signatures and scope notes."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchRecords)

	s.mcp.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Read one archival record by its graph ID, including Konvolut membership. "+
			"The format of record IDs and fields is documented in the m3gim://data-model resource."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record ID (e.g. m3gim:NIM_003_1)")),
	), s.getRecord)

	s.mcp.AddTool(mcp.NewTool("get_konvolut",
		mcp.WithDescription("Read one Konvolut (physical record grouping) with its derived metadata and child IDs."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Konvolut ID (e.g. m3gim:NIM_003)")),
	), s.getKonvolut)

	s.mcp.AddTool(mcp.NewTool("list_persons",
		mcp.WithDescription("List the person index: canonical names with categories, roles and record counts."),
	), s.listPersons)

	s.mcp.AddTool(mcp.NewTool("get_matrix",
		mcp.WithDescription("Relationship intensity matrix: persons against five-year periods, "+
			"weighted by document type."),
	), s.getMatrix)

	s.mcp.AddTool(mcp.NewTool("get_kosmos",
		mcp.WithDescription("Repertoire graph: composers, their works and the documents attesting them."),
	), s.getKosmos)

	s.mcp.AddTool(mcp.NewTool("get_mobility",
		mcp.WithDescription("Biographical mobility timeline: life phases, relocations and evidence documents."),
	), s.getMobility)

	// Resource: data model of the archive export.
	s.mcp.AddResource(
		mcp.NewResource("m3gim://data-model", "Archive Data Model",
			mcp.WithResourceDescription("Structure of the JSON-LD export and the record/Konvolut/entity model."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDataModelResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.Record(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getKonvolut(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.Konvolut(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listPersons(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	persons := s.svc.Persons(ctx)
	if len(persons) == 0 {
		return mcp.NewToolResultText("no persons indexed"), nil
	}
	var b strings.Builder
	for _, p := range persons {
		fmt.Fprintf(&b, "%s (%s, %d records)\n", p.Name, p.Category, p.RecordCount)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) getMatrix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Matrix(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getKosmos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Kosmos(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getMobility(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Mobility(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDataModelResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "m3gim://data-model",
			MIMEType: "text/markdown",
			Text:     DataModelContract,
		},
	}, nil
}

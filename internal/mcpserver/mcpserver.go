// Package mcpserver registers the catalog's six tool operations against a
// Model Context Protocol server, shared by the standalone catalog-mcp
// binary and catalogd's "serve --mcp" mode.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/antflydb/catalog/internal/toolsurface"
)

// Server wraps an mcp-go server bound to a Catalog implementation.
type Server struct {
	inner *server.MCPServer
	cat   toolsurface.Catalog
}

// New builds a Server exposing api_search, api_get_operation,
// api_generate_request, api_validate_request, api_generate_snippets, and
// api_execute_request against cat.
func New(cat toolsurface.Catalog, version string) *Server {
	s := &Server{cat: cat}
	s.inner = server.NewMCPServer(
		"api-catalog",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Search, inspect, and exercise the OpenAPI operations indexed from the "+
			"configured spec directory. Start with api_search to find a candidate operation, then "+
			"api_get_operation for its full contract before generating or validating a request."),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server, for transports that need
// it directly (stdio, streamable HTTP).
func (s *Server) MCPServer() *server.MCPServer { return s.inner }

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.inner)
}

// ServeHTTP blocks serving the MCP protocol over mark3labs/mcp-go's
// streamable-HTTP transport, bound to addr.
func (s *Server) ServeHTTP(addr string) error {
	httpSrv := server.NewStreamableHTTPServer(s.inner)
	return httpSrv.Start(addr)
}

func (s *Server) registerTools() {
	s.inner.AddTool(
		mcp.NewTool("api_search",
			mcp.WithDescription("Search the indexed API catalog for operations matching a free-text query. "+
				"Returns ranked matches with endpoint IDs and a short rationale for each."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language or keyword query")),
			mcp.WithString("audience", mcp.Description("Optional audience hint, e.g. 'internal' or 'partner'")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleSearch,
	)

	s.inner.AddTool(
		mcp.NewTool("api_get_operation",
			mcp.WithDescription("Fetch the contract for a single operation by endpoint ID: parameters, plus "+
				"request body schema and responses when full is true (null otherwise)."),
			mcp.WithString("endpoint_id", mcp.Required(), mcp.Description("Endpoint ID returned by api_search")),
			mcp.WithBoolean("full", mcp.Description("Include requestBody and responses with $ref schemas deep-resolved (default: false)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetOperation,
	)

	s.inner.AddTool(
		mcp.NewTool("api_generate_request",
			mcp.WithDescription("Generate a deterministic, schema-valid example request body for an operation. "+
				"Provided values are kept verbatim for the parameters and body properties the operation declares; "+
				"undeclared ones are dropped and the rest are synthesized."),
			mcp.WithString("endpoint_id", mcp.Required()),
			mcp.WithObject("provided_fields", mcp.Description("Fields to preserve as-is in the generated body")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGenerateRequest,
	)

	s.inner.AddTool(
		mcp.NewTool("api_validate_request",
			mcp.WithDescription("Validate the body of a caller-built request object against an operation's "+
				"request-body schema, returning field-level errors. Parameters are not checked."),
			mcp.WithString("endpoint_id", mcp.Required()),
			mcp.WithObject("request", mcp.Required(), mcp.Description("Request object: parameters and/or body")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleValidateRequest,
	)

	s.inner.AddTool(
		mcp.NewTool("api_generate_snippets",
			mcp.WithDescription("Generate ready-to-run code snippets (curl, python, ts) for a request."),
			mcp.WithObject("request", mcp.Required(),
				mcp.Description("method, path, contentType, parameters, body")),
			mcp.WithArray("languages", mcp.Description("Subset of curl, python, ts (default: all)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGenerateSnippets,
	)

	s.inner.AddTool(
		mcp.NewTool("api_execute_request",
			mcp.WithDescription("Execute a request against the operation's live base URL. Disabled unless the "+
				"server was started with execution enabled."),
			mcp.WithString("endpoint_id", mcp.Required()),
			mcp.WithObject("request", mcp.Required()),
			mcp.WithString("auth_token", mcp.Description("Bearer token or raw Authorization header value")),
		),
		s.handleExecuteRequest,
	)
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := mcp.ParseString(req, "query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	audience := mcp.ParseString(req, "audience", "")
	result := toolsurface.APISearch(ctx, s.cat, query, audience)
	return marshalToolResult(result)
}

func (s *Server) handleGetOperation(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endpointID := mcp.ParseString(req, "endpoint_id", "")
	if endpointID == "" {
		return mcp.NewToolResultError("endpoint_id is required"), nil
	}
	full := mcp.ParseBoolean(req, "full", false)
	result, err := toolsurface.APIGetOperation(s.cat, endpointID, full)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return marshalToolResult(result)
}

func (s *Server) handleGenerateRequest(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endpointID := mcp.ParseString(req, "endpoint_id", "")
	if endpointID == "" {
		return mcp.NewToolResultError("endpoint_id is required"), nil
	}
	providedFields, _ := req.GetArguments()["provided_fields"].(map[string]any)
	result, err := toolsurface.APIGenerateRequest(s.cat, endpointID, providedFields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return marshalToolResult(result)
}

func (s *Server) handleValidateRequest(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endpointID := mcp.ParseString(req, "endpoint_id", "")
	if endpointID == "" {
		return mcp.NewToolResultError("endpoint_id is required"), nil
	}
	request, _ := req.GetArguments()["request"].(map[string]any)
	if request == nil {
		return mcp.NewToolResultError("request is required"), nil
	}
	result, err := toolsurface.APIValidateRequest(s.cat, endpointID, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return marshalToolResult(result)
}

func (s *Server) handleGenerateSnippets(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	request, _ := req.GetArguments()["request"].(map[string]any)
	if request == nil {
		return mcp.NewToolResultError("request is required"), nil
	}
	var languages []string
	if raw, ok := req.GetArguments()["languages"].([]any); ok {
		for _, v := range raw {
			if str, ok := v.(string); ok {
				languages = append(languages, str)
			}
		}
	}
	result := toolsurface.APIGenerateSnippets(s.cat, request, languages)
	return marshalToolResult(result)
}

func (s *Server) handleExecuteRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endpointID := mcp.ParseString(req, "endpoint_id", "")
	if endpointID == "" {
		return mcp.NewToolResultError("endpoint_id is required"), nil
	}
	request, _ := req.GetArguments()["request"].(map[string]any)
	if request == nil {
		return mcp.NewToolResultError("request is required"), nil
	}
	authToken := mcp.ParseString(req, "auth_token", "")
	result := toolsurface.APIExecuteRequest(ctx, s.cat, endpointID, request, authToken)
	return marshalToolResult(result)
}

func marshalToolResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("internal error: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

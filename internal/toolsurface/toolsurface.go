// Package toolsurface defines the six stable operations exposed to tool
// callers, independent of the transport (MCP stdio/http, CLI) that wires
// them up.
package toolsurface

import "context"

// Catalog is implemented by *catalog.Engine. Transports depend on this
// interface rather than the concrete engine so the tool surface can be
// exercised against a fake in tests.
type Catalog interface {
	CatalogSearch(ctx context.Context, query, audience string) map[string]any
	EndpointGet(endpointID string, full bool) (map[string]any, error)
	PayloadGenerateJSON(endpointID string, providedFields map[string]any) (map[string]any, error)
	PayloadValidateJSON(endpointID string, request map[string]any) (map[string]any, error)
	SnippetGenerate(request map[string]any, languages []string) map[string]any
	ExecuteRequestJSON(ctx context.Context, endpointID string, request map[string]any, authToken string) map[string]any
}

// APISearch implements the api_search tool: ranked operation matches with
// rationale for a free-text query.
func APISearch(ctx context.Context, cat Catalog, query, audience string) map[string]any {
	return cat.CatalogSearch(ctx, query, audience)
}

// APIGetOperation implements the api_get_operation tool: a single
// operation contract by endpoint ID.
func APIGetOperation(cat Catalog, endpointID string, full bool) (map[string]any, error) {
	return cat.EndpointGet(endpointID, full)
}

// APIGenerateRequest implements the api_generate_request tool: a
// deterministic request skeleton for an operation.
func APIGenerateRequest(cat Catalog, endpointID string, providedFields map[string]any) (map[string]any, error) {
	return cat.PayloadGenerateJSON(endpointID, providedFields)
}

// APIValidateRequest implements the api_validate_request tool: validation
// of a caller-built request object against the operation's schema.
func APIValidateRequest(cat Catalog, endpointID string, request map[string]any) (map[string]any, error) {
	return cat.PayloadValidateJSON(endpointID, request)
}

// APIGenerateSnippets implements the api_generate_snippets tool.
func APIGenerateSnippets(cat Catalog, request map[string]any, languages []string) map[string]any {
	return cat.SnippetGenerate(request, languages)
}

// APIExecuteRequest implements the api_execute_request tool (opt-in via
// OPENAPI_EXECUTION=1, enforced inside the engine).
func APIExecuteRequest(ctx context.Context, cat Catalog, endpointID string, request map[string]any, authToken string) map[string]any {
	return cat.ExecuteRequestJSON(ctx, endpointID, request, authToken)
}

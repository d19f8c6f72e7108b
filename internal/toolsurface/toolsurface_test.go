package toolsurface

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is a minimal stand-in for *catalog.Engine, recording the
// arguments each call received so tests can assert on forwarding.
type fakeCatalog struct {
	searchQuery, searchAudience         string
	getEndpointID                       string
	getFull                             bool
	generateEndpointID                  string
	generateFields                      map[string]any
	validateEndpointID                  string
	validateRequest                     map[string]any
	snippetRequest                      map[string]any
	snippetLanguages                    []string
	executeEndpointID, executeAuthToken string
	executeRequest                      map[string]any
}

func (f *fakeCatalog) CatalogSearch(ctx context.Context, query, audience string) map[string]any {
	f.searchQuery, f.searchAudience = query, audience
	return map[string]any{"query": query, "audience": audience, "matches": []any{}}
}

func (f *fakeCatalog) EndpointGet(endpointID string, full bool) (map[string]any, error) {
	f.getEndpointID, f.getFull = endpointID, full
	return map[string]any{"operationId": endpointID}, nil
}

func (f *fakeCatalog) PayloadGenerateJSON(endpointID string, providedFields map[string]any) (map[string]any, error) {
	f.generateEndpointID, f.generateFields = endpointID, providedFields
	return map[string]any{"endpointId": endpointID}, nil
}

func (f *fakeCatalog) PayloadValidateJSON(endpointID string, request map[string]any) (map[string]any, error) {
	f.validateEndpointID, f.validateRequest = endpointID, request
	return map[string]any{"ok": true, "errors": []any{}}, nil
}

func (f *fakeCatalog) SnippetGenerate(request map[string]any, languages []string) map[string]any {
	f.snippetRequest, f.snippetLanguages = request, languages
	return map[string]any{"snippets": map[string]string{}}
}

func (f *fakeCatalog) ExecuteRequestJSON(ctx context.Context, endpointID string, request map[string]any, authToken string) map[string]any {
	f.executeEndpointID, f.executeRequest, f.executeAuthToken = endpointID, request, authToken
	return map[string]any{"ok": true}
}

func TestAPISearch_ForwardsQueryAndAudience(t *testing.T) {
	fake := &fakeCatalog{}
	out := APISearch(context.Background(), fake, "list pets", "internal")
	assert.Equal(t, "list pets", fake.searchQuery)
	assert.Equal(t, "internal", fake.searchAudience)
	assert.Equal(t, "list pets", out["query"])
}

func TestAPIGetOperation_ForwardsEndpointIDAndFull(t *testing.T) {
	fake := &fakeCatalog{}
	out, err := APIGetOperation(fake, "petstore:listPets", true)
	require.NoError(t, err)
	assert.Equal(t, "petstore:listPets", fake.getEndpointID)
	assert.True(t, fake.getFull)
	assert.Equal(t, "petstore:listPets", out["operationId"])
}

func TestAPIGenerateRequest_ForwardsProvidedFields(t *testing.T) {
	fake := &fakeCatalog{}
	fields := map[string]any{"name": "Rex"}
	_, err := APIGenerateRequest(fake, "petstore:createPet", fields)
	require.NoError(t, err)
	assert.Equal(t, fields, fake.generateFields)
}

func TestAPIValidateRequest_ForwardsRequestBody(t *testing.T) {
	fake := &fakeCatalog{}
	req := map[string]any{"body": map[string]any{"name": "Rex"}}
	_, err := APIValidateRequest(fake, "petstore:createPet", req)
	require.NoError(t, err)
	assert.Equal(t, req, fake.validateRequest)
}

func TestAPIGenerateSnippets_ForwardsLanguages(t *testing.T) {
	fake := &fakeCatalog{}
	APIGenerateSnippets(fake, map[string]any{"method": "get", "path": "/pets"}, []string{"curl", "python"})
	assert.Equal(t, []string{"curl", "python"}, fake.snippetLanguages)
}

func TestAPIExecuteRequest_ForwardsAuthToken(t *testing.T) {
	fake := &fakeCatalog{}
	out := APIExecuteRequest(context.Background(), fake, "petstore:createPet", map[string]any{}, "tok123")
	assert.Equal(t, "tok123", fake.executeAuthToken)
	assert.Equal(t, true, out["ok"])
}

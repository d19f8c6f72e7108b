package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antflydb/catalog/internal/model"
)

const petstoreSpec = `
openapi: "3.0.3"
info:
  title: Petstore
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      summary: List all pets
      tags: [pets]
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: ok
    post:
      operationId: createPet
      summary: Create a pet
      tags: [pets]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
      responses:
        "201":
          description: created
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "petstore.yaml"), []byte(petstoreSpec), 0o644))

	engine, err := New(Config{SpecDir: dir, IndexPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	require.NoError(t, engine.Refresh(context.Background(), false))
	return engine
}

func TestEngine_RefreshPopulatesCatalogAndMarksReady(t *testing.T) {
	engine := newTestEngine(t)
	assert.True(t, engine.IsReady())

	catalog := engine.GetCatalog()
	specs, ok := catalog["specs"].([]any)
	require.True(t, ok)
	require.Len(t, specs, 1)
	spec := specs[0].(map[string]any)
	assert.Equal(t, "petstore", spec["specId"])
	assert.Equal(t, true, spec["isValid"])
	assert.EqualValues(t, 2, spec["operationCount"])
}

func TestEngine_CatalogSearchFindsIndexedOperation(t *testing.T) {
	engine := newTestEngine(t)
	out := engine.CatalogSearch(context.Background(), "list all pets", "")
	assert.Equal(t, "list all pets", out["query"])
	assert.Equal(t, "external", out["audience"])

	matches, ok := out["matches"].([]model.OperationMatch)
	require.True(t, ok)
	require.NotEmpty(t, matches)
	assert.Equal(t, "listPets", matches[0].OperationID)
}

func TestEngine_EndpointGetRendersContract(t *testing.T) {
	engine := newTestEngine(t)
	matches := engine.SearchOperations(context.Background(), "createPet", "")
	require.NotEmpty(t, matches)

	var endpointID string
	for _, m := range matches {
		if m.OperationID == "createPet" {
			endpointID = m.EndpointID
			break
		}
	}
	require.NotEmpty(t, endpointID)

	contract, err := engine.EndpointGet(endpointID, false)
	require.NoError(t, err)
	assert.Equal(t, "createPet", contract["operationId"])
	assert.Nil(t, contract["requestBody"])

	full, err := engine.EndpointGet(endpointID, true)
	require.NoError(t, err)
	require.NotNil(t, full["requestBody"])
}

func TestEngine_PayloadValidateRejectsMissingRequiredField(t *testing.T) {
	engine := newTestEngine(t)
	matches := engine.SearchOperations(context.Background(), "createPet", "")
	require.NotEmpty(t, matches)
	var endpointID string
	for _, m := range matches {
		if m.OperationID == "createPet" {
			endpointID = m.EndpointID
		}
	}
	require.NotEmpty(t, endpointID)

	result, err := engine.PayloadValidate(endpointID, map[string]any{"body": map[string]any{}})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Errors)

	result, err = engine.PayloadValidate(endpointID, map[string]any{"body": map[string]any{"name": "Rex"}})
	require.NoError(t, err)
	assert.True(t, result.OK)
}

func TestEngine_ExecuteRequestDisabledByDefault(t *testing.T) {
	engine := newTestEngine(t)
	result := engine.ExecuteRequest(context.Background(), "petstore:get:/pets", map[string]any{}, "")
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "OPENAPI_EXECUTION")
}

func TestEngine_UnknownEndpointReturnsEmptyResult(t *testing.T) {
	engine := newTestEngine(t)
	out, err := engine.EndpointGet("does-not-exist", false)
	require.NoError(t, err)
	assert.Empty(t, out)
}

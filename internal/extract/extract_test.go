package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperations_MergesParametersAndSorts(t *testing.T) {
	spec := map[string]any{
		"paths": map[string]any{
			"/pets/{id}": map[string]any{
				"parameters": []any{
					map[string]any{"name": "id", "in": "path", "schema": map[string]any{"type": "string"}},
				},
				"get": map[string]any{
					"operationId": "getPet",
					"tags":        []any{"b", "a"},
					"parameters": []any{
						map[string]any{"name": "id", "in": "path", "schema": map[string]any{"type": "integer"}},
						map[string]any{"name": "verbose", "in": "query"},
					},
				},
			},
			"/pets": map[string]any{
				"get": map[string]any{"operationId": "listPets"},
			},
		},
	}

	ops := Operations("petstore", spec)
	require.Len(t, ops, 2)

	require.Equal(t, "/pets", ops[0].Path)
	require.Equal(t, "listPets", ops[0].OperationID)
	require.Equal(t, "petstore:listPets", ops[0].EndpointID())

	require.Equal(t, "/pets/{id}", ops[1].Path)
	require.Equal(t, []string{"a", "b"}, ops[1].Tags)

	params := ops[1].Raw["parameters"].([]any)
	require.Len(t, params, 2)
	first := params[0].(map[string]any)
	require.Equal(t, "id", first["name"])
	require.Equal(t, "integer", first["schema"].(map[string]any)["type"])
}

func TestOperations_EndpointIDFallsBackToMethodPath(t *testing.T) {
	spec := map[string]any{
		"paths": map[string]any{
			"/ping": map[string]any{
				"get": map[string]any{},
			},
		},
	}
	ops := Operations("health", spec)
	require.Len(t, ops, 1)
	require.Equal(t, "health:get:/ping", ops[0].EndpointID())
}

func TestSchemas_SortedByName(t *testing.T) {
	spec := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Zebra": map[string]any{"type": "object"},
				"Apple": map[string]any{"type": "object", "description": "a fruit"},
			},
		},
	}
	schemas := Schemas("store", spec)
	require.Len(t, schemas, 2)
	require.Equal(t, "Apple", schemas[0].Name)
	require.Equal(t, "a fruit", schemas[0].Description)
	require.Equal(t, "Zebra", schemas[1].Name)
	require.Equal(t, "store:Zebra", schemas[1].SchemaKey())
}

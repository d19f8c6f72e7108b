package payload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_RequiredParameterUnknown(t *testing.T) {
	operation := map[string]any{
		"parameters": []any{
			map[string]any{"name": "id", "in": "path", "required": true, "schema": map[string]any{"type": "string"}},
			map[string]any{"name": "verbose", "in": "query", "schema": map[string]any{"type": "boolean"}},
		},
	}
	result := Build("petstore:getPet", "get", "/pets/{id}", operation, map[string]any{}, nil)
	require.Contains(t, result.UnknownRequiredFields, "params.path.id")
	require.NotContains(t, result.Request.Parameters["query"], "verbose")
}

func TestBuild_ProvidedParameterUsedVerbatim(t *testing.T) {
	operation := map[string]any{
		"parameters": []any{
			map[string]any{"name": "id", "in": "path", "required": true, "schema": map[string]any{"type": "string"}},
		},
	}
	provided := map[string]any{"path": map[string]any{"id": "abc-123"}}
	result := Build("petstore:getPet", "get", "/pets/{id}", operation, provided, nil)
	require.Equal(t, "abc-123", result.Request.Parameters["path"].(map[string]any)["id"])
	require.Empty(t, result.UnknownRequiredFields)
}

func TestBuild_RequiredBodyGeneratesObjectAndMarksUnknowns(t *testing.T) {
	operation := map[string]any{
		"requestBody": map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{
						"type":     "object",
						"required": []any{"name"},
						"properties": map[string]any{
							"name": map[string]any{"type": "string"},
							"age":  map[string]any{"type": "integer"},
						},
					},
				},
			},
		},
	}
	result := Build("petstore:createPet", "post", "/pets", operation, map[string]any{}, nil)
	require.Equal(t, "application/json", result.Request.ContentType)
	body := result.Request.Body.(map[string]any)
	require.Contains(t, body, "name")
	require.NotContains(t, body, "age")
	require.Contains(t, result.UnknownRequiredFields, "body.name")
}

func TestBuild_EmptyRequiredBodyAddsBodyUnknown(t *testing.T) {
	operation := map[string]any{
		"requestBody": map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"type": "object", "properties": map[string]any{}},
				},
			},
		},
	}
	result := Build("petstore:createPet", "post", "/pets", operation, map[string]any{}, nil)
	require.Contains(t, result.UnknownRequiredFields, "body")
}

func TestGuessValue_DeterministicAcrossCalls(t *testing.T) {
	schema := map[string]any{"type": "string"}
	v1, ok1 := guessValue("email", schema)
	v2, ok2 := guessValue("email", schema)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, v1, v2)
}

func TestGuessValue_IntegerHeuristics(t *testing.T) {
	v, ok := guessValue("age", map[string]any{"type": "integer"})
	require.True(t, ok)
	require.Equal(t, 30, v)
}

func TestNormalizeSchema_MergesAllOfPropertiesAndRequired(t *testing.T) {
	schema := map[string]any{
		"allOf": []any{
			map[string]any{"type": "object", "properties": map[string]any{"a": map[string]any{"type": "string"}}, "required": []any{"a"}},
			map[string]any{"properties": map[string]any{"b": map[string]any{"type": "string"}}, "required": []any{"b"}},
		},
	}
	got := normalizeSchema(schema)
	require.Equal(t, "object", got["type"])
	props := got["properties"].(map[string]any)
	require.Contains(t, props, "a")
	require.Contains(t, props, "b")
	required := got["required"].([]any)
	require.ElementsMatch(t, []any{"a", "b"}, required)
}

func TestGenerateFromSchema_RecursionLimitSentinel(t *testing.T) {
	schema := map[string]any{"type": "object", "properties": map[string]any{"self": map[string]any{"type": "object"}}}
	schema["properties"].(map[string]any)["self"] = schema
	var unknowns []string
	got := generateFromSchema(schema, nil, "body", &unknowns, 4, "body")
	require.Equal(t, recursionLimitSentinel, got)
}

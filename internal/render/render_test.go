package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antflydb/catalog/internal/model"
)

func TestCatalog_RendersSpecSummaries(t *testing.T) {
	out := Catalog([]model.SpecMeta{
		{SpecID: "petstore", Title: "Petstore", Version: "1.0.0", FilePath: "petstore.yaml", OperationCount: 2, IsValid: true},
	})
	specs, ok := out["specs"].([]any)
	require.True(t, ok)
	require.Len(t, specs, 1)
	spec := specs[0].(map[string]any)
	assert.Equal(t, "petstore", spec["specId"])
	assert.Equal(t, "Petstore", spec["title"])
	assert.Nil(t, spec["validationError"])
}

func TestOperation_OmitsEmptyStringsAsNil(t *testing.T) {
	op := model.Operation{SpecID: "petstore", Method: "get", Path: "/pets", Raw: map[string]any{"summary": "List"}}
	out := Operation(op)
	assert.Nil(t, out["operationId"])
	assert.Equal(t, "get", out["method"])
	assert.Equal(t, []string{}, out["tags"])
}

func TestContract_SortsParametersByInThenName(t *testing.T) {
	op := model.Operation{
		SpecID: "petstore", OperationID: "listPets", Method: "get", Path: "/pets",
		Raw: map[string]any{
			"parameters": []any{
				map[string]any{"name": "limit", "in": "query"},
				map[string]any{"name": "petId", "in": "path", "required": true},
				map[string]any{"name": "tag", "in": "query"},
			},
		},
	}
	out := Contract(op, map[string]any{}, false)
	params := out["parameters"].([]any)
	require.Len(t, params, 3)
	assert.Equal(t, "petId", params[0].(map[string]any)["name"])
	assert.Equal(t, "limit", params[1].(map[string]any)["name"])
	assert.Equal(t, "tag", params[2].(map[string]any)["name"])
	assert.Nil(t, out["requestBody"])
}

func TestContract_DeepResolvesBodyOnlyWhenFull(t *testing.T) {
	spec := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Pet": map[string]any{"type": "object"},
			},
		},
	}
	op := model.Operation{
		SpecID: "petstore", Method: "post", Path: "/pets",
		Raw: map[string]any{
			"requestBody": map[string]any{"$ref": "#/components/schemas/Pet"},
		},
	}

	shallow := Contract(op, spec, false)
	assert.Nil(t, shallow["requestBody"])

	full := Contract(op, spec, true)
	require.NotNil(t, full["requestBody"])
}

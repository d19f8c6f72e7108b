package snippets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_CurlIncludesMethodAndTemplatedBaseURL(t *testing.T) {
	req := Request{
		Method: "get",
		Path:   "/pets/{petId}",
		Parameters: map[string]any{
			"path":  map[string]any{"petId": "123"},
			"query": map[string]any{"verbose": true},
		},
	}
	out := Generate(req, []string{"curl"})
	require.Contains(t, out, "curl")
	assert.Contains(t, out["curl"], "-X GET")
	assert.Contains(t, out["curl"], "{{base_url}}/pets/123?verbose=true")
}

func TestGenerate_UnknownLanguageSkipped(t *testing.T) {
	out := Generate(Request{Method: "get", Path: "/pets"}, []string{"curl", "cobol"})
	assert.Len(t, out, 1)
	_, ok := out["cobol"]
	assert.False(t, ok)
}

func TestGenerate_PythonSnippetIncludesJSONBody(t *testing.T) {
	req := Request{
		Method:      "post",
		Path:        "/pets",
		ContentType: "application/json",
		Body:        map[string]any{"name": "Rex"},
	}
	out := Generate(req, []string{"python"})
	assert.Contains(t, out["python"], "import requests")
	assert.Contains(t, out["python"], `"name": "Rex"`)
	assert.Contains(t, out["python"], "json=payload")
}

func TestGenerate_TsSnippetOmitsBodyWhenNoPayload(t *testing.T) {
	out := Generate(Request{Method: "get", Path: "/pets"}, []string{"ts"})
	assert.NotContains(t, out["ts"], "const body")
	assert.Contains(t, out["ts"], `method: "GET"`)
}

func TestReindentTwoSpace_SortedCompactInput(t *testing.T) {
	got := reindentTwoSpace(`{"a":1,"b":[1,2]}`)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}", got)
}

func TestReindentTwoSpace_EmptyContainersStayInline(t *testing.T) {
	assert.Equal(t, "{}", reindentTwoSpace("{}"))
	assert.Equal(t, "[]", reindentTwoSpace("[]"))
}

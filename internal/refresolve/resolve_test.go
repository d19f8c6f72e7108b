package refresolve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePointer_DecodesEscapes(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"a/b": map[string]any{"type": "string"},
			},
		},
	}
	got, ok := ResolvePointer(root, "#/components/schemas/a~1b")
	require.True(t, ok)
	require.Equal(t, map[string]any{"type": "string"}, got)
}

func TestResolvePointer_RejectsNonLocalAndMissing(t *testing.T) {
	root := map[string]any{"a": map[string]any{}}
	_, ok := ResolvePointer(root, "http://example.com/schema.json")
	require.False(t, ok)
	_, ok = ResolvePointer(root, "#/a/missing")
	require.False(t, ok)
}

func TestDeepResolve_SubstitutesRef(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Pet": map[string]any{"type": "object"},
			},
		},
	}
	value := map[string]any{"$ref": "#/components/schemas/Pet"}
	got := DeepResolve(value, root)
	require.Equal(t, map[string]any{"type": "object"}, got)
}

func TestDeepResolve_CycleResolvesToEmptyMap(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Node": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"child": map[string]any{"$ref": "#/components/schemas/Node"},
					},
				},
			},
		},
	}
	value := map[string]any{"$ref": "#/components/schemas/Node"}
	got := DeepResolve(value, root).(map[string]any)
	props := got["properties"].(map[string]any)
	child := props["child"].(map[string]any)
	require.Empty(t, child)
}

func TestDeepResolve_NonResolvableRefReturnedVerbatim(t *testing.T) {
	root := map[string]any{}
	value := map[string]any{"$ref": "#/missing"}
	got := DeepResolve(value, root)
	require.Equal(t, value, got)
}

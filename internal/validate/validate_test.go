package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	require.Equal(t, DialectOAS31, DialectFor("3.1.0"))
	require.Equal(t, DialectOAS30, DialectFor("3.0.3"))
	require.Equal(t, DialectOAS30, DialectFor(""))
}

func TestSanitizeForValidation_StripsDiscriminatorAtEveryDepth(t *testing.T) {
	schema := map[string]any{
		"discriminator": map[string]any{"propertyName": "type"},
		"oneOf": []any{
			map[string]any{"discriminator": map[string]any{"propertyName": "kind"}, "type": "object"},
		},
	}
	got := sanitizeForValidation(schema).(map[string]any)
	_, hasTop := got["discriminator"]
	require.False(t, hasTop)
	nested := got["oneOf"].([]any)[0].(map[string]any)
	_, hasNested := nested["discriminator"]
	require.False(t, hasNested)
	require.Equal(t, "object", nested["type"])
}

func TestValidateBody_RequiredFieldMissing(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}
	result, err := ValidateBody(schema, map[string]any{}, DialectOAS30)
	require.NoError(t, err)
	require.False(t, result.OK)
	require.NotEmpty(t, result.Errors)
}

func TestValidateBody_Valid(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}
	result, err := ValidateBody(schema, map[string]any{"name": "Ada"}, DialectOAS30)
	require.NoError(t, err)
	require.True(t, result.OK)
	require.Empty(t, result.Errors)
}

package payload

import (
	"fmt"
	"sort"
)

// generateFromSchema synthesizes a value for schema at the given path,
// honoring provided data, union/discriminator selection, allOf merging,
// and the value precedence const > default > enum[0] > type-based
// generation. Required-but-missing object properties are recorded into
// unknowns as "{path}.{prop}".
func generateFromSchema(schema map[string]any, provided any, path string, unknowns *[]string, depth int, fieldName string) any {
	if depth > maxDepth {
		return recursionLimitSentinel
	}

	selected, disc := selectUnionSchema(schema, provided)
	normalized := normalizeSchema(selected)

	if provided != nil {
		if providedMap, ok := provided.(map[string]any); ok && normalized["type"] == "object" {
			return generateObject(normalized, providedMap, path, unknowns, disc, depth)
		}
		if providedList, ok := provided.([]any); ok && normalized["type"] == "array" {
			itemsSchema, _ := normalized["items"].(map[string]any)
			out := make([]any, len(providedList))
			for i, item := range providedList {
				out[i] = generateFromSchema(itemsSchema, item, fmt.Sprintf("%s[%d]", path, i), unknowns, depth+1, fieldName)
			}
			return out
		}
		return provided
	}

	if v, ok := normalized["const"]; ok {
		return v
	}
	if v, ok := normalized["default"]; ok {
		return v
	}
	if enum, ok := normalized["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}

	switch normalized["type"] {
	case "object":
		return generateObject(normalized, map[string]any{}, path, unknowns, disc, depth)
	case "array":
		itemsSchema, _ := normalized["items"].(map[string]any)
		item := generateFromSchema(itemsSchema, nil, fmt.Sprintf("%s[0]", path), unknowns, depth+1, fieldName)
		return []any{item}
	}

	if guess, ok := guessValue(fieldName, normalized); ok {
		return guess
	}
	switch normalized["type"] {
	case "integer":
		return 0
	case "number":
		return 0.0
	case "boolean":
		return false
	default:
		return "<string>"
	}
}

func generateObject(schema map[string]any, provided map[string]any, path string, unknowns *[]string, disc *discriminator, depth int) map[string]any {
	properties, _ := schema["properties"].(map[string]any)
	requiredSet := map[string]bool{}
	if required, ok := schema["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				requiredSet[s] = true
			}
		}
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	output := map[string]any{}
	for _, name := range names {
		propSchema, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		propProvided, hasProvided := provided[name]
		isRequired := requiredSet[name]

		if isRequired && !hasProvided {
			*unknowns = append(*unknowns, fmt.Sprintf("%s.%s", path, name))
		}

		if isRequired || hasProvided {
			output[name] = generateFromSchema(propSchema, propProvided, fmt.Sprintf("%s.%s", path, name), unknowns, depth+1, name)
		}
	}

	if disc != nil && disc.name != "" {
		if _, already := output[disc.name]; !already {
			if propSchema, ok := properties[disc.name].(map[string]any); ok {
				if disc.value != nil {
					output[disc.name] = disc.value
				} else {
					output[disc.name] = placeholderForSchema(propSchema, disc.name)
				}
			} else if disc.value != nil {
				output[disc.name] = disc.value
			}
		}
	}

	return output
}

// placeholderForSchema produces a value for a single parameter/property
// without structural recursion into provided data — used for required
// parameters with no caller-supplied value and for discriminator
// properties that aren't otherwise emitted.
func placeholderForSchema(schema map[string]any, fieldName string) any {
	if schema == nil {
		return "<string>"
	}
	selected, _ := selectUnionSchema(schema, nil)
	normalized := normalizeSchema(selected)

	if v, ok := normalized["const"]; ok {
		return v
	}
	if guess, ok := guessValue(fieldName, normalized); ok {
		return guess
	}
	switch normalized["type"] {
	case "integer":
		return 0
	case "number":
		return 0.0
	case "boolean":
		return false
	case "array":
		itemsSchema, _ := normalized["items"].(map[string]any)
		return []any{placeholderForSchema(itemsSchema, fieldName)}
	case "object":
		return map[string]any{}
	default:
		return "<string>"
	}
}

package payload

import "sort"

// maxDepth bounds body synthesis recursion; beyond it the sentinel
// "<recursion_limit>" is returned instead of expanding further.
const maxDepth = 3

const recursionLimitSentinel = "<recursion_limit>"

// discriminator is the {name, value} pair selected while resolving a
// oneOf/anyOf branch, carried into object synthesis so the discriminator
// property can be filled in even when it isn't declared required.
type discriminator struct {
	name  string
	value any
}

// normalizeSchema merges allOf branches and infers a missing "type" from
// "properties"/"items", recursively.
func normalizeSchema(schema map[string]any) map[string]any {
	if schema == nil {
		return map[string]any{}
	}

	out := schema
	if allOf, ok := schema["allOf"].([]any); ok {
		properties := map[string]any{}
		required := map[string]bool{}
		merged := map[string]any{}

		for _, sub := range allOf {
			subSchema, ok := sub.(map[string]any)
			if !ok {
				continue
			}
			normalized := normalizeSchema(subSchema)
			if subProps, ok := normalized["properties"].(map[string]any); ok {
				for k, v := range subProps {
					properties[k] = v
				}
			}
			if subRequired, ok := normalized["required"].([]any); ok {
				for _, r := range subRequired {
					if s, ok := r.(string); ok {
						required[s] = true
					}
				}
			}
			for k, v := range normalized {
				if k == "properties" || k == "required" {
					continue
				}
				if _, exists := merged[k]; !exists {
					merged[k] = v
				}
			}
		}

		combined := map[string]any{}
		for k, v := range schema {
			combined[k] = v
		}
		for k, v := range merged {
			combined[k] = v
		}
		if len(properties) > 0 {
			combined["properties"] = properties
			if _, ok := combined["type"]; !ok {
				combined["type"] = "object"
			}
		}
		if len(required) > 0 {
			names := make([]string, 0, len(required))
			for r := range required {
				names = append(names, r)
			}
			sort.Strings(names)
			reqAny := make([]any, len(names))
			for i, n := range names {
				reqAny[i] = n
			}
			combined["required"] = reqAny
		}
		out = combined
	}

	if _, hasType := out["type"]; !hasType {
		if _, ok := out["properties"].(map[string]any); ok {
			out = cloneWith(out, "type", "object")
		} else if _, ok := out["items"].(map[string]any); ok {
			out = cloneWith(out, "type", "array")
		}
	}
	return out
}

func cloneWith(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}

// selectUnionSchema picks one branch of a oneOf/anyOf, by discriminator
// resolution precedence: exact discriminator match from
// provided data, else a mapping's lexicographically smallest key, else
// inference from the first option that defines const/enum/default on the
// discriminator property, else the first option.
func selectUnionSchema(schema map[string]any, provided any) (map[string]any, *discriminator) {
	if schema == nil {
		return map[string]any{}, nil
	}

	for _, key := range []string{"oneOf", "anyOf"} {
		options, ok := schema[key].([]any)
		if !ok || len(options) == 0 {
			continue
		}

		disc, _ := schema["discriminator"].(map[string]any)
		if disc != nil {
			propName, _ := disc["propertyName"].(string)
			mapping, _ := disc["mapping"].(map[string]any)

			if propName != "" {
				if providedMap, ok := provided.(map[string]any); ok {
					if providedValue, ok := providedMap[propName]; ok && providedValue != nil {
						if selected := selectByDiscriminator(options, propName, providedValue, mapping); selected != nil {
							return selected, &discriminator{name: propName, value: providedValue}
						}
					}
				}
				if len(mapping) > 0 {
					mappingKey := smallestKey(mapping)
					if selected := selectByDiscriminator(options, propName, mappingKey, mapping); selected != nil {
						return selected, &discriminator{name: propName, value: mappingKey}
					}
					if first, ok := options[0].(map[string]any); ok {
						return first, &discriminator{name: propName, value: mappingKey}
					}
				}
				if value, opt := inferDiscriminatorOption(options, propName); opt != nil {
					return opt, &discriminator{name: propName, value: value}
				}
			}
		}

		if first, ok := options[0].(map[string]any); ok {
			return first, nil
		}
	}

	return schema, nil
}

func smallestKey(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}

func selectByDiscriminator(options []any, propName string, value any, mapping map[string]any) map[string]any {
	if mapping != nil {
		if valueStr, ok := value.(string); ok {
			if target, ok := mapping[valueStr]; ok {
				if targetMap, ok := target.(map[string]any); ok {
					return targetMap
				}
				if targetStr, ok := target.(string); ok {
					for _, o := range options {
						opt, ok := o.(map[string]any)
						if !ok {
							continue
						}
						if opt["$ref"] == targetStr || opt["$id"] == targetStr || opt["title"] == targetStr {
							return opt
						}
					}
				}
			}
		}
	}

	for _, o := range options {
		opt, ok := o.(map[string]any)
		if !ok {
			continue
		}
		if optionMatchesDiscriminator(opt, propName, value) {
			return opt
		}
	}
	return nil
}

func optionMatchesDiscriminator(option map[string]any, propName string, value any) bool {
	schema := normalizeSchema(option)
	properties, _ := schema["properties"].(map[string]any)
	propSchema, ok := properties[propName].(map[string]any)
	if !ok {
		return false
	}
	if constVal, ok := propSchema["const"]; ok {
		return constVal == value
	}
	if enum, ok := propSchema["enum"].([]any); ok {
		for _, e := range enum {
			if e == value {
				return true
			}
		}
	}
	if def, ok := propSchema["default"]; ok {
		return def == value
	}
	return false
}

func inferDiscriminatorOption(options []any, propName string) (any, map[string]any) {
	for _, o := range options {
		opt, ok := o.(map[string]any)
		if !ok {
			continue
		}
		if value, ok := inferDiscriminatorValue(opt, propName); ok {
			return value, opt
		}
	}
	return nil, nil
}

func inferDiscriminatorValue(option map[string]any, propName string) (any, bool) {
	schema := normalizeSchema(option)
	properties, _ := schema["properties"].(map[string]any)
	propSchema, ok := properties[propName].(map[string]any)
	if !ok {
		return nil, false
	}
	if constVal, ok := propSchema["const"]; ok {
		return constVal, true
	}
	if enum, ok := propSchema["enum"].([]any); ok && len(enum) > 0 {
		return enum[0], true
	}
	if def, ok := propSchema["default"]; ok {
		return def, true
	}
	return nil, false
}

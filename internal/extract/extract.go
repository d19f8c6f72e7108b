// Package extract projects a parsed OpenAPI document into the catalog's
// Operation and Schema records, merging path-level and operation-level
// parameters.
package extract

import (
	"sort"

	"github.com/antflydb/catalog/internal/model"
)

// Operations traverses spec.paths (sorted by path string) and emits one
// Operation per HTTP method present as a mapping, merging path-item and
// operation-level parameters. Result is sorted by (path, method,
// operationId-or-empty).
func Operations(specID string, spec map[string]any) []model.Operation {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return nil
	}

	pathKeys := make([]string, 0, len(paths))
	for p := range paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	var ops []model.Operation
	for _, path := range pathKeys {
		pathItem, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		pathParams, _ := pathItem["parameters"].([]any)

		for _, method := range model.HTTPMethods {
			op, ok := pathItem[method].(map[string]any)
			if !ok {
				continue
			}

			opParams, _ := op["parameters"].([]any)
			merged := mergeParameters(pathParams, opParams)

			payload := make(map[string]any, len(op)+1)
			for k, v := range op {
				payload[k] = v
			}
			if len(merged) > 0 {
				payload["parameters"] = merged
			}

			operationID, _ := op["operationId"].(string)
			summary, _ := op["summary"].(string)
			description, _ := op["description"].(string)

			var tags []string
			if raw, ok := op["tags"].([]any); ok {
				for _, t := range raw {
					if s, ok := t.(string); ok {
						tags = append(tags, s)
					}
				}
				sort.Strings(tags)
			}

			ops = append(ops, model.Operation{
				SpecID:      specID,
				OperationID: operationID,
				Method:      method,
				Path:        path,
				Summary:     summary,
				Description: description,
				Tags:        tags,
				Raw:         payload,
			})
		}
	}

	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		if ops[i].Method != ops[j].Method {
			return ops[i].Method < ops[j].Method
		}
		return ops[i].OperationID < ops[j].OperationID
	})
	return ops
}

// Schemas emits one Schema per entry in spec.components.schemas, sorted
// by name.
func Schemas(specID string, spec map[string]any) []model.Schema {
	components, ok := spec["components"].(map[string]any)
	if !ok {
		return nil
	}
	block, ok := components["schemas"].(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(block))
	for name := range block {
		names = append(names, name)
	}
	sort.Strings(names)

	schemas := make([]model.Schema, 0, len(names))
	for _, name := range names {
		schema, ok := block[name].(map[string]any)
		if !ok {
			continue
		}
		description, _ := schema["description"].(string)
		schemas = append(schemas, model.Schema{
			SpecID:      specID,
			Name:        name,
			Description: description,
			Raw:         schema,
		})
	}
	return schemas
}

type paramKey struct{ name, in string }

// mergeParameters merges path-level and operation-level parameter lists.
// The operation-level entry wins on (name, in) collision; result is
// sorted by (in, name) ascending.
func mergeParameters(pathParams, opParams []any) []any {
	merged := map[paramKey]any{}
	order := []paramKey{}

	ingest := func(params []any) {
		for _, p := range params {
			m, ok := p.(map[string]any)
			if !ok {
				continue
			}
			name, nameOK := m["name"].(string)
			loc, locOK := m["in"].(string)
			if !nameOK || !locOK {
				continue
			}
			key := paramKey{name: name, in: loc}
			if _, exists := merged[key]; !exists {
				order = append(order, key)
			}
			merged[key] = m
		}
	}
	ingest(pathParams)
	ingest(opParams)

	sort.Slice(order, func(i, j int) bool {
		if order[i].in != order[j].in {
			return order[i].in < order[j].in
		}
		return order[i].name < order[j].name
	})

	out := make([]any, 0, len(order))
	for _, key := range order {
		out = append(out, merged[key])
	}
	return out
}

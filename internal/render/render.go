// Package render projects internal catalog records into the stable
// JSON-shaped maps returned across the tool surface.
package render

import (
	"sort"

	"github.com/antflydb/catalog/internal/jsonutil"
	"github.com/antflydb/catalog/internal/model"
	"github.com/antflydb/catalog/internal/refresolve"
)

// Catalog renders the spec inventory shown by get_catalog.
func Catalog(specs []model.SpecMeta) map[string]any {
	out := make([]any, 0, len(specs))
	for _, s := range specs {
		out = append(out, map[string]any{
			"specId":          s.SpecID,
			"title":           orNil(s.Title),
			"version":         orNil(s.Version),
			"description":     orNil(s.Description),
			"filePath":        s.FilePath,
			"operationCount":  s.OperationCount,
			"schemaCount":     s.SchemaCount,
			"isValid":         s.IsValid,
			"validationError": orNil(s.ValidationError),
		})
	}
	return map[string]any{"specs": out}
}

// Operation renders a full operation record, with its raw mapping
// recursively key-sorted.
func Operation(op model.Operation) map[string]any {
	return map[string]any{
		"specId":      op.SpecID,
		"operationId": orNil(op.OperationID),
		"method":      op.Method,
		"path":        op.Path,
		"summary":     orNil(op.Summary),
		"description": orNil(op.Description),
		"tags":        tagsOrEmpty(op.Tags),
		"operation":   jsonutil.Canonical(op.Raw),
	}
}

// Schema renders a full schema record, with its raw mapping recursively
// key-sorted.
func Schema(s model.Schema) map[string]any {
	return map[string]any{
		"specId":      s.SpecID,
		"schemaName":  s.Name,
		"description": orNil(s.Description),
		"schema":      jsonutil.Canonical(s.Raw),
	}
}

// Contract renders an operation's endpoint_get shape. When full is true,
// requestBody and responses are deep-resolved against spec; when false
// both keys are present with null values.
func Contract(op model.Operation, spec map[string]any, full bool) map[string]any {
	rawParams, _ := op.Raw["parameters"].([]any)
	parameters := make([]any, 0, len(rawParams))
	for _, p := range rawParams {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		var schema any
		if s, ok := param["schema"].(map[string]any); ok {
			schema = jsonutil.Canonical(s)
		}
		required, _ := param["required"].(bool)
		parameters = append(parameters, map[string]any{
			"name":        param["name"],
			"in":          param["in"],
			"required":    required,
			"description": param["description"],
			"schema":      schema,
		})
	}
	sort.Slice(parameters, func(i, j int) bool {
		a := parameters[i].(map[string]any)
		b := parameters[j].(map[string]any)
		ain, _ := a["in"].(string)
		bin, _ := b["in"].(string)
		if ain != bin {
			return ain < bin
		}
		aname, _ := a["name"].(string)
		bname, _ := b["name"].(string)
		return aname < bname
	})

	var requestBody, responses any
	if full {
		if rb, ok := op.Raw["requestBody"].(map[string]any); ok {
			requestBody = jsonutil.Canonical(refresolve.DeepResolve(rb, spec))
		}
		if resp, ok := op.Raw["responses"].(map[string]any); ok {
			responses = jsonutil.Canonical(refresolve.DeepResolve(resp, spec))
		}
	}

	return map[string]any{
		"endpointId":  op.EndpointID(),
		"specId":      op.SpecID,
		"operationId": orNil(op.OperationID),
		"method":      op.Method,
		"path":        op.Path,
		"summary":     orNil(op.Summary),
		"description": orNil(op.Description),
		"tags":        tagsOrEmpty(op.Tags),
		"parameters":  parameters,
		"requestBody": requestBody,
		"responses":   responses,
	}
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

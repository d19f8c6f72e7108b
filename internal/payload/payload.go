// Package payload synthesizes a plausible request skeleton with
// deterministic values from an operation's OpenAPI schema.
package payload

import (
	"fmt"
	"sort"

	"github.com/antflydb/catalog/internal/refresolve"
)

// Result is the output of Build.
type Result struct {
	EndpointID            string   `json:"endpointId"`
	Request               Request  `json:"request"`
	UnknownRequiredFields []string `json:"unknownRequiredFields"`
}

// Request is the synthesized request skeleton.
type Request struct {
	Method      string         `json:"method"`
	Path        string         `json:"path"`
	ContentType string         `json:"contentType,omitempty"`
	Parameters  map[string]any `json:"parameters"`
	Body        any            `json:"body"`
}

type requestBody struct {
	Required    bool
	ContentType string
	Schema      map[string]any
}

// Build synthesizes a request for one operation, resolving $ref inside
// the request body schema against spec. providedFields accepts any of
// three shapes: explicit {path,query,header,body} buckets,
// {parameters:{path,query,header}, body}, or a flat mapping treated
// entirely as body.
func Build(endpointID, method, path string, operation map[string]any, providedFields map[string]any, spec map[string]any) Result {
	parameters, _ := operation["parameters"].([]any)
	provided := normalizeProvidedFields(providedFields)

	body := extractRequestBody(operation, spec)

	paramPayload, paramUnknowns := buildParameters(parameters, provided)

	var bodyPayload any
	var bodyUnknowns []string
	if body != nil {
		bodyPayload, bodyUnknowns = buildBody(body.Schema, provided["body"])
	}

	unknowns := dedupeSorted(append(paramUnknowns, bodyUnknowns...))
	if body != nil && body.Required && isEmptyBody(bodyPayload) {
		unknowns = dedupeSorted(append(unknowns, "body"))
	}

	contentType := ""
	if body != nil {
		contentType = body.ContentType
	}

	return Result{
		EndpointID: endpointID,
		Request: Request{
			Method:      method,
			Path:        path,
			ContentType: contentType,
			Parameters:  paramPayload,
			Body:        bodyPayload,
		},
		UnknownRequiredFields: unknowns,
	}
}

func isEmptyBody(body any) bool {
	if body == nil {
		return true
	}
	if m, ok := body.(map[string]any); ok {
		return len(m) == 0
	}
	return false
}

func dedupeSorted(items []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

// normalizeProvidedFields accepts the three input shapes Build allows
// and returns the canonical {path, query, header, body} buckets.
func normalizeProvidedFields(fields map[string]any) map[string]any {
	hasAny := false
	for _, key := range []string{"path", "query", "header", "body", "parameters"} {
		if _, ok := fields[key]; ok {
			hasAny = true
			break
		}
	}
	if !hasAny {
		return map[string]any{"path": map[string]any{}, "query": map[string]any{}, "header": map[string]any{}, "body": fields}
	}

	if parameters, ok := fields["parameters"].(map[string]any); ok {
		return map[string]any{
			"path":   orEmpty(parameters["path"], fields["path"]),
			"query":  orEmpty(parameters["query"], fields["query"]),
			"header": orEmpty(parameters["header"], fields["header"]),
			"body":   orEmpty(fields["body"], map[string]any{}),
		}
	}

	return map[string]any{
		"path":   orEmpty(fields["path"], map[string]any{}),
		"query":  orEmpty(fields["query"], map[string]any{}),
		"header": orEmpty(fields["header"], map[string]any{}),
		"body":   orEmpty(fields["body"], map[string]any{}),
	}
}

func orEmpty(v, fallback any) any {
	if v != nil {
		return v
	}
	return fallback
}

// extractRequestBody selects the request body's content type
// (application/json when present, else the lexicographically smallest
// key) and deep-resolves $ref inside its schema.
func extractRequestBody(operation map[string]any, spec map[string]any) *requestBody {
	rb, ok := operation["requestBody"].(map[string]any)
	if !ok {
		return nil
	}
	content, ok := rb["content"].(map[string]any)
	if !ok || len(content) == 0 {
		return nil
	}

	contentType := "application/json"
	if _, ok := content[contentType]; !ok {
		keys := make([]string, 0, len(content))
		for k := range content {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		contentType = keys[0]
	}

	media, _ := content[contentType].(map[string]any)
	var schema map[string]any
	if media != nil {
		if s, ok := media["schema"].(map[string]any); ok {
			resolved := refresolve.DeepResolve(s, spec)
			schema, _ = resolved.(map[string]any)
		}
	}

	required, _ := rb["required"].(bool)
	return &requestBody{Required: required, ContentType: contentType, Schema: schema}
}

func buildParameters(parameters []any, provided map[string]any) (map[string]any, []string) {
	buckets := map[string]any{
		"path":   map[string]any{},
		"query":  map[string]any{},
		"header": map[string]any{},
	}
	var unknowns []string

	for _, p := range parameters {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		name, nameOK := param["name"].(string)
		location, locOK := param["in"].(string)
		if !nameOK || !locOK {
			continue
		}
		bucket, ok := buckets[location].(map[string]any)
		if !ok {
			continue
		}

		required, _ := param["required"].(bool)
		var providedValue any
		if providedBucket, ok := provided[location].(map[string]any); ok {
			providedValue = providedBucket[name]
		}
		hasProvided := providedValue != nil

		if !required && !hasProvided {
			continue
		}
		if hasProvided {
			bucket[name] = providedValue
		} else {
			schema, _ := param["schema"].(map[string]any)
			bucket[name] = placeholderForSchema(schema, name)
			unknowns = append(unknowns, fmt.Sprintf("params.%s.%s", location, name))
		}
	}

	return buckets, unknowns
}

func buildBody(schema map[string]any, provided any) (any, []string) {
	if schema == nil {
		return nil, nil
	}
	var unknowns []string
	value := generateFromSchema(schema, provided, "body", &unknowns, 0, "body")
	return value, unknowns
}

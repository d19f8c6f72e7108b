// Package validate adapts spec-document structural validation and
// request-body schema validation to the two OpenAPI dialects (3.0, 3.1).
package validate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/kaptinlin/jsonschema"
)

// FieldError is one validation failure, with a "/"-joined JSON
// Pointer-like path ("" for the document root).
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// BodyResult is the outcome of validating a request body against an
// operation's schema.
type BodyResult struct {
	OK     bool         `json:"ok"`
	Errors []FieldError `json:"errors"`
}

// Dialect is an OpenAPI schema dialect.
type Dialect int

const (
	DialectOAS30 Dialect = iota
	DialectOAS31
)

// DialectFor selects 3.1 semantics when the document's top-level
// "openapi" field starts with "3.1", otherwise 3.0. Dialect dispatch is
// keyed on this field, not info.version.
func DialectFor(openapiField string) Dialect {
	if strings.HasPrefix(openapiField, "3.1") {
		return DialectOAS31
	}
	return DialectOAS30
}

// ValidateDocument structurally validates a raw spec document for the
// dialect implied by its own "openapi" field.
func ValidateDocument(raw map[string]any) (ok bool, message string) {
	data, err := sonic.Marshal(raw)
	if err != nil {
		return false, fmt.Sprintf("marshal spec document: %v", err)
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return false, fmt.Sprintf("parse spec document: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// ValidateBody validates body against schema under the given dialect.
// The schema is sanitized first: discriminator keys are stripped at every
// depth, since they are informational and some validator cores reject
// them as unknown keywords.
func ValidateBody(schema map[string]any, body any, dialect Dialect) (BodyResult, error) {
	sanitized := sanitizeForValidation(schema)

	schemaBytes, err := sonic.Marshal(sanitized)
	if err != nil {
		return BodyResult{}, fmt.Errorf("marshal body schema: %w", err)
	}

	// dialect does not change body validation: 3.0 and 3.1 schemas are
	// compiled the same way, and kaptinlin/jsonschema picks the draft from
	// the schema's own $schema keyword when present.
	_ = dialect

	compiler := jsonschema.NewCompiler()
	compiler.WithDecoderJSON(sonic.Unmarshal)
	compiler.WithEncoderJSON(sonic.Marshal)

	compiled, err := compiler.Compile(schemaBytes)
	if err != nil {
		return BodyResult{}, fmt.Errorf("compile body schema: %w", err)
	}

	bodyMap, err := toMap(body)
	if err != nil {
		return BodyResult{}, err
	}

	result := compiled.ValidateMap(bodyMap)
	if result.IsValid() {
		return BodyResult{OK: true, Errors: []FieldError{}}, nil
	}

	errs := make([]FieldError, 0, len(result.Errors))
	for field, e := range result.Errors {
		errs = append(errs, FieldError{Path: formatErrorPath(field), Message: e.Message})
	}
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Path != errs[j].Path {
			return errs[i].Path < errs[j].Path
		}
		return errs[i].Message < errs[j].Message
	})
	return BodyResult{OK: false, Errors: errs}, nil
}

func toMap(body any) (map[string]any, error) {
	if m, ok := body.(map[string]any); ok {
		return m, nil
	}
	data, err := sonic.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	var m map[string]any
	if err := sonic.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal body: %w", err)
	}
	return m, nil
}

// formatErrorPath turns a jsonschema field path ("a.b.0") into the
// "/"-joined pointer form ("/a/b/0") our callers expect.
func formatErrorPath(field string) string {
	if field == "" {
		return ""
	}
	parts := strings.Split(field, ".")
	return "/" + strings.Join(parts, "/")
}

func sanitizeForValidation(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if key == "discriminator" {
				continue
			}
			out[key] = sanitizeForValidation(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizeForValidation(item)
		}
		return out
	default:
		return v
	}
}

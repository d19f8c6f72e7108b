// Package refresolve resolves JSON Pointer $ref references within an
// OpenAPI document, with cycle tolerance on the active resolution chain.
package refresolve

import (
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// ResolvePointer returns the subtree at JSON Pointer ref (e.g. "#/a/b/c")
// under root. Token decoding ("~1" -> "/", "~0" -> "~") uses
// jsonpointer.Unescape rather than a hand-rolled ReplaceAll pair. It
// reports false for non-local refs (not starting with "#/") and for
// missing paths.
func ResolvePointer(root map[string]any, ref string) (any, bool) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}
	pointer := ref[2:]
	if pointer == "" {
		return root, true
	}

	var current any = root
	for _, part := range strings.Split(pointer, "/") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[jsonpointer.Unescape(part)]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// DeepResolve recursively substitutes every $ref in value with its
// resolved target under root. A ref already on the active resolution
// chain resolves to an empty mapping, preventing infinite expansion while
// leaving unrelated refs intact. Non-resolvable refs are returned verbatim.
func DeepResolve(value any, root map[string]any) any {
	return deepResolve(value, root, map[string]bool{})
}

func deepResolve(value any, root map[string]any, seen map[string]bool) any {
	switch v := value.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			if seen[ref] {
				return map[string]any{}
			}
			target, ok := ResolvePointer(root, ref)
			if !ok {
				return v
			}
			seen[ref] = true
			resolved := deepResolve(target, root, seen)
			delete(seen, ref)
			return resolved
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = deepResolve(val, root, seen)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepResolve(item, root, seen)
		}
		return out
	default:
		return v
	}
}

// Package snippets renders deterministic curl/Python/TypeScript call
// examples from a synthesized or hand-built request object.
package snippets

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/antflydb/catalog/internal/jsonutil"
)

// Request is the subset of payload.Request snippets render from. Callers
// normally pass the whole payload.Result, whose "request" field is used;
// a bare request map carrying method and path is accepted as well.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Parameters  map[string]any
	Body        any
}

// Generate renders one snippet per requested language ("curl", "python",
// "ts"); unrecognized language names are skipped.
func Generate(req Request, languages []string) map[string]string {
	method := strings.ToUpper(req.Method)
	path := renderPath(req.Path, stringMap(req.Parameters["path"]))
	query := renderQuery(stringMap(req.Parameters["query"]))
	urlStr := "{{base_url}}" + path + query

	headers := map[string]any{}
	for k, v := range stringMap(req.Parameters["header"]) {
		headers[k] = v
	}
	if req.ContentType != "" && req.Body != nil {
		if _, ok := headerValue(headers, "Content-Type"); !ok {
			headers["Content-Type"] = req.ContentType
		}
	}

	var payload string
	hasPayload := req.Body != nil
	if hasPayload {
		payload = renderJSON(req.Body)
	}

	out := map[string]string{}
	for _, lang := range languages {
		switch lang {
		case "curl":
			out["curl"] = curlSnippet(method, urlStr, headers, hasPayload, payload)
		case "python":
			out["python"] = pythonSnippet(method, urlStr, headers, hasPayload, req.Body)
		case "ts":
			out["ts"] = tsSnippet(method, urlStr, headers, hasPayload, payload)
		}
	}
	return out
}

func headerValue(headers map[string]any, key string) (any, bool) {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func stringMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func renderPath(path string, pathParams map[string]any) string {
	rendered := path
	for name, value := range pathParams {
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", fmt.Sprint(value))
	}
	return rendered
}

func renderQuery(queryParams map[string]any) string {
	if len(queryParams) == 0 {
		return ""
	}
	values := url.Values{}
	names := make([]string, 0, len(queryParams))
	for name := range queryParams {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		values.Set(name, fmt.Sprint(queryParams[name]))
	}
	return "?" + values.Encode()
}

func renderJSON(v any) string {
	data, err := jsonutil.Marshal(jsonutil.Canonical(v))
	if err != nil {
		return ""
	}
	return reindentTwoSpace(string(data))
}

// reindentTwoSpace is a minimal JSON pretty-printer: jsonutil.Marshal
// produces compact output, and snippet bodies want 2-space indented,
// sorted JSON. We already sort via jsonutil.Canonical; this just adds
// whitespace without re-parsing.
func reindentTwoSpace(compact string) string {
	var b strings.Builder
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(compact); i++ {
		c := compact[i]
		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
			b.WriteByte(c)
		case '{', '[':
			b.WriteByte(c)
			if i+1 < len(compact) && (compact[i+1] == '}' || compact[i+1] == ']') {
				// empty container, keep inline
				continue
			}
			depth++
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("  ", depth))
		case '}', ']':
			if i > 0 && (compact[i-1] == '{' || compact[i-1] == '[') {
				b.WriteByte(c)
				continue
			}
			depth--
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteByte(c)
		case ',':
			b.WriteByte(c)
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("  ", depth))
		case ':':
			b.WriteByte(c)
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func curlSnippet(method, url string, headers map[string]any, hasPayload bool, payload string) string {
	parts := []string{"curl", "-X", method, fmt.Sprintf("%q", url)}
	for _, name := range sortedKeys(headers) {
		parts = append(parts, "-H", fmt.Sprintf("%q", fmt.Sprintf("%s: %v", name, headers[name])))
	}
	if hasPayload {
		parts = append(parts, "-d", "'"+payload+"'")
	}
	return strings.Join(parts, " ")
}

func pythonSnippet(method, url string, headers map[string]any, hasPayload bool, body any) string {
	lines := []string{"import requests", "", fmt.Sprintf("url = %q", url)}
	if len(headers) > 0 {
		lines = append(lines, fmt.Sprintf("headers = %s", renderJSON(headers)))
	} else {
		lines = append(lines, "headers = {}")
	}
	if hasPayload {
		lines = append(lines, fmt.Sprintf("payload = %s", renderJSON(body)))
		lines = append(lines, fmt.Sprintf("response = requests.request(%q, url, headers=headers, json=payload)", method))
	} else {
		lines = append(lines, fmt.Sprintf("response = requests.request(%q, url, headers=headers)", method))
	}
	lines = append(lines, "print(response.status_code)", "print(response.text)")
	return strings.Join(lines, "\n")
}

func tsSnippet(method, url string, headers map[string]any, hasPayload bool, payload string) string {
	lines := []string{
		fmt.Sprintf("const url = %q;", url),
		fmt.Sprintf("const headers = %s;", renderJSON(headers)),
		"",
	}
	if hasPayload {
		lines = append(lines, fmt.Sprintf("const body = %s;", payload))
	}
	bodyLine := ""
	if hasPayload {
		bodyLine = "  body: JSON.stringify(body)\n"
	}
	lines = append(lines, fmt.Sprintf("fetch(url, {\n  method: %q,\n  headers,\n%s});", method, bodyLine))
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package execution sends a synthesized request against a spec's live
// base URL. Opt-in: callers gate this behind OPENAPI_EXECUTION=1.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antflydb/catalog/internal/jsonutil"
)

// Result is the outcome of an execution attempt.
type Result struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Status int    `json:"status,omitempty"`
	Time   string `json:"time,omitempty"`
	Body   any    `json:"body,omitempty"`
}

// Request is the subset of a synthesized request execution needs.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Parameters  map[string]any
	Body        any
}

// Executor sends requests over HTTP, resolving auth headers from an
// explicit token or the API_KEY/API_TOKEN fallback passed to Execute.
type Executor struct {
	httpClient *http.Client
}

// NewExecutor builds an Executor around httpClient, defaulting to a
// 30-second-timeout client when nil.
func NewExecutor(httpClient *http.Client) *Executor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Executor{httpClient: httpClient}
}

// ResolveBaseURL picks OPENAPI_BASE_URL if set, else the first entry of
// spec.servers[] with its templated {variables} substituted by their
// declared defaults.
func ResolveBaseURL(override string, spec map[string]any) (string, bool) {
	if override != "" {
		return strings.TrimRight(override, "/"), true
	}
	servers, ok := spec["servers"].([]any)
	if !ok || len(servers) == 0 {
		return "", false
	}
	first, ok := servers[0].(map[string]any)
	if !ok {
		return "", false
	}
	rawURL, ok := first["url"].(string)
	if !ok {
		return "", false
	}
	if variables, ok := first["variables"].(map[string]any); ok {
		for name, v := range variables {
			varDef, ok := v.(map[string]any)
			if !ok {
				continue
			}
			if def, ok := varDef["default"]; ok && def != nil {
				rawURL = strings.ReplaceAll(rawURL, "{"+name+"}", fmt.Sprint(def))
			}
		}
	}
	return strings.TrimRight(rawURL, "/"), true
}

// BuildURL substitutes {name} path parameters and prefixes the path with
// baseURL.
func BuildURL(baseURL string, req Request) string {
	path := req.Path
	if pathParams, ok := req.Parameters["path"].(map[string]any); ok {
		for name, value := range pathParams {
			path = strings.ReplaceAll(path, "{"+name+"}", fmt.Sprint(value))
		}
	}
	return baseURL + path
}

// ApplyAuth sets the Authorization header from token (or the apiKey /
// apiToken fallback when token is empty). A token already containing a
// space is applied verbatim (it is assumed to carry its own scheme);
// otherwise it is prefixed "Bearer ".
func ApplyAuth(headers http.Header, token, apiKey, apiToken string) {
	if token == "" {
		token = apiKey
	}
	if token == "" {
		token = apiToken
	}
	if token == "" {
		return
	}
	if strings.Contains(token, " ") {
		headers.Set("Authorization", token)
		return
	}
	headers.Set("Authorization", "Bearer "+token)
}

func sendAsForm(contentType string) bool {
	return strings.Contains(contentType, "application/x-www-form-urlencoded")
}

// Execute sends req against baseURL and reports ok=false with a message
// instead of a transport error, matching the tool surface's
// never-throws contract.
func (e *Executor) Execute(ctx context.Context, baseURL string, req Request, authToken, apiKey, apiToken string) Result {
	fullURL := BuildURL(baseURL, req)
	if queryParams, ok := req.Parameters["query"].(map[string]any); ok && len(queryParams) > 0 {
		values := url.Values{}
		for k, v := range queryParams {
			values.Set(k, fmt.Sprint(v))
		}
		fullURL += "?" + values.Encode()
	}

	var bodyReader *bytes.Reader
	isForm := sendAsForm(req.ContentType)
	switch {
	case req.Body != nil && isForm:
		form, ok := req.Body.(map[string]any)
		values := url.Values{}
		if ok {
			for k, v := range form {
				values.Set(k, fmt.Sprint(v))
			}
		}
		bodyReader = bytes.NewReader([]byte(values.Encode()))
	case req.Body != nil:
		data, err := jsonutil.Marshal(jsonutil.Canonical(req.Body))
		if err != nil {
			return Result{OK: false, Error: fmt.Sprintf("encoding request body: %v", err)}
		}
		bodyReader = bytes.NewReader(data)
	default:
		bodyReader = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(req.Method), fullURL, bodyReader)
	if err != nil {
		return Result{OK: false, Error: fmt.Sprintf("creating request: %v", err)}
	}

	if headerParams, ok := req.Parameters["header"].(map[string]any); ok {
		for k, v := range headerParams {
			httpReq.Header.Set(k, fmt.Sprint(v))
		}
	}
	ApplyAuth(httpReq.Header, authToken, apiKey, apiToken)
	if req.ContentType != "" && req.Body != nil {
		if httpReq.Header.Get("Content-Type") == "" {
			httpReq.Header.Set("Content-Type", req.ContentType)
		}
	}

	start := time.Now()
	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, err := parseResponseBody(resp)
	if err != nil {
		return Result{OK: false, Error: fmt.Sprintf("reading response: %v", err)}
	}

	return Result{
		OK:     true,
		Status: resp.StatusCode,
		Time:   fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
		Body:   body,
	}
}

// parseResponseBody decodes the response as JSON, falling back to raw
// text when it isn't valid JSON.
func parseResponseBody(resp *http.Response) (any, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	var parsed any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		return buf.String(), nil
	}
	return parsed, nil
}

package execution

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseURL_OverrideWins(t *testing.T) {
	got, ok := ResolveBaseURL("https://override.example/", map[string]any{
		"servers": []any{map[string]any{"url": "https://spec.example"}},
	})
	require.True(t, ok)
	assert.Equal(t, "https://override.example", got)
}

func TestResolveBaseURL_TemplatesServerVariableDefaults(t *testing.T) {
	got, ok := ResolveBaseURL("", map[string]any{
		"servers": []any{map[string]any{
			"url": "https://{env}.example.com/{version}",
			"variables": map[string]any{
				"env":     map[string]any{"default": "api"},
				"version": map[string]any{"default": "v1"},
			},
		}},
	})
	require.True(t, ok)
	assert.Equal(t, "https://api.example.com/v1", got)
}

func TestResolveBaseURL_NoServersReportsFalse(t *testing.T) {
	_, ok := ResolveBaseURL("", map[string]any{})
	assert.False(t, ok)
}

func TestBuildURL_SubstitutesPathParameters(t *testing.T) {
	req := Request{
		Path: "/pets/{petId}/toys/{toyId}",
		Parameters: map[string]any{
			"path": map[string]any{"petId": 7, "toyId": "ball"},
		},
	}
	got := BuildURL("https://api.example.com", req)
	assert.Equal(t, "https://api.example.com/pets/7/toys/ball", got)
}

func TestApplyAuth_PrefersExplicitTokenOverFallbacks(t *testing.T) {
	headers := http.Header{}
	ApplyAuth(headers, "tok123", "key", "apitok")
	assert.Equal(t, "Bearer tok123", headers.Get("Authorization"))
}

func TestApplyAuth_FallsBackToAPIKeyThenAPIToken(t *testing.T) {
	headers := http.Header{}
	ApplyAuth(headers, "", "", "fallback-token")
	assert.Equal(t, "Bearer fallback-token", headers.Get("Authorization"))
}

func TestApplyAuth_TokenWithSpaceAppliedVerbatim(t *testing.T) {
	headers := http.Header{}
	ApplyAuth(headers, "Basic dXNlcjpwYXNz", "", "")
	assert.Equal(t, "Basic dXNlcjpwYXNz", headers.Get("Authorization"))
}

func TestApplyAuth_NoTokensLeavesHeaderUnset(t *testing.T) {
	headers := http.Header{}
	ApplyAuth(headers, "", "", "")
	assert.Empty(t, headers.Get("Authorization"))
}

func TestExecute_SendsJSONBodyAndReturnsParsedResponse(t *testing.T) {
	var gotPath string
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"42"}`))
	}))
	defer srv.Close()

	exec := NewExecutor(nil)
	req := Request{
		Method:      "post",
		Path:        "/pets",
		ContentType: "application/json",
		Body:        map[string]any{"name": "Rex"},
	}
	result := exec.Execute(context.Background(), srv.URL, req, "tok", "", "")

	assert.True(t, result.OK)
	assert.Equal(t, http.StatusCreated, result.Status)
	assert.Equal(t, "/pets", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "Rex", gotBody["name"])
	body, ok := result.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "42", body["id"])
}

func TestExecute_FormContentTypeURLEncodesBody(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotForm = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	exec := NewExecutor(nil)
	req := Request{
		Method:      "post",
		Path:        "/login",
		ContentType: "application/x-www-form-urlencoded",
		Body:        map[string]any{"user": "alice"},
	}
	result := exec.Execute(context.Background(), srv.URL, req, "", "", "")

	assert.True(t, result.OK)
	assert.Equal(t, "alice", gotForm.Get("user"))
}

func TestExecute_NonJSONResponseFallsBackToRawText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("plain text"))
	}))
	defer srv.Close()

	exec := NewExecutor(nil)
	result := exec.Execute(context.Background(), srv.URL, Request{Method: "get", Path: "/status"}, "", "", "")

	assert.True(t, result.OK)
	assert.Equal(t, "plain text", result.Body)
}

func TestExecute_QueryParametersAreEncoded(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	exec := NewExecutor(nil)
	req := Request{
		Method: "get",
		Path:   "/pets",
		Parameters: map[string]any{
			"query": map[string]any{"limit": 10},
		},
	}
	result := exec.Execute(context.Background(), srv.URL, req, "", "", "")

	assert.True(t, result.OK)
	assert.Equal(t, "limit=10", gotQuery)
}

// Package model holds the data types shared across the catalog core:
// specs, operations, schemas, and the embeddings that back semantic search.
package model

import "sort"

// HTTPMethods lists the operation verbs the extractor recognizes, in the
// order path items are scanned.
var HTTPMethods = []string{"get", "post", "put", "patch", "delete", "options", "head", "trace"}

// SpecFingerprint is a cheap, comparable snapshot of one spec file on disk.
type SpecFingerprint struct {
	RelativePath string `json:"relativePath"`
	Size         int64  `json:"size"`
	ModTime      int64  `json:"mtime"` // unix nanoseconds
}

// FingerprintsEqual reports whether two fingerprint lists describe the same
// corpus: same length, elementwise equal once both are sorted by path.
func FingerprintsEqual(a, b []SpecFingerprint) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]SpecFingerprint(nil), a...)
	sb := append([]SpecFingerprint(nil), b...)
	sort.Slice(sa, func(i, j int) bool { return sa[i].RelativePath < sa[j].RelativePath })
	sort.Slice(sb, func(i, j int) bool { return sb[i].RelativePath < sb[j].RelativePath })
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// SpecFile is one parsed, spec-ID-assigned document discovered on disk.
type SpecFile struct {
	Path         string         // absolute path
	RelativePath string         // relative to the spec root
	Raw          map[string]any // parsed document
	SpecID       string
}

// SpecMeta is the catalog-facing summary of one ingested spec.
type SpecMeta struct {
	SpecID           string `json:"specId"`
	Title            string `json:"title,omitempty"`
	Version          string `json:"version,omitempty"`
	Description      string `json:"description,omitempty"`
	FilePath         string `json:"filePath"`
	OperationCount   int    `json:"operationCount"`
	SchemaCount      int    `json:"schemaCount"`
	IsValid          bool   `json:"isValid"`
	ValidationError  string `json:"validationError,omitempty"`
}

// Operation is one HTTP method at one path within a spec.
type Operation struct {
	SpecID      string
	OperationID string // empty when the spec doesn't declare one
	Method      string // lowercase
	Path        string
	Summary     string
	Description string
	Tags        []string // sorted ascending
	Raw         map[string]any
}

// EndpointID returns the stable external handle for this operation.
func (o Operation) EndpointID() string {
	if o.OperationID != "" {
		return o.SpecID + ":" + o.OperationID
	}
	return o.SpecID + ":" + o.Method + ":" + o.Path
}

// Schema is one named schema under a spec's components.schemas.
type Schema struct {
	SpecID      string
	Name        string
	Description string
	Raw         map[string]any
}

// SchemaKey returns the stable external handle for this schema.
func (s Schema) SchemaKey() string {
	return s.SpecID + ":" + s.Name
}

// OperationMatch is the canonical search-result shape for an operation.
type OperationMatch struct {
	EndpointID   string   `json:"endpointId"`
	SpecID       string   `json:"specId"`
	OperationID  string   `json:"operationId,omitempty"`
	Method       string   `json:"method"`
	Path         string   `json:"path"`
	Summary      string   `json:"summary,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	MatchSnippet string   `json:"matchSnippet,omitempty"`
}

// SchemaMatch is the canonical search-result shape for a schema.
type SchemaMatch struct {
	SpecID      string `json:"specId"`
	SchemaName  string `json:"schemaName"`
	Description string `json:"description,omitempty"`
}

// Embedding is one operation's persisted, little-endian float32 vector.
type Embedding struct {
	EndpointID string
	Dim        int
	Vector     []float32
}

// IsHTTPMethod reports whether m (already lowercase) is a recognized verb.
func IsHTTPMethod(m string) bool {
	for _, candidate := range HTTPMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

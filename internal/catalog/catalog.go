// Package catalog implements the Catalog Engine: the long-lived
// orchestrator owning the Index Store, the in-memory parsed-spec cache,
// and every public catalog operation.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/antflydb/catalog/internal/execution"
	"github.com/antflydb/catalog/internal/extract"
	"github.com/antflydb/catalog/internal/fusion"
	"github.com/antflydb/catalog/internal/healthserver"
	"github.com/antflydb/catalog/internal/index"
	"github.com/antflydb/catalog/internal/model"
	"github.com/antflydb/catalog/internal/payload"
	"github.com/antflydb/catalog/internal/refresolve"
	"github.com/antflydb/catalog/internal/render"
	"github.com/antflydb/catalog/internal/semantic"
	"github.com/antflydb/catalog/internal/snippets"
	"github.com/antflydb/catalog/internal/specs"
	"github.com/antflydb/catalog/internal/validate"
)

// Config configures a new Engine.
type Config struct {
	SpecDir   string
	IndexPath string // ":memory:" for a purely in-memory index
	DerefMode string // "lazy" (default) or "full"

	Embedder semantic.Embedder // nil disables semantic search regardless of SemanticEnabled
	SemanticEnabled bool

	ExecutionEnabled bool
	BaseURLOverride  string
	APIKey           string
	APIToken         string

	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Engine is the orchestrator behind every catalog operation. All public
// methods are safe for concurrent use; a single mutex serializes refresh
// against readers (Go's Mutex isn't reentrant, so unexported helpers
// below assume the caller already holds the lock rather than
// re-acquiring it).
type Engine struct {
	mu sync.Mutex

	specDir   string
	indexPath string
	derefMode string

	index *index.Store

	specs        map[string]map[string]any
	specPaths    map[string]string
	specMeta     []model.SpecMeta
	specVersions map[string]string

	cacheMetaPath string

	semantic        *semantic.Index
	semanticEnabled bool

	executor         *execution.Executor
	executionEnabled bool
	baseURLOverride  string
	apiKey           string
	apiToken         string

	logger *zap.Logger
}

// New constructs an Engine around cfg. Callers must call Refresh before
// using it.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	idx, err := index.Open(cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}

	derefMode := cfg.DerefMode
	if derefMode == "" {
		derefMode = "lazy"
	}

	absSpecDir, err := filepath.Abs(cfg.SpecDir)
	if err != nil {
		return nil, fmt.Errorf("resolve spec dir %q: %w", cfg.SpecDir, err)
	}

	sem := semantic.New(nil)
	if cfg.SemanticEnabled && cfg.Embedder != nil {
		sem = semantic.New(cfg.Embedder)
	}

	e := &Engine{
		specDir:          absSpecDir,
		indexPath:        cfg.IndexPath,
		derefMode:        derefMode,
		index:            idx,
		specs:            map[string]map[string]any{},
		specPaths:        map[string]string{},
		specVersions:     map[string]string{},
		cacheMetaPath:    resolveCacheMetaPath(cfg.IndexPath),
		semantic:         sem,
		semanticEnabled:  cfg.SemanticEnabled && sem.Available(),
		executor:         execution.NewExecutor(cfg.HTTPClient),
		executionEnabled: cfg.ExecutionEnabled,
		baseURLOverride:  cfg.BaseURLOverride,
		apiKey:           cfg.APIKey,
		apiToken:         cfg.APIToken,
		logger:           logger,
	}
	return e, nil
}

func resolveCacheMetaPath(indexPath string) string {
	if indexPath == ":memory:" || indexPath == "" {
		return ""
	}
	dir := filepath.Dir(indexPath)
	if dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	return indexPath + ".meta.json"
}

// SemanticEnabled reports whether semantic search is actually active
// (configured AND the embedder was available at construction time).
func (e *Engine) SemanticEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.semanticEnabled
}

// IsReady reports whether at least one refresh has populated the catalog,
// used by the health server's readiness probe.
func (e *Engine) IsReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.specMeta) > 0
}

// Refresh rebuilds the catalog from spec_dir. When useCache is true and a
// valid, fingerprint-matching cache sidecar exists, the expensive
// reparse/reindex is skipped and the Index Store's on-disk content is
// reused as-is.
func (e *Engine) Refresh(ctx context.Context, useCache bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	if useCache && e.loadCache() {
		healthserver.CacheLoad.WithLabelValues("hit").Inc()
		if e.semanticEnabled {
			embeddings, err := e.index.LoadOperationEmbeddings()
			if err != nil {
				e.logger.Warn("load persisted embeddings failed", zap.Error(err))
			} else {
				e.semantic.Load(embeddings)
			}
		}
		healthserver.RefreshTotal.WithLabelValues("skipped_unchanged").Inc()
		healthserver.RefreshDuration.Observe(time.Since(start).Seconds())
		return nil
	}

	if err := e.rebuild(ctx); err != nil {
		healthserver.RefreshTotal.WithLabelValues("error").Inc()
		return err
	}
	healthserver.RefreshTotal.WithLabelValues("full").Inc()
	healthserver.RefreshDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (e *Engine) rebuild(ctx context.Context) error {
	results, err := specs.Build(e.specDir)
	if err != nil {
		return fmt.Errorf("build spec files: %w", err)
	}

	if err := e.index.Reset(); err != nil {
		return err
	}
	e.specs = map[string]map[string]any{}
	e.specPaths = map[string]string{}
	e.specMeta = nil
	e.specVersions = map[string]string{}

	var operations []model.Operation
	var schemas []model.Schema

	for _, r := range results {
		if r.Err != nil {
			// A file that failed to parse entirely still needs a slot in
			// spec_meta so get_catalog reports it; spec_id falls back to the
			// file's base name since none was assigned.
			base := strings.TrimSuffix(filepath.Base(r.File.RelativePath), filepath.Ext(r.File.RelativePath))
			e.specMeta = append(e.specMeta, model.SpecMeta{
				SpecID:          base,
				FilePath:        r.File.RelativePath,
				IsValid:         false,
				ValidationError: r.Err.Error(),
			})
			continue
		}

		file := r.File
		e.specs[file.SpecID] = file.Raw
		e.specPaths[file.SpecID] = file.Path

		version, _ := file.Raw["openapi"].(string)
		e.specVersions[file.SpecID] = version

		info, _ := file.Raw["info"].(map[string]any)
		title, _ := info["title"].(string)
		infoVersion, _ := info["version"].(string)
		description, _ := info["description"].(string)

		isValid, validationErr := validate.ValidateDocument(file.Raw)

		var specOperations []model.Operation
		var specSchemas []model.Schema
		if isValid {
			specOperations = extract.Operations(file.SpecID, file.Raw)
			specSchemas = extract.Schemas(file.SpecID, file.Raw)
		}
		operations = append(operations, specOperations...)
		schemas = append(schemas, specSchemas...)

		e.specMeta = append(e.specMeta, model.SpecMeta{
			SpecID:          file.SpecID,
			Title:           title,
			Version:         infoVersion,
			Description:     description,
			FilePath:        file.RelativePath,
			OperationCount:  len(specOperations),
			SchemaCount:     len(specSchemas),
			IsValid:         isValid,
			ValidationError: validationErr,
		})
	}

	sort.Slice(e.specMeta, func(i, j int) bool { return e.specMeta[i].SpecID < e.specMeta[j].SpecID })

	if err := e.index.AddOperations(operations); err != nil {
		return fmt.Errorf("index operations: %w", err)
	}
	if err := e.index.AddSchemas(schemas); err != nil {
		return fmt.Errorf("index schemas: %w", err)
	}

	if e.semanticEnabled {
		rows := make([]semantic.Row, len(operations))
		for i, op := range operations {
			rows[i] = semantic.Row{EndpointID: op.EndpointID(), Text: operationText(op)}
		}
		embeddings, err := e.semantic.Build(ctx, rows)
		if err != nil {
			e.logger.Warn("build embeddings failed, continuing lexical-only", zap.Error(err))
		} else if len(embeddings) > 0 {
			if err := e.index.AddOperationEmbeddings(embeddings); err != nil {
				e.logger.Warn("persist embeddings failed", zap.Error(err))
			}
		}
	}

	e.writeCacheMeta()
	return nil
}

func operationText(op model.Operation) string {
	parts := []string{op.OperationID, op.Summary, op.Description, op.Method, op.Path, strings.Join(op.Tags, " ")}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// GetCatalog returns the spec inventory.
func (e *Engine) GetCatalog() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return render.Catalog(e.specMeta)
}

// CatalogSearch is api_search's backing operation: ranked operation
// matches plus an echo of the query and audience.
func (e *Engine) CatalogSearch(ctx context.Context, query, audience string) map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	matches := e.searchOperations(ctx, query, "", 25)
	if audience == "" {
		audience = "external"
	}
	return map[string]any{"query": query, "audience": audience, "matches": matches}
}

// SearchOperations returns ranked operation matches, optionally filtered
// to one spec.
func (e *Engine) SearchOperations(ctx context.Context, query, specID string) []model.OperationMatch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchOperations(ctx, query, specID, 25)
}

// SearchSchemas returns BM25-ranked schema matches.
func (e *Engine) SearchSchemas(query, specID string) ([]model.SchemaMatch, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.SearchSchemas(query, specID, 25)
}

func (e *Engine) searchOperations(ctx context.Context, query, specID string, limit int) []model.OperationMatch {
	if limit <= 0 {
		limit = 25
	}
	start := time.Now()
	mode := "lexical"
	defer func() { healthserver.SearchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds()) }()

	ftsMatches, err := e.index.SearchOperations(query, specID, limit)
	if err != nil {
		e.logger.Warn("lexical search failed", zap.Error(err))
		return nil
	}
	if !e.semanticEnabled {
		return ftsMatches
	}

	semanticIDs, err := e.semantic.Search(ctx, query, maxInt(limit*2, 50))
	if err != nil || len(semanticIDs) == 0 {
		return ftsMatches
	}
	mode = "hybrid"

	ftsIDs := make([]string, len(ftsMatches))
	ftsByID := make(map[string]model.OperationMatch, len(ftsMatches))
	for i, m := range ftsMatches {
		ftsIDs[i] = m.EndpointID
		ftsByID[m.EndpointID] = m
	}

	merged := fusion.Merge(ftsIDs, semanticIDs, limit)

	results := make([]model.OperationMatch, 0, len(merged))
	for _, id := range merged {
		match, ok := ftsByID[id]
		if !ok {
			m, found, err := e.index.GetOperationMatchByID(id)
			if err != nil || !found {
				continue
			}
			match = m
		}
		if specID != "" && match.SpecID != specID {
			continue
		}
		results = append(results, match)
		if len(results) >= limit {
			break
		}
	}
	return results
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// GetOperationByOperationID renders a single operation by (spec_id, operation_id).
func (e *Engine) GetOperationByOperationID(specID, operationID string) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	record, ok, err := e.index.GetOperationByOperationID(specID, operationID)
	if err != nil || !ok {
		return map[string]any{}, err
	}
	return render.Operation(record.Operation), nil
}

// GetOperationByPathMethod renders a single operation by (spec_id, path, method).
func (e *Engine) GetOperationByPathMethod(specID, path, method string) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	record, ok, err := e.index.GetOperationByPathMethod(specID, path, method)
	if err != nil || !ok {
		return map[string]any{}, err
	}
	return render.Operation(record.Operation), nil
}

// GetSchema renders a single schema by (spec_id, schema_name).
func (e *Engine) GetSchema(specID, name string) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	record, ok, err := e.index.GetSchema(specID, name)
	if err != nil || !ok {
		return map[string]any{}, err
	}
	return render.Schema(record.Schema), nil
}

// EndpointGet is api_get_operation's backing operation.
func (e *Engine) EndpointGet(endpointID string, full bool) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	record, ok, err := e.index.GetOperationByEndpointID(endpointID)
	if err != nil || !ok {
		return map[string]any{}, err
	}
	var spec map[string]any
	if full {
		spec = e.getSpec(record.SpecID)
	}
	return render.Contract(record.Operation, spec, full), nil
}

// PayloadGenerate is api_generate_request's backing operation.
func (e *Engine) PayloadGenerate(endpointID string, providedFields map[string]any) (payload.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	record, ok, err := e.index.GetOperationByEndpointID(endpointID)
	if err != nil || !ok {
		return payload.Result{}, err
	}
	spec := e.getSpec(record.SpecID)
	if providedFields == nil {
		providedFields = map[string]any{}
	}
	return payload.Build(endpointID, record.Method, record.Path, record.Raw, providedFields, spec), nil
}

// PayloadValidate is api_validate_request's backing operation.
func (e *Engine) PayloadValidate(endpointID string, request map[string]any) (validate.BodyResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok, err := e.index.GetOperationByEndpointID(endpointID)
	if err != nil {
		return validate.BodyResult{}, err
	}
	if !ok {
		return validate.BodyResult{OK: false, Errors: []validate.FieldError{{Path: "", Message: "Unknown endpointId"}}}, nil
	}

	spec := e.getSpec(record.SpecID)
	rb := extractRequestBodySchema(record.Raw, spec)
	if rb == nil {
		return validate.BodyResult{OK: true, Errors: []validate.FieldError{}}, nil
	}

	body, hasBody := extractBody(request)
	if !hasBody {
		if rb.required {
			return validate.BodyResult{OK: false, Errors: []validate.FieldError{{Path: "body", Message: "Request body is required"}}}, nil
		}
		return validate.BodyResult{OK: true, Errors: []validate.FieldError{}}, nil
	}

	dialect := validate.DialectFor(e.specVersions[record.SpecID])
	return validate.ValidateBody(rb.schema, body, dialect)
}

type requestBodySchema struct {
	required bool
	schema   map[string]any
}

func extractRequestBodySchema(operation, spec map[string]any) *requestBodySchema {
	rb, ok := operation["requestBody"].(map[string]any)
	if !ok {
		return nil
	}
	content, ok := rb["content"].(map[string]any)
	if !ok || len(content) == 0 {
		return nil
	}
	contentType := "application/json"
	media, ok := content[contentType].(map[string]any)
	if !ok {
		keys := make([]string, 0, len(content))
		for k := range content {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		media, _ = content[keys[0]].(map[string]any)
	}
	if media == nil {
		return nil
	}
	schema, _ := media["schema"].(map[string]any)
	if schema == nil {
		return nil
	}
	resolved := refresolve.DeepResolve(schema, spec)
	schemaMap, _ := resolved.(map[string]any)
	required, _ := rb["required"].(bool)
	return &requestBodySchema{required: required, schema: schemaMap}
}

// extractBody mirrors validate_payload's _extract_body: a "request"
// wrapper takes precedence, then a "body" key, else the whole mapping is
// treated as the body. Reports hasBody=false only when there is no body
// at all (not even an explicit "body": null).
func extractBody(request map[string]any) (any, bool) {
	if wrapped, ok := request["request"].(map[string]any); ok {
		body, has := wrapped["body"]
		return body, has
	}
	if body, has := request["body"]; has {
		return body, true
	}
	return request, true
}

// SnippetGenerate is api_generate_snippets's backing operation.
func (e *Engine) SnippetGenerate(request map[string]any, languages []string) map[string]any {
	if languages == nil {
		languages = []string{"curl", "python", "ts"}
	}
	req, ok := normalizeRequest(request)
	if !ok {
		return map[string]any{"snippets": map[string]string{}}
	}
	return map[string]any{"snippets": snippets.Generate(req, languages)}
}

func normalizeRequest(request map[string]any) (snippets.Request, bool) {
	if wrapped, ok := request["request"].(map[string]any); ok {
		request = wrapped
	} else if _, hasMethod := request["method"]; !hasMethod {
		return snippets.Request{}, false
	} else if _, hasPath := request["path"]; !hasPath {
		return snippets.Request{}, false
	}

	method, _ := request["method"].(string)
	path, _ := request["path"].(string)
	if method == "" || path == "" {
		return snippets.Request{}, false
	}
	contentType, _ := request["contentType"].(string)
	parameters, _ := request["parameters"].(map[string]any)
	return snippets.Request{
		Method:      method,
		Path:        path,
		ContentType: contentType,
		Parameters:  parameters,
		Body:        request["body"],
	}, true
}

// ExecuteRequest is api_execute_request's backing operation.
func (e *Engine) ExecuteRequest(ctx context.Context, endpointID string, request map[string]any, authToken string) execution.Result {
	if !e.executionEnabled {
		return execution.Result{OK: false, Error: "Execution disabled. Set OPENAPI_EXECUTION=1 to enable."}
	}

	e.mu.Lock()
	record, ok, err := e.index.GetOperationByEndpointID(endpointID)
	var spec map[string]any
	if ok {
		spec = e.getSpec(record.SpecID)
	}
	e.mu.Unlock()

	if err != nil {
		return execution.Result{OK: false, Error: err.Error()}
	}
	if !ok {
		return execution.Result{OK: false, Error: "Unknown endpointId"}
	}

	baseURL, found := execution.ResolveBaseURL(e.baseURLOverride, spec)
	if !found {
		return execution.Result{OK: false, Error: "No base URL found in spec servers[] or OPENAPI_BASE_URL"}
	}

	req, ok := normalizeExecutionRequest(request)
	if !ok {
		return execution.Result{OK: false, Error: "Invalid request payload"}
	}

	return e.executor.Execute(ctx, baseURL, req, authToken, e.apiKey, e.apiToken)
}

func normalizeExecutionRequest(request map[string]any) (execution.Request, bool) {
	body := request
	if wrapped, ok := request["request"].(map[string]any); ok {
		body = wrapped
	} else if _, hasMethod := request["method"]; !hasMethod {
		return execution.Request{}, false
	} else if _, hasPath := request["path"]; !hasPath {
		return execution.Request{}, false
	}

	method, _ := body["method"].(string)
	path, _ := body["path"].(string)
	if method == "" || path == "" {
		return execution.Request{}, false
	}
	contentType, _ := body["contentType"].(string)
	parameters, _ := body["parameters"].(map[string]any)
	return execution.Request{
		Method:      method,
		Path:        path,
		ContentType: contentType,
		Parameters:  parameters,
		Body:        body["body"],
	}, true
}

// getSpec returns the parsed spec for specID, lazily reparsing from disk
// if it isn't already in memory (the cache-hit path doesn't repopulate
// every spec eagerly). Caller must hold e.mu.
func (e *Engine) getSpec(specID string) map[string]any {
	if cached, ok := e.specs[specID]; ok {
		return cached
	}
	path, ok := e.specPaths[specID]
	if !ok {
		return nil
	}
	raw, err := specs.LoadRaw(path)
	if err != nil {
		e.logger.Warn("reload spec failed", zap.String("specId", specID), zap.Error(err))
		return nil
	}
	e.specs[specID] = raw
	if version, ok := raw["openapi"].(string); ok {
		e.specVersions[specID] = version
	}
	return raw
}

// cacheMeta is the JSON sidecar schema persisted alongside a non-memory
// index, keyed on fingerprints so a restart can skip re-parsing and
// re-indexing when nothing changed on disk.
type cacheMeta struct {
	Version      int                      `json:"version"`
	SpecDir      string                   `json:"specDir"`
	Fingerprints []model.SpecFingerprint  `json:"fingerprints"`
	SpecMeta     []model.SpecMeta         `json:"specMeta"`
	SpecVersions map[string]string        `json:"specVersions"`
}

func (e *Engine) loadCache() bool {
	if e.cacheMetaPath == "" {
		return false
	}
	data, err := os.ReadFile(e.cacheMetaPath)
	if err != nil {
		healthserver.CacheLoad.WithLabelValues("miss").Inc()
		return false
	}
	if !e.index.IsReady() {
		healthserver.CacheLoad.WithLabelValues("miss").Inc()
		return false
	}

	var meta cacheMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		healthserver.CacheLoad.WithLabelValues("miss").Inc()
		return false
	}

	current, err := specs.Fingerprint(e.specDir)
	if err != nil || !model.FingerprintsEqual(current, meta.Fingerprints) {
		healthserver.CacheLoad.WithLabelValues("stale").Inc()
		return false
	}

	e.specMeta = meta.SpecMeta
	sort.Slice(e.specMeta, func(i, j int) bool { return e.specMeta[i].SpecID < e.specMeta[j].SpecID })
	if meta.SpecVersions != nil {
		e.specVersions = meta.SpecVersions
	}

	e.specs = map[string]map[string]any{}
	e.specPaths = map[string]string{}
	for _, fp := range meta.Fingerprints {
		// specId isn't carried on SpecFingerprint itself; recover it by
		// re-deriving from spec_meta's filePath, matching how the reference
		// keeps specPaths keyed off the cached fingerprint list.
		for _, sm := range e.specMeta {
			if sm.FilePath == fp.RelativePath {
				e.specPaths[sm.SpecID] = filepath.Join(e.specDir, fp.RelativePath)
				break
			}
		}
	}
	return true
}

func (e *Engine) writeCacheMeta() {
	if e.cacheMetaPath == "" {
		return
	}
	fingerprints := make([]model.SpecFingerprint, 0, len(e.specPaths))
	for _, path := range e.specPaths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(e.specDir, path)
		if err != nil {
			rel = path
		}
		fingerprints = append(fingerprints, model.SpecFingerprint{
			RelativePath: rel,
			Size:         info.Size(),
			ModTime:      info.ModTime().UnixNano(),
		})
	}
	sort.Slice(fingerprints, func(i, j int) bool { return fingerprints[i].RelativePath < fingerprints[j].RelativePath })

	meta := cacheMeta{
		Version:      1,
		SpecDir:      e.specDir,
		Fingerprints: fingerprints,
		SpecMeta:     e.specMeta,
		SpecVersions: e.specVersions,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		e.logger.Warn("marshal cache meta failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(e.cacheMetaPath, data, 0o644); err != nil {
		e.logger.Warn("write cache meta failed", zap.Error(err))
	}
}

// Close releases the underlying index store connection.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Close()
}

// PayloadGenerateJSON is PayloadGenerate reshaped into the plain
// map[string]any the tool surface and JSON transports expect.
func (e *Engine) PayloadGenerateJSON(endpointID string, providedFields map[string]any) (map[string]any, error) {
	result, err := e.PayloadGenerate(endpointID, providedFields)
	if err != nil {
		return nil, err
	}
	if result.EndpointID == "" {
		return map[string]any{}, nil
	}
	return toMap(result)
}

// PayloadValidateJSON is PayloadValidate reshaped into {ok, errors}.
func (e *Engine) PayloadValidateJSON(endpointID string, request map[string]any) (map[string]any, error) {
	result, err := e.PayloadValidate(endpointID, request)
	if err != nil {
		return nil, err
	}
	return toMap(result)
}

// ExecuteRequestJSON is ExecuteRequest reshaped into
// {ok, status, time, body} or {ok, error}.
func (e *Engine) ExecuteRequestJSON(ctx context.Context, endpointID string, request map[string]any, authToken string) map[string]any {
	result := e.ExecuteRequest(ctx, endpointID, request, authToken)
	out, err := toMap(result)
	if err != nil {
		return map[string]any{"ok": false, "error": err.Error()}
	}
	return out
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

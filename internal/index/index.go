// Package index is the persistent Index Store: an embedded relational
// database with FTS5 lexical search over operations and schemas, plus an
// embedding table backing semantic search.
package index

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/antflydb/catalog/internal/jsonutil"
	"github.com/antflydb/catalog/internal/model"
)

// Store is the Index Store. It owns one SQLite connection; all exported
// methods are safe to call from the Catalog Engine's single refresh
// critical section or from concurrent readers once populated.
type Store struct {
	db *sql.DB
}

// Open opens (and, if needed, creates) the index database at path. Pass
// ":memory:" for a purely in-memory index.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index store %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite + FTS5: single writer, matches the reference's single-connection design
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

const schemaDDL = `
DROP TABLE IF EXISTS operations;
DROP TABLE IF EXISTS schemas;
DROP TABLE IF EXISTS ops_fts;
DROP TABLE IF EXISTS schemas_fts;
DROP TABLE IF EXISTS op_embeddings;

CREATE TABLE operations (
	id TEXT PRIMARY KEY,
	spec_id TEXT NOT NULL,
	operation_id TEXT,
	method TEXT NOT NULL,
	path TEXT NOT NULL,
	summary TEXT,
	description TEXT,
	tags TEXT,
	data TEXT NOT NULL
);

CREATE TABLE schemas (
	id TEXT PRIMARY KEY,
	spec_id TEXT NOT NULL,
	schema_name TEXT NOT NULL,
	description TEXT,
	data TEXT NOT NULL
);

CREATE INDEX operations_spec_id ON operations(spec_id);
CREATE INDEX operations_opid ON operations(spec_id, operation_id);
CREATE INDEX operations_path_method ON operations(spec_id, path, method);
CREATE INDEX schemas_spec_id ON schemas(spec_id);
CREATE INDEX schemas_name ON schemas(spec_id, schema_name);

CREATE VIRTUAL TABLE ops_fts USING fts5(
	id UNINDEXED,
	spec_id UNINDEXED,
	operation_id,
	method,
	path,
	summary,
	description,
	tags,
	content
);

CREATE VIRTUAL TABLE schemas_fts USING fts5(
	id UNINDEXED,
	spec_id UNINDEXED,
	schema_name,
	description,
	content
);

CREATE TABLE op_embeddings (
	id TEXT PRIMARY KEY,
	dim INTEGER NOT NULL,
	vector BLOB NOT NULL
);
`

// Reset drops and recreates every table, discarding all indexed content.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("reset index store: %w", err)
	}
	return nil
}

// IsReady reports whether the operations table exists, i.e. whether at
// least one refresh has completed.
func (s *Store) IsReady() bool {
	row := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='operations'`)
	var name string
	return row.Scan(&name) == nil
}

// AddOperations inserts operations into both the row table and the FTS
// index. The FTS content column is a space-joined concatenation of
// (operation_id, method, path, summary, description, tags) with empty
// parts elided.
func (s *Store) AddOperations(ops []model.Operation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertRow, err := tx.Prepare(`INSERT INTO operations
		(id, spec_id, operation_id, method, path, summary, description, tags, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	insertFTS, err := tx.Prepare(`INSERT INTO ops_fts
		(id, spec_id, operation_id, method, path, summary, description, tags, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}

	for _, op := range ops {
		tags := strings.Join(op.Tags, " ")
		dataJSON, err := jsonutil.Marshal(jsonutil.Canonical(op.Raw))
		if err != nil {
			return fmt.Errorf("marshal operation %s: %w", op.EndpointID(), err)
		}
		id := op.EndpointID()
		if _, err := insertRow.Exec(id, op.SpecID, nullable(op.OperationID), op.Method, op.Path,
			nullable(op.Summary), nullable(op.Description), tags, string(dataJSON)); err != nil {
			return fmt.Errorf("insert operation %s: %w", id, err)
		}
		content := joinNonEmpty(op.OperationID, op.Method, op.Path, op.Summary, op.Description, tags)
		if _, err := insertFTS.Exec(id, op.SpecID, nullable(op.OperationID), op.Method, op.Path,
			nullable(op.Summary), nullable(op.Description), tags, content); err != nil {
			return fmt.Errorf("index operation %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// AddSchemas inserts schemas into both the row table and the FTS index.
func (s *Store) AddSchemas(schemas []model.Schema) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertRow, err := tx.Prepare(`INSERT INTO schemas
		(id, spec_id, schema_name, description, data) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	insertFTS, err := tx.Prepare(`INSERT INTO schemas_fts
		(id, spec_id, schema_name, description, content) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}

	for _, schema := range schemas {
		dataJSON, err := jsonutil.Marshal(jsonutil.Canonical(schema.Raw))
		if err != nil {
			return fmt.Errorf("marshal schema %s: %w", schema.SchemaKey(), err)
		}
		id := schema.SchemaKey()
		if _, err := insertRow.Exec(id, schema.SpecID, schema.Name, nullable(schema.Description), string(dataJSON)); err != nil {
			return fmt.Errorf("insert schema %s: %w", id, err)
		}
		content := joinNonEmpty(schema.Name, schema.Description)
		if _, err := insertFTS.Exec(id, schema.SpecID, schema.Name, nullable(schema.Description), content); err != nil {
			return fmt.Errorf("index schema %s: %w", id, err)
		}
	}
	return tx.Commit()
}

var ftsSanitizeRe = regexp.MustCompile(`[^[:alnum:][:space:]]`)

// sanitizeFTSQuery replaces non-alphanumeric, non-whitespace characters
// with spaces, collapses whitespace, trims, and wraps the result in
// double quotes so the FTS engine treats it as a single phrase. Returns
// "" if nothing is left after cleaning.
func sanitizeFTSQuery(query string) string {
	cleaned := ftsSanitizeRe.ReplaceAllString(strings.TrimSpace(query), " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return ""
	}
	return `"` + cleaned + `"`
}

// SearchOperations returns BM25-ranked operation matches, sorted by
// ascending BM25 score then (spec_id, path, method, operation_id).
func (s *Store) SearchOperations(query, specID string, limit int) ([]model.OperationMatch, error) {
	sanitized := sanitizeFTSQuery(query)
	if sanitized == "" {
		return nil, nil
	}

	sqlQuery := `SELECT id, spec_id, operation_id, method, path, summary, description, tags,
		bm25(ops_fts) AS score, snippet(ops_fts, 8, '[', ']', '...', 12) AS snippet
		FROM ops_fts WHERE ops_fts MATCH ?`
	args := []any{sanitized}
	if specID != "" {
		sqlQuery += " AND spec_id = ?"
		args = append(args, specID)
	}
	sqlQuery += " ORDER BY bm25(ops_fts), spec_id, path, method, operation_id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search operations: %w", err)
	}
	defer rows.Close()

	var matches []model.OperationMatch
	for rows.Next() {
		var (
			id, spec, tags              string
			operationID, method, path   sql.NullString
			summary, description, snip sql.NullString
			score                       float64
		)
		if err := rows.Scan(&id, &spec, &operationID, &method, &path, &summary, &description, &tags, &score, &snip); err != nil {
			return nil, fmt.Errorf("scan operation match: %w", err)
		}
		matches = append(matches, model.OperationMatch{
			EndpointID:   id,
			SpecID:       spec,
			OperationID:  operationID.String,
			Method:       method.String,
			Path:         path.String,
			Summary:      summary.String,
			Description:  description.String,
			Tags:         splitTags(tags),
			Score:        &score,
			MatchSnippet: snip.String,
		})
	}
	return matches, rows.Err()
}

// SearchSchemas returns BM25-ranked schema matches.
func (s *Store) SearchSchemas(query, specID string, limit int) ([]model.SchemaMatch, error) {
	sanitized := sanitizeFTSQuery(query)
	if sanitized == "" {
		return nil, nil
	}

	sqlQuery := `SELECT spec_id, schema_name, description FROM schemas_fts WHERE schemas_fts MATCH ?`
	args := []any{sanitized}
	if specID != "" {
		sqlQuery += " AND spec_id = ?"
		args = append(args, specID)
	}
	sqlQuery += " ORDER BY bm25(schemas_fts), spec_id, schema_name LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search schemas: %w", err)
	}
	defer rows.Close()

	var matches []model.SchemaMatch
	for rows.Next() {
		var spec, name string
		var description sql.NullString
		if err := rows.Scan(&spec, &name, &description); err != nil {
			return nil, fmt.Errorf("scan schema match: %w", err)
		}
		matches = append(matches, model.SchemaMatch{SpecID: spec, SchemaName: name, Description: description.String})
	}
	return matches, rows.Err()
}

// OperationRecord is a full point-lookup result, including the raw
// operation mapping.
type OperationRecord struct {
	model.Operation
	EndpointID string
}

// GetOperationByEndpointID returns the full operation record, or false.
func (s *Store) GetOperationByEndpointID(endpointID string) (OperationRecord, bool, error) {
	return s.getOperation(`WHERE id = ?`, endpointID)
}

// GetOperationByOperationID returns the full operation record, or false.
func (s *Store) GetOperationByOperationID(specID, operationID string) (OperationRecord, bool, error) {
	return s.getOperation(`WHERE spec_id = ? AND operation_id = ?`, specID, operationID)
}

// GetOperationByPathMethod returns the full operation record, or false.
func (s *Store) GetOperationByPathMethod(specID, path, method string) (OperationRecord, bool, error) {
	return s.getOperation(`WHERE spec_id = ? AND path = ? AND method = ?`, specID, path, method)
}

func (s *Store) getOperation(where string, args ...any) (OperationRecord, bool, error) {
	row := s.db.QueryRow(`SELECT id, spec_id, operation_id, method, path, summary, description, tags, data
		FROM operations `+where, args...)

	var id, specID, method, path, tags, data string
	var operationID, summary, description sql.NullString
	if err := row.Scan(&id, &specID, &operationID, &method, &path, &summary, &description, &tags, &data); err != nil {
		if err == sql.ErrNoRows {
			return OperationRecord{}, false, nil
		}
		return OperationRecord{}, false, fmt.Errorf("get operation: %w", err)
	}

	var raw map[string]any
	if err := jsonutil.Unmarshal([]byte(data), &raw); err != nil {
		return OperationRecord{}, false, fmt.Errorf("unmarshal operation data: %w", err)
	}

	return OperationRecord{
		Operation: model.Operation{
			SpecID:      specID,
			OperationID: operationID.String,
			Method:      method,
			Path:        path,
			Summary:     summary.String,
			Description: description.String,
			Tags:        splitTags(tags),
			Raw:         raw,
		},
		EndpointID: id,
	}, true, nil
}

// GetOperationMatchByID returns the search-result shape for a single
// endpoint, without the raw operation payload.
func (s *Store) GetOperationMatchByID(endpointID string) (model.OperationMatch, bool, error) {
	row := s.db.QueryRow(`SELECT id, spec_id, operation_id, method, path, summary, description, tags
		FROM operations WHERE id = ?`, endpointID)

	var id, specID, method, path, tags string
	var operationID, summary, description sql.NullString
	if err := row.Scan(&id, &specID, &operationID, &method, &path, &summary, &description, &tags); err != nil {
		if err == sql.ErrNoRows {
			return model.OperationMatch{}, false, nil
		}
		return model.OperationMatch{}, false, fmt.Errorf("get operation match: %w", err)
	}
	return model.OperationMatch{
		EndpointID:  id,
		SpecID:      specID,
		OperationID: operationID.String,
		Method:      method,
		Path:        path,
		Summary:     summary.String,
		Description: description.String,
		Tags:        splitTags(tags),
	}, true, nil
}

// SchemaRecord is a full point-lookup result for a schema.
type SchemaRecord struct {
	model.Schema
}

// GetSchema returns the full schema record, or false.
func (s *Store) GetSchema(specID, name string) (SchemaRecord, bool, error) {
	row := s.db.QueryRow(`SELECT spec_id, schema_name, description, data
		FROM schemas WHERE spec_id = ? AND schema_name = ?`, specID, name)

	var spec, schemaName, data string
	var description sql.NullString
	if err := row.Scan(&spec, &schemaName, &description, &data); err != nil {
		if err == sql.ErrNoRows {
			return SchemaRecord{}, false, nil
		}
		return SchemaRecord{}, false, fmt.Errorf("get schema: %w", err)
	}

	var raw map[string]any
	if err := jsonutil.Unmarshal([]byte(data), &raw); err != nil {
		return SchemaRecord{}, false, fmt.Errorf("unmarshal schema data: %w", err)
	}
	return SchemaRecord{model.Schema{SpecID: spec, Name: schemaName, Description: description.String, Raw: raw}}, true, nil
}

// AddOperationEmbeddings upserts embedding rows.
func (s *Store) AddOperationEmbeddings(embeddings []model.Embedding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO op_embeddings (id, dim, vector) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	for _, e := range embeddings {
		if _, err := stmt.Exec(e.EndpointID, e.Dim, encodeVector(e.Vector)); err != nil {
			return fmt.Errorf("insert embedding %s: %w", e.EndpointID, err)
		}
	}
	return tx.Commit()
}

// LoadOperationEmbeddings returns every persisted embedding, ordered by
// endpoint ID. Rows whose stored dim disagrees with the byte-length-
// derived vector size are discarded.
func (s *Store) LoadOperationEmbeddings() ([]model.Embedding, error) {
	rows, err := s.db.Query(`SELECT id, dim, vector FROM op_embeddings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load embeddings: %w", err)
	}
	defer rows.Close()

	var out []model.Embedding
	for rows.Next() {
		var id string
		var dim int
		var raw []byte
		if err := rows.Scan(&id, &dim, &raw); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		vec, ok := decodeVector(raw, dim)
		if !ok {
			continue
		}
		out = append(out, model.Embedding{EndpointID: id, Dim: dim, Vector: vec})
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func joinNonEmpty(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	return strings.Fields(tags)
}

// Package semantic implements the optional Semantic Index: L2-normalized
// embedding vectors with cosine top-k search over a matrix product.
package semantic

import (
	"context"
	"math"
	"sort"

	"github.com/antflydb/catalog/internal/model"
)

// Row is one (endpoint_id, text) pair to embed during Build.
type Row struct {
	EndpointID string
	Text       string
}

// Index holds the in-memory embedding matrix used for search. It is safe
// to construct with a nil Embedder; Available() then reports false and
// every operation becomes a silent no-op rather than an error.
type Index struct {
	embedder Embedder

	ids        []string
	normalized [][]float32 // L2-normalized copy of vectors, one per id
}

// New constructs a Semantic Index around embedder, which may be nil.
func New(embedder Embedder) *Index {
	return &Index{embedder: embedder}
}

// Available reports whether a usable embedder is configured.
func (idx *Index) Available() bool { return idx.embedder != nil }

// Clear discards the in-memory matrix.
func (idx *Index) Clear() {
	idx.ids = nil
	idx.normalized = nil
}

// Build embeds rows, replacing the in-memory matrix, and returns the
// embeddings to persist. Returns nil if the index is unavailable.
func (idx *Index) Build(ctx context.Context, rows []Row) ([]model.Embedding, error) {
	if !idx.Available() {
		return nil, nil
	}
	if len(rows) == 0 {
		idx.Clear()
		return nil, nil
	}

	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.Text
	}
	vectors, err := idx.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		idx.Clear()
		return nil, nil
	}

	ids := make([]string, len(rows))
	normalized := make([][]float32, len(rows))
	embeddings := make([]model.Embedding, len(rows))
	for i, r := range rows {
		ids[i] = r.EndpointID
		normalized[i] = l2Normalize(vectors[i])
		embeddings[i] = model.Embedding{EndpointID: r.EndpointID, Dim: len(vectors[i]), Vector: vectors[i]}
	}

	idx.ids = ids
	idx.normalized = normalized
	return embeddings, nil
}

// Load rebuilds the in-memory matrix from persisted embeddings, without
// re-embedding. No-op if the index is unavailable.
func (idx *Index) Load(embeddings []model.Embedding) {
	if !idx.Available() {
		return
	}
	if len(embeddings) == 0 {
		idx.Clear()
		return
	}
	ids := make([]string, 0, len(embeddings))
	normalized := make([][]float32, 0, len(embeddings))
	for _, e := range embeddings {
		ids = append(ids, e.EndpointID)
		normalized = append(normalized, l2Normalize(e.Vector))
	}
	idx.ids = ids
	idx.normalized = normalized
}

// Search embeds the query once, L2-normalizes it, and returns the top-k
// endpoint IDs by cosine score descending, endpoint ID ascending as
// tiebreak.
func (idx *Index) Search(ctx context.Context, query string, topK int) ([]string, error) {
	if !idx.Available() || len(idx.normalized) == 0 {
		return nil, nil
	}
	vectors, err := idx.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	queryVec := l2Normalize(vectors[0])

	type scored struct {
		id    string
		score float64
	}
	results := make([]scored, len(idx.ids))
	for i, id := range idx.ids {
		results[i] = scored{id: id, score: dot(idx.normalized[i], queryVec)}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].id < results[j].id
	})

	if topK > len(results) {
		topK = len(results)
	}
	out := make([]string, topK)
	for i := 0; i < topK; i++ {
		out[i] = results[i].id
	}
	return out, nil
}

func l2Normalize(vec []float32) []float32 {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return append([]float32(nil), vec...)
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

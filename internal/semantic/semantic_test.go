package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antflydb/catalog/internal/model"
)

type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Capabilities() Capabilities { return Capabilities{ModelName: "fake"} }

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vectors[t]
	}
	return out, nil
}

func TestIndex_UnavailableWithoutEmbedder(t *testing.T) {
	idx := New(nil)
	require.False(t, idx.Available())
	emb, err := idx.Build(context.Background(), []Row{{EndpointID: "a", Text: "x"}})
	require.NoError(t, err)
	require.Nil(t, emb)
}

func TestIndex_BuildAndSearch(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"list pets":   {1, 0, 0},
		"create pet":  {0, 1, 0},
		"list pets q": {1, 0, 0},
	}}
	idx := New(embedder)
	require.True(t, idx.Available())

	embeddings, err := idx.Build(context.Background(), []Row{
		{EndpointID: "petstore:listPets", Text: "list pets"},
		{EndpointID: "petstore:createPet", Text: "create pet"},
	})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)

	ids, err := idx.Search(context.Background(), "list pets q", 5)
	require.NoError(t, err)
	require.Equal(t, "petstore:listPets", ids[0])
}

func TestIndex_LoadFromPersistedEmbeddings(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"query": {0, 1, 0}}}
	idx := New(embedder)

	idx.Load([]model.Embedding{{EndpointID: "petstore:createPet", Dim: 3, Vector: []float32{0, 1, 0}}})
	ids, err := idx.Search(context.Background(), "query", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"petstore:createPet"}, ids)
}

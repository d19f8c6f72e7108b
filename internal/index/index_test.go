package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antflydb/catalog/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Reset())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIsReady_FalseBeforeReset(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	require.False(t, s.IsReady())
	require.NoError(t, s.Reset())
	require.True(t, s.IsReady())
}

func TestAddAndSearchOperations(t *testing.T) {
	s := newTestStore(t)
	ops := []model.Operation{
		{SpecID: "petstore", OperationID: "listPets", Method: "get", Path: "/pets",
			Summary: "List all pets", Tags: []string{"pets"}, Raw: map[string]any{"summary": "List all pets"}},
		{SpecID: "petstore", OperationID: "createPet", Method: "post", Path: "/pets",
			Summary: "Create a pet", Tags: []string{"pets"}, Raw: map[string]any{"summary": "Create a pet"}},
	}
	require.NoError(t, s.AddOperations(ops))

	matches, err := s.SearchOperations("pets", "", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	rec, ok, err := s.GetOperationByEndpointID("petstore:listPets")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "List all pets", rec.Summary)
}

func TestSearchOperations_EmptyQueryReturnsNoResults(t *testing.T) {
	s := newTestStore(t)
	matches, err := s.SearchOperations("???", "", 10)
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestSanitizeFTSQuery(t *testing.T) {
	require.Equal(t, `"pet store"`, sanitizeFTSQuery("pet! store?"))
	require.Equal(t, "", sanitizeFTSQuery("  ???  "))
}

func TestEmbeddingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	err := s.AddOperationEmbeddings([]model.Embedding{
		{EndpointID: "petstore:listPets", Dim: 3, Vector: []float32{0.1, 0.2, 0.3}},
	})
	require.NoError(t, err)

	loaded, err := s.LoadOperationEmbeddings()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, 3, loaded[0].Dim)
	require.InDelta(t, 0.1, loaded[0].Vector[0], 1e-6)
}

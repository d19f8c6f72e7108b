package fusion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge_CombinesWeightedRanks(t *testing.T) {
	fts := []string{"b", "a", "c"}
	sem := []string{"a", "d"}

	got := Merge(fts, sem, 10)
	require.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestMerge_TruncatesToLimit(t *testing.T) {
	fts := []string{"a", "b", "c"}
	got := Merge(fts, nil, 2)
	require.Len(t, got, 2)
	require.Equal(t, []string{"a", "b"}, got)
}

func TestMerge_SemanticOnlyIDSurvives(t *testing.T) {
	got := Merge(nil, []string{"only-semantic"}, 10)
	require.Equal(t, []string{"only-semantic"}, got)
}

package specs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBuild_AssignsDefaultAndOverrideSpecIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "petstore.json", `{"info": {"title": "Petstore"}}`)
	writeFile(t, dir, "nested/orders.yaml", "info:\n  x-spec-id: orders-v2\n  title: Orders\n")

	results, err := Build(dir)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		require.NoError(t, r.Err)
	}
	require.Equal(t, "orders-v2", results[0].File.SpecID)
	require.Equal(t, "petstore", results[1].File.SpecID)
}

func TestBuild_DeduplicatesCollidingSpecIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/petstore.json", `{"info": {}}`)
	writeFile(t, dir, "b/petstore.json", `{"info": {}}`)
	writeFile(t, dir, "c/petstore.json", `{"info": {}}`)

	results, err := Build(dir)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "petstore", results[0].File.SpecID)
	require.Equal(t, "petstore-2", results[1].File.SpecID)
	require.Equal(t, "petstore-3", results[2].File.SpecID)
}

func TestBuild_ReportsParseErrorPerFileWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{not valid json`)
	writeFile(t, dir, "ok.json", `{"info": {"title": "OK"}}`)

	results, err := Build(dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)
}

func TestFingerprint_SortedByRelativePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.json", `{}`)
	writeFile(t, dir, "a.json", `{}`)

	fps, err := Fingerprint(dir)
	require.NoError(t, err)
	require.Len(t, fps, 2)
	require.Equal(t, "a.json", fps[0].RelativePath)
	require.Equal(t, "z.json", fps[1].RelativePath)
}

// Package specs discovers OpenAPI documents on disk, fingerprints them for
// change detection, parses them, and assigns stable spec IDs.
package specs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/antflydb/catalog/internal/model"
	"github.com/antflydb/catalog/internal/jsonutil"
)

var specExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// Discover enumerates spec files under root recursively, sorted by full
// path ascending.
func Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if specExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover spec files under %q: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Fingerprint computes a sorted-by-relative-path fingerprint list for the
// spec directory, used by the Catalog Engine and Watcher to detect change.
func Fingerprint(root string) ([]model.SpecFingerprint, error) {
	paths, err := Discover(root)
	if err != nil {
		return nil, err
	}
	out := make([]model.SpecFingerprint, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, fmt.Errorf("relpath %q: %w", path, err)
		}
		out = append(out, model.SpecFingerprint{
			RelativePath: rel,
			Size:         info.Size(),
			ModTime:      info.ModTime().UnixNano(),
		})
	}
	return out, nil
}

// LoadResult pairs a discovered spec file with a non-nil parse error when
// the file is malformed; the Engine is responsible for degrading it to an
// invalid SpecMeta entry instead of failing the whole refresh.
type LoadResult struct {
	File model.SpecFile
	Err  error
}

// Build discovers, parses, and spec-ID-assigns every spec file under root.
// Parse failures are reported per-file via LoadResult.Err rather than
// aborting the whole discovery pass.
func Build(root string) ([]LoadResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve spec root %q: %w", root, err)
	}
	paths, err := Discover(absRoot)
	if err != nil {
		return nil, err
	}

	used := map[string]bool{}
	results := make([]LoadResult, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}

		raw, perr := loadRaw(path)
		if perr != nil {
			results = append(results, LoadResult{
				File: model.SpecFile{Path: path, RelativePath: rel},
				Err:  fmt.Errorf("parse %q: %w", rel, perr),
			})
			continue
		}

		base := defaultSpecID(path)
		if override, ok := specIDOverride(raw); ok {
			base = override
		}
		id := ensureUnique(base, used)
		used[id] = true

		results = append(results, LoadResult{
			File: model.SpecFile{Path: path, RelativePath: rel, Raw: raw, SpecID: id},
		})
	}
	return results, nil
}

// LoadRaw parses a single spec file from disk without spec-ID assignment,
// used by the Catalog Engine to lazily reload a spec whose parsed form
// fell out of the in-memory cache (e.g. after a cache-sidecar hit).
func LoadRaw(path string) (map[string]any, error) {
	return loadRaw(path)
}

func loadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := jsonutil.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func defaultSpecID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func specIDOverride(raw map[string]any) (string, bool) {
	info, ok := raw["info"].(map[string]any)
	if !ok {
		return "", false
	}
	override, ok := info["x-spec-id"].(string)
	if !ok {
		return "", false
	}
	override = strings.TrimSpace(override)
	if override == "" {
		return "", false
	}
	return override, true
}

func ensureUnique(base string, used map[string]bool) string {
	if !used[base] {
		return base
	}
	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		if !used[candidate] {
			return candidate
		}
	}
}

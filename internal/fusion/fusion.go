// Package fusion merges lexical and semantic result ID lists via weighted
// Reciprocal Rank Fusion.
package fusion

import "sort"

const (
	// K is the RRF rank-offset constant.
	K = 60
	// WeightFTS is the lexical-search weight.
	WeightFTS = 0.7
	// WeightSemantic is the semantic-search weight.
	WeightSemantic = 0.3
)

// Merge fuses two ranked ID lists (1-indexed rank implied by list order)
// with weighted RRF: score(id) = w_fts/(k+rank_fts) + w_sem/(k+rank_sem),
// missing ranks contributing 0. Output is sorted by (-score, id) and
// truncated to limit.
func Merge(ftsIDs, semanticIDs []string, limit int) []string {
	scores := map[string]float64{}
	order := []string{}

	add := func(ids []string, weight float64) {
		for i, id := range ids {
			rank := i + 1
			if _, exists := scores[id]; !exists {
				order = append(order, id)
			}
			scores[id] += weight / float64(K+rank)
		}
	}
	add(ftsIDs, WeightFTS)
	add(semanticIDs, WeightSemantic)

	sort.Slice(order, func(i, j int) bool {
		if scores[order[i]] != scores[order[j]] {
			return scores[order[i]] > scores[order[j]]
		}
		return order[i] < order[j]
	})

	if limit > 0 && limit < len(order) {
		order = order[:limit]
	}
	return order
}
